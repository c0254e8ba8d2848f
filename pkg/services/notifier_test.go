package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ixaliom/ixwha/pkg/integrations"
)

type fakeHistory struct {
	entries   map[string]int64
	saveCount int
}

func (h *fakeHistory) LoadHistory() (map[string]int64, error) { return h.entries, nil }
func (h *fakeHistory) SaveHistory(entries map[string]int64) error {
	h.entries = entries
	h.saveCount++
	return nil
}

type fakeWebhook struct {
	sends    int
	failNext int
}

func (w *fakeWebhook) Send(ctx context.Context, msg integrations.Message) error {
	w.sends++
	if w.failNext > 0 {
		w.failNext--
		return errors.New("503 from webhook")
	}
	return nil
}

func newTestNotifier(history *fakeHistory, hook *fakeWebhook, now time.Time) *Notifier {
	n := NewNotifier(history, hook)
	n.baseDelay = time.Millisecond
	n.now = func() time.Time { return now }
	return n
}

func TestNotifierRecordsSuccessfulSend(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{}
	hook := &fakeWebhook{}
	n := newTestNotifier(history, hook, now)

	require.NoError(t, n.Notify(context.Background(), "chapter_a", integrations.Message{}))
	assert.Equal(t, 1, hook.sends)
	assert.Equal(t, now.UnixMilli(), history.entries["chapter_a"])
}

func TestNotifierCooldownBlocksRepeat(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{entries: map[string]int64{
		"chapter_a": now.Add(-2 * time.Hour).UnixMilli(),
	}}
	hook := &fakeWebhook{}
	n := newTestNotifier(history, hook, now)

	err := n.Notify(context.Background(), "chapter_a", integrations.Message{})
	assert.ErrorIs(t, err, ErrCooldownActive)
	assert.Zero(t, hook.sends)
}

func TestNotifierCooldownExpiresAfterADay(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{entries: map[string]int64{
		"chapter_a": now.Add(-25 * time.Hour).UnixMilli(),
	}}
	hook := &fakeWebhook{}
	n := newTestNotifier(history, hook, now)

	require.NoError(t, n.Notify(context.Background(), "chapter_a", integrations.Message{}))
	assert.Equal(t, 1, hook.sends)
}

func TestNotifierDailyCap(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entries := make(map[string]int64)
	for i := 0; i < maxDailyNotifications; i++ {
		entries[fmt.Sprintf("chapter_%d", i)] = now.Add(-time.Duration(i+1) * time.Hour).UnixMilli()
	}
	history := &fakeHistory{entries: entries}
	hook := &fakeWebhook{}
	n := newTestNotifier(history, hook, now)

	err := n.Notify(context.Background(), "chapter_new", integrations.Message{})
	assert.ErrorIs(t, err, ErrDailyCapReached)
	assert.Zero(t, hook.sends)
}

func TestNotifierCapIgnoresOldSends(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	entries := make(map[string]int64)
	for i := 0; i < maxDailyNotifications; i++ {
		entries[fmt.Sprintf("chapter_%d", i)] = now.Add(-48 * time.Hour).UnixMilli()
	}
	history := &fakeHistory{entries: entries}
	hook := &fakeWebhook{}
	n := newTestNotifier(history, hook, now)

	require.NoError(t, n.Notify(context.Background(), "chapter_new", integrations.Message{}))
	assert.Equal(t, 1, hook.sends)
}

func TestNotifierPrunesExpiredHistory(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{entries: map[string]int64{
		"chapter_old": now.Add(-31 * 24 * time.Hour).UnixMilli(),
	}}
	hook := &fakeWebhook{}
	n := newTestNotifier(history, hook, now)

	require.NoError(t, n.Notify(context.Background(), "chapter_new", integrations.Message{}))
	assert.NotContains(t, history.entries, "chapter_old")
	assert.Contains(t, history.entries, "chapter_new")
}

func TestNotifierRetriesTransientFailures(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{}
	hook := &fakeWebhook{failNext: 2}
	n := newTestNotifier(history, hook, now)

	require.NoError(t, n.Notify(context.Background(), "chapter_a", integrations.Message{}))
	assert.Equal(t, 3, hook.sends)
	assert.Contains(t, history.entries, "chapter_a")
}

func TestNotifierGivesUpAfterRetries(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	history := &fakeHistory{}
	hook := &fakeWebhook{failNext: sendAttempts}
	n := newTestNotifier(history, hook, now)

	err := n.Notify(context.Background(), "chapter_a", integrations.Message{})
	require.Error(t, err)
	assert.Equal(t, sendAttempts, hook.sends)
	assert.NotContains(t, history.entries, "chapter_a", "failed sends leave no trace")
}
