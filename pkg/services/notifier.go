package services

import (
	"context"
	"errors"
	"time"

	"github.com/ixaliom/ixwha/pkg/integrations"
	"github.com/ixaliom/ixwha/pkg/utils"
)

const (
	maxDailyNotifications = 5
	notificationCooldown  = 24 * time.Hour
	historyRetention      = 30 * 24 * time.Hour

	sendAttempts  = 3
	sendBaseDelay = 5 * time.Second
)

var (
	// ErrDailyCapReached means no sends are left in the rolling 24h window.
	ErrDailyCapReached = errors.New("daily notification cap reached")
	// ErrCooldownActive means this event was already announced recently.
	ErrCooldownActive = errors.New("notification cooldown active for this event")
)

// HistoryStore persists the per-event send timestamps, keyed by event,
// as unix milliseconds.
type HistoryStore interface {
	LoadHistory() (map[string]int64, error)
	SaveHistory(map[string]int64) error
}

// Notifier sends webhook messages under rate-limit rules: at most five
// sends per rolling day, one send per event key per day, history pruned
// after thirty days.
type Notifier struct {
	history HistoryStore
	hook    integrations.Webhook

	attempts  int
	baseDelay time.Duration
	now       func() time.Time
}

func NewNotifier(history HistoryStore, hook integrations.Webhook) *Notifier {
	return &Notifier{
		history:   history,
		hook:      hook,
		attempts:  sendAttempts,
		baseDelay: sendBaseDelay,
		now:       time.Now,
	}
}

// Notify sends msg for the given event key, enforcing the cap and the
// per-event cooldown. The event is recorded only after a successful send.
func (n *Notifier) Notify(ctx context.Context, eventKey string, msg integrations.Message) error {
	history, err := n.history.LoadHistory()
	if err != nil {
		return err
	}
	if history == nil {
		history = make(map[string]int64)
	}

	now := n.now()
	pruned := false
	for key, ts := range history {
		if now.Sub(millisTime(ts)) > historyRetention {
			delete(history, key)
			pruned = true
		}
	}

	recent := 0
	for _, ts := range history {
		if now.Sub(millisTime(ts)) < notificationCooldown {
			recent++
		}
	}
	if recent >= maxDailyNotifications {
		if pruned {
			_ = n.history.SaveHistory(history)
		}
		return ErrDailyCapReached
	}

	if ts, ok := history[eventKey]; ok && now.Sub(millisTime(ts)) < notificationCooldown {
		if pruned {
			_ = n.history.SaveHistory(history)
		}
		return ErrCooldownActive
	}

	_, err = utils.Retry(ctx, n.attempts, n.baseDelay, func() (struct{}, error) {
		return struct{}{}, n.hook.Send(ctx, msg)
	})
	if err != nil {
		return err
	}

	history[eventKey] = now.UnixMilli()
	return n.history.SaveHistory(history)
}

func millisTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
