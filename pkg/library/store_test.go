package library

import (
	"errors"
	"testing"

	"github.com/ixaliom/ixwha/pkg/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository that counts snapshot writes.
type memRepo struct {
	saved     []*data.Manhwa
	saveCount int
	saveErr   error
}

func (r *memRepo) LoadLibrary() ([]*data.Manhwa, error) {
	return r.saved, nil
}

func (r *memRepo) SaveLibrary(items []*data.Manhwa) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = items
	r.saveCount++
	return nil
}

func newTestStore(t *testing.T, items ...*data.Manhwa) (*Store, *memRepo) {
	t.Helper()
	repo := &memRepo{saved: items}
	store, err := Load(repo)
	require.NoError(t, err)
	return store, repo
}

func TestAddAssignsIDAndPersists(t *testing.T) {
	store, repo := newTestStore(t)

	m := &data.Manhwa{Title: "Solo Leveling", TotalChapters: 110}
	require.NoError(t, store.Add(m))

	assert.NotEmpty(t, m.ID)
	assert.Equal(t, 1, repo.saveCount)
	assert.Len(t, store.List(), 1)
	assert.NotNil(t, m.ReadChapters)
}

func TestAddRejectsInvalidRecords(t *testing.T) {
	store, repo := newTestStore(t)

	assert.Error(t, store.Add(&data.Manhwa{Title: "  ", TotalChapters: 10}))
	assert.Error(t, store.Add(&data.Manhwa{Title: "X", TotalChapters: 0}))
	assert.Equal(t, 0, repo.saveCount, "rejected adds must not persist")
	assert.Empty(t, store.List())
}

func TestUpdatePrunesReadChaptersOnLowerBound(t *testing.T) {
	m := &data.Manhwa{
		ID:            "id-1",
		Title:         "Tower of God",
		TotalChapters: 10,
		ReadChapters:  data.NewChapterSet(1, 2, 3, 8, 9),
	}
	store, repo := newTestStore(t, m)

	chapters := 5
	require.NoError(t, store.Update("id-1", Patch{TotalChapters: &chapters}))

	assert.Equal(t, 5, m.TotalChapters)
	assert.ElementsMatch(t, []int{1, 2, 3}, m.ReadChapters.Sorted())
	assert.Equal(t, 1, repo.saveCount)
}

func TestUpdateUnknownID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Update("missing", Patch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	a := &data.Manhwa{ID: "a", Title: "A", TotalChapters: 1}
	b := &data.Manhwa{ID: "b", Title: "B", TotalChapters: 1}
	store, repo := newTestStore(t, a, b)

	require.NoError(t, store.Remove("a"))

	assert.Nil(t, store.FindByID("a"))
	assert.NotNil(t, store.FindByID("b"))
	assert.Equal(t, 1, repo.saveCount)

	assert.ErrorIs(t, store.Remove("a"), ErrNotFound)
}

func TestEveryMutationPersists(t *testing.T) {
	m := &data.Manhwa{ID: "id-1", Title: "A", TotalChapters: 10, ReadChapters: data.NewChapterSet()}
	store, repo := newTestStore(t, m)

	require.NoError(t, store.ToggleChapter("id-1", 3))
	require.NoError(t, store.ToggleFavorite("id-1"))
	require.NoError(t, store.ToggleDropped("id-1"))
	require.NoError(t, store.ResetProgress("id-1"))

	assert.Equal(t, 4, repo.saveCount)
	assert.True(t, m.IsFavorite)
	assert.True(t, m.IsDropped)
	assert.Equal(t, 0, m.ReadChapters.Len())
}

func TestResolveByNameThenID(t *testing.T) {
	a := &data.Manhwa{ID: "abc-123", Title: "Solo Leveling", TotalChapters: 1}
	store, _ := newTestStore(t, a)

	got, err := store.Resolve("solo leveling")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	got, err = store.Resolve("abc-123")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = store.Resolve("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReplaceAll(t *testing.T) {
	store, repo := newTestStore(t, &data.Manhwa{ID: "old", Title: "Old", TotalChapters: 1})

	require.NoError(t, store.ReplaceAll([]*data.Manhwa{
		{Title: "Imported", TotalChapters: 3},
	}))

	require.Len(t, store.List(), 1)
	assert.NotEmpty(t, store.List()[0].ID)
	assert.NotNil(t, store.List()[0].ReadChapters)
	assert.Equal(t, 1, repo.saveCount)
}

func TestPersistFailureSurfaces(t *testing.T) {
	m := &data.Manhwa{ID: "id-1", Title: "A", TotalChapters: 10, ReadChapters: data.NewChapterSet()}
	repo := &memRepo{saved: []*data.Manhwa{m}, saveErr: errors.New("disk full")}
	store, err := Load(repo)
	require.NoError(t, err)

	assert.Error(t, store.ToggleChapter("id-1", 3))
}

func TestParseExport(t *testing.T) {
	raw := []byte(`[{"id": "a", "title": "Solo Max", "totalChapters": 10, "readChapters": [1, 2]}]`)

	items, err := ParseExport(raw)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Solo Max", items[0].Title)
	assert.True(t, items[0].ReadChapters.Has(2))
}

func TestParseExportRejectsNonArray(t *testing.T) {
	for _, raw := range []string{`{"title": "Solo Max"}`, `"text"`, `not json`} {
		_, err := ParseExport([]byte(raw))
		assert.Error(t, err, raw)
	}
}
