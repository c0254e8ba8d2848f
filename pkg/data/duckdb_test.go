package data

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to init DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRepository(db)
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("DB file was not created")
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	library, err := repo.LoadLibrary()
	if err != nil {
		t.Fatalf("Failed to load empty library: %v", err)
	}
	if len(library) != 0 {
		t.Errorf("Expected empty library on first run, got %d entries", len(library))
	}

	library = []*Manhwa{
		{
			ID:            "id-1",
			Title:         "Solo Leveling",
			CoverURL:      "https://example.com/cover.jpg",
			SourceURL:     "https://phenix-scans.com/manga/solo-leveling/",
			TotalChapters: 110,
			ReadChapters:  NewChapterSet(1, 2, 3),
			IsFavorite:    true,
		},
		{
			ID:            "id-2",
			Title:         "Omniscient Reader",
			TotalChapters: 50,
			ReadChapters:  NewChapterSet(),
			IsDropped:     true,
		},
	}
	if err := repo.SaveLibrary(library); err != nil {
		t.Fatalf("Failed to save library: %v", err)
	}

	loaded, err := repo.LoadLibrary()
	if err != nil {
		t.Fatalf("Failed to load library: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(loaded))
	}
	if loaded[0].Title != "Solo Leveling" {
		t.Errorf("Expected 'Solo Leveling' first, got '%s'", loaded[0].Title)
	}
	if !loaded[0].IsFavorite {
		t.Error("Expected favorite flag to survive the round trip")
	}
	assertExactly(t, loaded[0].ReadChapters, 1, 2, 3)
	if !loaded[1].IsDropped {
		t.Error("Expected dropped flag to survive the round trip")
	}
}

func TestSaveOverwritesSnapshot(t *testing.T) {
	repo := setupTestRepo(t)

	if err := repo.SaveLibrary([]*Manhwa{{ID: "a", Title: "A"}}); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	if err := repo.SaveLibrary([]*Manhwa{{ID: "b", Title: "B"}}); err != nil {
		t.Fatalf("Failed to overwrite: %v", err)
	}

	loaded, err := repo.LoadLibrary()
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "b" {
		t.Errorf("Expected the second snapshot to win, got %+v", loaded)
	}
}

func TestSettingsFallBackToDefaults(t *testing.T) {
	repo := setupTestRepo(t)

	settings := repo.LoadSettings()
	if !settings.AutoCheckEnabled {
		t.Error("Expected defaults when no settings snapshot exists")
	}

	settings.AutoCheckEnabled = false
	settings.DefaultSort = "progress"
	if err := repo.SaveSettings(settings); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	loaded := repo.LoadSettings()
	if loaded.AutoCheckEnabled {
		t.Error("Expected auto check disabled after save")
	}
	if loaded.DefaultSort != "progress" {
		t.Errorf("Expected sort 'progress', got '%s'", loaded.DefaultSort)
	}
}

func TestLastCheckRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	if _, ok, err := repo.LastCheck(); err != nil || ok {
		t.Fatalf("Expected no last check on first run (ok=%v, err=%v)", ok, err)
	}

	now := time.Now().Truncate(time.Millisecond)
	if err := repo.SetLastCheck(now); err != nil {
		t.Fatalf("Failed to set last check: %v", err)
	}

	got, ok, err := repo.LastCheck()
	if err != nil || !ok {
		t.Fatalf("Expected last check to be set (ok=%v, err=%v)", ok, err)
	}
	if !got.Equal(now) {
		t.Errorf("Expected %v, got %v", now, got)
	}

	if err := repo.ClearLastCheck(); err != nil {
		t.Fatalf("Failed to clear last check: %v", err)
	}
	if _, ok, _ := repo.LastCheck(); ok {
		t.Error("Expected last check cleared")
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	repo := setupTestRepo(t)

	history, err := repo.LoadHistory()
	if err != nil {
		t.Fatalf("Failed to load empty history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("Expected empty history, got %v", history)
	}

	history["1.5.8"] = time.Now().UnixMilli()
	if err := repo.SaveHistory(history); err != nil {
		t.Fatalf("Failed to save history: %v", err)
	}

	loaded, err := repo.LoadHistory()
	if err != nil {
		t.Fatalf("Failed to load history: %v", err)
	}
	if loaded["1.5.8"] != history["1.5.8"] {
		t.Errorf("Expected history entry to survive, got %v", loaded)
	}
}

func TestFirstVisit(t *testing.T) {
	repo := setupTestRepo(t)

	first, err := repo.FirstVisit()
	if err != nil {
		t.Fatalf("Failed to check first visit: %v", err)
	}
	if !first {
		t.Error("Expected first visit on a fresh data file")
	}

	if err := repo.MarkVisited(); err != nil {
		t.Fatalf("Failed to mark visited: %v", err)
	}

	first, err = repo.FirstVisit()
	if err != nil {
		t.Fatalf("Failed to re-check first visit: %v", err)
	}
	if first {
		t.Error("Expected first visit flag to be cleared after MarkVisited")
	}
}

func TestUserIDIsStable(t *testing.T) {
	repo := setupTestRepo(t)

	id1, err := repo.UserID()
	if err != nil {
		t.Fatalf("Failed to get user ID: %v", err)
	}
	id2, err := repo.UserID()
	if err != nil {
		t.Fatalf("Failed to get user ID again: %v", err)
	}
	if id1 == "" || id1 != id2 {
		t.Errorf("Expected a stable user ID, got %q and %q", id1, id2)
	}
}

func TestPersistErrorSurfacesAfterClose(t *testing.T) {
	repo := setupTestRepo(t)
	repo.db.Close()

	err := repo.SaveLibrary([]*Manhwa{{ID: "a", Title: "A"}})
	var perr *PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected a PersistError, got %v", err)
	}
	if perr.Key != KeyLibrary {
		t.Errorf("Expected key %q, got %q", KeyLibrary, perr.Key)
	}
}
