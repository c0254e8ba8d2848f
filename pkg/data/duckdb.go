package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

// Snapshot keys. These match the storage keys used by earlier releases so an
// existing data file keeps working across versions.
const (
	KeyLibrary           = "manhwaLibrary"
	KeySettings          = "ixwha_settings"
	KeyHistory           = "ixwha_discord_notification_history"
	KeyStats             = "ixwha_discord_stats"
	KeyLastCheck         = "ixwha_last_check"
	KeyLastViewedVersion = "lastViewedVersion"
	KeyHasVisited        = "hasVisited"
	KeyUserID            = "userId"
)

// PersistError is returned when a snapshot write is rejected, so callers can
// decide whether to retry, alert, or abort.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist snapshot %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// InitDuckDB opens (creating if needed) the DuckDB file that backs all
// snapshots.
func InitDuckDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key VARCHAR PRIMARY KEY,
			value JSON NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}

	return db, nil
}

// Repository stores named JSON snapshots. Every load reads the full value and
// every save writes it back whole; there is no partial update path.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Open is a convenience wrapper combining InitDuckDB and NewRepository.
func Open(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return NewRepository(db), nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// loadSnapshot unmarshals the snapshot under key into v. The second return
// is false when no snapshot exists yet.
func (r *Repository) loadSnapshot(key string, v any) (bool, error) {
	var raw string
	err := r.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return true, nil
}

func (r *Repository) saveSnapshot(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return &PersistError{Key: key, Err: err}
	}
	_, err = r.db.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, string(raw))
	if err != nil {
		return &PersistError{Key: key, Err: err}
	}
	return nil
}

func (r *Repository) deleteSnapshot(key string) error {
	if _, err := r.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return &PersistError{Key: key, Err: err}
	}
	return nil
}

// LoadLibrary returns the persisted library, or an empty one on first run.
func (r *Repository) LoadLibrary() ([]*Manhwa, error) {
	var library []*Manhwa
	if _, err := r.loadSnapshot(KeyLibrary, &library); err != nil {
		return nil, err
	}
	for _, m := range library {
		if m.ReadChapters == nil {
			m.ReadChapters = NewChapterSet()
		}
	}
	return library, nil
}

func (r *Repository) SaveLibrary(library []*Manhwa) error {
	if library == nil {
		library = []*Manhwa{}
	}
	return r.saveSnapshot(KeyLibrary, library)
}

// LoadSettings returns persisted settings, falling back to defaults when the
// snapshot is missing or unreadable.
func (r *Repository) LoadSettings() Settings {
	settings := DefaultSettings()
	if _, err := r.loadSnapshot(KeySettings, &settings); err != nil {
		return DefaultSettings()
	}
	return settings
}

func (r *Repository) SaveSettings(settings Settings) error {
	return r.saveSnapshot(KeySettings, settings)
}

// LoadHistory returns the notification history (event key to unix-milli
// timestamp of the last send).
func (r *Repository) LoadHistory() (map[string]int64, error) {
	history := map[string]int64{}
	if _, err := r.loadSnapshot(KeyHistory, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *Repository) SaveHistory(history map[string]int64) error {
	return r.saveSnapshot(KeyHistory, history)
}

func (r *Repository) LoadStats() (*Stats, error) {
	stats := &Stats{}
	if _, err := r.loadSnapshot(KeyStats, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *Repository) SaveStats(stats *Stats) error {
	return r.saveSnapshot(KeyStats, stats)
}

// LastCheck returns the time of the last chapter check. ok is false when no
// check has run yet.
func (r *Repository) LastCheck() (t time.Time, ok bool, err error) {
	var millis string
	found, err := r.loadSnapshot(KeyLastCheck, &millis)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	n, err := strconv.ParseInt(millis, 10, 64)
	if err != nil {
		return time.Time{}, false, nil
	}
	return time.UnixMilli(n), true, nil
}

func (r *Repository) SetLastCheck(t time.Time) error {
	return r.saveSnapshot(KeyLastCheck, strconv.FormatInt(t.UnixMilli(), 10))
}

func (r *Repository) ClearLastCheck() error {
	return r.deleteSnapshot(KeyLastCheck)
}

func (r *Repository) LastViewedVersion() (string, error) {
	var version string
	_, err := r.loadSnapshot(KeyLastViewedVersion, &version)
	return version, err
}

func (r *Repository) SetLastViewedVersion(version string) error {
	return r.saveSnapshot(KeyLastViewedVersion, version)
}

// FirstVisit reports whether this is the first run against this data file.
func (r *Repository) FirstVisit() (bool, error) {
	var visited bool
	found, err := r.loadSnapshot(KeyHasVisited, &visited)
	if err != nil {
		return false, err
	}
	return !found, nil
}

func (r *Repository) MarkVisited() error {
	return r.saveSnapshot(KeyHasVisited, true)
}

// UserID returns a stable anonymous identifier for this install, creating one
// on first use.
func (r *Repository) UserID() (string, error) {
	var id string
	found, err := r.loadSnapshot(KeyUserID, &id)
	if err != nil {
		return "", err
	}
	if found && id != "" {
		return id, nil
	}
	id = "user_" + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := r.saveSnapshot(KeyUserID, id); err != nil {
		return "", err
	}
	return id, nil
}
