package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ixaliom/ixwha/pkg/data"
)

var ErrNotFound = errors.New("manhwa not found")

// Repository is the persistence boundary the store writes through.
type Repository interface {
	LoadLibrary() ([]*data.Manhwa, error)
	SaveLibrary([]*data.Manhwa) error
}

// Store holds the ordered library in memory and persists the whole snapshot
// after every mutation.
type Store struct {
	repo  Repository
	items []*data.Manhwa
}

// Load reads the persisted library into a new store.
func Load(repo Repository) (*Store, error) {
	items, err := repo.LoadLibrary()
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	return &Store{repo: repo, items: items}, nil
}

// List returns the titles in library order. The slice is shared; callers
// must not reorder it.
func (s *Store) List() []*data.Manhwa {
	return s.items
}

func (s *Store) Len() int {
	return len(s.items)
}

// FindByID returns the title with the given ID, or nil.
func (s *Store) FindByID(id string) *data.Manhwa {
	for _, m := range s.items {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Resolve finds a title by case-insensitive name first, then by ID.
func (s *Store) Resolve(nameOrID string) (*data.Manhwa, error) {
	for _, m := range s.items {
		if strings.EqualFold(m.Title, nameOrID) {
			return m, nil
		}
	}
	if m := s.FindByID(nameOrID); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, nameOrID)
}

// Add validates the record, assigns a fresh ID and appends it.
func (s *Store) Add(m *data.Manhwa) error {
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("title must not be empty")
	}
	if m.TotalChapters <= 0 {
		return errors.New("chapter count must be positive")
	}
	m.ID = uuid.NewString()
	if m.ReadChapters == nil {
		m.ReadChapters = data.NewChapterSet()
	}
	s.items = append(s.items, m)
	return s.persist()
}

// Patch carries the optional fields an update may change.
type Patch struct {
	Title         *string
	CoverURL      *string
	SourceURL     *string
	TotalChapters *int
}

// Update applies the patch to the title with the given ID. Lowering the
// chapter count prunes read chapters beyond the new bound.
func (s *Store) Update(id string, patch Patch) error {
	m := s.FindByID(id)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return errors.New("title must not be empty")
		}
		m.Title = *patch.Title
	}
	if patch.CoverURL != nil {
		m.CoverURL = *patch.CoverURL
	}
	if patch.SourceURL != nil {
		m.SourceURL = *patch.SourceURL
	}
	if patch.TotalChapters != nil {
		if *patch.TotalChapters <= 0 {
			return errors.New("chapter count must be positive")
		}
		m.TotalChapters = *patch.TotalChapters
		m.PruneReadChapters()
	}
	return s.persist()
}

// Remove deletes the title with the given ID.
func (s *Store) Remove(id string) error {
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return fmt.Errorf("%w: %q", ErrNotFound, id)
}

// ToggleChapter applies the range toggle to a title and persists.
func (s *Store) ToggleChapter(id string, chapter int) error {
	m := s.FindByID(id)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	m.ToggleChapter(chapter)
	return s.persist()
}

// ResetProgress clears a title's read set and persists.
func (s *Store) ResetProgress(id string) error {
	m := s.FindByID(id)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	m.ResetProgress()
	return s.persist()
}

// ToggleFavorite flips the favorite flag and persists.
func (s *Store) ToggleFavorite(id string) error {
	m := s.FindByID(id)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	m.IsFavorite = !m.IsFavorite
	return s.persist()
}

// ToggleDropped flips the dropped flag and persists.
func (s *Store) ToggleDropped(id string) error {
	m := s.FindByID(id)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	m.IsDropped = !m.IsDropped
	return s.persist()
}

// ParseExport decodes an exported library payload. Anything that is not a
// JSON array of titles is rejected, so a bad file never reaches the store.
func ParseExport(raw []byte) ([]*data.Manhwa, error) {
	var items []*data.Manhwa
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("not a library export: %w", err)
	}
	return items, nil
}

// ReplaceAll swaps the whole library, used by import. Records keep their IDs;
// missing ones get fresh IDs.
func (s *Store) ReplaceAll(items []*data.Manhwa) error {
	for _, m := range items {
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if m.ReadChapters == nil {
			m.ReadChapters = data.NewChapterSet()
		}
	}
	s.items = items
	return s.persist()
}

// Save persists the current snapshot. Exposed for callers that mutate
// records directly (the check pipeline, the TUI).
func (s *Store) Save() error {
	return s.persist()
}

func (s *Store) persist() error {
	return s.repo.SaveLibrary(s.items)
}
