package data

import (
	"encoding/json"
	"sort"
	"time"
)

// Manhwa is one tracked title and its reading progress.
type Manhwa struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	CoverURL      string     `json:"cover,omitempty"`
	SourceURL     string     `json:"readUrl,omitempty"`
	TotalChapters int        `json:"totalChapters"`
	ReadChapters  ChapterSet `json:"readChapters"`
	IsFavorite    bool       `json:"isFavorite"`
	IsDropped     bool       `json:"isDropped"`
}

// ChapterSet is a set of read chapter numbers. It serializes as a sorted
// JSON array so exported libraries stay diffable and importable.
type ChapterSet map[int]struct{}

func NewChapterSet(chapters ...int) ChapterSet {
	s := make(ChapterSet, len(chapters))
	for _, c := range chapters {
		s[c] = struct{}{}
	}
	return s
}

func (s ChapterSet) Has(n int) bool {
	_, ok := s[n]
	return ok
}

func (s ChapterSet) Add(n int) {
	s[n] = struct{}{}
}

func (s ChapterSet) Delete(n int) {
	delete(s, n)
}

func (s ChapterSet) Len() int {
	return len(s)
}

// Max returns the highest chapter in the set, or 0 when empty.
func (s ChapterSet) Max() int {
	max := 0
	for c := range s {
		if c > max {
			max = c
		}
	}
	return max
}

// Sorted returns the chapters in ascending order.
func (s ChapterSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}

func (s ChapterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *ChapterSet) UnmarshalJSON(b []byte) error {
	var chapters []int
	if err := json.Unmarshal(b, &chapters); err != nil {
		return err
	}
	*s = NewChapterSet(chapters...)
	return nil
}

// Settings are the user preferences persisted alongside the library.
type Settings struct {
	AutoCheckEnabled     bool   `json:"autoCheckEnabled"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	DefaultSort          string `json:"defaultSort"`
}

func DefaultSettings() Settings {
	return Settings{
		AutoCheckEnabled:     true,
		NotificationsEnabled: true,
		DefaultSort:          "title",
	}
}

// Stats are cumulative usage counters reported in update notifications.
type Stats struct {
	TotalVisits   int           `json:"totalVisits"`
	UniqueUsers   []string      `json:"uniqueUsers"`
	LastUpdate    string        `json:"lastUpdate,omitempty"`
	UpdateHistory []UpdateEntry `json:"updateHistory"`
}

// UpdateEntry records one version transition seen by this install.
type UpdateEntry struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Type    string `json:"type"`
}

// maxUpdateHistory caps the update history kept in the stats snapshot.
const maxUpdateHistory = 10

// RecordVisit bumps the visit counter and registers the user identifier.
func (s *Stats) RecordVisit(userID string) {
	s.TotalVisits++
	for _, u := range s.UniqueUsers {
		if u == userID {
			return
		}
	}
	s.UniqueUsers = append(s.UniqueUsers, userID)
}

// RecordUpdate appends a version transition, keeping only the most recent
// entries.
func (s *Stats) RecordUpdate(version, updateType string, at time.Time) {
	s.LastUpdate = at.UTC().Format(time.RFC3339)
	s.UpdateHistory = append(s.UpdateHistory, UpdateEntry{
		Version: version,
		Date:    s.LastUpdate,
		Type:    updateType,
	})
	if len(s.UpdateHistory) > maxUpdateHistory {
		s.UpdateHistory = s.UpdateHistory[len(s.UpdateHistory)-maxUpdateHistory:]
	}
}

// UpdatesSince counts recorded updates newer than the cutoff.
func (s *Stats) UpdatesSince(cutoff time.Time) int {
	count := 0
	for _, u := range s.UpdateHistory {
		t, err := time.Parse(time.RFC3339, u.Date)
		if err != nil {
			continue
		}
		if t.After(cutoff) {
			count++
		}
	}
	return count
}
