package library

import (
	"sort"
	"strings"

	"github.com/ixaliom/ixwha/pkg/data"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Tab selects one of the library views.
type Tab string

const (
	TabAll       Tab = "all"
	TabCompleted Tab = "completed"
	TabDropped   Tab = "dropped"
	TabFavorites Tab = "favorites"
)

var Tabs = []Tab{TabAll, TabCompleted, TabDropped, TabFavorites}

func ParseTab(s string) (Tab, bool) {
	switch Tab(s) {
	case TabAll, TabCompleted, TabDropped, TabFavorites:
		return Tab(s), true
	}
	return "", false
}

// Sort keys for Project.
const (
	SortTitle    = "title"
	SortLastRead = "lastRead"
	SortProgress = "progress"
)

// collator is locale-aware so accented titles sort where readers expect.
var collator = collate.New(language.French, collate.IgnoreCase)

// Project returns a filtered, sorted copy of items. It never mutates the
// input; favorites always sort ahead of the rest.
func Project(items []*data.Manhwa, tab Tab, search, sortKey string) []*data.Manhwa {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]*data.Manhwa, 0, len(items))
	for _, m := range items {
		if search != "" && !strings.Contains(strings.ToLower(m.Title), search) {
			continue
		}
		if !matchesTab(m, tab) {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsFavorite != b.IsFavorite {
			return a.IsFavorite
		}
		switch sortKey {
		case SortLastRead:
			return a.LastRead() > b.LastRead()
		case SortProgress:
			return a.Progress() > b.Progress()
		default:
			return collator.CompareString(a.Title, b.Title) < 0
		}
	})

	return out
}

func matchesTab(m *data.Manhwa, tab Tab) bool {
	switch tab {
	case TabCompleted:
		return m.IsCompleted()
	case TabDropped:
		return m.IsDropped
	case TabFavorites:
		return m.IsFavorite
	default:
		// The main view shows what is still being read.
		return !m.IsCompleted() && !m.IsDropped
	}
}
