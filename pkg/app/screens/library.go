package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ixaliom/ixwha/pkg/app/components"
	"github.com/ixaliom/ixwha/pkg/app/styles"
	"github.com/ixaliom/ixwha/pkg/library"
	"github.com/ixaliom/ixwha/pkg/services"
)

var sortCycle = []string{library.SortTitle, library.SortLastRead, library.SortProgress}

type LibraryScreen struct {
	store   *library.Store
	checker *services.Checker

	titleList *components.TitleList
	search    textinput.Model
	searching bool

	tab      library.Tab
	sortKey  string
	checking bool

	width  int
	height int
	err    error
}

func NewLibraryScreen(store *library.Store, checker *services.Checker) *LibraryScreen {
	ti := textinput.New()
	ti.Placeholder = "Filter titles..."
	ti.CharLimit = 100
	ti.Width = 40

	return &LibraryScreen{
		store:     store,
		checker:   checker,
		titleList: components.NewTitleList(),
		search:    ti,
		tab:       library.TabAll,
		sortKey:   library.SortTitle,
	}
}

func (s *LibraryScreen) Tab() library.Tab { return s.tab }

func (s *LibraryScreen) Init() tea.Cmd {
	s.refresh()
	return nil
}

func (s *LibraryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.titleList.Width = msg.Width - 4
		s.titleList.Height = msg.Height - 10

	case tea.KeyMsg:
		if s.searching {
			switch msg.String() {
			case "enter", "esc":
				s.searching = false
				s.search.Blur()
				s.refresh()
			default:
				var cmd tea.Cmd
				s.search, cmd = s.search.Update(msg)
				s.refresh()
				return s, cmd
			}
			return s, nil
		}

		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "up", "k":
			s.titleList.Prev()
		case "down", "j":
			s.titleList.Next()
		case "tab":
			s.tab = nextTab(s.tab)
			s.refresh()
		case "s":
			s.sortKey = nextSort(s.sortKey)
			s.refresh()
		case "/":
			s.searching = true
			s.search.Focus()
			return s, textinput.Blink
		case "f":
			if m := s.titleList.Selected(); m != nil {
				s.err = s.store.ToggleFavorite(m.ID)
				s.refresh()
			}
		case "x":
			if m := s.titleList.Selected(); m != nil {
				s.err = s.store.ToggleDropped(m.ID)
				s.refresh()
			}
		case "c":
			if s.checker != nil && !s.checking {
				s.checking = true
				return s, s.runCheck
			}
		case "enter":
			if m := s.titleList.Selected(); m != nil {
				id := m.ID
				return s, func() tea.Msg {
					return SwitchScreenMsg{Screen: "details", Data: id}
				}
			}
		}

	case checkDoneMsg:
		s.checking = false
		s.err = msg.err
		s.refresh()
	}

	return s, nil
}

func (s *LibraryScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}

	header := styles.TitleStyle.Render("📚 IXWHA — Manhwa Tracker")

	var searchView string
	if s.searching || s.search.Value() != "" {
		searchView = styles.InputStyle.Render(s.search.View()) + "\n\n"
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	var checkingMsg string
	if s.checking {
		checkingMsg = styles.SubtitleStyle.Render("🔍 Checking for new chapters...") + "\n\n"
	}

	listView := s.titleList.View()

	help := styles.HelpStyle.Render(
		"↑/k ↓/j: move • enter: details • tab: next tab • s: sort (" + s.sortKey + ") • /: filter • f: favorite • x: drop • c: check • q: quit",
	)

	return fmt.Sprintf("%s\n%s%s%s%s\n%s", header, searchView, errorMsg, checkingMsg, listView, help)
}

func (s *LibraryScreen) refresh() {
	s.titleList.SetItems(library.Project(s.store.List(), s.tab, s.search.Value(), s.sortKey))
}

type checkDoneMsg struct {
	updates []services.Update
	err     error
}

func (s *LibraryScreen) runCheck() tea.Msg {
	updates, err := s.checker.Force(context.Background())
	return checkDoneMsg{updates: updates, err: err}
}

func nextTab(tab library.Tab) library.Tab {
	for i, t := range library.Tabs {
		if t == tab {
			return library.Tabs[(i+1)%len(library.Tabs)]
		}
	}
	return library.TabAll
}

func nextSort(key string) string {
	for i, k := range sortCycle {
		if k == key {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return library.SortTitle
}
