package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ixaliom/ixwha/pkg/app/styles"
	"github.com/ixaliom/ixwha/pkg/library"
	"github.com/ixaliom/ixwha/pkg/services"
)

type screenType int

const (
	libraryView screenType = iota
	detailsView
)

// SwitchScreenMsg asks the root screen to change the active view.
type SwitchScreenMsg struct {
	Screen string
	Data   any
}

type RootScreen struct {
	store   *library.Store
	checker *services.Checker

	currentView screenType
	library     *LibraryScreen
	details     *DetailsScreen

	width  int
	height int
}

func NewRootScreen(store *library.Store, checker *services.Checker) *RootScreen {
	return &RootScreen{
		store:       store,
		checker:     checker,
		currentView: libraryView,
		library:     NewLibraryScreen(store, checker),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.library.Init()
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case "library":
			r.currentView = libraryView
			cmd = r.library.Init()
		case "details":
			if id, ok := msg.Data.(string); ok {
				r.details = NewDetailsScreen(r.store, id)
				r.currentView = detailsView
				cmd = r.details.Init()
			}
		}
		return r, cmd
	}

	switch r.currentView {
	case libraryView:
		newModel, newCmd := r.library.Update(msg)
		r.library = newModel.(*LibraryScreen)
		return r, newCmd
	case detailsView:
		if r.details != nil {
			newModel, newCmd := r.details.Update(msg)
			r.details = newModel.(*DetailsScreen)
			return r, newCmd
		}
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	tabs := r.renderTabs()

	var content string
	switch r.currentView {
	case libraryView:
		content = r.library.View()
	case detailsView:
		if r.details != nil {
			content = r.details.View()
		}
	}

	return fmt.Sprintf("%s\n\n%s", tabs, content)
}

func (r *RootScreen) renderTabs() string {
	if r.currentView == detailsView {
		return ""
	}

	rendered := make([]string, 0, len(library.Tabs))
	for _, tab := range library.Tabs {
		label := tabLabel(tab)
		if tab == r.library.Tab() {
			rendered = append(rendered, styles.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, styles.InactiveTabStyle.Render(label))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func tabLabel(tab library.Tab) string {
	switch tab {
	case library.TabAll:
		return "All"
	case library.TabCompleted:
		return "Completed"
	case library.TabDropped:
		return "Dropped"
	case library.TabFavorites:
		return "Favorites"
	default:
		return string(tab)
	}
}
