package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ixaliom/ixwha/pkg/app/screens"
	"github.com/ixaliom/ixwha/pkg/library"
	"github.com/ixaliom/ixwha/pkg/services"
)

type App struct {
	store   *library.Store
	checker *services.Checker
}

func NewApp(store *library.Store, checker *services.Checker) *App {
	return &App{store: store, checker: checker}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.store, a.checker)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
