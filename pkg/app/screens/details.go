package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ixaliom/ixwha/pkg/app/components"
	"github.com/ixaliom/ixwha/pkg/app/styles"
	"github.com/ixaliom/ixwha/pkg/data"
	"github.com/ixaliom/ixwha/pkg/library"
	"github.com/ixaliom/ixwha/pkg/sources"
)

// DetailsScreen shows one title with its chapter grid. Moving the cursor
// and toggling a chapter mirrors tapping chapter buttons in a reader app:
// toggling an unread chapter marks everything up to it read, toggling a
// read one unmarks it and everything after.
type DetailsScreen struct {
	store  *library.Store
	id     string
	manga  *data.Manhwa
	cursor int

	width  int
	height int
	err    error
}

func NewDetailsScreen(store *library.Store, id string) *DetailsScreen {
	return &DetailsScreen{store: store, id: id, cursor: 1}
}

func (s *DetailsScreen) Init() tea.Cmd {
	s.manga = s.store.FindByID(s.id)
	if s.manga != nil {
		s.cursor = s.manga.NextUnread()
		if s.cursor < 1 {
			s.cursor = 1
		}
	}
	return nil
}

func (s *DetailsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		if s.manga == nil {
			if msg.String() == "esc" || msg.String() == "backspace" {
				return s, backToLibrary
			}
			return s, nil
		}

		perRow := s.chaptersPerRow()
		switch msg.String() {
		case "q":
			return s, tea.Quit
		case "left", "h":
			if s.cursor > 1 {
				s.cursor--
			}
		case "right", "l":
			if s.cursor < s.manga.TotalChapters {
				s.cursor++
			}
		case "up", "k":
			if s.cursor-perRow >= 1 {
				s.cursor -= perRow
			}
		case "down", "j":
			if s.cursor+perRow <= s.manga.TotalChapters {
				s.cursor += perRow
			}
		case "enter", " ":
			s.err = s.store.ToggleChapter(s.id, s.cursor)
		case "R":
			s.err = s.store.ResetProgress(s.id)
		case "f":
			s.err = s.store.ToggleFavorite(s.id)
		case "x":
			s.err = s.store.ToggleDropped(s.id)
		case "esc", "backspace":
			return s, backToLibrary
		}
	}

	return s, nil
}

func backToLibrary() tea.Msg {
	return SwitchScreenMsg{Screen: "library"}
}

func (s *DetailsScreen) View() string {
	if s.width == 0 {
		return "Loading..."
	}
	if s.manga == nil {
		return styles.StatusError.Render("Title not found") + "\n" +
			styles.HelpStyle.Render("esc: back")
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("📖 %s", s.manga.Title))

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	info := s.renderInfo()
	grid := s.renderChapterGrid()

	help := styles.HelpStyle.Render(
		"←/→ ↑/↓: move • enter: toggle read up to here • R: reset • f: favorite • x: drop • esc: back • q: quit",
	)

	return fmt.Sprintf("%s\n%s%s\n%s\n%s", header, errorMsg, info, grid, help)
}

func (s *DetailsScreen) renderInfo() string {
	lines := []string{
		components.ReadProgress(s.manga, 40),
		styles.MutedStyle.Render(fmt.Sprintf("Last read: chapter %d", s.manga.LastRead())),
	}

	if s.manga.SourceURL != "" {
		readURL := readLink(s.manga, s.cursor)
		lines = append(lines, styles.MutedStyle.Render("Read at: "+readURL))
	}

	status := statusLine(s.manga)
	if status != "" {
		lines = append(lines, status)
	}

	info := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return styles.CardStyle.Width(s.width - 4).Render(info)
}

func statusLine(m *data.Manhwa) string {
	var parts []string
	if m.IsFavorite {
		parts = append(parts, styles.FavoriteStyle.Render("★ favorite"))
	}
	if m.IsDropped {
		parts = append(parts, styles.DroppedStyle.Render("✖ dropped"))
	}
	if m.IsCompleted() {
		parts = append(parts, styles.CompletedStyle.Render("✓ up to date"))
	}
	return strings.Join(parts, "  ")
}

func readLink(m *data.Manhwa, chapter int) string {
	if site, ok := sources.Lookup(m.SourceURL); ok {
		return site.ReadURL(m.SourceURL, chapter)
	}
	return sources.FallbackReadURL(m.SourceURL, chapter)
}

const chapterCellWidth = 5

func (s *DetailsScreen) chaptersPerRow() int {
	perRow := (s.width - 4) / chapterCellWidth
	if perRow < 1 {
		perRow = 1
	}
	return perRow
}

func (s *DetailsScreen) renderChapterGrid() string {
	total := s.manga.TotalChapters
	if total == 0 {
		return styles.MutedStyle.Render("No chapters yet")
	}

	perRow := s.chaptersPerRow()
	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Chapters (%d):", total)))
	b.WriteString("\n\n")

	for n := 1; n <= total; n++ {
		cell := fmt.Sprintf("%*d", chapterCellWidth-1, n)

		switch {
		case n == s.cursor:
			cell = styles.ChapterCursorStyle.Render(cell)
		case s.manga.ReadChapters.Has(n):
			cell = styles.ChapterReadStyle.Render(cell)
		default:
			cell = styles.ChapterUnreadStyle.Render(cell)
		}

		b.WriteString(cell)
		b.WriteString(" ")
		if n%perRow == 0 {
			b.WriteString("\n")
		}
	}
	if total%perRow != 0 {
		b.WriteString("\n")
	}

	return b.String()
}
