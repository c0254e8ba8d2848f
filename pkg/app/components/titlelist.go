package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ixaliom/ixwha/pkg/app/styles"
	"github.com/ixaliom/ixwha/pkg/data"
)

// TitleList renders the library as a column of selectable cards.
type TitleList struct {
	Items         []*data.Manhwa
	SelectedIndex int
	Width         int
	Height        int
}

func NewTitleList() *TitleList {
	return &TitleList{
		Items:         []*data.Manhwa{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (l *TitleList) SetItems(items []*data.Manhwa) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *TitleList) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *TitleList) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *TitleList) Selected() *data.Manhwa {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return l.Items[l.SelectedIndex]
}

func (l *TitleList) View() string {
	if len(l.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No title here yet")
		return lipgloss.Place(l.Width, l.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder

	for i, m := range l.Items {
		cardStyle := styles.CardStyle
		if i == l.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := styles.TitleStyle.Render(m.Title + badges(m))
		progress := ReadProgress(m, 30)

		next := styles.MutedStyle.Render(fmt.Sprintf("Next unread: chapter %d", m.NextUnread()))
		if m.IsCompleted() {
			next = styles.CompletedStyle.Render("Up to date")
		}

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			progress,
			next,
		)

		card := cardStyle.Width(l.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	return b.String()
}

func badges(m *data.Manhwa) string {
	var b string
	if m.IsFavorite {
		b += " " + styles.FavoriteStyle.Render("★")
	}
	if m.IsDropped {
		b += " " + styles.DroppedStyle.Render("✖")
	}
	return b
}
