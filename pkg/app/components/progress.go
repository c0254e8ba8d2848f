package components

import (
	"fmt"
	"strings"

	"github.com/ixaliom/ixwha/pkg/app/styles"
	"github.com/ixaliom/ixwha/pkg/data"
)

// ReadProgress renders a reading progress bar with a chapter counter,
// e.g. "█████░░░░░ 12/48 (25%)".
func ReadProgress(m *data.Manhwa, width int) string {
	if m.TotalChapters == 0 {
		return styles.MutedStyle.Render("no chapters")
	}

	read := m.ReadChapters.Len()
	bar := renderBar(read, m.TotalChapters, width)
	counter := fmt.Sprintf(" %d/%d (%.0f%%)", read, m.TotalChapters, m.Progress()*100)

	return bar + styles.MutedStyle.Render(counter)
}

func renderBar(current, total, width int) string {
	if total == 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// SimpleProgress renders a bare progress bar.
func SimpleProgress(current, total, width int) string {
	return renderBar(current, total, width)
}
