package data

// ToggleChapter flips reading progress around chapter n. Toggling an unread
// chapter marks everything up to and including n as read; toggling a read
// chapter unmarks it and everything after it. Either way the read set ends up
// as a contiguous prefix. Callers are expected to pass n within
// [1, TotalChapters].
func (m *Manhwa) ToggleChapter(n int) {
	if m.ReadChapters == nil {
		m.ReadChapters = NewChapterSet()
	}
	if m.ReadChapters.Has(n) {
		for i := n; i <= m.TotalChapters; i++ {
			m.ReadChapters.Delete(i)
		}
	} else {
		for i := 1; i <= n; i++ {
			m.ReadChapters.Add(i)
		}
	}
}

// NextUnread returns the lowest unread chapter, or TotalChapters when
// everything is read. Used to build the continue-reading link.
func (m *Manhwa) NextUnread() int {
	for i := 1; i <= m.TotalChapters; i++ {
		if !m.ReadChapters.Has(i) {
			return i
		}
	}
	return m.TotalChapters
}

// ResetProgress clears the read set.
func (m *Manhwa) ResetProgress() {
	m.ReadChapters = NewChapterSet()
}

// Progress returns the read fraction in [0, 1].
func (m *Manhwa) Progress() float64 {
	if m.TotalChapters <= 0 {
		return 0
	}
	return float64(m.ReadChapters.Len()) / float64(m.TotalChapters)
}

// LastRead returns the highest read chapter, or 0 when nothing is read.
func (m *Manhwa) LastRead() int {
	return m.ReadChapters.Max()
}

// IsCompleted reports whether every known chapter has been read.
func (m *Manhwa) IsCompleted() bool {
	return m.TotalChapters > 0 && m.ReadChapters.Len() == m.TotalChapters
}

// PruneReadChapters drops read entries above TotalChapters. Called whenever
// the chapter count is lowered so the read set stays within bounds.
func (m *Manhwa) PruneReadChapters() {
	for c := range m.ReadChapters {
		if c > m.TotalChapters {
			m.ReadChapters.Delete(c)
		}
	}
}
