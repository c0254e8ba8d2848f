package data

import "testing"

func prefixSet(n int) ChapterSet {
	s := NewChapterSet()
	for i := 1; i <= n; i++ {
		s.Add(i)
	}
	return s
}

func assertExactly(t *testing.T, got ChapterSet, want ...int) {
	t.Helper()
	if got.Len() != len(want) {
		t.Fatalf("Expected %d read chapters, got %v", len(want), got.Sorted())
	}
	for _, c := range want {
		if !got.Has(c) {
			t.Fatalf("Expected chapter %d to be read, got %v", c, got.Sorted())
		}
	}
}

func TestToggleChapterMarksPrefixRead(t *testing.T) {
	m := &Manhwa{TotalChapters: 10, ReadChapters: NewChapterSet()}

	m.ToggleChapter(4)

	assertExactly(t, m.ReadChapters, 1, 2, 3, 4)
}

func TestToggleChapterRewindsSuffix(t *testing.T) {
	m := &Manhwa{TotalChapters: 10, ReadChapters: prefixSet(7)}

	m.ToggleChapter(5)

	assertExactly(t, m.ReadChapters, 1, 2, 3, 4)
}

func TestToggleChapterScenario(t *testing.T) {
	// {1,2,3} + toggle(5) -> {1..5}; toggle(5) again -> {1..4}.
	m := &Manhwa{TotalChapters: 10, ReadChapters: NewChapterSet(1, 2, 3)}

	m.ToggleChapter(5)
	assertExactly(t, m.ReadChapters, 1, 2, 3, 4, 5)

	m.ToggleChapter(5)
	assertExactly(t, m.ReadChapters, 1, 2, 3, 4)
}

func TestToggleChapterAlwaysYieldsPrefix(t *testing.T) {
	// Even from a non-contiguous read set (possible via imports), toggling
	// produces a contiguous prefix.
	m := &Manhwa{TotalChapters: 8, ReadChapters: NewChapterSet(2, 5, 7)}

	m.ToggleChapter(4)
	assertExactly(t, m.ReadChapters, 1, 2, 3, 4)

	m = &Manhwa{TotalChapters: 8, ReadChapters: NewChapterSet(2, 5, 7)}
	m.ToggleChapter(5)
	assertExactly(t, m.ReadChapters, 1, 2, 3, 4)
}

func TestToggleChapterNilSet(t *testing.T) {
	m := &Manhwa{TotalChapters: 3}

	m.ToggleChapter(2)

	assertExactly(t, m.ReadChapters, 1, 2)
}

func TestNextUnread(t *testing.T) {
	m := &Manhwa{TotalChapters: 5, ReadChapters: NewChapterSet(1, 2)}
	if got := m.NextUnread(); got != 3 {
		t.Errorf("Expected next unread 3, got %d", got)
	}

	m.ReadChapters = prefixSet(5)
	if got := m.NextUnread(); got != 5 {
		t.Errorf("Expected next unread 5 when fully read, got %d", got)
	}

	m.ReadChapters = NewChapterSet(1, 3)
	if got := m.NextUnread(); got != 2 {
		t.Errorf("Expected next unread 2 with a gap, got %d", got)
	}
}

func TestResetProgress(t *testing.T) {
	m := &Manhwa{TotalChapters: 5, ReadChapters: prefixSet(5)}

	m.ResetProgress()

	if m.ReadChapters.Len() != 0 {
		t.Errorf("Expected empty read set, got %v", m.ReadChapters.Sorted())
	}
}

func TestPruneReadChapters(t *testing.T) {
	m := &Manhwa{TotalChapters: 3, ReadChapters: NewChapterSet(1, 2, 3, 4, 7)}

	m.PruneReadChapters()

	assertExactly(t, m.ReadChapters, 1, 2, 3)
}

func TestProgressAndCompletion(t *testing.T) {
	m := &Manhwa{TotalChapters: 4, ReadChapters: NewChapterSet(1, 2)}
	if got := m.Progress(); got != 0.5 {
		t.Errorf("Expected progress 0.5, got %f", got)
	}
	if m.IsCompleted() {
		t.Error("Expected not completed")
	}

	m.ReadChapters = prefixSet(4)
	if !m.IsCompleted() {
		t.Error("Expected completed")
	}

	empty := &Manhwa{}
	if empty.Progress() != 0 || empty.IsCompleted() {
		t.Error("Expected zero-chapter title to be neither progressed nor completed")
	}
}

func TestLastRead(t *testing.T) {
	m := &Manhwa{TotalChapters: 10, ReadChapters: NewChapterSet(1, 2, 6)}
	if got := m.LastRead(); got != 6 {
		t.Errorf("Expected last read 6, got %d", got)
	}
}
