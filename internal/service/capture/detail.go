package capture

import (
	"strings"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// PreviewLines is how many content lines the detail overlay shows before
// the user expands it.
const PreviewLines = 3

// Detail is the detail overlay view of the selected entry.
type Detail struct {
	Entry domain.Entry
	// Content is the entry text, truncated unless ShowFullText.
	Content  string
	Analysis string
	// Truncatable reports whether the content has more than PreviewLines lines.
	Truncatable  bool
	ShowFullText bool
}

// Detail returns the overlay for the selected entry, or false when the
// overlay is closed.
func (s *Service) Detail() (Detail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selected == nil {
		return Detail{}, false
	}

	return BuildDetail(*s.selected, s.showFullText), true
}

// BuildDetail renders e for the overlay.
func BuildDetail(e domain.Entry, showFullText bool) Detail {
	content := e.Content
	if !showFullText {
		content = TruncateLines(e.Content, PreviewLines)
	}
	return Detail{
		Entry:        e,
		Content:      content,
		Analysis:     e.Analysis,
		Truncatable:  strings.Count(e.Content, "\n") >= PreviewLines,
		ShowFullText: showFullText,
	}
}

// TruncateLines keeps the first n lines of text (split on "\n").
func TruncateLines(text string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.SplitN(text, "\n", n+1)
	if len(lines) <= n {
		return text
	}
	return strings.Join(lines[:n], "\n")
}
