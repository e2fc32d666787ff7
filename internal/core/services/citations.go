package services

import (
	"fmt"
	"strings"

	"github.com/baycast/searchgate/internal/core/domain"
)

// citationGuideHeader opens every citation guide
const citationGuideHeader = "Web Sources:\n"

// FormatCitations builds a citation marker block and a numbered source
// guide from an ordered list of source strings. The title of each
// source is the text before its first newline, or the whole string if
// it has none. An empty source list yields an empty block and a guide
// containing only the header.
func FormatCitations(sources []string) (string, string) {
	markers := make([]string, 0, len(sources))

	var guide strings.Builder
	guide.WriteString(citationGuideHeader)

	for i, source := range sources {
		title := sourceTitle(source)
		markers = append(markers, fmt.Sprintf("[%d]", i+1))
		fmt.Fprintf(&guide, "[%d] %s\n", i+1, title)
	}

	return strings.Join(markers, " "), guide.String()
}

// Citations maps each source to a numbered Citation entry
func Citations(sources []string) []domain.Citation {
	citations := make([]domain.Citation, 0, len(sources))
	for i, source := range sources {
		citations = append(citations, domain.Citation{
			Index: i + 1,
			Title: sourceTitle(source),
		})
	}
	return citations
}

func sourceTitle(source string) string {
	if idx := strings.Index(source, "\n"); idx >= 0 {
		return source[:idx]
	}
	return source
}
