package listing

import (
	"strings"
	"unicode/utf8"

	"github.com/starford/quill/internal/note"
)

const maxPreview = 100

// Preview builds the one-line listing preview: title plus first body
// line. Auto-generated "Quick note <id>" titles are suppressed when the
// body has content of its own.
func Preview(n *note.Note) string {
	firstLine := ""
	for _, line := range strings.Split(n.Body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			firstLine = trimmed
			break
		}
	}
	title := strings.TrimSpace(n.Title)
	includeTitle := !strings.HasPrefix(strings.ToLower(title), "quick note ")

	var text string
	switch {
	case firstLine != "" && includeTitle:
		text = strings.TrimSpace(title + " " + firstLine)
	case firstLine != "":
		text = firstLine
	case title != "":
		text = title
	default:
		text = "[empty]"
	}
	if utf8.RuneCountInString(text) > maxPreview {
		runes := []rune(text)
		text = string(runes[:maxPreview]) + "…"
	}
	return text
}

// SearchPreview is the preview for a search listing. When the query
// matches only the body, a snippet around the first hit replaces the
// first-line preview so the match is actually visible.
func SearchPreview(n *note.Note, query string) string {
	if query == "" {
		return Preview(n)
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(n.Title), q) {
		return Preview(n)
	}
	pos := strings.Index(strings.ToLower(n.Body), q)
	if pos < 0 {
		return Preview(n)
	}

	start := pos - 20
	if start < 0 {
		start = 0
	}
	end := pos + len(q) + 80
	if end > len(n.Body) {
		end = len(n.Body)
	}
	for start > 0 && !utf8.RuneStart(n.Body[start]) {
		start--
	}
	for end < len(n.Body) && !utf8.RuneStart(n.Body[end]) {
		end++
	}

	snippet := strings.Join(strings.Fields(n.Body[start:end]), " ")
	if start > 0 {
		snippet = "… " + snippet
	}
	if end < len(n.Body) {
		snippet += "…"
	}
	if title := strings.TrimSpace(n.Title); title != "" {
		snippet = strings.TrimSpace(title + " " + snippet)
	}
	return Truncate(snippet, maxPreview)
}
