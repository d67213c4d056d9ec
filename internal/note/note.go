// Package note models a single note and its on-disk text representation.
package note

import (
	"strings"
	"unicode/utf8"

	"github.com/starford/quill/internal/tag"
)

// Note is one note file. Timestamps are kept as header strings so reading
// and rewriting a file never reformats values it did not touch.
type Note struct {
	ID       string
	Title    string
	Created  string
	Updated  string
	Deleted  string // set while the note lives in trash
	Archived string // set while the note lives in archive
	Tags     []tag.Tag
	Body     string
	Size     int64
}

// IsDeleted reports whether the note carries a deletion marker.
func (n *Note) IsDeleted() bool { return n.Deleted != "" }

// IsArchived reports whether the note carries an archive marker.
func (n *Note) IsArchived() bool { return n.Archived != "" }

// Matches reports whether the query occurs in the title or body,
// case-insensitively. An empty query matches everything.
func (n *Note) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(n.Title), q) ||
		strings.Contains(strings.ToLower(n.Body), q)
}

const maxDerivedTitle = 60

// DeriveTitle builds a title for a note captured without one: the first
// non-blank body line clamped to a display length, or a generic name
// carrying the ID when the body is empty too.
func DeriveTitle(body, id string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxDerivedTitle {
			return line
		}
		runes := []rune(line)
		return strings.TrimSpace(string(runes[:maxDerivedTitle])) + "…"
	}
	return "Quick note " + id
}
