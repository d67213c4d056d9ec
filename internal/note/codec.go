package note

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/starford/quill/internal/apperr"
	"github.com/starford/quill/internal/tag"
)

// separator divides the header block from the body.
const separator = "\n---\n"

// Encode renders a note in its file format: a fixed-order header block,
// a separator line, then the body with exactly one trailing newline.
// Optional headers are omitted when empty, never written blank.
func Encode(n *Note) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "Title: %s\n", n.Title)
	fmt.Fprintf(&b, "Created: %s\n", n.Created)
	fmt.Fprintf(&b, "Updated: %s\n", n.Updated)
	if len(n.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", tag.Join(n.Tags))
	}
	if n.Deleted != "" {
		fmt.Fprintf(&b, "Deleted: %s\n", n.Deleted)
	}
	if n.Archived != "" {
		fmt.Fprintf(&b, "Archived: %s\n", n.Archived)
	}
	b.WriteString("---\n")
	b.WriteString(strings.TrimRight(n.Body, "\n"))
	b.WriteByte('\n')
	return b.Bytes()
}

// Parse reads a note file. Known header keys are collected by exact
// prefix match and every other header line is skipped, so files written
// by future versions with extra headers still load. Everything after the
// separator is body, verbatim. A file without a separator is malformed.
func Parse(id string, data []byte, size int64) (*Note, error) {
	raw := string(data)
	idx := strings.Index(raw, separator)
	if idx < 0 {
		return nil, fmt.Errorf("note %s: missing header separator: %w", id, apperr.ErrParse)
	}

	n := &Note{
		ID:   id,
		Body: raw[idx+len(separator):],
		Size: size,
	}
	for _, line := range strings.Split(raw[:idx], "\n") {
		switch {
		case strings.HasPrefix(line, "Title:"):
			n.Title = strings.TrimSpace(line[len("Title:"):])
		case strings.HasPrefix(line, "Created:"):
			n.Created = strings.TrimSpace(line[len("Created:"):])
		case strings.HasPrefix(line, "Updated:"):
			n.Updated = strings.TrimSpace(line[len("Updated:"):])
		case strings.HasPrefix(line, "Deleted:"):
			n.Deleted = strings.TrimSpace(line[len("Deleted:"):])
		case strings.HasPrefix(line, "Archived:"):
			n.Archived = strings.TrimSpace(line[len("Archived:"):])
		case strings.HasPrefix(line, "Tags:"):
			n.Tags = tag.NormalizeAll(strings.Split(line[len("Tags:"):], ","))
		}
	}
	return n, nil
}
