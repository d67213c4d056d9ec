// Package tag normalizes note tags and assigns them stable display colors.
package tag

import (
	"slices"
	"strings"
)

// Tag is a normalized tag: lowercase, a single leading '#', and dashes
// instead of interior whitespace.
type Tag string

// None is the result of normalizing input with no usable content.
const None Tag = ""

// Normalize canonicalizes raw user input. It trims whitespace, strips any
// run of leading '#', lowercases, and collapses interior whitespace to
// single dashes. Normalize is idempotent.
func Normalize(raw string) Tag {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	if s == "" {
		return None
	}
	s = strings.ToLower(strings.Join(strings.Fields(s), "-"))
	return Tag("#" + s)
}

// NormalizeAll normalizes every input, drops empties, and returns the
// result sorted and deduplicated.
func NormalizeAll(raw []string) []Tag {
	tags := make([]Tag, 0, len(raw))
	for _, r := range raw {
		if t := Normalize(r); t != None {
			tags = append(tags, t)
		}
	}
	slices.Sort(tags)
	return slices.Compact(tags)
}

// Join renders tags as a comma-separated header value.
func Join(tags []Tag) string {
	return join(tags, ", ")
}

// JoinSpace renders tags space-separated, the listing cell form.
func JoinSpace(tags []Tag) string {
	return join(tags, " ")
}

func join(tags []Tag, sep string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, sep)
}

// HasAll reports whether every wanted tag is present in have. An empty
// want always matches.
func HasAll(have, want []Tag) bool {
	for _, w := range want {
		if !slices.Contains(have, w) {
			return false
		}
	}
	return true
}

// Hash is a djb2-xor digest of the tag text. It is part of the on-screen
// contract: a tag keeps its color across runs and machines.
func Hash(t Tag) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(t); i++ {
		h = (h<<5 + h) ^ uint64(t[i])
	}
	return h
}

// palette holds the pastel hex colors tags are bucketed into.
var palette = []string{
	"#89B4FA", "#A6E3A1", "#F9E2AF", "#F5C2E7",
	"#FFA9A7", "#94E2D5", "#C6A0F6", "#F0C6C6",
	"#F4DBD6", "#B5E8E0", "#87B0F9", "#B7BDF8",
	"#C9CBFF", "#FFD6A5", "#B3FFAB", "#FFC9D2",
	"#C4B5FF", "#BAE1FF", "#FFF1AD", "#CCFFE5",
	"#FFC7BE", "#D6B6FF", "#FFD6EB", "#A8EDFF",
	"#EEE7DC", "#D3E4CD", "#FFEABE", "#D6C8FF",
	"#FFD2C6", "#CCF6DD", "#FFE6D6", "#C4DEFF",
}

// ColorIndex maps a tag onto a palette bucket.
func ColorIndex(t Tag) int {
	return int(Hash(t) % uint64(len(palette)))
}

// Color returns the hex color assigned to a tag.
func Color(t Tag) string {
	return palette[ColorIndex(t)]
}

// DefaultPinned is the out-of-the-box pinned tag set shown by the tags
// overview even when unused.
var DefaultPinned = []Tag{"#todo", "#meeting", "#scratch"}

// ParseList splits a comma-separated list into normalized tags. Unlike
// NormalizeAll it preserves first-seen order, which matters for pinned
// tag configuration.
func ParseList(s string) []Tag {
	var tags []Tag
	for _, part := range strings.Split(s, ",") {
		t := Normalize(part)
		if t == None || slices.Contains(tags, t) {
			continue
		}
		tags = append(tags, t)
	}
	return tags
}
