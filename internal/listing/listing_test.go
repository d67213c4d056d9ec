package listing

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/starford/quill/internal/note"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

func setProfile(t *testing.T, p termenv.Profile) {
	t.Helper()
	restore := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(p)
	t.Cleanup(func() { lipgloss.SetColorProfile(restore) })
}

func mustParse(t *testing.T, ts string) time.Time {
	t.Helper()
	parsed, err := time.Parse("02Jan06 15:04 -07:00", ts)
	if err != nil {
		t.Fatalf("parse %q: %v", ts, err)
	}
	return parsed
}

func TestRender_ExactLayout(t *testing.T) {
	setProfile(t, termenv.Ascii)

	updated := "02Jan06 15:04 -07:00"
	now := mustParse(t, updated).Add(26 * time.Hour)
	notes := []*note.Note{
		{ID: "abc123", Title: "Grocery list", Body: "Milk\n", Updated: updated},
	}
	lines := Render(notes, Options{Relative: true, Now: now, Width: 120})

	want := []string{
		"ID     | Updated   | Preview          ",
		"======================================",
		"abc123 | 1d 2h ago | Grocery list Milk",
	}
	if len(lines) != len(want) {
		t.Fatalf("Render returned %d lines, want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRender_TagsColumnOnlyWhenTagged(t *testing.T) {
	setProfile(t, termenv.Ascii)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	plain := []*note.Note{{ID: "a", Updated: "02Jan06 15:04 -07:00"}}
	lines := Render(plain, Options{Relative: true, Now: now})
	if strings.Contains(lines[0], "Tags") {
		t.Errorf("untagged listing should have no Tags column: %q", lines[0])
	}

	tagged := []*note.Note{{ID: "a", Updated: "02Jan06 15:04 -07:00", Tags: []tag.Tag{"#todo"}}}
	lines = Render(tagged, Options{Relative: true, Now: now})
	if !strings.Contains(lines[0], "Tags") {
		t.Errorf("tagged listing should have a Tags column: %q", lines[0])
	}
	if !strings.Contains(lines[2], "#todo") {
		t.Errorf("row should carry the tag: %q", lines[2])
	}
}

func TestRender_TrashColumns(t *testing.T) {
	setProfile(t, termenv.Ascii)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	notes := []*note.Note{{
		ID:      "abc123",
		Title:   "Old note",
		Created: "01Jan06 10:00 -07:00",
		Updated: "02Jan06 15:04 -07:00",
		Deleted: "03Jan06 09:00 -07:00",
		Tags:    []tag.Tag{"#todo"},
	}}
	lines := Render(notes, Options{Area: storage.AreaTrash, Relative: true, Now: now})

	header := lines[0]
	for _, label := range []string{"ID", "Created", "Updated", "Deleted", "Preview"} {
		if !strings.Contains(header, label) {
			t.Errorf("trash header missing %q: %q", label, header)
		}
	}
	if strings.Contains(header, "Tags") {
		t.Errorf("trash listing should not show tags: %q", header)
	}
}

func TestRender_ShrinksToWidth(t *testing.T) {
	setProfile(t, termenv.Ascii)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	notes := []*note.Note{{
		ID:      "abc123def",
		Title:   "A very long title that will absolutely not fit in a narrow terminal",
		Body:    strings.Repeat("more text ", 20),
		Updated: "02Jan06 15:04 -07:00",
		Tags:    []tag.Tag{"#project-alpha", "#backlog"},
	}}
	const width = 44
	lines := Render(notes, Options{Relative: true, Now: now, Width: width})

	for i, line := range lines {
		if w := lipgloss.Width(line); w > width {
			t.Errorf("line %d width = %d, want <= %d: %q", i, w, width, line)
		}
	}
	if !strings.Contains(lines[2], "…") {
		t.Errorf("shrunk preview should be truncated: %q", lines[2])
	}
}

func TestRender_RowsAlign(t *testing.T) {
	setProfile(t, termenv.TrueColor)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	notes := []*note.Note{
		{ID: "abc123", Title: "First", Body: "alpha\n", Updated: "02Jan06 15:04 -07:00", Tags: []tag.Tag{"#todo"}},
		{ID: "abc123-1", Title: "Second", Body: "beta\n", Updated: "05Mar07 09:30 -07:00"},
	}
	lines := Render(notes, Options{Relative: true, Now: now, Query: "alp", Styles: NewStyles(true)})

	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
	if !strings.Contains(lines[2], "\x1b[") {
		t.Error("styled render should emit ANSI sequences")
	}
}

func TestSort(t *testing.T) {
	notes := func() []*note.Note {
		return []*note.Note{
			{ID: "b", Created: "02Jan25 10:00 +00:00", Updated: "05Jan25 10:00 +00:00", Size: 10},
			{ID: "a", Created: "01Jan25 10:00 +00:00", Updated: "06Jan25 10:00 +00:00", Size: 30},
			{ID: "c", Created: "03Jan25 10:00 +00:00", Updated: "04Jan25 10:00 +00:00", Size: 20},
		}
	}

	order := func(ns []*note.Note) string {
		ids := make([]string, len(ns))
		for i, n := range ns {
			ids[i] = n.ID
		}
		return strings.Join(ids, "")
	}

	ns := notes()
	Sort(ns, SortUpdated, false)
	if got := order(ns); got != "abc" {
		t.Errorf("updated desc = %s, want abc", got)
	}

	ns = notes()
	Sort(ns, SortCreated, true)
	if got := order(ns); got != "abc" {
		t.Errorf("created asc = %s, want abc", got)
	}

	ns = notes()
	Sort(ns, SortSize, false)
	if got := order(ns); got != "acb" {
		t.Errorf("size desc = %s, want acb", got)
	}

	ns = notes()
	Sort(ns, "bogus", false)
	if got := order(ns); got != "abc" {
		t.Errorf("unknown field should sort by updated: got %s", got)
	}
}

func TestClampTags(t *testing.T) {
	setProfile(t, termenv.Ascii)
	st := NewStyles(true)

	tags := []tag.Tag{"#todo", "#meeting"}
	if got := clampTags(tags, 8, st); got != "#todo #…" {
		t.Errorf("clampTags = %q, want %q", got, "#todo #…")
	}
	if got := clampTags(tags, 20, st); got != "#todo #meeting" {
		t.Errorf("clampTags = %q, want %q", got, "#todo #meeting")
	}
	if got := clampTags(nil, 20, st); got != "" {
		t.Errorf("clampTags(nil) = %q, want empty", got)
	}
}

func TestHighlightMatches(t *testing.T) {
	setProfile(t, termenv.TrueColor)

	st := NewStyles(true)
	out := st.HighlightMatches("Find the Needle here", "needle")
	if !strings.Contains(out, "\x1b[") {
		t.Error("expected ANSI highlight")
	}
	if !strings.Contains(out, "Needle") {
		t.Errorf("match text lost: %q", out)
	}

	plain := NewStyles(false)
	if got := plain.HighlightMatches("Find the Needle here", "needle"); got != "Find the Needle here" {
		t.Errorf("no-color highlight changed text: %q", got)
	}
}
