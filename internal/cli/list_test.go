package cli

import (
	"strings"
	"testing"

	"github.com/starford/quill/internal/listing"
	"github.com/starford/quill/internal/storage"
)

func TestRunList_EmptyAreas(t *testing.T) {
	cases := []struct {
		area storage.Area
		want string
	}{
		{storage.AreaActive, "No notes yet. Try `quill new \"title\"`."},
		{storage.AreaTrash, "No deleted notes."},
		{storage.AreaArchive, "No archived notes."},
	}
	for _, c := range cases {
		t.Run(c.area.String(), func(t *testing.T) {
			a, out := testApp(t)
			if err := runList(a, listParams{area: c.area, sort: listing.SortUpdated}); err != nil {
				t.Fatalf("runList: %v", err)
			}
			if got := strings.TrimSpace(out.String()); got != c.want {
				t.Errorf("output = %q, want %q", got, c.want)
			}
		})
	}
}

func TestRunList_PrintsRows(t *testing.T) {
	t.Setenv("COLUMNS", "160")
	a, out := testApp(t)
	n1 := mustCreate(t, a, "Grocery run", "milk and eggs")
	n2 := mustCreate(t, a, "Standup", "what we said", "meeting")
	out.Reset()

	if err := runList(a, listParams{area: storage.AreaActive, sort: listing.SortUpdated}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	got := out.String()
	for _, want := range []string{n1.ID, n2.ID, "Grocery run", "Standup", "#meeting"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunList_SearchFilters(t *testing.T) {
	t.Setenv("COLUMNS", "160")
	a, out := testApp(t)
	keep := mustCreate(t, a, "Alpha", "the bravo body")
	drop := mustCreate(t, a, "Other", "nothing here")
	out.Reset()

	if err := runList(a, listParams{area: storage.AreaActive, sort: listing.SortUpdated, query: "bravo"}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, keep.ID) {
		t.Errorf("matching note %s missing:\n%s", keep.ID, got)
	}
	if strings.Contains(got, drop.ID) {
		t.Errorf("non-matching note %s listed:\n%s", drop.ID, got)
	}
}

func TestRunList_TagFilters(t *testing.T) {
	t.Setenv("COLUMNS", "160")
	a, out := testApp(t)
	keep := mustCreate(t, a, "Tagged", "body", "work")
	drop := mustCreate(t, a, "Untagged", "body")
	out.Reset()

	if err := runList(a, listParams{area: storage.AreaActive, sort: listing.SortUpdated, tags: []string{"work"}}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, keep.ID) {
		t.Errorf("tagged note %s missing:\n%s", keep.ID, got)
	}
	if strings.Contains(got, drop.ID) {
		t.Errorf("untagged note %s listed:\n%s", drop.ID, got)
	}
}

func TestRunList_TrashShowsDeleted(t *testing.T) {
	t.Setenv("COLUMNS", "160")
	a, out := testApp(t)
	n := mustCreate(t, a, "Old", "body")
	if _, err := a.store.Relocate(n.ID, storage.AreaActive, storage.AreaTrash); err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	out.Reset()

	if err := runList(a, listParams{area: storage.AreaTrash, sort: listing.SortUpdated}); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if !strings.Contains(out.String(), n.ID) {
		t.Errorf("trashed note %s missing:\n%s", n.ID, out.String())
	}
}
