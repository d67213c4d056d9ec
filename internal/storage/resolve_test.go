package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/starford/quill/internal/apperr"
)

func mustWrite(t *testing.T, v *Vault, rel string) {
	t.Helper()
	if err := v.Write(rel, []byte("Title: t\nCreated: c\nUpdated: u\n---\n\n")); err != nil {
		t.Fatalf("Write %s: %v", rel, err)
	}
}

func TestResolve_TopLevel(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "abc.md")
	loc, err := v.Resolve("abc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loc.Area != AreaActive || loc.Batch != "" || loc.Rel != "abc.md" {
		t.Errorf("loc = %+v", loc)
	}
}

func TestResolve_MigratedBatch(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "migrated/migration-1/abc.md")
	loc, err := v.Resolve("abc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loc.Area != AreaActive || loc.Batch != "migration-1" {
		t.Errorf("loc = %+v", loc)
	}
}

func TestResolve_TopLevelWinsOverMigrated(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "abc.md")
	mustWrite(t, v, "migrated/migration-1/abc.md")
	loc, err := v.Resolve("abc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if loc.Rel != "abc.md" {
		t.Errorf("Rel = %q, want top-level file", loc.Rel)
	}
}

func TestResolve_NeverFindsTrashed(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "trash/abc.md")
	_, err := v.Resolve("abc")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveIn_TrashAndArchive(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "trash/abc.md")
	mustWrite(t, v, "archive/xyz.md")

	loc, err := v.ResolveIn(AreaTrash, "abc")
	if err != nil {
		t.Fatalf("ResolveIn trash: %v", err)
	}
	if loc.Area != AreaTrash {
		t.Errorf("loc = %+v", loc)
	}
	if _, err := v.ResolveIn(AreaArchive, "abc"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("archive lookup of trashed id: err = %v, want ErrNotFound", err)
	}
}

func TestList_ActiveIncludesMigrated(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "b.md")
	mustWrite(t, v, "a.md")
	mustWrite(t, v, "migrated/migration-1/m.md")
	mustWrite(t, v, "trash/t.md")

	entries, err := v.List(AreaActive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(entries), entries)
	}
	// Top level comes sorted first, then batches.
	if entries[0].ID != "a" || entries[1].ID != "b" || entries[2].ID != "m" {
		t.Errorf("order = %v %v %v", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[2].Batch != "migration-1" {
		t.Errorf("batch = %q", entries[2].Batch)
	}
}

func TestList_MissingAreaDirIsEmpty(t *testing.T) {
	v := tempVault(t)
	entries, err := v.List(AreaTrash)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v, want none", entries)
	}
}

func TestList_SkipsNonNotes(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "a.md")
	if err := v.Write("readme.txt", []byte("not a note")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := v.List(AreaActive)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "a" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestNewBatch_SuffixesTakenNames(t *testing.T) {
	v := tempVault(t)
	first, err := v.NewBatch("migration-x")
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	if first != "migration-x" {
		t.Errorf("first = %q", first)
	}
	second, err := v.NewBatch("migration-x")
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}
	if second != "migration-x-1" {
		t.Errorf("second = %q", second)
	}
	batches, err := v.Batches()
	if err != nil {
		t.Fatalf("Batches: %v", err)
	}
	if len(batches) != 2 {
		t.Errorf("batches = %v", batches)
	}
}

func TestAllocateID_PreferredWhenFree(t *testing.T) {
	v := tempVault(t)
	id, err := v.AllocateID("abc123")
	if err != nil {
		t.Fatalf("AllocateID: %v", err)
	}
	if id != "abc123" {
		t.Errorf("id = %q, want preferred", id)
	}
}

func TestAllocateID_SuffixChain(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "abc123.md")
	mustWrite(t, v, "abc123-1.md")

	id, err := v.AllocateID("abc123")
	if err != nil {
		t.Fatalf("AllocateID: %v", err)
	}
	if id != "abc123-2" {
		t.Errorf("id = %q, want abc123-2", id)
	}
}

func TestAllocateID_ReservationsWithoutFiles(t *testing.T) {
	// Two mints in the same microsecond prefer the same ID; the second
	// call must disambiguate even though no file exists yet.
	v := tempVault(t)
	a, err := v.AllocateID("same")
	if err != nil {
		t.Fatalf("AllocateID: %v", err)
	}
	b, err := v.AllocateID("same")
	if err != nil {
		t.Fatalf("AllocateID: %v", err)
	}
	if a == b {
		t.Errorf("duplicate allocation: %q", a)
	}
	if a != "same" || b != "same-1" {
		t.Errorf("got %q, %q", a, b)
	}
}

func TestAllocateID_SeesEveryArea(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "trash/abc.md")
	id, err := v.AllocateID("abc")
	if err != nil {
		t.Fatalf("AllocateID: %v", err)
	}
	if id != "abc-1" {
		t.Errorf("id = %q, want abc-1", id)
	}
}

func TestAllocateID_Exhausted(t *testing.T) {
	v := tempVault(t)
	v.mu.Lock()
	v.reserved["full"] = struct{}{}
	for i := 1; i <= maxSuffix; i++ {
		v.reserved[fmt.Sprintf("full-%d", i)] = struct{}{}
	}
	v.mu.Unlock()

	_, err := v.AllocateID("full")
	if !errors.Is(err, apperr.ErrCollisionExhausted) {
		t.Errorf("err = %v, want ErrCollisionExhausted", err)
	}
}

func TestIDs_SpansAreas(t *testing.T) {
	v := tempVault(t)
	mustWrite(t, v, "a.md")
	mustWrite(t, v, "trash/b.md")
	mustWrite(t, v, "archive/c.md")
	mustWrite(t, v, "migrated/m1/d.md")

	ids, err := v.IDs()
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	for _, want := range []string{"a", "b", "c", "d"} {
		if _, ok := ids[want]; !ok {
			t.Errorf("missing id %q in %v", want, ids)
		}
	}
}
