package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/starford/quill/internal/apperr"
)

// maxSuffix bounds the collision search in AllocateID and NewBatch.
const maxSuffix = 9999

// Resolve finds an active note: top level first, then each migrated
// batch, one level deep. Trashed and archived notes are never found
// here; callers that mean those areas use ResolveIn.
func (v *Vault) Resolve(id string) (Location, error) {
	rel, err := v.NotePath(AreaActive, id)
	if err != nil {
		return Location{}, err
	}
	if v.Exists(rel) {
		return Location{Area: AreaActive, Rel: rel}, nil
	}
	batches, err := v.Batches()
	if err != nil {
		return Location{}, err
	}
	for _, batch := range batches {
		rel, err := v.BatchNotePath(batch, id)
		if err != nil {
			return Location{}, err
		}
		if v.Exists(rel) {
			return Location{Area: AreaActive, Batch: batch, Rel: rel}, nil
		}
	}
	return Location{}, fmt.Errorf("storage: note %s: %w", id, apperr.ErrNotFound)
}

// ResolveIn finds a note in an explicitly named area. The active area
// keeps its usual search order; trash and archive are direct lookups.
func (v *Vault) ResolveIn(area Area, id string) (Location, error) {
	if area == AreaActive {
		return v.Resolve(id)
	}
	rel, err := v.NotePath(area, id)
	if err != nil {
		return Location{}, err
	}
	if !v.Exists(rel) {
		return Location{}, fmt.Errorf("storage: note %s in %s: %w", id, area, apperr.ErrNotFound)
	}
	return Location{Area: area, Rel: rel}, nil
}

// List returns every note file in an area in file-name order, which for
// minted IDs is creation order. The active area includes migrated
// batches after the top level.
func (v *Vault) List(area Area) ([]Entry, error) {
	if area != AreaActive {
		return v.listDir(area.subdir(), area, "")
	}
	out, err := v.listDir("", AreaActive, "")
	if err != nil {
		return nil, err
	}
	batches, err := v.Batches()
	if err != nil {
		return nil, err
	}
	for _, batch := range batches {
		entries, err := v.listDir(filepath.Join(migratedRoot, batch), AreaActive, batch)
		if err != nil {
			return nil, err
		}
		out = append(out, entries...)
	}
	return out, nil
}

// listDir reads the .md files directly inside one directory. A missing
// directory is an empty area, not an error.
func (v *Vault) listDir(rel string, area Area, batch string) ([]Entry, error) {
	abs, err := v.safePath(rel)
	if err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list %s: %w", area, err)
	}
	var out []Entry
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			continue
		}
		info, err := d.Info()
		if err != nil {
			return nil, fmt.Errorf("storage: list %s: %w", area, err)
		}
		out = append(out, Entry{
			ID:    strings.TrimSuffix(d.Name(), ".md"),
			Rel:   filepath.Join(rel, d.Name()),
			Size:  info.Size(),
			Area:  area,
			Batch: batch,
		})
	}
	return out, nil
}

// Batches returns the migrated batch names in name order.
func (v *Vault) Batches() ([]string, error) {
	abs, err := v.safePath(migratedRoot)
	if err != nil {
		return nil, err
	}
	dirents, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list batches: %w", err)
	}
	var out []string
	for _, d := range dirents {
		if d.IsDir() {
			out = append(out, d.Name())
		}
	}
	return out, nil
}

// NewBatch creates a fresh batch directory under migrated/, appending a
// numeric suffix when the preferred name is already taken.
func (v *Vault) NewBatch(preferred string) (string, error) {
	if err := validToken(preferred); err != nil {
		return "", err
	}
	name := preferred
	for i := 0; ; i++ {
		if i > maxSuffix {
			return "", fmt.Errorf("storage: batch %s: %w", preferred, apperr.ErrCollisionExhausted)
		}
		if i > 0 {
			name = fmt.Sprintf("%s-%d", preferred, i)
		}
		abs, err := v.safePath(filepath.Join(migratedRoot, name))
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(abs); err == nil {
			continue
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("storage: create batch: %w", err)
		}
		return name, nil
	}
}

// AllocateID hands out an ID that is free across every area. When the
// preferred ID is taken it derives "-1", "-2", … variants in order, so
// the same inputs always disambiguate the same way. Allocated IDs stay
// reserved for the life of the process even before their file exists,
// which keeps concurrent callers from racing between check and write.
func (v *Vault) AllocateID(preferred string) (string, error) {
	if err := validToken(preferred); err != nil {
		return "", err
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := 0; i <= maxSuffix; i++ {
		cand := preferred
		if i > 0 {
			cand = fmt.Sprintf("%s-%d", preferred, i)
		}
		free, err := v.idFree(cand)
		if err != nil {
			return "", err
		}
		if free {
			v.reserved[cand] = struct{}{}
			return cand, nil
		}
	}
	return "", fmt.Errorf("storage: allocate %s: %w", preferred, apperr.ErrCollisionExhausted)
}

// idFree reports whether no area holds a note with this ID. IDs are
// unique across the whole vault, not just the active area, so restores
// and imports cannot silently collide.
func (v *Vault) idFree(id string) (bool, error) {
	if _, taken := v.reserved[id]; taken {
		return false, nil
	}
	if _, err := v.Resolve(id); err == nil {
		return false, nil
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return false, err
	}
	for _, area := range []Area{AreaTrash, AreaArchive} {
		rel, err := v.NotePath(area, id)
		if err != nil {
			return false, err
		}
		if v.Exists(rel) {
			return false, nil
		}
	}
	return true, nil
}

// IDs collects every note ID across all areas, for import reporting.
func (v *Vault) IDs() (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for _, area := range []Area{AreaActive, AreaTrash, AreaArchive} {
		entries, err := v.List(area)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			ids[e.ID] = struct{}{}
		}
	}
	return ids, nil
}
