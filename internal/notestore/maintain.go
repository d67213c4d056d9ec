package notestore

import (
	"fmt"
	"time"

	"github.com/starford/quill/internal/noteid"
	"github.com/starford/quill/internal/storage"
)

// PurgeExpired permanently removes notes from trash or archive whose
// lifecycle marker is older than maxAge. Notes with unparsable or
// missing markers are kept; a non-positive maxAge disables the sweep.
// The active area has no expiry and is rejected.
func (s *Store) PurgeExpired(area storage.Area, maxAge time.Duration) (int, error) {
	if area == storage.AreaActive {
		return 0, fmt.Errorf("notestore: purge: active notes never expire")
	}
	if maxAge <= 0 {
		return 0, nil
	}
	entries, err := s.vault.List(area)
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-maxAge)
	purged := 0
	for _, e := range entries {
		n, err := s.loadEntry(e)
		if err != nil {
			continue
		}
		marker := n.Deleted
		if area == storage.AreaArchive {
			marker = n.Archived
		}
		if marker == "" {
			marker = n.Updated
		}
		ts, ok := noteid.ParseTime(marker)
		if !ok || !ts.Before(cutoff) {
			continue
		}
		if err := s.vault.Remove(e.Rel); err != nil {
			s.logger.Warn("purge failed", "id", e.ID, "err", err)
			continue
		}
		purged++
	}
	if purged > 0 {
		s.logger.Debug("purged expired notes", "area", area.String(), "count", purged)
	}
	return purged, nil
}

// SweepTrash applies the configured retention to the trash area. It is
// called opportunistically before operations that touch trash.
func (s *Store) SweepTrash() (int, error) {
	return s.PurgeExpired(storage.AreaTrash, s.retention)
}

// Stats summarizes note counts per area.
type Stats struct {
	Active   int
	Migrated int
	Trash    int
	Archive  int
}

// Stat counts the notes in every area. Unreadable files still count;
// only their content is unknown, not their existence.
func (s *Store) Stat() (Stats, error) {
	var st Stats
	entries, err := s.vault.List(storage.AreaActive)
	if err != nil {
		return st, err
	}
	for _, e := range entries {
		if e.Batch == "" {
			st.Active++
		} else {
			st.Migrated++
		}
	}
	trash, err := s.vault.List(storage.AreaTrash)
	if err != nil {
		return st, err
	}
	st.Trash = len(trash)
	archive, err := s.vault.List(storage.AreaArchive)
	if err != nil {
		return st, err
	}
	st.Archive = len(archive)
	return st, nil
}
