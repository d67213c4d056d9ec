package notestore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/quill/internal/note"
	"github.com/starford/quill/internal/noteid"
	"github.com/starford/quill/internal/storage"
)

// Move records one note changing identity during import or re-keying.
// OldID equals NewID when the original name survived.
type Move struct {
	OldID string
	NewID string
}

// ImportReport summarizes one import batch.
type ImportReport struct {
	Batch   string
	Moves   []Move
	Skipped int
}

// Import copies every note file from an external directory into a fresh
// migrated batch. Timestamps are preserved when present and filled from
// the clock when blank. IDs keep their original file stem unless it is
// already taken anywhere in the vault, in which case the note is
// re-keyed with the allocator's suffix scheme. Unparsable files are
// skipped, not fatal.
func (s *Store) Import(srcDir string) (*ImportReport, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return nil, fmt.Errorf("notestore: import source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notestore: import source is not a directory: %s", srcDir)
	}
	dirents, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("notestore: import source: %w", err)
	}

	var files []string
	for _, d := range dirents {
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".md") {
			files = append(files, d.Name())
		}
	}
	report := &ImportReport{}
	if len(files) == 0 {
		return report, nil
	}

	batch, err := s.vault.NewBatch("migration-" + noteid.Mint(time.Now()))
	if err != nil {
		return nil, err
	}
	report.Batch = batch

	now := noteid.Now()
	for _, name := range files {
		src := filepath.Join(srcDir, name)
		data, err := os.ReadFile(src)
		if err != nil {
			s.logger.Warn("skipping unreadable import", "file", name, "err", err)
			report.Skipped++
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		n, err := note.Parse(id, data, int64(len(data)))
		if err != nil {
			s.logger.Warn("skipping malformed import", "file", name, "err", err)
			report.Skipped++
			continue
		}
		if strings.TrimSpace(n.Created) == "" {
			n.Created = now
		}
		if strings.TrimSpace(n.Updated) == "" {
			n.Updated = n.Created
		}

		finalID, err := s.vault.AllocateID(id)
		if err != nil {
			return nil, err
		}
		n.ID = finalID
		rel, err := s.vault.BatchNotePath(batch, finalID)
		if err != nil {
			return nil, err
		}
		if err := s.vault.Write(rel, note.Encode(n)); err != nil {
			return nil, err
		}
		report.Moves = append(report.Moves, Move{OldID: id, NewID: finalID})
	}
	s.logger.Debug("imported batch", "batch", batch, "count", len(report.Moves), "skipped", report.Skipped)
	return report, nil
}

// Rekey assigns freshly minted IDs to every top-level active note, in
// two phases: plan every move first, then rename. Notes inside migrated
// batches keep their imported identity.
func (s *Store) Rekey() ([]Move, error) {
	entries, err := s.vault.List(storage.AreaActive)
	if err != nil {
		return nil, err
	}
	var moves []Move
	var rels []string
	for _, e := range entries {
		if e.Batch != "" {
			continue
		}
		newID, err := s.vault.AllocateID(noteid.Mint(time.Now()))
		if err != nil {
			return nil, err
		}
		moves = append(moves, Move{OldID: e.ID, NewID: newID})
		rels = append(rels, e.Rel)
	}
	for i, m := range moves {
		newRel, err := s.vault.NotePath(storage.AreaActive, m.NewID)
		if err != nil {
			return nil, err
		}
		if err := s.vault.Move(rels[i], newRel); err != nil {
			return nil, err
		}
	}
	return moves, nil
}
