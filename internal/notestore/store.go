// Package notestore is the operation façade over the vault: it owns
// note lifecycle (create, load, save, append, relocate), listing, trash
// retention, and batch import. It renders no user-facing text; callers
// turn its results and typed errors into output.
package notestore

import (
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/starford/quill/internal/note"
	"github.com/starford/quill/internal/noteid"
	"github.com/starford/quill/internal/storage"
	"github.com/starford/quill/internal/tag"
)

// Store coordinates note operations against a single vault.
type Store struct {
	vault     *storage.Vault
	logger    *slog.Logger
	pinned    []tag.Tag
	retention time.Duration
}

// New builds a Store over vault with the given options.
func New(vault *storage.Vault, opts ...Option) *Store {
	s := &Store{
		vault:     vault,
		logger:    slog.New(slog.DiscardHandler),
		pinned:    tag.DefaultPinned,
		retention: 30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Vault exposes the underlying vault for path display and watching.
func (s *Store) Vault() *storage.Vault {
	return s.vault
}

// Pinned returns the configured pinned tags.
func (s *Store) Pinned() []tag.Tag {
	return s.pinned
}

// Retention returns the configured trash retention period. Zero disables
// expiry sweeps.
func (s *Store) Retention() time.Duration {
	return s.retention
}

// Create mints an ID, allocates it against every area, and writes the
// note to the active top level. A blank title is derived from the body.
func (s *Store) Create(title, body string, rawTags []string) (*note.Note, error) {
	id, err := s.vault.AllocateID(noteid.Mint(time.Now()))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		title = note.DeriveTitle(body, id)
	}
	now := noteid.Now()
	n := &note.Note{
		ID:      id,
		Title:   title,
		Created: now,
		Updated: now,
		Tags:    tag.NormalizeAll(rawTags),
		Body:    body,
	}
	rel, err := s.vault.NotePath(storage.AreaActive, id)
	if err != nil {
		return nil, err
	}
	data := note.Encode(n)
	if err := s.vault.Write(rel, data); err != nil {
		return nil, err
	}
	n.Size = int64(len(data))
	s.logger.Debug("created note", "id", id, "title", title)
	return n, nil
}

// Load finds an active note by ID, searching the top level and migrated
// batches. Trashed and archived notes are not found here.
func (s *Store) Load(id string) (*note.Note, error) {
	return s.LoadFrom(storage.AreaActive, id)
}

// LoadFrom finds a note in an explicitly named area.
func (s *Store) LoadFrom(area storage.Area, id string) (*note.Note, error) {
	loc, err := s.vault.ResolveIn(area, id)
	if err != nil {
		return nil, err
	}
	return s.loadAt(loc)
}

func (s *Store) loadAt(loc storage.Location) (*note.Note, error) {
	data, err := s.vault.Read(loc.Rel)
	if err != nil {
		return nil, err
	}
	id := strings.TrimSuffix(filepath.Base(loc.Rel), ".md")
	return note.Parse(id, data, int64(len(data)))
}

// Save writes an active note back to wherever it currently resolves,
// stamping Updated. Migrated notes stay in their batch.
func (s *Store) Save(n *note.Note) error {
	loc, err := s.vault.Resolve(n.ID)
	if err != nil {
		return err
	}
	n.Updated = noteid.Now()
	return s.vault.Write(loc.Rel, note.Encode(n))
}

// Append adds a line of text to the end of an active note's body.
func (s *Store) Append(id, text string) (*note.Note, error) {
	loc, err := s.vault.Resolve(id)
	if err != nil {
		return nil, err
	}
	n, err := s.loadAt(loc)
	if err != nil {
		return nil, err
	}
	if n.Body != "" && !strings.HasSuffix(n.Body, "\n") {
		n.Body += "\n"
	}
	n.Body += strings.TrimSpace(text) + "\n"
	n.Updated = noteid.Now()
	if err := s.vault.Write(loc.Rel, note.Encode(n)); err != nil {
		return nil, err
	}
	return n, nil
}

// List yields an area's notes in ID (creation) order, filtered to those
// carrying every tag in filter. The sequence reads one file per step;
// a read or parse failure yields (nil, err) for that entry and moves on.
func (s *Store) List(area storage.Area, filter []tag.Tag) iter.Seq2[*note.Note, error] {
	return func(yield func(*note.Note, error) bool) {
		entries, err := s.vault.List(area)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, e := range entries {
			n, err := s.loadEntry(e)
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			if !tag.HasAll(n.Tags, filter) {
				continue
			}
			if !yield(n, nil) {
				return
			}
		}
	}
}

// Collect gathers an area's notes into a slice for sorting and display.
// Files that fail to read or parse are logged and skipped, so one
// corrupt note never hides the rest of the vault.
func (s *Store) Collect(area storage.Area, filter []tag.Tag) ([]*note.Note, error) {
	entries, err := s.vault.List(area)
	if err != nil {
		return nil, err
	}
	out := make([]*note.Note, 0, len(entries))
	for _, e := range entries {
		n, err := s.loadEntry(e)
		if err != nil {
			s.logger.Warn("skipping unreadable note", "id", e.ID, "err", err)
			continue
		}
		if !tag.HasAll(n.Tags, filter) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) loadEntry(e storage.Entry) (*note.Note, error) {
	data, err := s.vault.Read(e.Rel)
	if err != nil {
		return nil, err
	}
	return note.Parse(e.ID, data, e.Size)
}

// Relocate moves a note between areas: the destination copy is written
// first, with its lifecycle markers restamped for the target area, and
// only then is the source removed, so a crash leaves the note present
// somewhere. When the destination name is taken the note is re-keyed
// with the allocator's suffix scheme; the final ID is returned and
// callers must not assume it is unchanged.
func (s *Store) Relocate(id string, from, to storage.Area) (string, error) {
	if from == to {
		return "", fmt.Errorf("notestore: relocate %s: already in %s", id, to)
	}
	loc, err := s.vault.ResolveIn(from, id)
	if err != nil {
		return "", err
	}
	n, err := s.loadAt(loc)
	if err != nil {
		return "", err
	}

	now := noteid.Now()
	switch to {
	case storage.AreaTrash:
		n.Deleted, n.Archived = now, ""
	case storage.AreaArchive:
		n.Deleted, n.Archived = "", now
	default:
		n.Deleted, n.Archived = "", ""
	}

	finalID := id
	destRel, err := s.vault.NotePath(to, id)
	if err != nil {
		return "", err
	}
	if s.vault.Exists(destRel) {
		finalID, err = s.vault.AllocateID(id)
		if err != nil {
			return "", err
		}
		destRel, err = s.vault.NotePath(to, finalID)
		if err != nil {
			return "", err
		}
	}
	n.ID = finalID

	if err := s.vault.Write(destRel, note.Encode(n)); err != nil {
		return "", err
	}
	if err := s.vault.Remove(loc.Rel); err != nil {
		return "", err
	}
	s.logger.Debug("relocated note", "id", id, "final_id", finalID, "from", from.String(), "to", to.String())
	return finalID, nil
}
