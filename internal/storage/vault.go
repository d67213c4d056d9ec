// Package storage maps note identity onto the vault file system: one
// directory tree holding active notes at the top level, soft-deleted
// notes under trash/, archived notes under archive/, and imported notes
// under migrated/<batch>/.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Area names one of the storage roots a note can live in.
type Area int

const (
	AreaActive Area = iota
	AreaTrash
	AreaArchive
)

// String returns the area name used in command output and tool arguments.
func (a Area) String() string {
	switch a {
	case AreaTrash:
		return "trash"
	case AreaArchive:
		return "archive"
	default:
		return "active"
	}
}

// subdir is the area's directory relative to the vault root. Active notes
// live directly at the root.
func (a Area) subdir() string {
	switch a {
	case AreaTrash:
		return "trash"
	case AreaArchive:
		return "archive"
	default:
		return ""
	}
}

// ParseArea maps an area name back to its Area.
func ParseArea(s string) (Area, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "active":
		return AreaActive, nil
	case "trash", "deleted":
		return AreaTrash, nil
	case "archive", "archived":
		return AreaArchive, nil
	}
	return AreaActive, fmt.Errorf("storage: unknown area %q", s)
}

// migratedRoot is the directory batches of imported notes are grouped under.
const migratedRoot = "migrated"

// Location is a resolved note position: its area, the batch name when the
// note lives in a migrated batch, and the file path relative to the root.
type Location struct {
	Area  Area
	Batch string
	Rel   string
}

// Entry describes one note file found by List.
type Entry struct {
	ID    string
	Rel   string
	Size  int64
	Area  Area
	Batch string
}

// Classify maps a vault-relative file path back to the note location it
// represents. Paths that are not note files report ok false.
func Classify(rel string) (Location, bool) {
	rel = filepath.ToSlash(rel)
	if !strings.HasSuffix(rel, ".md") {
		return Location{}, false
	}
	parts := strings.Split(rel, "/")
	switch {
	case len(parts) == 1:
		return Location{Area: AreaActive, Rel: rel}, true
	case len(parts) == 2 && parts[0] == AreaTrash.subdir():
		return Location{Area: AreaTrash, Rel: rel}, true
	case len(parts) == 2 && parts[0] == AreaArchive.subdir():
		return Location{Area: AreaArchive, Rel: rel}, true
	case len(parts) == 3 && parts[0] == migratedRoot:
		return Location{Area: AreaActive, Batch: parts[1], Rel: rel}, true
	}
	return Location{}, false
}

// Vault is the file-system store for every area. The mutex serializes ID
// allocation; reserved holds IDs handed out by AllocateID that may not
// have files yet.
type Vault struct {
	root string // absolute path to the vault directory

	mu       sync.Mutex
	reserved map[string]struct{}
}

// NewVault opens the vault rooted at dir, creating the directory when it
// does not exist yet.
func NewVault(dir string) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage: root is not a directory: %s", abs)
	}
	return &Vault{root: abs, reserved: make(map[string]struct{})}, nil
}

// Root returns the absolute vault directory.
func (v *Vault) Root() string {
	return v.root
}

// safePath resolves a relative path against the vault root and rejects
// any result that escapes it (directory traversal).
func (v *Vault) safePath(rel string) (string, error) {
	if rel == "" {
		return v.root, nil
	}
	cleaned := filepath.Clean(rel)
	if filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("storage: absolute paths not allowed: %s", rel)
	}
	joined := filepath.Join(v.root, cleaned)
	abs, err := filepath.Abs(joined)
	if err != nil {
		return "", fmt.Errorf("storage: resolve path: %w", err)
	}
	// Ensure the resolved path is still under root.
	if !strings.HasPrefix(abs, v.root+string(os.PathSeparator)) && abs != v.root {
		return "", fmt.Errorf("storage: path escapes vault root: %s", rel)
	}
	return abs, nil
}

// validToken guards IDs and batch names that become file names. They may
// come from the command line, so path separators and dot-dots are out.
func validToken(s string) error {
	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return fmt.Errorf("storage: invalid name %q", s)
	}
	return nil
}

// NotePath returns the root-relative path of id within area.
func (v *Vault) NotePath(area Area, id string) (string, error) {
	if err := validToken(id); err != nil {
		return "", err
	}
	rel := filepath.Join(area.subdir(), id+".md")
	if _, err := v.safePath(rel); err != nil {
		return "", err
	}
	return rel, nil
}

// BatchNotePath returns the root-relative path of id within a migrated batch.
func (v *Vault) BatchNotePath(batch, id string) (string, error) {
	if err := validToken(batch); err != nil {
		return "", err
	}
	if err := validToken(id); err != nil {
		return "", err
	}
	rel := filepath.Join(migratedRoot, batch, id+".md")
	if _, err := v.safePath(rel); err != nil {
		return "", err
	}
	return rel, nil
}

// Abs resolves a root-relative path for display to the user.
func (v *Vault) Abs(rel string) (string, error) {
	return v.safePath(rel)
}

// Read returns the raw bytes of a vault file.
func (v *Vault) Read(rel string) ([]byte, error) {
	abs, err := v.safePath(rel)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", rel, err)
	}
	return data, nil
}

// Write atomically writes content: tmp file → fsync → rename. A failed
// write never disturbs the previous file content.
func (v *Vault) Write(rel string, content []byte) error {
	abs, err := v.safePath(rel)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".quill-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

// Remove deletes a file from the vault.
func (v *Vault) Remove(rel string) error {
	abs, err := v.safePath(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("storage: remove %s: %w", rel, err)
	}
	return nil
}

// Move renames a file within the vault.
func (v *Vault) Move(oldRel, newRel string) error {
	absOld, err := v.safePath(oldRel)
	if err != nil {
		return err
	}
	absNew, err := v.safePath(newRel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(absNew), 0o755); err != nil {
		return fmt.Errorf("storage: mkdir for move: %w", err)
	}
	if err := os.Rename(absOld, absNew); err != nil {
		return fmt.Errorf("storage: move: %w", err)
	}
	return nil
}

// Exists reports whether a vault file is present.
func (v *Vault) Exists(rel string) bool {
	abs, err := v.safePath(rel)
	if err != nil {
		return false
	}
	_, err = os.Stat(abs)
	return err == nil
}
