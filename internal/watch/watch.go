// Package watch streams vault file changes as note events.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/starford/quill/internal/storage"
)

// Event kinds.
const (
	KindCreated = "created"
	KindUpdated = "updated"
	KindDeleted = "deleted"
)

// Event describes one observed change to a note file.
type Event struct {
	Kind  string
	ID    string
	Area  storage.Area
	Batch string
	Path  string
}

// Callback receives events as they are observed.
type Callback func(Event)

// Run starts an fsnotify watcher on the vault root and reports note file
// changes until ctx is cancelled. It calls cb (if non-nil) for each event.
//
// Atomic writes land as a rename onto the final path, which fsnotify
// reports as Create. Run keeps a set of known note paths so those events
// are classified as updates rather than creations. New directories
// created at runtime are automatically added to the watch list.
func Run(ctx context.Context, root string, logger *slog.Logger, cb Callback) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	w := &watcher{
		fs:     fw,
		root:   root,
		logger: logger,
		cb:     cb,
		seen:   make(map[string]struct{}),
	}
	if err := w.addTree(root, false); err != nil {
		return err
	}

	logger.Info("watch: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch: stopped")
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)

		case watchErr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch: error", slog.String("error", watchErr.Error()))
		}
	}
}

type watcher struct {
	fs     *fsnotify.Watcher
	root   string
	logger *slog.Logger
	cb     Callback
	seen   map[string]struct{}
}

func (w *watcher) handle(ev fsnotify.Event) {
	absPath := ev.Name

	// New directories are added to the watch list. Note files already
	// inside (moved in together with the directory) are reported as
	// created, since their own events predate the watch.
	if ev.Op&fsnotify.Create != 0 {
		if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
			if addErr := w.addTree(absPath, true); addErr != nil {
				w.logger.Warn("watch: add new dir failed",
					slog.String("path", absPath),
					slog.String("error", addErr.Error()))
			} else {
				w.logger.Debug("watch: watching new dir", slog.String("path", absPath))
			}
			return
		}
	}

	rel, loc, ok := w.classify(absPath)
	if !ok {
		return
	}

	switch {
	case ev.Op&fsnotify.Create != 0:
		kind := KindCreated
		if _, known := w.seen[rel]; known {
			kind = KindUpdated
		}
		w.seen[rel] = struct{}{}
		w.emit(kind, loc)

	case ev.Op&fsnotify.Write != 0:
		w.seen[rel] = struct{}{}
		w.emit(KindUpdated, loc)

	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		// fsnotify fires Rename on the old path only. If the file moved
		// within the vault the new path arrives as a separate Create.
		if _, known := w.seen[rel]; !known {
			return
		}
		delete(w.seen, rel)
		w.emit(KindDeleted, loc)
	}
}

// classify maps an absolute event path to a vault-relative note location.
// Paths outside the vault and non-note files (directories, temp files from
// atomic writes) report ok false.
func (w *watcher) classify(absPath string) (string, storage.Location, bool) {
	rel, err := filepath.Rel(w.root, absPath)
	if err != nil {
		return "", storage.Location{}, false
	}
	rel = filepath.ToSlash(rel)
	loc, ok := storage.Classify(rel)
	if !ok {
		return "", storage.Location{}, false
	}
	return rel, loc, true
}

func (w *watcher) emit(kind string, loc storage.Location) {
	ev := Event{
		Kind:  kind,
		ID:    strings.TrimSuffix(path.Base(loc.Rel), ".md"),
		Area:  loc.Area,
		Batch: loc.Batch,
		Path:  loc.Rel,
	}
	w.logger.Debug("watch: "+kind,
		slog.String("path", loc.Rel),
		slog.String("area", loc.Area.String()))
	if w.cb != nil {
		w.cb(ev)
	}
}

// addTree adds dir and all its subdirectories to the watch list and
// records the note files under them. When emit is set, files not yet
// known are reported as created.
func (w *watcher) addTree(dir string, emit bool) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fs.Add(p)
		}
		rel, loc, ok := w.classify(p)
		if !ok {
			return nil
		}
		_, known := w.seen[rel]
		w.seen[rel] = struct{}{}
		if emit && !known {
			w.emit(KindCreated, loc)
		}
		return nil
	})
}
