package notestore

import (
	"log/slog"
	"time"

	"github.com/starford/quill/internal/tag"
)

// Option is a functional option for configuring a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPinned sets the pinned tags surfaced by tag overviews.
func WithPinned(tags []tag.Tag) Option {
	return func(s *Store) {
		s.pinned = tags
	}
}

// WithRetention sets how long trashed notes are kept before expiry
// sweeps remove them. Zero or negative disables sweeping.
func WithRetention(d time.Duration) Option {
	return func(s *Store) {
		s.retention = d
	}
}
