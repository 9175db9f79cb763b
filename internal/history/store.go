// Package history keeps the client-side view of the service's prediction log.
package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/service"
)

// DefaultWarningBuffer is the capacity of the warnings channel.
const DefaultWarningBuffer = 8

// Store holds the latest history snapshot. Every successful refresh replaces
// the snapshot wholesale; a failed refresh keeps the previous one and emits a
// warning instead of returning an application error to the prediction flow.
type Store struct {
	source   service.HistorySource
	cache    service.SnapshotCache
	warnings chan error
	entries  []model.HistoryEntry
	mu       sync.RWMutex
	started  uint64 // generation of the most recently started refresh
	applied  uint64 // generation of the snapshot currently held
}

// Option configures a Store.
type Option func(*Store)

// WithCache writes every fetched snapshot through to cache.
func WithCache(cache service.SnapshotCache) Option {
	return func(s *Store) {
		s.cache = cache
	}
}

// WithWarningBuffer sets the warnings channel capacity.
func WithWarningBuffer(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.warnings = make(chan error, n)
		}
	}
}

// NewStore creates a store reading from source.
func NewStore(source service.HistorySource, opts ...Option) *Store {
	s := &Store{
		source:   source,
		warnings: make(chan error, DefaultWarningBuffer),
		entries:  []model.HistoryEntry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Warnings delivers refresh failures. Sends never block; when the buffer is
// full further warnings are only logged.
func (s *Store) Warnings() <-chan error {
	return s.warnings
}

// Snapshot returns a copy of the held entries in service order.
func (s *Store) Snapshot() []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of held entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Warm seeds the snapshot from the cache. It is a no-op without a cache or
// once any refresh has been applied.
func (s *Store) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	entries, err := s.cache.LoadHistorySnapshot(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == 0 {
		s.entries = entries
	}
	return nil
}

// Refresh fetches the full history and replaces the snapshot. On failure the
// previous snapshot is kept, a HistoryRefreshError is sent to Warnings and also
// returned. A refresh that completes after a newer one has already been
// applied is discarded, and the newer snapshot is returned.
func (s *Store) Refresh(ctx context.Context) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	s.started++
	gen := s.started
	s.mu.Unlock()

	entries, err := s.source.FetchHistory(ctx)
	if err != nil {
		refreshErr := &common.HistoryRefreshError{Err: err}
		s.warn(refreshErr)
		return s.Snapshot(), refreshErr
	}

	s.mu.Lock()
	if gen < s.applied {
		slog.Debug("Discarding stale history refresh", "generation", gen, "applied", s.applied)
		s.mu.Unlock()
		return s.Snapshot(), nil
	}
	s.entries = entries
	s.applied = gen
	s.mu.Unlock()

	if s.cache != nil {
		if cacheErr := s.cache.SaveHistorySnapshot(ctx, entries); cacheErr != nil {
			common.LogWarn(cacheErr, "Failed to cache history snapshot", common.Fields{"entries": len(entries)})
		}
	}

	return s.Snapshot(), nil
}

// RefreshDetached runs Refresh in its own goroutine. The caller does not wait;
// failures arrive on Warnings. done, if non-nil, is called when it finishes.
func (s *Store) RefreshDetached(ctx context.Context, done func()) {
	go func() {
		if done != nil {
			defer done()
		}
		_, _ = s.Refresh(ctx)
	}()
}

func (s *Store) warn(err error) {
	common.LogWarn(err, "History refresh failed", nil)
	select {
	case s.warnings <- err:
	default:
	}
}
