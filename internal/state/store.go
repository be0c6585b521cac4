package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/billie-coop/fieldstate/internal/csync"
	"github.com/billie-coop/fieldstate/internal/logger"
)

// Store is an in-memory Observable with ordered delivery and optional
// persistence to disk.
//
// Listeners run outside the store lock. A state published while a delivery
// is in progress (from a listener or from another goroutine) is queued and
// delivered after the current one, so every listener sees states in publish
// order and may safely publish again from inside its callback.
type Store[S any] struct {
	mu       sync.RWMutex
	data     S
	defaults S
	path     string
	logger   *slog.Logger

	listeners *csync.Map[uint64, func(S)]
	nextID    atomic.Uint64

	pending  []S
	draining bool
}

// StoreOption configures a Store.
type StoreOption[S any] func(*Store[S])

// WithPersistence mirrors the current state to a JSON file at path.
// An existing file is loaded when the store is created.
func WithPersistence[S any](path string) StoreOption[S] {
	return func(s *Store[S]) {
		s.path = path
	}
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger[S any](logger *slog.Logger) StoreOption[S] {
	return func(s *Store[S]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a store holding defaults.
func NewStore[S any](defaults S, opts ...StoreOption[S]) *Store[S] {
	s := &Store[S]{
		data:      defaults,
		defaults:  defaults,
		logger:    logger.Discard(),
		listeners: csync.NewMap[uint64, func(S)](),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.path != "" {
		s.load()
	}

	return s
}

// Value returns the current state.
func (s *Store[S]) Value() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Set publishes value unconditionally.
func (s *Store[S]) Set(value S) {
	s.Update(func(S) (S, bool) { return value, true })
}

// Update implements Observable.
func (s *Store[S]) Update(fn func(S) (S, bool)) S {
	next, deliver := s.apply(fn)
	if deliver {
		s.drain()
	}
	return next
}

// apply runs fn under the lock and queues its result. deliver reports
// whether the caller became the drainer.
func (s *Store[S]) apply(fn func(S) (S, bool)) (next S, deliver bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.data)
	if !changed {
		return s.data, false
	}

	s.data = next
	s.pending = append(s.pending, next)
	if s.path != "" {
		if err := s.save(); err != nil {
			s.logger.Error("failed to persist state", slog.String("path", s.path), slog.Any("error", err))
		}
	}

	if s.draining {
		// Whoever is draining will deliver it.
		return next, false
	}
	s.draining = true
	return next, true
}

// drain delivers queued states until the queue is empty.
func (s *Store[S]) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.pending = nil
			s.draining = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.draining = false
			s.mu.Unlock()
			return
		}
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, value := range batch {
			for _, listener := range s.listeners.Ordered() {
				listener(value)
			}
		}
	}
}

// OnChange implements Observable. Listeners are called in subscription order.
func (s *Store[S]) OnChange(listener func(S)) func() {
	if listener == nil {
		return func() {}
	}

	id := s.nextID.Add(1)
	s.listeners.Set(id, listener)

	var once sync.Once
	return func() {
		once.Do(func() { s.listeners.Delete(id) })
	}
}

// Clear publishes the defaults and removes the persisted file.
func (s *Store[S]) Clear() error {
	s.Set(s.defaults)

	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}

// load reads from disk if file exists.
func (s *Store[S]) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		// File doesn't exist or can't read - use defaults
		return
	}

	loaded := s.defaults
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Warn("ignoring corrupt state file", slog.String("path", s.path), slog.Any("error", err))
		return
	}
	s.data = loaded
}

// save writes to disk. Callers hold s.mu.
func (s *Store[S]) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write atomically (write to temp file, then rename)
	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, s.path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}

	return nil
}
