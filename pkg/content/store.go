package content

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// FetchFunc loads the remote value for a store.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Store holds one unit of site content, seeded with bundled defaults and
// optionally hydrated from the remote API. Hydration is best-effort: a
// failed or empty fetch leaves the defaults in place and the visitor never
// sees an error.
type Store[T any] struct {
	mu       sync.RWMutex
	value    T
	hydrated bool

	name  string
	fetch FetchFunc[T]
	empty func(T) bool
	log   *zap.Logger
}

// Option configures a Store.
type Option[T any] func(*Store[T])

// WithLogger routes hydration diagnostics to the given logger.
func WithLogger[T any](log *zap.Logger) Option[T] {
	return func(s *Store[T]) {
		if log != nil {
			s.log = log
		}
	}
}

// WithEmptyCheck marks fetched values that should not replace the defaults.
// A fetch whose result passes the check counts as a miss.
func WithEmptyCheck[T any](fn func(T) bool) Option[T] {
	return func(s *Store[T]) {
		s.empty = fn
	}
}

// NewStore builds a store seeded with defaults. fetch may be nil, in which
// case Load is a no-op and the defaults are permanent.
func NewStore[T any](name string, defaults T, fetch FetchFunc[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		name:  name,
		value: defaults,
		fetch: fetch,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the remote value and, when the fetch succeeds with a
// non-empty result, replaces the current value verbatim. Any failure keeps
// whatever was already held.
func (s *Store[T]) Load(ctx context.Context) {
	if s.fetch == nil {
		return
	}

	value, err := s.fetch(ctx)
	if err != nil {
		s.log.Debug("content hydrate failed, keeping current value",
			zap.String("store", s.name),
			zap.Error(err),
		)
		return
	}
	if s.empty != nil && s.empty(value) {
		s.log.Debug("content hydrate returned empty result, keeping current value",
			zap.String("store", s.name),
		)
		return
	}

	s.mu.Lock()
	s.value = value
	s.hydrated = true
	s.mu.Unlock()

	s.log.Debug("content hydrated", zap.String("store", s.name))
}

// Value returns the current content: the remote value after a successful
// Load, the defaults otherwise.
func (s *Store[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Hydrated reports whether a remote value has replaced the defaults.
func (s *Store[T]) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}
