package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-leaderboard/internal/platform/resilience"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache. A zero ttl keeps entries until they are
// deleted. Every Delete bumps the key's generation; loads that started
// before it do not store their result.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	gens    map[string]uint64
	ttl     time.Duration
	flight  resilience.Group[V]
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		gens:    make(map[string]uint64),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return zero, false
	}

	return e.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = s.newEntry(value)
	s.mu.Unlock()
}

// Generation reports how many times key has been deleted.
func (s *Store[V]) Generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key]
}

// SetIfGeneration stores value only while key is still at gen. It reports
// whether the value was stored.
func (s *Store[V]) SetIfGeneration(_ context.Context, key string, value V, gen uint64) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen {
		return false
	}
	s.entries[key] = s.newEntry(value)
	return true
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.gens[key]++
	s.mu.Unlock()
	s.flight.Forget(key)
}

func (s *Store[V]) newEntry(value V) entry[V] {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once for all concurrent
// callers of the same key. Loader errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (V, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		gen := s.Generation(key)
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return zero, loadErr
		}
		s.SetIfGeneration(ctx, key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	return value, nil
}
