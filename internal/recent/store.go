package recent

import (
	"errors"
	"sync"
)

var ErrCapacity = errors.New("recent: capacity must be at least 1")

// Store keeps, per key, the last few items picked for that key.
// Entries are created on first use and kept until the process exits.
type Store[K comparable] struct {
	capacity int

	mu      sync.Mutex
	entries map[K]*entry
}

type entry struct {
	mu    sync.Mutex
	items []string // oldest first
}

func NewStore[K comparable](capacity int) (*Store[K], error) {
	if capacity < 1 {
		return nil, ErrCapacity
	}
	return &Store[K]{
		capacity: capacity,
		entries:  make(map[K]*entry),
	}, nil
}

func (s *Store[K]) Capacity() int { return s.capacity }

// Len returns the number of keys with a history.
func (s *Store[K]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Recent returns a copy of the key's history, oldest first.
func (s *Store[K]) Recent(key K) []string {
	e := s.lookup(key, false)
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.items...)
}

// Do runs choose with the key's current history and records its result.
// Calls for the same key are serialized; calls for different keys only
// share the brief map lookup.
func (s *Store[K]) Do(key K, choose func(recent []string) string) string {
	e := s.lookup(key, true)

	e.mu.Lock()
	defer e.mu.Unlock()

	item := choose(e.items)
	e.items = append(e.items, item)
	if over := len(e.items) - s.capacity; over > 0 {
		e.items = append(e.items[:0], e.items[over:]...)
	}
	return item
}

func (s *Store[K]) lookup(key K, create bool) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok && create {
		e = &entry{items: make([]string, 0, s.capacity+1)}
		s.entries[key] = e
	}
	return e
}
