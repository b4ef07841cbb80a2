// Package recent picks random items while steering away from the items a
// requester received most recently.
package recent

import (
	"errors"
	"math/rand"
)

var ErrEmptyPool = errors.New("recent: pool is empty")

type Option func(*options)

type options struct {
	intn func(n int) int
}

// WithRand replaces the uniform source used to draw candidates.
// intn must return a value in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(o *options) { o.intn = intn }
}

// Picker draws from a fixed pool, avoiding each key's recent picks when
// the pool is large enough to allow it.
type Picker[K comparable] struct {
	pool  []string
	store *Store[K]
	intn  func(n int) int
}

func NewPicker[K comparable](pool []string, store *Store[K], opts ...Option) (*Picker[K], error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	o := options{intn: rand.Intn}
	for _, opt := range opts {
		opt(&o)
	}
	return &Picker[K]{
		pool:  append([]string(nil), pool...),
		store: store,
		intn:  o.intn,
	}, nil
}

func (p *Picker[K]) Pool() []string { return append([]string(nil), p.pool...) }

// Pick returns an item from the pool for key and records it in the key's
// history. If every pool item is in the history, the whole pool is used.
func (p *Picker[K]) Pick(key K) string {
	return p.store.Do(key, func(recent []string) string {
		candidates := p.candidates(recent)
		return candidates[p.intn(len(candidates))]
	})
}

func (p *Picker[K]) candidates(recent []string) []string {
	if len(recent) == 0 {
		return p.pool
	}
	seen := make(map[string]struct{}, len(recent))
	for _, item := range recent {
		seen[item] = struct{}{}
	}
	out := make([]string, 0, len(p.pool))
	for _, item := range p.pool {
		if _, ok := seen[item]; !ok {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return p.pool
	}
	return out
}

// Shared sends every pick through one key, so all callers share a
// single history.
type Shared[K comparable] struct {
	Picker *Picker[K]
	Key    K
}

func (s Shared[K]) Pick(K) string { return s.Picker.Pick(s.Key) }
