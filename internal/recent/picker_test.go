package recent

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPicker[K comparable](t *testing.T, pool []string, capacity int, opts ...Option) (*Picker[K], *Store[K]) {
	t.Helper()
	store, err := NewStore[K](capacity)
	require.NoError(t, err)
	p, err := NewPicker(pool, store, opts...)
	require.NoError(t, err)
	return p, store
}

func TestNewPicker_EmptyPool(t *testing.T) {
	store, err := NewStore[int64](3)
	require.NoError(t, err)

	p, err := NewPicker[int64](nil, store)
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.Nil(t, p)
}

func TestNewStore_InvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		s, err := NewStore[string](c)
		assert.ErrorIs(t, err, ErrCapacity)
		assert.Nil(t, s)
	}
}

func TestPick_AvoidsRecent(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f"}
	const k = 3
	p, store := newPicker[int64](t, pool, k)

	var picks []string
	for i := 0; i < 500; i++ {
		got := p.Pick(42)
		require.Contains(t, pool, got)

		from := max(0, len(picks)-k)
		assert.NotContains(t, picks[from:], got, "pick %d repeats one of the last %d", i, k)
		picks = append(picks, got)

		assert.LessOrEqual(t, len(store.Recent(42)), k)
	}
}

func TestPick_HistoryIsFIFO(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e"}
	// always take the first candidate
	p, store := newPicker[string](t, pool, 2, WithRand(func(int) int { return 0 }))

	assert.Equal(t, "a", p.Pick("u"))
	assert.Equal(t, "b", p.Pick("u"))
	assert.Equal(t, []string{"a", "b"}, store.Recent("u"))

	assert.Equal(t, "c", p.Pick("u"))
	assert.Equal(t, []string{"b", "c"}, store.Recent("u"))

	// "a" was evicted, so it is a candidate again
	assert.Equal(t, "a", p.Pick("u"))
	assert.Equal(t, []string{"c", "a"}, store.Recent("u"))
}

func TestPick_TwoItemPoolFallsBack(t *testing.T) {
	pool := []string{"A", "B"}

	counts := map[string]int{}
	for trial := 0; trial < 2000; trial++ {
		p, store := newPicker[int64](t, pool, 3)

		first := p.Pick(1)
		counts[first]++
		assert.Equal(t, []string{first}, store.Recent(1))

		second := p.Pick(1)
		assert.NotEqual(t, first, second, "only one candidate is left")
		assert.Equal(t, []string{first, second}, store.Recent(1))

		third := p.Pick(1)
		assert.Contains(t, pool, third)
		assert.Len(t, store.Recent(1), 3)

		for i := 0; i < 5; i++ {
			assert.Contains(t, pool, p.Pick(1))
			assert.Len(t, store.Recent(1), 3)
		}
	}

	assert.InDelta(t, 1000, counts["A"], 150)
	assert.InDelta(t, 1000, counts["B"], 150)
}

func TestPick_FallbackUsesWholePool(t *testing.T) {
	pool := []string{"A", "B"}
	var sizes []int
	p, _ := newPicker[int](t, pool, 3, WithRand(func(n int) int {
		sizes = append(sizes, n)
		return n - 1
	}))

	for i := 0; i < 4; i++ {
		p.Pick(7)
	}
	assert.Equal(t, []int{2, 1, 2, 2}, sizes)
}

func TestShared_NoConsecutiveRepeats(t *testing.T) {
	pool := []string{"A", "B", "C", "D", "E"}
	p, store := newPicker[int64](t, pool, 1)
	shared := Shared[int64]{Picker: p, Key: 0}

	prev := ""
	for i := 0; i < 10; i++ {
		// different callers, one history
		got := shared.Pick(int64(i))
		assert.NotEqual(t, prev, got)
		prev = got
	}
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, []string{prev}, store.Recent(0))
}

func TestPick_KeysAreIndependent(t *testing.T) {
	pool := []string{"a", "b", "c", "d"}
	p, store := newPicker[string](t, pool, 3, WithRand(func(int) int { return 0 }))

	assert.Equal(t, "a", p.Pick("alice"))
	assert.Equal(t, "b", p.Pick("alice"))
	assert.Equal(t, "a", p.Pick("bob"))

	assert.Equal(t, []string{"a", "b"}, store.Recent("alice"))
	assert.Equal(t, []string{"a"}, store.Recent("bob"))
	assert.Nil(t, store.Recent("carol"))
	assert.Equal(t, 2, store.Len())
}

func TestPick_SmallPoolKeepsInvariants(t *testing.T) {
	for size := 1; size <= 3; size++ {
		pool := make([]string, size)
		for i := range pool {
			pool[i] = fmt.Sprintf("img-%d", i)
		}
		p, store := newPicker[int](t, pool, 3)
		for i := 0; i < 50; i++ {
			assert.Contains(t, pool, p.Pick(1))
			assert.LessOrEqual(t, len(store.Recent(1)), 3)
		}
	}
}

func TestPick_PoolIsCopied(t *testing.T) {
	pool := []string{"a", "b"}
	p, _ := newPicker[int](t, pool, 1)
	pool[0] = "z"

	assert.Equal(t, []string{"a", "b"}, p.Pool())
}

func TestPick_ConcurrentSameKey(t *testing.T) {
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	const (
		k       = 3
		workers = 8
		perG    = 200
	)
	p, store := newPicker[int64](t, pool, k)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				p.Pick(1)
				p.Pick(int64(100 + w))
			}
		}(w)
	}
	wg.Wait()

	recent := store.Recent(1)
	require.Len(t, recent, k)
	// serialized updates never leave duplicates inside one window
	sorted := slices.Clone(recent)
	slices.Sort(sorted)
	assert.Equal(t, len(sorted), len(slices.Compact(sorted)))
	assert.Equal(t, workers+1, store.Len())
}
