package scheduler

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Shuffler permutes n elements through swap.
// *rand.Rand from math/rand/v2 satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	shuffler Shuffler
	seed     uint64
}

// WithShuffler makes every build draw from s. Tests use it with a seeded
// source to pin down the permutation.
func WithShuffler(s Shuffler) Option {
	return func(o *options) {
		o.shuffler = s
	}
}

// WithSeed salts the default per-snapshot shuffle.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// Salted returns a copy of e whose default shuffle is also keyed by salt.
// Callers pass a per-user value so users starting on the same day do not all
// see new items in the same order. An explicit shuffler is unaffected.
func (e *Engine[ID, I, F]) Salted(salt uint64) *Engine[ID, I, F] {
	c := *e
	c.opts.seed ^= salt
	return &c
}

// shufflerFor returns the shuffler for one build. Without an explicit shuffler
// the permutation is seeded from the store snapshot, so rebuilding from the same
// snapshot (for example after a filter change) keeps the same order.
func (e *Engine[ID, I, F]) shufflerFor(store domain.ReviewStore[ID]) Shuffler {
	if e.opts.shuffler != nil {
		return e.opts.shuffler
	}
	return rand.New(rand.NewPCG(snapshotSeed(store), e.opts.seed))
}

func snapshotSeed[ID domain.ItemID](store domain.ReviewStore[ID]) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%d|", store.LastRolloverDate, len(store.Records), store.ReviewedToday.Len())
	for _, id := range store.NewItemsToday.Sorted() {
		fmt.Fprintf(h, "%v,", id)
	}
	return h.Sum64()
}

func shuffle[T any](s Shuffler, items []T) {
	s.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
