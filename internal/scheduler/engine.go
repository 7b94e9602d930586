package scheduler

import (
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/domain/srs"
)

// MatchFunc reports whether item passes the user's filters.
type MatchFunc[I any, F any] func(item I, filters F) bool

// Engine schedules one kind of catalog item.
type Engine[ID domain.ItemID, I domain.Item[ID], F any] struct {
	model   srs.MemoryModel
	matches MatchFunc[I, F]
	opts    options
}

// NewEngine creates an engine. model and matches are required.
func NewEngine[ID domain.ItemID, I domain.Item[ID], F any](
	model srs.MemoryModel,
	matches MatchFunc[I, F],
	opts ...Option,
) *Engine[ID, I, F] {
	if model == nil {
		panic("model cannot be nil")
	}
	if matches == nil {
		panic("matches cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine[ID, I, F]{
		model:   model,
		matches: matches,
		opts:    o,
	}
}

// Matches applies the engine's filter predicate.
func (e *Engine[ID, I, F]) Matches(item I, filters F) bool {
	return e.matches(item, filters)
}
