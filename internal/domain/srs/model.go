// Package srs adapts a spaced-repetition memory model to the scheduler.
//
// The scheduler treats the model as a black box: given an item's current memory
// state and "now", the model projects the next state for every possible grade.
// Any implementation honouring that contract is interchangeable.
package srs

import (
	"time"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Outcome is the model's projection for one grade.
type Outcome struct {
	State domain.MemoryState
	Log   domain.ReviewLog
}

// MemoryModel projects the next memory state for each grade.
type MemoryModel interface {
	// Repeat returns one outcome per grade in domain.Grades. It must be pure:
	// the same state and now always yield the same projections.
	Repeat(state domain.MemoryState, now time.Time) map[domain.Grade]Outcome
}
