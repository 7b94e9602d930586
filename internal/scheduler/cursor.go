package scheduler

import (
	"slices"

	"github.com/phrazzld/scry-study/internal/domain"
)

// Cursor walks a built session one card at a time.
//
// Cards are taken from the main queue in order. A card answered Again goes to
// the tail of the relearn queue; once the main queue is exhausted the relearn
// queue is cycled round-robin until every card in it has been passed. A card
// is therefore never repeated back to back while others are pending, and
// failures never block the rest of the main queue.
//
// Cursor is a value: Answer returns the next cursor and leaves the receiver
// untouched.
type Cursor[ID domain.ItemID, I domain.Item[ID]] struct {
	main    []SessionCard[ID, I]
	index   int
	relearn []SessionCard[ID, I]
}

// NewCursor starts a cursor at the head of queue.
func NewCursor[ID domain.ItemID, I domain.Item[ID]](queue []SessionCard[ID, I]) Cursor[ID, I] {
	return Cursor[ID, I]{main: slices.Clone(queue)}
}

// Current returns the card to present, or false once finished.
func (c Cursor[ID, I]) Current() (SessionCard[ID, I], bool) {
	switch {
	case c.index < len(c.main):
		return c.main[c.index], true
	case len(c.relearn) > 0:
		return c.relearn[0], true
	default:
		var zero SessionCard[ID, I]
		return zero, false
	}
}

// Finished reports whether the main queue is exhausted and nothing awaits relearning.
func (c Cursor[ID, I]) Finished() bool {
	return c.index >= len(c.main) && len(c.relearn) == 0
}

// InMain reports whether the current card comes from the main queue.
func (c Cursor[ID, I]) InMain() bool {
	return c.index < len(c.main)
}

// Index is the position in the main queue.
func (c Cursor[ID, I]) Index() int {
	return c.index
}

// MainLen is the size of the main queue.
func (c Cursor[ID, I]) MainLen() int {
	return len(c.main)
}

// RelearnLen is the number of cards waiting to be relearned.
func (c Cursor[ID, I]) RelearnLen() int {
	return len(c.relearn)
}

// Remaining counts the cards still to be passed, relearn cards included.
func (c Cursor[ID, I]) Remaining() int {
	return max(0, len(c.main)-c.index) + len(c.relearn)
}

// Answer moves past the current card. updated is the current card carrying its
// freshly rated record. Answering a finished cursor is a no-op.
func (c Cursor[ID, I]) Answer(updated SessionCard[ID, I], grade domain.Grade) Cursor[ID, I] {
	if c.Finished() {
		return c
	}

	if c.InMain() {
		c.index++
		if grade == domain.GradeAgain {
			c.relearn = append(slices.Clone(c.relearn), updated)
		}
		return c
	}

	rest := slices.Clone(c.relearn[1:])
	if grade == domain.GradeAgain {
		rest = append(rest, updated)
	}
	c.relearn = rest
	return c
}
