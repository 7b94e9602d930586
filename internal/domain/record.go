package domain

import "time"

// ReviewRecord is everything the scheduler remembers about one item.
type ReviewRecord[ID ItemID] struct {
	ItemID ID          `json:"item_id"`
	Memory MemoryState `json:"memory"`
	Log    *ReviewLog  `json:"log,omitempty"`

	// Introducing marks an item that left stage New on an Again rating and has
	// not been passed since.
	Introducing bool `json:"introducing,omitempty"`
}

// NewReviewRecord returns a fresh record for an item first touched at now.
func NewReviewRecord[ID ItemID](id ID, now time.Time) ReviewRecord[ID] {
	return ReviewRecord[ID]{
		ItemID: id,
		Memory: NewMemoryState(now),
	}
}

// IsNew reports whether the item has never been successfully introduced.
func (r ReviewRecord[ID]) IsNew() bool {
	return r.Memory.Stage == StageNew || r.Introducing
}
