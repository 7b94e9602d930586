package domain

import (
	"cmp"
	"encoding/json"
	"maps"
	"slices"
)

// ReviewStore is the per-user, per-direction aggregate of review records plus
// today's bookkeeping. Every method returns a new snapshot; the receiver is
// never modified, so a previous snapshot stays valid for rollback.
type ReviewStore[ID ItemID] struct {
	Records          map[ID]ReviewRecord[ID]
	ReviewedToday    Set[ID]
	NewItemsToday    Set[ID]
	LastRolloverDate string
}

// NewReviewStore returns an empty store whose bookkeeping belongs to today.
func NewReviewStore[ID ItemID](today string) ReviewStore[ID] {
	return ReviewStore[ID]{
		Records:          map[ID]ReviewRecord[ID]{},
		ReviewedToday:    Set[ID]{},
		NewItemsToday:    Set[ID]{},
		LastRolloverDate: today,
	}
}

// Record returns the stored record for id, if any.
func (s ReviewStore[ID]) Record(id ID) (ReviewRecord[ID], bool) {
	rec, ok := s.Records[id]
	return rec, ok
}

// WithRecord returns a snapshot in which rec replaces any record for the same item.
func (s ReviewStore[ID]) WithRecord(rec ReviewRecord[ID]) ReviewStore[ID] {
	records := make(map[ID]ReviewRecord[ID], len(s.Records)+1)
	maps.Copy(records, s.Records)
	records[rec.ItemID] = rec
	s.Records = records
	return s
}

// WithReviewed returns a snapshot with id marked as reviewed today.
func (s ReviewStore[ID]) WithReviewed(id ID) ReviewStore[ID] {
	s.ReviewedToday = s.ReviewedToday.With(id)
	return s
}

// WithNewToday returns a snapshot with id counted against today's new quota.
func (s ReviewStore[ID]) WithNewToday(id ID) ReviewStore[ID] {
	s.NewItemsToday = s.NewItemsToday.With(id)
	return s
}

// WithDay returns a snapshot with both today-sets cleared and the rollover
// date set to today.
func (s ReviewStore[ID]) WithDay(today string) ReviewStore[ID] {
	s.ReviewedToday = Set[ID]{}
	s.NewItemsToday = Set[ID]{}
	s.LastRolloverDate = today
	return s
}

type reviewStoreWire[ID ItemID] struct {
	Records          []ReviewRecord[ID] `json:"records"`
	ReviewedToday    Set[ID]            `json:"reviewed_today"`
	NewItemsToday    Set[ID]            `json:"new_items_today"`
	LastRolloverDate string             `json:"last_rollover_date"`
}

// MarshalJSON encodes the store with records as an id-sorted list so that the
// document is stable across saves.
func (s ReviewStore[ID]) MarshalJSON() ([]byte, error) {
	records := slices.SortedFunc(maps.Values(s.Records), func(a, b ReviewRecord[ID]) int {
		return cmp.Compare(a.ItemID, b.ItemID)
	})
	if records == nil {
		records = []ReviewRecord[ID]{}
	}
	return json.Marshal(reviewStoreWire[ID]{
		Records:          records,
		ReviewedToday:    s.ReviewedToday,
		NewItemsToday:    s.NewItemsToday,
		LastRolloverDate: s.LastRolloverDate,
	})
}

// UnmarshalJSON decodes the document written by MarshalJSON. Missing sets
// decode as empty sets.
func (s *ReviewStore[ID]) UnmarshalJSON(data []byte) error {
	var wire reviewStoreWire[ID]
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	records := make(map[ID]ReviewRecord[ID], len(wire.Records))
	for _, rec := range wire.Records {
		records[rec.ItemID] = rec
	}
	if wire.ReviewedToday == nil {
		wire.ReviewedToday = Set[ID]{}
	}
	if wire.NewItemsToday == nil {
		wire.NewItemsToday = Set[ID]{}
	}

	*s = ReviewStore[ID]{
		Records:          records,
		ReviewedToday:    wire.ReviewedToday,
		NewItemsToday:    wire.NewItemsToday,
		LastRolloverDate: wire.LastRolloverDate,
	}
	return nil
}
