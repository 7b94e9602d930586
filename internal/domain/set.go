package domain

import (
	"encoding/json"
	"maps"
	"slices"
)

// Set is an immutable-by-convention set of item identifiers. Use With to get a
// copy containing an extra element; never write to a Set you did not create.
type Set[ID ItemID] map[ID]struct{}

// NewSet returns a set holding ids.
func NewSet[ID ItemID](ids ...ID) Set[ID] {
	s := make(Set[ID], len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. A nil set is empty.
func (s Set[ID]) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of elements.
func (s Set[ID]) Len() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Set[ID]) Clone() Set[ID] {
	out := make(Set[ID], len(s)+1)
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// With returns s plus id. If id is already present s itself is returned,
// which makes adding idempotent.
func (s Set[ID]) With(id ID) Set[ID] {
	if s.Has(id) {
		return s
	}
	out := s.Clone()
	out[id] = struct{}{}
	return out
}

// Sorted returns the elements in ascending order.
func (s Set[ID]) Sorted() []ID {
	return slices.Sorted(maps.Keys(s))
}

// MarshalJSON encodes the set as a sorted array.
func (s Set[ID]) MarshalJSON() ([]byte, error) {
	ids := s.Sorted()
	if ids == nil {
		ids = []ID{}
	}
	return json.Marshal(ids)
}

// UnmarshalJSON decodes an array of identifiers.
func (s *Set[ID]) UnmarshalJSON(data []byte) error {
	var ids []ID
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSet(ids...)
	return nil
}
