package selection

import (
	"iter"
	"slices"

	"github.com/grovetools/spoolview/pkg/models"
)

// Set is an insertion-ordered set of group ids.
type Set struct {
	items []models.GroupID
	index map[models.GroupID]struct{}
}

// NewSet creates a set holding groups in order, skipping duplicates.
func NewSet(groups ...models.GroupID) *Set {
	s := &Set{index: make(map[models.GroupID]struct{}, len(groups))}
	for _, g := range groups {
		s.Add(g)
	}
	return s
}

// Add appends g if absent and reports whether it was added.
func (s *Set) Add(g models.GroupID) bool {
	if _, ok := s.index[g]; ok {
		return false
	}
	s.index[g] = struct{}{}
	s.items = append(s.items, g)
	return true
}

// Remove deletes g if present and reports whether it was removed.
func (s *Set) Remove(g models.GroupID) bool {
	if _, ok := s.index[g]; !ok {
		return false
	}
	delete(s.index, g)
	if i := slices.Index(s.items, g); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	return true
}

// Contains reports whether g is in the set.
func (s *Set) Contains(g models.GroupID) bool {
	_, ok := s.index[g]
	return ok
}

// Len returns the number of groups.
func (s *Set) Len() int { return len(s.items) }

// Items returns a copy of the groups in insertion order.
func (s *Set) Items() []models.GroupID {
	return slices.Clone(s.items)
}

// All iterates the groups in insertion order.
func (s *Set) All() iter.Seq[models.GroupID] {
	return slices.Values(s.items)
}
