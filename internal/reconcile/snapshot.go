// Package reconcile matches a Layout against the items currently possessed
// and produces the per-slot render plan.
package reconcile

import (
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// Snapshot is an insertion-ordered set of item ids, real and placeholder,
// available for matching during one reconciliation pass.
type Snapshot struct {
	order []int
	live  map[int]bool
}

// NewSnapshot returns a snapshot holding ids in order. Duplicates are
// dropped.
func NewSnapshot(ids ...int) *Snapshot {
	s := &Snapshot{live: make(map[int]bool, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// SnapshotFrom builds the snapshot for a container followed by secondary
// storage. Empty slots, filler items and ids below 1 are skipped. Either
// source may be nil.
func SnapshotFrom(c types.Container, sec types.SecondaryStorage, r types.ItemResolver) *Snapshot {
	s := NewSnapshot()
	if c != nil {
		for slot := 0; slot < c.Size(); slot++ {
			id, ok := c.Item(slot)
			if !ok || id <= 0 || r.Item(id).Filler {
				continue
			}
			s.Add(id)
		}
	}
	if sec != nil {
		for _, id := range sec.Items() {
			if id > 0 {
				s.Add(id)
			}
		}
	}
	return s
}

// Add appends id unless it is already present. An id that was removed keeps
// its original position when added back.
func (s *Snapshot) Add(id int) {
	if s.live[id] {
		return
	}
	if _, seen := s.live[id]; !seen {
		s.order = append(s.order, id)
	}
	s.live[id] = true
}

// Contains reports whether id is present.
func (s *Snapshot) Contains(id int) bool {
	return s.live[id]
}

// Remove drops id. Removing an absent id is a no-op.
func (s *Snapshot) Remove(id int) {
	if s.live[id] {
		s.live[id] = false
	}
}

// Len returns the number of ids present.
func (s *Snapshot) Len() int {
	n := 0
	for _, ok := range s.live {
		if ok {
			n++
		}
	}
	return n
}

// IDs returns the present ids in insertion order.
func (s *Snapshot) IDs() []int {
	out := make([]int, 0, len(s.order))
	for _, id := range s.order {
		if s.live[id] {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns an independent copy.
func (s *Snapshot) Clone() *Snapshot {
	return NewSnapshot(s.IDs()...)
}
