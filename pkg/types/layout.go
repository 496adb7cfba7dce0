// Layout entity: a per-tag arrangement of item candidate lists into slots.
package types

import (
	"errors"
	"slices"
	"strings"
)

// Layout errors.
var (
	ErrInvalidTag    = errors.New("tag must not be empty")
	ErrMalformedSlot = errors.New("malformed layout slot")
)

// MaxSlots bounds the extent a layout can grow to. Operations that would
// address a position at or beyond it are ignored.
const MaxSlots = 4096

// StandardizeTag returns the case-insensitive storage key for a tag.
func StandardizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// Layout is an ordered sequence of slots owned by a single tag.
//
// A nil slot is empty. Otherwise the slot holds a non-empty candidate list in
// priority order: index 0 is displayed normally and later entries are
// fallbacks shown only when higher priority ids are absent.
//
// All position arguments are tolerant: negative positions and positions at
// or beyond MaxSlots are ignored and never panic. Slices returned by Layout are copies.
type Layout struct {
	tag   string
	slots [][]int
}

// NewLayout returns an empty layout for tag.
func NewLayout(tag string) *Layout {
	return &Layout{tag: tag}
}

// NewLayoutFromSlots returns a layout holding a deep copy of slots. Empty
// candidate lists are stored as empty slots.
func NewLayoutFromSlots(tag string, slots [][]int) *Layout {
	return &Layout{tag: tag, slots: cloneSlots(slots)}
}

// Tag returns the owning tag.
func (l *Layout) Tag() string {
	return l.tag
}

// Clone returns an independent copy of l.
func (l *Layout) Clone() *Layout {
	return &Layout{tag: l.tag, slots: cloneSlots(l.slots)}
}

// Slots returns a deep copy of every slot.
func (l *Layout) Slots() [][]int {
	return cloneSlots(l.slots)
}

// Candidates returns the candidate list at pos, or nil when the slot is empty
// or out of range.
func (l *Layout) Candidates(pos int) []int {
	if pos < 0 || pos >= len(l.slots) || l.slots[pos] == nil {
		return nil
	}
	return slices.Clone(l.slots[pos])
}

// Primary returns the highest priority candidate at pos, or NoItem.
func (l *Layout) Primary(pos int) int {
	if pos < 0 || pos >= len(l.slots) || len(l.slots[pos]) == 0 {
		return NoItem
	}
	return l.slots[pos][0]
}

// SetPrimary replaces the slot at pos with the single candidate id, growing
// the layout as needed. NoItem clears the slot.
func (l *Layout) SetPrimary(id, pos int) {
	if !addressable(pos) {
		return
	}
	l.grow(pos + 1)
	if id == NoItem {
		l.slots[pos] = nil
		return
	}
	l.slots[pos] = []int{id}
}

// SetCandidates replaces the whole candidate list at pos. An empty ids clears
// the slot.
func (l *Layout) SetCandidates(ids []int, pos int) {
	if !addressable(pos) {
		return
	}
	l.grow(pos + 1)
	if len(ids) == 0 {
		l.slots[pos] = nil
		return
	}
	l.slots[pos] = slices.Clone(ids)
}

// Add places id in the first empty slot, appending a slot if none is free.
func (l *Layout) Add(id int) {
	l.AddAfter(id, 0)
}

// AddAfter places id in the first empty slot at or after pos. When every slot
// from pos onward is filled the layout grows and id takes the new last slot.
func (l *Layout) AddAfter(id, pos int) {
	if !addressable(pos) {
		return
	}
	i := pos
	for ; i < len(l.slots); i++ {
		if l.slots[i] == nil {
			l.slots[i] = []int{id}
			return
		}
	}
	if !addressable(i) {
		return
	}
	l.Resize(i + 1)
	l.slots[i] = []int{id}
}

// Remove deletes id from every candidate list. Lists left empty become empty
// slots.
func (l *Layout) Remove(id int) {
	for i, v := range l.slots {
		if !slices.Contains(v, id) {
			continue
		}
		v = slices.DeleteFunc(slices.Clone(v), func(c int) bool { return c == id })
		if len(v) == 0 {
			v = nil
		}
		l.slots[i] = v
	}
}

// RemoveAt empties the slot at pos.
func (l *Layout) RemoveAt(pos int) {
	if pos < 0 || pos >= len(l.slots) {
		return
	}
	l.slots[pos] = nil
}

// RemoveFromPos deletes id from the candidate list at pos only.
func (l *Layout) RemoveFromPos(id, pos int) {
	if id == NoItem || pos < 0 || pos >= len(l.slots) {
		return
	}
	v := l.slots[pos]
	idx := slices.Index(v, id)
	if idx == -1 {
		return
	}
	l.slots[pos] = dropIndex(v, idx)
}

// InsertBeforeIndexAtPos inserts id into the candidate list at pos before
// insertIdx. An id already in the list is moved rather than duplicated.
func (l *Layout) InsertBeforeIndexAtPos(id, pos, insertIdx int) {
	if id == NoItem || !addressable(pos) {
		return
	}
	l.grow(pos + 1)

	v := l.slots[pos]
	if len(v) == 0 {
		l.slots[pos] = []int{id}
		return
	}

	insertIdx = max(0, min(insertIdx, len(v)))
	base := slices.Clone(v)
	if existing := slices.Index(base, id); existing != -1 {
		// The removal shifts everything after it left by one.
		if existing < insertIdx {
			insertIdx--
		}
		base = slices.Delete(base, existing, existing+1)
	}
	l.slots[pos] = slices.Insert(base, insertIdx, id)
}

// AddToFrontAtPos makes id the highest priority candidate at pos, moving it
// if it is already listed.
func (l *Layout) AddToFrontAtPos(id, pos int) {
	if id == NoItem || !addressable(pos) {
		return
	}
	l.grow(pos + 1)

	v := l.slots[pos]
	if len(v) == 0 {
		l.slots[pos] = []int{id}
		return
	}
	idx := slices.Index(v, id)
	if idx == 0 {
		return
	}
	n := make([]int, 0, len(v)+1)
	n = append(n, id)
	for i, c := range v {
		if i != idx {
			n = append(n, c)
		}
	}
	l.slots[pos] = n
}

// Swap exchanges the contents of slots i and j.
func (l *Layout) Swap(i, j int) {
	if !l.inRange(i) || !l.inRange(j) {
		return
	}
	l.slots[i], l.slots[j] = l.slots[j], l.slots[i]
}

// Insert moves the slot at src to dst. Filled slots between them shift one
// step toward src, stopping at the first empty slot in the shift direction.
func (l *Layout) Insert(src, dst int) {
	if !l.inRange(src) || !l.inRange(dst) {
		return
	}
	moved := l.slots[src]
	switch {
	case src < dst:
		i := dst
		for i > src && l.slots[i] != nil {
			i--
		}
		l.slots[src] = nil
		copy(l.slots[i:dst], l.slots[i+1:dst+1])
		l.slots[dst] = moved
	case src > dst:
		i := dst
		for i < src && l.slots[i] != nil {
			i++
		}
		l.slots[src] = nil
		copy(l.slots[dst+1:i+1], l.slots[dst:i])
		l.slots[dst] = moved
	}
}

// Count returns the number of slots whose candidate list contains id.
func (l *Layout) Count(id int) int {
	c := 0
	for _, v := range l.slots {
		if slices.Contains(v, id) {
			c++
		}
	}
	return c
}

// Size returns the current extent.
func (l *Layout) Size() int {
	return len(l.slots)
}

// Resize truncates or pads the layout with empty slots. Sizes above MaxSlots
// are ignored.
func (l *Layout) Resize(n int) {
	if n < 0 || n > MaxSlots {
		return
	}
	if n <= len(l.slots) {
		clear(l.slots[n:])
		l.slots = l.slots[:n]
		return
	}
	l.slots = append(l.slots, make([][]int, n-len(l.slots))...)
}

func (l *Layout) grow(n int) {
	if n > len(l.slots) {
		l.Resize(n)
	}
}

func addressable(pos int) bool {
	return pos >= 0 && pos < MaxSlots
}

func (l *Layout) inRange(pos int) bool {
	return pos >= 0 && pos < len(l.slots)
}

// dropIndex returns v without index idx, or nil when nothing remains.
func dropIndex(v []int, idx int) []int {
	if len(v) == 1 {
		return nil
	}
	return slices.Delete(slices.Clone(v), idx, idx+1)
}

func cloneSlots(in [][]int) [][]int {
	out := make([][]int, len(in))
	for i, v := range in {
		if len(v) > 0 {
			out[i] = slices.Clone(v)
		}
	}
	return out
}
