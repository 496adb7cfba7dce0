package types

import (
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPrimaryAndCandidates(t *testing.T) {
	l := NewLayoutFromSlots("gear", [][]int{{1}, nil, {2, 3}})

	assert.Equal(t, 1, l.Primary(0))
	assert.Equal(t, NoItem, l.Primary(1))
	assert.Equal(t, 2, l.Primary(2))
	assert.Equal(t, NoItem, l.Primary(3))
	assert.Equal(t, NoItem, l.Primary(-1))

	assert.Nil(t, l.Candidates(1))
	assert.Nil(t, l.Candidates(-4))
	assert.Equal(t, []int{2, 3}, l.Candidates(2))

	got := l.Candidates(2)
	got[0] = 99
	assert.Equal(t, []int{2, 3}, l.Candidates(2), "Candidates must return a copy")
}

func TestLayoutSetPrimary(t *testing.T) {
	tests := []struct {
		name  string
		start [][]int
		id    int
		pos   int
		want  [][]int
	}{
		{name: "grows to position", start: [][]int{{1}}, id: 7, pos: 3, want: [][]int{{1}, nil, nil, {7}}},
		{name: "replaces candidate list", start: [][]int{{1, 2}}, id: 7, pos: 0, want: [][]int{{7}}},
		{name: "NoItem clears slot", start: [][]int{{1, 2}}, id: NoItem, pos: 0, want: [][]int{nil}},
		{name: "negative position ignored", start: [][]int{{1}}, id: 7, pos: -1, want: [][]int{{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayoutFromSlots("t", tt.start)
			l.SetPrimary(tt.id, tt.pos)
			assert.Equal(t, tt.want, l.Slots())
		})
	}
}

func TestLayoutSetCandidates(t *testing.T) {
	l := NewLayout("t")
	ids := []int{4, 5}
	l.SetCandidates(ids, 1)
	ids[0] = 0
	assert.Equal(t, [][]int{nil, {4, 5}}, l.Slots())

	l.SetCandidates(nil, 1)
	assert.Equal(t, [][]int{nil, nil}, l.Slots())
}

func TestLayoutAddAfter(t *testing.T) {
	tests := []struct {
		name  string
		start [][]int
		id    int
		pos   int
		want  [][]int
	}{
		{
			name:  "fills first gap at or after pos",
			start: [][]int{{1}, nil, {2}, nil},
			id:    9, pos: 2,
			want: [][]int{{1}, nil, {2}, {9}},
		},
		{
			name:  "grows by one when full",
			start: [][]int{{1}, {2}},
			id:    9, pos: 0,
			want: [][]int{{1}, {2}, {9}},
		},
		{
			name:  "grows to pos when beyond extent",
			start: [][]int{{1}},
			id:    9, pos: 3,
			want: [][]int{{1}, nil, nil, {9}},
		},
		{
			name:  "negative pos is ignored",
			start: [][]int{{1}},
			id:    9, pos: -2,
			want: [][]int{{1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayoutFromSlots("t", tt.start)
			l.AddAfter(tt.id, tt.pos)
			assert.Equal(t, tt.want, l.Slots())
		})
	}

	t.Run("Add uses first gap from zero", func(t *testing.T) {
		l := NewLayoutFromSlots("t", [][]int{nil, {1}})
		l.Add(5)
		assert.Equal(t, [][]int{{5}, {1}}, l.Slots())
	})
}

func TestLayoutRemove(t *testing.T) {
	l := NewLayoutFromSlots("t", [][]int{{1}, {2, 1}, {3}, {1, 4, 1}})
	l.Remove(1)

	for pos, v := range l.Slots() {
		assert.NotContains(t, v, 1, "slot %d still holds the removed id", pos)
		if v != nil {
			assert.NotEmpty(t, v, "slot %d is an empty-but-present list", pos)
		}
	}
	assert.Nil(t, l.Candidates(0))
	assert.Equal(t, []int{2}, l.Candidates(1))
	assert.Equal(t, []int{3}, l.Candidates(2))
}

func TestLayoutRemoveFromPos(t *testing.T) {
	l := NewLayoutFromSlots("t", [][]int{{1, 2}, {1}})

	l.RemoveFromPos(1, 0)
	assert.Equal(t, [][]int{{2}, {1}}, l.Slots())

	l.RemoveFromPos(1, 1)
	assert.Equal(t, [][]int{{2}, nil}, l.Slots())

	l.RemoveFromPos(2, 5)
	l.RemoveFromPos(NoItem, 0)
	assert.Equal(t, [][]int{{2}, nil}, l.Slots())

	l.RemoveAt(0)
	l.RemoveAt(-1)
	assert.Equal(t, [][]int{nil, nil}, l.Slots())
}

func TestLayoutInsertBeforeIndexAtPos(t *testing.T) {
	tests := []struct {
		name  string
		start []int
		id    int
		idx   int
		want  []int
	}{
		{name: "into empty slot", start: nil, id: 5, idx: 3, want: []int{5}},
		{name: "before active index", start: []int{1, 2, 3}, id: 9, idx: 1, want: []int{1, 9, 2, 3}},
		{name: "clamped to end", start: []int{1, 2}, id: 9, idx: 10, want: []int{1, 2, 9}},
		{name: "clamped to front", start: []int{1, 2}, id: 9, idx: -3, want: []int{9, 1, 2}},
		{name: "move later element earlier", start: []int{1, 2, 3}, id: 3, idx: 0, want: []int{3, 1, 2}},
		{name: "move earlier element later", start: []int{1, 2, 3}, id: 1, idx: 3, want: []int{2, 3, 1}},
		{name: "move onto its own index", start: []int{1, 2, 3}, id: 2, idx: 1, want: []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout("t")
			l.SetCandidates(tt.start, 0)
			l.InsertBeforeIndexAtPos(tt.id, 0, tt.idx)
			assert.Equal(t, tt.want, l.Candidates(0))
		})
	}
}

func TestLayoutAddToFrontAtPos(t *testing.T) {
	l := NewLayoutFromSlots("t", [][]int{{1, 2, 3}})

	l.AddToFrontAtPos(3, 0)
	assert.Equal(t, []int{3, 1, 2}, l.Candidates(0))

	l.AddToFrontAtPos(3, 0)
	assert.Equal(t, []int{3, 1, 2}, l.Candidates(0))

	l.AddToFrontAtPos(8, 0)
	assert.Equal(t, []int{8, 3, 1, 2}, l.Candidates(0))

	l.AddToFrontAtPos(4, 2)
	assert.Equal(t, [][]int{{8, 3, 1, 2}, nil, {4}}, l.Slots())
}

func TestLayoutSwapIsInvolution(t *testing.T) {
	start := [][]int{{1}, nil, {2, 3}, {4}}
	l := NewLayoutFromSlots("t", start)

	l.Swap(0, 2)
	assert.Equal(t, [][]int{{2, 3}, nil, {1}, {4}}, l.Slots())

	l.Swap(0, 2)
	assert.Equal(t, start, l.Slots())

	l.Swap(1, 9)
	l.Swap(-1, 0)
	assert.Equal(t, start, l.Slots())
}

func TestLayoutInsert(t *testing.T) {
	tests := []struct {
		name     string
		start    [][]int
		src, dst int
		want     [][]int
	}{
		{
			name:  "forward shifts toward source",
			start: [][]int{{1}, {2}, {3}, {4}},
			src:   0, dst: 2,
			want: [][]int{{2}, {3}, {1}, {4}},
		},
		{
			name:  "forward stops at first gap",
			start: [][]int{{1}, {2}, nil, {3}, {4}},
			src:   0, dst: 4,
			want: [][]int{nil, {2}, {3}, {4}, {1}},
		},
		{
			name:  "backward shifts toward source",
			start: [][]int{{1}, {2}, {3}, {4}},
			src:   3, dst: 1,
			want: [][]int{{1}, {4}, {2}, {3}},
		},
		{
			name:  "backward stops at first gap",
			start: [][]int{{1}, {2}, nil, {3}, {4}},
			src:   4, dst: 0,
			want: [][]int{{4}, {1}, {2}, {3}, nil},
		},
		{
			name:  "same position is a no-op",
			start: [][]int{{1}, {2}},
			src:   1, dst: 1,
			want: [][]int{{1}, {2}},
		},
		{
			name:  "out of range is a no-op",
			start: [][]int{{1}, {2}},
			src:   0, dst: 5,
			want: [][]int{{1}, {2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayoutFromSlots("t", tt.start)
			l.Insert(tt.src, tt.dst)
			assert.Equal(t, tt.want, l.Slots())
			assert.Equal(t, candidateMultiset(tt.start), candidateMultiset(l.Slots()),
				"insert must neither lose nor duplicate a candidate list")
		})
	}
}

func TestLayoutCountSizeResize(t *testing.T) {
	l := NewLayoutFromSlots("t", [][]int{{1}, {2, 1}, nil})
	assert.Equal(t, 2, l.Count(1))
	assert.Equal(t, 1, l.Count(2))
	assert.Equal(t, 0, l.Count(9))
	assert.Equal(t, 3, l.Size())

	l.Resize(5)
	assert.Equal(t, 5, l.Size())
	assert.Nil(t, l.Candidates(4))

	l.Resize(1)
	assert.Equal(t, [][]int{{1}}, l.Slots())

	l.Resize(-1)
	assert.Equal(t, 1, l.Size())
}

func TestLayoutIgnoresPositionsBeyondMaxSlots(t *testing.T) {
	l := NewLayoutFromSlots("t", [][]int{{1}})

	l.SetPrimary(2, MaxSlots)
	l.SetPrimary(2, 1<<62)
	l.SetCandidates([]int{2, 3}, MaxSlots)
	l.InsertBeforeIndexAtPos(2, MaxSlots, 0)
	l.AddToFrontAtPos(2, 1<<62)
	l.AddAfter(2, MaxSlots)
	l.Resize(MaxSlots + 1)
	l.Resize(1 << 62)
	assert.Equal(t, [][]int{{1}}, l.Slots())

	l.SetPrimary(2, MaxSlots-1)
	assert.Equal(t, MaxSlots, l.Size())
	assert.Equal(t, 2, l.Primary(MaxSlots-1))

	// Every slot from pos onward is filled and the layout cannot grow.
	l.AddAfter(3, MaxSlots-1)
	assert.Equal(t, MaxSlots, l.Size())
	assert.Equal(t, 0, l.Count(3))
}

func TestLayoutCloneIsIndependent(t *testing.T) {
	l := NewLayoutFromSlots("Gear", [][]int{{1, 2}})
	c := l.Clone()
	c.AddToFrontAtPos(9, 0)

	assert.Equal(t, []int{1, 2}, l.Candidates(0))
	assert.Equal(t, "Gear", c.Tag())
}

func TestStandardizeTag(t *testing.T) {
	assert.Equal(t, "barrows gear", StandardizeTag("  Barrows Gear "))
	require.Empty(t, StandardizeTag("   "))
}

// candidateMultiset flattens slots into sorted encoded candidate lists.
func candidateMultiset(slots [][]int) []string {
	var out []string
	for _, v := range slots {
		if v == nil {
			continue
		}
		out = append(out, EncodeLayout(NewLayoutFromSlots("", [][]int{slices.Clone(v)})))
	}
	sort.Strings(out)
	return out
}
