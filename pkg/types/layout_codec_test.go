package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLayout(t *testing.T) {
	tests := []struct {
		name  string
		slots [][]int
		want  string
	}{
		{name: "no slots", slots: nil, want: ""},
		{name: "single empty slot", slots: [][]int{nil}, want: "-1"},
		{name: "singles and empties", slots: [][]int{{995}, nil, {1127}}, want: "995,-1,1127"},
		{name: "candidate group keeps priority order", slots: [][]int{{4151, 12006, 4178}, {385}}, want: "4151|12006|4178,385"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeLayout(NewLayoutFromSlots("t", tt.slots)))
		})
	}
}

func TestDecodeLayout(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		want    [][]int
	}{
		{name: "empty string has no slots", encoded: "", want: [][]int{}},
		{name: "lone -1 is empty", encoded: "-1", want: [][]int{nil}},
		{name: "mixed tokens", encoded: "995,-1,4151|12006", want: [][]int{{995}, nil, {4151, 12006}}},
		{name: "empty pipe group is empty", encoded: "1,|,2", want: [][]int{{1}, nil, {2}}},
		{name: "pipe group of -1 is empty", encoded: "-1|,3", want: [][]int{nil, {3}}},
		{name: "trailing empty tokens", encoded: "1,2,,", want: [][]int{{1}, {2}, nil, nil}},
		{name: "whitespace is trimmed", encoded: " 1 , 2 | 3 ", want: [][]int{{1}, {2, 3}}},
		{name: "negative ids dropped from groups", encoded: "5|-1|6", want: [][]int{{5, 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := DecodeLayout("Tag", tt.encoded)
			require.NoError(t, err)
			assert.Equal(t, "Tag", l.Tag())
			assert.Equal(t, tt.want, l.Slots())
		})
	}
}

func TestDecodeLayoutMalformedSlots(t *testing.T) {
	l, err := DecodeLayout("t", "1,abc,2|x,3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedSlot))
	assert.Contains(t, err.Error(), "1 (")
	assert.Contains(t, err.Error(), "2 (")

	// The rest of the layout survives.
	assert.Equal(t, [][]int{{1}, nil, nil, {3}}, l.Slots())
}

func TestLayoutCodecRoundTrip(t *testing.T) {
	layouts := [][][]int{
		{},
		{nil},
		{{0}},
		{{1}, nil, {2, 3, 4}, nil, nil, {5}},
		{nil, nil, {7, 7000, 70000}},
		{{4151}, {12006, 4151}, nil, {1}},
	}
	for _, slots := range layouts {
		l := NewLayoutFromSlots("rt", slots)
		encoded := EncodeLayout(l)
		got, err := DecodeLayout("rt", encoded)
		require.NoError(t, err, "decoding %q", encoded)
		assert.Equal(t, l.Size(), got.Size(), "slot count for %q", encoded)
		assert.Equal(t, l.Slots(), got.Slots(), "slots for %q", encoded)
	}
}
