package autolayout

import (
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taglayout/internal/catalog"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

const (
	helm      = 10828
	whip      = 4151
	notedWhip = 4152
	shark     = 385
	airRune   = 556
	fireRune  = 554
	coins     = 995
	bones     = 526
)

func ref(id int) *int { return &id }

func newDefault(t *testing.T, f catalog.PossessionsFile) *Default {
	t.Helper()
	c, err := catalog.New([]catalog.ItemRecord{
		{ID: helm, Name: "Helm of neitiznot"},
		{ID: whip, Name: "Abyssal whip"},
		{ID: notedWhip, Name: "Abyssal whip", NotedOf: ref(whip)},
		{ID: shark, Name: "Shark"},
	})
	require.NoError(t, err)
	p, err := catalog.NewPossessions(f)
	require.NoError(t, err)
	l, _ := logtest.NewNullLogger()
	return NewDefault(l, p, c)
}

func TestDefaultPlacesHeadItem(t *testing.T) {
	d := newDefault(t, catalog.PossessionsFile{Equipment: map[string]int{"head": helm}})

	l := d.Generate(types.NewLayout("gear"))
	assert.Equal(t, "gear", l.Tag())
	assert.Equal(t, helm, l.Primary(1))
	assert.Equal(t, 1, l.Count(helm), "no duplicate elsewhere")
	for pos, v := range l.Slots() {
		if pos != 1 {
			assert.Nil(t, v, "slot %d", pos)
		}
	}
}

func TestDefaultTemplatePositions(t *testing.T) {
	runes := []int{airRune, -1, fireRune}
	inventory := make([]int, catalog.InventorySize)
	inventory[0] = shark
	inventory[5] = notedWhip
	inventory[27] = shark
	d := newDefault(t, catalog.PossessionsFile{
		Equipment: map[string]int{
			"head": 1, "cape": 2, "amulet": 3, "ammo": 4,
			"weapon": 5, "body": 6, "shield": 7, "legs": 8,
			"gloves": 9, "boots": 10, "ring": 11,
		},
		Inventory: inventory,
		RunePouch: &runes,
	})

	l := d.Generate(types.NewLayout("t"))

	want := map[int]int{
		1: 1, 8: 2, 9: 3, 10: 4,
		16: 5, 17: 6, 18: 7,
		25: 8,
		32: 9, 33: 10, 34: 11,
		4: shark, 13: whip, 55: shark,
		40: airRune, 42: fireRune,
	}
	for pos, id := range want {
		assert.Equal(t, id, l.Primary(pos), "position %d", pos)
	}
	assert.Equal(t, types.NoItem, l.Primary(41), "empty pouch slot left alone")
	assert.Equal(t, 56, l.Size())
}

func TestDefaultMovesDisplacedItems(t *testing.T) {
	d := newDefault(t, catalog.PossessionsFile{Equipment: map[string]int{"head": helm, "weapon": whip}})

	// coins sits on a blank template cell, whip on the head cell and bones
	// in the middle column.
	previous := types.NewLayoutFromSlots("t", [][]int{{coins}, {whip}, nil, {bones}})
	previous.SetPrimary(shark, 60)

	l := d.Generate(previous)

	assert.Equal(t, helm, l.Primary(1))
	assert.Equal(t, whip, l.Primary(16))
	assert.Equal(t, 1, l.Count(whip), "displaced id already laid out is not re-added")
	assert.Equal(t, types.NoItem, l.Primary(0))
	assert.Equal(t, types.NoItem, l.Primary(3))
	assert.Equal(t, coins, l.Primary(56))
	assert.Equal(t, bones, l.Primary(57))
	assert.Equal(t, shark, l.Primary(60), "slots outside the managed region are kept")

	// previous is untouched.
	assert.Equal(t, coins, previous.Primary(0))
	assert.Equal(t, whip, previous.Primary(1))
	assert.Equal(t, bones, previous.Primary(3))
	assert.Equal(t, 61, previous.Size())
}

func TestDefaultReinsertSkipsOccupiedSlots(t *testing.T) {
	d := newDefault(t, catalog.PossessionsFile{})

	previous := types.NewLayout("t")
	previous.SetPrimary(coins, 0)
	previous.SetPrimary(bones, 11)
	previous.SetPrimary(shark, 56)

	l := d.Generate(previous)
	assert.Equal(t, shark, l.Primary(56))
	assert.Equal(t, coins, l.Primary(57))
	assert.Equal(t, bones, l.Primary(58))
}

func TestDefaultWithoutPossessions(t *testing.T) {
	c, err := catalog.New(nil)
	require.NoError(t, err)
	l, _ := logtest.NewNullLogger()
	d := NewDefault(l, nil, c)

	out := d.Generate(nil)
	require.NotNil(t, out)
	assert.Equal(t, 0, out.Size())

	previous := types.NewLayoutFromSlots("gear", [][]int{nil, {coins}, {bones}})
	out = d.Generate(previous)
	assert.Equal(t, [][]int{nil, {coins}, {bones}}, out.Slots())
}

// carried has an inventory but no worn items.
type carried struct {
	inventory types.Container
}

func (c carried) Equipment() types.Container { return nil }
func (c carried) Inventory() types.Container { return c.inventory }
func (c carried) RunePouch() (runes []int, ok bool) { return nil, false }

func TestDefaultWithoutEquipmentKeepsEquipmentArea(t *testing.T) {
	c, err := catalog.New([]catalog.ItemRecord{{ID: shark, Name: "Shark"}})
	require.NoError(t, err)
	l, _ := logtest.NewNullLogger()
	d := NewDefault(l, carried{inventory: catalog.NewSlots(catalog.InventorySize, []int{shark})}, c)

	previous := types.NewLayoutFromSlots("gear", [][]int{nil, {coins}, {bones}})
	out := d.Generate(previous)
	assert.Equal(t, coins, out.Primary(1))
	assert.Equal(t, bones, out.Primary(2))
	assert.Equal(t, shark, out.Primary(4))
	assert.Equal(t, 1, out.Count(coins), "not reinserted")
	assert.Equal(t, 56, out.Size())
}
