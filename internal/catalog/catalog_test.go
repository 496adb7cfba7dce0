package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

const testCatalog = `
items:
  - id: 995
    name: Coins
    stackable: true
  - id: 4151
    name: Abyssal whip
    placeholder: 14000
  - id: 4152
    name: Abyssal whip
    noted_of: 4151
  - id: 12006
    name: Abyssal tentacle
    placeholder: 14001
    variant_of: 12000
    autocharge: true
  - id: 12000
    name: Tentacle base
  - id: 12007
    name: Abyssal tentacle (or)
    variant_of: 12000
  - id: 20594
    name: Bank filler
    filler: true
`

func TestParseCatalog(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	whip := c.Item(4151)
	assert.Equal(t, "Abyssal whip", whip.Name)
	assert.Equal(t, 14000, whip.PlaceholderID)
	assert.False(t, whip.IsPlaceholder())

	ph := c.Item(14000)
	assert.True(t, ph.IsPlaceholder(), "placeholder record is generated")
	assert.Equal(t, 4151, ph.PlaceholderID)

	assert.True(t, c.Item(995).Stackable)
	assert.True(t, c.Item(20594).Filler)
	assert.True(t, c.Item(12006).Autocharge)

	unknown := c.Item(1)
	assert.Equal(t, types.NoItem, unknown.PlaceholderID)
	assert.False(t, unknown.IsPlaceholder())
}

func TestCanonicalize(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	tests := []struct {
		name string
		id   int
		want int
	}{
		{name: "real item", id: 4151, want: 4151},
		{name: "noted item", id: 4152, want: 4151},
		{name: "placeholder", id: 14000, want: 4151},
		{name: "unknown item", id: 777, want: 777},
		{name: "negative", id: -1, want: types.NoItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Canonicalize(tt.id))
		})
	}
}

func TestVariants(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	require.NoError(t, err)

	assert.Equal(t, 12000, c.VariantBase(12006))
	assert.Equal(t, 12000, c.VariantBase(12007))
	assert.Equal(t, 12000, c.VariantBase(12000), "a base is its own base")
	assert.Equal(t, 4151, c.VariantBase(4151))

	assert.Equal(t, []int{12000, 12006, 12007}, c.Variants(12000))
	assert.Equal(t, []int{4151}, c.Variants(4151))

	v := c.Variants(12000)
	v[0] = 0
	assert.Equal(t, 12000, c.Variants(12000)[0], "Variants must return a copy")
}

func TestNewCatalogErrors(t *testing.T) {
	_, err := New([]ItemRecord{{ID: 1}, {ID: 1}})
	assert.ErrorIs(t, err, ErrDuplicateItem)

	_, err = New([]ItemRecord{{ID: -3}})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = Parse([]byte("items: [oops"))
	assert.Error(t, err)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Coins", c.Item(995).Name)

	empty, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, empty.Canonicalize(5))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
