package reconcile

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taglayout/internal/catalog"
)

// Item ids used across the reconcile tests.
const (
	itemA  = 1
	itemB  = 2
	itemC  = 3
	phA    = 101
	phB    = 102
	phC    = 103
	base   = 12000
	tentA  = 12006
	tentB  = 12007
	phTent = 14001
	potion = 2434
	dose3  = 139
	filler = 20594
)

func ref(id int) *int { return &id }

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.ItemRecord{
		{ID: itemA, Name: "A", Placeholder: ref(phA)},
		{ID: itemB, Name: "B", Placeholder: ref(phB)},
		{ID: itemC, Name: "C", Placeholder: ref(phC), Autocharge: true},
		{ID: base, Name: "Tentacle"},
		{ID: tentA, Name: "Tentacle A", VariantOf: ref(base), Placeholder: ref(phTent)},
		{ID: tentB, Name: "Tentacle B", VariantOf: ref(base)},
		{ID: potion, Name: "Potion(4)"},
		{ID: dose3, Name: "Potion(3)"},
		{ID: filler, Name: "Bank filler", Filler: true},
	})
	require.NoError(t, err)
	return c
}

func testLogger() (logrus.FieldLogger, *logtest.Hook) {
	l, hook := logtest.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	return l, hook
}

// newReconciler wires a reconciler over bank and storage with the default
// grid and options.
func newReconciler(t *testing.T, bank *catalog.Bank, storage *catalog.Storage, opts Options) *Reconciler {
	t.Helper()
	l, _ := testLogger()
	if storage == nil {
		storage = catalog.NewStorage()
	}
	return New(l, testCatalog(t), bank, storage, DefaultGrid(), opts)
}
