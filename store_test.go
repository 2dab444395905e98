package openft

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(t *testing.T) *CatalogIndex {
	idx, err := OpenCatalogIndex(filepath.Join(t.TempDir(), "catalog.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestCatalogIndexPut(t *testing.T) {
	idx := testIndex(t)
	doc := testCatalog(t).Document(1)

	require.NoError(t, idx.Put(doc))

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	towers, err := idx.ByPackage("Towers")
	require.NoError(t, err)
	assert.Equal(t, doc.Entries[:3], towers)

	farm, err := idx.ByTexture("Farms-farm.bmp-0")
	require.NoError(t, err)
	assert.Equal(t, doc.Entries[4:], farm)

	none, err := idx.ByPackage("nope")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogIndexReplacesByID(t *testing.T) {
	idx := testIndex(t)
	doc := testCatalog(t).Document(1)
	require.NoError(t, idx.Put(doc))

	doc.Entries[4].Name = "Big farm"
	require.NoError(t, idx.Put(doc))

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	farms, err := idx.ByPackage("Farms")
	require.NoError(t, err)
	require.Len(t, farms, 1)
	assert.Equal(t, "Big farm", farms[0].Name)
}

func TestCatalogIndexBatches(t *testing.T) {
	idx := testIndex(t)

	doc := &CatalogDocument{}
	for i := 0; i < storeBatchSize*2+50; i++ {
		doc.Entries = append(doc.Entries, EntryDocument{
			ID:         i,
			Package:    "bulk",
			Kind:       KindGenericStructure.String(),
			TextureKey: fmt.Sprintf("bulk-%d.png-0", i),
			Size:       Tile{X: 1, Y: 1},
		})
	}

	require.NoError(t, idx.Put(doc))

	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, len(doc.Entries), n)

	got, err := idx.ByPackage("bulk")
	require.NoError(t, err)
	assert.Equal(t, doc.Entries, got)
}

func TestCatalogIndexReopen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "catalog.sqlite")

	idx, err := OpenCatalogIndex(fname)
	require.NoError(t, err)
	require.NoError(t, idx.Put(testCatalog(t).Document(0)))
	require.NoError(t, idx.Close())

	idx, err = OpenCatalogIndex(fname)
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, fname, idx.Filename())
	n, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
