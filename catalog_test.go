package openft

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const autotileManifest = `<plug-in><title>Water</title><author>a</author>
	<contribution type="GenericStructure"><size>1,1</size>
		<autotile><picture src="water.png"/></autotile></contribution>
	<contribution type="GenericStructure"><size>1,1</size>
		<sprite origin="0,0" offset="0"><picture src="pier.png"/></sprite></contribution>
</plug-in>`

func testCatalog(t *testing.T) *Catalog {
	pkgs := []*Package{
		mustParse(t, towersManifest),
		mustParse(t, autotileManifest),
		mustParse(t, farmsManifest),
	}
	return BuildCatalog(pkgs, NewVariantCache(newFakeDecoder()))
}

func TestBuildCatalog(t *testing.T) {
	cat := testCatalog(t)

	assert.Equal(t, 1, cat.Skipped)
	require.Len(t, cat.Entries, 5)

	type row struct {
		pkg                            string
		contribution, variant, mapping int
		kind                           Kind
	}
	rows := []row{}
	for _, e := range cat.Entries {
		rows = append(rows, row{e.Package, e.Contribution, e.Variant, e.Mapping, e.Kind})
	}

	assert.Equal(t, []row{
		{"Towers", 0, 0, 0, KindGenericStructure},
		{"Towers", 0, 0, 1, KindGenericStructure},
		{"Towers", 1, 0, 0, KindRoad},
		{"Water", 1, 0, 0, KindGenericStructure},
		{"Farms", 0, 0, 0, KindGenericStructure},
	}, rows)
}

func TestCatalogRegisterAndDocument(t *testing.T) {
	cat := testCatalog(t)
	m := testMap(10, 10, Tile{X: 1, Y: 1})

	first := cat.Register(m)
	assert.Equal(t, 1, first)
	assert.Equal(t, 6, m.EntityTypeCount())

	// the farm is 3x2
	_, err := m.Place(0, 5, first+4, nil)
	require.NoError(t, err)
	_, d, _, ok := m.EntityAt(2, 4)
	require.True(t, ok)
	assert.Equal(t, "Small farm", d.Name)

	doc := cat.Document(first)
	require.Len(t, doc.Entries, 5)

	farm := doc.Entries[4]
	assert.Equal(t, 5, farm.ID)
	assert.Equal(t, "Farms", farm.Package)
	assert.Equal(t, "GenericStructure", farm.Kind)
	assert.Equal(t, "Farms-farm.bmp-0", farm.TextureKey)
	assert.Equal(t, Rect{X: 10, Y: 20, W: 80, H: 44}, farm.Source)
	assert.Equal(t, 4, farm.OffsetY)
	assert.False(t, farm.Multistorey)

	assert.True(t, doc.Entries[0].Multistorey)
	assert.Equal(t, "road", doc.Entries[2].Kind)

	buf := &bytes.Buffer{}
	require.NoError(t, doc.Encode(buf))

	decoded := &CatalogDocument{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), decoded))
	assert.Equal(t, doc, decoded)
}

func TestGroundDrawables(t *testing.T) {
	dec := newFakeDecoder()
	cache := NewVariantCache(dec)

	ds, err := GroundDrawables(cache, "res/GroundSeasonal.png", 4)
	require.NoError(t, err)

	require.Len(t, ds, 4)
	for i, d := range ds {
		assert.Equal(t, image.Rect(32*i, 0, 32*(i+1), 16), d.Source)
		assert.Equal(t, Tile{X: 1, Y: 1}, d.Size)
		assert.Equal(t, "ground-res/GroundSeasonal.png-0", d.TextureKey())
	}

	_, err = GroundDrawables(cache, "res/GroundSeasonal.png", 4)
	require.NoError(t, err)
	assert.Equal(t, 1, dec.total())
}

func TestLoadCatalog(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "farms/"+ManifestName, []byte(farmsManifest))
	writeFile(t, root, "water/"+ManifestName, []byte(autotileManifest))

	cfg := DefaultConfig()
	cfg.PluginRoot = root

	cat, err := LoadCatalog(context.Background(), cfg, NewVariantCache(newFakeDecoder()))
	require.NoError(t, err)

	assert.Equal(t, 1, cat.Skipped)
	require.Len(t, cat.Entries, 2)
	assert.Equal(t, "Farms", cat.Entries[0].Package)
	assert.Equal(t, "Water", cat.Entries[1].Package)

	cfg.PluginRoot = filepath.Join(root, "nope")
	_, err = LoadCatalog(context.Background(), cfg, NewVariantCache(newFakeDecoder()))
	assert.NotNil(t, err)
}
