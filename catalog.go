package openft

import (
	"context"
	"image"

	"github.com/pkg/errors"
)

// groundPackage is the cache namespace of the built in ground atlas
const groundPackage = "ground"

// CatalogEntry is a drawable & where it came from
type CatalogEntry struct {
	Package      string
	Contribution int
	Kind         Kind
	Variant      int
	Mapping      int
	Drawable     *DrawableRecord
}

// Catalog is every drawable built from a set of packages, in package,
// contribution, image variant & colour mapping order.
type Catalog struct {
	Entries []*CatalogEntry

	// Skipped counts contributions that could not be turned into drawables
	Skipped int
}

// BuildCatalog turns loaded packages into drawables. Contributions that
// fail (unreadable image, autotiles) are logged & skipped.
func BuildCatalog(pkgs []*Package, cache *VariantCache) *Catalog {
	cat := &Catalog{Entries: []*CatalogEntry{}}

	for _, pkg := range pkgs {
		for ci, c := range pkg.Contributions {
			ds, err := cache.Drawables(pkg, c)
			if err != nil {
				errorf("package %s contribution %d (%s): %v", pkg.Title, ci, c.Name, err)
				cat.Skipped++
				continue
			}

			n := len(c.ColorMappings)
			for k, d := range ds {
				cat.Entries = append(cat.Entries, &CatalogEntry{
					Package:      pkg.Title,
					Contribution: ci,
					Kind:         c.Kind,
					Variant:      k / n,
					Mapping:      k % n,
					Drawable:     d,
				})
			}
		}
	}

	return cat
}

// LoadCatalog loads every package under the configured plugin root &
// builds their drawables.
func LoadCatalog(ctx context.Context, cfg *Config, cache *VariantCache) (*Catalog, error) {
	pkgs, err := LoadPluginRoot(ctx, cfg.PluginRoot, cfg.Workers)
	if err != nil {
		return nil, errors.Wrapf(err, "loading plugins from %s", cfg.PluginRoot)
	}
	infof("Loaded %d plugins from %s", len(pkgs), cfg.PluginRoot)
	return BuildCatalog(pkgs, cache), nil
}

// Drawables returns the drawable of every entry
func (c *Catalog) Drawables() []*DrawableRecord {
	out := make([]*DrawableRecord, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Drawable
	}
	return out
}

// Register adds every entry to the map as an entity type, returning the
// type id of the first entry. Entry i has type id first+i.
func (c *Catalog) Register(m *TileMap) int {
	return m.RegisterEntityTypes(c.Drawables()...)
}

// GroundDrawables cuts `n` ground tiles out of an atlas laid out left to
// right, each one tile wide.
func GroundDrawables(cache *VariantCache, path string, n int) ([]*DrawableRecord, error) {
	key := VariantKey{Package: groundPackage, ImageRef: path}
	tex, err := cache.load(key, path, ColorMapping{Channel: ChannelNone})
	if err != nil {
		return nil, err
	}

	out := make([]*DrawableRecord, n)
	for i := 0; i < n; i++ {
		out[i] = &DrawableRecord{
			Name:    groundPackage,
			Texture: tex,
			Source:  image.Rect(TileWidth*i, 0, TileWidth*(i+1), TileHeight),
			Width:   TileWidth,
			Height:  TileHeight,
			Size:    Tile{X: 1, Y: 1},
		}
	}
	return out, nil
}
