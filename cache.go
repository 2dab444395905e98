package openft

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"
)

// VariantKey identifies a single processed texture.
type VariantKey struct {
	Package  string
	ImageRef string
	Mapping  int
}

func (k VariantKey) String() string {
	return fmt.Sprintf("%s-%s-%d", k.Package, k.ImageRef, k.Mapping)
}

// VariantCache holds every processed texture so that each (package, image,
// colour mapping) is only decoded & recoloured once.
//
// Create one at startup & pass it to everything that builds drawables; it
// is safe for concurrent use.
type VariantCache struct {
	decoder ImageDecoder

	mu       sync.Mutex
	textures map[VariantKey]*Texture
	mappings map[VariantKey]ColorMapping
	loads    int
}

// NewVariantCache returns an empty cache reading images with `dec`
// (or from disk if nil).
func NewVariantCache(dec ImageDecoder) *VariantCache {
	if dec == nil {
		dec = FileDecoder{}
	}
	return &VariantCache{
		decoder:  dec,
		textures: map[VariantKey]*Texture{},
		mappings: map[VariantKey]ColorMapping{},
	}
}

// Texture returns the texture for mapping `i` of a contribution,
// loading it if needed.
func (v *VariantCache) Texture(pkg *Package, c *Contribution, i int) (*Texture, error) {
	key := VariantKey{Package: pkg.Title, ImageRef: c.ImageRef, Mapping: i}
	return v.load(key, filepath.Join(pkg.Root, c.ImageRef), c.ColorMappings[i])
}

// load returns a cached texture or decodes `path`. The lock is held for the
// whole load so a texture is never decoded twice.
func (v *VariantCache) load(key VariantKey, path string, mapping ColorMapping) (*Texture, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t, ok := v.textures[key]; ok {
		// the key has no room for the mapping itself, so contributions sharing
		// an image must declare the same hue transforms
		if prev := v.mappings[key]; prev != mapping {
			warnf("texture %s was built with mapping %v, reusing it for %v", key, prev, mapping)
		}
		return t, nil
	}

	t, err := loadTexture(v.decoder, key.String(), path, mapping)
	if err != nil {
		return nil, err
	}

	v.textures[key] = t
	v.mappings[key] = mapping
	v.loads++
	return t, nil
}

// Drawables returns one record per image variant & colour mapping of a
// (resolved) contribution.
func (v *VariantCache) Drawables(pkg *Package, c *Contribution) ([]*DrawableRecord, error) {
	out := []*DrawableRecord{}

	for _, img := range c.Images {
		for i := range c.ColorMappings {
			d, err := newDrawable(c, img, nil)
			if err != nil {
				return nil, err
			}

			d.Texture, err = v.Texture(pkg, c, i)
			if err != nil {
				return nil, err
			}

			out = append(out, d)
		}
	}

	return out, nil
}

// Len is the number of textures held
func (v *VariantCache) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.textures)
}

// Loads is the number of times an image was decoded
func (v *VariantCache) Loads() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loads
}

// Textures returns all textures ordered by key
func (v *VariantCache) Textures() []*Texture {
	v.mu.Lock()
	defer v.mu.Unlock()

	out := make([]*Texture, 0, len(v.textures))
	for _, t := range v.textures {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
