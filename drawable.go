package openft

import (
	"image"

	"github.com/pkg/errors"
)

// DrawableRecord is everything a renderer needs to draw one variant of a
// contribution: which texture, which part of it & where.
// Records are shared, never copied, once built.
type DrawableRecord struct {
	// Name of the contribution (may be empty)
	Name string

	Texture *Texture

	// Source is the region of the texture to draw
	Source image.Rectangle

	// Offset is subtracted from the destination when drawing
	Offset image.Point

	Width  int
	Height int

	// Size is the footprint in tiles (x & y swapped if the image is flipped)
	Size Tile

	// Tiers is set for multistorey drawables only
	Tiers *Tiers

	// Flip mirrors the image horizontally
	Flip bool
}

// Tiers are the three parts of a multistorey drawable
type Tiers struct {
	Top    Slice
	Middle Slice
	Bottom Slice
}

// Slice is one tier of a multistorey drawable
type Slice struct {
	Source image.Rectangle
	Offset image.Point
}

// TextureKey is the key of the texture backing this record
func (d *DrawableRecord) TextureKey() string {
	if d.Texture == nil {
		return ""
	}
	return d.Texture.Key
}

// newDrawable builds the record for one image variant of `c`
func newDrawable(c *Contribution, img ImageVariant, tex *Texture) (*DrawableRecord, error) {
	w, h := MinXYBoundingBoxForIsoSize(c.Size.X, c.Size.Y)

	size := c.Size
	flip := c.flipped()
	if flip {
		size.X, size.Y = size.Y, size.X
	}

	d := &DrawableRecord{
		Name:    c.Name,
		Texture: tex,
		Width:   w,
		Size:    size,
		Flip:    flip,
	}

	switch v := img.(type) {
	case *Sprite:
		d.Height = h + v.Offset
		d.Offset = image.Pt(0, v.Offset)
		d.Source = image.Rect(v.OriginX, v.OriginY, v.OriginX+w, v.OriginY+d.Height)
	case *Multistorey:
		d.Tiers = &Tiers{
			Top:    slice(v.Top, w, h),
			Middle: slice(v.Middle, w, h),
			Bottom: slice(v.Bottom, w, h),
		}
		// drawn as a whole the bottom tier stands in for the building
		d.Height = h + v.Bottom.Offset
		d.Offset = d.Tiers.Bottom.Offset
		d.Source = d.Tiers.Bottom.Source
	case *AutotileStub:
		return nil, errors.Wrap(ErrUnimplemented, "autotile image data")
	default:
		return nil, errors.Errorf("unknown image data %T", img)
	}

	return d, nil
}

func slice(s Sprite, w, h int) Slice {
	return Slice{
		Source: image.Rect(s.OriginX, s.OriginY, s.OriginX+w, s.OriginY+h+s.Offset),
		Offset: image.Pt(0, s.Offset),
	}
}
