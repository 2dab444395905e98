package openft

import (
	"fmt"
)

// Package is a single plugin package, as described by its plugin.xml.
// Nothing in a Package is modified once loading returns.
type Package struct {
	Root          string
	Title         string
	Author        string
	Metadata      map[string]string
	Contributions []*Contribution
}

// Kind is the type of a functional contribution
type Kind int

const (
	KindGenericStructure Kind = iota
	KindRoad
)

func (k Kind) String() string {
	switch k {
	case KindGenericStructure:
		return "GenericStructure"
	case KindRoad:
		return "road"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Contribution describes one placeable object or ground type.
type Contribution struct {
	Kind Kind
	Name string

	// footprint in tiles; Z is the height
	Size Tile

	// ImageRef is either a path relative to the package root or, until
	// resolved, a picture id.
	ImageRef string

	// refIsID is set when ImageRef came from a picture@ref and so must
	// be found in the picture table.
	refIsID bool

	Images        []ImageVariant
	ColorMappings []ColorMapping
}

// ImageVariant is one of *Sprite, *Multistorey or *AutotileStub
type ImageVariant interface {
	isImageVariant()
}

// Sprite is a single region of a texture atlas.
type Sprite struct {
	OriginX int
	OriginY int

	// Offset is the number of pixels the sprite extends above the tile
	Offset int

	// Flip mirrors the sprite; the footprint is drawn with x & y swapped
	Flip bool
}

// Multistorey is a sprite in three parts, the middle of which is repeated
// to draw structures of varying height.
type Multistorey struct {
	Top    Sprite
	Middle Sprite
	Bottom Sprite
}

// AutotileStub marks autotile image data. We read it but cannot draw it.
type AutotileStub struct {
	Variants int
}

func (*Sprite) isImageVariant()       {}
func (*Multistorey) isImageVariant()  {}
func (*AutotileStub) isImageVariant() {}

// flipped reports if any of the images are mirrored
func (c *Contribution) flipped() bool {
	for _, img := range c.Images {
		switch v := img.(type) {
		case *Sprite:
			if v.Flip {
				return true
			}
		case *Multistorey:
			if v.Top.Flip || v.Middle.Flip || v.Bottom.Flip {
				return true
			}
		}
	}
	return false
}

// Channel selects which colour channel of a source image is recoloured.
type Channel int

const (
	ChannelNone Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	}
	return "none"
}

// Color is an RGB colour with components in [0,1]
type Color struct {
	R float64
	G float64
	B float64
}

// ColorMapping recolours pixels that only have the selected channel set
// into shades of Target.
type ColorMapping struct {
	Target  Color
	Channel Channel
}
