package openft

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

var (
	// TransparentKey is drawn as fully transparent in every texture
	TransparentKey = color.NRGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}

	transparent = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x00}
)

// ImageDecoder reads an image from disk.
type ImageDecoder interface {
	Decode(path string) (image.Image, error)
}

// FileDecoder decodes BMP, PNG & JPEG files.
type FileDecoder struct{}

// Decode an image by its file extension
func (FileDecoder) Decode(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return bmp.Decode(f)
	}
	return gg.LoadImage(path)
}

// Texture is an image after recolouring & keying, ready to be uploaded.
type Texture struct {
	Key   string
	Image *image.NRGBA
}

// processTexture copies `src`, applies the colour mapping & the
// transparency key.
func processTexture(src image.Image, mapping ColorMapping) *image.NRGBA {
	b := src.Bounds()
	img := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), src, b.Min, draw.Src)

	MapColors(img, mapping)
	MakeTransparent(img)
	return img
}

// MapColors recolours pixels whose only non zero channel is the mapping's.
// The target colour is scaled by that channel's brightness.
func MapColors(img *image.NRGBA, mapping ColorMapping) {
	if mapping.Channel == ChannelNone {
		return
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := img.NRGBAAt(x, y)

			var brightness, other1, other2 uint8
			switch mapping.Channel {
			case ChannelRed:
				brightness, other1, other2 = p.R, p.G, p.B
			case ChannelGreen:
				brightness, other1, other2 = p.G, p.R, p.B
			case ChannelBlue:
				brightness, other1, other2 = p.B, p.R, p.G
			}
			if brightness == 0 || other1 != 0 || other2 != 0 {
				continue
			}

			scale := float64(brightness) / 255
			img.SetNRGBA(x, y, color.NRGBA{
				R: channel8(mapping.Target.R * scale),
				G: channel8(mapping.Target.G * scale),
				B: channel8(mapping.Target.B * scale),
				A: 0xFF,
			})
		}
	}
}

// MakeTransparent clears every pixel matching TransparentKey
func MakeTransparent(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y) == TransparentKey {
				img.SetNRGBA(x, y, transparent)
			}
		}
	}
}

// channel8 converts [0,1] to [0,255], rounding to nearest
func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}

// loadTexture decodes & processes a single texture
func loadTexture(dec ImageDecoder, key, path string, mapping ColorMapping) (*Texture, error) {
	src, err := dec.Decode(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading texture %s", path)
	}
	return &Texture{Key: key, Image: processTexture(src, mapping)}, nil
}
