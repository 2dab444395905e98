package main

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	"github.com/alecthomas/kong"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/oscarcs/openft"
)

const desc = `Renders a preview of every drawable the plugins provide.

Entity types are placed on a small map one after another (anything that doesn't fit is skipped),
then the map is drawn ground first, back to front, and written as a png.`

var cli struct {
	Config  string `short:"c" help:"yaml config file"`
	Plugins string `short:"p" help:"plugin root directory (overrides config)"`
	Output  string `short:"o" default:"preview.png" help:"where to write the preview"`

	// in tiles
	Width  int `default:"24" help:"width of the preview map in tiles"`
	Height int `default:"24" help:"height of the preview map in tiles"`

	// rows of entities are laid out this many tiles apart
	Band int `default:"4" help:"depth (tiles) of each row of previewed entities"`

	// space above the map for tall objects
	Headroom int `default:"128" help:"extra space (px) above the map"`

	// final image width, 0 to keep the native size
	Scale uint `default:"0" help:"resize the preview to this width (px)"`
}

func main() {
	kong.Parse(&cli, kong.Name("map-render"), kong.Description(desc))

	cfg := openft.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = openft.LoadConfig(cli.Config)
		if err != nil {
			panic(err)
		}
	}
	if cli.Plugins != "" {
		cfg.PluginRoot = cli.Plugins
	}
	cfg.MapWidth, cfg.MapHeight = uint(cli.Width), uint(cli.Height)

	cache := openft.NewVariantCache(nil)

	cat, err := openft.LoadCatalog(context.Background(), cfg, cache)
	if err != nil {
		panic(err)
	}

	m := openft.New(cfg)

	ground, err := openft.GroundDrawables(cache, cfg.GroundTexture, cfg.GroundVariants)
	if err != nil {
		fmt.Printf("no ground tiles: %v\n", err)
	}
	for _, d := range ground {
		m.RegisterGroundType(d)
	}
	if len(ground) > 0 {
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				m.SetGround(x, y, (x+y)%len(ground))
			}
		}
	}

	first := cat.Register(m)
	placed := layout(m, first, len(cat.Entries), cli.Band)
	fmt.Printf("placed %d of %d drawables\n", placed, len(cat.Entries))

	var out image.Image = render(m, m.Width, m.Height, cli.Headroom)
	if cli.Scale > 0 {
		out = resize.Resize(cli.Scale, 0, out, resize.Lanczos3)
	}

	err = gg.SavePNG(cli.Output, out)
	if err != nil {
		panic(err)
	}
	fmt.Println("wrote", cli.Output)
}

// layout places entity types first..first+n-1 left to right in bands
// `band` tiles deep. Types that can't be placed are skipped. Returns how
// many were placed.
func layout(m *openft.TileMap, first, n, band int) int {
	if band < 1 {
		band = 1
	}

	placed := 0
	x, y := 0, band-1

	for id := first; id < first+n && y < m.Height; id++ {
		// anchor is the max y corner
		_, err := m.Place(x, y, id, nil)
		if errors.Is(err, openft.ErrOutOfBounds) && x > 0 {
			x, y = 0, y+band+1
			_, err = m.Place(x, y, id, nil)
		}
		if err != nil {
			fmt.Printf("skipping entity type %d: %v\n", id, err)
			continue
		}

		d, _ := m.EntityType(id)
		x += max(d.Size.X, 1) + 1
		placed++
	}
	return placed
}

// render draws the map back to front: the ground of every tile, then each
// entity once, when its anchor tile is reached.
func render(v openft.View, w, h, headroom int) image.Image {
	// world x runs from the left corner of (0, h-1) to the right corner of (w-1, 0)
	left := openft.IsoToXY(openft.Tile{X: 0, Y: h - 1}).X
	right := openft.IsoToXY(openft.Tile{X: w - 1, Y: 0}).X + openft.TileWidth
	bottom := openft.IsoToXY(openft.Tile{X: w - 1, Y: h - 1}).Y + openft.TileHeight

	origin := openft.Point{X: left, Y: -float64(headroom)}
	dc := gg.NewContext(int(right-left), int(bottom)+headroom)

	for sum := 0; sum <= w+h-2; sum++ {
		for x := 0; x < w; x++ {
			y := sum - x
			if y < 0 || y >= h {
				continue
			}

			ground, err := v.GroundAt(x, y)
			if err == nil && ground.Texture != nil {
				p := openft.XYToScreen(openft.IsoToXY(openft.Tile{X: x, Y: y}), origin, 1)
				dc.DrawImage(crop(ground.Texture.Image, ground.Source), int(p.X), int(p.Y))
			}
		}
	}

	// entities are ordered by the front most tile they cover
	for sum := 0; sum <= w+h-2; sum++ {
		for x := 0; x < w; x++ {
			y := sum - x
			if y < 0 || y >= h {
				continue
			}

			e, d, offset, ok := v.EntityAt(x, y)
			if !ok || d.Texture == nil {
				continue
			}
			// the front tile of a footprint is its max x, max y corner
			if offset.Y != 0 || x != e.X0+max(d.Size.X, 1)-1 {
				continue
			}
			drawEntity(dc, e, d, origin)
		}
	}

	return dc.Image()
}

func drawEntity(dc *gg.Context, e *openft.Entity, d *openft.DrawableRecord, origin openft.Point) {
	depth := max(d.Size.Y, 1)

	// left corner of the footprint is the anchor, top is the far y edge
	l := openft.IsoToXY(openft.Tile{X: e.X0, Y: e.Y0})
	t := openft.IsoToXY(openft.Tile{X: e.X0, Y: e.Y0 - depth + 1})
	p := openft.XYToScreen(openft.Point{X: l.X, Y: t.Y - float64(d.Offset.Y)}, origin, 1)

	img := crop(d.Texture.Image, d.Source)
	if !d.Flip {
		dc.DrawImage(img, int(p.X), int(p.Y))
		return
	}

	dc.Push()
	dc.ScaleAbout(-1, 1, p.X+float64(img.Bounds().Dx())/2, 0)
	dc.DrawImage(img, int(p.X), int(p.Y))
	dc.Pop()
}

// crop copies `r` out of `src` into a new image at the origin
func crop(src *image.NRGBA, r image.Rectangle) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), src, r.Min, draw.Src)
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
