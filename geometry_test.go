package openft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsoToXY(t *testing.T) {
	assert.Equal(t, Point{X: -16, Y: 0}, IsoToXY(Tile{}))
	assert.Equal(t, Point{X: 0, Y: 40}, IsoToXY(Tile{X: 3, Y: 2}))
	assert.Equal(t, Point{X: -80, Y: 48}, IsoToXY(Tile{X: 1, Y: 5}))
}

func TestXYToIsoRoundTrip(t *testing.T) {
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			tile := Tile{X: x, Y: y}
			p := IsoToXY(tile)

			// the centre of the tile's bounding box
			centre := Point{X: p.X + TileWidthHalf, Y: p.Y + TileHeightHalf}

			assert.Equal(t, tile, XYToIso(centre), "%v", tile)
		}
	}
}

func TestScreenRoundTrip(t *testing.T) {
	origin := Point{X: 4, Y: 6}
	p := Point{X: 10, Y: 20}

	s := XYToScreen(p, origin, 2)

	assert.Equal(t, Point{X: 12, Y: 28}, s)
	assert.Equal(t, p, ScreenToXY(s, origin, 2))
}

func TestMinIsoBoundingBoxForXY(t *testing.T) {
	a, b := Point{X: 0, Y: 0}, Point{X: 320, Y: 240}

	lower, upper := MinIsoBoundingBoxForXY(a, b)
	l2, u2 := MinIsoBoundingBoxForXY(b, a)

	assert.Equal(t, lower, l2)
	assert.Equal(t, upper, u2)

	for x := 0.0; x <= b.X; x += 8 {
		for y := 0.0; y <= b.Y; y += 8 {
			tile := XYToIso(Point{X: x, Y: y})
			assert.True(t, tile.X >= lower.X && tile.X <= upper.X, "%v,%v -> %v", x, y, tile)
			assert.True(t, tile.Y >= lower.Y && tile.Y <= upper.Y, "%v,%v -> %v", x, y, tile)
		}
	}
}

func TestMinXYBoundingBoxForIsoSize(t *testing.T) {
	w, h := MinXYBoundingBoxForIsoSize(1, 1)
	assert.Equal(t, TileWidth, w)
	assert.Equal(t, TileHeight, h)

	w, h = MinXYBoundingBoxForIsoSize(3, 2)
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)
}
