package openft

const (
	// Tile sizes in pixels. Iso tiles are twice as wide as they are high.
	TileWidth      = 32
	TileHeight     = 16
	TileWidthHalf  = TileWidth / 2
	TileHeightHalf = TileHeight / 2
)

// Tile is a location (or an extent) on the iso lattice, in tiles.
type Tile struct {
	X int
	Y int
	Z int
}

// Point is a location in world (pixel) or screen space.
type Point struct {
	X float64
	Y float64
}

// IsoToXY returns the world position of the top left corner of the bounding
// box drawn for `t`.
func IsoToXY(t Tile) Point {
	return Point{
		X: float64((t.X - t.Y - 1) * TileWidthHalf),
		Y: float64((t.X + t.Y) * TileHeightHalf),
	}
}

// XYToIso returns the base (z=0) tile under a world position.
func XYToIso(p Point) Tile {
	px := int(p.X)
	py := 2 * int(p.Y)

	return Tile{
		X: (px + py) / TileWidth,
		Y: -(px - py) / TileWidth,
	}
}

// XYToScreen maps a world position to the screen given a camera origin & zoom.
func XYToScreen(p, origin Point, scale float64) Point {
	return Point{
		X: (p.X - origin.X) * scale,
		Y: (p.Y - origin.Y) * scale,
	}
}

// ScreenToXY is the inverse of XYToScreen.
func ScreenToXY(p, origin Point, scale float64) Point {
	return Point{
		X: p.X/scale + origin.X,
		Y: p.Y/scale + origin.Y,
	}
}

// MinIsoBoundingBoxForXY returns the smallest diamond of iso tiles (as a
// lower, upper pair) that covers the rectangle between two world points.
// Used to work out which tiles are visible.
func MinIsoBoundingBoxForXY(a, b Point) (Tile, Tile) {
	ox, oy := int(minf(a.X, b.X)), int(minf(a.Y, b.Y))*2
	ex, ey := int(maxf(a.X, b.X)), int(maxf(a.Y, b.Y))*2

	// same formulas as XYToIso, padded by one tile on the far edges
	lower := Tile{
		X: (ox + oy) / TileWidth,
		Y: -(ex - oy) / TileWidth,
	}
	upper := Tile{
		X: (ex+ey)/TileWidth + 1,
		Y: -(ox-ey)/TileWidth + 1,
	}
	return lower, upper
}

// MinXYBoundingBoxForIsoSize is the size in pixels of the box that covers
// an object w x h tiles big.
func MinXYBoundingBoxForIsoSize(w, h int) (int, int) {
	return (w + h) * TileWidthHalf, (w + h) * TileHeightHalf
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
