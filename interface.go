package openft

// View is what a renderer needs from a map. It draws ground first then,
// per tile, whichever part of an entity covers it.
type View interface {
	// GroundAt returns the ground drawable at x,y. Every tile on the map
	// has one.
	GroundAt(x, y int) (*DrawableRecord, error)

	// EntityAt returns the entity covering x,y (if any), its drawable & the
	// position of x,y within the entity's footprint (0,0 at the anchor)
	EntityAt(x, y int) (*Entity, *DrawableRecord, Tile, bool)
}

// Placer places entities, failing instead of overwriting.
type Placer interface {
	// Fits returns nil if an entity of the given type could go at x,y
	Fits(x, y, entityType int) error

	// Place an entity of the given type anchored at x,y
	Place(x, y, entityType int, info *EntityInfo) (Handle, error)

	// Remove a placed entity
	Remove(h Handle) error
}

var (
	_ View   = (*TileMap)(nil)
	_ Placer = (*TileMap)(nil)
)
