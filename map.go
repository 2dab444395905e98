package openft

import (
	"github.com/pkg/errors"
)

// MapCell is the state of a single tile
type MapCell struct {
	// index into the map's ground types
	Ground int

	// NoEntity if the tile is empty
	Entity Handle
}

// TileMap is a fixed size grid of ground tiles & the entities placed on it.
// It is not safe for concurrent use.
type TileMap struct {
	Width  int
	Height int

	cells    []MapCell
	ground   []*DrawableRecord
	blank    bool
	entities []*DrawableRecord
	pool     *EntityPool
}

// New returns a new map sized from the config.
func New(cfg *Config) *TileMap {
	return NewTileMap(int(cfg.MapWidth), int(cfg.MapHeight))
}

// NewTileMap returns a w x h map with every tile set to ground type 0.
// Until a ground type is registered, type 0 is a blank (textureless) tile.
func NewTileMap(w, h int) *TileMap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &TileMap{
		Width:    w,
		Height:   h,
		cells:    make([]MapCell, w*h),
		ground:   []*DrawableRecord{blankGround()},
		blank:    true,
		entities: []*DrawableRecord{},
		pool:     NewEntityPool(),
	}
}

// inBounds is true if (x, y) is on the map
func (m *TileMap) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// cell returns the cell at (x, y) which must be in bounds
func (m *TileMap) cell(x, y int) *MapCell {
	return &m.cells[y*m.Width+x]
}

// Cell returns the state of a tile
func (m *TileMap) Cell(x, y int) (MapCell, error) {
	if !m.inBounds(x, y) {
		return MapCell{}, errors.Wrapf(ErrOutOfBounds, "(%d,%d)", x, y)
	}
	return *m.cell(x, y), nil
}

// blankGround stands in for ground type 0 on a new map
func blankGround() *DrawableRecord {
	return &DrawableRecord{
		Width:  TileWidth,
		Height: TileHeight,
		Size:   Tile{X: 1, Y: 1},
	}
}

// RegisterGroundType adds a ground drawable, returning its id. The first
// one registered replaces the blank ground as type 0.
func (m *TileMap) RegisterGroundType(d *DrawableRecord) int {
	if m.blank {
		m.ground = m.ground[:0]
		m.blank = false
	}
	m.ground = append(m.ground, d)
	return len(m.ground) - 1
}

// RegisterEntityTypes adds entity drawables, returning the id of the first
func (m *TileMap) RegisterEntityTypes(ds ...*DrawableRecord) int {
	first := len(m.entities)
	m.entities = append(m.entities, ds...)
	return first
}

// GroundTypeCount is the number of ground types registered
func (m *TileMap) GroundTypeCount() int {
	return len(m.ground)
}

// EntityTypeCount is the number of entity types registered
func (m *TileMap) EntityTypeCount() int {
	return len(m.entities)
}

// EntityType returns the drawable of an entity type
func (m *TileMap) EntityType(id int) (*DrawableRecord, error) {
	if id < 0 || id >= len(m.entities) {
		return nil, errors.Wrapf(ErrUnknownEntityType, "%d", id)
	}
	return m.entities[id], nil
}

// SetGround sets the ground type of a tile
func (m *TileMap) SetGround(x, y, id int) error {
	if id < 0 || id >= len(m.ground) {
		return errors.Wrapf(ErrUnknownGroundType, "%d", id)
	}
	if !m.inBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "(%d,%d)", x, y)
	}
	m.cell(x, y).Ground = id
	return nil
}

// GroundAt returns the ground drawable of a tile
func (m *TileMap) GroundAt(x, y int) (*DrawableRecord, error) {
	if !m.inBounds(x, y) {
		return nil, errors.Wrapf(ErrOutOfBounds, "(%d,%d)", x, y)
	}
	id := m.cell(x, y).Ground
	if id >= len(m.ground) {
		return nil, errors.Wrapf(ErrUnknownGroundType, "%d", id)
	}
	return m.ground[id], nil
}

// EntityAt returns the entity covering a tile (if any), its drawable &
// where the tile is within the entity's footprint.
func (m *TileMap) EntityAt(x, y int) (*Entity, *DrawableRecord, Tile, bool) {
	if !m.inBounds(x, y) {
		return nil, nil, Tile{}, false
	}

	h := m.cell(x, y).Entity
	if h == NoEntity {
		return nil, nil, Tile{}, false
	}

	e, ok := m.pool.Get(h)
	if !ok {
		return nil, nil, Tile{}, false
	}

	offset := Tile{X: x - e.X0, Y: e.Y0 - y}
	return e, m.entities[e.Type], offset, true
}

// Entity returns the entity for a handle
func (m *TileMap) Entity(h Handle) (*Entity, bool) {
	return m.pool.Get(h)
}

// EntityCount is the number of entities placed
func (m *TileMap) EntityCount() int {
	return m.pool.Len()
}

// footprint returns the rectangle an entity of type `id` covers when
// anchored at (x0, y0). The footprint grows towards +x & -y.
func (m *TileMap) footprint(x0, y0, id int) (x1, y1 int, err error) {
	d, err := m.EntityType(id)
	if err != nil {
		return 0, 0, err
	}

	w, h := d.Size.X, d.Size.Y
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// compare against the distance left rather than computing the far
	// corner first, so huge sizes can't wrap
	if !m.inBounds(x0, y0) || w-1 > m.Width-1-x0 || h-1 > y0 {
		return 0, 0, errors.Wrapf(ErrOutOfBounds, "%dx%d at (%d,%d)", w, h, x0, y0)
	}
	return x0 + w - 1, y0 - (h - 1), nil
}

// Fits returns nil if an entity of type `id` could be placed at (x0, y0).
func (m *TileMap) Fits(x0, y0, id int) error {
	x1, y1, err := m.footprint(x0, y0, id)
	if err != nil {
		return err
	}

	for x := x0; x <= x1; x++ {
		for y := y1; y <= y0; y++ {
			if h := m.cell(x, y).Entity; h != NoEntity {
				return errors.Wrapf(ErrCollision, "(%d,%d) holds entity %d", x, y, h)
			}
		}
	}
	return nil
}

// Place an entity of type `id` anchored at (x0, y0). Either every tile the
// entity covers is set or (on error) nothing changes.
func (m *TileMap) Place(x0, y0, id int, info *EntityInfo) (Handle, error) {
	err := m.Fits(x0, y0, id)
	if err != nil {
		return NoEntity, err
	}

	// Fits has already checked the bounds
	x1, y1, _ := m.footprint(x0, y0, id)

	h := m.pool.Insert(Entity{X0: x0, Y0: y0, Type: id, Info: info})
	for x := x0; x <= x1; x++ {
		for y := y1; y <= y0; y++ {
			m.cell(x, y).Entity = h
		}
	}
	return h, nil
}

// Remove an entity, clearing every tile it covers.
func (m *TileMap) Remove(h Handle) error {
	e, ok := m.pool.Get(h)
	if !ok {
		return errors.Wrapf(ErrNoEntity, "%d", h)
	}

	x1, y1, err := m.footprint(e.X0, e.Y0, e.Type)
	if err != nil {
		return err
	}
	for x := e.X0; x <= x1; x++ {
		for y := y1; y <= e.Y0; y++ {
			if c := m.cell(x, y); c.Entity == h {
				c.Entity = NoEntity
			}
		}
	}

	m.pool.Remove(h)
	return nil
}
