package openft

// Handle refers to an entity in an EntityPool. Grid cells store handles
// directly; NoEntity (0) is never handed out.
type Handle int

// NoEntity is the handle of an empty cell
const NoEntity Handle = 0

// Entity is an object placed on the map.
type Entity struct {
	// anchor tile: the minimum x, maximum y corner of the footprint
	X0 int
	Y0 int

	// index into the map's entity types
	Type int

	Info *EntityInfo
}

// EntityInfo is optional per instance data
type EntityInfo struct {
	// number of storeys for multistorey drawables
	Height int
}

type slot struct {
	entity Entity
	used   bool
}

// EntityPool stores entities behind stable handles. Freed handles are
// reused but removing one entity never changes the handle of another.
type EntityPool struct {
	slots []slot
	free  []Handle
	live  int
}

// NewEntityPool returns an empty pool
func NewEntityPool() *EntityPool {
	// slot 0 is reserved for NoEntity
	return &EntityPool{slots: make([]slot, 1)}
}

// Insert adds an entity, returning its handle (always >= 1)
func (p *EntityPool) Insert(e Entity) Handle {
	p.live++
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[h] = slot{entity: e, used: true}
		return h
	}
	p.slots = append(p.slots, slot{entity: e, used: true})
	return Handle(len(p.slots) - 1)
}

// Get returns the entity for a handle, if it is live
func (p *EntityPool) Get(h Handle) (*Entity, bool) {
	if h <= NoEntity || int(h) >= len(p.slots) || !p.slots[h].used {
		return nil, false
	}
	return &p.slots[h].entity, true
}

// Remove frees a handle, returning the entity it held
func (p *EntityPool) Remove(h Handle) (Entity, bool) {
	e, ok := p.Get(h)
	if !ok {
		return Entity{}, false
	}
	removed := *e
	p.slots[h] = slot{}
	p.free = append(p.free, h)
	p.live--
	return removed, true
}

// Len is the number of live entities
func (p *EntityPool) Len() int {
	return p.live
}
