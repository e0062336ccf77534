package world

import "fmt"

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits. Generations start at 1, so the zero ID never
// refers to a live entity. Destroying an entity bumps its slot generation,
// which invalidates every copy of the old ID.
type EntityID uint64

// NilEntity is the zero value; no entity ever has this ID.
const NilEntity EntityID = 0

func newEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == NilEntity }

// String formats the ID as "index.generation".
func (id EntityID) String() string {
	return fmt.Sprintf("%d.%d", id.Index(), id.Generation())
}

type slot struct {
	generation uint32
	entity     *Entity
}

// pool hands out entity slots with generational IDs and a free list.
type pool struct {
	slots    []slot
	freeList []uint32
}

func (p *pool) create(e *Entity) EntityID {
	var idx uint32
	if n := len(p.freeList); n > 0 {
		idx = p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot{generation: 1})
	}
	p.slots[idx].entity = e
	return newEntityID(idx, p.slots[idx].generation)
}

func (p *pool) get(id EntityID) *Entity {
	idx := id.Index()
	if int(idx) >= len(p.slots) {
		return nil
	}
	s := p.slots[idx]
	if s.generation != id.Generation() {
		return nil
	}
	return s.entity
}

func (p *pool) release(id EntityID) {
	idx := id.Index()
	if int(idx) >= len(p.slots) || p.slots[idx].generation != id.Generation() {
		return // stale reference
	}
	p.slots[idx].generation++
	if p.slots[idx].generation == 0 {
		p.slots[idx].generation = 1
	}
	p.slots[idx].entity = nil
	p.freeList = append(p.freeList, idx)
}
