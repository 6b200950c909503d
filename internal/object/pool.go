package object

import "fmt"

// Pool is a fixed-capacity array of reusable entities of one pooled kind.
// Slots are recycled by TTL; no allocation happens after construction.
type Pool struct {
	kind  Kind
	items []Entity
	fire  fireFunc
}

// NewPool allocates capacity dead slots of kind and runs setup on each.
func NewPool(kind Kind, capacity int, setup func(e *Entity)) *Pool {
	if !kind.Pooled() {
		panic(fmt.Sprintf("object: %s is not a pooled kind", kind))
	}
	if capacity < 0 {
		panic(fmt.Sprintf("object: negative pool capacity %d", capacity))
	}
	p := &Pool{
		kind:  kind,
		items: make([]Entity, capacity),
		fire:  behaviors[kind].fire,
	}
	for i := range p.items {
		e := &p.items[i]
		e.Kind = kind
		e.Scale = 1
		e.Color = White
		e.Alive = true
		if setup != nil {
			setup(e)
		}
	}
	return p
}

// Kind returns the kind of entity this pool holds.
func (p *Pool) Kind() Kind {
	return p.kind
}

// Cap returns the number of slots.
func (p *Pool) Cap() int {
	return len(p.items)
}

// FireFrom reinitializes the first dead slot from source. It returns false
// and does nothing when every slot is alive.
func (p *Pool) FireFrom(ctx *Context, source *Entity) bool {
	for i := range p.items {
		e := &p.items[i]
		if e.IsDead() {
			p.fire(e, ctx, source)
			return true
		}
	}
	return false
}

// Burst fires up to n entities from source and returns how many launched.
func (p *Pool) Burst(ctx *Context, source *Entity, n int) int {
	fired := 0
	for i := range p.items {
		if fired >= n {
			break
		}
		e := &p.items[i]
		if e.IsDead() {
			p.fire(e, ctx, source)
			fired++
		}
	}
	return fired
}

// Update advances every live slot.
func (p *Pool) Update(ctx *Context, dt float64) {
	for i := range p.items {
		e := &p.items[i]
		if e.IsDead() {
			continue
		}
		e.Update(ctx, dt)
	}
}

// Live counts slots that are currently alive.
func (p *Pool) Live() int {
	n := 0
	for i := range p.items {
		if !p.items[i].IsDead() {
			n++
		}
	}
	return n
}

// Each calls fn for every live slot. Returning false stops the walk.
func (p *Pool) Each(fn func(e *Entity) bool) {
	for i := range p.items {
		e := &p.items[i]
		if e.IsDead() {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Reset kills every slot.
func (p *Pool) Reset() {
	for i := range p.items {
		p.items[i].TTL = 0
	}
}
