package ecs

// Pool hands out generational handles and recycles the slots of destroyed ones.
type Pool struct {
	gen  []generation
	free []entityID
	live int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Create allocates a new handle.
func (p *Pool) Create() Entity {
	var id entityID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.gen = append(p.gen, 0)
		id = entityID(len(p.gen))
	}
	p.live++
	return makeEntity(id, p.gen[id-1])
}

// Destroy invalidates e. It returns false when e was already stale.
func (p *Pool) Destroy(e Entity) bool {
	if !p.IsAlive(e) {
		return false
	}
	id := e.id()
	p.gen[id-1]++
	p.free = append(p.free, id)
	p.live--
	return true
}

// IsAlive reports whether e still designates its slot.
func (p *Pool) IsAlive(e Entity) bool {
	if p == nil || !e.Valid() || int(e.id()) > len(p.gen) {
		return false
	}
	return p.gen[e.id()-1] == e.generation()
}

// Len returns the number of live handles.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return p.live
}
