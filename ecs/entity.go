package ecs

import "strconv"

// Entity is a generational handle. The low 32 bits hold the slot id (starting
// at 1), the high 32 bits the slot generation. A handle whose generation no
// longer matches its slot is stale.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// ID returns the slot id of the handle.
func (e Entity) ID() int {
	return int(e.id())
}

func (e Entity) String() string {
	return strconv.Itoa(int(e.id())) + "v" + strconv.Itoa(int(e.generation()))
}

func (e Entity) Valid() bool {
	return e.id() > 0
}
