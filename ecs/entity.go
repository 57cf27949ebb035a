package ecs

import "strconv"

// EntityId is an opaque handle issued by Storage.Spawn.
// Ids are issued sequentially starting at 1; the zero value never names an entity.
type EntityId uint64

// Valid reports whether the id could have been issued by a Storage.
func (e EntityId) Valid() bool {
	return e != 0
}

func (e EntityId) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}

// location is where an entity's components live: an archetype and a row in its columns.
type location struct {
	archetype *Archetype
	row       int
}
