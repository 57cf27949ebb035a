package ecs

import (
	"iter"
	"reflect"
	"slices"
	"strings"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of component types.
// Components are stored column-wise; row i of every column belongs to entities[i].
type Archetype struct {
	id       uint32
	types    []reflect.Type
	columns  []componentColumn
	entities []EntityId
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentColumn, len(types)),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

// append stores one entity's components (in the archetype's type order) and returns its row.
func (a *Archetype) append(id EntityId, components []any) int {
	row := len(a.entities)
	for i, comp := range components {
		a.columns[i].Append(comp)
	}
	a.entities = append(a.entities, id)
	return row
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// component returns a pointer to the component of type t at row, or nil.
func (a *Archetype) component(row int, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(row)
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) >= 0
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of entities stored in the archetype.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities iterates over the archetype's entities in spawn order.
func (a *Archetype) Entities() iter.Seq[EntityId] {
	return slices.Values(a.entities)
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
