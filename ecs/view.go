package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View selects entities by component set.
//
// T must be a struct whose fields are pointers to component types. Embedded
// fields are always required; named fields can be marked optional with the
// `ecs:"optional"` tag and are nil for entities that lack the component.
// A field of type EntityId (embedded or named) receives the entity's id.
//
//	type paddle struct {
//		ecs.EntityId
//		*Bounds
//		*Velocity
//		Ball *Bounceable `ecs:"optional"`
//	}
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("View struct field " + field.Name + " must be a pointer to a component")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag \"" + tag + "\" on field " + field.Name + " (only named fields may be \"optional\")")
			}
			optional = true
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}

	return v
}

// matches checks if an archetype has every required component of the view.
func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columns maps each view field to the archetype column holding it, or -1.
func (v *View[T]) columns(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.columnIndex(f.typ)
	}
	return cols
}

// populate writes the component pointers of one row into the struct at dst.
func (v *View[T]) populate(dst unsafe.Pointer, archetype *Archetype, row int, cols []int) bool {
	if v.hasId {
		*(*EntityId)(unsafe.Add(dst, v.idOffset)) = archetype.entities[row]
	}

	for i, f := range v.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(dst, f.offset))

		var component any
		if cols[i] >= 0 {
			component = archetype.columns[cols[i]].Get(row)
		}
		if component == nil {
			if !f.optional {
				return false
			}
			*fieldPtr = nil
			continue
		}
		*fieldPtr = (*iface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Fill populates ptr with the entity's components.
// Returns false if the entity is unknown or missing a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	loc, ok := v.storage.locations.Get(id)
	if !ok || !v.matches(loc.archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), loc.archetype, loc.row, v.columns(loc.archetype))
}

// Get returns a populated view struct for the entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter yields every matching entity with its populated view struct.
// Archetypes are visited in creation order and entities in spawn order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if !v.matches(archetype) {
				continue
			}
			cols := v.columns(archetype)

			for row, id := range archetype.entities {
				var result T
				if !v.populate(unsafe.Pointer(&result), archetype, row, cols) {
					continue
				}
				if !yield(id, result) {
					return
				}
			}
		}
	}
}

// Values iterates over the view structs without their entity ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for _, archetype := range v.storage.order {
		if v.matches(archetype) {
			n += archetype.Len()
		}
	}
	return n
}
