package ecs

import (
	"iter"
	"reflect"
	"slices"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the entity store: archetype tables plus an entity index and
// singleton components. Entities live for the lifetime of the Storage.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	// order keeps archetypes in creation order so iteration is deterministic.
	order      []*Archetype
	locations  *intmap.Map[EntityId, location]
	nextId     EntityId
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	typ reflect.Type
	ptr any
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		locations:  intmap.New[EntityId, location](64),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity with the provided components and returns its id.
// Components may be passed by value or by pointer; the storage keeps a copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	ordered := make([]any, len(types))
	for _, comp := range components {
		ordered[archetype.columnIndex(componentType(comp))] = comp
	}

	s.nextId++
	id := s.nextId
	row := archetype.append(id, ordered)
	s.locations.Put(id, location{archetype: archetype, row: row})
	return id
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.order = append(s.order, archetype)
	}
	return archetype
}

// Contains reports whether id names a live entity.
func (s *Storage) Contains(id EntityId) bool {
	return s.locations.Has(id)
}

// Len returns the number of entities in the storage.
func (s *Storage) Len() int {
	return s.locations.Len()
}

// Entities iterates over every entity, archetype by archetype.
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, archetype := range s.order {
			for id := range archetype.Entities() {
				if !yield(id) {
					return
				}
			}
		}
	}
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return slices.Clone(s.order)
}

// GetArchetypeById returns the archetype with the given hash, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// ArchetypeOf returns the archetype an entity belongs to, or nil for unknown ids.
func (s *Storage) ArchetypeOf(id EntityId) *Archetype {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype
}

// GetComponent returns a pointer to the entity's component of type compType,
// or nil if the entity doesn't exist or lacks the component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	loc, ok := s.locations.Get(id)
	if !ok {
		return nil
	}
	return loc.archetype.component(loc.row, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	loc, ok := s.locations.Get(id)
	if !ok {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
// Singleton types don't need to be registered.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	if entry, ok := s.singletons[t]; ok {
		reflect.ValueOf(entry.ptr).Elem().Set(v)
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{typ: t, ptr: ptr.Interface()}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// Singletons yields every singleton type with a pointer to its value,
// ordered by type name.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	entries := make([]*singletonEntry, 0, len(s.singletons))
	for _, entry := range s.singletons {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].typ.String() < entries[j].typ.String()
	})

	return func(yield func(reflect.Type, any) bool) {
		for _, entry := range entries {
			if !yield(entry.typ, entry.ptr) {
				return
			}
		}
	}
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		// Components are value types: structs or named primitives.
		switch compType.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, compType) {
			panic("duplicate component type " + compType.String())
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// iface is the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// hashTypesToUint32 generates a uint32 FNV-1a hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		// The runtime type descriptor pointer is unique per type.
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

// ComponentReader is implemented by anything that can look up an entity's components.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
