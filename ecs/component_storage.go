package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage has its own registry, so independent worlds can coexist.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentColumn
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentColumn),
	}
}

// RegisterComponent registers T as a component type.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentColumn {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) componentColumn {
	factory := r.factories[t]
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

// componentColumn is a type-erased column of one component type inside an archetype.
type componentColumn interface {
	Append(item any) int
	Get(row int) any
	Len() int
	Rows() iter.Seq[int]
}

const componentBlockSize = 64

// blockColumn stores components of type T in fixed-size blocks.
// Blocks are allocated individually so pointers handed out by Get stay
// valid while the column grows.
type blockColumn[T any] struct {
	blocks []*[componentBlockSize]T
	length int
}

// Append copies item (a T or *T) into the column and returns its row.
func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		panic("component " + reflect.TypeOf(item).String() + " appended to column of " + reflect.TypeFor[T]().String())
	}

	row := c.length
	block := row / componentBlockSize
	if block == len(c.blocks) {
		c.blocks = append(c.blocks, new([componentBlockSize]T))
	}
	c.blocks[block][row%componentBlockSize] = value
	c.length++
	return row
}

// Get returns a *T for the row, or nil when the row is out of range.
func (c *blockColumn[T]) Get(row int) any {
	if row < 0 || row >= c.length {
		return nil
	}
	return &c.blocks[row/componentBlockSize][row%componentBlockSize]
}

func (c *blockColumn[T]) Len() int {
	return c.length
}

func (c *blockColumn[T]) Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for row := 0; row < c.length; row++ {
			if !yield(row) {
				return
			}
		}
	}
}
