package ecs_test

import (
	"testing"

	"github.com/plus3/pong/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moverView struct {
	ecs.EntityId
	*Box
	*Heading
}

type bodyView struct {
	*Box
	Puck    *Puck    `ecs:"optional"`
	Striker *Striker `ecs:"optional"`
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Box{X: 1, Y: 2}, Heading{DX: 1})
	still := storage.Spawn(Box{X: 5})

	view := ecs.NewView[moverView](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, 1.0, item.Box.X)
	assert.Equal(t, 1.0, item.Heading.DX)

	assert.Nil(t, view.Get(still), "entity without Heading must not match")
	assert.Nil(t, view.Get(ecs.EntityId(77)))
}

func TestViewMutationThroughPointers(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Box{}, Heading{DX: 2, DY: -1})

	view := ecs.NewView[moverView](storage)
	for item := range view.Values() {
		item.Box.X += item.Heading.DX
		item.Box.Y += item.Heading.DY
	}

	assert.Equal(t, Box{X: 2, Y: -1}, *ecs.ReadComponent[Box](storage, id))
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	left := storage.Spawn(Box{X: 20}, Striker{Side: 1})
	puck := storage.Spawn(Box{X: 235}, Puck{})
	wall := storage.Spawn(Box{X: 0})

	view := ecs.NewView[bodyView](storage)

	seen := map[ecs.EntityId]bodyView{}
	for id, item := range view.Iter() {
		seen[id] = item
	}
	require.Len(t, seen, 3)

	assert.NotNil(t, seen[left].Striker)
	assert.Nil(t, seen[left].Puck)
	assert.NotNil(t, seen[puck].Puck)
	assert.Nil(t, seen[puck].Striker)
	assert.Nil(t, seen[wall].Puck)
	assert.Nil(t, seen[wall].Striker)
	assert.Equal(t, 3, view.Count())
}

func TestViewFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Box{W: 30}, Heading{})
	lonely := storage.Spawn(Heading{})

	view := ecs.NewView[moverView](storage)

	var item moverView
	assert.True(t, view.Fill(id, &item))
	assert.Equal(t, 30.0, item.Box.W)
	assert.False(t, view.Fill(lonely, &item))
}

func TestViewIterStopsEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 5; i++ {
		storage.Spawn(Box{X: float64(i)}, Heading{})
	}

	view := ecs.NewView[moverView](storage)
	count := 0
	for range view.Iter() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestViewIterOrderIsDeterministic(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Box{X: 1}, Heading{})
	storage.Spawn(Box{X: 2}, Heading{}, Puck{})
	storage.Spawn(Box{X: 3}, Heading{})
	storage.Spawn(Box{X: 4}, Heading{}, Label("x"))

	view := ecs.NewView[moverView](storage)
	var xs []float64
	for item := range view.Values() {
		xs = append(xs, item.Box.X)
	}
	assert.Equal(t, []float64{1, 3, 2, 4}, xs)
}

func TestViewRejectsInvalidStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Box Box
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Box *Box `ecs:"required"`
		}](storage)
	})
}
