package ecs_test

import (
	"testing"

	"github.com/plus3/pong/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Box{X: 1}, Heading{DX: 0.5})
	storage.Spawn(Box{X: 3}, Heading{DX: 1})
	storage.Spawn(Box{X: 5}, Heading{DX: 1.5}, Puck{})
	storage.Spawn(Box{X: 7})

	query := ecs.NewQuery[moverView](storage)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()
		assert.Equal(t, 3, query.Len())
	})

	t.Run("panics without execute", func(t *testing.T) {
		fresh := ecs.NewQuery[moverView](storage)
		assert.Panics(t, func() {
			for range fresh.Iter() {
			}
		})
		assert.Panics(t, func() { fresh.Len() })
	})

	t.Run("multiple iterations use cache", func(t *testing.T) {
		query.Execute()

		first := map[ecs.EntityId]bool{}
		for id := range query.Iter() {
			first[id] = true
		}
		second := map[ecs.EntityId]bool{}
		for id := range query.Iter() {
			second[id] = true
		}
		assert.Equal(t, first, second)
	})

	t.Run("cache reflects new spawns after re-execute", func(t *testing.T) {
		query.Execute()
		before := query.Len()

		storage.Spawn(Box{X: 10}, Heading{DX: 2})
		assert.Equal(t, before, query.Len(), "cache must not change until Execute")

		query.Execute()
		assert.Equal(t, before+1, query.Len())
	})

	t.Run("new archetype is picked up", func(t *testing.T) {
		storage.Spawn(Box{}, Heading{}, Label("new"))
		query.Execute()
		assert.Equal(t, 5, query.Len())
	})

	t.Run("values", func(t *testing.T) {
		query.Execute()
		for item := range query.Values() {
			assert.NotNil(t, item.Box)
			assert.NotNil(t, item.Heading)
		}
	})
}
