package ecs_test

import (
	"fmt"

	"github.com/plus3/pong/ecs"
)

type Spot struct {
	X, Y float64
}

type Drift struct {
	DX, DY float64
}

type Rally struct {
	Hits int
}

type StepSystem struct {
	Movers ecs.Query[struct {
		*Spot
		*Drift
	}]
	Rally ecs.Singleton[Rally]
}

func (s *StepSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		item.Spot.X += item.Drift.DX * frame.DeltaTime
		item.Spot.Y += item.Drift.DY * frame.DeltaTime
	}
	frame.Commands.Defer(func() { s.Rally.Get().Hits++ })
}

// ExampleView shows a one-off lookup without a Scheduler.
// Fields tagged optional are nil when the entity lacks the component.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Spot](registry)
	ecs.RegisterComponent[Drift](registry)
	storage := ecs.NewStorage(registry)

	ball := storage.Spawn(Spot{X: 235, Y: 235}, Drift{DX: 200})
	wall := storage.Spawn(Spot{X: 0, Y: 0})

	view := ecs.NewView[struct {
		*Spot
		Drift *Drift `ecs:"optional"`
	}](storage)

	for _, id := range []ecs.EntityId{ball, wall} {
		item := view.Get(id)
		fmt.Printf("%s at (%.0f, %.0f) moving=%v\n", id, item.Spot.X, item.Spot.Y, item.Drift != nil)
	}

	// Output:
	// entity#1 at (235, 235) moving=true
	// entity#2 at (0, 0) moving=false
}

// ExampleScheduler runs a single system for a few frames.
// Query fields are bound at registration and refreshed before every run,
// and deferred commands are flushed once all systems have executed.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Spot](registry)
	ecs.RegisterComponent[Drift](registry)
	storage := ecs.NewStorage(registry)
	rally := ecs.NewSingleton(storage, Rally{})

	storage.Spawn(Spot{}, Drift{DX: 10, DY: 5})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&StepSystem{})

	for range 3 {
		scheduler.Once(0.5)
	}

	view := ecs.NewView[struct{ *Spot }](storage)
	for item := range view.Values() {
		fmt.Printf("Spot: (%.0f, %.1f)\n", item.Spot.X, item.Spot.Y)
	}
	fmt.Println("Frames:", rally.Get().Hits)

	// Output:
	// Spot: (15, 7.5)
	// Frames: 3
}

// ExampleNewSingleton demonstrates world-wide state that isn't tied to an entity.
func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())

	rally := ecs.NewSingleton(storage, Rally{Hits: 2})
	rally.Get().Hits++

	// A second accessor sees the same value; the initializer is ignored.
	same := ecs.NewSingleton(storage, Rally{Hits: 100})
	fmt.Println("Hits:", same.Get().Hits)

	// Output:
	// Hits: 3
}
