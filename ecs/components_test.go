package ecs_test

import "github.com/plus3/pong/ecs"

// Common test component types
type Box struct {
	X, Y, W, H float64
}

type Heading struct {
	DX, DY float64
}

type Pace float64

type Label string

type Striker struct {
	Side int
}

type Puck struct{}

type Match struct {
	Left, Right int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Box](registry)
	ecs.RegisterComponent[Heading](registry)
	ecs.RegisterComponent[Pace](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Striker](registry)
	ecs.RegisterComponent[Puck](registry)
	return registry
}
