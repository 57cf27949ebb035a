package pong

import (
	"fmt"
	"image/color"

	"github.com/plus3/pong/ecs"
)

type PlayerId int

const (
	NoPlayer PlayerId = iota
	Player1
	Player2
)

func (p PlayerId) Valid() bool {
	return p == Player1 || p == Player2
}

func (p PlayerId) String() string {
	return fmt.Sprintf("player %d", int(p))
}

type Bounds struct {
	Rect
}

// Velocity is a direction, scaled by Speed when integrated.
type Velocity struct {
	Vec2
}

// Speed is measured in arena units per second.
type Speed float64

type Tint struct {
	Color color.RGBA
}

// Controllable marks a paddle steered by a pair of keys.
type Controllable struct {
	Player PlayerId
	Up     Key
	Down   Key
}

// Bounceable marks a ball.
type Bounceable struct{}

// Home holds the values an entity returns to on reset.
type Home struct {
	Rect  Rect
	Speed Speed
}

// Arena is the size of the play area.
type Arena struct {
	Width, Height float64
}

// Match is the world-wide match state.
type Match struct {
	Score [2]int
	// SinceCollision is the time in seconds since the last paddle hit.
	SinceCollision float64
	// Exit is set by the scoring system to the player who scored this frame.
	Exit PlayerId
}

// NewRegistry registers every pong component.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Bounds](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Tint](registry)
	ecs.RegisterComponent[Controllable](registry)
	ecs.RegisterComponent[Bounceable](registry)
	ecs.RegisterComponent[Home](registry)
	return registry
}
