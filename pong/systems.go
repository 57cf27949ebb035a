package pong

import (
	"math/rand/v2"

	"github.com/plus3/pong/ecs"
)

// Systems returns the per-frame pipeline in execution order.
func Systems(input Input, cues Cues, rng *rand.Rand) []ecs.System {
	return []ecs.System{
		&MotionSystem{},
		&PaddleInputSystem{Input: input},
		&ConfinementSystem{},
		&BounceSystem{Cues: cues},
		&CollisionSystem{Rand: rng, Cues: cues},
		&ScoringSystem{Rand: rng, Cues: cues},
	}
}

// MotionSystem integrates position from direction and speed.
type MotionSystem struct {
	Movers ecs.Query[struct {
		*Bounds
		*Velocity
		*Speed
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Movers.Values() {
		scale := float64(*item.Speed) * frame.DeltaTime
		item.Bounds.X += item.Velocity.X * scale
		item.Bounds.Y += item.Velocity.Y * scale
	}
}

// PaddleInputSystem maps held keys onto paddle direction. Holding both keys
// stops the paddle.
type PaddleInputSystem struct {
	Input   Input
	Paddles ecs.Query[struct {
		*Controllable
		*Velocity
	}]
}

func (s *PaddleInputSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Paddles.Values() {
		up := s.Input.IsKeyDown(item.Controllable.Up)
		down := s.Input.IsKeyDown(item.Controllable.Down)
		switch {
		case up && !down:
			item.Velocity.Y = -1
		case down && !up:
			item.Velocity.Y = 1
		default:
			item.Velocity.Y = 0
		}
	}
}

// ConfinementSystem keeps paddles inside the arena vertically.
type ConfinementSystem struct {
	Paddles ecs.Query[struct {
		*Controllable
		*Bounds
		*Velocity
	}]
	Arena ecs.Singleton[Arena]
}

func (s *ConfinementSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	for item := range s.Paddles.Values() {
		if item.Bounds.Y < 0 {
			item.Bounds.Y = 0
			item.Velocity.Y = 0
		} else if item.Bounds.Bottom() > arena.Height {
			item.Bounds.Y = arena.Height - item.Bounds.H
			item.Velocity.Y = 0
		}
	}
}

// BounceSystem reflects balls off the top and bottom edges.
// A ball is only turned around while it is still heading out, so a ball that
// overshoots the edge bounces exactly once.
type BounceSystem struct {
	Cues  Cues
	Balls ecs.Query[struct {
		*Bounceable
		*Bounds
		*Velocity
	}]
	Arena ecs.Singleton[Arena]
}

func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	for item := range s.Balls.Values() {
		bounced := false
		if item.Bounds.Y <= 0 && item.Velocity.Y < 0 {
			item.Velocity.Y = 1
			bounced = true
		} else if item.Bounds.Bottom() >= arena.Height && item.Velocity.Y > 0 {
			item.Velocity.Y = -1
			bounced = true
		}
		if bounced && s.Cues != nil {
			frame.Commands.Defer(s.Cues.WallBounce)
		}
	}
}

// CollisionSystem resolves paddle and ball overlaps.
// Every resolution restarts the match cooldown, which gates all later pairs.
type CollisionSystem struct {
	Rand    *rand.Rand
	Cues    Cues
	Paddles ecs.Query[struct {
		*Controllable
		*Bounds
		*Speed
	}]
	Balls ecs.Query[struct {
		*Bounceable
		*Bounds
		*Velocity
		*Speed
	}]
	Match ecs.Singleton[Match]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	match := s.Match.Get()

	for paddle := range s.Paddles.Values() {
		for ball := range s.Balls.Values() {
			if match.SinceCollision < CollisionCooldown {
				return
			}

			overlap, ok := paddle.Bounds.Intersect(ball.Bounds.Rect)
			if !ok {
				continue
			}

			away := 1.0
			if paddle.Bounds.X >= ball.Bounds.X {
				away = -1
			}
			if overlap.W < overlap.H {
				ball.Bounds.X += away * overlap.W
			} else if paddle.Bounds.Y < ball.Bounds.Y {
				ball.Bounds.Y += overlap.H
			} else {
				ball.Bounds.Y -= overlap.H
			}

			dir := Vec2{X: -ball.Velocity.X, Y: s.Rand.Float64()*2 - 1}.Normalize()
			if dir == (Vec2{}) {
				dir = Vec2{X: away}
			}
			ball.Velocity.Vec2 = dir

			*ball.Speed += SpeedIncrease
			*paddle.Speed += SpeedIncrease
			match.SinceCollision = 0

			if s.Cues != nil {
				frame.Commands.Defer(s.Cues.PaddleHit)
			}
		}
	}
}

// ScoringSystem awards a point when a ball leaves the arena sideways and
// sends every entity home. At most one point is scored per frame.
type ScoringSystem struct {
	Rand  *rand.Rand
	Cues  Cues
	Balls ecs.Query[struct {
		*Bounceable
		*Bounds
	}]
	Homes ecs.Query[homeItem]
	Arena ecs.Singleton[Arena]
	Match ecs.Singleton[Match]
}

func (s *ScoringSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	match := s.Match.Get()

	for ball := range s.Balls.Values() {
		if ball.Bounds.X >= 0 && ball.Bounds.Right() <= arena.Width {
			continue
		}

		scorer := Player2
		if ball.Bounds.X < 0 {
			scorer = Player1
		}
		match.Score[scorer-1]++
		match.Exit = scorer

		resetEntities(s.Homes.Values(), s.Rand, false)
		if s.Cues != nil {
			frame.Commands.Defer(func() { s.Cues.PointScored(scorer) })
		}
		return
	}
}
