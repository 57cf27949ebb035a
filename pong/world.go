package pong

import (
	"iter"
	"math/rand/v2"

	"github.com/plus3/pong/ecs"
)

// homeItem is everything a reset touches.
type homeItem struct {
	Home     *Home
	Bounds   *Bounds
	Velocity *Velocity
	Speed    *Speed
	Ball     *Bounceable `ecs:"optional"`
}

func paddleHome(arena Arena, player PlayerId) Rect {
	x := PaddleMargin
	if player == Player2 {
		x = arena.Width - PaddleWidth - PaddleMargin
	}
	return Rect{X: x, Y: arena.Height/2 - PaddleHeight/2, W: PaddleWidth, H: PaddleHeight}
}

func ballHome(arena Arena) Rect {
	return Rect{X: arena.Width/2 - BallSize/2, Y: arena.Height/2 - BallSize/2, W: BallSize, H: BallSize}
}

// randomDirection picks a unit vector from a uniform point in [-1, 1]².
func randomDirection(rng *rand.Rand) Vec2 {
	for {
		v := Vec2{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1}
		if v.Len() > 1e-6 {
			return v.Normalize()
		}
	}
}

// spawnWorld creates both paddles and the ball.
func spawnWorld(storage *ecs.Storage, arena Arena, rng *rand.Rand) {
	spawnPaddle(storage, arena, Player1, KeyP1Up, KeyP1Down)
	spawnPaddle(storage, arena, Player2, KeyP2Up, KeyP2Down)
	spawnBall(storage, arena, rng)
}

func spawnPaddle(storage *ecs.Storage, arena Arena, player PlayerId, up, down Key) ecs.EntityId {
	home := paddleHome(arena, player)
	return storage.Spawn(
		Bounds{home},
		Velocity{},
		Speed(StartingSpeed),
		Tint{Color: White},
		Controllable{Player: player, Up: up, Down: down},
		Home{Rect: home, Speed: StartingSpeed},
	)
}

func spawnBall(storage *ecs.Storage, arena Arena, rng *rand.Rand) ecs.EntityId {
	home := ballHome(arena)
	return storage.Spawn(
		Bounds{home},
		Velocity{randomDirection(rng)},
		Speed(StartingSpeed),
		Tint{Color: White},
		Bounceable{},
		Home{Rect: home, Speed: StartingSpeed},
	)
}

// resetEntities moves every entity back home. Balls get a fresh random
// direction and paddles stop. Speeds are restored only when full is set.
func resetEntities(items iter.Seq[homeItem], rng *rand.Rand, full bool) {
	for item := range items {
		item.Bounds.Rect = item.Home.Rect
		if item.Ball != nil {
			item.Velocity.Vec2 = randomDirection(rng)
		} else {
			item.Velocity.Vec2 = Vec2{}
		}
		if full {
			*item.Speed = item.Home.Speed
		}
	}
}
