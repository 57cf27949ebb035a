package main

import (
	"fmt"
	"math"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/pong"
)

const unitTolerance = 1e-9

type ballItem struct {
	*pong.Bounds
	*pong.Velocity
	*pong.Bounceable
}

type paddleItem struct {
	ecs.EntityId
	*pong.Bounds
	*pong.Controllable
}

// snapshot is the state the invariants compare across a frame.
type snapshot struct {
	mode   pong.Mode
	score  [2]int
	hits   int
	points int
}

func takeSnapshot(game *pong.Game, cues *tally) snapshot {
	return snapshot{
		mode:   game.Mode(),
		score:  game.Score(),
		hits:   cues.paddleHits,
		points: cues.points[0] + cues.points[1],
	}
}

// checker verifies per-frame invariants and collects violations.
type checker struct {
	arena      pong.Arena
	balls      *ecs.View[ballItem]
	paddles    *ecs.View[paddleItem]
	Violations []string
	Total      int
}

const maxRecorded = 20

func newChecker(game *pong.Game) *checker {
	return &checker{
		arena:   game.Arena(),
		balls:   ecs.NewView[ballItem](game.Storage()),
		paddles: ecs.NewView[paddleItem](game.Storage()),
	}
}

func (c *checker) failf(frame int, format string, args ...any) {
	c.Total++
	if len(c.Violations) < maxRecorded {
		c.Violations = append(c.Violations, fmt.Sprintf("frame %d: ", frame)+fmt.Sprintf(format, args...))
	}
}

func (c *checker) check(frame int, before, after snapshot) {
	sum := func(s [2]int) int { return s[0] + s[1] }

	switch {
	case before.mode.Kind == pong.ModeScored && after.mode.Kind == pong.ModePaused:
		if after.score != [2]int{} {
			c.failf(frame, "score %v not cleared by reset", after.score)
		}
	case after.mode.Kind == pong.ModeScored && before.mode.Kind == pong.ModePlaying:
		if sum(after.score) != sum(before.score)+1 {
			c.failf(frame, "score went from %v to %v on a point", before.score, after.score)
		}
		if after.points != before.points+1 {
			c.failf(frame, "point scored without a cue")
		}
	default:
		if after.score != before.score {
			c.failf(frame, "score changed from %v to %v without a point", before.score, after.score)
		}
	}

	if after.hits != before.hits || after.points != before.points {
		for ball := range c.balls.Values() {
			if l := ball.Velocity.Len(); math.Abs(l-1) > unitTolerance {
				c.failf(frame, "ball velocity %v has length %v after a hit or point", ball.Velocity.Vec2, l)
			}
		}
	}

	for p := range c.paddles.Values() {
		if p.Bounds.Y < 0 || p.Bounds.Bottom() > c.arena.Height {
			c.failf(frame, "%s paddle %v escaped the arena", p.Controllable.Player, p.Bounds.Rect)
		}
	}
}
