package main

import (
	"math/rand/v2"

	"github.com/plus3/pong/pong"
)

// holdChance is the per-frame probability that each key is held.
var holdChance = map[pong.Key]float64{
	pong.KeyP1Up:     0.3,
	pong.KeyP1Down:   0.3,
	pong.KeyP2Up:     0.3,
	pong.KeyP2Down:   0.3,
	pong.KeyStart:    0.05,
	pong.KeyPause:    0.002,
	pong.KeyContinue: 0.05,
	pong.KeyReset:    0.01,
}

// randomInput holds a random subset of keys each frame. A key counts as
// pressed on the frame it goes down.
type randomInput struct {
	rng     *rand.Rand
	down    map[pong.Key]bool
	pressed map[pong.Key]bool
}

func newRandomInput(rng *rand.Rand) *randomInput {
	return &randomInput{
		rng:     rng,
		down:    make(map[pong.Key]bool),
		pressed: make(map[pong.Key]bool),
	}
}

func (in *randomInput) roll() {
	for _, k := range pong.Keys() {
		held := in.rng.Float64() < holdChance[k]
		in.pressed[k] = held && !in.down[k]
		in.down[k] = held
	}
}

func (in *randomInput) IsKeyDown(k pong.Key) bool    { return in.down[k] }
func (in *randomInput) IsKeyPressed(k pong.Key) bool { return in.pressed[k] }

// tally counts cues.
type tally struct {
	paddleHits  int
	wallBounces int
	points      [2]int
}

func (t *tally) PaddleHit()  { t.paddleHits++ }
func (t *tally) WallBounce() { t.wallBounces++ }
func (t *tally) PointScored(p pong.PlayerId) {
	if p.Valid() {
		t.points[p-1]++
	}
}
