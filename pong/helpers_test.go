package pong_test

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/pong/ecs"
	"github.com/plus3/pong/pong"
)

type fakeInput struct {
	down    map[pong.Key]bool
	pressed map[pong.Key]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{down: map[pong.Key]bool{}, pressed: map[pong.Key]bool{}}
}

func (f *fakeInput) IsKeyDown(k pong.Key) bool    { return f.down[k] }
func (f *fakeInput) IsKeyPressed(k pong.Key) bool { return f.pressed[k] }

// press marks keys as pressed for exactly one frame of step.
func (f *fakeInput) press(g *pong.Game, dt float64, keys ...pong.Key) {
	for _, k := range keys {
		f.pressed[k] = true
	}
	g.Step(dt)
	clear(f.pressed)
}

type recordedCues struct {
	hits, bounces int
	scored        []pong.PlayerId
}

func (r *recordedCues) PaddleHit()                  { r.hits++ }
func (r *recordedCues) WallBounce()                 { r.bounces++ }
func (r *recordedCues) PointScored(p pong.PlayerId) { r.scored = append(r.scored, p) }

type textCall struct {
	text   string
	dx, dy float64
	size   int
}

type recordingSurface struct {
	rects []pong.Rect
	lines int
	texts []textCall
}

func (s *recordingSurface) FillRect(r pong.Rect, c color.Color) { s.rects = append(s.rects, r) }
func (s *recordingSurface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	s.lines++
}
func (s *recordingSurface) CenteredText(text string, dx, dy float64, size int, c color.Color) {
	s.texts = append(s.texts, textCall{text: text, dx: dx, dy: dy, size: size})
}

func (s *recordingSurface) strings() []string {
	out := make([]string, len(s.texts))
	for i, t := range s.texts {
		out[i] = t.text
	}
	return out
}

// constSource always yields the same value, so Float64 is fixed.
type constSource uint64

func (c constSource) Uint64() uint64 { return uint64(c) }

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

type ballItem struct {
	ecs.EntityId
	*pong.Bounceable
	*pong.Bounds
	*pong.Velocity
	*pong.Speed
}

type paddleItem struct {
	ecs.EntityId
	*pong.Controllable
	*pong.Bounds
	*pong.Velocity
	*pong.Speed
}

func ball(storage *ecs.Storage) ballItem {
	for item := range ecs.NewView[ballItem](storage).Values() {
		return item
	}
	panic("no ball")
}

func paddle(storage *ecs.Storage, player pong.PlayerId) paddleItem {
	for item := range ecs.NewView[paddleItem](storage).Values() {
		if item.Controllable.Player == player {
			return item
		}
	}
	panic("no paddle")
}

// newWorld returns a bare storage with the arena and match singletons, ready
// for a hand-built scene.
func newWorld(sinceCollision float64) *ecs.Storage {
	storage := ecs.NewStorage(pong.NewRegistry())
	ecs.NewSingleton(storage, pong.Arena{Width: pong.ArenaWidth, Height: pong.ArenaHeight})
	ecs.NewSingleton(storage, pong.Match{SinceCollision: sinceCollision})
	return storage
}

func runOnce(storage *ecs.Storage, dt float64, systems ...ecs.System) {
	scheduler := ecs.NewScheduler(storage)
	for _, system := range systems {
		scheduler.Register(system)
	}
	scheduler.Once(dt)
}
