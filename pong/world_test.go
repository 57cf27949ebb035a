package pong

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

type discardSurface struct{}

func (discardSurface) FillRect(Rect, color.Color)                                     {}
func (discardSurface) Line(x0, y0, x1, y1, width float64, c color.Color)              {}
func (discardSurface) CenteredText(s string, dx, dy float64, size int, c color.Color) {}

func TestRandomDirectionIsUnit(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 1000; i++ {
		v := randomDirection(rng)
		assert.InDelta(t, 1.0, v.Len(), 1e-9)
	}
}

func TestHomes(t *testing.T) {
	arena := Arena{Width: ArenaWidth, Height: ArenaHeight}
	assert.Equal(t, Rect{X: 20, Y: 210, W: 30, H: 80}, paddleHome(arena, Player1))
	assert.Equal(t, Rect{X: 450, Y: 210, W: 30, H: 80}, paddleHome(arena, Player2))
	assert.Equal(t, Rect{X: 235, Y: 235, W: 30, H: 30}, ballHome(arena))
}

func TestGeometry(t *testing.T) {
	paddle := Rect{X: 20, Y: 210, W: 30, H: 80}

	overlap, ok := paddle.Intersect(Rect{X: 40, Y: 240, W: 30, H: 30})
	assert.True(t, ok)
	assert.Equal(t, Rect{X: 40, Y: 240, W: 10, H: 30}, overlap)

	_, ok = paddle.Intersect(Rect{X: 50, Y: 240, W: 30, H: 30})
	assert.False(t, ok, "touching edges do not intersect")

	_, ok = paddle.Intersect(Rect{X: 100, Y: 0, W: 5, H: 5})
	assert.False(t, ok)

	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
	assert.Equal(t, Vec2{X: 0.6, Y: -0.8}, Vec2{X: 3, Y: -4}.Normalize())
	assert.Equal(t, 5.0, Vec2{X: 3, Y: -4}.Len())
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "Reset", KeyReset.String())
	assert.Equal(t, "Key(?)", Key(42).String())
	assert.Len(t, Keys(), 8)
}
