package window

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/plus3/pong/internal/audio"
	"github.com/plus3/pong/pong"
)

type fakeKeys struct {
	held    map[ebiten.Key]bool
	pressed map[ebiten.Key]bool
}

func (f fakeKeys) down(k ebiten.Key) bool        { return f.held[k] }
func (f fakeKeys) justPressed(k ebiten.Key) bool { return f.pressed[k] }

func TestKeymapCoversEveryKey(t *testing.T) {
	for _, k := range pong.Keys() {
		assert.NotEmpty(t, keymap[k], "no binding for %s", k)
	}
}

func TestInputUpdate(t *testing.T) {
	src := fakeKeys{
		held:    map[ebiten.Key]bool{ebiten.KeyW: true, ebiten.KeyArrowDown: true},
		pressed: map[ebiten.Key]bool{ebiten.KeySpace: true},
	}
	in := newInput(src)

	in.Update(false)
	assert.True(t, in.IsKeyDown(pong.KeyP1Up))
	assert.True(t, in.IsKeyDown(pong.KeyP2Down))
	assert.False(t, in.IsKeyDown(pong.KeyP1Down))
	assert.True(t, in.IsKeyPressed(pong.KeyStart))
	assert.True(t, in.IsKeyPressed(pong.KeyContinue), "space both starts and continues")
	assert.False(t, in.IsKeyPressed(pong.KeyReset))

	t.Run("blocked", func(t *testing.T) {
		in.Update(true)
		for _, k := range pong.Keys() {
			assert.False(t, in.IsKeyDown(k))
			assert.False(t, in.IsKeyPressed(k))
		}
	})

	t.Run("out of range keys read as released", func(t *testing.T) {
		in.Update(false)
		assert.False(t, in.IsKeyDown(pong.Key(-1)))
		assert.False(t, in.IsKeyPressed(pong.Key(99)))
	})
}

func TestFitViewport(t *testing.T) {
	arena := pong.Arena{Width: pong.ArenaWidth, Height: pong.ArenaHeight}

	tests := []struct {
		name          string
		w, h          int
		scale, ox, oy float64
	}{
		{"exact", 500, 500, 1, 0, 0},
		{"doubled", 1000, 1000, 2, 0, 0},
		{"wide", 1600, 1000, 2, 300, 0},
		{"tall", 500, 700, 1, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := fitViewport(arena, tt.w, tt.h)
			assert.Equal(t, viewport{scale: tt.scale, offsetX: tt.ox, offsetY: tt.oy}, v)

			x, y := v.point(pong.ArenaWidth, pong.ArenaHeight)
			assert.Equal(t, float32(tt.ox+500*tt.scale), x)
			assert.Equal(t, float32(tt.oy+500*tt.scale), y)
		})
	}
}

func TestMuteToggleIgnoredWhileTyping(t *testing.T) {
	log := zaptest.NewLogger(t)
	cues := audio.New(0.5, log)
	f := New(Options{Cues: cues, Logger: log})
	f.keys = fakeKeys{pressed: map[ebiten.Key]bool{ebiten.KeyM: true}}

	f.handleToggles(true)
	assert.False(t, cues.Muted(), "m typed into the overlay")
	assert.False(t, f.opts.Prefs.Get().Muted)

	f.handleToggles(false)
	assert.True(t, cues.Muted())
	assert.True(t, f.opts.Prefs.Get().Muted)

	f.handleToggles(false)
	assert.False(t, cues.Muted())
}

func TestOverlayToggle(t *testing.T) {
	f := New(Options{Logger: zaptest.NewLogger(t)})
	f.keys = fakeKeys{pressed: map[ebiten.Key]bool{ebiten.KeyF1: true}}

	f.handleToggles(false)
	assert.True(t, f.showUI)
	assert.True(t, f.opts.Prefs.Get().DebugOverlay)
	assert.False(t, f.typing(), "no overlay has been built yet")
}
