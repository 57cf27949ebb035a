// Package window runs the game in a desktop window using ebiten.
package window

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	debugebiten "github.com/plus3/pong/ecs/debugui/ebiten"
	"github.com/plus3/pong/internal/audio"
	"github.com/plus3/pong/internal/config"
	"github.com/plus3/pong/internal/prefs"
	"github.com/plus3/pong/pong"
)

type Options struct {
	Window config.WindowConfig
	// Debug enables the overlay at startup regardless of saved preferences.
	Debug  bool
	Prefs  *prefs.Manager
	Cues   *audio.Cues
	Logger *zap.Logger
}

// Frontend implements ebiten.Game around a pong.Game.
type Frontend struct {
	opts    Options
	keys    keySource
	input   *Input
	log     *zap.Logger
	game    *pong.Game
	surface *surface
	imgui   *debugebiten.ImguiBackend
	overlay *overlay
	showUI  bool
}

func New(opts Options) *Frontend {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewManager(nil, opts.Logger)
	}
	return &Frontend{
		opts:  opts,
		keys:  ebitenKeys{},
		input: NewInput(),
		log:   opts.Logger.Named("window"),
	}
}

// Input is the pong.Input the game must be created with.
func (f *Frontend) Input() pong.Input {
	return f.input
}

// Run opens the window and blocks until it is closed.
func (f *Frontend) Run(game *pong.Game) error {
	surface, err := newSurface(game.Arena())
	if err != nil {
		return err
	}
	f.game = game
	f.surface = surface

	arena := game.Arena()
	w := int(arena.Width * f.opts.Window.Scale)
	h := int(arena.Height * f.opts.Window.Scale)

	f.imgui = debugebiten.NewImguiBackend(f.opts.Window.Title, w, h)
	f.overlay = newOverlay(game)

	ebiten.SetWindowTitle(f.opts.Window.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(f.opts.Window.VSync)

	p := f.opts.Prefs.Get()
	ebiten.SetFullscreen(p.Fullscreen)
	if f.opts.Cues != nil {
		f.opts.Cues.SetMuted(p.Muted)
	}
	f.showUI = p.DebugOverlay || f.opts.Debug

	f.log.Info("window opened", zap.Int("width", w), zap.Int("height", h), zap.Bool("overlay", f.showUI))
	if err := ebiten.RunGame(f); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func (f *Frontend) Update() error {
	f.handleToggles(f.typing())
	dt := 1.0 / float64(ebiten.TPS())

	if f.showUI {
		f.imgui.Frame(func() { f.overlay.update(dt) })
	}
	f.input.Update(f.typing())
	f.game.Step(dt)
	return nil
}

// typing reports whether the debug overlay owns the keyboard.
func (f *Frontend) typing() bool {
	return f.showUI && f.overlay != nil && f.overlay.wantsKeyboard()
}

// handleToggles applies the frontend-only keys and persists the result.
// Letter keys are ignored while the overlay is taking text input.
func (f *Frontend) handleToggles(typing bool) {
	switch {
	case f.keys.justPressed(ebiten.KeyF1):
		f.showUI = !f.showUI
		f.opts.Prefs.Update(func(p *prefs.Prefs) { p.DebugOverlay = f.showUI })

	case f.keys.justPressed(ebiten.KeyF11):
		full := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(full)
		f.opts.Prefs.Update(func(p *prefs.Prefs) { p.Fullscreen = full })

	case f.keys.justPressed(ebiten.KeyM):
		if typing || f.opts.Cues == nil {
			return
		}
		muted := !f.opts.Cues.Muted()
		f.opts.Cues.SetMuted(muted)
		f.opts.Prefs.Update(func(p *prefs.Prefs) { p.Muted = muted })
	}
}

func (f *Frontend) Draw(screen *ebiten.Image) {
	f.surface.begin(screen)
	f.game.Draw(f.surface)

	if f.showUI {
		f.imgui.DrawOver(screen)
	}
}

func (f *Frontend) Layout(outsideWidth, outsideHeight int) (int, int) {
	f.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
