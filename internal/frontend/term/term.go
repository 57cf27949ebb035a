// Package term runs the game inside a terminal using tcell.
package term

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plus3/pong/internal/audio"
	"github.com/plus3/pong/internal/prefs"
	"github.com/plus3/pong/pong"
)

const frameInterval = time.Second / 60

type Options struct {
	// Screen defaults to the real terminal.
	Screen tcell.Screen
	Prefs  *prefs.Manager
	Cues   *audio.Cues
	Logger *zap.Logger
}

type Frontend struct {
	opts  Options
	input *Input
	log   *zap.Logger
	fatal *fatalHook
}

func New(opts Options) *Frontend {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Prefs == nil {
		opts.Prefs = prefs.NewManager(nil, opts.Logger)
	}
	return &Frontend{opts: opts, input: NewInput(), log: opts.Logger.Named("term"), fatal: newFatalHook()}
}

// FatalHook is meant for zap.WithFatalHook. While Run owns the terminal it
// restores the screen and echoes the message to stderr before exiting 1.
func (f *Frontend) FatalHook() zapcore.CheckWriteHook {
	return f.fatal
}

func (f *Frontend) Input() pong.Input {
	return f.input
}

// Run takes over the terminal and blocks until the player quits with q or
// Ctrl+C.
func (f *Frontend) Run(game *pong.Game) error {
	screen := f.opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	f.fatal.attach(screen)
	defer func() {
		if s := f.fatal.release(); s != nil {
			s.Fini()
		}
	}()
	screen.HideCursor()

	if f.opts.Cues != nil {
		f.opts.Cues.SetMuted(f.opts.Prefs.Get().Muted)
	}

	surface := newSurface(screen, game.Arena())
	cols, rows := screen.Size()
	f.log.Info("terminal opened", zap.Int("cols", cols), zap.Int("rows", rows))

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !f.handleEvent(ev, surface) {
				f.log.Info("terminal closed")
				return nil
			}

		case now := <-ticker.C:
			f.input.BeginFrame(now)
			game.Step(now.Sub(last).Seconds())
			last = now

			screen.Clear()
			game.Draw(surface)
			screen.Show()
		}
	}
}

// handleEvent processes one terminal event and reports whether to keep running.
func (f *Frontend) handleEvent(ev tcell.Event, surface *surface) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return false
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M') {
			f.toggleMute()
			return true
		}
		f.input.Handle(ev, ev.When())

	case *tcell.EventResize:
		surface.screen.Sync()
		surface.resize()
	}
	return true
}

func (f *Frontend) toggleMute() {
	if f.opts.Cues == nil {
		return
	}
	muted := !f.opts.Cues.Muted()
	f.opts.Cues.SetMuted(muted)
	f.opts.Prefs.Update(func(p *prefs.Prefs) { p.Muted = muted })
}
