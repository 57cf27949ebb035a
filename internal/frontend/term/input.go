package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/pong/pong"
)

// holdWindow is how long a key counts as held after its last event.
// Terminals only report presses and auto-repeats, never releases.
const holdWindow = 150 * time.Millisecond

// Input turns tcell key events into held and pressed game keys.
type Input struct {
	lastSeen map[pong.Key]time.Time
	pending  map[pong.Key]bool
	pressed  map[pong.Key]bool
	now      time.Time
}

var _ pong.Input = (*Input)(nil)

func NewInput() *Input {
	return &Input{
		lastSeen: make(map[pong.Key]time.Time),
		pending:  make(map[pong.Key]bool),
		pressed:  make(map[pong.Key]bool),
	}
}

// translate maps a key event to the game keys it triggers.
func translate(ev *tcell.EventKey) []pong.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return []pong.Key{pong.KeyP2Up}
	case tcell.KeyDown:
		return []pong.Key{pong.KeyP2Down}
	case tcell.KeyEscape:
		return []pong.Key{pong.KeyPause}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return []pong.Key{pong.KeyP1Up}
		case 's', 'S':
			return []pong.Key{pong.KeyP1Down}
		case ' ':
			return []pong.Key{pong.KeyStart, pong.KeyContinue}
		case 'r', 'R':
			return []pong.Key{pong.KeyReset}
		}
	}
	return nil
}

// Handle records a key event received at t. A key that was not already
// held registers as pressed on the next frame.
func (in *Input) Handle(ev *tcell.EventKey, t time.Time) {
	for _, k := range translate(ev) {
		if last, ok := in.lastSeen[k]; !ok || t.Sub(last) >= holdWindow {
			in.pending[k] = true
		}
		in.lastSeen[k] = t
	}
}

// BeginFrame makes the presses collected since the previous frame visible.
func (in *Input) BeginFrame(t time.Time) {
	in.now = t
	clear(in.pressed)
	for k := range in.pending {
		in.pressed[k] = true
	}
	clear(in.pending)
}

func (in *Input) IsKeyDown(k pong.Key) bool {
	last, ok := in.lastSeen[k]
	return ok && in.now.Sub(last) < holdWindow
}

func (in *Input) IsKeyPressed(k pong.Key) bool {
	return in.pressed[k]
}
