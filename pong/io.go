package pong

import "image/color"

// Key is an abstract game key. Frontends map physical keys onto it.
type Key int

const (
	KeyP1Up Key = iota
	KeyP1Down
	KeyP2Up
	KeyP2Down
	KeyStart
	KeyPause
	KeyContinue
	KeyReset
	keyCount
)

var keyNames = [...]string{
	KeyP1Up:     "P1Up",
	KeyP1Down:   "P1Down",
	KeyP2Up:     "P2Up",
	KeyP2Down:   "P2Down",
	KeyStart:    "Start",
	KeyPause:    "Pause",
	KeyContinue: "Continue",
	KeyReset:    "Reset",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "Key(?)"
	}
	return keyNames[k]
}

// Keys lists every abstract key.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Input reports keyboard state for the current frame.
type Input interface {
	// IsKeyDown reports whether k is held.
	IsKeyDown(k Key) bool
	// IsKeyPressed reports whether k went down this frame.
	IsKeyPressed(k Key) bool
}

// Surface is a drawing target measured in arena units.
type Surface interface {
	FillRect(r Rect, c color.Color)
	Line(x0, y0, x1, y1, width float64, c color.Color)
	// CenteredText draws s centered on the arena, offset by (dx, dy).
	CenteredText(s string, dx, dy float64, size int, c color.Color)
}

// Cues receives audible events. Calls happen after the frame's systems finish.
type Cues interface {
	PaddleHit()
	WallBounce()
	PointScored(player PlayerId)
}

type nopCues struct{}

func (nopCues) PaddleHit()           {}
func (nopCues) WallBounce()          {}
func (nopCues) PointScored(PlayerId) {}

type noInput struct{}

func (noInput) IsKeyDown(Key) bool    { return false }
func (noInput) IsKeyPressed(Key) bool { return false }
