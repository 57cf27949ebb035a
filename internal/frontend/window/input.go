package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/pong/pong"
)

// keymap binds each game key to the physical keys that trigger it.
var keymap = map[pong.Key][]ebiten.Key{
	pong.KeyP1Up:     {ebiten.KeyW},
	pong.KeyP1Down:   {ebiten.KeyS},
	pong.KeyP2Up:     {ebiten.KeyArrowUp},
	pong.KeyP2Down:   {ebiten.KeyArrowDown},
	pong.KeyStart:    {ebiten.KeySpace},
	pong.KeyPause:    {ebiten.KeyEscape},
	pong.KeyContinue: {ebiten.KeySpace},
	pong.KeyReset:    {ebiten.KeyR},
}

type keySource interface {
	down(ebiten.Key) bool
	justPressed(ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) down(k ebiten.Key) bool        { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) justPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Input reads the keyboard through ebiten. State is sampled when Update is
// called so the game sees one consistent snapshot per tick.
type Input struct {
	src     keySource
	down    []bool
	pressed []bool
}

var _ pong.Input = (*Input)(nil)

func NewInput() *Input {
	return newInput(ebitenKeys{})
}

func newInput(src keySource) *Input {
	n := len(pong.Keys())
	return &Input{src: src, down: make([]bool, n), pressed: make([]bool, n)}
}

// Update samples the keyboard. While blocked every key reads as released,
// which keeps typing into the debug overlay from moving paddles.
func (in *Input) Update(blocked bool) {
	for _, k := range pong.Keys() {
		in.down[k], in.pressed[k] = false, false
		if blocked {
			continue
		}
		for _, physical := range keymap[k] {
			in.down[k] = in.down[k] || in.src.down(physical)
			in.pressed[k] = in.pressed[k] || in.src.justPressed(physical)
		}
	}
}

func (in *Input) IsKeyDown(k pong.Key) bool {
	return k >= 0 && int(k) < len(in.down) && in.down[k]
}

func (in *Input) IsKeyPressed(k pong.Key) bool {
	return k >= 0 && int(k) < len(in.pressed) && in.pressed[k]
}
