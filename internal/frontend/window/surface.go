package window

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/plus3/pong/pong"
)

// viewport maps arena units onto a screen, keeping the arena square and
// centered.
type viewport struct {
	scale   float64
	offsetX float64
	offsetY float64
}

func fitViewport(arena pong.Arena, screenW, screenH int) viewport {
	scale := min(float64(screenW)/arena.Width, float64(screenH)/arena.Height)
	return viewport{
		scale:   scale,
		offsetX: (float64(screenW) - arena.Width*scale) / 2,
		offsetY: (float64(screenH) - arena.Height*scale) / 2,
	}
}

func (v viewport) point(x, y float64) (float32, float32) {
	return float32(v.offsetX + x*v.scale), float32(v.offsetY + y*v.scale)
}

func (v viewport) length(l float64) float32 {
	return float32(l * v.scale)
}

// surface draws onto an ebiten image in arena units.
type surface struct {
	screen *ebiten.Image
	arena  pong.Arena
	view   viewport
	font   *text.GoTextFaceSource
}

var _ pong.Surface = (*surface)(nil)

func newSurface(arena pong.Arena) (*surface, error) {
	font, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &surface{arena: arena, font: font}, nil
}

func (s *surface) begin(screen *ebiten.Image) {
	s.screen = screen
	b := screen.Bounds()
	s.view = fitViewport(s.arena, b.Dx(), b.Dy())

	x, y := s.view.point(0, 0)
	vector.DrawFilledRect(screen, x, y, s.view.length(s.arena.Width), s.view.length(s.arena.Height), color.Black, false)
}

func (s *surface) FillRect(r pong.Rect, c color.Color) {
	x, y := s.view.point(r.X, r.Y)
	vector.DrawFilledRect(s.screen, x, y, s.view.length(r.W), s.view.length(r.H), c, false)
}

func (s *surface) Line(x0, y0, x1, y1, width float64, c color.Color) {
	sx0, sy0 := s.view.point(x0, y0)
	sx1, sy1 := s.view.point(x1, y1)
	vector.StrokeLine(s.screen, sx0, sy0, sx1, sy1, max(1, s.view.length(width)), c, false)
}

func (s *surface) CenteredText(str string, dx, dy float64, size int, c color.Color) {
	face := &text.GoTextFace{Source: s.font, Size: float64(size) * s.view.scale}

	x, y := s.view.point(s.arena.Width/2+dx, s.arena.Height/2+dy)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.screen, str, face, op)
}
