package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/pong/pong"
)

// surface draws the arena onto the terminal cell grid, stretched to fill
// the screen. Text size is ignored.
type surface struct {
	screen     tcell.Screen
	arena      pong.Arena
	cols, rows int
}

var _ pong.Surface = (*surface)(nil)

func newSurface(screen tcell.Screen, arena pong.Arena) *surface {
	s := &surface{screen: screen, arena: arena}
	s.resize()
	return s
}

func (s *surface) resize() {
	s.cols, s.rows = s.screen.Size()
}

func (s *surface) col(x float64) float64 {
	return x * float64(s.cols) / s.arena.Width
}

func (s *surface) row(y float64) float64 {
	return y * float64(s.rows) / s.arena.Height
}

func style(c color.Color) tcell.Style {
	r, g, b, _ := c.RGBA()
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8)))
}

func (s *surface) FillRect(r pong.Rect, c color.Color) {
	x0 := int(math.Floor(s.col(r.X)))
	y0 := int(math.Floor(s.row(r.Y)))
	x1 := max(x0+1, int(math.Ceil(s.col(r.Right()))))
	y1 := max(y0+1, int(math.Ceil(s.row(r.Bottom()))))

	st := style(c)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, '█', nil, st)
		}
	}
}

func (s *surface) Line(x0, y0, x1, y1, _ float64, c color.Color) {
	cx0, cy0 := s.col(x0), s.row(y0)
	cx1, cy1 := s.col(x1), s.row(y1)
	steps := int(math.Ceil(max(math.Abs(cx1-cx0), math.Abs(cy1-cy0))))

	glyph := '·'
	switch {
	case cx0 == cx1:
		glyph = '│'
	case cy0 == cy1:
		glyph = '─'
	}

	st := style(c)
	for i := 0; i < steps; i++ {
		f := float64(i) / float64(steps)
		x := int(cx0 + (cx1-cx0)*f)
		y := int(cy0 + (cy1-cy0)*f)
		s.screen.SetContent(x, y, glyph, nil, st)
	}
}

func (s *surface) CenteredText(str string, dx, dy float64, _ int, c color.Color) {
	runes := []rune(str)
	x := int(s.col(s.arena.Width/2+dx)) - len(runes)/2
	y := int(s.row(s.arena.Height/2 + dy))

	st := style(c)
	for i, r := range runes {
		s.screen.SetContent(x+i, y, r, nil, st)
	}
}
