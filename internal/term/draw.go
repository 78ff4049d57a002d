package term

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"mad-snake/internal/sims/snake"
)

var glyphs = map[uint8][tileWidth]rune{
	snake.CellEmpty:    {' ', ' '},
	snake.CellEmptyAlt: {' ', ' '},
	snake.CellFruit:    {'(', ')'},
	snake.CellHead:     {'@', '@'},
	snake.CellTailEven: {'[', ']'},
	snake.CellTailOdd:  {'[', ']'},
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Draw paints the status line and board into the screen buffer.
func (s *Session) Draw() {
	sc := s.screen
	sc.Clear()

	base := tcell.StyleDefault.Background(rgb(snake.BackgroundColor)).Foreground(tcell.ColorWhite)
	drawText(sc, boardLeft, 0, base, s.statusLine())

	w, h := s.sim.Width(), s.sim.Height()
	palette := s.sim.Palette()
	cells := s.sim.Cells()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := cells[y*w+x]
			style := tcell.StyleDefault.Foreground(tcell.ColorBlack)
			if int(v) < len(palette) {
				style = style.Background(rgb(palette[v]))
			}
			g := glyphs[v]
			for i := 0; i < tileWidth; i++ {
				sc.SetContent(boardLeft+x*tileWidth+i, boardTop+y, g[i], nil, style)
			}
		}
	}
}

func (s *Session) statusLine() string {
	switch s.sim.Status() {
	case snake.Won:
		return fmt.Sprintf("You won with length %d! r: restart  q: quit", s.sim.Len())
	case snake.Lost:
		return fmt.Sprintf("You lost at length %d. r: restart  q: quit", s.sim.Len())
	}
	return fmt.Sprintf("score %d  length %d  seed %d", s.sim.Score(), s.sim.Len(), s.seed)
}

func drawText(sc tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		sc.SetContent(x+i, y, r, nil, style)
	}
}
