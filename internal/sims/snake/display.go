package snake

import "image/color"

// Display buffer values returned by Cells.
const (
	CellEmpty uint8 = iota
	CellEmptyAlt
	CellFruit
	CellHead
	CellTailEven
	CellTailOdd
)

var (
	// BackgroundColor fills the area around the board.
	BackgroundColor = color.RGBA{R: 41, G: 41, B: 41, A: 255}

	snakePalette = []color.RGBA{
		CellEmpty:    {R: 51, G: 51, B: 51, A: 255},
		CellEmptyAlt: {R: 59, G: 59, B: 59, A: 255},
		CellFruit:    {R: 255, G: 87, B: 51, A: 255},
		CellHead:     {R: 19, G: 138, B: 54, A: 255},
		CellTailEven: {R: 12, G: 185, B: 45, A: 255},
		CellTailOdd:  {R: 19, G: 138, B: 54, A: 255},
	}
)

// Palette exposes the colors indexed by the Cells values.
func (s *Simulation) Palette() []color.RGBA {
	return snakePalette
}

// Cells exposes the display buffer, one value per tile in row-major order.
// The slice is rewritten after every step and must not be modified.
func (s *Simulation) Cells() []uint8 { return s.display.Cells() }

func (s *Simulation) rebuildDisplay() {
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			v := CellEmpty
			if x%2 != y%2 {
				v = CellEmptyAlt
			}
			s.display.Set(x, y, v)
		}
	}
	if s.status != Won {
		s.display.Set(s.fruit.X, s.fruit.Y, CellFruit)
	}
	// Segments alternate shades counting from the one behind the head.
	n := len(s.body)
	for i, p := range s.body {
		v := CellTailEven
		if (n-1-i)%2 == 1 {
			v = CellTailOdd
		}
		s.display.Set(p.X, p.Y, v)
	}
	s.display.Set(s.head.X, s.head.Y, CellHead)
}
