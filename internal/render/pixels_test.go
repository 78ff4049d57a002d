package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	palette := []color.RGBA{
		{R: 1, G: 2, B: 3, A: 255},
		{R: 10, G: 20, B: 30, A: 255},
	}
	cells := []uint8{0, 1, 7}
	buf := make([]byte, 4*len(cells))
	fillPaletteRGBA(buf, cells, palette)

	want := []byte{
		1, 2, 3, 255,
		10, 20, 30, 255,
		10, 20, 30, 255, // out of range clamps to the last colour
	}
	if !slices.Equal(buf, want) {
		t.Fatalf("got %v, want %v", buf, want)
	}

	fillPaletteRGBA(buf, cells, nil)
	if !slices.Equal(buf, make([]byte, len(buf))) {
		t.Fatalf("empty palette should clear, got %v", buf)
	}
}

func TestScaleFor(t *testing.T) {
	cases := []struct {
		w, h, maxW, maxH, want int
	}{
		{10, 10, 1920, 1080, 108},
		{40, 10, 800, 600, 20},
		{10, 10, 5, 5, 1},
		{0, 10, 100, 100, 1},
	}
	for _, c := range cases {
		if got := scaleFor(c.w, c.h, c.maxW, c.maxH); got != c.want {
			t.Errorf("scaleFor(%d,%d,%d,%d) = %d, want %d", c.w, c.h, c.maxW, c.maxH, got, c.want)
		}
	}
}
