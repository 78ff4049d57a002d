package core

import "testing"

func TestByteGridSetIgnoresOutOfRange(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Set(2, 1, 7)
	g.Set(3, 0, 9)
	g.Set(-1, 0, 9)
	g.Set(0, 2, 9)

	cells := g.Cells()
	for i, v := range cells {
		want := uint8(0)
		if i == g.Index(2, 1) {
			want = 7
		}
		if v != want {
			t.Fatalf("cell %d = %d, want %d", i, v, want)
		}
	}
	if g := NewByteGrid(0, -1); g.W != 1 || g.H != 1 {
		t.Fatalf("degenerate grid = %dx%d", g.W, g.H)
	}
}
