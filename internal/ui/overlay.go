//go:build ebiten

package ui

import (
	"image/color"

	"mad-snake/internal/sims/snake"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type statusProvider interface {
	Status() snake.Status
	Len() int
}

// Overlay dims the board and shows the result once a game has ended.
type Overlay struct {
	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{pixel: ebiten.NewImage(1, 1)}
	o.pixel.Fill(color.White)
	return o
}

// Draw paints the banner over a board of w x h pixels. It draws nothing
// while the game is running.
func (o *Overlay) Draw(screen *ebiten.Image, game statusProvider, w, h int) {
	if o == nil || game == nil {
		return
	}
	msg := bannerText(game.Status(), game.Len())
	if msg == "" {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.ColorScale.ScaleWithColor(color.RGBA{A: 160})
	screen.DrawImage(o.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, msg)
	x := (w - bounds.Dx()) / 2
	y := (h + bounds.Dy()) / 2
	text.Draw(screen, msg, face, x, y, color.White)

	hint := "press R to play again"
	hb := text.BoundString(face, hint)
	text.Draw(screen, hint, face, (w-hb.Dx())/2, y+lineHeight, color.RGBA{R: 200, G: 200, B: 200, A: 255})
}
