//go:build !ebiten

package app

import "errors"

// ErrNoGUI reports a binary built without the ebiten tag.
var ErrNoGUI = errors.New("app: the window frontend requires the 'ebiten' build tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New always fails in the headless build.
func New(Config) (*Game, error) { return nil, ErrNoGUI }

// Reset always fails in the headless build.
func (g *Game) Reset(int64) error { return ErrNoGUI }

// Size returns zeros in the headless build.
func (g *Game) Size() (int, int) { return 0, 0 }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
