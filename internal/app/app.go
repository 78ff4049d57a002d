//go:build ebiten

package app

import (
	"log"

	"mad-snake/internal/core"
	"mad-snake/internal/render"
	"mad-snake/internal/sims/snake"
	"mad-snake/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var directionKeys = []struct {
	keys []ebiten.Key
	dir  snake.Direction
}{
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, snake.Up},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, snake.Down},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, snake.Left},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, snake.Right},
}

// Game adapts a snake simulation to the ebiten.Game interface.
type Game struct {
	cfg     Config
	sim     *snake.Simulation
	seed    int64
	clock   *core.FrameClock
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	reported bool
}

// New constructs a Game from cfg, seeding the first round with cfg.Game.Seed.
func New(cfg Config) (*Game, error) {
	g := &Game{
		cfg:     cfg,
		clock:   core.NewFrameClock(),
		painter: render.NewGridPainter(cfg.Game.Width, cfg.Game.Height),
		overlay: ui.NewOverlay(),
	}
	g.scale = g.painter.FitScale(cfg.Scale)
	if err := g.Reset(cfg.Game.Seed); err != nil {
		return nil, err
	}
	g.hud = ui.NewHUD(g.sim, cfg.HUDWidth)
	return g, nil
}

// Reset starts a new round seeded with seed.
func (g *Game) Reset(seed int64) error {
	gc := g.cfg.Game
	gc.Seed = seed
	sim, err := snake.NewWithConfig(gc, core.NewRNG(seed))
	if err != nil {
		return err
	}
	g.sim = sim
	g.seed = seed
	g.reported = false
	g.clock.Reset()
	g.hud.SetSim(sim)
	return nil
}

// Size returns the window size in pixels.
func (g *Game) Size() (int, int) {
	return g.cfg.Game.Width*g.scale + g.hud.Width(), g.cfg.Game.Height * g.scale
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed + 1); err != nil {
			return err
		}
	}
	for _, dk := range directionKeys {
		for _, k := range dk.keys {
			if inpututil.IsKeyJustPressed(k) {
				g.sim.HandleDirectionInput(dk.dir)
			}
		}
	}

	g.sim.AdvanceTick(g.clock.Delta())
	if st := g.sim.Status(); st != snake.Running && !g.reported {
		g.reported = true
		log.Printf("game %s: seed %d, length %d after %d ticks", st, g.seed, g.sim.Len(), g.sim.Ticks())
	}
	g.hud.Update()
	return nil
}

// Draw renders the board, the HUD and the end-of-game banner.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(snake.BackgroundColor)
	g.painter.Blit(screen, g.sim.Cells(), g.sim.Palette(), g.scale)
	boardW := g.cfg.Game.Width * g.scale
	g.hud.Draw(screen, boardW, g.scale)
	g.overlay.Draw(screen, g.sim, boardW, g.cfg.Game.Height*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
