// Package term renders a snake game on a tcell screen and feeds it keyboard
// input. A Session owns its simulation and touches it only from Run's
// goroutine.
package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"mad-snake/internal/core"
	"mad-snake/internal/sims/snake"
)

const (
	boardLeft = 0
	boardTop  = 1
	tileWidth = 2
)

// Session is one single-player game bound to a screen.
type Session struct {
	screen tcell.Screen
	cfg    Config
	log    *log.Logger

	sim   *snake.Simulation
	seed  int64
	clock *core.FrameClock

	reported bool
}

// NewSession starts a game on screen. The caller initialises the screen and
// calls Fini after Run returns.
func NewSession(screen tcell.Screen, cfg Config, logger *log.Logger) (*Session, error) {
	if logger == nil {
		logger = log.Default()
	}
	s := &Session{
		screen: screen,
		cfg:    cfg,
		log:    logger,
		clock:  core.NewFrameClock(),
	}
	if err := s.Restart(cfg.Game.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Sim exposes the running simulation for inspection.
func (s *Session) Sim() *snake.Simulation { return s.sim }

// Restart replaces the game with a fresh one seeded with seed.
func (s *Session) Restart(seed int64) error {
	cfg := s.cfg.Game
	cfg.Seed = seed
	sim, err := snake.NewWithConfig(cfg, core.NewRNG(seed))
	if err != nil {
		return fmt.Errorf("term: new game: %w", err)
	}
	s.sim = sim
	s.seed = seed
	s.reported = false
	s.clock.Reset()
	return nil
}

// Run pumps screen events and frames until ctx is cancelled or the player
// quits.
func (s *Session) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(s.cfg.frameInterval())
	defer ticker.Stop()

	s.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !s.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			s.Frame()
		}
	}
}

// HandleEvent applies one screen event. It returns false when the player
// asked to quit or input failed.
func (s *Session) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		s.screen.Sync()
		s.Draw()
	case *tcell.EventError:
		// The input side is gone, e.g. a remote client hung up.
		s.log.Printf("input closed: %v", ev)
		return false
	}
	return true
}

func (s *Session) handleKey(key tcell.Key, r rune) bool {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		return false
	case key == tcell.KeyRune && r == 'q':
		return false
	case key == tcell.KeyRune && r == 'r':
		if err := s.Restart(s.seed + 1); err != nil {
			s.log.Printf("restart failed: %v", err)
		}
		return true
	}
	if d, ok := directionForKey(key, r); ok {
		s.sim.HandleDirectionInput(d)
	}
	return true
}

func directionForKey(key tcell.Key, r rune) (snake.Direction, bool) {
	switch key {
	case tcell.KeyUp:
		return snake.Up, true
	case tcell.KeyDown:
		return snake.Down, true
	case tcell.KeyLeft:
		return snake.Left, true
	case tcell.KeyRight:
		return snake.Right, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'k':
			return snake.Up, true
		case 's', 'j':
			return snake.Down, true
		case 'a', 'h':
			return snake.Left, true
		case 'd', 'l':
			return snake.Right, true
		}
	}
	return 0, false
}

// Frame advances the game by the wall time since the previous frame and
// redraws.
func (s *Session) Frame() {
	s.sim.AdvanceTick(s.clock.Delta())
	if st := s.sim.Status(); st != snake.Running && !s.reported {
		s.reported = true
		s.log.Printf("game %s: seed %d, length %d after %d ticks", st, s.seed, s.sim.Len(), s.sim.Ticks())
	}
	s.Draw()
	s.screen.Show()
}
