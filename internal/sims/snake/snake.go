package snake

import (
	"errors"
	"fmt"
	"math"
	"time"

	"mad-snake/internal/core"
)

var (
	// ErrGridTooSmall is returned when the grid cannot hold a head and a fruit.
	ErrGridTooSmall = errors.New("snake: grid too small")
	// ErrNilRandom is returned when no random source is supplied.
	ErrNilRandom = errors.New("snake: nil random source")
	// ErrGridTooLarge is returned when the grid has more than MaxCells tiles.
	ErrGridTooLarge = errors.New("snake: grid too large")
	// ErrBadTickDuration is returned for non-positive tick durations.
	ErrBadTickDuration = errors.New("snake: tick duration must be positive")
)

// MaxCells bounds width*height so a bad flag cannot exhaust memory.
const MaxCells = 1 << 20

// RandomSource supplies the draws used for fruit placement. *core.RNG and
// *rand.Rand from math/rand/v2 both satisfy it.
type RandomSource interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

// Simulation is the snake game state machine. It is not safe for concurrent
// use; callers serialize HandleDirectionInput, AdvanceTick and the accessors.
type Simulation struct {
	w, h  int
	tiles []Tile

	head Position
	// body holds the tail oldest-first, so the newest segment is last.
	body  []Position
	fruit Position

	dir       Direction
	queued    Direction
	hasQueued bool

	status Status
	clock  *core.FixedStep
	rng    RandomSource

	ticks uint64
	score int

	display *core.ByteGrid
	free    []int
}

// New returns a Simulation on a width x height grid using the default tick
// duration.
func New(width, height int, rng RandomSource) (*Simulation, error) {
	cfg := DefaultConfig()
	cfg.Width = width
	cfg.Height = height
	return NewWithConfig(cfg, rng)
}

// NewWithConfig returns a Simulation configured from cfg. The head starts in
// the grid centre heading right and the fruit is placed on any other tile.
func NewWithConfig(cfg Config, rng RandomSource) (*Simulation, error) {
	if err := CheckSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, ErrNilRandom
	}
	if cfg.TickDuration <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadTickDuration, cfg.TickDuration)
	}

	s := newSimulation(cfg.Width, cfg.Height, cfg.TickDuration, rng)
	s.head = Position{X: cfg.Width / 2, Y: cfg.Height / 2}
	s.setOccupied(s.head, true)

	for {
		p := Position{X: rng.IntN(s.w), Y: rng.IntN(s.h)}
		if p == s.head || !s.inBounds(p) {
			continue
		}
		s.fruit = p
		break
	}
	s.setOccupied(s.fruit, true)
	s.rebuildDisplay()
	return s, nil
}

// CheckSize reports whether a width x height grid can host a game.
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrGridTooSmall, w, h)
	}
	// Divide first so w*h cannot overflow.
	if w > MaxCells/h {
		return fmt.Errorf("%w: %dx%d exceeds %d tiles", ErrGridTooLarge, w, h, MaxCells)
	}
	if w*h < 2 {
		return fmt.Errorf("%w: %dx%d", ErrGridTooSmall, w, h)
	}
	return nil
}

func newSimulation(w, h int, tick time.Duration, rng RandomSource) *Simulation {
	tiles := make([]Tile, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tiles[y*w+x] = Tile{Position: Position{X: x, Y: y}}
		}
	}
	return &Simulation{
		w:       w,
		h:       h,
		tiles:   tiles,
		dir:     Right,
		status:  Running,
		clock:   core.NewFixedStep(tick),
		rng:     rng,
		display: core.NewByteGrid(w, h),
		free:    make([]int, 0, w*h),
	}
}

// HandleDirectionInput queues d for the next tick. Reversals onto the active
// heading are ignored, as is any input once the game has ended. Between
// ticks the last accepted input wins.
func (s *Simulation) HandleDirectionInput(d Direction) {
	if s.status != Running || !d.Valid() {
		return
	}
	if d == s.dir.Opposite() {
		return
	}
	s.queued = d
	s.hasQueued = true
}

// AdvanceTick banks elapsed frame time and applies at most one step once a
// full tick has accumulated. It reports whether a step ran.
func (s *Simulation) AdvanceTick(elapsed time.Duration) bool {
	if s.status != Running {
		return false
	}
	if !s.clock.Advance(elapsed) {
		return false
	}
	s.step()
	s.rebuildDisplay()
	return true
}

// AdvanceTickMillis is AdvanceTick for callers counting whole milliseconds.
// Values too large for a time.Duration saturate.
func (s *Simulation) AdvanceTickMillis(ms uint64) bool {
	if ms > uint64(math.MaxInt64/int64(time.Millisecond)) {
		return s.AdvanceTick(time.Duration(math.MaxInt64))
	}
	return s.AdvanceTick(time.Duration(ms) * time.Millisecond)
}

func (s *Simulation) step() {
	s.ticks++
	if s.hasQueued {
		s.dir = s.queued
		s.hasQueued = false
	}

	next := s.head.Add(s.dir.Delta())
	if !s.inBounds(next) {
		s.status = Lost
		return
	}

	s.setOccupied(next, true)
	s.body = append(s.body, s.head)
	s.head = next

	// The oldest segment is still in place here, so chasing the tail loses.
	if s.bodyContains(next) {
		s.status = Lost
		return
	}

	if next == s.fruit {
		s.score++
		if !s.placeFruit() {
			s.status = Won
		}
		return
	}

	oldest := s.body[0]
	s.body = s.body[1:]
	s.setOccupied(oldest, false)
}

func (s *Simulation) placeFruit() bool {
	s.free = s.free[:0]
	for i, t := range s.tiles {
		if !t.Occupied {
			s.free = append(s.free, i)
		}
	}
	if len(s.free) == 0 {
		return false
	}
	idx := s.free[s.rng.IntN(len(s.free))]
	s.fruit = s.tiles[idx].Position
	s.tiles[idx].Occupied = true
	return true
}

func (s *Simulation) bodyContains(p Position) bool {
	for _, b := range s.body {
		if b == p {
			return true
		}
	}
	return false
}

func (s *Simulation) inBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.w && p.Y < s.h
}

func (s *Simulation) setOccupied(p Position, v bool) {
	s.tiles[p.Y*s.w+p.X].Occupied = v
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "snake" }

// Size reports the grid dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.w, H: s.h} }

// Width returns the number of columns.
func (s *Simulation) Width() int { return s.w }

// Height returns the number of rows.
func (s *Simulation) Height() int { return s.h }

// Head returns the head position.
func (s *Simulation) Head() Position { return s.head }

// Tail returns a copy of the tail, front (newest) to back (oldest).
func (s *Simulation) Tail() []Position {
	out := make([]Position, len(s.body))
	for i, p := range s.body {
		out[len(s.body)-1-i] = p
	}
	return out
}

// Len returns the snake length including the head.
func (s *Simulation) Len() int { return len(s.body) + 1 }

// Fruit returns the fruit position.
func (s *Simulation) Fruit() Position { return s.fruit }

// Occupied reports whether p is covered. Out-of-range positions are free.
func (s *Simulation) Occupied(p Position) bool {
	if !s.inBounds(p) {
		return false
	}
	return s.tiles[p.Y*s.w+p.X].Occupied
}

// Tiles returns a row-major copy of the grid.
func (s *Simulation) Tiles() []Tile {
	return append([]Tile(nil), s.tiles...)
}

// Status returns the current game status.
func (s *Simulation) Status() Status { return s.status }

// Direction returns the active heading.
func (s *Simulation) Direction() Direction { return s.dir }

// QueuedDirection returns the heading that takes effect on the next tick.
func (s *Simulation) QueuedDirection() (Direction, bool) { return s.queued, s.hasQueued }

// Accumulated returns the frame time banked towards the next tick.
func (s *Simulation) Accumulated() time.Duration { return s.clock.Accumulated() }

// TickDuration returns the time between steps.
func (s *Simulation) TickDuration() time.Duration { return s.clock.Step() }

// Ticks returns the number of steps applied so far.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Score returns the number of fruits eaten.
func (s *Simulation) Score() int { return s.score }
