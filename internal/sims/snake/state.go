package snake

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidState is wrapped by every Restore validation failure.
var ErrInvalidState = errors.New("snake: invalid state")

// State is a complete, serializable copy of a Simulation.
type State struct {
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Occupied []bool     `json:"occupied"`
	Head     Position   `json:"head"`
	Tail     []Position `json:"tail"`
	Fruit    Position   `json:"fruit"`

	Direction Direction  `json:"direction"`
	Queued    *Direction `json:"queued,omitempty"`
	Status    Status     `json:"status"`

	Accumulated  time.Duration `json:"accumulated_ns"`
	TickDuration time.Duration `json:"tick_ns"`
	Ticks        uint64        `json:"ticks"`
	Score        int           `json:"score"`

	// Random holds the random source state when the source can marshal it.
	Random []byte `json:"random,omitempty"`
}

// Snapshot captures the full simulation state, including the random source
// when it implements encoding.BinaryMarshaler.
func (s *Simulation) Snapshot() (State, error) {
	st := State{
		Width:        s.w,
		Height:       s.h,
		Occupied:     make([]bool, len(s.tiles)),
		Head:         s.head,
		Tail:         s.Tail(),
		Fruit:        s.fruit,
		Direction:    s.dir,
		Status:       s.status,
		Accumulated:  s.clock.Accumulated(),
		TickDuration: s.clock.Step(),
		Ticks:        s.ticks,
		Score:        s.score,
	}
	for i, t := range s.tiles {
		st.Occupied[i] = t.Occupied
	}
	if s.hasQueued {
		q := s.queued
		st.Queued = &q
	}
	if m, ok := s.rng.(encoding.BinaryMarshaler); ok {
		data, err := m.MarshalBinary()
		if err != nil {
			return State{}, fmt.Errorf("snake: snapshot random source: %w", err)
		}
		st.Random = data
	}
	return st, nil
}

// Restore rebuilds a Simulation from st. If st carries random state and rng
// implements encoding.BinaryUnmarshaler, rng is rewound to that state;
// otherwise rng is used as given.
func Restore(st State, rng RandomSource) (*Simulation, error) {
	if rng == nil {
		return nil, ErrNilRandom
	}
	if err := CheckSize(st.Width, st.Height); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if st.TickDuration <= 0 {
		return nil, fmt.Errorf("%w: tick duration %s", ErrInvalidState, st.TickDuration)
	}
	if st.Accumulated < 0 {
		return nil, fmt.Errorf("%w: negative accumulator", ErrInvalidState)
	}
	if !st.Direction.Valid() || (st.Queued != nil && !st.Queued.Valid()) {
		return nil, fmt.Errorf("%w: bad direction", ErrInvalidState)
	}
	if st.Queued != nil && *st.Queued == st.Direction.Opposite() {
		return nil, fmt.Errorf("%w: queued %s reverses %s", ErrInvalidState, *st.Queued, st.Direction)
	}
	if st.Status > Lost {
		return nil, fmt.Errorf("%w: bad status %d", ErrInvalidState, st.Status)
	}
	if len(st.Occupied) != st.Width*st.Height {
		return nil, fmt.Errorf("%w: %d occupancy entries for %dx%d grid", ErrInvalidState, len(st.Occupied), st.Width, st.Height)
	}

	s := newSimulation(st.Width, st.Height, st.TickDuration, rng)
	if err := s.loadPositions(st); err != nil {
		return nil, err
	}

	s.dir = st.Direction
	if st.Queued != nil {
		s.queued = *st.Queued
		s.hasQueued = true
	}
	s.status = st.Status
	s.clock.SetAccumulated(st.Accumulated)
	s.ticks = st.Ticks
	s.score = st.Score

	if len(st.Random) > 0 {
		if u, ok := rng.(encoding.BinaryUnmarshaler); ok {
			if err := u.UnmarshalBinary(st.Random); err != nil {
				return nil, fmt.Errorf("%w: random source: %w", ErrInvalidState, err)
			}
		}
	}
	s.rebuildDisplay()
	return s, nil
}

func (s *Simulation) loadPositions(st State) error {
	all := append([]Position{st.Head, st.Fruit}, st.Tail...)
	for _, p := range all {
		if !s.inBounds(p) {
			return fmt.Errorf("%w: position %s outside %dx%d grid", ErrInvalidState, p, s.w, s.h)
		}
	}

	s.head = st.Head
	s.fruit = st.Fruit
	s.body = make([]Position, len(st.Tail))
	for i, p := range st.Tail {
		s.body[len(st.Tail)-1-i] = p
	}

	if st.Status == Running {
		seen := make(map[Position]bool, len(st.Tail)+1)
		seen[st.Head] = true
		for _, p := range st.Tail {
			if seen[p] {
				return fmt.Errorf("%w: snake overlaps itself at %s", ErrInvalidState, p)
			}
			seen[p] = true
		}
		if seen[st.Fruit] {
			return fmt.Errorf("%w: fruit %s under the snake", ErrInvalidState, st.Fruit)
		}
	}

	want := make([]bool, len(s.tiles))
	for _, p := range all {
		want[p.Y*s.w+p.X] = true
	}
	for i, occ := range st.Occupied {
		if occ != want[i] {
			return fmt.Errorf("%w: occupancy of %s disagrees with snake and fruit", ErrInvalidState, s.tiles[i].Position)
		}
		s.tiles[i].Occupied = occ
	}
	return nil
}

// MarshalState encodes st as indented JSON.
func MarshalState(st State) ([]byte, error) {
	return json.MarshalIndent(st, "", "  ")
}

// UnmarshalState decodes JSON produced by MarshalState.
func UnmarshalState(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return st, nil
}
