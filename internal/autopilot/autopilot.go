// Package autopilot drives a snake simulation without a player, for soak
// runs and tests.
package autopilot

import (
	"sync"

	"mad-snake/internal/core"
	"mad-snake/internal/sims/snake"
)

// Board is the read surface the pilot needs from a simulation.
type Board interface {
	Head() snake.Position
	Fruit() snake.Position
	Direction() snake.Direction
	Occupied(p snake.Position) bool
	Width() int
	Height() int
}

var preference = [...]snake.Direction{snake.Up, snake.Right, snake.Down, snake.Left}

// Choose returns the heading that does not lose on the next step and ends
// closest to the fruit. Ties keep the current heading, then follow a fixed
// order. When every move loses the current heading is returned.
func Choose(b Board) snake.Direction {
	cur := b.Direction()
	head := b.Head()
	fruit := b.Fruit()

	best := cur
	bestDist := -1
	consider := func(d snake.Direction) {
		if d == cur.Opposite() {
			return
		}
		next := head.Add(d.Delta())
		if next.X < 0 || next.Y < 0 || next.X >= b.Width() || next.Y >= b.Height() {
			return
		}
		if next != fruit && b.Occupied(next) {
			return
		}
		dist := manhattan(next, fruit)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	consider(cur)
	for _, d := range preference {
		if d != cur {
			consider(d)
		}
	}
	return best
}

func manhattan(a, b snake.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Result records how a single game ended.
type Result struct {
	Seed   int64
	Status snake.Status
	Length int
	Ticks  uint64
}

// Play runs one game seeded with cfg.Seed until it ends or maxTicks steps
// have run. Every call to AdvanceTick is fed exactly one tick of time.
func Play(cfg snake.Config, maxTicks int) (Result, error) {
	sim, err := snake.NewWithConfig(cfg, core.NewRNG(cfg.Seed))
	if err != nil {
		return Result{}, err
	}
	for i := 0; i < maxTicks && sim.Status() == snake.Running; i++ {
		sim.HandleDirectionInput(Choose(sim))
		sim.AdvanceTick(cfg.TickDuration)
	}
	return Result{Seed: cfg.Seed, Status: sim.Status(), Length: sim.Len(), Ticks: sim.Ticks()}, nil
}

// Summary aggregates a batch of games.
type Summary struct {
	Games   int
	Won     int
	Lost    int
	Timeout int

	MeanLength float64
	MeanTicks  float64
	Results    []Result
}

// Soak plays games seeded base.Seed, base.Seed+1, ... on up to workers
// goroutines. Each game owns its simulation, so no state is shared.
func Soak(base snake.Config, games, maxTicks, workers int) (Summary, error) {
	if workers <= 0 {
		workers = 1
	}
	if games < 0 {
		games = 0
	}

	results := make([]Result, games)
	errs := make([]error, games)
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < games; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			cfg := base
			cfg.Seed = base.Seed + int64(i)
			results[i], errs[i] = Play(cfg, maxTicks)
			<-sem
		}(i)
	}
	wg.Wait()

	sum := Summary{Games: games, Results: results}
	for i, r := range results {
		if errs[i] != nil {
			return Summary{}, errs[i]
		}
		switch r.Status {
		case snake.Won:
			sum.Won++
		case snake.Lost:
			sum.Lost++
		default:
			sum.Timeout++
		}
		sum.MeanLength += float64(r.Length)
		sum.MeanTicks += float64(r.Ticks)
	}
	if games > 0 {
		sum.MeanLength /= float64(games)
		sum.MeanTicks /= float64(games)
	}
	return sum, nil
}
