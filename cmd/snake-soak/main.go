package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"mad-snake/internal/autopilot"
	"mad-snake/internal/sims/snake"
)

func main() {
	games := flag.Int("games", 200, "number of games to play")
	maxTicks := flag.Int("max-ticks", 5000, "tick limit per game")
	workers := flag.Int("workers", runtime.NumCPU(), "parallel games")
	verbose := flag.Bool("v", false, "print every game")
	cfg := snake.DefaultConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	start := time.Now()
	sum, err := autopilot.Soak(cfg, *games, *maxTicks, *workers)
	if err != nil {
		log.Fatalf("soak: %v", err)
	}

	if *verbose {
		for _, r := range sum.Results {
			fmt.Printf("seed %d: %s after %d ticks, length %d\n", r.Seed, r.Status, r.Ticks, r.Length)
		}
	}
	fmt.Printf("%d games on %dx%d in %s: won %d, lost %d, timed out %d\n",
		sum.Games, cfg.Width, cfg.Height, time.Since(start).Round(time.Millisecond), sum.Won, sum.Lost, sum.Timeout)
	fmt.Printf("mean length %.2f, mean ticks %.1f\n", sum.MeanLength, sum.MeanTicks)
}
