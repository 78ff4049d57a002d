package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"mad-snake/internal/autopilot"
	"mad-snake/internal/core"
	"mad-snake/internal/sims/snake"
)

type scenarioResult struct {
	size    core.Size
	summary autopilot.Summary
	err     error
}

func (r scenarioResult) winRate() float64 {
	if r.summary.Games == 0 {
		return 0
	}
	return float64(r.summary.Won) / float64(r.summary.Games)
}

func main() {
	sizesFlag := flag.String("sizes", "4x4,6x6,8x8,10x10,12x12,16x9,20x20", "comma separated WxH grids to sweep")
	games := flag.Int("games", 50, "games per grid")
	maxTicks := flag.Int("max-ticks", 20000, "tick limit per game")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seed := flag.Int64("seed", 1, "seed of the first game on every grid")
	flag.Parse()

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatalf("sizes: %v", err)
	}

	fmt.Printf("Sweeping %d grids (%d workers, %d games each)\n", len(sizes), *workers, *games)

	jobs := make(chan core.Size)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for size := range jobs {
				cfg := snake.DefaultConfig()
				cfg.Width, cfg.Height, cfg.Seed = size.W, size.H, *seed
				sum, err := autopilot.Soak(cfg, *games, *maxTicks, 1)
				results <- scenarioResult{size: size, summary: sum, err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range sizes {
			jobs <- s
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		if res.err != nil {
			log.Printf("%dx%d: %v", res.size.W, res.size.H, res.err)
			continue
		}
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].winRate() != all[j].winRate() {
			return all[i].winRate() > all[j].winRate()
		}
		return all[i].summary.MeanLength > all[j].summary.MeanLength
	})

	fmt.Printf("\nResults by win rate (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i, res := range all {
		s := res.summary
		fill := s.MeanLength / float64(res.size.W*res.size.H)
		fmt.Printf("%2d) %3dx%-3d won=%3d lost=%3d timeout=%3d win=%5.1f%% length=%6.2f fill=%5.1f%% ticks=%8.1f\n",
			i+1, res.size.W, res.size.H, s.Won, s.Lost, s.Timeout, 100*res.winRate(), s.MeanLength, 100*fill, s.MeanTicks)
	}
}

func parseSizes(v string) ([]core.Size, error) {
	var sizes []core.Size
	for _, field := range strings.Split(v, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		ws, hs, ok := strings.Cut(field, "x")
		if !ok {
			return nil, fmt.Errorf("%q is not WxH", field)
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", field, err)
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", field, err)
		}
		sizes = append(sizes, core.Size{W: w, H: h})
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no grids in %q", v)
	}
	return sizes, nil
}
