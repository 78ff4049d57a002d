package snake

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"time"
)

// DefaultTickDuration is the time between two simulation steps.
const DefaultTickDuration = 300 * time.Millisecond

// Config controls the grid dimensions and pacing of a game.
type Config struct {
	Width  int
	Height int

	// Seed is informational for frontends that build the random source.
	Seed int64

	TickDuration time.Duration
}

// DefaultConfig returns the standard 10x10 configuration.
func DefaultConfig() Config {
	return Config{
		Width:        10,
		Height:       10,
		Seed:         42,
		TickDuration: DefaultTickDuration,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["tick_ms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.TickDuration = time.Duration(parsed) * time.Millisecond
		}
	}
	return c
}

// Bind attaches the game settings to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "w", c.Width, "grid width in tiles")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in tiles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for fruit placement")
	usage := fmt.Sprintf("milliseconds per simulation step (default %d)", c.TickDuration.Milliseconds())
	fs.Func("tick-ms", usage, func(v string) error {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		if ms <= 0 {
			return errors.New("must be positive")
		}
		c.TickDuration = time.Duration(ms) * time.Millisecond
		return nil
	})
}
