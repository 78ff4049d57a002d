package app

import (
	"flag"

	"mad-snake/internal/sims/snake"
)

// Config represents the command-line parameters for the window frontend.
type Config struct {
	Game     snake.Config
	Scale    int
	TPS      int
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Game: snake.DefaultConfig(), Scale: 48, TPS: 60, HUDWidth: 200}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.Game.Bind(fs)
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per tile")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels, 0 to hide")
}
