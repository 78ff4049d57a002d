package term

import (
	"flag"
	"time"

	"mad-snake/internal/sims/snake"
)

// Config holds the terminal frontend settings.
type Config struct {
	Game snake.Config
	FPS  int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Game: snake.DefaultConfig(), FPS: 30}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	c.Game.Bind(fs)
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames drawn per second")
}

func (c Config) frameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FPS)
}
