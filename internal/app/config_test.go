package app

import (
	"flag"
	"testing"
	"time"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-w", "16", "-h", "12", "-tick-ms", "120", "-scale", "20", "-seed", "9"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Game.Width != 16 || cfg.Game.Height != 12 || cfg.Game.Seed != 9 {
		t.Fatalf("game config = %+v", cfg.Game)
	}
	if cfg.Game.TickDuration != 120*time.Millisecond {
		t.Fatalf("tick = %s", cfg.Game.TickDuration)
	}
	if cfg.Scale != 20 || cfg.TPS != 60 {
		t.Fatalf("scale/tps = %d/%d", cfg.Scale, cfg.TPS)
	}
}

func TestConfigBindRejectsBadTick(t *testing.T) {
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(discard{})
	NewConfig().Bind(fs)
	for _, v := range []string{"0", "-5", "fast"} {
		if err := fs.Parse([]string{"-tick-ms", v}); err == nil {
			t.Errorf("-tick-ms %s accepted", v)
		}
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
