package ui

import (
	"testing"

	"mad-snake/internal/core"
	"mad-snake/internal/sims/snake"
)

func TestHUDLinesFromSimulation(t *testing.T) {
	sim, err := snake.New(10, 10, core.NewRNG(1))
	if err != nil {
		t.Fatal(err)
	}
	lines := hudLines(sim.Parameters())

	var headers []string
	found := map[string]bool{}
	for _, l := range lines {
		if l.header {
			headers = append(headers, l.text)
		}
		found[l.text] = true
	}
	if len(headers) != 3 || headers[0] != "GRID" || headers[2] != "GAME" {
		t.Fatalf("headers = %v", headers)
	}
	for _, want := range []string{"Width      10", "Status     running", "Length     1"} {
		if !found[want] {
			t.Errorf("missing row %q in %v", want, lines)
		}
	}
}

func TestBannerText(t *testing.T) {
	if got := bannerText(snake.Running, 3); got != "" {
		t.Fatalf("running game should have no banner, got %q", got)
	}
	if got := bannerText(snake.Won, 4); got != "You won with length 4!" {
		t.Fatalf("won banner = %q", got)
	}
	if got := bannerText(snake.Lost, 2); got != "You lost at length 2." {
		t.Fatalf("lost banner = %q", got)
	}
}
