package ui

import (
	"fmt"
	"strings"

	"mad-snake/internal/core"
	"mad-snake/internal/sims/snake"
)

type hudLine struct {
	text   string
	header bool
}

// hudLines flattens a parameter snapshot into panel rows: a header per
// group followed by "label  value" rows.
func hudLines(snap core.ParameterSnapshot) []hudLine {
	var lines []hudLine
	for i, g := range snap.Groups {
		if i > 0 {
			lines = append(lines, hudLine{})
		}
		lines = append(lines, hudLine{text: strings.ToUpper(g.Name), header: true})
		for _, p := range g.Params {
			lines = append(lines, hudLine{text: fmt.Sprintf("%-10s %s", p.Label, p.Value)})
		}
	}
	return lines
}

// bannerText is the end-of-game message, or "" while the game runs.
func bannerText(status snake.Status, length int) string {
	switch status {
	case snake.Won:
		return fmt.Sprintf("You won with length %d!", length)
	case snake.Lost:
		return fmt.Sprintf("You lost at length %d.", length)
	}
	return ""
}

const helpText = "arrows/WASD steer\nR restart  Q quit"
