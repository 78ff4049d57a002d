//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"mad-snake/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	game, err := app.New(*cfg)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}

	w, h := game.Size()
	ebiten.SetWindowTitle("snake")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
