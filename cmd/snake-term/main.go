package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"mad-snake/internal/term"
)

func main() {
	cfg := term.NewConfig()
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "append game log lines to this file")
	flag.Parse()

	// The screen owns the terminal, so logging goes to a file or nowhere.
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger := log.New(out, "snake-term ", log.LstdFlags)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("new screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}

	sess, err := term.NewSession(screen, *cfg, logger)
	if err != nil {
		screen.Fini()
		log.Fatalf("start game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = sess.Run(ctx)
	screen.Fini()
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
