package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"mad-snake/internal/sshhost"
)

func main() {
	configFile := flag.String("config", "./config.json", "path to a JSON config file")
	flag.Parse()

	cfg := sshhost.DefaultConfig()
	if _, err := os.Stat(*configFile); err == nil {
		loaded, err := sshhost.LoadConfig(*configFile)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Fatal(err)
	}

	hostKey, authorized, err := cfg.LoadKeys()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := sshhost.NewServer(cfg, hostKey, authorized, nil)
	if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}
