// Atlas - operator service for the demo robot
//
// Runs an optional YAML command script against a session, journals outcomes
// to SQLite and, when ATLAS_PORT is set, serves the operator API until
// interrupted.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/go-atlas/internal/config"
	"github.com/teslashibe/go-atlas/internal/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Init(log.Options{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Error("atlas failed", "err", err)
		os.Exit(1)
	}
}
