// Package main runs the adventure as a single-player terminal game.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/app"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/tui"
	"github.com/cory-johannsen/adventure/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and the environment")
	contentDir := flag.String("content", "", "content directory; overrides game.content_dir")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Game.ContentDir = *contentDir
	}

	// The terminal belongs to the game; logs only go to a file.
	logger := observability.Discard()
	if cfg.Logging.File != "" {
		if logger, err = observability.NewLogger(cfg.Logging); err != nil {
			log.Fatalf("initializing logger: %v", err)
		}
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error("game exited", zap.Error(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	storage, closeStorage, err := app.NewStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStorage()

	content, err := app.LoadContent(cfg.Game)
	if err != nil {
		return err
	}
	scripts, closeScripts, err := app.NewScripts(content, cfg.Game, app.NewPicker(logger), logger)
	if err != nil {
		return err
	}
	defer closeScripts()

	game, err := app.NewGame(cfg.Game, content, logger, app.NewHints(cfg.Hints, logger), storage, scripts)
	if err != nil {
		return err
	}
	return tui.Run(tui.New(ctx, game, owner(), logger, app.SessionOptions(cfg.Game)...))
}

// owner names the local player's saves after the OS account.
func owner() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
