// Package main runs the multi-player telnet server for the adventure.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "content directory; overrides game.content_dir")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Game.ContentDir = *contentDir
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	srv, cleanup, err := initServer(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("initializing server", zap.Error(err))
	}
	defer cleanup()

	logger.Info("game server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("storage", cfg.Storage.Backend),
	)

	if err := srv.lifecycle().Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}
