// Package main checks a content directory: it loads and validates the
// documents, binds the command table and compiles any Lua hooks.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/app"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/observability"
)

func main() {
	contentDir := flag.String("content", "content/halloween", "content directory to validate")
	flag.Parse()

	logger, err := observability.NewLogger(config.LoggingConfig{Level: "warn", Format: "console"})
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	game, err := session.LoadGame(*contentDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid content in %s: %v\n", *contentDir, err)
		os.Exit(1)
	}

	_, closeScripts, err := app.NewScripts(game.Content, config.GameConfig{ContentDir: *contentDir}, app.NewPicker(logger), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid scripts in %s: %v\n", *contentDir, err)
		os.Exit(1)
	}
	closeScripts()

	logger.Debug("content valid", zap.String("dir", *contentDir))
	fmt.Fprintf(os.Stdout, "%s: %d rooms, %d doors, %d items, %d phrases, %d commands\n",
		game.Content.Title,
		len(game.Content.Rooms),
		len(game.Content.Doors),
		len(game.Content.Items),
		len(game.Content.Phrases),
		len(game.Registry.Commands()),
	)
}
