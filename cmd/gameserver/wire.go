//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/app"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/handlers"
	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/server"
)

func initServer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*gameServer, func(), error) {
	wire.Build(
		wire.FieldsOf(new(config.Config), "Game", "Telnet", "Health", "Hints"),
		app.NewStorage,
		app.NewHints,
		app.LoadContent,
		app.NewPicker,
		app.NewScripts,
		app.NewGame,
		app.SessionOptions,
		session.NewManager,
		handlers.NewGameHandler,
		wire.Bind(new(telnet.SessionHandler), new(*handlers.GameHandler)),
		telnet.NewAcceptor,
		server.NewHealthService,
		newGameServer,
	)
	return nil, nil, nil
}
