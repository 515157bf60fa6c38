package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/app"
	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
	"github.com/cory-johannsen/adventure/internal/server"
)

const (
	dbCheckInterval = 30 * time.Second
	dbCheckTimeout  = 5 * time.Second
	dbHealthName    = "database"
)

// gameServer holds the long-lived pieces the lifecycle runs.
type gameServer struct {
	cfg      config.Config
	acceptor *telnet.Acceptor
	health   *server.HealthService
	storage  *app.Storage
	logger   *zap.Logger
}

func newGameServer(cfg config.Config, acceptor *telnet.Acceptor, health *server.HealthService, storage *app.Storage, logger *zap.Logger) *gameServer {
	return &gameServer{cfg: cfg, acceptor: acceptor, health: health, storage: storage, logger: logger}
}

// lifecycle registers the telnet acceptor, the health endpoint when a port
// is configured, and the database watch for the postgres backend.
func (s *gameServer) lifecycle() *server.Lifecycle {
	lc := server.NewLifecycle(s.logger)
	lc.Add("telnet", s.acceptor)

	if s.cfg.Health.Enabled() {
		lc.Add("health", s.health)
	}

	if pool := s.storage.Pool; pool != nil {
		s.health.SetServing(dbHealthName, true)
		watchCtx, cancel := context.WithCancel(context.Background())
		lc.Add("postgres", &server.FuncService{
			ServeFn: func() error {
				_ = pool.Watch(watchCtx, dbCheckInterval, dbCheckTimeout, func(err error) {
					if err != nil {
						s.logger.Warn("database health check failed", zap.Error(err))
					}
					s.health.SetServing(dbHealthName, err == nil)
				})
				return nil
			},
			StopFn: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}
	return lc
}
