// Package app assembles a playable game from configuration: the snapshot
// store, the hint provider, the Lua say hooks and the command dispatcher.
// Both the terminal client and the telnet server build on it.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/hint"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/scripting"
	"github.com/cory-johannsen/adventure/internal/storage/memory"
	"github.com/cory-johannsen/adventure/internal/storage/postgres"
	"github.com/cory-johannsen/adventure/internal/storage/redis"
)

// Storage is the configured snapshot store.
type Storage struct {
	Store action.SnapshotStore
	// Pool is non-nil for the postgres backend so callers can watch it.
	Pool *postgres.Pool
	// Snapshots is non-nil for the postgres backend.
	Snapshots *postgres.SnapshotRepository
}

// NewStorage connects the backend named by cfg.Storage.
//
// Precondition: cfg must have passed Validate.
// Postcondition: Returns the store and a cleanup that releases its
// connections, or a non-nil error.
func NewStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Storage, func(), error) {
	start := time.Now()
	switch cfg.Storage.Backend {
	case config.BackendMemory, "":
		logger.Info("using in-memory saves")
		return &Storage{Store: memory.New()}, func() {}, nil

	case config.BackendRedis:
		store, err := redis.NewStore(ctx, cfg.Redis, cfg.Storage.SnapshotTTL, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return &Storage{Store: store}, func() { _ = store.Close() }, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(start)),
		)
		repo := postgres.NewSnapshotRepository(pool.DB(), logger)
		if ttl := cfg.Storage.SnapshotTTL; ttl > 0 {
			if _, err := repo.Purge(ctx, ttl); err != nil {
				logger.Warn("purging expired snapshots", zap.Error(err))
			}
		}
		return &Storage{Store: repo, Pool: pool, Snapshots: repo}, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// NewHints returns the configured hint provider. The anthropic provider
// falls back to the static one.
func NewHints(cfg config.HintsConfig, logger *zap.Logger) hint.Provider {
	if cfg.Provider == config.HintsAnthropic {
		logger.Info("using model hints", zap.String("model", cfg.Model))
		return hint.NewLLM(cfg.APIKey, cfg.Model, cfg.MaxTokens, cfg.Timeout, hint.Static{}, logger)
	}
	return hint.Static{}
}

// LoadContent reads and validates the content dir.
func LoadContent(cfg config.GameConfig) (*world.Content, error) {
	return world.LoadDir(cfg.ContentDir)
}

// NewScripts loads the Lua hooks named by the game document's scriptDir.
// Content without one yields a nil manager.
//
// Postcondition: Returns the manager (possibly nil) and a cleanup that
// closes its VMs, or a non-nil error.
func NewScripts(content *world.Content, cfg config.GameConfig, picker *dice.Picker, logger *zap.Logger) (*scripting.Manager, func(), error) {
	if content.ScriptDir == "" {
		logger.Debug("content has no scripts")
		return nil, func() {}, nil
	}
	mgr := scripting.NewManager(picker, logger)
	if err := mgr.LoadDir(content.ScriptDir, cfg.ScriptInstructionLimit); err != nil {
		mgr.Close()
		return nil, nil, err
	}
	return mgr, mgr.Close, nil
}

// NewPicker returns the shared random picker.
func NewPicker(logger *zap.Logger) *dice.Picker {
	return dice.NewPicker(dice.NewCryptoSource(), logger)
}

// NewGame binds the dispatcher for content to the store, hints and scripts.
// scripts may be nil. The command table comes from the content dir.
//
// Postcondition: Returns a ready Game or the first error.
func NewGame(cfg config.GameConfig, content *world.Content, logger *zap.Logger, hints hint.Provider, storage *Storage, scripts *scripting.Manager) (*session.Game, error) {
	opts := []action.Option{
		action.WithRandom(dice.NewCryptoSource()),
		action.WithHints(hints),
		action.WithStore(storage.Store),
	}
	if scripts != nil {
		opts = append(opts, action.WithSayHook(scripting.SayHook{Manager: scripts}))
	}
	reg, err := session.LoadCommands(cfg.ContentDir, logger)
	if err != nil {
		return nil, err
	}
	g, err := session.NewGame(content, reg, logger, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("game ready",
		zap.String("title", content.Title),
		zap.Int("rooms", len(content.Rooms)),
		zap.Int("items", len(content.Items)),
		zap.Bool("scripts", scripts != nil),
	)
	return g, nil
}

// SessionOptions are the per-session settings every front end applies.
func SessionOptions(cfg config.GameConfig) []session.Option {
	return []session.Option{session.WithHistoryLimit(cfg.HistoryLimit), session.WithSaves()}
}
