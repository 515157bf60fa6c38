// Package redis stores saved games in Redis with a sliding expiry, so the
// telnet server can share saves across restarts without a database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// KeyPrefix namespaces every snapshot key.
const KeyPrefix = "adventure:snapshot:"

// ErrSnapshotNotFound is returned when no saved game exists under a key.
var ErrSnapshotNotFound = fmt.Errorf("redis: %w", action.ErrNoSnapshot)

// Store is a SnapshotStore backed by a Redis client.
type Store struct {
	client goredis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

var _ action.SnapshotStore = (*Store)(nil)

// NewStore connects to the server named by cfg and verifies it with a ping.
//
// Precondition: cfg.Addr must be non-empty; logger must be non-nil.
// Postcondition: Returns a ready Store or a non-nil error.
func NewStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	s := New(client, ttl, logger)
	if err := s.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return s, nil
}

// New wraps an existing client. A ttl of zero keeps saves forever.
func New(client goredis.UniversalClient, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: logger}
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Save writes snap under key and restarts its expiry.
func (s *Store) Save(ctx context.Context, key string, snap world.Snapshot) error {
	if key == "" {
		return errors.New("saving snapshot: empty key")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot %q: %w", key, err)
	}
	if err := s.client.Set(ctx, KeyPrefix+key, data, s.ttl).Err(); err != nil {
		s.logger.Error("redis SET failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redis set failed: %w", err)
	}
	s.logger.Debug("snapshot saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// Load reads the snapshot under key.
//
// Postcondition: Returns ErrSnapshotNotFound when the key is absent or expired.
func (s *Store) Load(ctx context.Context, key string) (world.Snapshot, error) {
	data, err := s.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return world.Snapshot{}, ErrSnapshotNotFound
		}
		s.logger.Error("redis GET failed", zap.String("key", key), zap.Error(err))
		return world.Snapshot{}, fmt.Errorf("redis get failed: %w", err)
	}
	var snap world.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return world.Snapshot{}, fmt.Errorf("decoding snapshot %q: %w", key, err)
	}
	return snap, nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}
