package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// ErrSnapshotNotFound is returned when no saved game exists under a key.
// It matches action.ErrNoSnapshot under errors.Is.
var ErrSnapshotNotFound = fmt.Errorf("postgres: %w", action.ErrNoSnapshot)

// SnapshotRepository persists world snapshots in the snapshots table, one
// row per save key.
type SnapshotRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

var _ action.SnapshotStore = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a SnapshotRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; logger must be non-nil.
func NewSnapshotRepository(db *pgxpool.Pool, logger *zap.Logger) *SnapshotRepository {
	return &SnapshotRepository{db: db, logger: logger}
}

// Save inserts or replaces the snapshot stored under key.
//
// Precondition: key must be non-empty.
// Postcondition: A later Load(key) returns snap.
func (r *SnapshotRepository) Save(ctx context.Context, key string, snap world.Snapshot) error {
	if key == "" {
		return errors.New("saving snapshot: empty key")
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO snapshots (id, save_key, title, version, state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (save_key) DO UPDATE
		SET title = EXCLUDED.title,
		    version = EXCLUDED.version,
		    state = EXCLUDED.state,
		    updated_at = NOW()`,
		uuid.New(), key, snap.Title, snap.Version, snap,
	)
	if err != nil {
		return fmt.Errorf("saving snapshot %q: %w", key, err)
	}
	r.logger.Debug("snapshot saved", zap.String("key", key))
	return nil
}

// Load returns the snapshot stored under key.
//
// Postcondition: Returns ErrSnapshotNotFound if no row exists.
func (r *SnapshotRepository) Load(ctx context.Context, key string) (world.Snapshot, error) {
	var snap world.Snapshot
	err := r.db.QueryRow(ctx, `SELECT state FROM snapshots WHERE save_key = $1`, key).Scan(&snap)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return world.Snapshot{}, ErrSnapshotNotFound
		}
		return world.Snapshot{}, fmt.Errorf("loading snapshot %q: %w", key, err)
	}
	return snap, nil
}

// Purge deletes snapshots that have not been written for longer than ttl.
//
// Precondition: ttl > 0.
// Postcondition: Returns the number of rows removed.
func (r *SnapshotRepository) Purge(ctx context.Context, ttl time.Duration) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM snapshots WHERE updated_at < NOW() - make_interval(secs => $1)`,
		ttl.Seconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("purging snapshots: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		r.logger.Info("expired snapshots purged", zap.Int64("count", n))
	}
	return tag.RowsAffected(), nil
}
