package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/world"
	"github.com/cory-johannsen/adventure/internal/storage/postgres"
	"github.com/cory-johannsen/adventure/internal/testutil"
)

func setupRepo(t *testing.T) (*postgres.SnapshotRepository, *testutil.PostgresContainer) {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewSnapshotRepository(pc.RawPool, zaptest.NewLogger(t)), pc
}

func sampleSnapshot(room string) world.Snapshot {
	return world.Snapshot{
		Version:     world.SnapshotVersion,
		Title:       "Haunted House",
		CurrentRoom: room,
		Visited:     []string{"porch", room},
		Flags:       []string{"bell_rung"},
		Doors:       map[string]world.DoorSnapshot{"front": {Visible: true, Open: true}},
		Items: map[string]world.ItemSnapshot{
			"candle": {Location: world.Inventory, Visible: true, Found: true},
		},
		Removed: map[string]bool{"cookie": false},
		Phrases: []int{0},
	}
}

func TestSnapshotRepository_SaveLoad(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	want := sampleSnapshot("hall")

	require.NoError(t, repo.Save(ctx, "alice:default", want))
	got, err := repo.Load(ctx, "alice:default")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotRepository_SaveOverwrites(t *testing.T) {
	repo, pc := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "bob:default", sampleSnapshot("hall")))
	require.NoError(t, repo.Save(ctx, "bob:default", sampleSnapshot("attic")))

	got, err := repo.Load(ctx, "bob:default")
	require.NoError(t, err)
	assert.Equal(t, "attic", got.CurrentRoom)

	var rows int
	require.NoError(t, pc.RawPool.QueryRow(ctx,
		`SELECT COUNT(*) FROM snapshots WHERE save_key = $1`, "bob:default").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	repo, _ := setupRepo(t)
	_, err := repo.Load(context.Background(), "nobody:default")
	assert.ErrorIs(t, err, postgres.ErrSnapshotNotFound)
	assert.ErrorIs(t, err, action.ErrNoSnapshot)
}

func TestSnapshotRepository_SaveEmptyKey(t *testing.T) {
	repo, _ := setupRepo(t)
	assert.Error(t, repo.Save(context.Background(), "", sampleSnapshot("hall")))
}

func TestSnapshotRepository_Purge(t *testing.T) {
	repo, pc := setupRepo(t)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, repo.Save(ctx, fmt.Sprintf("p%d:default", i), sampleSnapshot("hall")))
	}
	_, err := pc.RawPool.Exec(ctx,
		`UPDATE snapshots SET updated_at = NOW() - INTERVAL '2 days' WHERE save_key <> 'p0:default'`)
	require.NoError(t, err)

	n, err := repo.Purge(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.Load(ctx, "p0:default")
	assert.NoError(t, err)
	_, err = repo.Load(ctx, "p1:default")
	assert.ErrorIs(t, err, postgres.ErrSnapshotNotFound)
}

func TestPool_Health(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	assert.NoError(t, pc.Pool.Health(context.Background(), 2*time.Second))
}
