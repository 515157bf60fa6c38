package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func setupStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	s := New(client, ttl, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func snapshotIn(room string) world.Snapshot {
	return world.Snapshot{
		Version:     world.SnapshotVersion,
		Title:       "Haunted House",
		CurrentRoom: room,
		Visited:     []string{"porch", room},
		Flags:       []string{"bell_rung"},
		Doors:       map[string]world.DoorSnapshot{"front": {Visible: true, Locked: false, Open: true}},
		Items: map[string]world.ItemSnapshot{
			"chest": {Location: world.Location(room), Visible: true, Opened: world.Reached},
		},
		Removed:    map[string]bool{},
		Phrases:    []int{},
		Celebrated: true,
	}
}

func TestStore_SaveLoad(t *testing.T) {
	s, mr := setupStore(t, time.Hour)
	ctx := context.Background()
	want := snapshotIn("hall")

	require.NoError(t, s.Save(ctx, "alice:default", want))
	assert.True(t, mr.Exists(KeyPrefix+"alice:default"))

	got, err := s.Load(ctx, "alice:default")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s, _ := setupStore(t, time.Hour)
	_, err := s.Load(context.Background(), "nobody:default")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, err, action.ErrNoSnapshot)
}

func TestStore_Expiry(t *testing.T) {
	s, mr := setupStore(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, "bob:default", snapshotIn("hall")))
	assert.Equal(t, time.Minute, mr.TTL(KeyPrefix+"bob:default"))

	mr.FastForward(2 * time.Minute)
	_, err := s.Load(ctx, "bob:default")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestStore_ZeroTTLKeepsForever(t *testing.T) {
	s, mr := setupStore(t, 0)
	require.NoError(t, s.Save(context.Background(), "carol:default", snapshotIn("hall")))
	assert.Equal(t, time.Duration(0), mr.TTL(KeyPrefix+"carol:default"))
}

func TestStore_CorruptPayload(t *testing.T) {
	s, mr := setupStore(t, time.Hour)
	require.NoError(t, mr.Set(KeyPrefix+"dave:default", "{not json"))
	_, err := s.Load(context.Background(), "dave:default")
	require.Error(t, err)
	assert.NotErrorIs(t, err, action.ErrNoSnapshot)
}

func TestStore_EmptyKey(t *testing.T) {
	s, _ := setupStore(t, time.Hour)
	assert.Error(t, s.Save(context.Background(), "", snapshotIn("hall")))
}

func TestStore_ServerDown(t *testing.T) {
	s, mr := setupStore(t, time.Hour)
	mr.Close()
	err := s.Save(context.Background(), "erin:default", snapshotIn("hall"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis set failed")
}

func TestNewStore_PingsServer(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := NewStore(context.Background(), config.RedisConfig{Addr: mr.Addr()}, time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestNewStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := NewStore(ctx, config.RedisConfig{Addr: addr}, time.Hour, zaptest.NewLogger(t))
	assert.Error(t, err)
}
