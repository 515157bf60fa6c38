package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

func snapshotIn(room string) world.Snapshot {
	return world.Snapshot{
		Version:     world.SnapshotVersion,
		Title:       "Test",
		CurrentRoom: room,
		Visited:     []string{room},
		Flags:       []string{},
		Doors:       map[string]world.DoorSnapshot{},
		Items:       map[string]world.ItemSnapshot{"key": {Location: world.Inventory, Visible: true}},
		Removed:     map[string]bool{},
		Phrases:     []int{},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	s := New()
	want := snapshotIn("hall")
	require.NoError(t, s.Save(context.Background(), "a", want))

	got, err := s.Load(context.Background(), "a")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	_, err := New().Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, err, action.ErrNoSnapshot)
}

func TestStore_SaveEmptyKey(t *testing.T) {
	assert.Error(t, New().Save(context.Background(), "", snapshotIn("hall")))
}

func TestStore_SavedCopyIsIsolated(t *testing.T) {
	s := New()
	snap := snapshotIn("hall")
	require.NoError(t, s.Save(context.Background(), "a", snap))
	snap.Visited[0] = "attic"
	snap.Items["key"] = world.ItemSnapshot{Location: world.Location("attic")}

	got, err := s.Load(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"hall"}, got.Visited)
	assert.Equal(t, world.Inventory, got.Items["key"].Location)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Save(context.Background(), fmt.Sprintf("k%02d", i), snapshotIn("hall")))
		}()
	}
	wg.Wait()
	assert.Len(t, s.Keys(), 20)
	assert.Equal(t, "k00", s.Keys()[0])
}

func TestProperty_LastSaveWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := New()
		rooms := rapid.SliceOfN(rapid.StringMatching(`[a-z]{1,8}`), 1, 10).Draw(t, "rooms")
		for _, r := range rooms {
			if err := s.Save(context.Background(), "slot", snapshotIn(r)); err != nil {
				t.Fatalf("save: %v", err)
			}
		}
		got, err := s.Load(context.Background(), "slot")
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got.CurrentRoom != rooms[len(rooms)-1] {
			t.Fatalf("expected %q, got %q", rooms[len(rooms)-1], got.CurrentRoom)
		}
	})
}
