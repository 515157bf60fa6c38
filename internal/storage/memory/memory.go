// Package memory keeps saved games in process memory. Saves do not survive a
// restart; it is the default backend for the single-player client.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// ErrSnapshotNotFound is returned when no saved game exists under a key.
var ErrSnapshotNotFound = fmt.Errorf("memory: %w", action.ErrNoSnapshot)

// Store is a concurrency-safe map of encoded snapshots.
type Store struct {
	mu    sync.RWMutex
	saves map[string][]byte
}

var _ action.SnapshotStore = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{saves: make(map[string][]byte)}
}

// Save stores snap under key, replacing any earlier save. The snapshot is
// encoded so later mutation of snap cannot reach the stored copy.
func (s *Store) Save(_ context.Context, key string, snap world.Snapshot) error {
	if key == "" {
		return errors.New("saving snapshot: empty key")
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[key] = data
	return nil
}

// Load decodes the snapshot stored under key.
func (s *Store) Load(_ context.Context, key string) (world.Snapshot, error) {
	s.mu.RLock()
	data, ok := s.saves[key]
	s.mu.RUnlock()
	if !ok {
		return world.Snapshot{}, ErrSnapshotNotFound
	}
	var snap world.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return world.Snapshot{}, fmt.Errorf("decoding snapshot %q: %w", key, err)
	}
	return snap, nil
}

// Keys lists the stored keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.saves))
	for k := range s.saves {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
