package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/output"
)

func newTestSession(t testing.TB, g *Game, owner string) *Session {
	t.Helper()
	return New(g, owner, output.NewBuffer(), zapNop())
}

func TestOutbox_Push(t *testing.T) {
	o := NewOutbox("test", 4)
	require.NoError(t, o.Push([]output.Entry{output.Line(output.Flavor, "hello")}))

	batch := <-o.Events()
	assert.Equal(t, "hello", batch[0].Text)
}

func TestOutbox_PushClosed(t *testing.T) {
	o := NewOutbox("test", 4)
	require.NoError(t, o.Close())
	assert.True(t, o.IsClosed())
	assert.Error(t, o.Push(nil))

	o.Append(output.Blank())
	assert.Equal(t, int64(1), o.Dropped())
}

func TestOutbox_PushFull(t *testing.T) {
	o := NewOutbox("test", 1)
	require.NoError(t, o.Push([]output.Entry{output.Blank()}))
	err := o.Push([]output.Entry{output.Blank()})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "buffer full")
}

func TestOutbox_AppendCopiesBatch(t *testing.T) {
	o := NewOutbox("test", 2)
	entries := []output.Entry{output.Line(output.Flavor, "a")}
	o.Append(entries...)
	entries[0].Text = "changed"

	batch := <-o.Events()
	assert.Equal(t, "a", batch[0].Text)
}

func TestOutbox_CloseIdempotent(t *testing.T) {
	o := NewOutbox("test", 4)
	require.NoError(t, o.Close())
	require.NoError(t, o.Close())
	assert.True(t, o.IsClosed())
}

func TestManager_Add(t *testing.T) {
	g := testGame(t)
	m := NewManager()
	s := newTestSession(t, g, "alice")
	require.NoError(t, m.Add(s))
	assert.Equal(t, 1, m.Count())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestManager_AddDuplicateOwner(t *testing.T) {
	g := testGame(t)
	m := NewManager()
	require.NoError(t, m.Add(newTestSession(t, g, "alice")))
	err := m.Add(newTestSession(t, g, "alice"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")
}

func TestManager_Remove(t *testing.T) {
	g := testGame(t)
	m := NewManager()
	s := newTestSession(t, g, "alice")
	require.NoError(t, m.Add(s))

	require.NoError(t, m.Remove(s.ID))
	assert.Equal(t, 0, m.Count())
	_, ok := m.GetByOwner("alice")
	assert.False(t, ok)

	assert.Error(t, m.Remove(s.ID))
}

func TestManager_GetByOwner(t *testing.T) {
	g := testGame(t)
	m := NewManager()
	s := newTestSession(t, g, "alice")
	require.NoError(t, m.Add(s))

	got, ok := m.GetByOwner("alice")
	assert.True(t, ok)
	assert.Equal(t, s.ID, got.ID)

	_, ok = m.GetByOwner("bob")
	assert.False(t, ok)
}

func TestManager_ConcurrentAddRemove(t *testing.T) {
	g := testGame(t)
	m := NewManager()
	const n = 100
	sessions := make([]*Session, n)
	for i := range sessions {
		sessions[i] = newTestSession(t, g, fmt.Sprintf("player%d", i))
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = m.Add(sessions[i])
		}(i)
	}
	wg.Wait()
	assert.Equal(t, n, m.Count())
	assert.Len(t, m.Owners(), n)

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = m.Remove(sessions[i].ID)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, m.Count())
	assert.Empty(t, m.Owners())
}

func TestPropertyOwnerIndexConsistent(t *testing.T) {
	g := testGame(t)
	rapid.Check(t, func(rt *rapid.T) {
		m := NewManager()
		n := rapid.IntRange(1, 20).Draw(rt, "num_players")
		sessions := make([]*Session, n)
		for i := range sessions {
			sessions[i] = New(g, fmt.Sprintf("p%d", i), output.NewBuffer(), zapNop())
			_ = m.Add(sessions[i])
		}
		removes := rapid.IntRange(0, n).Draw(rt, "num_removes")
		for i := 0; i < removes; i++ {
			idx := rapid.IntRange(0, n-1).Draw(rt, "remove")
			_ = m.Remove(sessions[idx].ID)
		}
		if len(m.Owners()) != m.Count() {
			rt.Fatalf("owner index %d != session count %d", len(m.Owners()), m.Count())
		}
		for _, owner := range m.Owners() {
			s, ok := m.GetByOwner(owner)
			if !ok || s.Owner != owner {
				rt.Fatalf("owner %q does not map back to its session", owner)
			}
		}
	})
}
