package action_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

const houseGame = `
title: The House on Hollow Lane
startup:
  room: foyer
  welcomeText:
    - Welcome to the house.
    - Mind the cobwebs.
celebration:
  - You found everything!
`

const houseRooms = `
rooms:
  foyer:
    name: Foyer
    lookText: Cobwebs drape every corner.
    hint: That portrait looks important.
    enterText:
      first: You stand in a dusty foyer.
      second: The foyer again.
    exits:
      north: {to: library, door: library_door}
      east: {to: kitchen}
      up: {to: attic, door: attic_hatch}
      west: {to: cellar, door: cellar_door}
  kitchen:
    name: Kitchen
    enterText:
      first: A cold kitchen.
    exits:
      west: {to: foyer}
  library:
    name: Library
    enterText:
      first: Rows of crumbling books.
    exits:
      south: {to: foyer, door: library_door}
  attic:
    name: Attic
    enterText:
      first: A cramped attic.
    exits:
      down: {to: foyer, door: attic_hatch}
  cellar:
    name: Cellar
    enterText:
      first: Damp and dark.
    exits:
      east: {to: foyer, door: cellar_door}
doors:
  library_door:
    locked: true
    open: false
    lockedMessage: The library door is locked tight.
  attic_hatch:
    visible: false
  cellar_door:
    open: false
`

const houseItems = `
items:
  portrait:
    display: a faded portrait
    typedNames: [portrait, painting]
    location: foyer
    locked: true
    actions:
      examine: {response: A stern old man glares back.}
  key:
    display: an iron key
    typedNames: [key, iron key]
    location: kitchen
    type: tools
    actions:
      take: {response: You pocket the key.}
      examine: {response: A small iron key.}
      use:
        response: The library door swings open.
        againResponse: Already unlocked.
        room: foyer
        wrongRoomResponse: There's no lock here.
        requiresHeld: true
        effects: {unlockDoors: [library_door], openDoors: [library_door]}
  pumpkin:
    display: a tiny pumpkin
    typedNames: [pumpkin]
    location: kitchen
    type: scavenger
    actions:
      take: {response: Got the pumpkin!, markAsFound: true}
  chest:
    display: an oak chest
    typedNames: [chest]
    location: library
    actions:
      open:
        response: You lift the heavy lid.
        againResponse: The chest is already open.
        effects: {revealItems: [amulet]}
  amulet:
    display: a silver amulet
    typedNames: [amulet]
    location: HIDDEN
    visible: false
    type: scavenger
    actions:
      take: {response: Got the amulet!, markAsFound: true}
  book:
    display: a dusty book
    typedNames: [book, tome]
    location: library
    revealsItem: note
    actions:
      examine: {response: Something slips from the pages.}
  note:
    display: a folded note
    typedNames: [note]
    location: HIDDEN
    visible: false
    type: notes
    actions:
      take: {response: Taken.}
      examine: {response: "It says: open up."}
  candy:
    display: a candy bar
    typedNames: [candy, bar]
    startLocation: player
    type: candy
    eatable: true
    actions:
      take: {}
      eat: {response: Delicious., removeItem: true}
      throw: {responses: [The candy bounces off the wall., The candy vanishes into the dark.]}
  lantern:
    display: a brass lantern
    typedNames: [lantern]
    startLocation: player
    type: tools
    droppable: false
    actions:
      take: {}
`

const housePuzzles = `
phrases:
  - room: foyer
    say: [openup]
    once: true
    response: A hatch creaks open above you.
    againResponse: The hatch is already open.
    effects: {revealDoors: [attic_hatch]}
`

func houseContent(t testing.TB) *world.Content {
	t.Helper()
	c, err := world.Load(world.Sources{
		Game:    []byte(houseGame),
		Rooms:   []byte(houseRooms),
		Items:   []byte(houseItems),
		Puzzles: []byte(housePuzzles),
	})
	require.NoError(t, err)
	return c
}

// game drives a dispatcher the way a session does, without echo or history.
type game struct {
	t      testing.TB
	d      *action.Dispatcher
	reg    *command.Registry
	player *action.Player
	logs   *observer.ObservedLogs
}

func newGame(t testing.TB, opts ...action.Option) *game {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	reg := command.DefaultRegistry()
	d, err := action.NewDispatcher(reg, zap.New(core), opts...)
	require.NoError(t, err)
	g := &game{
		t:      t,
		d:      d,
		reg:    reg,
		player: &action.Player{World: world.NewState(houseContent(t))},
		logs:   logs,
	}
	g.d.Begin(context.Background(), g.player)
	return g
}

func (g *game) do(line string) action.Result {
	g.t.Helper()
	return g.d.Dispatch(context.Background(), g.reg.Resolve(line), line, g.player)
}

func (g *game) world() *world.State { return g.player.World }

func texts(entries []output.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func flavor(s string) output.Entry     { return output.Line(output.Flavor, s) }
func chrome(s string) output.Entry     { return output.Line(output.Command, s) }
func errLine(s string) output.Entry    { return output.Line(output.Error, s) }
func underlined(s string) output.Entry { return output.Line(output.Underlined, s) }

// memStore is an in-memory SnapshotStore.
type memStore struct {
	mu    sync.Mutex
	snaps map[string]world.Snapshot
	err   error
}

func (m *memStore) Save(_ context.Context, key string, snap world.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.snaps == nil {
		m.snaps = make(map[string]world.Snapshot)
	}
	m.snaps[key] = snap
	return nil
}

func (m *memStore) Load(_ context.Context, key string) (world.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[key]
	if !ok {
		return world.Snapshot{}, action.ErrNoSnapshot
	}
	return snap, nil
}

type sayHook map[string]string

func (h sayHook) OnSay(_ context.Context, st *world.State, phrase string) (string, bool) {
	s, ok := h[st.CurrentRoom()+"/"+phrase]
	return s, ok
}
