package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PreservesOrderAndDefaults(t *testing.T) {
	c := testContent(t)

	assert.Equal(t, "Test Hollow", c.Title)
	assert.Equal(t, "yard", c.StartRoom)
	assert.Equal(t, []string{"Welcome."}, c.Welcome)

	var roomIDs []string
	for _, r := range c.Rooms {
		roomIDs = append(roomIDs, r.ID)
	}
	assert.Equal(t, []string{"yard", "porch", "shed", "garden"}, roomIDs)

	yard, ok := c.Room("yard")
	require.True(t, ok)
	require.Len(t, yard.Exits, 3)
	assert.Equal(t, Exit{Direction: North, To: "porch"}, yard.Exits[0])
	assert.Equal(t, Exit{Direction: East, To: "shed", Door: "shed_door"}, yard.Exits[1])

	var itemIDs []string
	for _, it := range c.Items {
		itemIDs = append(itemIDs, it.ID)
	}
	assert.Equal(t, []string{"key", "mailbox", "letter", "candy", "decoy", "bat"}, itemIDs, "excluded items are dropped")

	key := c.Items[0]
	assert.Equal(t, []string{"key", "brasskey"}, key.TypedNames)
	assert.True(t, key.Visible, "visible defaults to true")
	assert.True(t, key.Droppable, "droppable defaults to true")
	assert.True(t, key.Actions.Take.AddToInventory)

	assert.Equal(t, Inventory, c.Items[3].Location, "startLocation player starts carried")

	require.Len(t, c.Phrases, 1)
	assert.Equal(t, []string{"pumpkin"}, c.Phrases[0].Words)
}

func TestLoad_DoorDefaults(t *testing.T) {
	c := testContent(t)
	var gap *Door
	for _, d := range c.Doors {
		if d.ID == "hedge_gap" {
			gap = d
		}
	}
	require.NotNil(t, gap)
	assert.False(t, gap.Visible)
	assert.True(t, gap.Open, "open defaults to true")
}

func TestLoad_AcceptsJSON(t *testing.T) {
	src := Sources{
		Game:  []byte(`{"startup": {"room": "a"}}`),
		Rooms: []byte(`{"rooms": {"a": {"name": "A", "enterText": {"first": "X"}, "exits": {"north": {"to": "b"}}}, "b": {"name": "B", "exits": {}}}}`),
	}
	c, err := Load(src)
	require.NoError(t, err)
	assert.Len(t, c.Rooms, 2)
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	src := Sources{
		Game: []byte("startup: {room: nowhere}\n"),
		Rooms: []byte(`
rooms:
  a:
    name: A
    exits:
      north: {to: missing}
      south: {to: a, door: ghost_door}
`),
		Items: []byte(`
items:
  thing:
    typedNames: [thing]
    location: attic
    revealsItem: phantom
`),
	}
	_, err := Load(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRoom))
	assert.True(t, errors.Is(err, ErrUnknownDoor))
	assert.True(t, errors.Is(err, ErrUnknownItem))
	assert.Contains(t, err.Error(), `start room "nowhere"`)
	assert.Contains(t, err.Error(), `"attic"`)
}

func TestValidate_EffectReferences(t *testing.T) {
	src := testSources()
	src.Puzzles = []byte("phrases:\n  - say: [boo]\n    effects: {unlockDoors: [vault]}\n")
	_, err := Load(src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDoor))
}

func TestLoad_MalformedYAML(t *testing.T) {
	src := testSources()
	src.Rooms = []byte("rooms: [")
	_, err := Load(src)
	assert.ErrorContains(t, err, "parsing rooms YAML")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("game.yaml", testGame+"scriptDir: scripts\n")
	write("rooms.yml", testRooms)
	write("items.json", `{"items": {}}`)

	c, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
	assert.Empty(t, c.Phrases)
	assert.Equal(t, filepath.Join(dir, "scripts"), c.ScriptDir)
}

func TestLoadDir_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.yaml"), []byte(testGame), 0o644))
	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_ExcludedItemReferencesAreStripped(t *testing.T) {
	src := Sources{
		Game: []byte("title: Attic\nstartup:\n  room: attic\n"),
		Rooms: []byte(`
rooms:
  attic:
    name: Attic
    enterText: {first: Dusty.}
    exits: {}
`),
		Items: []byte(`
items:
  box:
    display: a box
    typedNames: [box]
    location: attic
    revealsItem: coin
    actions:
      open:
        response: The lid lifts.
        effects: {revealItems: [coin, key], unlockItems: [coin]}
  key:
    display: a key
    typedNames: [key]
    location: HIDDEN
    visible: false
  coin:
    display: a coin
    typedNames: [coin]
    location: HIDDEN
    includeInGame: false
`),
		Puzzles: []byte(`
phrases:
  - room: attic
    item: coin
    say: [heads]
    response: Tails.
  - room: attic
    say: [open sesame]
    effects: {revealItems: [coin]}
`),
	}

	c, err := Load(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"coin"}, c.Excluded)
	_, ok := c.Item("coin")
	assert.False(t, ok)

	box, ok := c.Item("box")
	require.True(t, ok)
	assert.Nil(t, box.RevealsItem)
	assert.Equal(t, []string{"key"}, box.Actions.Open.Effects.RevealItems)
	assert.Empty(t, box.Actions.Open.Effects.UnlockItems)

	require.Len(t, c.Phrases, 1)
	assert.Equal(t, []string{"opensesame"}, c.Phrases[0].Words)
	assert.Empty(t, c.Phrases[0].Effects.RevealItems)
	assert.Len(t, c.Stripped, 5)
}
