package world

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testGame = `
title: Test Hollow
startup:
  room: yard
  welcomeText:
    - Welcome.
celebration:
  - You found everything!
`

const testRooms = `
rooms:
  yard:
    name: Front Yard
    lookText: A patchy lawn.
    enterText:
      first: You step into the yard.
      second: The yard again.
    exits:
      north: {to: porch}
      east: {to: shed, door: shed_door}
      west: {to: garden, door: hedge_gap}
  porch:
    name: Porch
    enterText:
      first: A creaky porch.
    exits:
      south: {to: yard}
  shed:
    name: Shed
    enterText:
      first: Dusty shed.
      repeat: Still dusty.
    exits:
      west: {to: yard, door: shed_door}
  garden:
    name: Garden
    enterText:
      first: Overgrown.
    exits: {}
doors:
  shed_door:
    visible: true
    locked: true
    open: false
    lockedMessage: A rusty padlock holds the shed shut.
  hedge_gap:
    visible: false
`

const testItems = `
items:
  key:
    display: a brass key
    typedNames: [key, brass key]
    location: porch
    type: tools
    actions:
      take: {response: You pocket the key., addToInventory: true}
      examine: {response: Stamped SHED.}
      use:
        response: The padlock springs open.
        againResponse: It's already unlocked.
        room: yard
        wrongRoomResponse: Nothing here to unlock.
        requiresHeld: true
        effects: {unlockDoors: [shed_door], openDoors: [shed_door]}
  mailbox:
    display: a mailbox
    typedNames: [mailbox, box]
    location: yard
    revealsItem: letter
    actions:
      examine: {response: An old mailbox.}
  letter:
    display: a letter
    typedNames: [letter]
    location: HIDDEN
    visible: false
    type: notes
    actions:
      take: {response: Taken.}
      examine: {response: "It reads: say pumpkin."}
  candy:
    display: a candy bar
    typedNames: [candy, bar]
    startLocation: player
    type: candy
    eatable: true
    actions:
      take: {response: Yum later.}
      eat: {response: Delicious., removeItem: true}
  decoy:
    display: a wooden key
    typedNames: [key]
    location: shed
    actions:
      take: {response: A wooden key.}
  bat:
    display: a plastic bat
    typedNames: [bat]
    location: shed
    type: scavenger
    actions:
      take: {response: Got the bat!, markAsFound: true}
  ghost:
    display: a ghost
    typedNames: [ghost]
    location: yard
    includeInGame: false
`

const testPuzzles = `
phrases:
  - room: garden
    say: [pumpkin]
    once: true
    response: The hedge rustles.
    againResponse: Nothing more happens.
    effects: {revealDoors: [hedge_gap], setFlags: [hedge]}
`

func testSources() Sources {
	return Sources{
		Game:    []byte(testGame),
		Rooms:   []byte(testRooms),
		Items:   []byte(testItems),
		Puzzles: []byte(testPuzzles),
	}
}

func testContent(t testing.TB) *Content {
	t.Helper()
	c, err := Load(testSources())
	require.NoError(t, err)
	return c
}
