package action_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

var walkCommands = []string{
	"north", "south", "east", "west", "up", "down", "look", "inventory",
	"take key", "take pumpkin", "take amulet", "take note", "drop key", "drop candy",
	"examine book", "examine key", "use key", "open chest", "eat candy", "say open up",
	"throw lantern", "sa", "xyzzy", "t", "quit", "status",
}

func TestProperty_DispatchInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := newGame(t)
		lines := rapid.SliceOfN(rapid.SampledFrom(walkCommands), 1, 40).Draw(rt, "lines")
		for _, line := range lines {
			res := g.do(line)
			resolved := g.reg.Resolve(line).Kind.Resolved()
			if res.Valid != resolved {
				rt.Fatalf("%q: Valid=%v but resolved=%v", line, res.Valid, resolved)
			}
			room := g.world().CurrentRoom()
			if _, ok := g.world().Room(room); !ok {
				rt.Fatalf("%q: current room %q does not exist", line, room)
			}
			for _, it := range g.world().RoomItems(room) {
				if it.Location == world.Hidden {
					rt.Fatalf("%q: hidden item %q listed in room", line, it.ID)
				}
			}
			for _, it := range g.world().Inventory() {
				if !it.Carried() {
					rt.Fatalf("%q: inventory holds uncarried item %q", line, it.ID)
				}
			}
		}
	})
}

func TestProperty_TakeDropRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		g := newGame(t)
		g.do("east")
		before, _ := g.world().Item("key")
		visits := g.world().VisitCount("kitchen")

		n := rapid.IntRange(1, 5).Draw(rt, "rounds")
		for i := 0; i < n; i++ {
			take := g.do("take key")
			assert.True(rt, take.Valid)
			it, _ := g.world().Item("key")
			require.True(rt, it.Carried())

			drop := g.do("drop key")
			assert.True(rt, drop.Valid)
		}

		after, _ := g.world().Item("key")
		assert.Equal(rt, before.Location, after.Location)
		assert.Equal(rt, "kitchen", g.world().CurrentRoom())
		assert.Equal(rt, visits, g.world().VisitCount("kitchen"))
	})
}
