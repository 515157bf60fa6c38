package action

import (
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// arrive enters room and describes it with visit-dependent text.
func (c *Context) arrive(room string) {
	prior, err := c.World.Enter(room)
	if err != nil {
		c.Error(world.MsgRoomNotFound)
		return
	}
	r, _ := c.World.Room(room)
	text := r.Enter.ForVisit(prior)
	if text == "" {
		text = r.LookText
	}
	c.describe(r, text)
}

// lookAround describes the current room without recording a visit.
func (c *Context) lookAround() {
	r, ok := c.World.Room(c.World.CurrentRoom())
	if !ok {
		c.Error(world.MsgRoomNotFound)
		return
	}
	text := r.LookText
	if text == "" {
		text = r.Enter.First
	}
	c.describe(r, text)
}

// describe renders a room: its name, narrative, visible items and exits.
func (c *Context) describe(r *world.Room, text string) {
	c.Underlined(r.Name)
	if text != "" {
		c.Flavor(text)
	}

	if items := c.World.RoomItems(r.ID); len(items) > 0 {
		c.Chrome("You see:")
		for _, it := range items {
			c.Flavor("  " + it.Display)
		}
	}

	exits := c.World.AvailableExits(r.ID)
	if len(exits) == 0 {
		c.Chrome("No obvious exits.")
		return
	}
	names := make([]string, len(exits))
	for i, e := range exits {
		names[i] = string(e.Direction)
	}
	c.Chrome("Exits: " + strings.Join(names, ", "))
}
