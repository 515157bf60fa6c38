package action

import (
	"fmt"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

func useItem(c *Context) error {
	return interact(c, "use", world.Use, func(a world.Actions) *world.UseAction { return a.Use })
}

func openItem(c *Context) error {
	return interact(c, "open", world.Open, func(a world.Actions) *world.UseAction { return a.Open })
}

// interact runs a use-style action. One-shot actions apply their effects the
// first time only and answer with AgainResponse afterwards.
func interact(c *Context, verb string, k world.Interaction, pick func(world.Actions) *world.UseAction) error {
	if c.Args == "" {
		c.Error(fmt.Sprintf("%s what?", capitalize(verb)))
		return nil
	}
	room := c.World.CurrentRoom()
	it, ok := c.World.FindItem(c.Target(), func(it world.Item) bool {
		return it.Accessible(room) && pick(it.Actions) != nil
	})
	if !ok {
		if _, seen := c.World.FindItem(c.Target(), func(it world.Item) bool { return it.Accessible(room) }); seen {
			c.Error(fmt.Sprintf("You can't %s that.", verb))
			return nil
		}
		c.Error(MsgNotHere)
		return nil
	}

	ua := pick(it.Actions)
	switch {
	case ua.RequiresHeld && !it.Carried():
		c.Error(MsgMustHold)
		return nil
	case ua.Room != "" && ua.Room != room:
		c.Flavor(orDefault(ua.WrongRoomResponse, MsgNothingHappens))
		return nil
	case it.Locked:
		c.Flavor(orDefault(ua.LockedResponse, MsgLocked))
		return nil
	case !ua.OneShot():
		c.Flavor(orDefault(ua.Response, MsgNothingHappens))
		return nil
	}

	first, err := c.World.Reach(it.ID, k)
	if err != nil {
		return err
	}
	if !first {
		c.Flavor(orDefault(ua.AgainResponse, orDefault(ua.Response, MsgNothingHappens)))
		return nil
	}
	c.Flavor(orDefault(ua.Response, MsgNothingHappens))
	return c.applyEffects(ua.Effects, it.Carried())
}

// applyEffects mutates the world and re-renders the room when something new
// became visible. Revealed items go to the inventory when held is true.
func (c *Context) applyEffects(e world.Effects, held bool) error {
	to := world.Location(c.World.CurrentRoom())
	if held {
		to = world.Inventory
	}
	if err := c.World.ApplyEffects(e, to); err != nil {
		return err
	}
	if e.Reveals() {
		c.Blank()
		c.lookAround()
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
