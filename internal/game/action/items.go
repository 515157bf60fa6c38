package action

import (
	"fmt"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

func take(c *Context) error {
	if c.Args == "" {
		c.Error("Take what?")
		return nil
	}
	room := c.World.CurrentRoom()
	it, ok := c.World.FindItem(c.Target(), func(it world.Item) bool {
		return it.InRoom(room) && !it.Locked && it.Actions.Take != nil
	})
	if !ok {
		c.Error(fmt.Sprintf("You don't see any %s here that you can take.", c.Args))
		return nil
	}

	ta := it.Actions.Take
	resp := ta.Response
	if resp == "" {
		resp = MsgTaken
	}
	c.Flavor(resp)
	if ta.AddToInventory {
		if err := c.World.Relocate(it.ID, world.Inventory); err != nil {
			return err
		}
	}
	if ta.MarkAsFound {
		changed, err := c.World.MarkFound(it.ID)
		if err != nil {
			return err
		}
		if changed {
			c.maybeCelebrate()
		}
	}
	return nil
}

// maybeCelebrate shows the celebration the first time the scavenger set is
// complete.
func (c *Context) maybeCelebrate() {
	found, total := c.World.ScavengerProgress()
	if total == 0 || found < total || !c.World.ReachCelebration() {
		return
	}
	c.Blank()
	c.celebration()
}

func (c *Context) celebration() {
	lines := c.World.Content().Celebration
	if len(lines) == 0 {
		lines = []string{"You found everything! Congratulations!"}
	}
	for _, line := range lines {
		c.Underlined(line)
	}
}

func drop(c *Context) error {
	if c.Args == "" {
		c.Error("Drop what?")
		return nil
	}
	it, ok := c.World.FindItem(c.Target(), func(it world.Item) bool {
		return it.Carried() && it.Actions.Take != nil
	})
	if !ok {
		c.Error(fmt.Sprintf("You aren't carrying any %s.", c.Args))
		return nil
	}
	if !it.Droppable {
		c.Flavor(MsgKeepIt)
		return nil
	}
	if err := c.World.Relocate(it.ID, world.Location(c.World.CurrentRoom())); err != nil {
		return err
	}
	c.Flavor(MsgDropped)
	return nil
}

func examine(c *Context) error {
	if c.Args == "" {
		c.Error("Examine what?")
		return nil
	}
	room := c.World.CurrentRoom()
	it, ok := c.World.FindItem(c.Target(), func(it world.Item) bool {
		return it.Accessible(room)
	})
	if !ok {
		c.Error(MsgNotHere)
		return nil
	}
	if it.Actions.Take != nil {
		if !it.Carried() {
			c.Error(MsgPickUpFirst)
			return nil
		}
	} else if it.Locked {
		c.Error(MsgCannotExamine)
		return nil
	}

	if it.Actions.Examine != nil && it.Actions.Examine.Response != "" {
		c.Flavor(it.Actions.Examine.Response)
	} else {
		c.Flavor(MsgNothingSpecial)
	}

	if it.RevealsItem == nil {
		return nil
	}
	first, err := c.World.Reach(it.ID, world.Search)
	if err != nil || !first {
		return err
	}
	to := world.Location(room)
	if it.Carried() {
		to = world.Inventory
	}
	moved, err := c.World.Reveal(*it.RevealsItem, to)
	if err != nil {
		return err
	}
	if moved {
		c.Blank()
		c.lookAround()
	}
	return nil
}

func eat(c *Context) error {
	if c.Args == "" {
		c.Error("Eat what?")
		return nil
	}
	room := c.World.CurrentRoom()
	it, ok := c.World.FindItem(c.Target(), func(it world.Item) bool {
		return it.Accessible(room)
	})
	switch {
	case !ok:
		c.Error(fmt.Sprintf("You don't have any %s.", c.Args))
		return nil
	case !it.Eatable || it.Actions.Eat == nil:
		c.Error(MsgCannotEat)
		return nil
	case !it.Carried():
		c.Error(MsgPickUpFirst)
		return nil
	}

	ea := it.Actions.Eat
	if ea.Response != "" {
		c.Flavor(ea.Response)
	} else {
		c.Flavor("You eat the " + it.Display + ".")
	}
	if ea.RemoveItem {
		return c.World.Remove(it.ID)
	}
	return nil
}

func throw(c *Context) error {
	if c.Args == "" {
		c.Error("Throw what?")
		return nil
	}
	it, ok := c.World.FindItem(c.Target(), func(it world.Item) bool {
		return it.Carried()
	})
	if !ok {
		c.Error(fmt.Sprintf("You aren't carrying any %s.", c.Args))
		return nil
	}
	if it.Actions.Throw != nil && len(it.Actions.Throw.Responses) > 0 {
		line, _ := c.d.picker.Pick("throw:"+it.ID, it.Actions.Throw.Responses)
		c.Flavor(line)
		return nil
	}
	line, _ := c.d.picker.Pick("throw", defaultThrowLines)
	c.Flavor(fmt.Sprintf(line, it.Display))
	return nil
}
