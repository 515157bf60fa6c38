package action

import (
	"fmt"

	"github.com/cory-johannsen/adventure/internal/game/world"
)

// move returns the handler for walking in dir.
func move(dir world.Direction) Handler {
	return func(c *Context) error {
		room, ok := c.World.Room(c.World.CurrentRoom())
		if !ok {
			c.Error(world.MsgRoomNotFound)
			return nil
		}
		exit, ok := room.ExitForDirection(dir)
		if !ok {
			// An absent exit reads the same as a hidden door.
			if len(room.Exits) == 0 {
				c.Error(world.MsgCannotMove)
			} else {
				c.Error(world.MsgNoExit)
			}
			return nil
		}
		if !exit.Doorless() {
			door, ok := c.World.Door(exit.Door)
			if !ok {
				return fmt.Errorf("exit %s of %q: %w %q", dir, room.ID, world.ErrUnknownDoor, exit.Door)
			}
			if pass, msg := door.Passable(); !pass {
				c.Error(msg)
				return nil
			}
		}
		c.arrive(exit.To)
		return nil
	}
}

func look(c *Context) error {
	c.lookAround()
	return nil
}
