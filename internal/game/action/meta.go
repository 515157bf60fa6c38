package action

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/hint"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

var (
	titleCase = cases.Title(language.English)
	helpOrder = []command.Type{command.TypeMovement, command.TypeAction, command.TypeSystem}
)

func showHelp(c *Context) error {
	c.Chrome("Available commands:")
	for _, t := range helpOrder {
		cmds := c.d.registry.ByType(t)
		if len(cmds) == 0 {
			continue
		}
		c.Blank()
		c.Underlined(titleCase.String(string(t)))
		for _, cmd := range cmds {
			c.Flavor(helpLine(cmd))
		}
	}
	return nil
}

func helpLine(cmd *command.Command) string {
	name := cmd.Name
	if len(cmd.Shortcuts) > 0 {
		name += " (" + strings.Join(cmd.Shortcuts, ", ") + ")"
	}
	if cmd.Help == "" {
		return "  " + name
	}
	return fmt.Sprintf("  %-22s %s", name, cmd.Help)
}

// showInventory lists carried items grouped by category, categories in the
// order they are first seen.
func showInventory(c *Context) error {
	inv := c.World.Inventory()
	if len(inv) == 0 {
		c.Flavor(MsgInventoryEmpty)
		return nil
	}
	var order []string
	groups := make(map[string][]string)
	for _, it := range inv {
		cat := it.Category
		if cat == "" {
			cat = "other"
		}
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], it.Display)
	}

	c.Chrome("You are carrying:")
	for _, cat := range order {
		c.Underlined(titleCase.String(cat))
		for _, display := range groups[cat] {
			c.Flavor("  " + display)
		}
	}
	return nil
}

func showStatus(c *Context) error {
	name := c.World.CurrentRoom()
	if r, ok := c.World.Room(name); ok {
		name = r.Name
	}
	c.Notes("Location: " + name)
	if found, total := c.World.ScavengerProgress(); total > 0 {
		c.Notes(fmt.Sprintf("Scavenger hunt: %d of %d found", found, total))
	}
	c.Notes(fmt.Sprintf("Carrying: %d item(s)", len(c.World.Inventory())))
	return nil
}

func showHistory(c *Context) error {
	var entries []string
	if c.Player.Recall != nil {
		entries = c.Player.Recall()
	}
	if len(entries) == 0 {
		c.Notes(MsgNoHistory)
		return nil
	}
	for i, e := range entries {
		c.Notes(fmt.Sprintf("%3d  %s", i+1, e))
	}
	return nil
}

func showHint(c *Context) error {
	req := hintRequest(c.World)
	text, err := c.d.hints.Hint(c.ctx, req)
	if err != nil || text == "" {
		c.d.logger.Warn("hint provider failed", zap.String("room", req.Room), zap.Error(err))
		text = hint.DefaultHint
	}
	c.Notes("Hint: " + text)
	return nil
}

func hintRequest(st *world.State) hint.Request {
	room := st.CurrentRoom()
	req := hint.Request{Title: st.Content().Title, Room: room}
	if r, ok := st.Room(room); ok {
		req.Room = r.Name
		req.RoomText = r.LookText
		if req.RoomText == "" {
			req.RoomText = r.Enter.First
		}
		req.Static = r.Hint
	}
	for _, e := range st.AvailableExits(room) {
		req.Exits = append(req.Exits, string(e.Direction))
	}
	for _, it := range st.RoomItems(room) {
		req.RoomItems = append(req.RoomItems, it.Display)
	}
	for _, it := range st.Inventory() {
		req.Inventory = append(req.Inventory, it.Display)
	}
	return req
}

func debugState(c *Context) error {
	room := c.World.CurrentRoom()
	c.Notes("room: " + room)
	c.Notes(fmt.Sprintf("visits: %d here, %d total", c.World.VisitCount(room), len(c.World.Visited())))
	c.Notes("flags: " + listOrNone(c.World.Flags()))
	var carried []string
	for _, it := range c.World.Inventory() {
		carried = append(carried, it.ID)
	}
	c.Notes("carrying: " + listOrNone(carried))
	return nil
}

func listOrNone(xs []string) string {
	if len(xs) == 0 {
		return "(none)"
	}
	return strings.Join(xs, ", ")
}

func celebrate(c *Context) error {
	found, total := c.World.ScavengerProgress()
	switch {
	case total == 0:
		c.Flavor("There's nothing to celebrate yet.")
	case found < total:
		c.Flavor(fmt.Sprintf("You've found %d of %d. Keep hunting!", found, total))
	default:
		c.celebration()
	}
	return nil
}

// quit arms on the first request and fires when the player confirms by
// typing the verb in capitals.
func quit(c *Context) error {
	if c.Player.Quit == QuitArmed && c.Word == "QUIT" {
		c.Player.Quit = QuitIdle
		c.Flavor(MsgQuitDone)
		c.SetEffect(EffectQuit)
		return nil
	}
	c.Player.Quit = QuitArmed
	c.Flavor(MsgQuitArm)
	return nil
}

func restart(c *Context) error {
	c.Flavor(MsgRestart)
	c.SetEffect(EffectRestart)
	return nil
}

func slotKey(c *Context) string {
	slot := world.NormalizeName(c.Args)
	if slot == "" {
		slot = "default"
	}
	return c.Player.SaveKey + ":" + slot
}

func save(c *Context) error {
	if c.d.store == nil || c.Player.SaveKey == "" {
		c.Error(MsgNoSaving)
		return nil
	}
	key := slotKey(c)
	if err := c.d.store.Save(c.ctx, key, c.World.Snapshot()); err != nil {
		c.d.logger.Error("saving game", zap.String("key", key), zap.Error(err))
		c.Error("Your game could not be saved.")
		return nil
	}
	c.Flavor("Game saved.")
	return nil
}

func restore(c *Context) error {
	if c.d.store == nil || c.Player.SaveKey == "" {
		c.Error(MsgNoSaving)
		return nil
	}
	key := slotKey(c)
	snap, err := c.d.store.Load(c.ctx, key)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		c.Error("There is no saved game by that name.")
		return nil
	case err != nil:
		c.d.logger.Error("loading game", zap.String("key", key), zap.Error(err))
		c.Error("Your game could not be restored.")
		return nil
	}
	if err := c.World.Restore(snap); err != nil {
		c.d.logger.Warn("saved game does not fit content", zap.String("key", key), zap.Error(err))
		c.Error("That saved game no longer fits this world.")
		return nil
	}
	c.Flavor("Game restored.")
	c.Blank()
	c.lookAround()
	return nil
}
