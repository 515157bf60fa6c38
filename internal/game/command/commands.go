// Package command provides the command table, its loader, and the resolver
// that maps player input to command definitions.
package command

// Type governs how a command is treated by history de-duplication.
type Type string

const (
	// TypeSystem commands do not change world state (help, look, inventory).
	TypeSystem Type = "system"
	// TypeMovement commands move the player.
	TypeMovement Type = "movement"
	// TypeAction commands act on items and puzzles.
	TypeAction Type = "action"
)

// Valid reports whether t is a known command type.
func (t Type) Valid() bool {
	switch t {
	case TypeSystem, TypeMovement, TypeAction:
		return true
	}
	return false
}

// Action identifiers binding commands to dispatcher handlers.
const (
	ActionHelp      = "show_help"
	ActionLook      = "examine_room"
	ActionInventory = "show_inventory"
	ActionNorth     = "move_north"
	ActionSouth     = "move_south"
	ActionEast      = "move_east"
	ActionWest      = "move_west"
	ActionUp        = "move_up"
	ActionDown      = "move_down"
	ActionTake      = "take_item"
	ActionDrop      = "drop_item"
	ActionExamine   = "examine_item"
	ActionUse       = "use_item"
	ActionOpen      = "open_item"
	ActionEat       = "eat_item"
	ActionSay       = "say_phrase"
	ActionThrow     = "throw_item"
	ActionHint      = "show_hint"
	ActionHistory   = "show_history"
	ActionStatus    = "show_status"
	ActionSave      = "save_game"
	ActionRestore   = "restore_game"
	ActionQuit      = "quit_game"
	ActionRestart   = "restart_game"
	ActionDebug     = "debug_state"
	ActionCelebrate = "celebrate"
)

// CriticalCommands must be present in every command table.
var CriticalCommands = []string{"help", "look", "inventory"}

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command key.
	Name string
	// Action is the symbolic handler the dispatcher invokes.
	Action string
	// Type drives history de-duplication.
	Type Type
	// Shortcuts are alternate literal tokens, unique across the table.
	Shortcuts []string
	// Help is the short help text displayed to players.
	Help string
}

// DefaultCommands returns the built-in command table in resolution order.
func DefaultCommands() []Command {
	return []Command{
		{Name: "help", Action: ActionHelp, Type: TypeSystem, Shortcuts: []string{"h", "?"}, Help: "List available commands"},
		{Name: "look", Action: ActionLook, Type: TypeSystem, Shortcuts: []string{"l"}, Help: "Look around"},
		{Name: "inventory", Action: ActionInventory, Type: TypeSystem, Shortcuts: []string{"i", "inv"}, Help: "List what you are carrying"},

		{Name: "north", Action: ActionNorth, Type: TypeMovement, Shortcuts: []string{"n"}, Help: "Go north"},
		{Name: "south", Action: ActionSouth, Type: TypeMovement, Shortcuts: []string{"s"}, Help: "Go south"},
		{Name: "east", Action: ActionEast, Type: TypeMovement, Shortcuts: []string{"e"}, Help: "Go east"},
		{Name: "west", Action: ActionWest, Type: TypeMovement, Shortcuts: []string{"w"}, Help: "Go west"},
		{Name: "up", Action: ActionUp, Type: TypeMovement, Shortcuts: []string{"u"}, Help: "Go up"},
		{Name: "down", Action: ActionDown, Type: TypeMovement, Shortcuts: []string{"d"}, Help: "Go down"},

		{Name: "take", Action: ActionTake, Type: TypeAction, Shortcuts: []string{"get", "grab"}, Help: "Pick something up"},
		{Name: "drop", Action: ActionDrop, Type: TypeAction, Help: "Put something down"},
		{Name: "examine", Action: ActionExamine, Type: TypeAction, Shortcuts: []string{"x", "read", "search"}, Help: "Look closely at something"},
		{Name: "use", Action: ActionUse, Type: TypeAction, Shortcuts: []string{"ring", "push"}, Help: "Use something"},
		{Name: "open", Action: ActionOpen, Type: TypeAction, Help: "Open something"},
		{Name: "eat", Action: ActionEat, Type: TypeAction, Help: "Eat something"},
		{Name: "say", Action: ActionSay, Type: TypeAction, Shortcuts: []string{"speak", "shout"}, Help: "Say something out loud"},
		{Name: "throw", Action: ActionThrow, Type: TypeAction, Shortcuts: []string{"toss"}, Help: "Throw something"},

		{Name: "hint", Action: ActionHint, Type: TypeSystem, Help: "Ask for a nudge"},
		{Name: "history", Action: ActionHistory, Type: TypeSystem, Help: "Show recent commands"},
		{Name: "status", Action: ActionStatus, Type: TypeSystem, Help: "Show your progress"},
		{Name: "save", Action: ActionSave, Type: TypeSystem, Help: "Save your game"},
		{Name: "restore", Action: ActionRestore, Type: TypeSystem, Shortcuts: []string{"load"}, Help: "Restore a saved game"},
		{Name: "quit", Action: ActionQuit, Type: TypeSystem, Shortcuts: []string{"q"}, Help: "Quit and start over"},
		{Name: "restart", Action: ActionRestart, Type: TypeSystem, Help: "Start over immediately"},
		{Name: "debug", Action: ActionDebug, Type: TypeSystem, Help: "Dump engine state"},
		{Name: "celebrate", Action: ActionCelebrate, Type: TypeSystem, Help: "Celebrate your haul"},
	}
}
