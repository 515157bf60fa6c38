// Package world provides the game world model: rooms, doors, items, the
// content loader, and the mutable State aggregate a session plays against.
package world

import "strings"

// Direction names an exit out of a room.
type Direction string

// Standard compass directions and vertical movements.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// StandardDirections contains all standard directions.
var StandardDirections = []Direction{North, South, East, West, Up, Down}

// IsStandard reports whether d is one of the standard directions.
func (d Direction) IsStandard() bool {
	for _, sd := range StandardDirections {
		if d == sd {
			return true
		}
	}
	return false
}

// Opposite returns the opposite of a standard direction.
// For custom directions, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// Exit is a passage from one room to another.
type Exit struct {
	Direction Direction
	// To is the destination room ID.
	To string
	// Door is the ID of the door guarding this exit. Empty means the exit is
	// doorless and always passable.
	Door string
}

// Doorless reports whether the exit has no door.
func (e Exit) Doorless() bool { return e.Door == "" }

// EnterText holds the narrative shown on arrival, varied by visit count.
// Second and Repeat are optional.
type EnterText struct {
	First  string
	Second *string
	Repeat *string
}

// ForVisit selects arrival text for a room already visited n times.
// Zero visits shows First; one visit prefers Second, then Repeat; two or more
// prefer Repeat, then Second. First is the final fallback in every case.
func (t EnterText) ForVisit(n int) string {
	var chain []*string
	switch {
	case n <= 0:
	case n == 1:
		chain = []*string{t.Second, t.Repeat}
	default:
		chain = []*string{t.Repeat, t.Second}
	}
	for _, s := range chain {
		if s != nil {
			return *s
		}
	}
	return t.First
}

// Room is a location in the game world. Rooms are immutable during play.
type Room struct {
	ID       string
	Name     string
	LookText string
	Enter    EnterText
	// Exits lists passages in content order.
	Exits []Exit
	// Special carries presentation metadata through to front ends untouched.
	Special map[string]any
	// Hint is the static hint offered in this room.
	Hint string
}

// ExitForDirection returns the exit in the given direction, if one exists.
//
// Postcondition: Returns (exit, true) if found, or (Exit{}, false) otherwise.
func (r *Room) ExitForDirection(dir Direction) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}

// Door guards an exit.
type Door struct {
	ID string
	// Visible false makes the exit indistinguishable from no exit at all.
	Visible bool
	Locked  bool
	Open    bool
	// LockedMessage replaces the default locked message when set.
	LockedMessage string
}

// Door refusal messages.
const (
	MsgNoExit       = "There is no exit in that direction."
	MsgDoorLocked   = "The door is locked."
	MsgDoorClosed   = "The door is closed."
	MsgCannotMove   = "You can't move from here."
	MsgRoomNotFound = "ERROR: Room not found!"
)

// Passable reports whether the player may walk through the door. When it
// returns false the message explains why in the player's terms.
func (d Door) Passable() (bool, string) {
	switch {
	case !d.Visible:
		return false, MsgNoExit
	case d.Locked:
		if d.LockedMessage != "" {
			return false, d.LockedMessage
		}
		return false, MsgDoorLocked
	case !d.Open:
		return false, MsgDoorClosed
	}
	return true, ""
}

// NormalizeName folds a player-typed item reference to typed-name form:
// lowercase with all whitespace removed. A single leading article is dropped.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, article) {
			s = s[len(article):]
			break
		}
	}
	return strings.Join(strings.Fields(s), "")
}

// NormalizePhrase folds a spoken phrase for puzzle matching: lowercase with
// spaces and dashes removed.
func NormalizePhrase(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
