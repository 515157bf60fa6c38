package world

import (
	"fmt"
	"slices"
)

// Location is where an item currently is: a room ID or one of the sentinels.
type Location string

const (
	// Inventory is the location of carried items.
	Inventory Location = "INVENTORY"
	// Hidden is the location of items not yet revealed.
	Hidden Location = "HIDDEN"
)

// IsRoom reports whether l names a room rather than a sentinel.
func (l Location) IsRoom() bool {
	return l != Inventory && l != Hidden && l != ""
}

// Milestone is a one-shot narrative gate. It starts Pending and moves to
// Reached exactly once.
type Milestone uint8

const (
	Pending Milestone = iota
	Reached
)

// Reach moves the milestone to Reached.
//
// Postcondition: Returns true only if the milestone was Pending.
func (m *Milestone) Reach() bool {
	if *m == Reached {
		return false
	}
	*m = Reached
	return true
}

// MarshalText encodes the milestone as "pending" or "reached".
func (m Milestone) MarshalText() ([]byte, error) {
	if m == Reached {
		return []byte("reached"), nil
	}
	return []byte("pending"), nil
}

// UnmarshalText decodes "pending" or "reached".
func (m *Milestone) UnmarshalText(b []byte) error {
	switch string(b) {
	case "pending", "":
		*m = Pending
	case "reached":
		*m = Reached
	default:
		return fmt.Errorf("unknown milestone %q", b)
	}
	return nil
}

// Interaction identifies which one-shot milestone of an item is meant.
type Interaction int

const (
	Search Interaction = iota
	Use
	Open
)

// Effects are world mutations triggered by a puzzle or special item.
type Effects struct {
	UnlockDoors []string
	OpenDoors   []string
	RevealDoors []string
	UnlockItems []string
	// RevealItems move HIDDEN items to the reveal location of the trigger.
	RevealItems []string
	SetFlags    []string
}

// Empty reports whether applying the effects would change nothing.
func (e Effects) Empty() bool {
	return len(e.UnlockDoors) == 0 && len(e.OpenDoors) == 0 && len(e.RevealDoors) == 0 &&
		len(e.UnlockItems) == 0 && len(e.RevealItems) == 0 && len(e.SetFlags) == 0
}

// Reveals reports whether the effects make something newly visible.
func (e Effects) Reveals() bool {
	return len(e.RevealDoors) > 0 || len(e.RevealItems) > 0
}

// TakeAction describes picking an item up.
type TakeAction struct {
	Response       string
	AddToInventory bool
	MarkAsFound    bool
}

// TextAction is an action that only produces text.
type TextAction struct {
	Response string
}

// UseAction describes using or opening an item.
type UseAction struct {
	Response string
	// AgainResponse is shown once the one-shot milestone has been reached.
	AgainResponse string
	// LockedResponse is shown while the item is locked.
	LockedResponse string
	// Room restricts the action to one room. Empty means anywhere.
	Room string
	// WrongRoomResponse is shown when Room is set and the player is elsewhere.
	WrongRoomResponse string
	// RequiresHeld demands the item be carried.
	RequiresHeld bool
	Effects      Effects
}

// OneShot reports whether the action branches on its milestone. Actions
// without effects or a follow-up response are plain text every time.
func (u *UseAction) OneShot() bool {
	return !u.Effects.Empty() || u.AgainResponse != ""
}

// EatAction describes eating an item.
type EatAction struct {
	Response   string
	RemoveItem bool
}

// ThrowAction lists the lines one of which is shown when the item is thrown.
type ThrowAction struct {
	Responses []string
}

// Actions holds the optional verb descriptors of an item.
type Actions struct {
	Take    *TakeAction
	Examine *TextAction
	Use     *UseAction
	Open    *UseAction
	Eat     *EatAction
	Throw   *ThrowAction
}

// Item is an object in the world.
type Item struct {
	ID      string
	Display string
	// TypedNames are normalized with NormalizeName.
	TypedNames []string
	Location   Location
	Visible    bool
	Locked     bool
	// Category groups items in the inventory listing.
	Category  string
	Droppable bool
	Eatable   bool
	Found     bool
	// RevealsItem names the item uncovered by the first examine.
	RevealsItem *string
	Actions     Actions

	Searched Milestone
	Used     Milestone
	Opened   Milestone
}

// CategoryScavenger marks items counted toward the scavenger hunt.
const CategoryScavenger = "scavenger"

// Answers reports whether name (already normalized) is one of the item's typed names.
func (it *Item) Answers(name string) bool {
	return name != "" && slices.Contains(it.TypedNames, name)
}

// Carried reports whether the item is in the inventory.
func (it *Item) Carried() bool { return it.Location == Inventory }

// InRoom reports whether the item is visible in the given room.
func (it *Item) InRoom(room string) bool {
	return it.Visible && it.Location == Location(room)
}

// Accessible reports whether the player can see the item from room:
// carried, or visible in the room.
func (it *Item) Accessible(room string) bool {
	return it.Carried() || it.InRoom(room)
}

// Milestone returns the milestone for the given interaction.
func (it *Item) Milestone(k Interaction) *Milestone {
	switch k {
	case Use:
		return &it.Used
	case Open:
		return &it.Opened
	default:
		return &it.Searched
	}
}

// Phrase is a say-puzzle definition. It fires when the player is in Room (or
// anywhere when Room is empty), Item is accessible (when set), the required
// flag is set (when set), and the normalized phrase is one of Words.
type Phrase struct {
	Room          string
	Item          string
	Words         []string
	RequiresFlag  string
	Once          bool
	Response      string
	AgainResponse string
	Effects       Effects
}

// Matches reports whether the phrase answers normalized speech in a room.
func (p *Phrase) Matches(room, said string) bool {
	if p.Room != "" && p.Room != room {
		return false
	}
	return slices.Contains(p.Words, said)
}
