package world

import (
	"fmt"
	"slices"
	"sort"
)

// State is the mutable world a single session plays against. It owns copies
// of every door and item so that several sessions can share one Content.
// State is not safe for concurrent use; a session serializes its commands.
type State struct {
	content *Content

	doors     map[string]*Door
	items     map[string]*Item
	itemOrder []string

	// removed records items deleted from the game and whether they had been found.
	removed map[string]bool

	current string
	visited []string
	flags   map[string]bool

	phrases     []Milestone
	celebration Milestone
}

// NewState builds a fresh State positioned in the start room with no visits
// recorded.
//
// Precondition: content must have passed Validate.
// Postcondition: Every door and item is an independent copy of its definition.
func NewState(content *Content) *State {
	s := &State{
		content:   content,
		doors:     make(map[string]*Door, len(content.Doors)),
		items:     make(map[string]*Item, len(content.Items)),
		itemOrder: make([]string, 0, len(content.Items)),
		removed:   make(map[string]bool),
		current:   content.StartRoom,
		flags:     make(map[string]bool),
		phrases:   make([]Milestone, len(content.Phrases)),
	}
	for _, d := range content.Doors {
		cp := *d
		s.doors[d.ID] = &cp
	}
	for _, it := range content.Items {
		cp := *it
		s.items[it.ID] = &cp
		s.itemOrder = append(s.itemOrder, it.ID)
	}
	return s
}

// Content returns the static definitions this state was built from.
func (s *State) Content() *Content { return s.content }

// CurrentRoom returns the ID of the room the player is in.
func (s *State) CurrentRoom() string { return s.current }

// Room returns the room with the given ID.
func (s *State) Room(id string) (*Room, bool) { return s.content.Room(id) }

// Door returns a copy of the door with the given ID.
func (s *State) Door(id string) (Door, bool) {
	d, ok := s.doors[id]
	if !ok {
		return Door{}, false
	}
	return *d, true
}

// Item returns a copy of the live item with the given ID.
func (s *State) Item(id string) (Item, bool) {
	it, ok := s.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Items returns copies of every live item in table order.
func (s *State) Items() []Item {
	return s.filter(func(*Item) bool { return true })
}

// Inventory returns the carried items in table order. It is derived from
// item locations on every call.
func (s *State) Inventory() []Item {
	return s.filter((*Item).Carried)
}

// RoomItems returns the items visible in a room, in table order.
func (s *State) RoomItems(room string) []Item {
	return s.filter(func(it *Item) bool { return it.InRoom(room) })
}

// FindItem returns the first live item in table order that answers to name
// and satisfies pred. The first match wins when several items share a name.
func (s *State) FindItem(name string, pred func(Item) bool) (Item, bool) {
	for _, id := range s.itemOrder {
		it, ok := s.items[id]
		if !ok || !it.Answers(name) {
			continue
		}
		if pred == nil || pred(*it) {
			return *it, true
		}
	}
	return Item{}, false
}

func (s *State) filter(pred func(*Item) bool) []Item {
	var out []Item
	for _, id := range s.itemOrder {
		if it, ok := s.items[id]; ok && pred(it) {
			out = append(out, *it)
		}
	}
	return out
}

// AvailableExits lists a room's exits that are doorless or whose door is
// visible, in content order.
func (s *State) AvailableExits(room string) []Exit {
	r, ok := s.content.Room(room)
	if !ok {
		return nil
	}
	var out []Exit
	for _, e := range r.Exits {
		if e.Doorless() {
			out = append(out, e)
			continue
		}
		if d, ok := s.doors[e.Door]; ok && d.Visible {
			out = append(out, e)
		}
	}
	return out
}

// VisitCount returns how many times the player has entered a room.
func (s *State) VisitCount(room string) int {
	n := 0
	for _, v := range s.visited {
		if v == room {
			n++
		}
	}
	return n
}

// Visited returns the ordered visit log, repeats included.
func (s *State) Visited() []string { return slices.Clone(s.visited) }

// Flag reports whether a puzzle flag is set.
func (s *State) Flag(name string) bool { return s.flags[name] }

// Flags returns the set puzzle flags, sorted.
func (s *State) Flags() []string {
	out := make([]string, 0, len(s.flags))
	for f := range s.flags {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ScavengerProgress counts found scavenger items against all scavenger
// items defined by the content.
func (s *State) ScavengerProgress() (found, total int) {
	for _, def := range s.content.Items {
		if def.Category != CategoryScavenger {
			continue
		}
		total++
		if it, ok := s.items[def.ID]; ok && it.Found {
			found++
		} else if s.removed[def.ID] {
			found++
		}
	}
	return found, total
}

// Enter moves the player into room and records the visit.
//
// Postcondition: Returns the number of visits to room before this one.
func (s *State) Enter(room string) (int, error) {
	if _, ok := s.content.Room(room); !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownRoom, room)
	}
	prior := s.VisitCount(room)
	s.current = room
	s.visited = append(s.visited, room)
	return prior, nil
}

// Relocate moves an item to loc.
func (s *State) Relocate(id string, loc Location) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	it.Location = loc
	return nil
}

// Reveal makes a hidden item visible at loc. Items that are not hidden are
// left alone.
//
// Postcondition: Returns true if the item moved out of HIDDEN.
func (s *State) Reveal(id string, loc Location) (bool, error) {
	it, err := s.item(id)
	if err != nil {
		return false, err
	}
	if it.Location != Hidden {
		return false, nil
	}
	it.Location = loc
	it.Visible = true
	return true, nil
}

// MarkFound sets an item's found flag.
//
// Postcondition: Returns true if the flag changed.
func (s *State) MarkFound(id string) (bool, error) {
	it, err := s.item(id)
	if err != nil {
		return false, err
	}
	if it.Found {
		return false, nil
	}
	it.Found = true
	return true, nil
}

// Remove deletes an item from the game for the rest of the session.
func (s *State) Remove(id string) error {
	it, err := s.item(id)
	if err != nil {
		return err
	}
	s.removed[id] = it.Found
	delete(s.items, id)
	return nil
}

// Reach advances one of an item's milestones.
//
// Postcondition: Returns true only on the first transition.
func (s *State) Reach(id string, k Interaction) (bool, error) {
	it, err := s.item(id)
	if err != nil {
		return false, err
	}
	return it.Milestone(k).Reach(), nil
}

// ReachPhrase advances the milestone of the i-th phrase.
func (s *State) ReachPhrase(i int) bool {
	if i < 0 || i >= len(s.phrases) {
		return false
	}
	return s.phrases[i].Reach()
}

// PhraseReached reports whether the i-th phrase has fired.
func (s *State) PhraseReached(i int) bool {
	return i >= 0 && i < len(s.phrases) && s.phrases[i] == Reached
}

// ReachCelebration advances the celebration milestone.
func (s *State) ReachCelebration() bool { return s.celebration.Reach() }

// SetFlag sets a puzzle flag.
func (s *State) SetFlag(name string) { s.flags[name] = true }

// UnlockDoor unlocks a door.
func (s *State) UnlockDoor(id string) error {
	d, err := s.door(id)
	if err != nil {
		return err
	}
	d.Locked = false
	return nil
}

// ApplyEffects performs every mutation in e. Revealed items appear at
// revealTo.
//
// Postcondition: Returns an error naming the first unknown reference; earlier
// effects remain applied.
func (s *State) ApplyEffects(e Effects, revealTo Location) error {
	for _, id := range e.UnlockDoors {
		if err := s.UnlockDoor(id); err != nil {
			return err
		}
	}
	for _, id := range e.OpenDoors {
		d, err := s.door(id)
		if err != nil {
			return err
		}
		d.Open = true
	}
	for _, id := range e.RevealDoors {
		d, err := s.door(id)
		if err != nil {
			return err
		}
		d.Visible = true
	}
	for _, id := range e.UnlockItems {
		it, err := s.item(id)
		if err != nil {
			return err
		}
		it.Locked = false
	}
	for _, id := range e.RevealItems {
		if _, err := s.Reveal(id, revealTo); err != nil {
			return err
		}
	}
	for _, f := range e.SetFlags {
		s.SetFlag(f)
	}
	return nil
}

func (s *State) item(id string) (*Item, error) {
	it, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownItem, id)
	}
	return it, nil
}

func (s *State) door(id string) (*Door, error) {
	d, ok := s.doors[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDoor, id)
	}
	return d, nil
}
