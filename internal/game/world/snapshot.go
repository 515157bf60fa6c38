package world

import (
	"fmt"
	"slices"
	"sort"
)

// SnapshotVersion is the current snapshot format version.
const SnapshotVersion = 1

// DoorSnapshot is the mutable part of a door.
type DoorSnapshot struct {
	Visible bool `json:"visible"`
	Locked  bool `json:"locked"`
	Open    bool `json:"open"`
}

// ItemSnapshot is the mutable part of an item.
type ItemSnapshot struct {
	Location Location  `json:"location"`
	Visible  bool      `json:"visible"`
	Locked   bool      `json:"locked"`
	Found    bool      `json:"found"`
	Searched Milestone `json:"searched"`
	Used     Milestone `json:"used"`
	Opened   Milestone `json:"opened"`
}

// Snapshot captures every serializable field of a State. Static content is
// not included; a snapshot is only meaningful against the content it was
// taken from.
type Snapshot struct {
	Version     int                     `json:"version"`
	Title       string                  `json:"title"`
	CurrentRoom string                  `json:"currentRoom"`
	Visited     []string                `json:"visited"`
	Flags       []string                `json:"flags"`
	Doors       map[string]DoorSnapshot `json:"doors"`
	Items       map[string]ItemSnapshot `json:"items"`

	// Removed maps deleted item IDs to whether they had been found.
	Removed    map[string]bool `json:"removed"`
	Phrases    []int           `json:"phrases"`
	Celebrated bool            `json:"celebrated"`
}

// Snapshot captures the state.
//
// Postcondition: The returned snapshot shares no memory with the state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Version:     SnapshotVersion,
		Title:       s.content.Title,
		CurrentRoom: s.current,
		Visited:     slices.Clone(s.visited),
		Flags:       s.Flags(),
		Doors:       make(map[string]DoorSnapshot, len(s.doors)),
		Items:       make(map[string]ItemSnapshot, len(s.items)),
		Removed:     make(map[string]bool, len(s.removed)),
		Celebrated:  s.celebration == Reached,
	}
	for id, d := range s.doors {
		snap.Doors[id] = DoorSnapshot{Visible: d.Visible, Locked: d.Locked, Open: d.Open}
	}
	for id, it := range s.items {
		snap.Items[id] = ItemSnapshot{
			Location: it.Location,
			Visible:  it.Visible,
			Locked:   it.Locked,
			Found:    it.Found,
			Searched: it.Searched,
			Used:     it.Used,
			Opened:   it.Opened,
		}
	}
	for id, found := range s.removed {
		snap.Removed[id] = found
	}
	for i, m := range s.phrases {
		if m == Reached {
			snap.Phrases = append(snap.Phrases, i)
		}
	}
	return snap
}

// Restore replaces the state's mutable fields with those in snap. Doors and
// items missing from the snapshot keep their content defaults.
//
// Precondition: snap must have been taken against the same content.
// Postcondition: On error the state is unchanged.
func (s *State) Restore(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if _, ok := s.content.Room(snap.CurrentRoom); !ok {
		return fmt.Errorf("snapshot current room: %w %q", ErrUnknownRoom, snap.CurrentRoom)
	}
	for _, v := range snap.Visited {
		if _, ok := s.content.Room(v); !ok {
			return fmt.Errorf("snapshot visit: %w %q", ErrUnknownRoom, v)
		}
	}

	next := NewState(s.content)
	for id, ds := range snap.Doors {
		d, ok := next.doors[id]
		if !ok {
			return fmt.Errorf("snapshot: %w %q", ErrUnknownDoor, id)
		}
		d.Visible, d.Locked, d.Open = ds.Visible, ds.Locked, ds.Open
	}
	for id := range snap.Removed {
		if _, ok := next.items[id]; !ok {
			return fmt.Errorf("snapshot removed: %w %q", ErrUnknownItem, id)
		}
		next.removed[id] = snap.Removed[id]
		delete(next.items, id)
	}
	for id, is := range snap.Items {
		it, ok := next.items[id]
		if !ok {
			return fmt.Errorf("snapshot: %w %q", ErrUnknownItem, id)
		}
		if is.Location.IsRoom() {
			if _, ok := s.content.Room(string(is.Location)); !ok {
				return fmt.Errorf("snapshot item %q location: %w %q", id, ErrUnknownRoom, is.Location)
			}
		}
		it.Location, it.Visible, it.Locked, it.Found = is.Location, is.Visible, is.Locked, is.Found
		it.Searched, it.Used, it.Opened = is.Searched, is.Used, is.Opened
	}
	for _, i := range snap.Phrases {
		if i < 0 || i >= len(next.phrases) {
			return fmt.Errorf("snapshot phrase index %d out of range", i)
		}
		next.phrases[i] = Reached
	}
	flags := slices.Clone(snap.Flags)
	sort.Strings(flags)
	for _, f := range flags {
		next.flags[f] = true
	}
	if snap.Celebrated {
		next.celebration = Reached
	}
	next.current = snap.CurrentRoom
	next.visited = slices.Clone(snap.Visited)

	*s = *next
	return nil
}
