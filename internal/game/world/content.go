package world

import (
	"errors"
	"fmt"
)

// Content is the static definition of a game as loaded from disk. It is
// never mutated after Validate succeeds; every State copies what it changes.
type Content struct {
	Title     string
	StartRoom string
	Welcome   []string
	// Celebration is shown once every scavenger item has been found.
	Celebration []string
	// ScriptDir holds Lua puzzle hooks. Empty means no scripts.
	ScriptDir string

	Rooms   []*Room
	Doors   []*Door
	Items   []*Item
	Phrases []Phrase

	// Excluded lists items declared with includeInGame false. They are not
	// in Items.
	Excluded []string
	// Stripped describes each reference to an excluded item that was
	// removed at load so the rest of the content stays playable.
	Stripped []string

	rooms map[string]*Room
	doors map[string]*Door
	items map[string]*Item
}

// index builds lookup maps from the ordered slices.
func (c *Content) index() {
	c.rooms = make(map[string]*Room, len(c.Rooms))
	for _, r := range c.Rooms {
		c.rooms[r.ID] = r
	}
	c.doors = make(map[string]*Door, len(c.Doors))
	for _, d := range c.Doors {
		c.doors[d.ID] = d
	}
	c.items = make(map[string]*Item, len(c.Items))
	for _, it := range c.Items {
		c.items[it.ID] = it
	}
}

// Room returns the room with the given ID.
func (c *Content) Room(id string) (*Room, bool) {
	if c.rooms == nil {
		c.index()
	}
	r, ok := c.rooms[id]
	return r, ok
}

// Item returns the item definition with the given ID.
func (c *Content) Item(id string) (*Item, bool) {
	if c.items == nil {
		c.index()
	}
	it, ok := c.items[id]
	return it, ok
}

// Validate checks referential integrity across rooms, doors, items, and phrases.
//
// Postcondition: Returns nil if valid, or an error joining every violation.
func (c *Content) Validate() error {
	c.index()
	var errs []error

	if len(c.Rooms) == 0 {
		errs = append(errs, errors.New("content must contain at least one room"))
	}
	if len(c.rooms) != len(c.Rooms) {
		errs = append(errs, fmt.Errorf("%w: duplicate room IDs", ErrInvalidContent))
	}
	if len(c.items) != len(c.Items) {
		errs = append(errs, fmt.Errorf("%w: duplicate item IDs", ErrInvalidContent))
	}
	if _, ok := c.rooms[c.StartRoom]; !ok {
		errs = append(errs, fmt.Errorf("%w: start room %q", ErrUnknownRoom, c.StartRoom))
	}

	for _, r := range c.Rooms {
		if r.Name == "" {
			errs = append(errs, fmt.Errorf("room %q: name must not be empty", r.ID))
		}
		seen := make(map[Direction]bool, len(r.Exits))
		for _, e := range r.Exits {
			if seen[e.Direction] {
				errs = append(errs, fmt.Errorf("room %q: duplicate exit %q", r.ID, e.Direction))
			}
			seen[e.Direction] = true
			if _, ok := c.rooms[e.To]; !ok {
				errs = append(errs, fmt.Errorf("room %q: exit %q: %w %q", r.ID, e.Direction, ErrUnknownRoom, e.To))
			}
			if !e.Doorless() {
				if _, ok := c.doors[e.Door]; !ok {
					errs = append(errs, fmt.Errorf("room %q: exit %q: %w %q", r.ID, e.Direction, ErrUnknownDoor, e.Door))
				}
			}
		}
	}

	for _, it := range c.Items {
		where := fmt.Sprintf("item %q", it.ID)
		if len(it.TypedNames) == 0 {
			errs = append(errs, fmt.Errorf("%s: must have at least one typed name", where))
		}
		if it.Location.IsRoom() {
			if _, ok := c.rooms[string(it.Location)]; !ok {
				errs = append(errs, fmt.Errorf("%s: location: %w %q", where, ErrUnknownRoom, it.Location))
			}
		} else if it.Location == "" {
			errs = append(errs, fmt.Errorf("%s: location must not be empty", where))
		}
		if it.RevealsItem != nil {
			if _, ok := c.items[*it.RevealsItem]; !ok {
				errs = append(errs, fmt.Errorf("%s: revealsItem: %w %q", where, ErrUnknownItem, *it.RevealsItem))
			}
		}
		for _, v := range []struct {
			verb string
			ua   *UseAction
		}{{"use", it.Actions.Use}, {"open", it.Actions.Open}} {
			verb, ua := v.verb, v.ua
			if ua == nil {
				continue
			}
			if ua.Room != "" {
				if _, ok := c.rooms[ua.Room]; !ok {
					errs = append(errs, fmt.Errorf("%s: %s room: %w %q", where, verb, ErrUnknownRoom, ua.Room))
				}
			}
			errs = append(errs, c.validateEffects(where+": "+verb, ua.Effects)...)
		}
		if it.Eatable && it.Actions.Eat == nil {
			errs = append(errs, fmt.Errorf("%s: eatable items need an eat action", where))
		}
	}

	for i, p := range c.Phrases {
		where := fmt.Sprintf("phrase %d", i)
		if len(p.Words) == 0 {
			errs = append(errs, fmt.Errorf("%s: must list at least one phrase", where))
		}
		if p.Room != "" {
			if _, ok := c.rooms[p.Room]; !ok {
				errs = append(errs, fmt.Errorf("%s: %w %q", where, ErrUnknownRoom, p.Room))
			}
		}
		if p.Item != "" {
			if _, ok := c.items[p.Item]; !ok {
				errs = append(errs, fmt.Errorf("%s: %w %q", where, ErrUnknownItem, p.Item))
			}
		}
		errs = append(errs, c.validateEffects(where, p.Effects)...)
	}

	return errors.Join(errs...)
}

func (c *Content) validateEffects(where string, e Effects) []error {
	var errs []error
	for _, lists := range [][]string{e.UnlockDoors, e.OpenDoors, e.RevealDoors} {
		for _, id := range lists {
			if _, ok := c.doors[id]; !ok {
				errs = append(errs, fmt.Errorf("%s: effects: %w %q", where, ErrUnknownDoor, id))
			}
		}
	}
	for _, lists := range [][]string{e.UnlockItems, e.RevealItems} {
		for _, id := range lists {
			if _, ok := c.items[id]; !ok {
				errs = append(errs, fmt.Errorf("%s: effects: %w %q", where, ErrUnknownItem, id))
			}
		}
	}
	return errs
}

// stripExcluded drops references to items in Excluded. Phrases bound to an
// excluded item are removed entirely.
func (c *Content) stripExcluded() {
	if len(c.Excluded) == 0 {
		return
	}
	gone := make(map[string]bool, len(c.Excluded))
	for _, id := range c.Excluded {
		gone[id] = true
	}
	keep := func(where string, ids []string) []string {
		var out []string
		for _, id := range ids {
			if gone[id] {
				c.Stripped = append(c.Stripped, fmt.Sprintf("%s: effect on excluded item %q", where, id))
				continue
			}
			out = append(out, id)
		}
		return out
	}
	stripEffects := func(where string, e *Effects) {
		e.UnlockItems = keep(where, e.UnlockItems)
		e.RevealItems = keep(where, e.RevealItems)
	}

	for _, it := range c.Items {
		where := fmt.Sprintf("item %q", it.ID)
		if it.RevealsItem != nil && gone[*it.RevealsItem] {
			c.Stripped = append(c.Stripped, fmt.Sprintf("%s: revealsItem excluded item %q", where, *it.RevealsItem))
			it.RevealsItem = nil
		}
		if it.Actions.Use != nil {
			stripEffects(where+": use", &it.Actions.Use.Effects)
		}
		if it.Actions.Open != nil {
			stripEffects(where+": open", &it.Actions.Open.Effects)
		}
	}

	phrases := c.Phrases[:0]
	for i, p := range c.Phrases {
		where := fmt.Sprintf("phrase %d", i)
		if p.Item != "" && gone[p.Item] {
			c.Stripped = append(c.Stripped, fmt.Sprintf("%s: bound to excluded item %q, dropped", where, p.Item))
			continue
		}
		stripEffects(where, &p.Effects)
		phrases = append(phrases, p)
	}
	c.Phrases = phrases
}
