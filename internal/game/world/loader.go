package world

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// yamlGame is the top-level game file: title, startup data and celebration.
type yamlGame struct {
	Title   string `yaml:"title"`
	Startup struct {
		Room        string   `yaml:"room"`
		WelcomeText []string `yaml:"welcomeText"`
	} `yaml:"startup"`
	Celebration []string `yaml:"celebration"`
	ScriptDir   string   `yaml:"scriptDir"`
}

// yamlRoomsFile holds the rooms and doors mappings. Both are ordered.
type yamlRoomsFile struct {
	Rooms yaml.Node `yaml:"rooms"`
	Doors yaml.Node `yaml:"doors"`
}

type yamlRoom struct {
	Name      string         `yaml:"name"`
	LookText  string         `yaml:"lookText"`
	EnterText yamlEnterText  `yaml:"enterText"`
	Exits     yaml.Node      `yaml:"exits"`
	Special   map[string]any `yaml:"special"`
	Hint      string         `yaml:"hint"`
}

type yamlEnterText struct {
	First  string  `yaml:"first"`
	Second *string `yaml:"second"`
	Repeat *string `yaml:"repeat"`
}

type yamlExit struct {
	To   string `yaml:"to"`
	Door string `yaml:"door"`
}

type yamlDoor struct {
	Visible       *bool  `yaml:"visible"`
	Locked        bool   `yaml:"locked"`
	Open          *bool  `yaml:"open"`
	LockedMessage string `yaml:"lockedMessage"`
}

type yamlItemsFile struct {
	Items yaml.Node `yaml:"items"`
}

type yamlItem struct {
	Display       string      `yaml:"display"`
	TypedNames    []string    `yaml:"typedNames"`
	Location      string      `yaml:"location"`
	StartLocation string      `yaml:"startLocation"`
	Visible       *bool       `yaml:"visible"`
	Locked        bool        `yaml:"locked"`
	IncludeInGame *bool       `yaml:"includeInGame"`
	Type          string      `yaml:"type"`
	Droppable     *bool       `yaml:"droppable"`
	Eatable       bool        `yaml:"eatable"`
	Found         bool        `yaml:"found"`
	RevealsItem   string      `yaml:"revealsItem"`
	Actions       yamlActions `yaml:"actions"`
}

type yamlActions struct {
	Take *struct {
		Response       string `yaml:"response"`
		AddToInventory *bool  `yaml:"addToInventory"`
		MarkAsFound    bool   `yaml:"markAsFound"`
	} `yaml:"take"`
	Examine *struct {
		Response string `yaml:"response"`
	} `yaml:"examine"`
	Use  *yamlUse `yaml:"use"`
	Open *yamlUse `yaml:"open"`
	Eat  *struct {
		Response   string `yaml:"response"`
		RemoveItem bool   `yaml:"removeItem"`
	} `yaml:"eat"`
	Throw *struct {
		Responses []string `yaml:"responses"`
	} `yaml:"throw"`
}

type yamlUse struct {
	Response          string      `yaml:"response"`
	AgainResponse     string      `yaml:"againResponse"`
	LockedResponse    string      `yaml:"lockedResponse"`
	Room              string      `yaml:"room"`
	WrongRoomResponse string      `yaml:"wrongRoomResponse"`
	RequiresHeld      bool        `yaml:"requiresHeld"`
	Effects           yamlEffects `yaml:"effects"`
}

type yamlEffects struct {
	UnlockDoors []string `yaml:"unlockDoors"`
	OpenDoors   []string `yaml:"openDoors"`
	RevealDoors []string `yaml:"revealDoors"`
	UnlockItems []string `yaml:"unlockItems"`
	RevealItems []string `yaml:"revealItems"`
	SetFlags    []string `yaml:"setFlags"`
}

type yamlPuzzlesFile struct {
	Phrases []struct {
		Room          string      `yaml:"room"`
		Item          string      `yaml:"item"`
		Say           []string    `yaml:"say"`
		RequiresFlag  string      `yaml:"requiresFlag"`
		Once          bool        `yaml:"once"`
		Response      string      `yaml:"response"`
		AgainResponse string      `yaml:"againResponse"`
		Effects       yamlEffects `yaml:"effects"`
	} `yaml:"phrases"`
}

// Sources holds the raw bytes of each content document. Items and Puzzles
// may be nil.
type Sources struct {
	Game    []byte
	Rooms   []byte
	Items   []byte
	Puzzles []byte
}

// contentExtensions are tried in order when locating a content document.
var contentExtensions = []string{".yaml", ".yml", ".json"}

// FindContentFile locates base with any supported extension in dir.
//
// Postcondition: Returns the path, or "" and fs.ErrNotExist when absent.
func FindContentFile(dir, base string) (string, error) {
	for _, ext := range contentExtensions {
		p := filepath.Join(dir, base+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", base, dir, fs.ErrNotExist)
}

// LoadDir reads game, rooms, items and puzzles documents from dir. The game
// and rooms documents are required. JSON documents are accepted because
// YAML is a superset.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns validated Content or a non-nil error.
func LoadDir(dir string) (*Content, error) {
	var src Sources
	for _, f := range []struct {
		base     string
		dst      *[]byte
		required bool
	}{
		{"game", &src.Game, true},
		{"rooms", &src.Rooms, true},
		{"items", &src.Items, false},
		{"puzzles", &src.Puzzles, false},
	} {
		path, err := FindContentFile(dir, f.base)
		if err != nil {
			if f.required || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		*f.dst = data
	}

	c, err := Load(src)
	if err != nil {
		return nil, fmt.Errorf("loading content from %s: %w", dir, err)
	}
	if c.ScriptDir != "" && !filepath.IsAbs(c.ScriptDir) {
		c.ScriptDir = filepath.Join(dir, c.ScriptDir)
	}
	return c, nil
}

// Load parses and validates content from raw documents.
//
// Postcondition: Returns validated Content or a non-nil error.
func Load(src Sources) (*Content, error) {
	var g yamlGame
	if err := yaml.Unmarshal(src.Game, &g); err != nil {
		return nil, fmt.Errorf("parsing game YAML: %w", err)
	}
	c := &Content{
		Title:       g.Title,
		StartRoom:   g.Startup.Room,
		Welcome:     g.Startup.WelcomeText,
		Celebration: g.Celebration,
		ScriptDir:   g.ScriptDir,
	}

	var rf yamlRoomsFile
	if err := yaml.Unmarshal(src.Rooms, &rf); err != nil {
		return nil, fmt.Errorf("parsing rooms YAML: %w", err)
	}
	rooms, err := convertRooms(&rf.Rooms)
	if err != nil {
		return nil, err
	}
	c.Rooms = rooms
	doors, err := convertDoors(&rf.Doors)
	if err != nil {
		return nil, err
	}
	c.Doors = doors

	if src.Items != nil {
		var itf yamlItemsFile
		if err := yaml.Unmarshal(src.Items, &itf); err != nil {
			return nil, fmt.Errorf("parsing items YAML: %w", err)
		}
		items, excluded, err := convertItems(&itf.Items)
		if err != nil {
			return nil, err
		}
		c.Items = items
		c.Excluded = excluded
	}

	if src.Puzzles != nil {
		var pf yamlPuzzlesFile
		if err := yaml.Unmarshal(src.Puzzles, &pf); err != nil {
			return nil, fmt.Errorf("parsing puzzles YAML: %w", err)
		}
		for _, yp := range pf.Phrases {
			words := make([]string, 0, len(yp.Say))
			for _, w := range yp.Say {
				words = append(words, NormalizePhrase(w))
			}
			c.Phrases = append(c.Phrases, Phrase{
				Room:          yp.Room,
				Item:          yp.Item,
				Words:         words,
				RequiresFlag:  yp.RequiresFlag,
				Once:          yp.Once,
				Response:      yp.Response,
				AgainResponse: yp.AgainResponse,
				Effects:       convertEffects(yp.Effects),
			})
		}
	}

	c.stripExcluded()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating content: %w", err)
	}
	return c, nil
}

// decodeOrdered decodes a YAML mapping node into values in document order.
// A zero node decodes to nothing.
func decodeOrdered[T any](node *yaml.Node, what string) ([]string, []T, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("%s must be a mapping, line %d", what, node.Line)
	}
	keys := make([]string, 0, len(node.Content)/2)
	vals := make([]T, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var v T
		if err := node.Content[i+1].Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("%s %q: %w", what, key, err)
		}
		keys = append(keys, key)
		vals = append(vals, v)
	}
	return keys, vals, nil
}

func convertRooms(node *yaml.Node) ([]*Room, error) {
	ids, yrs, err := decodeOrdered[yamlRoom](node, "room")
	if err != nil {
		return nil, err
	}
	rooms := make([]*Room, 0, len(ids))
	for i, id := range ids {
		yr := yrs[i]
		dirs, exits, err := decodeOrdered[yamlExit](&yr.Exits, "exit")
		if err != nil {
			return nil, fmt.Errorf("room %q: %w", id, err)
		}
		room := &Room{
			ID:       id,
			Name:     yr.Name,
			LookText: yr.LookText,
			Enter: EnterText{
				First:  yr.EnterText.First,
				Second: yr.EnterText.Second,
				Repeat: yr.EnterText.Repeat,
			},
			Special: yr.Special,
			Hint:    yr.Hint,
		}
		for j, d := range dirs {
			room.Exits = append(room.Exits, Exit{Direction: Direction(d), To: exits[j].To, Door: exits[j].Door})
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func convertDoors(node *yaml.Node) ([]*Door, error) {
	ids, yds, err := decodeOrdered[yamlDoor](node, "door")
	if err != nil {
		return nil, err
	}
	doors := make([]*Door, 0, len(ids))
	for i, id := range ids {
		yd := yds[i]
		doors = append(doors, &Door{
			ID:            id,
			Visible:       boolOr(yd.Visible, true),
			Locked:        yd.Locked,
			Open:          boolOr(yd.Open, true),
			LockedMessage: yd.LockedMessage,
		})
	}
	return doors, nil
}

// convertItems returns the included items in document order and the ids of
// those declared with includeInGame false.
func convertItems(node *yaml.Node) ([]*Item, []string, error) {
	ids, yis, err := decodeOrdered[yamlItem](node, "item")
	if err != nil {
		return nil, nil, err
	}
	items := make([]*Item, 0, len(ids))
	var excluded []string
	for i, id := range ids {
		yi := yis[i]
		if !boolOr(yi.IncludeInGame, true) {
			excluded = append(excluded, id)
			continue
		}
		loc := yi.Location
		if loc == "" {
			loc = yi.StartLocation
		}
		if loc == "player" {
			loc = string(Inventory)
		}
		names := make([]string, 0, len(yi.TypedNames))
		for _, n := range yi.TypedNames {
			if n = NormalizeName(n); n != "" {
				names = append(names, n)
			}
		}
		item := &Item{
			ID:         id,
			Display:    yi.Display,
			TypedNames: names,
			Location:   Location(loc),
			Visible:    boolOr(yi.Visible, true),
			Locked:     yi.Locked,
			Category:   yi.Type,
			Droppable:  boolOr(yi.Droppable, true),
			Eatable:    yi.Eatable,
			Found:      yi.Found,
			Actions:    convertActions(yi.Actions),
		}
		if item.Display == "" {
			item.Display = id
		}
		if yi.RevealsItem != "" {
			reveals := yi.RevealsItem
			item.RevealsItem = &reveals
		}
		items = append(items, item)
	}
	return items, excluded, nil
}

func convertActions(ya yamlActions) Actions {
	var a Actions
	if ya.Take != nil {
		a.Take = &TakeAction{
			Response:       ya.Take.Response,
			AddToInventory: boolOr(ya.Take.AddToInventory, true),
			MarkAsFound:    ya.Take.MarkAsFound,
		}
	}
	if ya.Examine != nil {
		a.Examine = &TextAction{Response: ya.Examine.Response}
	}
	a.Use = convertUse(ya.Use)
	a.Open = convertUse(ya.Open)
	if ya.Eat != nil {
		a.Eat = &EatAction{Response: ya.Eat.Response, RemoveItem: ya.Eat.RemoveItem}
	}
	if ya.Throw != nil {
		a.Throw = &ThrowAction{Responses: ya.Throw.Responses}
	}
	return a
}

func convertUse(yu *yamlUse) *UseAction {
	if yu == nil {
		return nil
	}
	return &UseAction{
		Response:          yu.Response,
		AgainResponse:     yu.AgainResponse,
		LockedResponse:    yu.LockedResponse,
		Room:              yu.Room,
		WrongRoomResponse: yu.WrongRoomResponse,
		RequiresHeld:      yu.RequiresHeld,
		Effects:           convertEffects(yu.Effects),
	}
}

func convertEffects(ye yamlEffects) Effects {
	return Effects{
		UnlockDoors: ye.UnlockDoors,
		OpenDoors:   ye.OpenDoors,
		RevealDoors: ye.RevealDoors,
		UnlockItems: ye.UnlockItems,
		RevealItems: ye.RevealItems,
		SetFlags:    ye.SetFlags,
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
