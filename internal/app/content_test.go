package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/game/hint"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/session"
	"github.com/cory-johannsen/adventure/internal/storage/memory"
)

const halloweenDir = "../../content/halloween"

func TestHalloween_Walkthrough(t *testing.T) {
	logger := zaptest.NewLogger(t)
	cfg := config.GameConfig{ContentDir: halloweenDir}
	content, err := LoadContent(cfg)
	require.NoError(t, err)
	scripts, closeScripts, err := NewScripts(content, cfg, NewPicker(logger), logger)
	require.NoError(t, err)
	defer closeScripts()
	require.NotNil(t, scripts)

	g, err := NewGame(cfg, content, logger, hint.Static{}, &Storage{Store: memory.New()}, scripts)
	require.NoError(t, err)

	buf := output.NewBuffer()
	s := session.New(g, "tester", buf, logger)
	s.Start(context.Background())

	steps := []struct {
		input string
		want  string
		typ   output.Type
	}{
		{"north", "The front door is locked. Maybe somebody will answer if you ring.", output.Error},
		{input: "ring doorbell", want: "A chime echoes through the house. The front door creaks open!"},
		{input: "north", want: "The door swings shut behind you with a theatrical groan."},
		{input: "east", want: "The kitchen smells of cinnamon and something stranger."},
		{input: "search cupboard", want: "Behind the jars of pickled things you find a paper lantern!"},
		{input: "take lantern", want: "You tuck the paper lantern into your bag."},
		{input: "west", want: "The foyer is as dusty as you left it."},
		{input: "west", want: "Candles gutter as you step into the library."},
		{input: "open safe", want: "The dial won't budge. It needs a combination."},
		{input: "take book", want: "You take the dusty book."},
		{input: "examine book", want: "As you flip the pages a folded note flutters out."},
		{input: "read note", want: "In spidery handwriting: SAY THIRTEEN-THIRTY-ONE TO THE SAFE."},
		{input: "say thirteen-thirty-one", want: "Tumblers click inside the safe. Now you can open it."},
		{input: "open safe", want: "The safe swings open, revealing a plastic skeleton!"},
		{input: "take skeleton", want: "The skeleton rattles as you bag it."},
		{input: "east", want: "You are in the foyer."},
		{input: "up", want: "You duck under the rafters. The portrait's eyes seem to follow you."},
		{input: "say hello", want: "The portrait sighs. \"Good EVENING, child.\" A rubber bat drops from the rafters."},
		{input: "take bat", want: "You grab the rubber bat. It squeaks."},
		{input: "say good evening", want: "The portrait inclines her head. \"Such manners. The cellar is yours.\""},
		{input: "down", want: "You are in the foyer."},
		{input: "down", want: "Cold air rises to meet you as you descend into the cellar."},
		{input: "take pumpkin", want: "You pick the tiny pumpkin from a crate."},
	}
	for _, step := range steps {
		typ := step.typ
		if typ == "" {
			typ = output.Flavor
		}
		before := buf.Len()
		res := s.Submit(context.Background(), step.input)
		assert.True(t, res.Valid, step.input)
		assert.Contains(t, buf.Since(before), output.Line(typ, step.want), step.input)
	}

	assert.Contains(t, buf.Entries(), output.Line(output.Underlined, content.Celebration[0]))
}

func TestHalloween_UnknownSpeechFallsThrough(t *testing.T) {
	logger := zaptest.NewLogger(t)
	g, err := session.LoadGame(halloweenDir, logger)
	require.NoError(t, err)

	buf := output.NewBuffer()
	s := session.New(g, "tester", buf, logger)
	s.Start(context.Background())

	before := buf.Len()
	s.Submit(context.Background(), "say boo")
	assert.Contains(t, buf.Since(before), output.Line(output.Flavor, "Nothing happens."))
}
