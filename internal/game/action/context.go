package action

import (
	"context"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Context carries one command through its handler and collects its output.
type Context struct {
	ctx context.Context
	d   *Dispatcher

	Player  *Player
	World   *world.State
	Command *command.Command
	// Args is the trimmed text after the verb.
	Args string
	// Word is the verb as the player typed it.
	Word string
	// Raw is the whole input line.
	Raw string

	out    []output.Entry
	effect Effect
}

// Ctx returns the request context.
func (c *Context) Ctx() context.Context { return c.ctx }

// Target returns Args folded to typed-name form.
func (c *Context) Target() string { return world.NormalizeName(c.Args) }

// Emit appends a line of the given type.
func (c *Context) Emit(typ output.Type, text string) {
	c.out = append(c.out, output.Line(typ, text))
}

func (c *Context) Flavor(text string)     { c.Emit(output.Flavor, text) }
func (c *Context) Error(text string)      { c.Emit(output.Error, text) }
func (c *Context) Chrome(text string)     { c.Emit(output.Command, text) }
func (c *Context) Notes(text string)      { c.Emit(output.Notes, text) }
func (c *Context) Underlined(text string) { c.Emit(output.Underlined, text) }
func (c *Context) Blank()                 { c.out = append(c.out, output.Blank()) }

// SetEffect requests a session-level effect.
func (c *Context) SetEffect(e Effect) { c.effect = e }

// Output returns what has been emitted so far.
func (c *Context) Output() []output.Entry { return c.out }
