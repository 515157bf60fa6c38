// Package action binds command actions to handlers and dispatches resolved
// commands against a player's world state.
package action

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/dice"
	"github.com/cory-johannsen/adventure/internal/game/hint"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// ErrUnknownAction is returned when a command names an action with no handler.
var ErrUnknownAction = errors.New("unknown action")

// ErrNoSnapshot is returned by a SnapshotStore when nothing is saved under a key.
var ErrNoSnapshot = errors.New("no saved game")

// Effect is a session-level consequence of a command.
type Effect int

const (
	// EffectNone leaves the session running as is.
	EffectNone Effect = iota
	// EffectQuit ends the game; the session resets the world.
	EffectQuit
	// EffectRestart resets the world immediately.
	EffectRestart
)

// QuitState is the quit-confirmation state machine: Idle → Armed → (quit).
type QuitState int

const (
	QuitIdle QuitState = iota
	QuitArmed
)

// Result is the outcome of dispatching one command.
type Result struct {
	Entries []output.Entry
	// Valid reports whether the input parsed to a command, regardless of
	// whether the command succeeded in the fiction.
	Valid  bool
	Effect Effect
}

// Player is the per-session state a dispatch acts on.
type Player struct {
	World *world.State
	Quit  QuitState
	// SaveKey namespaces saved games. Empty disables save and restore.
	SaveKey string
	// Recall returns the command history, oldest first.
	Recall func() []string
}

// SnapshotStore persists world snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, key string, snap world.Snapshot) error
	// Load returns an error wrapping ErrNoSnapshot when key is absent.
	Load(ctx context.Context, key string) (world.Snapshot, error)
}

// SayHook is consulted when no declared phrase matches spoken words. It may
// mutate the world it is given.
type SayHook interface {
	OnSay(ctx context.Context, st *world.State, phrase string) (string, bool)
}

// Handler performs an action. A returned error signals broken content, not a
// player mistake; in-fiction failures are reported through the Context.
type Handler func(c *Context) error

// Dispatcher routes resolved commands to handlers. It holds no per-player
// state and may be shared by many sessions.
type Dispatcher struct {
	handlers map[string]Handler
	registry *command.Registry
	logger   *zap.Logger
	picker   *dice.Picker
	hints    hint.Provider
	store    SnapshotStore
	say      SayHook
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRandom sets the randomness used for flavor text.
func WithRandom(src dice.Source) Option {
	return func(d *Dispatcher) { d.picker = dice.NewPicker(src, d.logger) }
}

// WithHints sets the hint provider.
func WithHints(p hint.Provider) Option {
	return func(d *Dispatcher) { d.hints = p }
}

// WithStore enables save and restore.
func WithStore(s SnapshotStore) Option {
	return func(d *Dispatcher) { d.store = s }
}

// WithSayHook installs a fallback for unmatched speech.
func WithSayHook(h SayHook) Option {
	return func(d *Dispatcher) { d.say = h }
}

// WithHandler binds or overrides the handler for an action.
func WithHandler(action string, h Handler) Option {
	return func(d *Dispatcher) { d.handlers[action] = h }
}

// NewDispatcher builds a Dispatcher over the built-in handlers and checks
// that every command in reg is bound.
//
// Precondition: reg and logger must be non-nil.
// Postcondition: Returns a Dispatcher, or an error naming every command
// whose action has no handler.
func NewDispatcher(reg *command.Registry, logger *zap.Logger, opts ...Option) (*Dispatcher, error) {
	d := &Dispatcher{
		handlers: builtinHandlers(),
		registry: reg,
		logger:   logger,
		hints:    hint.Static{},
	}
	d.picker = dice.NewPicker(dice.NewCryptoSource(), logger)
	for _, opt := range opts {
		opt(d)
	}

	var errs []error
	for _, cmd := range reg.Commands() {
		if _, ok := d.handlers[cmd.Action]; !ok {
			errs = append(errs, fmt.Errorf("command %q: %w %q", cmd.Name, ErrUnknownAction, cmd.Action))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return d, nil
}

// Registry returns the command table the dispatcher was validated against.
func (d *Dispatcher) Registry() *command.Registry { return d.registry }

// Dispatch executes a resolution for a player.
//
// Precondition: p.World must be non-nil.
// Postcondition: Never panics on content errors; they surface as "ERROR:"
// entries. Valid is true exactly when res resolved to a command.
func (d *Dispatcher) Dispatch(ctx context.Context, res command.Resolution, raw string, p *Player) Result {
	if !res.Kind.Resolved() || res.Command.Action != command.ActionQuit {
		p.Quit = QuitIdle
	}

	switch res.Kind {
	case command.Exact, command.Shortcut, command.Prefix:
	case command.Ambiguous:
		return Result{Entries: []output.Entry{
			output.Line(output.Error, fmt.Sprintf("Did you mean: %s?", strings.Join(res.Matches, ", "))),
		}}
	default:
		return Result{Entries: []output.Entry{
			output.Line(output.Error, MsgUnknownLine1),
			output.Line(output.Error, MsgUnknownLine2),
		}}
	}

	c := &Context{
		ctx:     ctx,
		d:       d,
		Player:  p,
		World:   p.World,
		Command: res.Command,
		Args:    strings.TrimSpace(res.Args),
		Word:    res.Word,
		Raw:     raw,
	}
	h := d.handlers[res.Command.Action]
	d.logger.Debug("dispatching",
		zap.String("command", res.Command.Name),
		zap.String("action", res.Command.Action),
		zap.Stringer("match", res.Kind),
		zap.String("room", p.World.CurrentRoom()),
	)
	if err := h(c); err != nil {
		d.logger.Error("content error during dispatch",
			zap.String("command", res.Command.Name),
			zap.String("room", p.World.CurrentRoom()),
			zap.Error(err),
		)
		c.Error("ERROR: " + err.Error())
	}
	return Result{Entries: c.out, Valid: true, Effect: c.effect}
}

// Begin shows the welcome text and enters the start room.
//
// Postcondition: The start room has one recorded visit.
func (d *Dispatcher) Begin(ctx context.Context, p *Player) []output.Entry {
	c := &Context{ctx: ctx, d: d, Player: p, World: p.World}
	content := p.World.Content()
	for _, line := range content.Welcome {
		c.Flavor(line)
	}
	if len(content.Welcome) > 0 {
		c.Blank()
	}
	c.arrive(content.StartRoom)
	return c.out
}

func builtinHandlers() map[string]Handler {
	return map[string]Handler{
		command.ActionHelp:      showHelp,
		command.ActionLook:      look,
		command.ActionInventory: showInventory,
		command.ActionNorth:     move(world.North),
		command.ActionSouth:     move(world.South),
		command.ActionEast:      move(world.East),
		command.ActionWest:      move(world.West),
		command.ActionUp:        move(world.Up),
		command.ActionDown:      move(world.Down),
		command.ActionTake:      take,
		command.ActionDrop:      drop,
		command.ActionExamine:   examine,
		command.ActionUse:       useItem,
		command.ActionOpen:      openItem,
		command.ActionEat:       eat,
		command.ActionSay:       say,
		command.ActionThrow:     throw,
		command.ActionHint:      showHint,
		command.ActionHistory:   showHistory,
		command.ActionStatus:    showStatus,
		command.ActionSave:      save,
		command.ActionRestore:   restore,
		command.ActionQuit:      quit,
		command.ActionRestart:   restart,
		command.ActionDebug:     debugState,
		command.ActionCelebrate: celebrate,
	}
}
