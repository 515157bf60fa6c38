package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/history"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// DefaultHistoryLimit bounds the recall buffer when no limit is configured.
const DefaultHistoryLimit = 100

// Session is one player's game: a world state, its command history, and the
// sink its output goes to. All methods are safe for concurrent use; commands
// are applied one at a time.
type Session struct {
	// ID uniquely identifies the session.
	ID uuid.UUID
	// Owner is the player's display name, used for logging and save keys.
	Owner string

	game    *Game
	player  *action.Player
	history *history.History
	sink    output.Sink
	logger  *zap.Logger
	mu      sync.Mutex

	endOnQuit bool
}

// Option configures a Session.
type Option func(*Session)

// WithHistoryLimit bounds the recall buffer. Zero keeps everything.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.history = history.New(s.game.Registry, n) }
}

// WithSaves lets the player save and restore under the owner's name.
func WithSaves() Option {
	return func(s *Session) { s.player.SaveKey = s.Owner }
}

// WithEndOnQuit leaves the world untouched on a confirmed quit so the caller
// can close the connection instead of starting over.
func WithEndOnQuit() Option {
	return func(s *Session) { s.endOnQuit = true }
}

// New creates a session for owner. Call Start before submitting commands.
//
// Precondition: game, sink and logger must be non-nil.
// Postcondition: Returns a session with a fresh world and empty history.
func New(game *Game, owner string, sink output.Sink, logger *zap.Logger, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.New(),
		Owner:  owner,
		game:   game,
		sink:   sink,
		player: &action.Player{World: world.NewState(game.Content)},
	}
	s.logger = logger.With(zap.String("session", s.ID.String()), zap.String("owner", owner))
	s.history = history.New(game.Registry, DefaultHistoryLimit)
	for _, opt := range opts {
		opt(s)
	}
	s.player.Recall = s.history.Entries
	return s
}

// Start shows the welcome text and the start room.
//
// Postcondition: The sink has received the opening entries.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start(ctx)
}

func (s *Session) start(ctx context.Context) {
	s.sink.Append(s.game.Dispatcher.Begin(ctx, s.player)...)
	s.logger.Info("session started", zap.String("room", s.player.World.CurrentRoom()))
}

// Submit processes one line of player input. Blank input is ignored.
//
// Postcondition: The echo and the command's output have been appended to
// the sink and the line recorded in history when valid. On a quit or
// restart effect the world has been rebuilt and the start room shown.
func (s *Session) Submit(ctx context.Context, line string) action.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	line = strings.TrimSpace(line)
	if line == "" {
		return action.Result{}
	}
	s.sink.Append(output.Echo(line)...)

	res := s.game.Registry.Resolve(line)
	out := s.game.Dispatcher.Dispatch(ctx, res, line, s.player)
	s.sink.Append(out.Entries...)
	s.history.Record(line, out.Valid)

	s.logger.Debug("command processed",
		zap.String("input", line),
		zap.Stringer("match", res.Kind),
		zap.Bool("valid", out.Valid),
		zap.Int("entries", len(out.Entries)),
	)

	if out.Effect == action.EffectQuit && s.endOnQuit {
		s.logger.Info("session quit")
		return out
	}
	switch out.Effect {
	case action.EffectQuit, action.EffectRestart:
		s.logger.Info("resetting world", zap.Int("effect", int(out.Effect)))
		s.player.World = world.NewState(s.game.Content)
		s.player.Quit = action.QuitIdle
		s.sink.Append(output.Blank())
		s.start(ctx)
	}
	return out
}

// Recall walks the command history: back when up is true, forward otherwise.
//
// Postcondition: Returns the recalled line and whether the recall position moved.
func (s *Session) Recall(up bool) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if up {
		return s.history.Up()
	}
	return s.history.Down()
}

// History returns the recorded commands, oldest first.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Entries()
}

// Commands returns the command table the session resolves against.
func (s *Session) Commands() []string {
	cmds := s.game.Registry.Commands()
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}
