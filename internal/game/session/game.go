package session

import (
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/command"
	"github.com/cory-johannsen/adventure/internal/game/world"
)

// Game is a loaded content set together with the command table and the
// dispatcher bound to it. A Game is immutable and shared by every session
// playing it.
type Game struct {
	Content    *world.Content
	Registry   *command.Registry
	Dispatcher *action.Dispatcher
}

// NewGame validates that the registry carries the critical commands and
// binds a dispatcher to it.
//
// Precondition: content must have passed Validate; reg and logger must be non-nil.
// Postcondition: Returns a ready Game or an error describing every problem.
func NewGame(content *world.Content, reg *command.Registry, logger *zap.Logger, opts ...action.Option) (*Game, error) {
	if err := reg.Require(command.CriticalCommands...); err != nil {
		return nil, err
	}
	d, err := action.NewDispatcher(reg, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("binding actions: %w", err)
	}
	for _, ref := range content.Stripped {
		logger.Warn("ignoring reference to excluded item", zap.String("reference", ref))
	}
	return &Game{Content: content, Registry: reg, Dispatcher: d}, nil
}

// LoadGame loads content and an optional commands file from dir. When dir
// has no commands file the built-in table is used.
//
// Precondition: dir must name a content directory.
// Postcondition: Returns a ready Game or the first load error.
func LoadGame(dir string, logger *zap.Logger, opts ...action.Option) (*Game, error) {
	content, err := world.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	reg, err := LoadCommands(dir, logger)
	if err != nil {
		return nil, err
	}
	g, err := NewGame(content, reg, logger, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("game loaded",
		zap.String("title", content.Title),
		zap.Int("rooms", len(content.Rooms)),
		zap.Int("items", len(content.Items)),
		zap.Int("commands", len(reg.Commands())),
	)
	return g, nil
}

// LoadCommands builds the command table from dir's commands file, or from
// the built-in table when dir has none.
func LoadCommands(dir string, logger *zap.Logger) (*command.Registry, error) {
	cmds := command.DefaultCommands()
	path, err := world.FindContentFile(dir, "commands")
	switch {
	case err == nil:
		if cmds, err = command.LoadCommandsFile(path); err != nil {
			return nil, err
		}
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no commands file, using built-in table", zap.String("dir", dir))
	default:
		return nil, err
	}

	reg, err := command.NewRegistry(cmds)
	if err != nil {
		return nil, fmt.Errorf("building command table: %w", err)
	}
	return reg, nil
}
