// Package handlers runs the adventure over a Telnet connection: it asks the
// player for a name, registers a session, and relays commands and output.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/config"
	"github.com/cory-johannsen/adventure/internal/frontend/telnet"
	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/session"
)

// outboxSize bounds the batches one command may queue before the handler
// drains them; a single command produces at most a handful.
const outboxSize = 64

var (
	validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,19}$`)
	prompt    = telnet.Colorize(telnet.BrightWhite, "> ")
)

// GameHandler implements telnet.SessionHandler for one shared Game.
type GameHandler struct {
	game      *session.Game
	sessions  *session.Manager
	wrapWidth int
	logger    *zap.Logger
	opts      []session.Option
}

// NewGameHandler creates a GameHandler. opts are applied to every session it
// creates, after the handler's own WithEndOnQuit.
//
// Precondition: game, sessions and logger must be non-nil.
func NewGameHandler(game *session.Game, sessions *session.Manager, cfg config.TelnetConfig, logger *zap.Logger, opts ...session.Option) *GameHandler {
	return &GameHandler{
		game:      game,
		sessions:  sessions,
		wrapWidth: cfg.WrapWidth,
		logger:    logger,
		opts:      append([]session.Option{session.WithEndOnQuit()}, opts...),
	}
}

// HandleSession implements telnet.SessionHandler. It asks for a name until
// the player picks a valid one that is not already playing, then runs the
// game until the player quits or the connection drops.
//
// Postcondition: Returns nil on a confirmed quit, or the error that ended the session.
func (h *GameHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	title := telnet.Colorize(telnet.Bold+telnet.Green, h.game.Content.Title)
	if err := conn.WriteLines([]string{"", title, ""}); err != nil {
		return fmt.Errorf("sending banner: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := conn.WritePrompt("What is your name? "); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading name: %w", err)
		}
		name := strings.TrimSpace(line)
		switch {
		case name == "":
			continue
		case strings.EqualFold(name, "quit"):
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			return nil
		case !validName.MatchString(name):
			_ = conn.WriteLine(telnet.Colorize(telnet.Red,
				"Names start with a letter and use up to 20 letters, digits, - or _."))
			continue
		}

		outbox := session.NewOutbox(name, outboxSize)
		sess := session.New(h.game, name, outbox, h.logger, h.opts...)
		if err := h.sessions.Add(sess); err != nil {
			_ = outbox.Close()
			h.logger.Info("name rejected", zap.String("name", name), zap.Error(err))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Someone by that name is already playing."))
			continue
		}
		return h.play(ctx, conn, sess, outbox)
	}
}

// play relays input to sess and drains its outbox after every command.
func (h *GameHandler) play(ctx context.Context, conn *telnet.Conn, sess *session.Session, outbox *session.Outbox) error {
	start := time.Now()
	defer func() {
		_ = outbox.Close()
		_ = h.sessions.Remove(sess.ID)
		h.logger.Info("player left",
			zap.String("owner", sess.Owner),
			zap.Int("commands", len(sess.History())),
			zap.Int64("dropped_batches", outbox.Dropped()),
			zap.Duration("duration", time.Since(start)),
		)
	}()
	h.logger.Info("player joined", zap.String("owner", sess.Owner), zap.String("session", sess.ID.String()))

	sess.Start(ctx)
	if err := h.flush(conn, outbox, true); err != nil {
		return err
	}

	for {
		line, err := conn.ReadLine()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("reading input: %w", err)
		}

		res := sess.Submit(ctx, line)
		quit := res.Effect == action.EffectQuit
		if err := h.flush(conn, outbox, !quit); err != nil {
			return err
		}
		if quit {
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			return nil
		}
	}
}

// flush writes every queued batch and, when withPrompt is set, the prompt.
func (h *GameHandler) flush(conn *telnet.Conn, outbox *session.Outbox, withPrompt bool) error {
	width := h.width(conn)
	for {
		select {
		case batch, ok := <-outbox.Events():
			if !ok {
				return errors.New("outbox closed")
			}
			if err := conn.WriteLines(renderBatch(batch, width)); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		default:
			if !withPrompt {
				return nil
			}
			if err := conn.WritePrompt(prompt); err != nil {
				return fmt.Errorf("writing prompt: %w", err)
			}
			return nil
		}
	}
}

// width prefers the client's reported window width, leaving the last column
// free so terminals do not wrap early.
func (h *GameHandler) width(conn *telnet.Conn) int {
	if w := conn.Width(); w > 1 {
		if h.wrapWidth > 0 {
			return min(w-1, h.wrapWidth)
		}
		return w - 1
	}
	return h.wrapWidth
}

func renderBatch(batch []output.Entry, width int) []string {
	var lines []string
	for _, e := range batch {
		lines = append(lines, telnet.RenderEntry(e, width)...)
	}
	return lines
}
