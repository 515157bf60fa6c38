// Package hint produces nudges for stuck players, either from room content
// or from a language model.
package hint

import (
	"context"
	"strings"
)

// DefaultHint is offered when nothing better is available.
const DefaultHint = "Try examining everything, and don't forget to look around."

// Request describes where the player is stuck.
type Request struct {
	Title     string
	Room      string
	RoomText  string
	Exits     []string
	RoomItems []string
	Inventory []string
	// Static is the hint authored for the room, if any.
	Static string
}

// Provider produces a hint for a request.
type Provider interface {
	Hint(ctx context.Context, req Request) (string, error)
}

// Static returns the room's authored hint, or DefaultHint.
type Static struct{}

// Hint implements Provider.
func (Static) Hint(_ context.Context, req Request) (string, error) {
	if s := strings.TrimSpace(req.Static); s != "" {
		return s, nil
	}
	return DefaultHint, nil
}
