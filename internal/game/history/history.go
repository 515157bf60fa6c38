// Package history records the commands a player has entered and supports
// walking back through them.
package history

import (
	"slices"
	"strings"

	"github.com/cory-johannsen/adventure/internal/game/command"
)

// Resolver maps input to a command resolution.
type Resolver interface {
	Resolve(raw string) command.Resolution
}

// History is a recall buffer of valid commands. It is not safe for
// concurrent use.
type History struct {
	resolver Resolver
	limit    int
	entries  []string
	// index counts back from the newest entry; -1 means not recalling.
	index int
}

// New creates an empty History. A limit of zero or less keeps every entry.
//
// Precondition: resolver must be non-nil.
func New(resolver Resolver, limit int) *History {
	return &History{resolver: resolver, limit: limit, index: -1}
}

// Record adds cmd to the history. Invalid commands are dropped, and so is a
// repeat of the previous entry when it resolves to a system command.
//
// Postcondition: Recall restarts from the newest entry.
func (h *History) Record(cmd string, valid bool) {
	if !valid {
		return
	}
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return
	}
	if n := len(h.entries); n > 0 && normalize(h.entries[n-1]) == normalize(cmd) {
		res := h.resolver.Resolve(cmd)
		if res.Kind.Resolved() && res.Command.Type == command.TypeSystem {
			return
		}
	}
	h.entries = append(h.entries, cmd)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.limit)
	}
	h.index = -1
}

// Up moves recall one entry older.
//
// Postcondition: Returns the recalled entry and true, or false when the
// history is empty or recall is already at the oldest entry.
func (h *History) Up() (string, bool) {
	if len(h.entries) == 0 || h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[len(h.entries)-1-h.index], true
}

// Down moves recall one entry newer. Moving past the newest entry clears the
// recall and returns an empty string with true.
//
// Postcondition: Returns false when not recalling.
func (h *History) Down() (string, bool) {
	switch {
	case len(h.entries) == 0 || h.index < 0:
		return "", false
	case h.index == 0:
		h.index = -1
		return "", true
	default:
		h.index--
		return h.entries[len(h.entries)-1-h.index], true
	}
}

// Entries returns the recorded commands, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Reset clears the history.
func (h *History) Reset() {
	h.entries = nil
	h.index = -1
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
