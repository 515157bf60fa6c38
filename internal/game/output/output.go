// Package output defines the typed text entries the game engine emits and
// an append-only buffer front ends render from.
package output

import "sync"

// Type classifies an output entry for presentation.
type Type string

const (
	// Flavor is narrative prose.
	Flavor Type = "flavor"
	// Command is engine chrome such as headings and exit lists.
	Command Type = "command"
	// Error is a failure message.
	Error Type = "error"
	// Prompt is an echoed player command.
	Prompt Type = "prompt"
	// Notes is auxiliary information such as debug dumps.
	Notes Type = "notes"
	// Underlined is emphasized text.
	Underlined Type = "underlined"
)

// Entry is a single line of output.
type Entry struct {
	Text string `json:"text"`
	Type Type   `json:"type"`
}

// Line builds an Entry.
func Line(typ Type, text string) Entry {
	return Entry{Text: text, Type: typ}
}

// Blank returns an empty flavor line.
func Blank() Entry {
	return Entry{Type: Flavor}
}

// Echo returns the entries that precede a processed command: a blank line,
// the command itself, and another blank line.
func Echo(cmd string) []Entry {
	return []Entry{Blank(), Line(Prompt, "> "+cmd), Blank()}
}

// Sink receives output entries.
type Sink interface {
	Append(entries ...Entry)
}

// Buffer is an append-only Sink that is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds entries to the end of the buffer.
func (b *Buffer) Append(entries ...Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entries...)
}

// Len returns the number of entries appended so far.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Entries returns a copy of every entry in append order.
func (b *Buffer) Entries() []Entry {
	return b.Since(0)
}

// Since returns a copy of the entries appended at or after index n.
//
// Precondition: n >= 0.
// Postcondition: Returns an empty slice when n >= Len().
func (b *Buffer) Since(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if n >= len(b.entries) {
		return []Entry{}
	}
	out := make([]Entry, len(b.entries)-n)
	copy(out, b.entries[n:])
	return out
}
