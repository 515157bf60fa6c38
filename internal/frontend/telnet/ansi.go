// Package telnet serves the adventure over Telnet, one session per
// connection, with ANSI color per output entry type.
package telnet

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/cory-johannsen/adventure/internal/game/output"
)

// ANSI escape codes used by the renderer.
const (
	Reset     = "\033[0m"
	Bold      = "\033[1m"
	Underline = "\033[4m"

	Red          = "\033[31m"
	Green        = "\033[32m"
	Yellow       = "\033[33m"
	Cyan         = "\033[36m"
	BrightBlack  = "\033[90m"
	BrightYellow = "\033[93m"
	BrightWhite  = "\033[97m"
)

// entryStyles maps each entry type to its escape prefix. Flavor has none.
var entryStyles = map[output.Type]string{
	output.Command:    Cyan,
	output.Error:      Red,
	output.Prompt:     Bold + BrightYellow,
	output.Notes:      BrightBlack,
	output.Underlined: Bold + Underline + BrightWhite,
}

// Colorize wraps text with the given ANSI color code and a reset suffix.
// Empty text and an empty color are returned unchanged.
func Colorize(color, text string) string {
	if color == "" || text == "" {
		return text
	}
	return color + text + Reset
}

// StyleFor returns the escape prefix for an entry type.
func StyleFor(t output.Type) string { return entryStyles[t] }

// RenderEntry wraps an entry to width columns and colors every resulting
// line. A blank entry renders as one empty line.
//
// Precondition: width <= 0 disables wrapping.
// Postcondition: Returns at least one line; no line carries a trailing newline.
func RenderEntry(e output.Entry, width int) []string {
	if e.Text == "" {
		return []string{""}
	}
	text := e.Text
	if width > 0 {
		text = wordwrap.String(text, width)
	}
	style := StyleFor(e.Type)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = Colorize(style, strings.TrimRight(l, " "))
	}
	return lines
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns text with all \033[...m sequences removed.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			if j := strings.IndexByte(s[i+2:], 'm'); j >= 0 {
				i += j + 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
