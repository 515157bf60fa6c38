package command

import (
	"strings"
	"unicode"
)

// ParseResult holds the parsed command word and arguments from a text line.
type ParseResult struct {
	// Command is the first word of the input, lowercased.
	Command string
	// Word is the first word exactly as typed.
	Word string
	// Args are the remaining words after the command.
	Args []string
	// RawArgs is the raw text after the command, internal spacing preserved.
	RawArgs string
}

// Parse splits a text line into a command word and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	spaceIdx := strings.IndexFunc(line, unicode.IsSpace)
	if spaceIdx < 0 {
		return ParseResult{
			Command: strings.ToLower(line),
			Word:    line,
		}
	}

	word := line[:spaceIdx]
	rest := strings.TrimSpace(line[spaceIdx:])

	var args []string
	if rest != "" {
		args = strings.Fields(rest)
	}

	return ParseResult{
		Command: strings.ToLower(word),
		Word:    word,
		Args:    args,
		RawArgs: rest,
	}
}
