package command

// Kind is the outcome category of resolving player input.
type Kind int

const (
	// Unknown means no command matched.
	Unknown Kind = iota
	// Exact means the verb equals a canonical command key.
	Exact
	// Shortcut means the verb equals a registered shortcut.
	Shortcut
	// Prefix means the verb is a prefix of exactly one command key.
	Prefix
	// Ambiguous means the verb is a prefix of several command keys.
	Ambiguous
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Shortcut:
		return "shortcut"
	case Prefix:
		return "prefix"
	case Ambiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// Resolved reports whether the kind names a single command.
func (k Kind) Resolved() bool {
	return k == Exact || k == Shortcut || k == Prefix
}

// minPrefixLen is the shortest verb eligible for prefix matching.
const minPrefixLen = 2

// Resolution is the result of matching input against the command table.
type Resolution struct {
	Kind Kind
	// Command is set when Kind.Resolved() is true.
	Command *Command
	// Matches lists candidate names in table order when Kind is Ambiguous.
	Matches []string
	// Verb is the normalized first token of the input.
	Verb string
	// Word is the first token as typed.
	Word string
	// Args is the remainder of the input after the verb, unmodified.
	Args string
}

// Resolve maps raw input to a command. Matching stops at the first stage
// that succeeds: exact key, shortcut, then prefix for verbs of at least two
// characters.
//
// Postcondition: The result depends only on raw and the table contents.
func (r *Registry) Resolve(raw string) Resolution {
	p := Parse(raw)
	res := Resolution{Verb: p.Command, Word: p.Word, Args: p.RawArgs}
	if p.Command == "" {
		return res
	}

	if cmd, ok := r.byName[p.Command]; ok {
		res.Kind, res.Command = Exact, cmd
		return res
	}
	for _, cmd := range r.commands {
		for _, sc := range cmd.Shortcuts {
			if sc == p.Command {
				res.Kind, res.Command = Shortcut, cmd
				return res
			}
		}
	}

	if len([]rune(p.Command)) < minPrefixLen {
		return res
	}
	var matches []*Command
	for _, cmd := range r.commands {
		if len(cmd.Name) >= len(p.Command) && cmd.Name[:len(p.Command)] == p.Command {
			matches = append(matches, cmd)
		}
	}
	switch len(matches) {
	case 0:
	case 1:
		res.Kind, res.Command = Prefix, matches[0]
	default:
		res.Kind = Ambiguous
		res.Matches = make([]string, len(matches))
		for i, m := range matches {
			res.Matches[i] = m.Name
		}
	}
	return res
}
