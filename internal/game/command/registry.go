package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate is wrapped by every name or shortcut collision error.
var ErrDuplicate = errors.New("duplicate command token")

// Registry is an ordered command table. Order is significant: shortcut scans
// and ambiguous prefix matches report commands in table order.
type Registry struct {
	commands  []*Command
	byName    map[string]*Command
	shortcuts map[string]*Command
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or shortcut, and no
// shortcut may equal a canonical name.
// Postcondition: Returns a Registry preserving the order of cmds, or an error
// describing the first collision or malformed command.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands:  make([]*Command, 0, len(cmds)),
		byName:    make(map[string]*Command, len(cmds)),
		shortcuts: make(map[string]*Command),
	}

	for i := range cmds {
		cmd := cmds[i]
		cmd.Name = strings.ToLower(strings.TrimSpace(cmd.Name))
		if cmd.Name == "" || strings.ContainsFunc(cmd.Name, isSpace) {
			return nil, fmt.Errorf("command %d: name %q must be a single non-empty token", i, cmds[i].Name)
		}
		if cmd.Action == "" {
			return nil, fmt.Errorf("command %q: action must not be empty", cmd.Name)
		}
		if !cmd.Type.Valid() {
			return nil, fmt.Errorf("command %q: type must be one of [system, movement, action], got %q", cmd.Name, cmd.Type)
		}
		if _, exists := r.byName[cmd.Name]; exists {
			return nil, fmt.Errorf("%w: command name %q", ErrDuplicate, cmd.Name)
		}
		if owner, exists := r.shortcuts[cmd.Name]; exists {
			return nil, fmt.Errorf("%w: command name %q is already a shortcut of %q", ErrDuplicate, cmd.Name, owner.Name)
		}

		shortcuts := make([]string, 0, len(cmd.Shortcuts))
		for _, sc := range cmd.Shortcuts {
			sc = strings.ToLower(strings.TrimSpace(sc))
			if sc == "" {
				return nil, fmt.Errorf("command %q: empty shortcut", cmd.Name)
			}
			if _, exists := r.byName[sc]; exists || sc == cmd.Name {
				return nil, fmt.Errorf("%w: shortcut %q of %q is a command name", ErrDuplicate, sc, cmd.Name)
			}
			if owner, exists := r.shortcuts[sc]; exists {
				return nil, fmt.Errorf("%w: shortcut %q used by %q and %q", ErrDuplicate, sc, owner.Name, cmd.Name)
			}
			shortcuts = append(shortcuts, sc)
		}
		cmd.Shortcuts = shortcuts

		c := &cmd
		r.commands = append(r.commands, c)
		r.byName[c.Name] = c
		for _, sc := range c.Shortcuts {
			r.shortcuts[sc] = c
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Require checks that every named command is present.
//
// Postcondition: Returns nil, or an error listing every missing name.
func (r *Registry) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := r.byName[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("command table is missing required commands: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Lookup returns the command with the given canonical name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Commands returns every command in table order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}

// ByType returns the commands of the given type in table order.
func (r *Registry) ByType(t Type) []*Command {
	var out []*Command
	for _, c := range r.commands {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
