package command

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlCommand is the on-disk shape of one command table entry.
type yamlCommand struct {
	Action        string   `yaml:"action"`
	Type          string   `yaml:"type"`
	Shortcuts     []string `yaml:"shortcuts"`
	Help          string   `yaml:"help"`
	IncludeInGame *bool    `yaml:"includeInGame"`
}

// LoadCommandsFile reads a command table from a YAML or JSON file.
//
// Precondition: path must name a readable file.
// Postcondition: Returns commands in file order or a non-nil error.
func LoadCommandsFile(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading command file %s: %w", path, err)
	}
	cmds, err := LoadCommands(data)
	if err != nil {
		return nil, fmt.Errorf("loading command file %s: %w", path, err)
	}
	return cmds, nil
}

// LoadCommands parses a command table. The document is either a mapping of
// command name to definition, or such a mapping under a top-level "commands"
// key. Entries with includeInGame set to false are skipped; absent means
// included.
//
// Postcondition: Returns commands in document order or a non-nil error.
func LoadCommands(data []byte) ([]Command, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing command YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("command document is empty")
	}
	table := doc.Content[0]
	if table.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(table.Content); i += 2 {
			if table.Content[i].Value == "commands" && table.Content[i+1].Kind == yaml.MappingNode {
				table = table.Content[i+1]
				break
			}
		}
	}
	if table.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("command table must be a mapping, line %d", table.Line)
	}

	cmds := make([]Command, 0, len(table.Content)/2)
	for i := 0; i+1 < len(table.Content); i += 2 {
		name := table.Content[i].Value
		var yc yamlCommand
		if err := table.Content[i+1].Decode(&yc); err != nil {
			return nil, fmt.Errorf("command %q: %w", name, err)
		}
		if yc.IncludeInGame != nil && !*yc.IncludeInGame {
			continue
		}
		cmds = append(cmds, Command{
			Name:      name,
			Action:    yc.Action,
			Type:      Type(yc.Type),
			Shortcuts: yc.Shortcuts,
			Help:      yc.Help,
		})
	}
	return cmds, nil
}
