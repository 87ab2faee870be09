package deck

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlDeck is the YAML decklist layout:
//
//	name: Elves
//	cards:
//	  - count: 4
//	    name: Llanowar Elves
//	    cost: G
//	    type: Creature
//	    ...
type yamlDeck struct {
	Name  string      `yaml:"name"`
	Cards []yaml.Node `yaml:"cards"`
}

// ParseYAML reads a YAML decklist. It returns the deck's name, which may be
// empty, and its entries. An entry that gives only a name is short.
func ParseYAML(r io.Reader) (string, []Entry, error) {
	var d yamlDeck
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return "", nil, nil
		}
		return "", nil, fmt.Errorf("decode yaml decklist: %w", err)
	}

	entries := make([]Entry, 0, len(d.Cards))
	for _, node := range d.Cards {
		var e Entry
		if err := node.Decode(&e); err != nil {
			return "", nil, &LineError{Line: node.Line, Err: fmt.Errorf("%w: %v", ErrSyntax, err)}
		}
		e.Line = node.Line
		if e.Commander {
			e.Count = 1
		}
		if e.Count < 1 {
			return "", nil, &LineError{Line: e.Line, Err: fmt.Errorf("%w for %s", ErrCount, e.Name)}
		}
		e.Short = e.Type == "" && e.Cost == "" && e.Text == "" && e.Power == "" && e.Toughness == ""
		entries = append(entries, e)
	}
	return d.Name, entries, nil
}
