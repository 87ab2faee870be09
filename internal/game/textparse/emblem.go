package textparse

import (
	"regexp"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// EmblemSpec describes the emblem a planeswalker can create.
type EmblemSpec struct {
	Name    string
	Type    string
	Subtype string
	Text    string
}

var emblemTextPattern = regexp.MustCompile(`".+?"( and ".*")*`)

// ParseEmblem builds the emblem for the planeswalker named walker from its
// rules text. The emblem's abilities are the quoted strings of the text.
func ParseEmblem(walker, text string) (EmblemSpec, bool) {
	match := emblemTextPattern.FindString(text)
	if match == "" {
		return EmblemSpec{}, false
	}

	var lines []string
	for _, line := range strings.Split(match, `" and "`) {
		line = strings.TrimPrefix(line, `"`)
		line = strings.TrimSuffix(line, `"`)
		if !strings.HasSuffix(line, ".") {
			line += "."
		}
		lines = append(lines, line)
	}

	subtype := strings.TrimSuffix(strings.SplitN(walker, " ", 2)[0], ",")
	return EmblemSpec{
		Name:    "Emblem - " + walker,
		Type:    rules.TypeEmblem,
		Subtype: subtype,
		Text:    strings.Join(lines, "\n"),
	}, true
}
