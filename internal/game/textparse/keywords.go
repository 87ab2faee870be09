// Package textparse extracts structured effects from free-form rules text.
// Every matcher is heuristic: text that does not match simply yields an
// empty result, never an error.
package textparse

import (
	"regexp"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// morphPattern finds morph and megamorph. They carry a cost, so the
// all-keywords line check never accepts them.
var morphPattern = regexp.MustCompile(`Morph|Megamorph X?[1-9]?[0-9]*[WUBRGC]*`)

// NormalizeText turns the decklist line-break marker (a backslash, usually
// followed by a space) into a newline.
func NormalizeText(text string) string {
	text = strings.ReplaceAll(text, "\\ ", "\n")
	return strings.ReplaceAll(text, "\\", "\n")
}

// ParseKeywords returns the keywords a card has itself. A line counts only
// when every comma separated part is a keyword ("Flying, vigilance"); one
// unknown part rejects the whole line.
func ParseKeywords(text string) []string {
	var found []string
	seen := make(map[string]bool)
	add := func(keyword string) {
		if !seen[keyword] {
			seen[keyword] = true
			found = append(found, keyword)
		}
	}

	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, ",")
		words := make([]string, 0, len(parts))
		valid := true
		for _, part := range parts {
			word := rules.Capitalize(strings.TrimSpace(part))
			if !rules.IsKeyword(word) {
				valid = false
				break
			}
			words = append(words, word)
		}
		if valid {
			for _, keyword := range words {
				add(keyword)
			}
		}
	}

	if match := morphPattern.FindString(text); match != "" {
		switch strings.SplitN(match, " ", 2)[0] {
		case rules.KeywordMorph:
			add(rules.KeywordMorph)
		case rules.KeywordMegamorph:
			add(rules.KeywordMegamorph)
		}
	}
	return found
}

// HasMorph reports whether keywords let the card be cast face down.
func HasMorph(keywords []string) bool {
	for _, k := range keywords {
		if k == rules.KeywordMorph || k == rules.KeywordMegamorph {
			return true
		}
	}
	return false
}
