package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/effects"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

var (
	// "(Other) <things>(, <more things>, and <more things>) (you control) get +P/+T <other things>."
	anthemPattern = regexp.MustCompile(`(Other )?[\w]*s?(,? (and )?[\w]*s?)* (you control)? get [+-][1-9][0-9]*/[+-][1-9][0-9]*.*\.`)
	// Same shape without the power/toughness, for "Creatures you control have flying."
	grantPattern = regexp.MustCompile(`(Other )?[\w]*s?(,? (and )?[\w]*s?)* (you control)? have .*\.`)
	ptPattern    = regexp.MustCompile(`^[+-][1-9][0-9]*/[+-][1-9][0-9]*`)
)

// ParseAnthem extracts a continuous effect the card grants to permanents.
// Returns nil when the text has none, when the clause only lasts until end
// of turn, or when the clause is quoted (it belongs to a token or emblem).
//
// Type words are split on spaces, so "Attacking creatures" yields both
// "Attacking" and "Creature" and the anthem applies to anything matching
// either word.
func ParseAnthem(text string) *effects.Anthem {
	match := anthemPattern.FindString(text)
	if match == "" {
		match = grantPattern.FindString(text)
	}
	if match == "" {
		return nil
	}
	if strings.Contains(match, "until end of turn") {
		return nil
	}
	if strings.Contains(text, `"`+match+`"`) {
		return nil
	}

	anthem := &effects.Anthem{}
	words := strings.Split(match, " ")
	for i, w := range words {
		if w == "" {
			words = append(words[:i], words[i+1:]...)
			break
		}
	}
	if len(words) > 0 && words[0] == "Other" {
		anthem.Others = true
		words = words[1:]
	}

	for _, word := range words {
		if word == "you" || word == "get" {
			break
		}
		if word == "and" {
			continue
		}
		word = strings.TrimPrefix(word, " ")
		word = strings.TrimSuffix(word, ",")
		word = strings.TrimSuffix(word, "s")
		anthem.Types = append(anthem.Types, rules.Capitalize(strings.TrimRight(word, " ")))
	}

	for _, word := range words {
		pt := ptPattern.FindString(word)
		if pt == "" {
			continue
		}
		power, toughness, ok := splitPT(pt)
		if ok {
			anthem.Power = power
			anthem.Toughness = toughness
		}
		break
	}

	for _, keyword := range rules.Keywords {
		if strings.Contains(match, strings.ToLower(keyword)) {
			anthem.Keywords = append(anthem.Keywords, keyword)
		}
	}
	return anthem
}

func splitPT(pt string) (int, int, bool) {
	parts := strings.SplitN(pt, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	power, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	toughness, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return power, toughness, true
}
