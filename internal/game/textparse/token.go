package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// TokenSpec describes a token some card can create.
type TokenSpec struct {
	Name      string
	Type      string
	Subtype   string
	Color     string
	Power     int
	Toughness int
	Text      string
}

var (
	tokenPTPattern    = regexp.MustCompile(`X?([0-9]+)/X?([0-9]+)`)
	tokenColorPattern = regexp.MustCompile(`\b(white|blue|black|red|green|colorless)(?: and (white|blue|black|red|green))?\b`)
	tokenTypePattern  = regexp.MustCompile(`(legendary [^.]*?)?((?:[A-Z][a-z]* )+)((?:(?:enchantment|artifact|creature) ){1,2})token`)
	tokenTextPattern  = regexp.MustCompile(`tokens? with ([a-z]+(?:(?:,| and|, and) [a-z]+)*)`)

	// keywordJoiner rewrites "flying and vigilance" into a keyword line.
	keywordJoiner = strings.NewReplacer(", and ", ", ", " and ", ", ")
)

// ParseToken builds the definition of the token described in text, e.g.
// "create a 1/1 white Soldier creature token with lifelink". It needs a
// power/toughness pair, a color, and a type clause; anything less yields
// false.
func ParseToken(text string) (TokenSpec, bool) {
	var spec TokenSpec

	pt := tokenPTPattern.FindStringSubmatch(text)
	if pt == nil {
		return spec, false
	}
	spec.Power, _ = strconv.Atoi(pt[1])
	spec.Toughness, _ = strconv.Atoi(pt[2])

	color := tokenColorPattern.FindStringSubmatch(text)
	if color == nil {
		return spec, false
	}
	spec.Color = rules.Capitalize(color[1])
	if color[2] != "" {
		spec.Color += " " + rules.Capitalize(color[2])
	}

	typ := tokenTypePattern.FindStringSubmatch(text)
	if typ == nil {
		return spec, false
	}
	var typeLine []string
	if typ[1] != "" {
		typeLine = append(typeLine, rules.SupertypeLegendary)
	}
	typeLine = append(typeLine, rules.TypeToken)
	cardTypes := strings.Fields(typ[3])
	for _, t := range []string{rules.TypeEnchantment, rules.TypeArtifact, rules.TypeCreature} {
		for _, found := range cardTypes {
			if found == strings.ToLower(t) {
				typeLine = append(typeLine, t)
				break
			}
		}
	}
	spec.Type = strings.Join(typeLine, " ")
	spec.Subtype = strings.TrimSpace(typ[2])
	spec.Name = spec.Subtype

	if with := tokenTextPattern.FindStringSubmatch(text); with != nil {
		abilities := keywordJoiner.Replace(with[1])
		spec.Text = strings.ToUpper(abilities[:1]) + abilities[1:]
	}
	return spec, true
}

// Same reports whether two specs describe the same token.
func (s TokenSpec) Same(other TokenSpec) bool {
	return s.Name == other.Name &&
		s.Color == other.Color &&
		s.Power == other.Power &&
		s.Toughness == other.Toughness &&
		s.Text == other.Text
}
