package game

import (
	"strconv"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/textparse"
)

// NewToken builds the catalog entry for a token a card creates. Tokens have
// no mana cost, so the color comes from the token's description.
func NewToken(spec textparse.TokenSpec) (*Card, error) {
	card, err := NewCard(Record{
		Name:      spec.Name,
		Type:      spec.Type,
		Subtype:   spec.Subtype,
		Power:     strconv.Itoa(spec.Power),
		Toughness: strconv.Itoa(spec.Toughness),
		Text:      spec.Text,
	})
	if err != nil {
		return nil, err
	}
	if spec.Color != "" {
		card.front.color = spec.Color
	}
	return card, nil
}

// NewEmblem builds the catalog entry for a planeswalker's emblem.
func NewEmblem(spec textparse.EmblemSpec) (*Card, error) {
	return NewCard(Record{
		Name:    spec.Name,
		Type:    spec.Type,
		Subtype: spec.Subtype,
		Text:    spec.Text,
	})
}

// BuildCatalog collects the tokens and emblems the cards can create, from
// any face whose text mentions a token or an emblem. Identical tokens and
// emblems of the same planeswalker are kept once.
func BuildCatalog(cards []*Card) (tokens, emblems []*Card, err error) {
	var specs []textparse.TokenSpec
	walkers := make(map[string]bool)
	for _, card := range cards {
		for _, f := range faces(card) {
			if strings.Contains(f.text, "token") {
				if spec, ok := textparse.ParseToken(f.text); ok && !seenToken(specs, spec) {
					token, err := NewToken(spec)
					if err != nil {
						return nil, nil, err
					}
					specs = append(specs, spec)
					tokens = append(tokens, token)
				}
			}
			if strings.Contains(f.text, "emblem") && !walkers[f.name] {
				if spec, ok := textparse.ParseEmblem(f.name, f.text); ok {
					emblem, err := NewEmblem(spec)
					if err != nil {
						return nil, nil, err
					}
					walkers[f.name] = true
					emblems = append(emblems, emblem)
				}
			}
		}
	}
	return tokens, emblems, nil
}

// faces returns the printed faces of a card, back face included for
// transform and split cards.
func faces(card *Card) []face {
	out := []face{card.front}
	if card.Linked() {
		out = append(out, card.back.front)
	}
	return out
}

func seenToken(specs []textparse.TokenSpec, spec textparse.TokenSpec) bool {
	for _, s := range specs {
		if s.Same(spec) {
			return true
		}
	}
	return false
}
