package game

import (
	"fmt"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// Selector picks what an operation acts on: a single card, or every card in
// the zone whose type line contains a card type.
type Selector struct {
	card     *Card
	cardType string
}

// SingleCard selects exactly c.
func SingleCard(c *Card) Selector { return Selector{card: c} }

// AllOfType selects every card of type t ("Creature", "Land", ...).
func AllOfType(t string) Selector { return Selector{cardType: t} }

// Card returns the selected card, or nil for a type selector.
func (s Selector) Card() *Card { return s.card }

// Type returns the selected card type for a type selector.
func (s Selector) Type() (string, bool) { return s.cardType, s.cardType != "" }

func (s Selector) String() string {
	if s.cardType != "" {
		return "all " + s.cardType
	}
	if s.card != nil {
		return s.card.Name()
	}
	return "nothing"
}

// resolve turns a selector into the cards it names in zone. A single card
// that is not in zone is a zone error. The result is a fresh slice, so the
// caller may move the cards while iterating.
func (g *GameState) resolve(sel Selector, zone rules.Zone) ([]*Card, error) {
	cards := g.Cards(zone)
	if t, ok := sel.Type(); ok {
		var out []*Card
		for _, c := range cards {
			if c.IsType(t) {
				out = append(out, c)
			}
		}
		return out, nil
	}
	if sel.card == nil {
		return nil, &NotFoundError{Search: "card"}
	}
	if indexOf(cards, sel.card) < 0 {
		return nil, zoneErrorf("%s is not %s.", sel.card.Name(), zonePhrase(zone))
	}
	return []*Card{sel.card}, nil
}

// zonePhrase names a zone the way an error message reads it.
func zonePhrase(zone rules.Zone) string {
	switch zone {
	case rules.ZoneBattlefield:
		return "on the battlefield"
	case rules.ZoneHand:
		return "in your hand"
	case rules.ZoneCommand:
		return "in the command zone"
	case rules.ZoneTop:
		return "on top of your library"
	case rules.ZoneBottom:
		return "on the bottom of your library"
	default:
		return fmt.Sprintf("in your %s", strings.ToLower(zone.String()))
	}
}
