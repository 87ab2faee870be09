package game

import (
	"strconv"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// splitQuery separates a trailing "nth match" number from a card query.
// "forest 3" asks for the third forest.
func splitQuery(query string) (string, int) {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "", 0
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return strings.Join(fields, " "), 0
	}
	return strings.Join(fields[:len(fields)-1], " "), max(n-1, 0)
}

// matchName compares a card name with a query. A double quoted query must
// match the whole name; otherwise any part of the name will do. Case is
// ignored either way.
func matchName(card *Card, name string) bool {
	if len(name) > 2 && strings.HasPrefix(name, `"`) && strings.HasSuffix(name, `"`) {
		return strings.EqualFold(card.Name(), name[1:len(name)-1])
	}
	return strings.Contains(strings.ToLower(card.Name()), strings.ToLower(name))
}

// pick returns the skip+1th card matching name, or the last match when
// there are fewer.
func pick(cards []*Card, name string, skip int) *Card {
	var found *Card
	for _, card := range cards {
		if !matchName(card, name) {
			continue
		}
		found = card
		if skip == 0 {
			break
		}
		skip--
	}
	return found
}

// FindIn looks a card up by name in a list such as the token catalog.
func FindIn(cards []*Card, query string) (*Card, error) {
	name, skip := splitQuery(query)
	if card := pick(cards, name, skip); card != nil {
		return card, nil
	}
	return nil, &NotFoundError{Search: name}
}

// FindCard resolves a user query against a zone. "card" is the first card
// of the zone, a card type name selects every card of that type, and
// anything else is matched against card names.
func (g *GameState) FindCard(zone rules.Zone, query string) (Selector, error) {
	name, skip := splitQuery(query)
	cards := g.Cards(zone)
	if strings.EqualFold(name, "card") && len(cards) > 0 {
		return SingleCard(cards[min(skip, len(cards)-1)]), nil
	}
	if t, ok := rules.TypeFromString(name); ok {
		return AllOfType(t), nil
	}
	if card := pick(cards, name, skip); card != nil {
		return SingleCard(card), nil
	}
	return Selector{}, &NotFoundError{Search: name}
}

// FindCards returns every card in zone matching query, ignoring any
// trailing number.
func (g *GameState) FindCards(zone rules.Zone, query string) []*Card {
	name, _ := splitQuery(query)
	var out []*Card
	for _, card := range g.Cards(zone) {
		if matchName(card, name) {
			out = append(out, card)
		}
	}
	return out
}

// FindPlayable looks for a card that can be played: the revealed top card
// of the library, then the hand, then the command zone.
func (g *GameState) FindPlayable(query string) (*Card, error) {
	name, _ := splitQuery(query)
	if top := g.RevealedTop(); top != nil && name != "" && matchName(top, name) {
		return top, nil
	}
	var notFound error
	for _, zone := range []rules.Zone{rules.ZoneHand, rules.ZoneCommand} {
		sel, err := g.FindCard(zone, query)
		if err != nil {
			notFound = err
			continue
		}
		if sel.Card() == nil {
			return nil, &NotFoundError{Search: name}
		}
		return sel.Card(), nil
	}
	return nil, notFound
}

// FindAnywhere looks a card up for viewing: the battlefield first, then the
// whole deck, then the token and emblem catalogs.
func (g *GameState) FindAnywhere(query string) (*Card, error) {
	name, skip := splitQuery(query)
	for _, cards := range [][]*Card{g.battlefield, g.deck, g.tokens, g.emblems} {
		if card := pick(cards, name, skip); card != nil {
			return card, nil
		}
	}
	return nil, &NotFoundError{Search: name}
}
