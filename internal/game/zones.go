package game

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

func indexOf(cards []*Card, c *Card) int {
	for i, card := range cards {
		if card == c {
			return i
		}
	}
	return -1
}

func remove(cards []*Card, c *Card) []*Card {
	if i := indexOf(cards, c); i >= 0 {
		return append(cards[:i], cards[i+1:]...)
	}
	return cards
}

func prepend(cards []*Card, c *Card) []*Card {
	return append([]*Card{c}, cards...)
}

func containsText(c *Card, s string) bool {
	return strings.Contains(c.Text(), s)
}

// container returns the list backing zone. The command zone has none.
func (g *GameState) container(zone rules.Zone) *[]*Card {
	switch zone {
	case rules.ZoneLibrary, rules.ZoneTop, rules.ZoneBottom:
		return &g.library
	case rules.ZoneHand:
		return &g.hand
	case rules.ZoneBattlefield:
		return &g.battlefield
	case rules.ZoneGraveyard:
		return &g.graveyard
	case rules.ZoneExile:
		return &g.exile
	}
	return nil
}

// moveCard moves card to the requested zone, keeping the zone lists in step
// with the card's zone tag.
func (g *GameState) moveCard(card *Card, to rules.Zone) error {
	return g.transfer(card, to, false)
}

// transfer does the work of moveCard. With shuffleSource set, a card taken
// out of the library leaves it shuffled before the card lands anywhere.
func (g *GameState) transfer(card *Card, to rules.Zone, shuffleSource bool) error {
	if err := card.checkMove(to); err != nil {
		return err
	}

	from := card.Zone()
	if list := g.container(from); list != nil {
		*list = remove(*list, card)
	}
	if shuffleSource && from == rules.ZoneLibrary {
		g.Shuffle()
	}

	actual, err := card.move(to)
	if err != nil {
		return err
	}
	g.place(card, to, actual)

	g.logger.Debug("card moved",
		zap.String("card", card.Name()),
		zap.Stringer("from", from),
		zap.Stringer("to", actual),
	)
	g.events.Publish(rules.NewZoneEvent(rules.EventZoneChange, card.ID(), card.Name(), from, actual))

	leaving := from == rules.ZoneBattlefield && actual != rules.ZoneBattlefield
	entering := from != rules.ZoneBattlefield && actual == rules.ZoneBattlefield
	if leaving {
		g.events.Publish(rules.NewZoneEvent(rules.EventLeavesTheBattlefield, card.ID(), card.Name(), from, actual))
		if to == rules.ZoneGraveyard && card.IsCreature() {
			g.events.Publish(rules.NewZoneEvent(rules.EventDies, card.ID(), card.Name(), from, actual))
		}
		if card.IsToken() {
			g.events.Publish(rules.NewZoneEvent(rules.EventTokenCeased, card.ID(), card.Name(), from, actual))
		}
	}
	if entering {
		trigger := card.enter()
		g.events.Publish(rules.NewZoneEvent(rules.EventEntersTheBattlefield, card.ID(), card.Name(), from, actual))
		if trigger {
			evt := rules.NewZoneEvent(rules.EventEnterTrigger, card.ID(), card.Name(), from, actual)
			evt.Description = card.Name() + " has an enter-the-battlefield trigger."
			g.events.Publish(evt)
		}
	}
	return nil
}

// place files a card that has just moved. Tokens anywhere but the
// battlefield cease to exist. Graveyard and exile are newest first, and a
// card put into the library at no particular position is shuffled in.
func (g *GameState) place(card *Card, requested, actual rules.Zone) {
	if card.IsToken() && actual != rules.ZoneBattlefield {
		return
	}
	switch actual {
	case rules.ZoneLibrary:
		switch requested {
		case rules.ZoneTop:
			g.library = prepend(g.library, card)
		case rules.ZoneBottom:
			g.library = append(g.library, card)
		default:
			g.library = append(g.library, card)
			g.Shuffle()
		}
	case rules.ZoneHand:
		g.hand = append(g.hand, card)
	case rules.ZoneBattlefield:
		g.battlefield = append(g.battlefield, card)
	case rules.ZoneGraveyard:
		g.graveyard = prepend(g.graveyard, card)
	case rules.ZoneExile:
		g.exile = prepend(g.exile, card)
	}
}

// Draw moves n cards from the top of the library to the hand. Drawing from
// an empty library loses the game instead of failing. It returns the cards
// drawn.
func (g *GameState) Draw(n int) []*Card {
	var drawn []*Card
	for i := 0; i < n; i++ {
		if len(g.library) == 0 {
			g.logger.Info("drew from an empty library")
			g.lose(PlayerOne)
			break
		}
		card := g.library[0]
		if err := g.moveCard(card, rules.ZoneHand); err != nil {
			break
		}
		drawn = append(drawn, card)
		g.events.Publish(rules.NewEvent(rules.EventDrewCard, card.ID(), "", PlayerOne.String()))
	}
	return drawn
}

// Mill puts the top n cards of the library into the graveyard, stopping
// early if the library runs out.
func (g *GameState) Mill(n int) []*Card {
	var milled []*Card
	for i := 0; i < n && len(g.library) > 0; i++ {
		card := g.library[0]
		if err := g.moveCard(card, rules.ZoneGraveyard); err != nil {
			break
		}
		milled = append(milled, card)
		g.events.Publish(rules.NewEvent(rules.EventMilled, card.ID(), "", PlayerOne.String()))
	}
	return milled
}

// Discard puts a card from the hand into the graveyard.
func (g *GameState) Discard(card *Card) error {
	if indexOf(g.hand, card) < 0 {
		return zoneErrorf("%s is not in your hand.", card.Name())
	}
	if err := g.moveCard(card, rules.ZoneGraveyard); err != nil {
		return err
	}
	g.events.Publish(rules.NewEvent(rules.EventDiscarded, card.ID(), "", PlayerOne.String()))
	return nil
}

// playable reports whether card may be played from where it is.
func (g *GameState) playable(card *Card) bool {
	switch {
	case indexOf(g.hand, card) >= 0:
		return true
	case card.IsCommander() && card.Zone() == rules.ZoneCommand:
		return true
	case card == g.RevealedTop():
		return true
	}
	return false
}

// destination returns where card goes when it is played.
func destination(card *Card) (rules.Zone, bool) {
	switch {
	case card.IsType(rules.TypeInstant) || card.IsType(rules.TypeSorcery):
		if containsText(card, "Exile "+card.Name()) {
			return rules.ZoneExile, true
		}
		return rules.ZoneGraveyard, true
	case card.IsType(rules.TypeArtifact), card.IsType(rules.TypeCreature),
		card.IsType(rules.TypeEnchantment), card.IsType(rules.TypeLand),
		card.IsType(rules.TypePlaneswalker):
		return rules.ZoneBattlefield, true
	}
	return 0, false
}

// Play plays card from the hand, the command zone (the commander), or the
// top of the library when it is revealed and playable. Instants and
// sorceries resolve straight to the graveyard, or to exile when they exile
// themselves; permanents enter the battlefield.
func (g *GameState) Play(card *Card) error {
	if !g.playable(card) {
		return zoneErrorf("%s needs to be in your hand to play it.", card.Name())
	}
	to, ok := destination(card)
	if !ok {
		return actionErrorf("%s can't be played.", card.Name())
	}
	fromCommand := card.IsCommander() && card.Zone() == rules.ZoneCommand
	if err := g.moveCard(card, to); err != nil {
		return err
	}
	if fromCommand {
		g.commandPlays++
	}
	g.logger.Debug("card played", zap.String("card", card.Name()), zap.Stringer("to", card.Zone()))
	g.events.Publish(rules.NewEvent(rules.EventSpellCast, card.ID(), card.ID(), PlayerOne.String()))
	return nil
}

// PlayFaceDown casts a morph card from the hand as a face-down 2/2.
func (g *GameState) PlayFaceDown(card *Card) error {
	if indexOf(g.hand, card) < 0 {
		return zoneErrorf("%s needs to be in your hand to play it.", card.Name())
	}
	if !card.CanMorph() {
		return actionErrorf("%s doesn't have morph.", card.Name())
	}
	card.morph()
	if err := g.moveCard(card, rules.ZoneBattlefield); err != nil {
		card.morph()
		return err
	}
	g.events.Publish(rules.NewEvent(rules.EventTurnedFaceDown, card.ID(), "", PlayerOne.String()))
	return nil
}

// leaveBattlefield moves every selected permanent to zone to. Permanents for
// which stay returns true are left alone. All moves are checked before any
// is made.
func (g *GameState) leaveBattlefield(sel Selector, to rules.Zone, stay func(*Card) bool) ([]*Card, error) {
	targets, err := g.resolve(sel, rules.ZoneBattlefield)
	if err != nil {
		return nil, err
	}
	var moving []*Card
	for _, card := range targets {
		if stay != nil && stay(card) {
			continue
		}
		if err := card.checkMove(to); err != nil {
			return nil, err
		}
		moving = append(moving, card)
	}
	for _, card := range moving {
		if err := g.moveCard(card, to); err != nil {
			return nil, err
		}
	}
	return moving, nil
}

// Kill destroys the selected permanents. Indestructible ones survive.
func (g *GameState) Kill(sel Selector) ([]*Card, error) {
	return g.leaveBattlefield(sel, rules.ZoneGraveyard, func(c *Card) bool {
		return c.HasKeyword(rules.KeywordIndestructible)
	})
}

// Sacrifice puts the selected permanents into the graveyard.
func (g *GameState) Sacrifice(sel Selector) ([]*Card, error) {
	return g.leaveBattlefield(sel, rules.ZoneGraveyard, nil)
}

// Exile exiles the selected permanents.
func (g *GameState) Exile(sel Selector) ([]*Card, error) {
	return g.leaveBattlefield(sel, rules.ZoneExile, nil)
}

// Bounce returns the selected permanents to the hand.
func (g *GameState) Bounce(sel Selector) ([]*Card, error) {
	return g.leaveBattlefield(sel, rules.ZoneHand, nil)
}

// MoveBetween moves a card from one zone to another. Moving from Top or
// Bottom takes that card of the library and card must be nil. Taking a card
// out of the library shuffles it.
func (g *GameState) MoveBetween(from, to rules.Zone, card *Card) (*Card, error) {
	switch from {
	case rules.ZoneTop, rules.ZoneBottom:
		if card != nil {
			return nil, zoneErrorf("Can't move a specific card from top or bottom.")
		}
		if len(g.library) == 0 {
			return nil, &NotFoundError{Search: "Card"}
		}
		card = g.library[0]
		if from == rules.ZoneBottom {
			card = g.library[len(g.library)-1]
		}
	default:
		if card == nil {
			return nil, &NotFoundError{Search: "Card"}
		}
		if indexOf(g.Cards(from), card) < 0 {
			return nil, zoneErrorf("%s is not %s.", card.Name(), zonePhrase(from))
		}
	}
	if err := g.transfer(card, to, from == rules.ZoneLibrary); err != nil {
		return nil, err
	}
	return card, nil
}

// Fetch searches the library for card and puts it into the hand.
func (g *GameState) Fetch(card *Card) error {
	_, err := g.MoveBetween(rules.ZoneLibrary, rules.ZoneHand, card)
	return err
}

// Top returns the top n cards of the library without moving them.
func (g *GameState) Top(n int) []*Card {
	n = min(max(n, 0), len(g.library))
	return append([]*Card(nil), g.library[:n]...)
}
