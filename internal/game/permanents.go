package game

import (
	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// each applies fn to every selected permanent.
func (g *GameState) each(sel Selector, fn func(*Card)) ([]*Card, error) {
	targets, err := g.resolve(sel, rules.ZoneBattlefield)
	if err != nil {
		return nil, err
	}
	for _, card := range targets {
		fn(card)
	}
	return targets, nil
}

// Tap taps the selected permanents.
func (g *GameState) Tap(sel Selector) ([]*Card, error) {
	return g.each(sel, func(c *Card) {
		if c.Tap() {
			g.events.Publish(rules.NewEvent(rules.EventTapped, c.ID(), "", PlayerOne.String()))
		}
	})
}

// Untap untaps the selected permanents.
func (g *GameState) Untap(sel Selector) ([]*Card, error) {
	return g.each(sel, func(c *Card) {
		if c.Untap() {
			g.events.Publish(rules.NewEvent(rules.EventUntapped, c.ID(), "", PlayerOne.String()))
		}
	})
}

// ModPower gives the selected creatures +n power until end of turn.
func (g *GameState) ModPower(sel Selector, n int) ([]*Card, error) {
	return g.each(sel, func(c *Card) { c.ModPower(n) })
}

// ModToughness gives the selected creatures +n toughness until end of turn.
func (g *GameState) ModToughness(sel Selector, n int) ([]*Card, error) {
	return g.each(sel, func(c *Card) { c.ModToughness(n) })
}

// ModCounters puts n counters on the selected permanents.
func (g *GameState) ModCounters(sel Selector, n int) ([]*Card, error) {
	return g.each(sel, func(c *Card) {
		c.ModCounters(n)
		g.events.Publish(rules.NewEventWithAmount(rules.EventCounterChanged, c.ID(), "", PlayerOne.String(), n))
	})
}

// ModPlusOne puts n +1/+1 counters on the selected creatures.
func (g *GameState) ModPlusOne(sel Selector, n int) ([]*Card, error) {
	return g.each(sel, func(c *Card) {
		c.ModPlusOne(n)
		g.events.Publish(rules.NewEventWithAmount(rules.EventCounterChanged, c.ID(), "", PlayerOne.String(), n))
	})
}

// GrantKeyword gives the selected permanents keyword until end of turn.
func (g *GameState) GrantKeyword(sel Selector, keyword string) ([]*Card, error) {
	if !rules.IsKeyword(keyword) {
		return nil, actionErrorf("%s is not a keyword.", keyword)
	}
	return g.each(sel, func(c *Card) { c.GrantKeyword(keyword) })
}

func (g *GameState) requireBattlefield(card *Card) error {
	if indexOf(g.battlefield, card) < 0 {
		return zoneErrorf("%s is not %s.", card.Name(), zonePhrase(rules.ZoneBattlefield))
	}
	return nil
}

// Transform flips a transform card on the battlefield.
func (g *GameState) Transform(card *Card) error {
	if err := g.requireBattlefield(card); err != nil {
		return err
	}
	if !card.transform() {
		return actionErrorf("%s can't transform.", card.Name())
	}
	g.events.Publish(rules.NewEvent(rules.EventTransformed, card.ID(), "", PlayerOne.String()))
	return nil
}

// FaceDown turns a face-up morph permanent face down.
func (g *GameState) FaceDown(card *Card) error {
	if err := g.requireBattlefield(card); err != nil {
		return err
	}
	if card.IsFaceDown() {
		return actionErrorf("%s is already face down.", card.Name())
	}
	if !card.morph() {
		return actionErrorf("%s doesn't have morph.", card.Name())
	}
	g.events.Publish(rules.NewEvent(rules.EventTurnedFaceDown, card.ID(), "", PlayerOne.String()))
	return nil
}

// FaceUp turns a face-down permanent face up. A megamorph card gets a
// +1/+1 counter.
func (g *GameState) FaceUp(card *Card) error {
	if err := g.requireBattlefield(card); err != nil {
		return err
	}
	if !card.IsFaceDown() {
		return actionErrorf("%s is already face up.", card.Name())
	}
	card.morph()
	if card.HasKeyword(rules.KeywordMegamorph) {
		card.ModPlusOne(1)
	}
	g.events.Publish(rules.NewEvent(rules.EventTurnedFaceUp, card.ID(), "", PlayerOne.String()))
	return nil
}

// CreateToken puts a copy of a token from the deck's token catalog onto the
// battlefield.
func (g *GameState) CreateToken(def *Card) (*Card, error) {
	return g.instantiate(def, rules.EventTokenCreated)
}

// CreateEmblem puts a copy of an emblem from the emblem catalog onto the
// battlefield.
func (g *GameState) CreateEmblem(def *Card) (*Card, error) {
	return g.instantiate(def, rules.EventEmblemCreated)
}

// CopyPermanent creates a token copy of a permanent. The copy joins the
// battlefield exactly as the original stands, so it is tapped, transformed,
// face down or summoning sick whenever the original is.
func (g *GameState) CopyPermanent(card *Card) (*Card, error) {
	if err := g.requireBattlefield(card); err != nil {
		return nil, err
	}
	token := card.Copy()
	token.zone = rules.ZoneBattlefield
	g.battlefield = append(g.battlefield, token)

	g.logger.Debug("permanent copied", zap.String("token", token.Name()), zap.String("from", card.Name()))
	g.events.Publish(rules.NewZoneEvent(rules.EventEntersTheBattlefield, token.ID(), token.Name(), rules.ZoneLibrary, rules.ZoneBattlefield))
	g.events.Publish(rules.NewEvent(rules.EventTokenCreated, token.ID(), card.ID(), PlayerOne.String()))
	return token, nil
}

func (g *GameState) instantiate(def *Card, event rules.EventType) (*Card, error) {
	token := def.Copy()
	token.zone = rules.ZoneLibrary
	if err := g.moveCard(token, rules.ZoneBattlefield); err != nil {
		return nil, err
	}
	g.logger.Debug("token created", zap.String("token", token.Name()), zap.String("from", def.Name()))
	g.events.Publish(rules.NewEvent(event, token.ID(), def.ID(), PlayerOne.String()))
	return token, nil
}
