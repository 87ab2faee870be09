package game

import (
	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game/effects"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// maxStateBasedPasses bounds the refresh loop. Every pass that does not
// settle removes at least one permanent, so the battlefield size is the
// real bound.
const maxStateBasedPasses = 64

func (g *GameState) applyAnthems() {
	permanents := make([]effects.Permanent, len(g.battlefield))
	for i, card := range g.battlefield {
		permanents[i] = card
	}
	effects.Propagate(permanents)
}

// Refresh recomputes continuous effects and then performs state-based
// actions, repeating until nothing more dies.
func (g *GameState) Refresh() []*Card {
	var died []*Card
	for pass := 0; pass < maxStateBasedPasses; pass++ {
		g.applyAnthems()
		dead := g.stateBased()
		if len(dead) == 0 {
			break
		}
		died = append(died, dead...)
	}
	return died
}

// stateBased puts creatures with zero toughness and planeswalkers with no
// counters into the graveyard.
func (g *GameState) stateBased() []*Card {
	var dead []*Card
	for _, card := range g.battlefield {
		switch {
		case card.IsCreature() && card.Toughness() == 0:
			dead = append(dead, card)
		case card.IsPlaneswalker() && card.Counters() == 0:
			dead = append(dead, card)
		}
	}
	for _, card := range dead {
		if err := g.moveCard(card, rules.ZoneGraveyard); err != nil {
			g.logger.Error("state-based action failed", zap.String("card", card.Name()), zap.Error(err))
			continue
		}
		g.logger.Debug("state-based death", zap.String("card", card.Name()))
	}
	if len(dead) > 0 {
		g.events.Publish(rules.NewEventWithAmount(rules.EventStateBasedActions, "", "", PlayerOne.String(), len(dead)))
	}
	return dead
}
