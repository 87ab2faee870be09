package game

import (
	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// EndTurn removes until end of turn effects without starting a new turn.
func (g *GameState) EndTurn() {
	for _, card := range g.battlefield {
		card.EndTurn()
	}
	g.turns.EnterStep(rules.StepEnd)
	g.events.Publish(rules.NewEventWithAmount(rules.EventEndTurn, "", "", PlayerOne.String(), g.Turn()))
}

// NextTurn ends the current turn and plays the untap, upkeep and draw
// steps of the next one, leaving it in the main step.
func (g *GameState) NextTurn() {
	g.EndTurn()
	g.turns.BeginTurn()

	for _, card := range g.battlefield {
		if containsText(card, card.Name()+" doesn't untap during your untap step") {
			continue
		}
		if card.Untap() {
			g.events.Publish(rules.NewEvent(rules.EventUntapped, card.ID(), "", PlayerOne.String()))
		}
	}

	g.turns.AdvanceStep()
	for _, card := range g.battlefield {
		card.NextTurn()
	}

	g.turns.AdvanceStep()
	g.Draw(1)

	g.turns.AdvanceStep()
	g.logger.Debug("turn started", zap.Int("turn", g.Turn()))
	g.events.Publish(rules.NewEventWithAmount(rules.EventNewTurn, "", "", PlayerOne.String(), g.Turn()))
}

// Mulligan shuffles the hand away and draws one card fewer than last time.
// The first mulligan of a commander game is free. Only allowed on turn 1.
func (g *GameState) Mulligan() error {
	if g.Turn() != 1 {
		return actionErrorf("You can only mulligan on turn 1.")
	}
	g.reshuffle()
	g.mulligans++
	free := 0
	if g.commander != nil {
		free = 1
	}
	size := max(0, g.cfg.OpeningHand-(g.mulligans-free))
	g.Draw(size)
	g.events.Publish(rules.NewEventWithAmount(rules.EventMulligan, "", "", PlayerOne.String(), size))
	return nil
}
