package game

import (
	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// AttackResult is the damage an attack dealt to player two.
type AttackResult struct {
	Attackers       []*Card
	Damage          int
	Poison          int
	CommanderDamage int
}

// CanAttack returns nil if card may be declared as an attacker.
func (g *GameState) CanAttack(card *Card) error {
	if err := g.requireBattlefield(card); err != nil {
		return err
	}
	switch {
	case !card.IsCreature():
		return actionErrorf("%s isn't a creature.", card.Name())
	case card.SummoningSick():
		return actionErrorf("%s has summoning sickness and can't attack this turn.", card.Name())
	case card.IsTapped():
		return actionErrorf("%s is tapped and can't attack.", card.Name())
	}
	return nil
}

// EligibleAttackers returns every creature that can attack.
func (g *GameState) EligibleAttackers() []*Card {
	var out []*Card
	for _, card := range g.battlefield {
		if g.CanAttack(card) == nil {
			out = append(out, card)
		}
	}
	return out
}

// Attack attacks player two with attackers. Double strike deals damage
// twice, infect deals poison instead, and the commander deals commander
// damage. Attackers without vigilance tap. Nothing happens unless every
// attacker is legal.
func (g *GameState) Attack(attackers []*Card) (AttackResult, error) {
	var result AttackResult
	seen := make(map[*Card]bool)
	for _, card := range attackers {
		if seen[card] {
			continue
		}
		if err := g.CanAttack(card); err != nil {
			return AttackResult{}, err
		}
		seen[card] = true
		result.Attackers = append(result.Attackers, card)
	}

	g.applyAnthems()
	g.turns.EnterStep(rules.StepCombat)
	for _, card := range result.Attackers {
		damage := card.Power()
		if card.HasKeyword(rules.KeywordDoubleStrike) {
			damage *= 2
		}
		switch {
		case card.HasKeyword(rules.KeywordInfect):
			result.Poison += damage
		case card.IsCommander():
			result.CommanderDamage += damage
		default:
			result.Damage += damage
		}
		if !card.HasKeyword(rules.KeywordVigilance) {
			card.Tap()
		}
	}

	g.events.Publish(rules.NewEventWithAmount(rules.EventAttacked, PlayerTwo.String(), "", PlayerOne.String(), len(result.Attackers)))
	if result.Damage > 0 {
		g.ModStat(PlayerTwo, StatLife, -result.Damage)
	}
	if result.Poison > 0 {
		g.ModStat(PlayerTwo, StatPoison, result.Poison)
	}
	if result.CommanderDamage > 0 {
		g.ModStat(PlayerTwo, StatCommander, result.CommanderDamage)
	}
	g.logger.Debug("attacked",
		zap.Int("attackers", len(result.Attackers)),
		zap.Int("damage", result.Damage),
		zap.Int("poison", result.Poison),
		zap.Int("commander_damage", result.CommanderDamage),
	)
	return result, nil
}
