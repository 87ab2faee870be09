package game

import (
	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// PlayerID identifies one of the two players. Player one is the deck being
// tested; player two is the opponent it attacks.
type PlayerID int

const (
	PlayerOne PlayerID = iota
	PlayerTwo
)

func (id PlayerID) String() string {
	if id == PlayerTwo {
		return "p2"
	}
	return "p1"
}

func (id PlayerID) opponent() PlayerID { return 1 - id }

// Stat is a player statistic that commands can change.
type Stat string

const (
	StatLife      Stat = "life"
	StatPoison    Stat = "poison"
	StatCommander Stat = "commander"
)

// Player tracks the totals a player can lose by.
type Player struct {
	ID              PlayerID
	Life            int
	Poison          int
	CommanderDamage int
	Won             bool
}

func newPlayer(id PlayerID) *Player {
	return &Player{ID: id}
}

func (p *Player) reset(life int) {
	p.Life = life
	p.Poison = 0
	p.CommanderDamage = 0
	p.Won = false
}

// ModStat changes a statistic of player id by n and awards the game to the
// opponent when a loss condition is reached. Commander damage is also life
// loss.
func (g *GameState) ModStat(id PlayerID, stat Stat, n int) {
	p := g.players[id]
	lost := false
	event := rules.EventLifeChanged
	switch stat {
	case StatLife:
		p.Life += n
		lost = p.Life <= 0
	case StatPoison:
		event = rules.EventPoisonChanged
		p.Poison += n
		lost = p.Poison >= g.cfg.PoisonLimit
	case StatCommander:
		event = rules.EventCommanderDamaged
		p.CommanderDamage += n
		p.Life -= n
		lost = p.CommanderDamage >= g.cfg.CommanderDamageLimit || p.Life <= 0
	default:
		return
	}
	g.events.Publish(rules.NewEventWithAmount(event, id.String(), "", id.String(), n))
	if lost {
		g.lose(id)
	}
}

// lose marks id's opponent as the winner.
func (g *GameState) lose(id PlayerID) {
	winner := g.players[id.opponent()]
	if winner.Won {
		return
	}
	winner.Won = true
	g.logger.Info("player lost", zap.Stringer("player", id), zap.Stringer("winner", winner.ID))
	g.events.Publish(rules.NewEvent(rules.EventPlayerLost, id.String(), "", id.String()))
}

// GameOver reports whether either player has won.
func (g *GameState) GameOver() bool {
	return g.players[PlayerOne].Won || g.players[PlayerTwo].Won
}

// Winner returns the winning player, if there is one.
func (g *GameState) Winner() (PlayerID, bool) {
	for _, p := range g.players {
		if p.Won {
			return p.ID, true
		}
	}
	return 0, false
}
