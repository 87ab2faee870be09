package game

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// Deck is a loaded decklist: the cards that make up the deck plus the
// tokens and emblems its cards can create.
type Deck struct {
	Name      string
	Cards     []*Card
	Commander *Card
	Tokens    []*Card
	Emblems   []*Card
}

// GameState owns every zone and both players of one playtesting session.
// It is not safe for concurrent use.
type GameState struct {
	cfg    config.GameConfig
	logger *zap.Logger
	events *rules.EventBus
	turns  *rules.TurnManager
	rng    *rand.Rand

	deck      []*Card
	commander *Card
	tokens    []*Card
	emblems   []*Card

	library     []*Card
	hand        []*Card
	battlefield []*Card
	graveyard   []*Card
	exile       []*Card

	players      [2]*Player
	mulligans    int
	commandPlays int
	history      []*Snapshot
}

// NewGame creates an empty game. A nil logger discards output. A zero
// seed in cfg seeds the shuffler from the clock.
func NewGame(cfg config.GameConfig, logger *zap.Logger) *GameState {
	if logger == nil {
		logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &GameState{
		cfg:    cfg,
		logger: logger,
		events: rules.NewEventBus(),
		turns:  rules.NewTurnManager(),
		rng:    rand.New(rand.NewSource(seed)),
	}
	g.players = [2]*Player{newPlayer(PlayerOne), newPlayer(PlayerTwo)}
	return g
}

// Events exposes the bus game notifications are published on.
func (g *GameState) Events() *rules.EventBus { return g.events }

// Load replaces the current deck and starts a new game with it.
func (g *GameState) Load(d *Deck) {
	g.deck = d.Cards
	g.commander = d.Commander
	g.tokens = d.Tokens
	g.emblems = d.Emblems
	if g.commander != nil {
		g.commander.setCommander()
	}
	g.logger.Info("deck loaded",
		zap.String("deck", d.Name),
		zap.Int("cards", len(d.Cards)),
		zap.Bool("commander", d.Commander != nil),
		zap.Int("tokens", len(d.Tokens)),
		zap.Int("emblems", len(d.Emblems)),
	)
	g.Reset()
}

// Reset starts the game over: fresh life totals, every card back in the
// library (the commander in the command zone), an opening hand, turn 1.
func (g *GameState) Reset() {
	life := g.cfg.StartingLife
	if g.commander != nil {
		life = g.cfg.CommanderStartingLife
	}
	for _, p := range g.players {
		p.reset(life)
	}
	g.mulligans = 0
	g.commandPlays = 0
	g.history = nil
	g.reshuffle()
	g.Draw(g.cfg.OpeningHand)
	g.turns.Reset()

	g.events.Publish(rules.NewEvent(rules.EventGameReset, "", "", ""))
	g.logger.Debug("game reset", zap.Int("life", life), zap.Int("library", len(g.library)))
}

// reshuffle puts every card of the deck back into the library.
func (g *GameState) reshuffle() {
	g.library = nil
	g.hand = nil
	g.battlefield = nil
	g.graveyard = nil
	g.exile = nil
	for _, card := range g.deck {
		card.reset()
		if card.IsCommander() {
			continue
		}
		g.library = append(g.library, card)
	}
	if g.commander != nil {
		g.commander.reset()
	}
	g.Shuffle()
}

// Shuffle randomizes the library.
func (g *GameState) Shuffle() {
	g.rng.Shuffle(len(g.library), func(i, j int) {
		g.library[i], g.library[j] = g.library[j], g.library[i]
	})
	g.events.Publish(rules.NewEventWithAmount(rules.EventLibraryShuffled, "", "", "", len(g.library)))
}

// Cards returns the ordered contents of a zone. The command zone holds the
// commander while it is there. Graveyard and exile list the newest card
// first. The returned slice must not be modified.
func (g *GameState) Cards(zone rules.Zone) []*Card {
	switch zone {
	case rules.ZoneLibrary, rules.ZoneTop, rules.ZoneBottom:
		return g.library
	case rules.ZoneHand:
		return g.hand
	case rules.ZoneBattlefield:
		return g.battlefield
	case rules.ZoneGraveyard:
		return g.graveyard
	case rules.ZoneExile:
		return g.exile
	case rules.ZoneCommand:
		if g.commander != nil && g.commander.Zone() == rules.ZoneCommand {
			return []*Card{g.commander}
		}
	}
	return nil
}

func (g *GameState) Deck() []*Card { return g.deck }
func (g *GameState) Commander() *Card { return g.commander }
func (g *GameState) Tokens() []*Card { return g.tokens }
func (g *GameState) Emblems() []*Card { return g.emblems }
func (g *GameState) Turn() int { return g.turns.TurnNumber() }
func (g *GameState) Step() rules.Step { return g.turns.CurrentStep() }
func (g *GameState) Mulligans() int { return g.mulligans }
func (g *GameState) CommandPlays() int { return g.commandPlays }
func (g *GameState) Player(id PlayerID) *Player { return g.players[id] }

// RevealedTop returns the top card of the library when a permanent lets it
// be played while revealed, and nil otherwise.
func (g *GameState) RevealedTop() *Card {
	if len(g.library) == 0 {
		return nil
	}
	for _, card := range g.battlefield {
		if containsText(card, "Play with the top card of your library revealed.") {
			return g.library[0]
		}
	}
	return nil
}

// TypeCount is the number of deck cards counted under one card type.
type TypeCount struct {
	Type  string
	Count int
}

// Count tallies the deck by type. A card counts once, under the first of
// its types in display order, so artifact creatures are creatures.
func (g *GameState) Count() []TypeCount {
	counts := make([]TypeCount, 0, len(rules.Types))
	counted := make(map[*Card]bool)
	for _, t := range rules.Types {
		n := 0
		for _, card := range g.deck {
			if !counted[card] && card.IsType(t) {
				counted[card] = true
				n++
			}
		}
		counts = append(counts, TypeCount{Type: t, Count: n})
	}
	return counts
}
