package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

func testConfig() config.GameConfig {
	cfg := config.Default().Game
	cfg.Seed = 42
	return cfg
}

func newTestGame(t *testing.T) *GameState {
	t.Helper()
	return NewGame(testConfig(), zaptest.NewLogger(t))
}

func mustCard(t *testing.T, rec Record) *Card {
	t.Helper()
	card, err := NewCard(rec)
	require.NoError(t, err)
	return card
}

func bear(t *testing.T) *Card {
	return mustCard(t, Record{Name: "Grizzly Bears", Cost: "1G", Type: "Creature", Subtype: "Bear", Power: "2", Toughness: "2"})
}

func forest(t *testing.T) *Card {
	return mustCard(t, Record{Name: "Forest", Type: "Basic Land", Subtype: "Forest"})
}

// fillerDeck returns n vanilla lands.
func fillerDeck(t *testing.T, n int) []*Card {
	cards := make([]*Card, n)
	for i := range cards {
		cards[i] = mustCard(t, Record{Name: fmt.Sprintf("Plains %d", i), Type: "Basic Land", Subtype: "Plains"})
	}
	return cards
}

// loadedGame returns a game with a 60 card deck made of extra plus lands.
func loadedGame(t *testing.T, extra ...*Card) *GameState {
	t.Helper()
	g := newTestGame(t)
	cards := append(extra, fillerDeck(t, 60-len(extra))...)
	g.Load(&Deck{Name: "test", Cards: cards})
	return g
}

// putInHand moves card from wherever it is into the hand.
func putInHand(t *testing.T, g *GameState, card *Card) {
	t.Helper()
	if card.Zone() == rules.ZoneHand {
		return
	}
	_, err := g.MoveBetween(card.Zone(), rules.ZoneHand, card)
	require.NoError(t, err)
}

// putOnBattlefield plays card from the hand.
func putOnBattlefield(t *testing.T, g *GameState, card *Card) {
	t.Helper()
	putInHand(t, g, card)
	require.NoError(t, g.Play(card))
	require.Equal(t, rules.ZoneBattlefield, card.Zone())
}
