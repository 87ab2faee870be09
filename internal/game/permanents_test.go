package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roryrai/MTGplaytester/internal/game/mana"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

func delver(t *testing.T) *Card {
	t.Helper()
	front := mustCard(t, Record{
		Name: "Delver of Secrets", Cost: "U", Type: "Creature", Subtype: "Human Wizard",
		Power: "1", Toughness: "1", Link: LinkTransform, LinkedName: "Insectile Aberration",
	})
	back := mustCard(t, Record{
		Name: "Insectile Aberration", Cost: mana.TransformSentinel, Type: "Creature", Subtype: "Human Insect",
		Power: "3", Toughness: "2", Text: "Flying", Link: LinkTransform, LinkedName: "Delver of Secrets",
	})
	require.True(t, front.LinkBackFace(back))
	return front
}

func TestTapUntapPublishes(t *testing.T) {
	land := forest(t)
	g := loadedGame(t, land)
	putOnBattlefield(t, g, land)

	var seen []rules.EventType
	g.Events().Subscribe(func(e rules.Event) { seen = append(seen, e.Type) })

	_, err := g.Tap(SingleCard(land))
	require.NoError(t, err)
	_, err = g.Tap(SingleCard(land))
	require.NoError(t, err)
	_, err = g.Untap(SingleCard(land))
	require.NoError(t, err)

	assert.Equal(t, []rules.EventType{rules.EventTapped, rules.EventUntapped}, seen)
}

func TestPermanentOperationsNeedBattlefield(t *testing.T) {
	creature := bear(t)
	g := loadedGame(t, creature)
	putInHand(t, g, creature)

	ops := map[string]func() error{
		"tap":       func() error { _, err := g.Tap(SingleCard(creature)); return err },
		"power":     func() error { _, err := g.ModPower(SingleCard(creature), 1); return err },
		"counters":  func() error { _, err := g.ModCounters(SingleCard(creature), 1); return err },
		"transform": func() error { return g.Transform(creature) },
		"copy":      func() error { _, err := g.CopyPermanent(creature); return err },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			var zoneErr *ZoneError
			err := op()
			require.True(t, errors.As(err, &zoneErr), "got %v", err)
			assert.Equal(t, "Grizzly Bears is not on the battlefield.", err.Error())
		})
	}
}

func TestGrantKeywordRejectsUnknown(t *testing.T) {
	creature := bear(t)
	g := loadedGame(t, creature)
	putOnBattlefield(t, g, creature)

	_, err := g.GrantKeyword(SingleCard(creature), "Banding")
	var actionErr *ActionError
	require.True(t, errors.As(err, &actionErr))

	_, err = g.GrantKeyword(AllOfType(rules.TypeCreature), rules.KeywordFlying)
	require.NoError(t, err)
	assert.True(t, creature.HasKeyword(rules.KeywordFlying))
}

func TestTransform(t *testing.T) {
	card := delver(t)
	creature := bear(t)
	g := loadedGame(t, card, creature)
	putOnBattlefield(t, g, card)
	putOnBattlefield(t, g, creature)

	require.NoError(t, g.Transform(card))
	assert.Equal(t, "Insectile Aberration", card.Name())
	assert.True(t, card.HasKeyword(rules.KeywordFlying))

	require.NoError(t, g.Transform(card))
	assert.Equal(t, "Delver of Secrets", card.Name())

	var actionErr *ActionError
	require.True(t, errors.As(g.Transform(creature), &actionErr))
}

func TestMorph(t *testing.T) {
	card := mustCard(t, Record{
		Name: "Den Protector", Cost: "1G", Type: "Creature", Subtype: "Human Warrior",
		Power: "2", Toughness: "1", Text: "Megamorph 1G",
	})
	g := loadedGame(t, card)
	putInHand(t, g, card)

	require.NoError(t, g.PlayFaceDown(card))
	assert.Equal(t, rules.ZoneBattlefield, card.Zone())
	assert.Equal(t, "Morph", card.Name())
	assert.True(t, card.IsFaceDown())

	var actionErr *ActionError
	require.True(t, errors.As(g.FaceDown(card), &actionErr), "already face down")

	require.NoError(t, g.FaceUp(card))
	assert.Equal(t, "Den Protector", card.Name())
	assert.Equal(t, 1, card.PlusOne())
	assert.Equal(t, 3, card.Power())
	assert.Equal(t, 2, card.Toughness())
	require.True(t, errors.As(g.FaceUp(card), &actionErr), "already face up")

	require.NoError(t, g.FaceDown(card))
	assert.Equal(t, 3, card.Power(), "counters stay on a face-down permanent")

	_, err := g.Bounce(SingleCard(card))
	require.NoError(t, err)
	assert.False(t, card.IsFaceDown())
	assert.Equal(t, "Den Protector", card.Name())
}

func TestPlayFaceDownNeedsMorph(t *testing.T) {
	creature := bear(t)
	g := loadedGame(t, creature)
	putInHand(t, g, creature)

	var actionErr *ActionError
	require.True(t, errors.As(g.PlayFaceDown(creature), &actionErr))
	assert.Equal(t, rules.ZoneHand, creature.Zone())
}

func TestCopyPermanent(t *testing.T) {
	creature := bear(t)
	g := loadedGame(t, creature)
	putOnBattlefield(t, g, creature)
	_, err := g.ModPlusOne(SingleCard(creature), 2)
	require.NoError(t, err)
	g.NextTurn()
	require.False(t, creature.SummoningSick())

	created, entered := 0, 0
	g.Events().SubscribeTyped(rules.EventTokenCreated, func(rules.Event) { created++ })
	g.Events().SubscribeTyped(rules.EventEntersTheBattlefield, func(rules.Event) { entered++ })

	cp, err := g.CopyPermanent(creature)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, entered)
	assert.True(t, cp.IsToken())
	assert.Equal(t, "Token Creature", cp.TypeLine())
	assert.Equal(t, 4, cp.Power(), "copies keep their counters")
	assert.Equal(t, 2, cp.PlusOne())
	assert.False(t, cp.SummoningSick(), "a copy does not enter anew")
	assert.Equal(t, rules.ZoneBattlefield, cp.Zone())
	assert.Contains(t, g.Cards(rules.ZoneBattlefield), cp)

	_, err = g.Kill(SingleCard(cp))
	require.NoError(t, err)
	assert.NotContains(t, g.Cards(rules.ZoneGraveyard), cp)
	assert.Equal(t, rules.ZoneBattlefield, creature.Zone())
}

func TestCopyPermanentKeepsState(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(t *testing.T, g *GameState, card *Card)
		card      func(t *testing.T) *Card
		wantName  string
		power     int
		toughness int
		tapped    bool
		check     func(t *testing.T, cp *Card)
	}{
		{
			name: "transformed, tapped and countered",
			card: delver,
			setup: func(t *testing.T, g *GameState, card *Card) {
				require.NoError(t, g.Transform(card))
				_, err := g.ModPlusOne(SingleCard(card), 2)
				require.NoError(t, err)
				_, err = g.Tap(SingleCard(card))
				require.NoError(t, err)
			},
			wantName: "Insectile Aberration",
			power:    5, toughness: 4, tapped: true,
			check: func(t *testing.T, cp *Card) {
				assert.True(t, cp.IsTransformed())
				assert.True(t, cp.HasKeyword(rules.KeywordFlying))
				assert.Equal(t, "Token Creature", cp.TypeLine())
			},
		},
		{
			name: "face down",
			card: func(t *testing.T) *Card {
				return mustCard(t, Record{
					Name: "Den Protector", Cost: "1G", Type: "Creature", Subtype: "Human Warrior",
					Power: "2", Toughness: "1", Text: "Megamorph 1G",
				})
			},
			wantName: "Morph",
			power:    2, toughness: 2,
			check: func(t *testing.T, cp *Card) {
				assert.True(t, cp.IsFaceDown())
				assert.Equal(t, "Den Protector", cp.FrontName())
				assert.Empty(t, cp.Keywords())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := tt.card(t)
			g := loadedGame(t, card)
			putInHand(t, g, card)
			if card.CanMorph() {
				require.NoError(t, g.PlayFaceDown(card))
			} else {
				require.NoError(t, g.Play(card))
			}
			if tt.setup != nil {
				tt.setup(t, g, card)
			}

			cp, err := g.CopyPermanent(card)
			require.NoError(t, err)
			g.Refresh()

			assert.Equal(t, tt.wantName, cp.Name())
			assert.Equal(t, tt.power, cp.Power())
			assert.Equal(t, tt.toughness, cp.Toughness())
			assert.Equal(t, tt.tapped, cp.IsTapped())
			assert.Equal(t, card.SummoningSick(), cp.SummoningSick())
			tt.check(t, cp)

			if card.IsTransformed() {
				require.NoError(t, g.Transform(cp))
				assert.Equal(t, "Delver of Secrets", cp.Name())
				assert.Equal(t, "Insectile Aberration", card.Name(), "flipping the copy leaves the original alone")
			}
		})
	}
}

func TestCreateTokenAndEmblem(t *testing.T) {
	g := loadedGame(t)
	soldier := mustCard(t, Record{Name: "Soldier", Type: "Token Creature", Subtype: "Soldier", Power: "1", Toughness: "1", Text: "Lifelink"})
	emblem := mustCard(t, Record{Name: "Emblem - Elspeth", Type: "Emblem", Subtype: "Elspeth", Text: "Creatures you control get +2/+2."})

	first, err := g.CreateToken(soldier)
	require.NoError(t, err)
	second, err := g.CreateToken(soldier)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, rules.ZoneLibrary, soldier.Zone(), "the catalog entry stays put")

	made, err := g.CreateEmblem(emblem)
	require.NoError(t, err)
	assert.True(t, made.IsEmblem())

	g.Refresh()
	assert.Equal(t, 3, first.Power())
	assert.Equal(t, 3, second.Toughness())
}
