package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Roryrai/MTGplaytester/internal/config"
	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

func newRenderer() *Renderer {
	return New(config.Default().Render)
}

func mustCard(t *testing.T, rec game.Record) *game.Card {
	t.Helper()
	card, err := game.NewCard(rec)
	require.NoError(t, err)
	return card
}

func bear(t *testing.T) *game.Card {
	return mustCard(t, game.Record{Name: "Grizzly Bears", Cost: "1G", Type: "Creature", Subtype: "Bear", Power: "2", Toughness: "2"})
}

// bearGame loads a deck of bears, plus commander when it is not nil.
func bearGame(t *testing.T, commander *game.Card) *game.GameState {
	t.Helper()
	cfg := config.Default().Game
	cfg.Seed = 7
	d := &game.Deck{Name: "bears", Commander: commander}
	for i := 0; i < 60; i++ {
		d.Cards = append(d.Cards, bear(t))
	}
	if commander != nil {
		d.Cards = append(d.Cards, commander)
	}
	g := game.NewGame(cfg, zaptest.NewLogger(t))
	g.Load(d)
	return g
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "Flying", 36, "Flying"},
		{"wraps", "Other creatures you control get +1/+1.", 20, "Other creatures you\ncontrol get +1/+1."},
		{"keeps line breaks", "Flying\nVigilance", 36, "Flying\nVigilance"},
		{"splits long words", "abcdefghij", 4, "abcd\nefgh\nij"},
		{"empty", "", 36, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapText(tt.text, tt.width)
			if got != tt.want {
				t.Errorf("WrapText(%q, %d): expected %q, got %q", tt.text, tt.width, tt.want, got)
			}
		})
	}
}

func assertBox(t *testing.T, out string, lines, width int) {
	t.Helper()
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, rows, lines)
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			t.Errorf("line %d is %d wide, expected %d: %q", i, n, width, row)
		}
	}
}

func TestCardImage(t *testing.T) {
	r := newRenderer()
	out := r.Card(bear(t))
	assertBox(t, out, 30, 38)
	assert.Contains(t, out, "|Grizzly Bears"+strings.Repeat(" ", 36-len("Grizzly Bears")-2)+"1G|")
	assert.Contains(t, out, "|Creature - Bear")
	assert.Contains(t, out, "| 2/2 |")

	walker := mustCard(t, game.Record{
		Name: "Elspeth, Knight-Errant", Cost: "2WW", Type: "Legendary Planeswalker", Subtype: "Elspeth", Power: "4",
		Text: "+1: Create a 1/1 white Soldier creature token.\\ +1: Target creature gets +3/+3 and gains flying until end of turn.",
	})
	out = r.Card(walker)
	assertBox(t, out, 30, 38)
	assert.Contains(t, out, "| 4 |")

	land := mustCard(t, game.Record{Name: "Forest", Type: "Basic Land", Subtype: "Forest"})
	out = r.Card(land)
	assertBox(t, out, 30, 38)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "|"+strings.Repeat(" ", 36)+"|", rows[len(rows)-2], "lands have no stat box")
}

func TestCardImageLinkedSideBySide(t *testing.T) {
	front := mustCard(t, game.Record{
		Name: "Delver of Secrets", Cost: "U", Type: "Creature", Subtype: "Human Wizard",
		Power: "1", Toughness: "1", Link: game.LinkTransform, LinkedName: "Insectile Aberration",
	})
	back := mustCard(t, game.Record{
		Name: "Insectile Aberration", Cost: "TRANSFORM", Type: "Creature", Subtype: "Human Insect",
		Power: "3", Toughness: "2", Text: "Flying", Link: game.LinkTransform, LinkedName: "Delver of Secrets",
	})
	require.True(t, front.LinkBackFace(back))

	out := newRenderer().Card(front)
	assertBox(t, out, 30, 38*2+1)
	first := strings.SplitN(out, "\n", 3)[1]
	assert.True(t, strings.HasPrefix(first, "|Delver of Secrets"))
	assert.True(t, strings.HasSuffix(first, "|Insectile Aberration"+strings.Repeat(" ", 36-len("Insectile Aberration"))+"|"))
}

func TestCardImageSmallConfig(t *testing.T) {
	r := New(config.RenderConfig{CardWidth: 12, CardHeight: 14, BoardWidth: 40})
	out := r.Card(mustCard(t, game.Record{Name: "Ezuri, Renegade Leader", Cost: "1GG", Type: "Legendary Creature", Power: "2", Toughness: "2"}))
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for _, row := range rows {
		assert.Equal(t, 14, utf8.RuneCountInString(row), row)
	}
	assert.Contains(t, out, "|Ezuri, R 1GG|")
}

func TestHeaderLine(t *testing.T) {
	line := headerLine(70, "P1", "P2")
	assert.Equal(t, 73, len(line))
	assert.Equal(t, 17, strings.Index(line, "P1"))
	assert.Equal(t, 53, strings.Index(line, "P2"))
	assert.True(t, strings.HasSuffix(line, "|\n"))
}

func TestHeader(t *testing.T) {
	g := bearGame(t, nil)
	out := newRenderer().Header(g)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, rows, 6)
	assert.Equal(t, " "+strings.Repeat("-", 70), rows[0])
	assert.Equal(t, "|"+strings.Repeat(" ", 32)+"Turn 1"+strings.Repeat(" ", 32)+"|", rows[1])
	assert.Contains(t, rows[3], "L: 20")
	assert.Contains(t, rows[4], "P: 0")
	assert.NotContains(t, out, "C: ")
}

func TestHeaderCommander(t *testing.T) {
	ezuri := mustCard(t, game.Record{Name: "Ezuri, Renegade Leader", Cost: "1GG", Type: "Legendary Creature", Subtype: "Elf Warrior", Power: "2", Toughness: "2"})
	g := bearGame(t, ezuri)
	r := newRenderer()

	out := r.Header(g)
	assert.Contains(t, out, "L: 40")
	assert.Contains(t, out, "C: 0")
	assert.Contains(t, out, "Ezuri, Renegade Leader")
	assert.NotContains(t, out, "(1)")

	require.NoError(t, g.Play(ezuri))
	assert.NotContains(t, r.Header(g), "Ezuri")

	_, err := g.Kill(game.SingleCard(ezuri))
	require.NoError(t, err)
	assert.Contains(t, r.Header(g), "Ezuri, Renegade Leader (1)")
}

func TestZones(t *testing.T) {
	g := bearGame(t, nil)
	r := newRenderer()

	assert.Equal(t, "Library (53):\n\n", r.Zone(g, rules.ZoneLibrary))
	assert.Equal(t, "Graveyard (0):\n\n", r.Zone(g, rules.ZoneGraveyard))
	assert.True(t, strings.HasPrefix(r.Zone(g, rules.ZoneHand), "Hand (7):\nC   Grizzly Bears\n"))

	played := g.Cards(rules.ZoneHand)[0]
	require.NoError(t, g.Play(played))
	g.Refresh()
	want := "Battlefield (1):\n" + padRight(" S  Grizzly Bears", 35) + " 2/2\n\n\n"
	assert.Equal(t, want, r.Zone(g, rules.ZoneBattlefield))

	_, err := g.Tap(game.SingleCard(played))
	require.NoError(t, err)
	g.NextTurn()
	assert.Contains(t, r.Zone(g, rules.ZoneBattlefield), padRight("    Grizzly Bears", 35)+" 2/2\n")

	_, err = g.Kill(game.SingleCard(played))
	require.NoError(t, err)
	assert.Equal(t, "Graveyard (1):\nGrizzly Bears\n\n", r.Zone(g, rules.ZoneGraveyard))
}

func TestBattlefieldGroupsByType(t *testing.T) {
	g := bearGame(t, nil)
	construct := mustCard(t, game.Record{Name: "Ornithopter", Type: "Artifact Creature", Subtype: "Thopter", Power: "0", Toughness: "2", Text: "Flying"})
	relic := mustCard(t, game.Record{Name: "Mind Stone", Cost: "2", Type: "Artifact"})
	for _, card := range []*game.Card{relic, construct} {
		_, err := g.CreateToken(card)
		require.NoError(t, err)
	}

	out := newRenderer().Zone(g, rules.ZoneBattlefield)
	thopter := strings.Index(out, "Ornithopter")
	stone := strings.Index(out, "Mind Stone")
	require.True(t, thopter > 0 && stone > 0)
	assert.Less(t, thopter, stone, "artifact creatures are listed with creatures")
	assert.Equal(t, 1, strings.Count(out, "Ornithopter"))
	assert.Contains(t, out, "\n\n   ", "a blank line separates type groups")
}

func TestBoardOrder(t *testing.T) {
	out := newRenderer().Board(bearGame(t, nil))
	order := []string{"Turn 1", "Graveyard (0):", "Exile (0):", "Library (53):", "Hand (7):", "Battlefield (0):"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		require.Greater(t, i, last, s)
		last = i
	}
}

func TestCounts(t *testing.T) {
	out := Counts([]game.TypeCount{{Type: "Creature", Count: 24}, {Type: "Land", Count: 36}})
	assert.Equal(t, "Creature      24\nLand          36\n", out)
}
