package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Flying\nLifelink", NormalizeText(`Flying\ Lifelink`))
	assert.Equal(t, "Flying\nLifelink", NormalizeText(`Flying\Lifelink`))
	assert.Equal(t, "Vigilance", NormalizeText("Vigilance"))
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"comma list", "Flying, vigilance", []string{"Flying", "Vigilance"}},
		{"multi word", "First strike, lifelink", []string{"First strike", "Lifelink"}},
		{"rejected line", "Flying, draw a card", nil},
		{"only valid lines count", "Haste\nWhen this enters, draw a card.", []string{"Haste"}},
		{"rejected line does not leak", "Trample, gain 3 life\nReach", []string{"Reach"}},
		{"morph with cost", "Flying\nMorph 2U", []string{"Flying", "Morph"}},
		{"megamorph with cost", "Megamorph 1G", []string{"Megamorph"}},
		{"duplicates collapse", "Flying\nflying", []string{"Flying"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseKeywords(tt.text))
		})
	}
}

func TestHasMorph(t *testing.T) {
	assert.True(t, HasMorph([]string{rules.KeywordFlying, rules.KeywordMorph}))
	assert.True(t, HasMorph([]string{rules.KeywordMegamorph}))
	assert.False(t, HasMorph([]string{rules.KeywordFlying}))
	assert.False(t, HasMorph(nil))
}

func TestParseAnthem(t *testing.T) {
	anthem := ParseAnthem("Other creatures you control get +1/+1.")
	require.NotNil(t, anthem)
	assert.True(t, anthem.Others)
	assert.Equal(t, []string{"Creature"}, anthem.Types)
	assert.Equal(t, 1, anthem.Power)
	assert.Equal(t, 1, anthem.Toughness)
	assert.Empty(t, anthem.Keywords)
}

func TestParseAnthemVariants(t *testing.T) {
	t.Run("keywords and multiple types", func(t *testing.T) {
		anthem := ParseAnthem("Soldiers and Knights you control get +2/-1 and have vigilance.")
		require.NotNil(t, anthem)
		assert.False(t, anthem.Others)
		assert.Equal(t, []string{"Soldier", "Knight"}, anthem.Types)
		assert.Equal(t, 2, anthem.Power)
		assert.Equal(t, -1, anthem.Toughness)
		assert.Equal(t, []string{"Vigilance"}, anthem.Keywords)
	})

	t.Run("grant only", func(t *testing.T) {
		anthem := ParseAnthem("Flying\nCreatures you control have haste.")
		require.NotNil(t, anthem)
		assert.Equal(t, []string{"Creature"}, anthem.Types)
		assert.Equal(t, 0, anthem.Power)
		assert.Equal(t, []string{"Haste"}, anthem.Keywords)
	})

	t.Run("multi word type splits", func(t *testing.T) {
		anthem := ParseAnthem("Attacking creatures you control have double strike.")
		require.NotNil(t, anthem)
		assert.Equal(t, []string{"Attacking", "Creature"}, anthem.Types)
		assert.Equal(t, []string{"Double strike"}, anthem.Keywords)
	})

	t.Run("until end of turn", func(t *testing.T) {
		assert.Nil(t, ParseAnthem("When this enters, creatures you control get +1/+1 until end of turn."))
	})

	t.Run("quoted for an emblem", func(t *testing.T) {
		assert.Nil(t, ParseAnthem(`-6: You get an emblem with "Creatures you control get +1/+1."`))
	})

	t.Run("no anthem", func(t *testing.T) {
		assert.Nil(t, ParseAnthem("Draw two cards."))
		assert.Nil(t, ParseAnthem(""))
	})
}

func TestParseToken(t *testing.T) {
	spec, ok := ParseToken("When this enters, create a 1/1 white Soldier creature token with lifelink.")
	require.True(t, ok)
	assert.Equal(t, "Soldier", spec.Name)
	assert.Equal(t, "Soldier", spec.Subtype)
	assert.Equal(t, "Token Creature", spec.Type)
	assert.Equal(t, "White", spec.Color)
	assert.Equal(t, 1, spec.Power)
	assert.Equal(t, 1, spec.Toughness)
	assert.Equal(t, "Lifelink", spec.Text)
}

func TestParseTokenVariants(t *testing.T) {
	t.Run("artifact creature with two colors", func(t *testing.T) {
		spec, ok := ParseToken("Create a 4/4 red and white Construct artifact creature token with flying and vigilance.")
		require.True(t, ok)
		assert.Equal(t, "Token Artifact Creature", spec.Type)
		assert.Equal(t, "Red White", spec.Color)
		assert.Equal(t, "Flying, vigilance", spec.Text)
	})

	t.Run("legendary", func(t *testing.T) {
		spec, ok := ParseToken("Put a legendary 2/2 black Zombie Knight creature token onto the battlefield.")
		require.True(t, ok)
		assert.Equal(t, "Legendary Token Creature", spec.Type)
		assert.Equal(t, "Zombie Knight", spec.Name)
		assert.Equal(t, "", spec.Text)
	})

	t.Run("old wording", func(t *testing.T) {
		spec, ok := ParseToken("Put a 1/1 green Saproling creature token with trample onto the battlefield.")
		require.True(t, ok)
		assert.Equal(t, "Trample", spec.Text)
	})

	t.Run("zero power", func(t *testing.T) {
		spec, ok := ParseToken("Create a 0/1 colorless Plant creature token.")
		require.True(t, ok)
		assert.Equal(t, 0, spec.Power)
		assert.Equal(t, "Colorless", spec.Color)
	})

	t.Run("incomplete", func(t *testing.T) {
		_, ok := ParseToken("Create a Treasure token.")
		assert.False(t, ok)
		_, ok = ParseToken("Tokens you control have haste.")
		assert.False(t, ok)
	})
}

func TestTokenSpecSame(t *testing.T) {
	a := TokenSpec{Name: "Cat", Color: "White", Power: 1, Toughness: 1}
	b := a
	assert.True(t, a.Same(b))
	b.Text = "Vigilance"
	assert.False(t, a.Same(b))
}

func TestParseEmblem(t *testing.T) {
	spec, ok := ParseEmblem("Elspeth, Knight-Errant",
		`-8: You get an emblem with "Artifacts, creatures, enchantments, and lands you control have indestructible."`)
	require.True(t, ok)
	assert.Equal(t, "Emblem - Elspeth, Knight-Errant", spec.Name)
	assert.Equal(t, "Emblem", spec.Type)
	assert.Equal(t, "Elspeth", spec.Subtype)
	assert.Equal(t, "Artifacts, creatures, enchantments, and lands you control have indestructible.", spec.Text)

	spec, ok = ParseEmblem("Sorin", `-6: You get an emblem with "Creatures you control get +1/+0" and "Creatures you control have lifelink"`)
	require.True(t, ok)
	assert.Equal(t, "Creatures you control get +1/+0.\nCreatures you control have lifelink.", spec.Text)

	_, ok = ParseEmblem("Nobody", "You get an emblem.")
	assert.False(t, ok)
}
