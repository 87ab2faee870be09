package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCatalog(t *testing.T) {
	raise := mustCard(t, Record{
		Name: "Raise the Alarm", Cost: "1W", Type: "Instant",
		Text: "Create two 1/1 white Soldier creature tokens.",
	})
	captain := mustCard(t, Record{
		Name: "Captain of the Watch", Cost: "4WW", Type: "Creature", Power: "3", Toughness: "3",
		Text: `Vigilance\ Other Soldier creatures you control get +1/+1 and have vigilance.\ When Captain of the Watch enters the battlefield, create three 1/1 white Soldier creature tokens.`,
	})
	construct := mustCard(t, Record{
		Name: "Sai, Master Thopterist", Cost: "2U", Type: "Legendary Creature", Power: "1", Toughness: "4",
		Text: "Whenever you cast an artifact spell, create a 1/1 colorless Thopter artifact creature token with flying.",
	})
	elspeth := mustCard(t, Record{
		Name: "Elspeth, Knight-Errant", Cost: "2WW", Type: "Legendary Planeswalker", Power: "4",
		Text: `+1: Create a 1/1 white Soldier creature token.\ -8: You get an emblem with "Artifacts, creatures, enchantments, and lands you control have indestructible."`,
	})
	elspethAgain := mustCard(t, Record{
		Name: "Elspeth, Knight-Errant", Cost: "2WW", Type: "Legendary Planeswalker", Power: "4",
		Text: elspeth.Text(),
	})
	plain := bear(t)

	tokens, emblems, err := BuildCatalog([]*Card{raise, captain, construct, elspeth, elspethAgain, plain})
	require.NoError(t, err)

	require.Len(t, tokens, 2)
	assert.Equal(t, "Soldier", tokens[0].Name())
	assert.Equal(t, "White", tokens[0].Color())
	assert.Equal(t, "Thopter", tokens[1].Name())
	assert.Equal(t, "Colorless", tokens[1].Color())
	assert.Equal(t, "Token Artifact Creature", tokens[1].TypeLine())
	assert.Equal(t, 1, tokens[1].Power())

	require.Len(t, emblems, 1)
	assert.Equal(t, "Emblem - Elspeth, Knight-Errant", emblems[0].Name())
	assert.True(t, emblems[0].IsEmblem())
}

func TestBuildCatalogReadsBackFaces(t *testing.T) {
	front := mustCard(t, Record{
		Name: "Docent of Perfection", Cost: "3UU", Type: "Creature", Power: "5", Toughness: "4",
		Text: "Flying", Link: LinkTransform, LinkedName: "Final Iteration",
	})
	back := mustCard(t, Record{
		Name: "Final Iteration", Cost: "", Type: "Creature", Power: "6", Toughness: "5",
		Text: "Whenever you cast an instant or sorcery spell, create a 1/1 blue Human Wizard creature token.",
		Link: LinkTransform, LinkedName: "Docent of Perfection",
	})
	require.True(t, front.LinkBackFace(back))

	tokens, _, err := BuildCatalog([]*Card{front})
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "Human Wizard", tokens[0].Name())
	assert.Equal(t, "Blue", tokens[0].Color())
}
