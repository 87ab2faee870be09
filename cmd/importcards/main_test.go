package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "elves.deck")
	second := filepath.Join(dir, "more.deck")
	require.NoError(t, os.WriteFile(first, []byte(
		"20;Forest;;Basic Land;Forest;;;\n"+
			"4;Llanowar Elves;G;Creature;Elf Druid;1;1;\n"+
			"4;Elvish Mystic\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(
		"4;Llanowar Elves;G;Creature;Elf Druid;1;1;\n"+
			"1;Delver of Secrets;U;Creature;Human Wizard;1;1;;TRANSFORM;Insectile Aberration\n"), 0o644))

	records, err := collect([]string{first, second})
	require.NoError(t, err)

	var names []string
	for _, rec := range records {
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"Forest", "Llanowar Elves", "Delver of Secrets"}, names)
	assert.Equal(t, "Insectile Aberration", records[2].LinkedName)
}

func TestCollectMissingFile(t *testing.T) {
	_, err := collect([]string{filepath.Join(t.TempDir(), "missing.deck")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
