package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePermanent struct {
	id, typeLine, subtype, color string
	anthem                       *Anthem

	power, toughness int
	keywords         []string
}

func (f *fakePermanent) ID() string       { return f.id }
func (f *fakePermanent) TypeLine() string { return f.typeLine }
func (f *fakePermanent) Subtype() string  { return f.subtype }
func (f *fakePermanent) Color() string    { return f.color }
func (f *fakePermanent) Anthem() *Anthem  { return f.anthem }

func (f *fakePermanent) ResetAnthemBonus() {
	f.power, f.toughness, f.keywords = 0, 0, nil
}

func (f *fakePermanent) AddAnthemBonus(power, toughness int, keywords []string) {
	f.power += power
	f.toughness += toughness
	f.keywords = append(f.keywords, keywords...)
}

func TestPropagateOthersSkipsSource(t *testing.T) {
	lord := &fakePermanent{
		id: "lord", typeLine: "Creature", subtype: "Elf", color: "Green",
		anthem: &Anthem{Others: true, Types: []string{"Elf"}, Power: 1, Toughness: 1},
	}
	elf := &fakePermanent{id: "elf", typeLine: "Creature", subtype: "Elf Warrior", color: "Green"}
	bear := &fakePermanent{id: "bear", typeLine: "Creature", subtype: "Bear", color: "Green"}

	Propagate([]Permanent{lord, elf, bear})

	assert.Equal(t, 0, lord.power)
	assert.Equal(t, 1, elf.power)
	assert.Equal(t, 1, elf.toughness)
	assert.Equal(t, 0, bear.power)
}

func TestPropagateIncludesSelf(t *testing.T) {
	anthem := &fakePermanent{
		id: "banner", typeLine: "Creature", color: "White",
		anthem: &Anthem{Types: []string{"Creature"}, Power: 1, Toughness: 1, Keywords: []string{"Vigilance"}},
	}

	Propagate([]Permanent{anthem})

	assert.Equal(t, 1, anthem.power)
	assert.Equal(t, []string{"Vigilance"}, anthem.keywords)
}

func TestPropagateFirstMatchWins(t *testing.T) {
	source := &fakePermanent{
		id: "source", typeLine: "Enchantment", color: "White",
		anthem: &Anthem{Types: []string{"Creature", "White", "Soldier"}, Power: 2, Toughness: 2},
	}
	soldier := &fakePermanent{id: "soldier", typeLine: "Creature", subtype: "Human Soldier", color: "White"}

	Propagate([]Permanent{source, soldier})

	assert.Equal(t, 2, soldier.power)
	assert.Equal(t, 2, soldier.toughness)
	// the enchantment matches on color
	assert.Equal(t, 2, source.power)
}

func TestPropagateIsIdempotent(t *testing.T) {
	a := &fakePermanent{
		id: "a", typeLine: "Creature", subtype: "Goblin", color: "Red",
		anthem: &Anthem{Types: []string{"Goblin"}, Power: 1, Keywords: []string{"Haste"}},
	}
	b := &fakePermanent{
		id: "b", typeLine: "Creature", subtype: "Goblin", color: "Red",
		anthem: &Anthem{Others: true, Types: []string{"Goblin"}, Power: 1, Toughness: 1},
	}
	field := []Permanent{a, b}

	Propagate(field)
	firstA, firstB := *a, *b
	Propagate(field)

	assert.Equal(t, firstA.power, a.power)
	assert.Equal(t, firstA.toughness, a.toughness)
	assert.Equal(t, firstA.keywords, a.keywords)
	assert.Equal(t, firstB.power, b.power)
	assert.Equal(t, 2, a.power)
	assert.Equal(t, 1, a.toughness)
	assert.Equal(t, 1, b.power)
}

func TestNewAnthemEffectWithoutAnthem(t *testing.T) {
	assert.Nil(t, NewAnthemEffect(&fakePermanent{id: "x"}))
}
