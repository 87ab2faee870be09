package game

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Roryrai/MTGplaytester/internal/game/counters"
	"github.com/Roryrai/MTGplaytester/internal/game/effects"
	"github.com/Roryrai/MTGplaytester/internal/game/mana"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
	"github.com/Roryrai/MTGplaytester/internal/game/textparse"
)

// LinkMode says how a decklist record is tied to a second card.
type LinkMode int

const (
	LinkNone LinkMode = iota
	LinkTransform
	LinkSplit
)

func (m LinkMode) String() string {
	switch m {
	case LinkTransform:
		return "TRANSFORM"
	case LinkSplit:
		return "SPLIT"
	default:
		return ""
	}
}

// Record is the raw field tuple a decklist loader produces for one card.
// Power and Toughness hold the starting loyalty of a planeswalker in Power.
type Record struct {
	Name       string
	Cost       string
	Type       string
	Subtype    string
	Power      string
	Toughness  string
	Text       string
	Link       LinkMode
	LinkedName string
}

// face holds the printed characteristics of one side of a card.
type face struct {
	name      string
	cost      string
	color     string
	typeLine  string
	subtype   string
	power     int
	toughness int
	loyalty   int
	text      string
	keywords  []string
	anthem    *effects.Anthem
}

func newFace(rec Record) (face, error) {
	cost, err := mana.ParseCost(rec.Cost)
	if err != nil {
		return face{}, &FormatError{Name: rec.Name, Cost: rec.Cost}
	}
	text := textparse.NormalizeText(rec.Text)
	f := face{
		name:     rec.Name,
		cost:     rec.Cost,
		color:    cost.Color(),
		typeLine: rec.Type,
		subtype:  rec.Subtype,
		text:     text,
		keywords: textparse.ParseKeywords(text),
		anthem:   textparse.ParseAnthem(text),
	}
	if strings.Contains(rec.Type, rules.TypeCreature) {
		f.power = parseStat(rec.Power)
		f.toughness = parseStat(rec.Toughness)
	}
	if strings.Contains(rec.Type, rules.TypePlaneswalker) {
		f.loyalty = parseStat(rec.Power)
	}
	return f, nil
}

// parseStat reads a printed power, toughness or loyalty. Characteristic
// defining values such as "*" count as zero.
func parseStat(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Card is a physical card (or token, or emblem) in the game. Base
// characteristics come from whichever face is showing; tapped state,
// counters and modifiers belong to the card itself.
type Card struct {
	id    uuid.UUID
	front face
	back  *Card

	link       LinkMode
	linkedName string
	canMorph   bool
	commander  bool
	token      bool

	zone         rules.Zone
	tapped       bool
	transformed  bool
	faceDown     bool
	sick         bool
	counters     counters.Counters
	powerMod     int
	toughnessMod int
	granted      []string

	anthemPower     int
	anthemToughness int
	anthemKeywords  []string
}

// NewCard builds a card from a decklist record. It fails with a
// *FormatError when the mana cost is malformed.
func NewCard(rec Record) (*Card, error) {
	f, err := newFace(rec)
	if err != nil {
		return nil, err
	}
	c := &Card{
		id:         uuid.New(),
		front:      f,
		link:       rec.Link,
		linkedName: rec.LinkedName,
		token:      strings.Contains(rec.Type, rules.TypeToken),
		zone:       rules.ZoneLibrary,
	}
	c.sick = c.isCreature()
	if textparse.HasMorph(f.keywords) {
		c.canMorph = true
		c.back = newMorphFace()
	}
	return c, nil
}

// newMorphFace is the 2/2 colorless creature a face-down card shows.
func newMorphFace() *Card {
	back, _ := NewCard(Record{Name: "Morph", Type: rules.TypeCreature, Power: "2", Toughness: "2"})
	return back
}

// LinkBackFace makes back the other face of a transform or split card.
// The link is made once; later calls and cards with no link mode are
// ignored. Split cards take the combined name "Front/Back".
func (c *Card) LinkBackFace(back *Card) bool {
	if c.link == LinkNone || c.Linked() || back == nil {
		return false
	}
	c.back = back
	if c.link == LinkSplit {
		c.front.name += "/" + back.front.name
		back.front.name = c.front.name
	}
	return true
}

// shown returns the face whose printed characteristics are in effect.
func (c *Card) shown() *face {
	if (c.transformed || c.faceDown) && c.back != nil {
		return &c.back.front
	}
	return &c.front
}

func (c *Card) ID() string { return c.id.String() }

func (c *Card) Name() string { return c.shown().name }

// FrontName is the name of the front face regardless of what is showing.
func (c *Card) FrontName() string { return c.front.name }

// Cost returns the printed cost. Back faces have none.
func (c *Card) Cost() string {
	cost := c.shown().cost
	if cost == mana.TransformSentinel {
		return ""
	}
	return cost
}

func (c *Card) Color() string { return c.shown().color }
func (c *Card) TypeLine() string { return c.shown().typeLine }
func (c *Card) Subtype() string { return c.shown().subtype }
func (c *Card) Text() string { return c.shown().text }

// Anthem returns the continuous effect printed on the showing face.
func (c *Card) Anthem() *effects.Anthem { return c.shown().anthem }

func (c *Card) isType(t string) bool {
	return strings.Contains(c.TypeLine(), t)
}

func (c *Card) isCreature() bool { return c.isType(rules.TypeCreature) }

// IsType reports whether the showing type line contains t.
func (c *Card) IsType(t string) bool { return c.isType(t) }

func (c *Card) IsCreature() bool { return c.isCreature() }
func (c *Card) IsPlaneswalker() bool { return c.isType(rules.TypePlaneswalker) }
func (c *Card) IsEmblem() bool { return strings.Contains(c.front.typeLine, rules.TypeEmblem) }
func (c *Card) IsToken() bool { return c.token }
func (c *Card) IsCommander() bool { return c.commander }

// Power returns the effective power. It is never negative and is zero for
// anything that is not a creature.
func (c *Card) Power() int {
	if !c.isCreature() {
		return 0
	}
	return max(0, c.shown().power+c.powerMod+c.anthemPower+c.counters.PlusOne())
}

// Toughness returns the effective toughness, following the same rules as
// Power.
func (c *Card) Toughness() int {
	if !c.isCreature() {
		return 0
	}
	return max(0, c.shown().toughness+c.toughnessMod+c.anthemToughness+c.counters.PlusOne())
}

// Counters returns the number of counters on the card, loyalty included.
func (c *Card) Counters() int { return c.counters.Total(c.shown().loyalty) }

// Loyalty returns the loyalty of a planeswalker.
func (c *Card) Loyalty() int { return c.counters.Loyalty(c.shown().loyalty) }

// PlusOne returns the signed number of +1/+1 counters.
func (c *Card) PlusOne() int { return c.counters.PlusOne() }

// BoostLabel renders the +1/+1 counters, e.g. "+2/+2".
func (c *Card) BoostLabel() string { return c.counters.BoostLabel() }

// Keywords returns the printed keywords of the showing face followed by
// keywords granted by anthems and until end of turn.
func (c *Card) Keywords() []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range [][]string{c.shown().keywords, c.anthemKeywords, c.granted} {
		for _, k := range list {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	return out
}

// HasKeyword reports whether the card currently has keyword k.
func (c *Card) HasKeyword(k string) bool {
	for _, have := range c.Keywords() {
		if have == k {
			return true
		}
	}
	return false
}

func (c *Card) hasPrintedHaste() bool {
	for _, k := range c.shown().keywords {
		if k == rules.KeywordHaste {
			return true
		}
	}
	return false
}

func (c *Card) Zone() rules.Zone { return c.zone }
func (c *Card) IsTapped() bool { return c.tapped }
func (c *Card) IsTransformed() bool { return c.transformed }
func (c *Card) IsFaceDown() bool { return c.faceDown }
func (c *Card) CanMorph() bool { return c.canMorph }
func (c *Card) Link() LinkMode { return c.link }
func (c *Card) LinkedName() string { return c.linkedName }
func (c *Card) IsTransform() bool { return c.link == LinkTransform }
func (c *Card) IsSplit() bool { return c.link == LinkSplit }
func (c *Card) onBattlefield() bool { return c.zone == rules.ZoneBattlefield }
func (c *Card) setCommander() { c.commander, c.zone = true, rules.ZoneCommand }

// SummoningSick reports whether a creature entered this turn without haste.
func (c *Card) SummoningSick() bool {
	return c.sick && c.isCreature()
}

// Linked reports whether a transform or split card has its back face.
func (c *Card) Linked() bool {
	return c.link != LinkNone && c.back != nil
}

// BackFace returns the linked back face, the morph face of a morph card, or
// nil.
func (c *Card) BackFace() *Card { return c.back }

// Face is one printed side of a card as it is displayed.
type Face struct {
	Name      string
	Cost      string
	TypeLine  string
	Subtype   string
	Text      string
	Power     int
	Toughness int
	Loyalty   int
}

func (f *face) view() Face {
	cost := f.cost
	if cost == mana.TransformSentinel {
		cost = ""
	}
	return Face{
		Name:      f.name,
		Cost:      cost,
		TypeLine:  f.typeLine,
		Subtype:   f.subtype,
		Text:      f.text,
		Power:     f.power,
		Toughness: f.toughness,
		Loyalty:   f.loyalty,
	}
}

// Faces returns both sides of a linked card, front first, or the showing
// side of any other card. The showing side carries the current power,
// toughness and loyalty; a face-down card shows only its morph face.
func (c *Card) Faces() []Face {
	live := func(f *face) Face {
		v := f.view()
		v.Power, v.Toughness, v.Loyalty = c.Power(), c.Toughness(), c.Loyalty()
		return v
	}
	if !c.Linked() || c.faceDown {
		return []Face{live(c.shown())}
	}
	front, back := live(&c.front), c.back.front.view()
	if c.transformed {
		front, back = c.front.view(), live(&c.back.front)
	}
	if c.IsSplit() {
		front.Name = strings.TrimSuffix(front.Name, "/"+c.linkedName)
		back.Name = c.linkedName
	}
	return []Face{front, back}
}

// ResetAnthemBonus clears bonuses from continuous effects.
func (c *Card) ResetAnthemBonus() {
	c.anthemPower, c.anthemToughness, c.anthemKeywords = 0, 0, nil
}

// AddAnthemBonus accumulates the bonus of one continuous effect.
func (c *Card) AddAnthemBonus(power, toughness int, keywords []string) {
	c.anthemPower += power
	c.anthemToughness += toughness
	c.anthemKeywords = append(c.anthemKeywords, keywords...)
}

// ModPower changes power until end of turn. Only creatures on the
// battlefield are affected.
func (c *Card) ModPower(n int) {
	if c.isCreature() && c.onBattlefield() {
		c.powerMod += n
	}
}

// ModToughness changes toughness until end of turn.
func (c *Card) ModToughness(n int) {
	if c.isCreature() && c.onBattlefield() {
		c.toughnessMod += n
	}
}

// ModPlusOne adds n +1/+1 counters (or removes them when n is negative).
func (c *Card) ModPlusOne(n int) {
	if c.isCreature() && c.onBattlefield() {
		c.counters.AddPlusOne(n)
	}
}

// ModCounters adds n counters. The count never drops below zero.
func (c *Card) ModCounters(n int) {
	if c.onBattlefield() {
		c.counters.Add(n, c.shown().loyalty)
	}
}

// GrantKeyword gives the card keyword k until end of turn. Morph cannot be
// granted. Haste removes summoning sickness.
func (c *Card) GrantKeyword(k string) bool {
	if !c.onBattlefield() || !rules.IsKeyword(k) {
		return false
	}
	if k == rules.KeywordMorph || k == rules.KeywordMegamorph || c.HasKeyword(k) {
		return false
	}
	c.granted = append(c.granted, k)
	if k == rules.KeywordHaste {
		c.sick = false
	}
	return true
}

// Tap taps the card. Only permanents can be tapped.
func (c *Card) Tap() bool {
	if !c.onBattlefield() || c.tapped {
		return false
	}
	c.tapped = true
	return true
}

// Untap untaps the card.
func (c *Card) Untap() bool {
	if !c.tapped {
		return false
	}
	c.tapped = false
	return true
}

// EndTurn drops until end of turn modifiers. Counters stay.
func (c *Card) EndTurn() {
	c.powerMod, c.toughnessMod = 0, 0
	c.granted = nil
}

// NextTurn clears summoning sickness during the upkeep.
func (c *Card) NextTurn() {
	if c.isCreature() {
		c.sick = false
	}
}

// transform flips a transform card. Returns false if it has no back face.
func (c *Card) transform() bool {
	if !c.IsTransform() || !c.Linked() {
		return false
	}
	c.transformed = !c.transformed
	return true
}

// morph turns a morph card face down or face up.
func (c *Card) morph() bool {
	if !c.canMorph {
		return false
	}
	c.faceDown = !c.faceDown
	return true
}

// enter applies the effects of arriving on the battlefield and reports
// whether the card has an enter-the-battlefield trigger.
func (c *Card) enter() bool {
	name, text := c.Name(), c.Text()
	c.tapped = strings.Contains(text, name+" enters the battlefield tapped") ||
		strings.Contains(text, name+" enters tapped")
	c.sick = c.isCreature() && !c.hasPrintedHaste()
	return strings.Contains(text, "When "+name+" enters")
}

// leave undoes everything that only exists on the battlefield.
func (c *Card) leave() {
	c.transformed, c.faceDown = false, false
	c.powerMod, c.toughnessMod = 0, 0
	c.counters.ClearDelta()
	c.granted = nil
	c.tapped = false
	c.sick = c.isCreature() && !c.hasPrintedHaste()
	c.ResetAnthemBonus()
}

// checkMove validates a move without changing anything.
func (c *Card) checkMove(to rules.Zone) error {
	switch {
	case c.commander:
		return nil
	case c.IsEmblem():
		if to != rules.ZoneBattlefield {
			return zoneErrorf("Can't interact with emblems off the battlefield.")
		}
	case to == rules.ZoneCommand:
		return zoneErrorf("%s can't be put in the command zone.", c.Name())
	}
	return nil
}

// move is the only way a card changes zone. Commanders headed anywhere but
// the hand or the battlefield go to the command zone instead. Library
// positions resolve to the library. It returns the zone the card ended up
// in.
func (c *Card) move(to rules.Zone) (rules.Zone, error) {
	if err := c.checkMove(to); err != nil {
		return c.zone, err
	}
	if to.IsLibraryPosition() {
		to = rules.ZoneLibrary
	}
	if c.commander && to != rules.ZoneHand && to != rules.ZoneBattlefield {
		to = rules.ZoneCommand
	}
	leaves := c.zone == rules.ZoneBattlefield && to != rules.ZoneBattlefield
	c.zone = to
	if leaves {
		c.leave()
	}
	return to, nil
}

// reset returns the card to its state at the start of a game.
func (c *Card) reset() {
	c.leave()
	c.counters = counters.Counters{}
	c.zone = rules.ZoneLibrary
	if c.commander {
		c.zone = rules.ZoneCommand
	}
}

// Copy returns a token copy of the card with a fresh identity. The copy
// keeps everything about the card: the face showing, tapped and summoning
// sickness, counters, modifiers and granted keywords. It belongs to no zone
// list until the caller places it. "Token" is added after any supertypes
// unless the card already is one.
func (c *Card) Copy() *Card {
	cp := *c
	cp.id = uuid.New()
	cp.front = c.front.clone()
	cp.commander = false
	cp.token = true
	cp.granted = append([]string(nil), c.granted...)
	cp.anthemKeywords = append([]string(nil), c.anthemKeywords...)
	if c.back != nil {
		back := *c.back
		back.id = uuid.New()
		back.front = c.back.front.clone()
		cp.back = &back
	}
	if !c.token {
		cp.front.typeLine = withTokenType(cp.front.typeLine)
		if cp.back != nil && c.link == LinkTransform {
			cp.back.front.typeLine = withTokenType(cp.back.front.typeLine)
		}
	}
	return &cp
}

func (f face) clone() face {
	f.keywords = append([]string(nil), f.keywords...)
	if f.anthem != nil {
		a := *f.anthem
		a.Types = append([]string(nil), a.Types...)
		a.Keywords = append([]string(nil), a.Keywords...)
		f.anthem = &a
	}
	return f
}

// withTokenType inserts "Token" after the supertypes of typeLine.
func withTokenType(typeLine string) string {
	if strings.Contains(typeLine, rules.TypeToken) {
		return typeLine
	}
	var super, rest []string
	for _, word := range strings.Fields(typeLine) {
		if isSupertype(word) {
			super = append(super, word)
		} else {
			rest = append(rest, word)
		}
	}
	words := append(super, rules.TypeToken)
	return strings.Join(append(words, rest...), " ")
}

func isSupertype(word string) bool {
	for _, s := range rules.Supertypes {
		if word == s {
			return true
		}
	}
	return false
}

func (c *Card) String() string { return c.Name() }
