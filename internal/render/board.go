package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// boardZones is the order zones are listed under the header.
var boardZones = []rules.Zone{
	rules.ZoneGraveyard,
	rules.ZoneExile,
	rules.ZoneLibrary,
	rules.ZoneHand,
	rules.ZoneBattlefield,
}

// Board draws the header followed by every zone listing.
func (r *Renderer) Board(g *game.GameState) string {
	var b strings.Builder
	b.WriteString(r.Header(g))
	for _, zone := range boardZones {
		b.WriteString(r.Zone(g, zone))
	}
	return b.String()
}

// Header draws the box with the turn number and both players' totals.
// Commander games add commander damage, and the commander's name while it
// is in the command zone.
func (r *Renderer) Header(g *game.GameState) string {
	w := r.boardWidth
	border := " " + strings.Repeat("-", w) + "\n"
	p1, p2 := g.Player(game.PlayerOne), g.Player(game.PlayerTwo)

	var b strings.Builder
	b.WriteString(border)

	turn := "Turn " + strconv.Itoa(g.Turn())
	b.WriteString("|" + padRight(spaces((w-runes(turn))/2)+turn, w) + "|\n")

	b.WriteString(headerLine(w, "P1", "P2"))
	b.WriteString(headerLine(w, "L: "+strconv.Itoa(p1.Life), "L: "+strconv.Itoa(p2.Life)))
	b.WriteString(headerLine(w, "P: "+strconv.Itoa(p1.Poison), "P: "+strconv.Itoa(p2.Poison)))

	if commander := g.Commander(); commander != nil {
		b.WriteString(headerLine(w, "C: "+strconv.Itoa(p1.CommanderDamage), "C: "+strconv.Itoa(p2.CommanderDamage)))
		if commander.Zone() == rules.ZoneCommand {
			name := commander.Name()
			if plays := g.CommandPlays(); plays > 0 {
				name += " (" + strconv.Itoa(plays) + ")"
			}
			b.WriteString(headerLine(w, name, ""))
		}
	}

	b.WriteString(border)
	return b.String()
}

// headerLine centres left in the left half of the box and right in the
// right half.
func headerLine(width int, left, right string) string {
	mid := width / 2
	line := "|" + spaces((mid-runes(left))/2) + left
	line = padRight(line, mid+1)
	line += spaces((mid-runes(right))/2+1) + right
	return padRight(line, width+1) + "|\n"
}

// Zone lists the cards in one zone under a "Zone (n):" heading. The
// library only shows its top card, and only while it is revealed.
func (r *Renderer) Zone(g *game.GameState, zone rules.Zone) string {
	cards := g.Cards(zone)
	var list string
	switch zone {
	case rules.ZoneLibrary:
		if top := g.RevealedTop(); top != nil {
			list = top.Name() + "\n"
		}
	case rules.ZoneBattlefield:
		list = r.battlefield(cards)
	case rules.ZoneHand:
		list = hand(cards)
	default:
		for _, card := range cards {
			list += card.Name() + "\n"
		}
	}
	return fmt.Sprintf("%s (%d):\n%s\n", zone, len(cards), list)
}

// battlefield groups permanents by card type. A permanent with several
// types is listed once, under the first of them.
func (r *Renderer) battlefield(cards []*game.Card) string {
	var b strings.Builder
	listed := make(map[*game.Card]bool)
	for _, t := range rules.Types {
		found := false
		for _, card := range cards {
			if listed[card] || !card.IsType(t) {
				continue
			}
			listed[card] = true
			found = true
			b.WriteString(r.permanent(card, t == rules.TypeCreature))
		}
		if found {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// permanent is one battlefield line: tapped and summoning sick flags, the
// name, then power/toughness for creatures and a counter count.
func (r *Renderer) permanent(card *game.Card, creature bool) string {
	line := flag(card.IsTapped(), "T") + flag(card.SummoningSick(), "S") + "  " + card.Name()
	counters := card.Counters()
	if creature {
		line = padRight(line, r.width-1)
		if card.Power() < 10 {
			line += " "
		}
		line += strconv.Itoa(card.Power()) + "/" + strconv.Itoa(card.Toughness())
		if counters > 0 {
			line += "  " + strconv.Itoa(counters) + "c"
		}
	} else if counters > 0 {
		line = padRight(line, r.width+5) + strconv.Itoa(counters) + "c"
	}
	return line + "\n"
}

func flag(set bool, s string) string {
	if set {
		return s
	}
	return " "
}

// hand lists cards with the initials of their types in front.
func hand(cards []*game.Card) string {
	var b strings.Builder
	for _, card := range cards {
		initials := ""
		for _, t := range rules.Types {
			if card.IsType(t) {
				initials += t[:1]
			}
		}
		b.WriteString(padRight(initials, 4) + card.Name() + "\n")
	}
	return b.String()
}

// Counts draws the per-type deck tally.
func Counts(counts []game.TypeCount) string {
	var b strings.Builder
	for _, c := range counts {
		b.WriteString(padRight(c.Type, 14) + strconv.Itoa(c.Count) + "\n")
	}
	return b.String()
}

// Names lists card names, one per line.
func Names(cards []*game.Card) string {
	var b strings.Builder
	for _, card := range cards {
		b.WriteString(card.Name() + "\n")
	}
	return b.String()
}
