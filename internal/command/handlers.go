package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Roryrai/MTGplaytester/internal/game"
	"github.com/Roryrai/MTGplaytester/internal/game/rules"
	"github.com/Roryrai/MTGplaytester/internal/render"
)

// iterated commands act on the nth match on their nth repetition under do.
var iterated = map[string]bool{"counters": true, "power": true, "toughness": true, "plusone": true}

// defaultTop is how many cards top shows without an argument.
const defaultTop = 3

func syntaxError(name string) error {
	return &game.SyntaxError{Command: name}
}

func needArgs(name string, args []string, n int) error {
	if len(args) < n {
		return syntaxError(name)
	}
	return nil
}

func noArgs(name string, args []string) error {
	if len(args) > 0 {
		return syntaxError(name)
	}
	return nil
}

func intArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, syntaxError(name)
	}
	return n, nil
}

// selector looks args up in zone.
func (d *Dispatcher) selector(name string, zone rules.Zone, args []string) (game.Selector, error) {
	if err := needArgs(name, args, 1); err != nil {
		return game.Selector{}, err
	}
	return d.game.FindCard(zone, strings.Join(args, " "))
}

// card looks args up in zone and insists on a single card.
func (d *Dispatcher) card(name string, zone rules.Zone, args []string) (*game.Card, error) {
	sel, err := d.selector(name, zone, args)
	if err != nil {
		return nil, err
	}
	if sel.Card() == nil {
		return nil, syntaxError(name)
	}
	return sel.Card(), nil
}

func (d *Dispatcher) attack(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 1); err != nil {
		return "", err
	}
	var attackers []*game.Card
	if query := strings.Join(args, " "); strings.EqualFold(query, "all") {
		attackers = d.game.EligibleAttackers()
	} else {
		for _, part := range strings.Split(query, ",") {
			sel, err := d.game.FindCard(rules.ZoneBattlefield, strings.TrimSpace(part))
			if err != nil {
				return "", err
			}
			if t, ok := sel.Type(); ok {
				for _, card := range d.game.EligibleAttackers() {
					if card.IsType(t) {
						attackers = append(attackers, card)
					}
				}
				continue
			}
			attackers = append(attackers, sel.Card())
		}
	}
	if len(attackers) == 0 {
		return "No attackers selected", nil
	}

	result, err := d.game.Attack(attackers)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	plural := ""
	if len(result.Attackers) > 1 {
		plural = "s"
	}
	fmt.Fprintf(&b, "Attacking with %d creature%s:\n", len(result.Attackers), plural)
	for _, card := range result.Attackers {
		fmt.Fprintf(&b, "%s (%d/%d)\n", card.Name(), card.Power(), card.Toughness())
	}
	if result.Damage > 0 {
		fmt.Fprintf(&b, "%d damage\n", result.Damage)
	}
	if result.Poison > 0 {
		fmt.Fprintf(&b, "%d poison\n", result.Poison)
	}
	if result.CommanderDamage > 0 {
		fmt.Fprintf(&b, "%d commander damage\n", result.CommanderDamage)
	}
	return b.String(), nil
}

func (d *Dispatcher) bounce(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	_, err = d.game.Bounce(sel)
	return "", err
}

func (d *Dispatcher) copy(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	_, err = d.game.CopyPermanent(card)
	return "", err
}

func (d *Dispatcher) count(_ context.Context, name string, args []string) (string, error) {
	if err := noArgs(name, args); err != nil {
		return "", err
	}
	return render.Counts(d.game.Count()), nil
}

// modify handles counters, plusone, power and toughness: <n> <card>.
func (d *Dispatcher) modify(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 2); err != nil {
		return "", err
	}
	n, err := intArg(name, args[0])
	if err != nil {
		return "", err
	}
	sel, err := d.selector(name, rules.ZoneBattlefield, args[1:])
	if err != nil {
		return "", err
	}
	switch name {
	case "counters":
		_, err = d.game.ModCounters(sel, n)
	case "plusone":
		_, err = d.game.ModPlusOne(sel, n)
	case "power":
		_, err = d.game.ModPower(sel, n)
	case "toughness":
		_, err = d.game.ModToughness(sel, n)
	}
	return "", err
}

func (d *Dispatcher) discard(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneHand, args)
	if err != nil {
		return "", err
	}
	return "", d.game.Discard(card)
}

// repeat runs "do <n> <command> <args>". Commands that change a card in
// place move on to the next matching card each time; the rest act on the
// first match, which is a new card once the last one has moved.
func (d *Dispatcher) repeat(ctx context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 2); err != nil {
		return "", err
	}
	n, err := intArg(name, args[0])
	if err != nil {
		return "", err
	}
	inner, innerArgs, h, ok := d.lookup(strings.ToLower(args[1]), args[2:])
	if !ok || inner == "do" {
		return "", syntaxError(name)
	}

	var out []string
	for i := 0; i < n; i++ {
		a := append([]string(nil), innerArgs...)
		if iterated[inner] {
			a = append(a, strconv.Itoa(i+1))
		}
		o, err := h.run(d, ctx, inner, a)
		out = append(out, o)
		if err != nil {
			return joinOutput(out...), err
		}
	}
	return joinOutput(out...), nil
}

func (d *Dispatcher) draw(_ context.Context, name string, args []string) (string, error) {
	n := 1
	switch len(args) {
	case 0:
	case 1:
		var err error
		if n, err = intArg(name, args[0]); err != nil {
			return "", err
		}
	default:
		return "", syntaxError(name)
	}
	d.game.Draw(n)
	return "", nil
}

func (d *Dispatcher) emblem(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 1); err != nil {
		return "", err
	}
	def, err := game.FindIn(d.game.Emblems(), strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	_, err = d.game.CreateEmblem(def)
	return "", err
}

func (d *Dispatcher) end(_ context.Context, name string, args []string) (string, error) {
	if err := noArgs(name, args); err != nil {
		return "", err
	}
	d.game.EndTurn()
	return "", nil
}

func (d *Dispatcher) exile(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	_, err = d.game.Exile(sel)
	return "", err
}

func (d *Dispatcher) faceDown(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	return "", d.game.FaceDown(card)
}

func (d *Dispatcher) faceUp(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	return "", d.game.FaceUp(card)
}

func (d *Dispatcher) fetch(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneLibrary, args)
	if err != nil {
		return "", err
	}
	return "", d.game.Fetch(card)
}

// grant gives a keyword until end of turn and lists the keywords the card
// now has.
func (d *Dispatcher) grant(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	if _, err := d.game.GrantKeyword(sel, rules.Capitalize(name)); err != nil {
		return "", err
	}
	if sel.Card() == nil {
		return "", nil
	}
	return keywordList(sel.Card()), nil
}

func (d *Dispatcher) keywords(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	return keywordList(card), nil
}

func keywordList(card *game.Card) string {
	keywords := card.Keywords()
	if len(keywords) == 0 {
		return "None"
	}
	return strings.Join(keywords, "\n")
}

func (d *Dispatcher) help(_ context.Context, _ string, _ []string) (string, error) {
	return strings.Join(d.Commands(), " "), nil
}

func (d *Dispatcher) kill(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	_, err = d.game.Kill(sel)
	return "", err
}

// load replaces the deck being tested.
func (d *Dispatcher) load(ctx context.Context, name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", syntaxError(name)
	}
	if d.loader == nil {
		return "", errors.New("loading decks is not available")
	}
	deck, err := d.loader.LoadFile(ctx, args[0])
	if err != nil {
		return "", err
	}
	d.game.Load(deck)
	d.deck = deck.Name
	if d.recorder != nil && d.recorder.IsRecording() {
		d.recorder.StartRecording(deck.Name)
		d.recorder.Record(d.game)
	}
	d.logger.Info("deck loaded", zap.String("deck", deck.Name), zap.String("path", args[0]))
	return "", nil
}

func (d *Dispatcher) mill(_ context.Context, name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", syntaxError(name)
	}
	n, err := intArg(name, args[0])
	if err != nil {
		return "", err
	}
	d.game.Mill(n)
	return "", nil
}

func (d *Dispatcher) morph(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneHand, args)
	if err != nil {
		return "", err
	}
	return "", d.game.PlayFaceDown(card)
}

// move runs "move <from> <to> [card]". Zone names may be abbreviated as
// long as they stay unambiguous.
func (d *Dispatcher) move(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 2); err != nil {
		return "", err
	}
	from, okFrom := rules.ZoneFromString(args[0])
	to, okTo := rules.ZoneFromString(args[1])
	if !okFrom || !okTo {
		return "", &game.ZoneError{Reason: "Zone does not exist, or zone name is not specific enough."}
	}
	var card *game.Card
	if len(args) > 2 {
		if from == rules.ZoneTop || from == rules.ZoneBottom {
			return "", &game.ZoneError{Reason: "Can't move a specific card from top or bottom."}
		}
		var err error
		if card, err = d.card(name, from, args[2:]); err != nil {
			return "", err
		}
	}
	_, err := d.game.MoveBetween(from, to, card)
	return "", err
}

func (d *Dispatcher) mulligan(_ context.Context, name string, args []string) (string, error) {
	if err := noArgs(name, args); err != nil {
		return "", err
	}
	return "", d.game.Mulligan()
}

func (d *Dispatcher) next(_ context.Context, name string, args []string) (string, error) {
	if err := noArgs(name, args); err != nil {
		return "", err
	}
	d.game.NextTurn()
	return "", nil
}

// stat handles "p1|p2 life|poison|commander <n>".
func (d *Dispatcher) stat(_ context.Context, name string, args []string) (string, error) {
	if len(args) != 2 {
		return "", syntaxError(name)
	}
	stat := game.Stat(strings.ToLower(args[0]))
	switch stat {
	case game.StatLife, game.StatPoison, game.StatCommander:
	default:
		return "", syntaxError(name)
	}
	n, err := intArg(name, args[1])
	if err != nil {
		return "", err
	}
	player := game.PlayerOne
	if name == "p2" {
		player = game.PlayerTwo
	}
	d.game.ModStat(player, stat, n)
	return "", nil
}

// play plays a card from the hand, the revealed top of the library or
// the command zone. "commander" names the commander.
func (d *Dispatcher) play(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 1); err != nil {
		return "", err
	}
	query := strings.Join(args, " ")
	commander := d.game.Commander()
	if commander != nil && strings.EqualFold(query, "commander") {
		return "", d.game.Play(commander)
	}
	card, err := d.game.FindPlayable(query)
	if err != nil {
		var notFound *game.NotFoundError
		if errors.As(err, &notFound) && len(d.game.Cards(rules.ZoneHand)) == 0 {
			return "", &game.ZoneError{Reason: "You have no cards in hand."}
		}
		return "", err
	}
	return "", d.game.Play(card)
}

func (d *Dispatcher) quit(_ context.Context, _ string, _ []string) (string, error) {
	return "", nil
}

// replay handles "replay start|stop|save".
func (d *Dispatcher) replay(_ context.Context, name string, args []string) (string, error) {
	if len(args) != 1 {
		return "", syntaxError(name)
	}
	if d.recorder == nil {
		return "", errors.New("replay recording is not available")
	}
	switch strings.ToLower(args[0]) {
	case "start":
		d.recorder.StartRecording(d.deck)
		d.recorder.Record(d.game)
		return "Recording replay " + d.recorder.Replay().SessionID, nil
	case "stop":
		d.recorder.StopRecording()
		return "Replay paused", nil
	case "save":
		replay := d.recorder.Replay()
		if err := d.recorder.Save(); err != nil {
			return "", err
		}
		return fmt.Sprintf("Saved %d states of replay %s", replay.Size(), replay.SessionID), nil
	}
	return "", syntaxError(name)
}

func (d *Dispatcher) reset(_ context.Context, _ string, _ []string) (string, error) {
	d.game.Reset()
	if d.recorder != nil {
		d.recorder.Record(d.game)
	}
	return "", nil
}

func (d *Dispatcher) sacrifice(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	_, err = d.game.Sacrifice(sel)
	return "", err
}

func (d *Dispatcher) shuffle(_ context.Context, name string, args []string) (string, error) {
	if err := noArgs(name, args); err != nil {
		return "", err
	}
	d.game.Shuffle()
	return "", nil
}

func (d *Dispatcher) turnStats(_ context.Context, _ string, _ []string) (string, error) {
	return d.stats.String(), nil
}

// tap taps the first untapped card matching the query, counting from the
// nth match when a number is given. A card type taps every card of it.
func (d *Dispatcher) tap(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	if card := d.firstMatch(sel, args, false); card != nil {
		sel = game.SingleCard(card)
	}
	_, err = d.game.Tap(sel)
	return "", err
}

// untap untaps the first tapped card matching the query.
func (d *Dispatcher) untap(_ context.Context, name string, args []string) (string, error) {
	sel, err := d.selector(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	if card := d.firstMatch(sel, args, true); card != nil {
		sel = game.SingleCard(card)
	}
	_, err = d.game.Untap(sel)
	return "", err
}

// firstMatch walks the battlefield matches of args from the selected card
// on and returns the first whose tapped state is tapped. It returns the
// selected card itself when none is, and nil for a type selector.
func (d *Dispatcher) firstMatch(sel game.Selector, args []string, tapped bool) *game.Card {
	start := sel.Card()
	if start == nil {
		return nil
	}
	matches := d.game.FindCards(rules.ZoneBattlefield, strings.Join(args, " "))
	seen := false
	for _, card := range matches {
		if card == start {
			seen = true
		}
		if seen && card.IsTapped() == tapped {
			return card
		}
	}
	return start
}

func (d *Dispatcher) token(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 1); err != nil {
		return "", err
	}
	def, err := game.FindIn(d.game.Tokens(), strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	_, err = d.game.CreateToken(def)
	return "", err
}

func (d *Dispatcher) top(_ context.Context, name string, args []string) (string, error) {
	n := defaultTop
	switch len(args) {
	case 0:
	case 1:
		var err error
		if n, err = intArg(name, args[0]); err != nil {
			return "", err
		}
	default:
		return "", syntaxError(name)
	}
	return render.Names(d.game.Top(n)), nil
}

func (d *Dispatcher) transform(_ context.Context, name string, args []string) (string, error) {
	card, err := d.card(name, rules.ZoneBattlefield, args)
	if err != nil {
		return "", err
	}
	return "", d.game.Transform(card)
}

func (d *Dispatcher) undo(_ context.Context, name string, args []string) (string, error) {
	if err := noArgs(name, args); err != nil {
		return "", err
	}
	return "", d.game.Undo()
}

// view draws a card: one on the battlefield if it matches, otherwise the
// first match in the deck or the token and emblem catalogs.
func (d *Dispatcher) view(_ context.Context, name string, args []string) (string, error) {
	if err := needArgs(name, args, 1); err != nil {
		return "", err
	}
	query := strings.Join(args, " ")
	if sel, err := d.game.FindCard(rules.ZoneBattlefield, query); err == nil && sel.Card() != nil {
		return d.render.Card(sel.Card()), nil
	}
	card, err := d.game.FindAnywhere(query)
	if err != nil {
		return "", err
	}
	return d.render.Card(card), nil
}
