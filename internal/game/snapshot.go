package game

import (
	"errors"
	"time"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// maxHistory is how many undo steps are kept.
const maxHistory = 50

// ErrNothingToUndo is returned by Undo when no checkpoint is left.
var ErrNothingToUndo = errors.New("nothing to undo")

// CardView is the visible state of one card in a snapshot.
type CardView struct {
	ID          string
	Name        string
	Tapped      bool
	FaceDown    bool
	Transformed bool
	Sick        bool
	Power       int
	Toughness   int
	Counters    int
	Keywords    []string
}

// Snapshot captures the board at one moment. The exported fields describe
// it for replays; the rest lets the game be put back exactly as it was.
type Snapshot struct {
	Turn         int
	Step         string
	Mulligans    int
	CommandPlays int
	Players      []Player
	Zones        map[string][]CardView
	Timestamp    time.Time

	turns rules.TurnManager
	lists [5][]*Card
	cards map[*Card]Card
}

// snapshotZones are the zones that hold a list of cards, in the order the
// lists are saved.
var snapshotZones = []rules.Zone{
	rules.ZoneLibrary,
	rules.ZoneHand,
	rules.ZoneBattlefield,
	rules.ZoneGraveyard,
	rules.ZoneExile,
}

// Snapshot records the current state of the game.
func (g *GameState) Snapshot() *Snapshot {
	s := &Snapshot{
		Turn:         g.Turn(),
		Step:         g.Step().String(),
		Mulligans:    g.mulligans,
		CommandPlays: g.commandPlays,
		Zones:        make(map[string][]CardView, len(snapshotZones)+1),
		Timestamp:    time.Now(),
		turns:        *g.turns,
		cards:        make(map[*Card]Card),
	}
	for _, p := range g.players {
		s.Players = append(s.Players, *p)
	}

	save := func(card *Card) {
		saved := *card
		saved.granted = append([]string(nil), card.granted...)
		saved.anthemKeywords = append([]string(nil), card.anthemKeywords...)
		s.cards[card] = saved
	}
	for i, zone := range snapshotZones {
		list := g.Cards(zone)
		s.lists[i] = append([]*Card(nil), list...)
		views := make([]CardView, 0, len(list))
		for _, card := range list {
			save(card)
			views = append(views, viewOf(card))
		}
		s.Zones[zone.String()] = views
	}
	if g.commander != nil {
		save(g.commander)
		if g.commander.Zone() == rules.ZoneCommand {
			s.Zones[rules.ZoneCommand.String()] = []CardView{viewOf(g.commander)}
		}
	}
	return s
}

func viewOf(card *Card) CardView {
	return CardView{
		ID:          card.ID(),
		Name:        card.Name(),
		Tapped:      card.IsTapped(),
		FaceDown:    card.IsFaceDown(),
		Transformed: card.IsTransformed(),
		Sick:        card.SummoningSick(),
		Power:       card.Power(),
		Toughness:   card.Toughness(),
		Counters:    card.Counters(),
		Keywords:    card.Keywords(),
	}
}

// Restore puts the game back to the state s was taken in. Tokens created
// since then disappear with the zone lists that held them.
func (g *GameState) Restore(s *Snapshot) {
	*g.turns = s.turns
	g.mulligans = s.Mulligans
	g.commandPlays = s.CommandPlays
	for i, p := range s.Players {
		*g.players[i] = p
	}
	for card, saved := range s.cards {
		*card = saved
	}
	for i, zone := range snapshotZones {
		*g.container(zone) = append([]*Card(nil), s.lists[i]...)
	}
}

// Checkpoint remembers the current state so the next change can be undone.
// It returns the snapshot it took.
func (g *GameState) Checkpoint() *Snapshot {
	s := g.Snapshot()
	g.history = append(g.history, s)
	if len(g.history) > maxHistory {
		g.history = g.history[len(g.history)-maxHistory:]
	}
	return s
}

// DiscardCheckpoint forgets the last checkpoint, for a change that did not
// happen after all.
func (g *GameState) DiscardCheckpoint() {
	if len(g.history) > 0 {
		g.history = g.history[:len(g.history)-1]
	}
}

// Undo returns to the last checkpoint.
func (g *GameState) Undo() error {
	if len(g.history) == 0 {
		return ErrNothingToUndo
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.Restore(last)
	g.logger.Debug("undo")
	return nil
}
