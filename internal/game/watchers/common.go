// Package watchers keeps running tallies of what happened during the
// current turn by listening to game events.
package watchers

import (
	"fmt"
	"strings"

	"github.com/Roryrai/MTGplaytester/internal/game/rules"
)

// Watcher observes events and can be cleared at a turn boundary.
type Watcher interface {
	Watch(event rules.Event)
	Reset()
}

// SpellsCastWatcher tracks cards played this turn.
type SpellsCastWatcher struct {
	spells []string // card IDs in cast order
}

func NewSpellsCastWatcher() *SpellsCastWatcher { return &SpellsCastWatcher{} }

// Watch implements the Watcher interface.
func (w *SpellsCastWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventSpellCast || event.TargetID == "" {
		return
	}
	w.spells = append(w.spells, event.TargetID)
}

func (w *SpellsCastWatcher) Reset()             { w.spells = nil }
func (w *SpellsCastWatcher) Count() int         { return len(w.spells) }
func (w *SpellsCastWatcher) SpellIDs() []string { return w.spells }

// CreaturesDiedWatcher counts creatures put into the graveyard from the
// battlefield.
type CreaturesDiedWatcher struct {
	died int
}

func NewCreaturesDiedWatcher() *CreaturesDiedWatcher { return &CreaturesDiedWatcher{} }

// Watch implements the Watcher interface.
func (w *CreaturesDiedWatcher) Watch(event rules.Event) {
	if event.Type == rules.EventDies {
		w.died++
	}
}

func (w *CreaturesDiedWatcher) Reset()     { w.died = 0 }
func (w *CreaturesDiedWatcher) Count() int { return w.died }

// CardsDrawnWatcher counts cards drawn.
type CardsDrawnWatcher struct {
	drawn int
}

func NewCardsDrawnWatcher() *CardsDrawnWatcher { return &CardsDrawnWatcher{} }

// Watch implements the Watcher interface.
func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.Type == rules.EventDrewCard {
		w.drawn++
	}
}

func (w *CardsDrawnWatcher) Reset()     { w.drawn = 0 }
func (w *CardsDrawnWatcher) Count() int { return w.drawn }

// PermanentsEnteredWatcher records the names of permanents that entered
// the battlefield.
type PermanentsEnteredWatcher struct {
	entered []string
}

func NewPermanentsEnteredWatcher() *PermanentsEnteredWatcher { return &PermanentsEnteredWatcher{} }

// Watch implements the Watcher interface.
func (w *PermanentsEnteredWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventEntersTheBattlefield {
		return
	}
	w.entered = append(w.entered, event.Data)
}

func (w *PermanentsEnteredWatcher) Reset()          { w.entered = nil }
func (w *PermanentsEnteredWatcher) Count() int      { return len(w.entered) }
func (w *PermanentsEnteredWatcher) Names() []string { return w.entered }

// TurnStats groups the per-turn watchers. The tallies clear when a turn
// ends or the game is reset.
type TurnStats struct {
	Spells  *SpellsCastWatcher
	Died    *CreaturesDiedWatcher
	Drawn   *CardsDrawnWatcher
	Entered *PermanentsEnteredWatcher

	bus    *rules.EventBus
	handle int
}

// Attach creates a TurnStats listening on bus.
func Attach(bus *rules.EventBus) *TurnStats {
	s := &TurnStats{
		Spells:  NewSpellsCastWatcher(),
		Died:    NewCreaturesDiedWatcher(),
		Drawn:   NewCardsDrawnWatcher(),
		Entered: NewPermanentsEnteredWatcher(),
		bus:     bus,
	}
	s.handle = bus.Subscribe(s.Watch)
	return s
}

// Detach stops listening.
func (s *TurnStats) Detach() {
	s.bus.Unsubscribe(s.handle)
}

func (s *TurnStats) watchers() []Watcher {
	return []Watcher{s.Spells, s.Died, s.Drawn, s.Entered}
}

// Watch implements the Watcher interface.
func (s *TurnStats) Watch(event rules.Event) {
	switch event.Type {
	case rules.EventEndTurn, rules.EventGameReset:
		s.Reset()
		return
	}
	for _, w := range s.watchers() {
		w.Watch(event)
	}
}

// Reset clears every tally.
func (s *TurnStats) Reset() {
	for _, w := range s.watchers() {
		w.Reset()
	}
}

// String summarizes the turn, e.g. "2 spells cast, 1 card drawn".
func (s *TurnStats) String() string {
	var parts []string
	add := func(n int, one, many string) {
		if n == 0 {
			return
		}
		noun := many
		if n == 1 {
			noun = one
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, noun))
	}
	add(s.Spells.Count(), "spell cast", "spells cast")
	add(s.Drawn.Count(), "card drawn", "cards drawn")
	add(s.Entered.Count(), "permanent entered", "permanents entered")
	add(s.Died.Count(), "creature died", "creatures died")
	if len(parts) == 0 {
		return "Nothing has happened this turn."
	}
	return strings.Join(parts, ", ")
}
