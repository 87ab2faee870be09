package rules

import (
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Zone events
	EventZoneChange           EventType = "ZONE_CHANGE"
	EventEntersTheBattlefield EventType = "ENTERS_THE_BATTLEFIELD"
	EventLeavesTheBattlefield EventType = "LEAVES_THE_BATTLEFIELD"
	EventDies                 EventType = "DIES"
	EventTokenCeased          EventType = "TOKEN_CEASED"

	// Enter-the-battlefield text was found. Nothing resolves it; listeners
	// (the CLI) only report it.
	EventEnterTrigger EventType = "ENTER_TRIGGER"

	// Card events
	EventSpellCast EventType = "SPELL_CAST"
	EventDrewCard  EventType = "DREW_CARD"
	EventDiscarded EventType = "DISCARDED_CARD"
	EventMilled    EventType = "MILLED_CARD"

	// Permanent state events
	EventTapped         EventType = "TAPPED"
	EventUntapped       EventType = "UNTAPPED"
	EventTransformed    EventType = "TRANSFORMED"
	EventTurnedFaceDown EventType = "TURNED_FACE_DOWN"
	EventTurnedFaceUp   EventType = "TURNED_FACE_UP"
	EventTokenCreated   EventType = "TOKEN_CREATED"
	EventEmblemCreated  EventType = "EMBLEM_CREATED"
	EventCounterChanged EventType = "COUNTER_CHANGED"

	// Library events
	EventLibraryShuffled EventType = "LIBRARY_SHUFFLED"

	// Player events
	EventLifeChanged      EventType = "PLAYER_LIFE_CHANGE"
	EventPoisonChanged    EventType = "PLAYER_POISON_CHANGE"
	EventCommanderDamaged EventType = "COMMANDER_DAMAGE"
	EventPlayerLost       EventType = "LOST"
	EventAttacked         EventType = "DECLARED_ATTACKERS"

	// Turn events
	EventNewTurn   EventType = "BEGIN_TURN"
	EventEndTurn   EventType = "END_TURN"
	EventMulligan  EventType = "MULLIGAN"
	EventGameReset EventType = "GAME_RESET"

	// State-based actions event
	EventStateBasedActions EventType = "STATE_BASED_ACTIONS"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string // Unique event ID
	TargetID    string // ID of the affected card, or the player name
	SourceID    string // ID of the card that caused the event
	PlayerID    string // Player the event concerns
	Amount      int    // Numeric value (life, counters, cards drawn)
	Data        string // Additional string data, usually the card name
	Zone        Zone   // Destination zone for zone events
	FromZone    Zone   // Origin zone for zone events
	Timestamp   time.Time
	Description string // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus is a synchronous publish/subscribe hub with type filtering.
// The engine is single threaded so the bus does no locking.
type EventBus struct {
	listeners      map[int]Listener
	order          []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously,
// catch-all listeners first in subscription order.
func (bus *EventBus) Publish(event Event) {
	for _, handle := range bus.order {
		bus.listeners[handle](event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, playerID string) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		TargetID:  targetID,
		SourceID:  sourceID,
		PlayerID:  playerID,
		Timestamp: time.Now(),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, playerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, playerID)
	evt.Amount = amount
	return evt
}

// NewZoneEvent creates a zone change event for a card.
func NewZoneEvent(eventType EventType, cardID, cardName string, from, to Zone) Event {
	evt := NewEvent(eventType, cardID, cardID, "")
	evt.Data = cardName
	evt.FromZone = from
	evt.Zone = to
	return evt
}
