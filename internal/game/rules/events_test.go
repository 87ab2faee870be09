package rules

import (
	"testing"
	"time"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	enterCount := 0
	lifeCount := 0

	handle1 := bus.SubscribeTyped(EventEntersTheBattlefield, func(e Event) {
		enterCount++
	})

	handle2 := bus.SubscribeTyped(EventLifeChanged, func(e Event) {
		lifeCount++
	})

	bus.Publish(NewEvent(EventEntersTheBattlefield, "card1", "card1", "P1"))
	if enterCount != 1 {
		t.Fatalf("expected enter count 1, got %d", enterCount)
	}
	if lifeCount != 0 {
		t.Fatalf("expected life count 0, got %d", lifeCount)
	}

	bus.Publish(NewEventWithAmount(EventLifeChanged, "P2", "card1", "P2", -3))
	if lifeCount != 1 {
		t.Fatalf("expected life count 1, got %d", lifeCount)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewEvent(EventEntersTheBattlefield, "card2", "card2", "P1"))
	if enterCount != 1 {
		t.Fatalf("expected enter count still 1 after unsubscribe, got %d", enterCount)
	}

	bus.Unsubscribe(handle2)
	bus.Publish(NewEventWithAmount(EventLifeChanged, "P2", "card1", "P2", -3))
	if lifeCount != 1 {
		t.Fatalf("expected life count still 1 after unsubscribe, got %d", lifeCount)
	}
}

func TestEventBusSubscribeAllInOrder(t *testing.T) {
	bus := NewEventBus()

	var seen []string
	first := bus.Subscribe(func(e Event) { seen = append(seen, "first:"+string(e.Type)) })
	bus.Subscribe(func(e Event) { seen = append(seen, "second:"+string(e.Type)) })

	bus.Publish(NewEvent(EventTapped, "card1", "card1", "P1"))
	if len(seen) != 2 || seen[0] != "first:TAPPED" || seen[1] != "second:TAPPED" {
		t.Fatalf("unexpected delivery order %v", seen)
	}

	bus.Unsubscribe(first)
	seen = nil
	bus.Publish(NewEvent(EventUntapped, "card1", "card1", "P1"))
	if len(seen) != 1 || seen[0] != "second:UNTAPPED" {
		t.Fatalf("unexpected delivery after unsubscribe %v", seen)
	}
}

func TestNilListenerRejected(t *testing.T) {
	bus := NewEventBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected -1 handle, got %d", h)
	}
	if h := bus.SubscribeTyped(EventDies, nil); h != -1 {
		t.Fatalf("expected -1 handle, got %d", h)
	}
}

func TestZoneEvent(t *testing.T) {
	before := time.Now()
	evt := NewZoneEvent(EventZoneChange, "id-1", "Grizzly Bears", ZoneHand, ZoneBattlefield)
	after := time.Now()

	if evt.Data != "Grizzly Bears" {
		t.Fatalf("expected card name in data, got %q", evt.Data)
	}
	if evt.FromZone != ZoneHand || evt.Zone != ZoneBattlefield {
		t.Fatalf("unexpected zones %s -> %s", evt.FromZone, evt.Zone)
	}
	if evt.ID == "" {
		t.Fatal("expected an event id")
	}
	if evt.Timestamp.Before(before) || evt.Timestamp.After(after) {
		t.Fatal("event timestamp should be between before and after")
	}
}
