package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got []Event
	d.Subscribe(EventApplicationSubmitted, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	event := Event{ID: "evt-1", Type: EventApplicationSubmitted, ApplicationID: 12}
	if err := d.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	if got[0].ID != "evt-1" || got[0].ApplicationID != 12 {
		t.Errorf("delivered event: %+v", got[0])
	}
}

func TestDispatcher_TypeIsolation(t *testing.T) {
	d := NewInMemoryDispatcher()

	fired := 0
	d.Subscribe(EventApplicationStatusChanged, func(context.Context, Event) error {
		fired++
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventApplicationSubmitted})
	if fired != 0 {
		t.Errorf("handler for another type must not fire, got %d", fired)
	}
}

func TestDispatcher_NoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventCallbackRequested}); err != nil {
		t.Fatalf("publish without subscribers: %v", err)
	}
}

func TestDispatcher_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	d := NewInMemoryDispatcher()

	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		return errors.New("broken handler")
	})
	reached := false
	d.Subscribe(EventApplicationSubmitted, func(context.Context, Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventApplicationSubmitted}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Error("later handler must still run after an earlier failure")
	}
}

func TestDispatcher_MultipleSubscribersAllFire(t *testing.T) {
	d := NewInMemoryDispatcher()

	fired := 0
	for i := 0; i < 3; i++ {
		d.Subscribe(EventCallbackRequested, func(context.Context, Event) error {
			fired++
			return nil
		})
	}

	_ = d.Publish(context.Background(), Event{Type: EventCallbackRequested})
	if fired != 3 {
		t.Errorf("expected 3 deliveries, got %d", fired)
	}
}
