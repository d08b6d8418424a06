package notifications

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestHubPublishSubscribe проверяет доставку событий подписчику.
func TestHubPublishSubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	defer unsubscribe()

	hub.Publish(userID, Event{Type: EventPlanUpdated})

	select {
	case event := <-ch:
		if event.Type != EventPlanUpdated {
			t.Fatalf("expected event type %s, got %s", EventPlanUpdated, event.Type)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("expected timestamp to be set")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected event to be delivered")
	}
}

// TestHubUnsubscribe проверяет закрытие канала после отписки.
func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	ch, unsubscribe := hub.Subscribe(userID)
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
}

// TestHubIsolatesUsers проверяет, что события не утекают чужим подписчикам.
func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub()

	ch, unsubscribe := hub.Subscribe(uuid.New())
	defer unsubscribe()

	hub.Publish(uuid.New(), Event{Type: EventPlanUpdated})

	select {
	case event := <-ch:
		t.Fatalf("unexpected event %s", event.Type)
	case <-time.After(50 * time.Millisecond):
	}
}
