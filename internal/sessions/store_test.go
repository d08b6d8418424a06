package sessions

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/raw-feed-planner/internal/planner"
)

// TestStoreCreateAndWith проверяет доступ владельца к своей сессии.
func TestStoreCreateAndWith(t *testing.T) {
	store := NewStore(time.Hour, 0)
	userID := uuid.New()

	sessionID, session := store.Create(userID)
	session.NewPlan("weekly", 7, 2)

	err := store.With(userID, sessionID, func(s *planner.Session) error {
		if s.Plan() == nil {
			t.Fatal("expected plan to be loaded")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

// TestStoreRejectsForeignUser проверяет изоляцию сессий между пользователями.
func TestStoreRejectsForeignUser(t *testing.T) {
	store := NewStore(time.Hour, 0)
	sessionID, _ := store.Create(uuid.New())

	err := store.With(uuid.New(), sessionID, func(*planner.Session) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

// TestStoreDelete проверяет закрытие сессии.
func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Hour, 0)
	userID := uuid.New()
	sessionID, _ := store.Create(userID)

	store.Delete(userID, sessionID)

	err := store.With(userID, sessionID, func(*planner.Session) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

// TestStoreExpiresByTTL проверяет вытеснение сессии по TTL.
func TestStoreExpiresByTTL(t *testing.T) {
	store := NewStore(time.Minute, 0)
	userID := uuid.New()
	sessionID, _ := store.Create(userID)

	current := time.Now()
	store.now = func() time.Time { return current.Add(2 * time.Minute) }

	err := store.With(userID, sessionID, func(*planner.Session) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}
