package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/planner"
)

// TestToSessionResponseEmpty проверяет ответ для сессии без плана.
func TestToSessionResponseEmpty(t *testing.T) {
	sessionID := uuid.New()
	session := planner.NewSession(0)

	response := toSessionResponse(sessionID, session)
	if response.SessionID != sessionID {
		t.Fatalf("unexpected session id: %s", response.SessionID)
	}
	if response.Plan != nil {
		t.Fatal("expected no plan in response")
	}
	if response.CanUndo || response.CanRedo {
		t.Fatal("expected empty history flags")
	}
}

// TestSeedQuantityRequiresDog проверяет запрос количества без собаки в плане.
func TestSeedQuantityRequiresDog(t *testing.T) {
	handler := &SessionHandler{}

	if _, err := handler.seedQuantity(context.Background(), uuid.New(), nil); !errors.Is(err, planner.ErrNoActivePlan) {
		t.Fatalf("expected ErrNoActivePlan, got %v", err)
	}

	session := planner.NewSession(0)
	session.NewPlan("Weekly raw", 7, 2)
	if _, err := handler.seedQuantity(context.Background(), uuid.New(), session.Plan()); !errors.Is(err, errQuantityRequired) {
		t.Fatalf("expected errQuantityRequired, got %v", err)
	}
}

// TestToSessionResponseTracksHistory проверяет флаги undo/redo и состав плана.
func TestToSessionResponseTracksHistory(t *testing.T) {
	session := planner.NewSession(0)
	session.NewPlan("Weekly raw", 7, 2)

	food := planner.Food{
		ID:     uuid.New(),
		Cost:   decimal.RequireFromString("20.00"),
		Weight: decimal.RequireFromString("2000"),
	}
	if _, err := session.AddItem(food, decimal.RequireFromString("200"), nil); err != nil {
		t.Fatalf("add item: %v", err)
	}

	response := toSessionResponse(uuid.New(), session)
	if response.Plan == nil {
		t.Fatal("expected plan in response")
	}
	if !response.CanUndo || response.CanRedo {
		t.Fatalf("unexpected history flags: undo=%v redo=%v", response.CanUndo, response.CanRedo)
	}
	if len(response.Plan.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(response.Plan.Items))
	}
	if !response.Plan.TotalCost.Equal(decimal.RequireFromString("28.00")) {
		t.Fatalf("unexpected total cost: %s", response.Plan.TotalCost)
	}

	if !session.Undo() {
		t.Fatal("expected undo to apply")
	}
	response = toSessionResponse(uuid.New(), session)
	if response.CanUndo || !response.CanRedo {
		t.Fatalf("unexpected history flags after undo: undo=%v redo=%v", response.CanUndo, response.CanRedo)
	}
	if len(response.Plan.Items) != 0 {
		t.Fatalf("expected empty plan after undo, got %d items", len(response.Plan.Items))
	}
}
