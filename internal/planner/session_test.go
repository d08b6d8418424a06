package planner

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TestSessionRequiresActivePlan проверяет отказ мутаций без загруженного плана.
func TestSessionRequiresActivePlan(t *testing.T) {
	session := NewSession(0)
	food := testFood(t, "1000", "10")

	if _, err := session.AddItem(food, decimal.NewFromInt(100), nil); !errors.Is(err, ErrNoActivePlan) {
		t.Fatalf("expected ErrNoActivePlan, got %v", err)
	}
	if err := session.RemoveItem(uuid.New()); !errors.Is(err, ErrNoActivePlan) {
		t.Fatalf("expected ErrNoActivePlan, got %v", err)
	}
	if session.Undo() {
		t.Fatal("expected undo to be a no-op")
	}
	if session.Redo() {
		t.Fatal("expected redo to be a no-op")
	}
}

// TestSessionUndoRedoRoundTrip проверяет полный откат и повтор серии правок.
func TestSessionUndoRedoRoundTrip(t *testing.T) {
	session := NewSession(0)
	plan := session.NewPlan("weekly", 7, 2)
	food := testFood(t, "2000", "20.00")

	initial := plan.Clone()

	item, err := session.AddItem(food, decimal.NewFromInt(200), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := session.UpdateItemQuantity(item.ID, decimal.NewFromInt(150)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := session.UpdateSchedule(intPtr(5), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	final := session.Plan().Clone()

	for i := 0; i < 3; i++ {
		if !session.Undo() {
			t.Fatalf("expected undo %d to apply", i+1)
		}
	}

	if got := session.Plan(); len(got.Items) != len(initial.Items) || !got.TotalCost.Equal(initial.TotalCost) {
		t.Fatalf("expected initial state after undos, got %d items, total %s", len(got.Items), got.TotalCost)
	}

	for i := 0; i < 3; i++ {
		if !session.Redo() {
			t.Fatalf("expected redo %d to apply", i+1)
		}
	}

	got := session.Plan()
	if len(got.Items) != len(final.Items) || !got.TotalCost.Equal(final.TotalCost) {
		t.Fatalf("expected final state after redos, got %d items, total %s", len(got.Items), got.TotalCost)
	}
	if got.DurationDays != 5 {
		t.Fatalf("expected duration 5 after redo, got %d", got.DurationDays)
	}
}

// TestSessionMutationClearsRedo проверяет очистку future после новой правки.
func TestSessionMutationClearsRedo(t *testing.T) {
	session := NewSession(0)
	session.NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	if _, err := session.AddItem(food, decimal.NewFromInt(100), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !session.Undo() {
		t.Fatal("expected undo to apply")
	}

	if _, err := session.AddItem(food, decimal.NewFromInt(50), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.Redo() {
		t.Fatal("expected redo history to be cleared")
	}
}

// TestSessionFailedEditKeepsHistory проверяет, что неудачная правка не создает снимок.
func TestSessionFailedEditKeepsHistory(t *testing.T) {
	session := NewSession(0)
	session.NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	if _, err := session.AddItem(food, decimal.Zero, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if session.Undo() {
		t.Fatal("expected no checkpoint after failed edit")
	}
	if len(session.Plan().Items) != 0 {
		t.Fatal("expected plan untouched after failed edit")
	}
}

// TestSessionSnapshotIsolation проверяет независимость снимков от текущего плана.
func TestSessionSnapshotIsolation(t *testing.T) {
	session := NewSession(0)
	session.NewPlan("weekly", 7, 2)
	food := testFood(t, "2000", "20.00")

	item, err := session.AddItem(food, decimal.NewFromInt(200), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := session.UpdateItemQuantity(item.ID, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !session.Undo() {
		t.Fatal("expected undo to apply")
	}
	if !session.Plan().Items[0].QuantityPerMeal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected snapshot quantity 200, got %s", session.Plan().Items[0].QuantityPerMeal)
	}
}

// TestSessionHistoryDepthCap проверяет ограничение глубины истории.
func TestSessionHistoryDepthCap(t *testing.T) {
	session := NewSession(2)
	session.NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	for i := 0; i < 5; i++ {
		if _, err := session.AddItem(food, decimal.NewFromInt(int64(10+i)), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	undone := 0
	for session.Undo() {
		undone++
	}
	if undone != 2 {
		t.Fatalf("expected history capped at 2, got %d undos", undone)
	}
}

// TestSessionLoadPushesPriorPlan проверяет, что загрузка сохраняет прежний план.
func TestSessionLoadPushesPriorPlan(t *testing.T) {
	session := NewSession(0)
	session.NewPlan("first", 7, 2)

	loaded := NewPlan("second", 5, 3)
	session.Load(loaded)

	if session.Plan().Name != "second" {
		t.Fatalf("expected loaded plan to be current, got %s", session.Plan().Name)
	}
	if !session.Undo() {
		t.Fatal("expected prior plan in history")
	}
	if session.Plan().Name != "first" {
		t.Fatalf("expected first plan after undo, got %s", session.Plan().Name)
	}
}
