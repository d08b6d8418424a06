package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/models"
	"example.com/raw-feed-planner/internal/planner"
)

// TestParsePositiveDecimal проверяет разбор положительных десятичных значений.
func TestParsePositiveDecimal(t *testing.T) {
	value, err := parsePositiveDecimal(" 10.5 ", "weight")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if value.String() != "10.5" {
		t.Fatalf("unexpected value: %s", value.String())
	}

	if _, err := parsePositiveDecimal("abc", "weight"); err == nil {
		t.Fatal("expected error for non-decimal input")
	}

	if _, err := parsePositiveDecimal("0", "weight"); err == nil {
		t.Fatal("expected error for zero")
	}

	if _, err := parsePositiveDecimal("-1", "weight"); err == nil {
		t.Fatal("expected error for negative value")
	}
}

// TestParseDateRange проверяет разбор необязательного диапазона дат.
func TestParseDateRange(t *testing.T) {
	start := "2026-01-01"
	end := "2026-01-07"

	gotStart, gotEnd, err := parseDateRange(&start, &end)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotStart.Format(dateLayout) != start || gotEnd.Format(dateLayout) != end {
		t.Fatalf("unexpected range: %v - %v", gotStart, gotEnd)
	}

	gotStart, gotEnd, err = parseDateRange(nil, nil)
	if err != nil || gotStart != nil || gotEnd != nil {
		t.Fatalf("expected empty range, got %v - %v (err=%v)", gotStart, gotEnd, err)
	}

	bad := "2026/01/01"
	if _, _, err := parseDateRange(&bad, nil); err == nil {
		t.Fatal("expected error for invalid start_date format")
	}

	flipped := "2025-12-31"
	if _, _, err := parseDateRange(&start, &flipped); err == nil {
		t.Fatal("expected error for end before start")
	}
}

// TestResolveMealsPerDay проверяет подстановку числа приемов пищи по умолчанию.
func TestResolveMealsPerDay(t *testing.T) {
	got, err := resolveMealsPerDay(nil, 2)
	if err != nil || got != 2 {
		t.Fatalf("expected fallback 2, got %d (err=%v)", got, err)
	}

	three := 3
	got, err = resolveMealsPerDay(&three, 2)
	if err != nil || got != 3 {
		t.Fatalf("expected 3, got %d (err=%v)", got, err)
	}

	zero := 0
	if _, err := resolveMealsPerDay(&zero, 2); err == nil {
		t.Fatal("expected error for zero meals_per_day")
	}
}

// TestPlanModelsRoundTrip проверяет сворачивание черновика в строки и обратно.
func TestPlanModelsRoundTrip(t *testing.T) {
	userID := uuid.New()
	food := planner.Food{
		ID:     uuid.New(),
		Cost:   decimal.RequireFromString("20.00"),
		Weight: decimal.RequireFromString("2000"),
	}

	draft := planner.NewPlan("Weekly raw", 7, 2)
	if _, err := draft.AddItem(food, decimal.RequireFromString("200"), nil); err != nil {
		t.Fatalf("add item: %v", err)
	}

	plan, items := planModels(userID, draft)
	if plan.UserID != userID || plan.Name != "Weekly raw" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
	if !plan.TotalCost.Equal(decimal.RequireFromString("28.00")) {
		t.Fatalf("unexpected total cost: %s", plan.TotalCost)
	}
	if len(items) != 1 || items[0].SortOrder != 0 {
		t.Fatalf("unexpected items: %+v", items)
	}

	stored := models.MealPlan{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         plan.Name,
		DurationDays: plan.DurationDays,
		MealsPerDay:  plan.MealsPerDay,
		TotalCost:    plan.TotalCost,
	}
	restored := toPlannerPlan(stored, items)
	if restored.SlotCount() != 14 {
		t.Fatalf("unexpected slot count: %d", restored.SlotCount())
	}
	if len(restored.Items) != 1 || !restored.Items[0].TotalQuantity.Equal(decimal.RequireFromString("2800")) {
		t.Fatalf("unexpected restored items: %+v", restored.Items)
	}
}
