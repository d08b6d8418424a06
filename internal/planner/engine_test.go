package planner

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testFood(t *testing.T, weight, cost string) Food {
	t.Helper()
	return Food{
		ID:     uuid.New(),
		Weight: decimal.RequireFromString(weight),
		Cost:   decimal.RequireFromString(cost),
	}
}

func intPtr(v int) *int {
	return &v
}

// TestAddItemComputesTotals проверяет расчет итогов при добавлении корма.
func TestAddItemComputesTotals(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "2000", "20.00")

	item, err := plan.AddItem(food, decimal.NewFromInt(200), intPtr(14))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !item.TotalQuantity.Equal(decimal.NewFromInt(2800)) {
		t.Fatalf("expected total quantity 2800, got %s", item.TotalQuantity)
	}
	if !item.CostPerUnit.Equal(decimal.RequireFromString("0.01")) {
		t.Fatalf("expected cost per unit 0.01, got %s", item.CostPerUnit)
	}
	if !item.TotalCost.Equal(decimal.RequireFromString("28.00")) {
		t.Fatalf("expected total cost 28.00, got %s", item.TotalCost)
	}
	if !plan.TotalCost.Equal(decimal.RequireFromString("28.00")) {
		t.Fatalf("expected plan total 28.00, got %s", plan.TotalCost)
	}
}

// TestAddItemDefaultsAndClampsMeals проверяет умолчание и ограничение кормлений.
func TestAddItemDefaultsAndClampsMeals(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	defaulted, err := plan.AddItem(food, decimal.NewFromInt(100), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if defaulted.NumberOfMeals != 14 {
		t.Fatalf("expected default meals 14, got %d", defaulted.NumberOfMeals)
	}

	clamped, err := plan.AddItem(food, decimal.NewFromInt(100), intPtr(99))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if clamped.NumberOfMeals != 14 {
		t.Fatalf("expected clamped meals 14, got %d", clamped.NumberOfMeals)
	}
}

// TestAddItemRejectsBadInput проверяет ошибки при неположительных значениях.
func TestAddItemRejectsBadInput(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	if _, err := plan.AddItem(food, decimal.Zero, nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := plan.AddItem(food, decimal.NewFromInt(-5), nil); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := plan.AddItem(food, decimal.NewFromInt(100), intPtr(0)); !errors.Is(err, ErrInvalidMealCount) {
		t.Fatalf("expected ErrInvalidMealCount, got %v", err)
	}
	if len(plan.Items) != 0 {
		t.Fatalf("expected no items after failed adds, got %d", len(plan.Items))
	}
}

// TestUpdateItemQuantity проверяет пересчет итогов при смене количества.
func TestUpdateItemQuantity(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "2000", "20.00")

	item, err := plan.AddItem(food, decimal.NewFromInt(200), intPtr(10))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := plan.UpdateItemQuantity(item.ID, decimal.NewFromInt(150)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated := plan.Items[0]
	if !updated.TotalQuantity.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected total quantity 1500, got %s", updated.TotalQuantity)
	}
	if !plan.TotalCost.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected plan total 15, got %s", plan.TotalCost)
	}

	if err := plan.UpdateItemQuantity(item.ID, decimal.Zero); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := plan.UpdateItemQuantity(uuid.New(), decimal.NewFromInt(1)); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

// TestUpdateItemMealCount проверяет смену числа кормлений с ограничением.
func TestUpdateItemMealCount(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	item, err := plan.AddItem(food, decimal.NewFromInt(100), intPtr(5))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := plan.UpdateItemMealCount(item.ID, 50); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if plan.Items[0].NumberOfMeals != 14 {
		t.Fatalf("expected clamped meals 14, got %d", plan.Items[0].NumberOfMeals)
	}

	if err := plan.UpdateItemMealCount(item.ID, -1); !errors.Is(err, ErrInvalidMealCount) {
		t.Fatalf("expected ErrInvalidMealCount, got %v", err)
	}
	if err := plan.UpdateItemMealCount(uuid.New(), 3); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

// TestRemoveItem проверяет удаление и обнуление итоговой стоимости.
func TestRemoveItem(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "1000", "10")

	item, err := plan.AddItem(food, decimal.NewFromInt(100), nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := plan.RemoveItem(item.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(plan.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(plan.Items))
	}
	if !plan.TotalCost.Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", plan.TotalCost)
	}

	if err := plan.RemoveItem(item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

// TestUpdateScheduleClampsItems проверяет каскадное ограничение кормлений.
func TestUpdateScheduleClampsItems(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "2000", "20.00")

	if _, err := plan.AddItem(food, decimal.NewFromInt(200), intPtr(14)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := plan.UpdateSchedule(intPtr(5), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	item := plan.Items[0]
	if item.NumberOfMeals != 10 {
		t.Fatalf("expected meals clamped to 10, got %d", item.NumberOfMeals)
	}
	if !item.TotalQuantity.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected total quantity 2000, got %s", item.TotalQuantity)
	}
	if !plan.TotalCost.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected plan total 20, got %s", plan.TotalCost)
	}

	if err := plan.UpdateSchedule(intPtr(0), nil); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if err := plan.UpdateSchedule(nil, intPtr(0)); !errors.Is(err, ErrInvalidMealCount) {
		t.Fatalf("expected ErrInvalidMealCount, got %v", err)
	}
}

// TestClampInvariantAfterEdits проверяет инвариант ограничения после серии правок.
func TestClampInvariantAfterEdits(t *testing.T) {
	plan := NewPlan("weekly", 10, 3)
	food := testFood(t, "500", "7.35")

	for i := 0; i < 5; i++ {
		if _, err := plan.AddItem(food, decimal.NewFromInt(int64(50+i)), intPtr(30)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if err := plan.UpdateSchedule(intPtr(2), intPtr(2)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	for _, item := range plan.Items {
		if item.NumberOfMeals > plan.SlotCount() {
			t.Fatalf("meal count %d exceeds slot count %d", item.NumberOfMeals, plan.SlotCount())
		}
	}
}

// TestRecalculateTotalCostIdempotent проверяет идемпотентность пересчета.
func TestRecalculateTotalCostIdempotent(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	foodA := testFood(t, "2000", "19.99")
	foodB := testFood(t, "750", "12.49")

	if _, err := plan.AddItem(foodA, decimal.RequireFromString("137.5"), intPtr(11)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := plan.AddItem(foodB, decimal.NewFromInt(60), nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	first := plan.TotalCost
	plan.RecalculateTotalCost()
	second := plan.TotalCost
	plan.RecalculateTotalCost()

	if !first.Equal(second) || !second.Equal(plan.TotalCost) {
		t.Fatalf("recalculation is not idempotent: %s, %s, %s", first, second, plan.TotalCost)
	}
}

// TestSumInvariant проверяет, что итог плана равен сумме итогов элементов.
func TestSumInvariant(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	foods := []Food{
		testFood(t, "2000", "20.00"),
		testFood(t, "1500", "33.33"),
		testFood(t, "3000", "41.70"),
	}

	for _, food := range foods {
		if _, err := plan.AddItem(food, decimal.RequireFromString("123.45"), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if err := plan.UpdateItemQuantity(plan.Items[1].ID, decimal.NewFromInt(99)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := plan.RemoveItem(plan.Items[0].ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := plan.UpdateSchedule(nil, intPtr(1)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	sum := decimal.Zero
	for _, item := range plan.Items {
		sum = sum.Add(item.TotalCost)
	}
	if !plan.TotalCost.Equal(sum) {
		t.Fatalf("plan total %s does not match item sum %s", plan.TotalCost, sum)
	}
}

// TestRepriceItems проверяет пересчет стоимостей по актуальным ценам.
func TestRepriceItems(t *testing.T) {
	plan := NewPlan("weekly", 7, 2)
	food := testFood(t, "2000", "20.00")

	if _, err := plan.AddItem(food, decimal.NewFromInt(200), intPtr(14)); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	repriced := food
	repriced.Cost = decimal.RequireFromString("40.00")
	if err := plan.RepriceItems(map[uuid.UUID]Food{food.ID: repriced}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !plan.Items[0].TotalCost.Equal(decimal.RequireFromString("56.00")) {
		t.Fatalf("expected repriced total 56.00, got %s", plan.Items[0].TotalCost)
	}

	if err := plan.RepriceItems(map[uuid.UUID]Food{}); !errors.Is(err, ErrFoodNotFound) {
		t.Fatalf("expected ErrFoodNotFound, got %v", err)
	}
}
