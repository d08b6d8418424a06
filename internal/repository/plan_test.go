package repository

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/models"
)

// TestBuildCopyName проверяет ограничение длины имени копии.
func TestBuildCopyName(t *testing.T) {
	original := strings.Repeat("a", 210)
	result := buildCopyName(original, 200)

	if !strings.HasPrefix(result, "Copy of ") {
		t.Fatalf("expected prefix, got %s", result)
	}

	if utf8.RuneCountInString(result) > 200 {
		t.Fatalf("expected result length <= 200, got %d", utf8.RuneCountInString(result))
	}
}

// TestValidatePlanInput проверяет отбраковку некорректных планов и элементов.
func TestValidatePlanInput(t *testing.T) {
	plan := models.MealPlan{DurationDays: 7, MealsPerDay: 2}

	valid := models.MealPlanItem{
		QuantityPerMeal: decimal.NewFromInt(100),
		NumberOfMeals:   14,
	}
	if err := validatePlanInput(plan, []models.MealPlanItem{valid}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	zeroQuantity := valid
	zeroQuantity.QuantityPerMeal = decimal.Zero
	if err := validatePlanInput(plan, []models.MealPlanItem{zeroQuantity}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for zero quantity, got %v", err)
	}

	tooManyMeals := valid
	tooManyMeals.NumberOfMeals = 15
	if err := validatePlanInput(plan, []models.MealPlanItem{tooManyMeals}); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for meals above slot count, got %v", err)
	}

	badPlan := plan
	badPlan.MealsPerDay = 0
	if err := validatePlanInput(badPlan, nil); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for bad schedule, got %v", err)
	}
}
