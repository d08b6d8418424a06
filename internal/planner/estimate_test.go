package planner

import (
	"testing"

	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/models"
)

// TestEstimateModerateGrams проверяет расчет порции для собаки 10 кг.
func TestEstimateModerateGrams(t *testing.T) {
	portion := Estimate(decimal.NewFromInt(10), models.WeightUnitKilograms, models.ActivityLevelModerate, 2, models.MeasureUnitGrams)

	if !portion.Daily.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected daily portion 250, got %s", portion.Daily)
	}
	if !portion.PerMeal.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("expected meal portion 125, got %s", portion.PerMeal)
	}
}

// TestEstimatePoundsToKilograms проверяет пересчет веса из фунтов.
func TestEstimatePoundsToKilograms(t *testing.T) {
	// 22 lbs = 9.97903214 kg; 9.97903214 * 1000 * 0.025 = 249.475... -> 249
	portion := Estimate(decimal.NewFromInt(22), models.WeightUnitPounds, models.ActivityLevelModerate, 2, models.MeasureUnitGrams)

	if !portion.Daily.Equal(decimal.NewFromInt(249)) {
		t.Fatalf("expected daily portion 249, got %s", portion.Daily)
	}
}

// TestEstimateOunces проверяет конвертацию порции в унции.
func TestEstimateOunces(t *testing.T) {
	// 250 g * 0.03527396195 = 8.8184... -> 9
	portion := Estimate(decimal.NewFromInt(10), models.WeightUnitKilograms, models.ActivityLevelModerate, 3, models.MeasureUnitOunces)

	if !portion.Daily.Equal(decimal.NewFromInt(9)) {
		t.Fatalf("expected daily portion 9 oz, got %s", portion.Daily)
	}
	if !portion.PerMeal.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected meal portion 3 oz, got %s", portion.PerMeal)
	}
}

// TestEstimateMonotonicByWeight проверяет, что порция не убывает с ростом веса.
func TestEstimateMonotonicByWeight(t *testing.T) {
	previous := decimal.Zero
	for weight := 1; weight <= 60; weight++ {
		portion := Estimate(decimal.NewFromInt(int64(weight)), models.WeightUnitKilograms, models.ActivityLevelHigh, 2, models.MeasureUnitGrams)
		if portion.Daily.LessThan(previous) {
			t.Fatalf("daily portion decreased at weight %d: %s < %s", weight, portion.Daily, previous)
		}
		previous = portion.Daily
	}
}

// TestDefaultQuantityPerMeal проверяет деление дневной порции на приемы пищи.
func TestDefaultQuantityPerMeal(t *testing.T) {
	if got := DefaultQuantityPerMeal(decimal.NewFromInt(250), 2); !got.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("expected 125, got %s", got)
	}
	// 250 / 3 = 83.33... -> 83
	if got := DefaultQuantityPerMeal(decimal.NewFromInt(250), 3); !got.Equal(decimal.NewFromInt(83)) {
		t.Fatalf("expected 83, got %s", got)
	}
	if got := DefaultQuantityPerMeal(decimal.NewFromInt(250), 0); !got.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("expected 250, got %s", got)
	}
}

// TestGateActivityLevelPuppy проверяет принудительный уровень puppy до года.
func TestGateActivityLevelPuppy(t *testing.T) {
	age := decimal.RequireFromString("0.5")
	if got := GateActivityLevel(age, models.ActivityLevelHigh); got != models.ActivityLevelPuppy {
		t.Fatalf("expected puppy, got %s", got)
	}
}

// TestGateActivityLevelSenior проверяет поведение с семи лет.
func TestGateActivityLevelSenior(t *testing.T) {
	age := decimal.NewFromInt(9)

	if got := GateActivityLevel(age, models.ActivityLevelHigh); got != models.ActivityLevelSenior {
		t.Fatalf("expected senior for high, got %s", got)
	}
	if got := GateActivityLevel(age, models.ActivityLevelLow); got != models.ActivityLevelLow {
		t.Fatalf("expected low to be preserved, got %s", got)
	}
	if got := GateActivityLevel(age, models.ActivityLevelModerate); got != models.ActivityLevelModerate {
		t.Fatalf("expected moderate to be preserved, got %s", got)
	}
}

// TestGateActivityLevelAdult проверяет замену puppy/senior у взрослой собаки.
func TestGateActivityLevelAdult(t *testing.T) {
	age := decimal.NewFromInt(3)

	if got := GateActivityLevel(age, models.ActivityLevelPuppy); got != models.ActivityLevelModerate {
		t.Fatalf("expected moderate for puppy, got %s", got)
	}
	if got := GateActivityLevel(age, models.ActivityLevelSenior); got != models.ActivityLevelModerate {
		t.Fatalf("expected moderate for senior, got %s", got)
	}
	if got := GateActivityLevel(age, models.ActivityLevelHigh); got != models.ActivityLevelHigh {
		t.Fatalf("expected high to be preserved, got %s", got)
	}
}
