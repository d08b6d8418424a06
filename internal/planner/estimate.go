package planner

import (
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/models"
)

// activityMultipliers задает долю массы тела, которую собака съедает в день.
var activityMultipliers = map[models.ActivityLevel]decimal.Decimal{
	models.ActivityLevelPuppy:    decimal.RequireFromString("0.04"),
	models.ActivityLevelLow:      decimal.RequireFromString("0.02"),
	models.ActivityLevelModerate: decimal.RequireFromString("0.025"),
	models.ActivityLevelHigh:     decimal.RequireFromString("0.03"),
	models.ActivityLevelSenior:   decimal.RequireFromString("0.0175"),
}

var (
	poundsToKilograms = decimal.RequireFromString("0.45359237")
	gramsToOunces     = decimal.RequireFromString("0.03527396195")
	kilogramsToGrams  = decimal.NewFromInt(1000)

	ageAdult  = decimal.NewFromInt(1)
	ageSenior = decimal.NewFromInt(7)
)

type Portion struct {
	Daily   decimal.Decimal
	PerMeal decimal.Decimal
}

// Estimate считает дневную и разовую порцию в выбранной единице измерения.
// Входные значения предполагаются положительными: валидация лежит на вызывающем.
func Estimate(weight decimal.Decimal, weightUnit models.WeightUnit, activity models.ActivityLevel, mealsPerDay int, measure models.MeasureUnit) Portion {
	weightKg := weight
	if weightUnit == models.WeightUnitPounds {
		weightKg = weight.Mul(poundsToKilograms)
	}

	daily := weightKg.Mul(kilogramsToGrams).Mul(activityMultipliers[activity])
	if measure == models.MeasureUnitOunces {
		daily = daily.Mul(gramsToOunces)
	}

	// Порции округляются независимо: расхождение от округления допускается.
	daily = daily.Round(0)
	perMeal := daily.Div(decimal.NewFromInt(int64(mealsPerDay))).Round(0)

	return Portion{Daily: daily, PerMeal: perMeal}
}

// DefaultQuantityPerMeal делит дневную порцию собаки на приемы пищи плана.
// Округление совпадает с расчетом разовой порции в Estimate.
func DefaultQuantityPerMeal(portionSize decimal.Decimal, mealsPerDay int) decimal.Decimal {
	if mealsPerDay < 1 {
		mealsPerDay = 1
	}
	return portionSize.Div(decimal.NewFromInt(int64(mealsPerDay))).Round(0)
}

// GateActivityLevel корректирует уровень активности по возрасту собаки.
// Это авто-подсказка, а не ошибка: щенки младше года всегда puppy, с семи
// лет принудительно senior (кроме выбранных low/moderate), взрослым собакам
// puppy/senior заменяются на moderate.
func GateActivityLevel(ageYears decimal.Decimal, level models.ActivityLevel) models.ActivityLevel {
	switch {
	case ageYears.LessThan(ageAdult):
		return models.ActivityLevelPuppy
	case ageYears.GreaterThanOrEqual(ageSenior):
		if level == models.ActivityLevelLow || level == models.ActivityLevelModerate {
			return level
		}
		return models.ActivityLevelSenior
	default:
		if level == models.ActivityLevelPuppy || level == models.ActivityLevelSenior {
			return models.ActivityLevelModerate
		}
		return level
	}
}
