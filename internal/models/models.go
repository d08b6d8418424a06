package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActivityLevel string

type WeightUnit string

type MeasureUnit string

type FoodType string

const (
	ActivityLevelPuppy    ActivityLevel = "puppy"
	ActivityLevelLow      ActivityLevel = "low"
	ActivityLevelModerate ActivityLevel = "moderate"
	ActivityLevelHigh     ActivityLevel = "high"
	ActivityLevelSenior   ActivityLevel = "senior"

	WeightUnitKilograms WeightUnit = "kg"
	WeightUnitPounds    WeightUnit = "lbs"

	MeasureUnitGrams  MeasureUnit = "g"
	MeasureUnitOunces MeasureUnit = "oz"

	FoodTypeMuscle     FoodType = "muscle"
	FoodTypeBone       FoodType = "bone"
	FoodTypeOrgan      FoodType = "organ"
	FoodTypeWholePrey  FoodType = "whole_prey"
	FoodTypeSupplement FoodType = "supplement"
	FoodTypeMixed      FoodType = "mixed"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Food struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	Brand       string           `json:"brand"`
	FoodType    FoodType         `json:"food_type"`
	Weight      decimal.Decimal  `json:"weight"`
	MeasureUnit MeasureUnit      `json:"measure_unit"`
	Cost        decimal.Decimal  `json:"cost"`
	Currency    string           `json:"currency"`
	Protein     *decimal.Decimal `json:"protein,omitempty"`
	Fat         *decimal.Decimal `json:"fat,omitempty"`
	Fiber       *decimal.Decimal `json:"fiber,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type Dog struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Name          string          `json:"name"`
	Weight        decimal.Decimal `json:"weight"`
	WeightUnit    WeightUnit      `json:"weight_unit"`
	AgeYears      decimal.Decimal `json:"age_years"`
	ActivityLevel ActivityLevel   `json:"activity_level"`
	MeasureUnit   MeasureUnit     `json:"measure_unit"`
	PortionSize   decimal.Decimal `json:"portion_size"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type MealPlan struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Name         string          `json:"name"`
	StartDate    *time.Time      `json:"start_date,omitempty"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
	DurationDays int             `json:"duration_days"`
	MealsPerDay  int             `json:"meals_per_day"`
	DogID        *uuid.UUID      `json:"dog_id,omitempty"`
	Notes        string          `json:"notes"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type MealPlanItem struct {
	ID              uuid.UUID       `json:"id"`
	PlanID          uuid.UUID       `json:"plan_id"`
	FoodID          uuid.UUID       `json:"food_id"`
	QuantityPerMeal decimal.Decimal `json:"quantity_per_meal"`
	NumberOfMeals   int             `json:"number_of_meals"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	SortOrder       int             `json:"sort_order"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

// ValidActivityLevel проверяет, что уровень активности известен.
func ValidActivityLevel(level ActivityLevel) bool {
	switch level {
	case ActivityLevelPuppy, ActivityLevelLow, ActivityLevelModerate, ActivityLevelHigh, ActivityLevelSenior:
		return true
	}
	return false
}

// ValidWeightUnit проверяет единицу веса собаки.
func ValidWeightUnit(unit WeightUnit) bool {
	return unit == WeightUnitKilograms || unit == WeightUnitPounds
}

// ValidMeasureUnit проверяет единицу измерения порций.
func ValidMeasureUnit(unit MeasureUnit) bool {
	return unit == MeasureUnitGrams || unit == MeasureUnitOunces
}

// ValidFoodType проверяет тип корма.
func ValidFoodType(foodType FoodType) bool {
	switch foodType {
	case FoodTypeMuscle, FoodTypeBone, FoodTypeOrgan, FoodTypeWholePrey, FoodTypeSupplement, FoodTypeMixed:
		return true
	}
	return false
}
