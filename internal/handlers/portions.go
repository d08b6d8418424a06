package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/config"
	"example.com/raw-feed-planner/internal/models"
	"example.com/raw-feed-planner/internal/planner"
)

type PortionHandler struct {
	Defaults config.PlannerConfig
}

// NewPortionHandler создает обработчик оценки порций.
func NewPortionHandler(defaults config.PlannerConfig) *PortionHandler {
	return &PortionHandler{Defaults: defaults}
}

type EstimateRequest struct {
	Weight        string `json:"weight" validate:"required"`
	WeightUnit    string `json:"weight_unit" validate:"required"`
	AgeYears      string `json:"age_years" validate:"required"`
	ActivityLevel string `json:"activity_level" validate:"required"`
	MeasureUnit   string `json:"measure_unit" validate:"required"`
	MealsPerDay   *int   `json:"meals_per_day"`
}

type EstimateResponse struct {
	DailyPortion   decimal.Decimal      `json:"daily_portion"`
	PerMealPortion decimal.Decimal      `json:"per_meal_portion"`
	MeasureUnit    models.MeasureUnit   `json:"measure_unit"`
	ActivityLevel  models.ActivityLevel `json:"activity_level"`
	MealsPerDay    int                  `json:"meals_per_day"`
}

// Estimate считает дневную и разовую порцию без сохранения чего-либо.
func (h *PortionHandler) Estimate(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	var req EstimateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	weightUnit := models.WeightUnit(strings.ToLower(strings.TrimSpace(req.WeightUnit)))
	if !models.ValidWeightUnit(weightUnit) {
		return badRequest(c, "invalid weight_unit")
	}

	measureUnit := models.MeasureUnit(strings.ToLower(strings.TrimSpace(req.MeasureUnit)))
	if !models.ValidMeasureUnit(measureUnit) {
		return badRequest(c, "invalid measure_unit")
	}

	activityLevel := models.ActivityLevel(strings.ToLower(strings.TrimSpace(req.ActivityLevel)))
	if !models.ValidActivityLevel(activityLevel) {
		return badRequest(c, "invalid activity_level")
	}

	weight, err := parsePositiveDecimal(req.Weight, "weight")
	if err != nil {
		return badRequest(c, err.Error())
	}

	ageYears, err := parsePositiveDecimal(req.AgeYears, "age_years")
	if err != nil {
		return badRequest(c, err.Error())
	}

	mealsPerDay, err := resolveMealsPerDay(req.MealsPerDay, h.Defaults.DefaultMealsPerDay)
	if err != nil {
		return badRequest(c, err.Error())
	}

	activityLevel = planner.GateActivityLevel(ageYears, activityLevel)
	portion := planner.Estimate(weight, weightUnit, activityLevel, mealsPerDay, measureUnit)

	return c.JSON(http.StatusOK, EstimateResponse{
		DailyPortion:   portion.Daily,
		PerMealPortion: portion.PerMeal,
		MeasureUnit:    measureUnit,
		ActivityLevel:  activityLevel,
		MealsPerDay:    mealsPerDay,
	})
}

func resolveMealsPerDay(requested *int, fallback int) (int, error) {
	if requested == nil {
		return fallback, nil
	}
	if *requested <= 0 {
		return 0, errors.New("meals_per_day must be greater than 0")
	}
	return *requested, nil
}
