package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/models"
	"example.com/raw-feed-planner/internal/repository"
)

const defaultCurrency = "USD"

type FoodHandler struct {
	Foods *repository.FoodRepository
}

// NewFoodHandler создает обработчик инвентаря кормов.
func NewFoodHandler(foods *repository.FoodRepository) *FoodHandler {
	return &FoodHandler{Foods: foods}
}

type FoodRequest struct {
	Brand       string  `json:"brand" validate:"required,max=200"`
	FoodType    string  `json:"food_type" validate:"required"`
	Weight      string  `json:"weight" validate:"required"`
	MeasureUnit string  `json:"measure_unit" validate:"required"`
	Cost        string  `json:"cost" validate:"required"`
	Currency    *string `json:"currency" validate:"omitempty,max=8"`
	Protein     *string `json:"protein"`
	Fat         *string `json:"fat"`
	Fiber       *string `json:"fiber"`
}

// List возвращает инвентарь кормов пользователя.
func (h *FoodHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	foods, err := h.Foods.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Food{"foods": foods})
}

// Create добавляет корм в инвентарь.
func (h *FoodHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	food, err := parseFoodRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	food.UserID = userID

	created, err := h.Foods.Create(c.Request().Context(), food)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Get возвращает корм по идентификатору.
func (h *FoodHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid food id")
	}

	food, err := h.Foods.GetByID(c.Request().Context(), userID, foodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "food not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, food)
}

// Update обновляет корм.
func (h *FoodHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid food id")
	}

	food, err := parseFoodRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	food.ID = foodID
	food.UserID = userID

	updated, err := h.Foods.Update(c.Request().Context(), food)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "food not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет корм, если он не занят в планах.
func (h *FoodHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	foodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid food id")
	}

	if err := h.Foods.Delete(c.Request().Context(), userID, foodID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "food not found")
		}
		if errors.Is(err, repository.ErrFoodUsed) {
			return conflict(c, "food is used by meal plans")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseFoodRequest(c echo.Context) (models.Food, error) {
	var req FoodRequest
	if err := c.Bind(&req); err != nil {
		return models.Food{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Food{}, errors.New("validation failed")
	}

	brand := strings.TrimSpace(req.Brand)
	if brand == "" {
		return models.Food{}, errors.New("brand is required")
	}

	foodType := models.FoodType(strings.ToLower(strings.TrimSpace(req.FoodType)))
	if !models.ValidFoodType(foodType) {
		return models.Food{}, errors.New("invalid food_type")
	}

	measureUnit := models.MeasureUnit(strings.ToLower(strings.TrimSpace(req.MeasureUnit)))
	if !models.ValidMeasureUnit(measureUnit) {
		return models.Food{}, errors.New("invalid measure_unit")
	}

	weight, err := parsePositiveDecimal(req.Weight, "weight")
	if err != nil {
		return models.Food{}, err
	}

	cost, err := parsePositiveDecimal(req.Cost, "cost")
	if err != nil {
		return models.Food{}, err
	}

	currency := defaultCurrency
	if req.Currency != nil && strings.TrimSpace(*req.Currency) != "" {
		currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}

	protein, err := parseOptionalPositiveDecimal(req.Protein, "protein")
	if err != nil {
		return models.Food{}, err
	}

	fat, err := parseOptionalPositiveDecimal(req.Fat, "fat")
	if err != nil {
		return models.Food{}, err
	}

	fiber, err := parseOptionalPositiveDecimal(req.Fiber, "fiber")
	if err != nil {
		return models.Food{}, err
	}

	return models.Food{
		Brand:       brand,
		FoodType:    foodType,
		Weight:      weight,
		MeasureUnit: measureUnit,
		Cost:        cost,
		Currency:    currency,
		Protein:     protein,
		Fat:         fat,
		Fiber:       fiber,
	}, nil
}

func parsePositiveDecimal(value, field string) (decimal.Decimal, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, errors.New("invalid " + field)
	}

	if !parsed.IsPositive() {
		return decimal.Decimal{}, errors.New(field + " must be greater than 0")
	}

	return parsed, nil
}

func parseOptionalPositiveDecimal(value *string, field string) (*decimal.Decimal, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}

	parsed, err := parsePositiveDecimal(*value, field)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
