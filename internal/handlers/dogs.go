package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/models"
	"example.com/raw-feed-planner/internal/planner"
	"example.com/raw-feed-planner/internal/repository"
)

type DogHandler struct {
	Dogs *repository.DogRepository
}

// NewDogHandler создает обработчик профилей собак.
func NewDogHandler(dogs *repository.DogRepository) *DogHandler {
	return &DogHandler{Dogs: dogs}
}

type DogRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Weight        string `json:"weight" validate:"required"`
	WeightUnit    string `json:"weight_unit" validate:"required"`
	AgeYears      string `json:"age_years" validate:"required"`
	ActivityLevel string `json:"activity_level" validate:"required"`
	MeasureUnit   string `json:"measure_unit" validate:"required"`
}

// List возвращает собак пользователя.
func (h *DogHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dogs, err := h.Dogs.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, map[string][]models.Dog{"dogs": dogs})
}

// Create добавляет профиль собаки с рассчитанной дневной порцией.
func (h *DogHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dog, err := parseDogRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	dog.UserID = userID

	created, err := h.Dogs.Create(c.Request().Context(), dog)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Get возвращает профиль собаки.
func (h *DogHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid dog id")
	}

	dog, err := h.Dogs.GetByID(c.Request().Context(), userID, dogID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "dog not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, dog)
}

// Update обновляет профиль собаки и пересчитывает дневную порцию.
func (h *DogHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid dog id")
	}

	dog, err := parseDogRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	dog.ID = dogID
	dog.UserID = userID

	updated, err := h.Dogs.Update(c.Request().Context(), dog)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "dog not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет профиль собаки.
func (h *DogHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	dogID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid dog id")
	}

	if err := h.Dogs.Delete(c.Request().Context(), userID, dogID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "dog not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// parseDogRequest разбирает профиль собаки; уровень активности корректируется
// по возрасту, дневная порция выводится оценщиком и сохраняется с профилем.
func parseDogRequest(c echo.Context) (models.Dog, error) {
	var req DogRequest
	if err := c.Bind(&req); err != nil {
		return models.Dog{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Dog{}, errors.New("validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Dog{}, errors.New("name is required")
	}

	weightUnit := models.WeightUnit(strings.ToLower(strings.TrimSpace(req.WeightUnit)))
	if !models.ValidWeightUnit(weightUnit) {
		return models.Dog{}, errors.New("invalid weight_unit")
	}

	measureUnit := models.MeasureUnit(strings.ToLower(strings.TrimSpace(req.MeasureUnit)))
	if !models.ValidMeasureUnit(measureUnit) {
		return models.Dog{}, errors.New("invalid measure_unit")
	}

	activityLevel := models.ActivityLevel(strings.ToLower(strings.TrimSpace(req.ActivityLevel)))
	if !models.ValidActivityLevel(activityLevel) {
		return models.Dog{}, errors.New("invalid activity_level")
	}

	weight, err := parsePositiveDecimal(req.Weight, "weight")
	if err != nil {
		return models.Dog{}, err
	}

	ageYears, err := parsePositiveDecimal(req.AgeYears, "age_years")
	if err != nil {
		return models.Dog{}, err
	}

	activityLevel = planner.GateActivityLevel(ageYears, activityLevel)
	portion := planner.Estimate(weight, weightUnit, activityLevel, 1, measureUnit)

	return models.Dog{
		Name:          name,
		Weight:        weight,
		WeightUnit:    weightUnit,
		AgeYears:      ageYears,
		ActivityLevel: activityLevel,
		MeasureUnit:   measureUnit,
		PortionSize:   portion.Daily,
	}, nil
}
