package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/config"
	"example.com/raw-feed-planner/internal/models"
	"example.com/raw-feed-planner/internal/notifications"
	"example.com/raw-feed-planner/internal/planner"
	"example.com/raw-feed-planner/internal/repository"
)

const dateLayout = "2006-01-02"

type PlanHandler struct {
	Plans    *repository.PlanRepository
	Foods    *repository.FoodRepository
	Notifier *notifications.Hub
	Defaults config.PlannerConfig
}

// NewPlanHandler создает обработчик планов кормления.
func NewPlanHandler(plans *repository.PlanRepository, foods *repository.FoodRepository, notifier *notifications.Hub, defaults config.PlannerConfig) *PlanHandler {
	return &PlanHandler{Plans: plans, Foods: foods, Notifier: notifier, Defaults: defaults}
}

type PlanItemRequest struct {
	FoodID          string `json:"food_id" validate:"required"`
	QuantityPerMeal string `json:"quantity_per_meal" validate:"required"`
	NumberOfMeals   *int   `json:"number_of_meals"`
}

type PlanRequest struct {
	Name         string            `json:"name" validate:"required,max=200"`
	StartDate    *string           `json:"start_date"`
	EndDate      *string           `json:"end_date"`
	DurationDays *int              `json:"duration_days"`
	MealsPerDay  *int              `json:"meals_per_day"`
	DogID        *string           `json:"dog_id"`
	Notes        string            `json:"notes" validate:"max=2000"`
	Items        []PlanItemRequest `json:"items" validate:"dive"`
}

type PlanResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	StartDate    *string         `json:"start_date,omitempty"`
	EndDate      *string         `json:"end_date,omitempty"`
	DurationDays int             `json:"duration_days"`
	MealsPerDay  int             `json:"meals_per_day"`
	DogID        *uuid.UUID      `json:"dog_id,omitempty"`
	Notes        string          `json:"notes"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type PlanItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	FoodID          uuid.UUID       `json:"food_id"`
	Brand           string          `json:"brand"`
	FoodType        models.FoodType `json:"food_type"`
	QuantityPerMeal decimal.Decimal `json:"quantity_per_meal"`
	NumberOfMeals   int             `json:"number_of_meals"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	SortOrder       int             `json:"sort_order"`
}

type PlanDetailResponse struct {
	Plan  PlanResponse       `json:"plan"`
	Items []PlanItemResponse `json:"items"`
}

// List возвращает планы пользователя.
func (h *PlanHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	plans, err := h.Plans.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		response = append(response, toPlanResponse(plan))
	}

	return c.JSON(http.StatusOK, map[string][]PlanResponse{"plans": response})
}

// Create создает план кормления; итоги элементов пересчитываются на сервере.
func (h *PlanHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	draft, err := h.buildPlanFromRequest(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	plan, items := planModels(userID, draft)
	created, err := h.Plans.Create(c.Request().Context(), plan, items)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid plan")
		}
		return serverError(c)
	}

	response, err := buildPlanDetailResponse(c.Request().Context(), h.Plans, h.Foods, created)
	if err != nil {
		return serverError(c)
	}

	publishPlanUpdate(h.Notifier, userID, created.ID, response.Plan.TotalCost)
	return c.JSON(http.StatusCreated, response)
}

// Get возвращает план; стоимости элементов выводятся из текущих цен кормов.
func (h *PlanHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	plan, err := h.Plans.GetByID(c.Request().Context(), userID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "plan not found")
		}
		return serverError(c)
	}

	response, err := buildPlanDetailResponse(c.Request().Context(), h.Plans, h.Foods, plan)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, response)
}

// Update перезаписывает план целиком.
func (h *PlanHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	draft, err := h.buildPlanFromRequest(c, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	plan, items := planModels(userID, draft)
	plan.ID = planID

	updated, err := h.Plans.Update(c.Request().Context(), plan, items)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "plan not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid plan")
		}
		return serverError(c)
	}

	response, err := buildPlanDetailResponse(c.Request().Context(), h.Plans, h.Foods, updated)
	if err != nil {
		return serverError(c)
	}

	publishPlanUpdate(h.Notifier, userID, updated.ID, response.Plan.TotalCost)
	return c.JSON(http.StatusOK, response)
}

// Delete удаляет план кормления.
func (h *PlanHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	if err := h.Plans.Delete(c.Request().Context(), userID, planID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "plan not found")
		}
		return serverError(c)
	}

	publishPlanDelete(h.Notifier, userID, planID)
	return c.NoContent(http.StatusNoContent)
}

// Duplicate создает копию плана со всеми элементами.
func (h *PlanHandler) Duplicate(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid plan id")
	}

	copied, err := h.Plans.Duplicate(c.Request().Context(), userID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "plan not found")
		}
		return serverError(c)
	}

	response, err := buildPlanDetailResponse(c.Request().Context(), h.Plans, h.Foods, copied)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, response)
}

// buildPlanFromRequest разбирает запрос и прогоняет элементы через движок
// плана, чтобы итоги всегда были серверным пересчетом, а не данными клиента.
func (h *PlanHandler) buildPlanFromRequest(c echo.Context, userID uuid.UUID) (*planner.Plan, error) {
	var req PlanRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, errors.New("validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	durationDays := h.Defaults.DefaultPlanDays
	if req.DurationDays != nil {
		if *req.DurationDays <= 0 {
			return nil, errors.New("duration_days must be greater than 0")
		}
		durationDays = *req.DurationDays
	}

	mealsPerDay := h.Defaults.DefaultMealsPerDay
	if req.MealsPerDay != nil {
		if *req.MealsPerDay <= 0 {
			return nil, errors.New("meals_per_day must be greater than 0")
		}
		mealsPerDay = *req.MealsPerDay
	}

	plan := planner.NewPlan(name, durationDays, mealsPerDay)
	plan.Notes = strings.TrimSpace(req.Notes)

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	plan.StartDate = startDate
	plan.EndDate = endDate

	if req.DogID != nil && strings.TrimSpace(*req.DogID) != "" {
		dogID, err := uuid.Parse(strings.TrimSpace(*req.DogID))
		if err != nil {
			return nil, errors.New("invalid dog_id")
		}
		plan.DogID = &dogID
	}

	foodIDs := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		foodID, err := uuid.Parse(strings.TrimSpace(item.FoodID))
		if err != nil {
			return nil, errors.New("invalid food_id")
		}
		foodIDs = append(foodIDs, foodID)
	}

	foods, err := h.Foods.ListByIDs(c.Request().Context(), userID, foodIDs)
	if err != nil {
		return nil, errors.New("failed to load foods")
	}

	for i, item := range req.Items {
		food, ok := foods[foodIDs[i]]
		if !ok {
			return nil, errors.New("unknown food: " + item.FoodID)
		}

		quantity, err := parsePositiveDecimal(item.QuantityPerMeal, "quantity_per_meal")
		if err != nil {
			return nil, err
		}

		if _, err := plan.AddItem(plannerFood(food), quantity, item.NumberOfMeals); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func parseDateRange(start, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != nil && strings.TrimSpace(*start) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(*start))
		if err != nil {
			return nil, nil, errors.New("invalid start_date format")
		}
		startDate = &parsed
	}

	if end != nil && strings.TrimSpace(*end) != "" {
		parsed, err := time.Parse(dateLayout, strings.TrimSpace(*end))
		if err != nil {
			return nil, nil, errors.New("invalid end_date format")
		}
		endDate = &parsed
	}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, errors.New("end_date must be after start_date")
	}

	return startDate, endDate, nil
}

func toPlanResponse(plan models.MealPlan) PlanResponse {
	response := PlanResponse{
		ID:           plan.ID,
		Name:         plan.Name,
		DurationDays: plan.DurationDays,
		MealsPerDay:  plan.MealsPerDay,
		DogID:        plan.DogID,
		Notes:        plan.Notes,
		TotalCost:    plan.TotalCost,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}

	if plan.StartDate != nil {
		formatted := plan.StartDate.Format(dateLayout)
		response.StartDate = &formatted
	}
	if plan.EndDate != nil {
		formatted := plan.EndDate.Format(dateLayout)
		response.EndDate = &formatted
	}

	return response
}
