package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/repository"
)

type StatsHandler struct {
	Stats *repository.StatsRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(stats *repository.StatsRepository) *StatsHandler {
	return &StatsHandler{Stats: stats}
}

type OverviewResponse struct {
	TotalPlans       int             `json:"total_plans"`
	TotalDogs        int             `json:"total_dogs"`
	TotalFoods       int             `json:"total_foods"`
	TotalPlannedCost decimal.Decimal `json:"total_planned_cost"`
}

type FoodTypeCostResponse struct {
	PlanID uuid.UUID          `json:"plan_id"`
	Rows   []FoodTypeCostItem `json:"rows"`
}

type FoodTypeCostItem struct {
	FoodType      string          `json:"food_type"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// Overview возвращает сводную статистику пользователя.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	stats, err := h.Stats.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalPlans:       stats.TotalPlans,
		TotalDogs:        stats.TotalDogs,
		TotalFoods:       stats.TotalFoods,
		TotalPlannedCost: stats.TotalPlannedCost,
	})
}

// CostByFoodType возвращает количество и стоимость по типам корма в плане.
func (h *StatsHandler) CostByFoodType(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	planIDParam := c.QueryParam("plan_id")
	if planIDParam == "" {
		return badRequest(c, "plan_id is required")
	}

	planID, err := uuid.Parse(planIDParam)
	if err != nil {
		return badRequest(c, "invalid plan_id")
	}

	rows, err := h.Stats.CostByFoodType(c.Request().Context(), userID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "plan not found")
		}
		return serverError(c)
	}

	response := make([]FoodTypeCostItem, 0, len(rows))
	for _, row := range rows {
		response = append(response, FoodTypeCostItem{
			FoodType:      string(row.FoodType),
			TotalQuantity: row.TotalQuantity,
			TotalCost:     row.TotalCost,
		})
	}

	return c.JSON(http.StatusOK, FoodTypeCostResponse{
		PlanID: planID,
		Rows:   response,
	})
}
