package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/raw-feed-planner/internal/auth"
	"example.com/raw-feed-planner/internal/repository"
)

const timeLayout = time.RFC3339

// ExportJSON выгружает план в JSON-файл.
func (h *PlanHandler) ExportJSON(c echo.Context) error {
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

	filename := "plan-" + plan.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, response)
}

// ExportCSV выгружает элементы плана в CSV-файл.
func (h *PlanHandler) ExportCSV(c echo.Context) error {
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

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeItemsCSV(writer, response); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "plan-" + plan.ID.String() + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeItemsCSV(writer *csv.Writer, response PlanDetailResponse) error {
	header := []string{
		"plan_id",
		"plan_name",
		"duration_days",
		"meals_per_day",
		"food_id",
		"brand",
		"food_type",
		"quantity_per_meal",
		"number_of_meals",
		"total_quantity",
		"total_cost",
		"sort_order",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, item := range response.Items {
		record := []string{
			response.Plan.ID.String(),
			response.Plan.Name,
			formatInt(response.Plan.DurationDays),
			formatInt(response.Plan.MealsPerDay),
			item.FoodID.String(),
			item.Brand,
			string(item.FoodType),
			item.QuantityPerMeal.String(),
			formatInt(item.NumberOfMeals),
			item.TotalQuantity.String(),
			item.TotalCost.String(),
			formatInt(item.SortOrder),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatInt(value int) string {
	return strconv.Itoa(value)
}
