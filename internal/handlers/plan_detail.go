package handlers

import (
	"context"

	"github.com/google/uuid"

	"example.com/raw-feed-planner/internal/models"
	"example.com/raw-feed-planner/internal/planner"
	"example.com/raw-feed-planner/internal/repository"
)

// buildPlanDetailResponse собирает детальный ответ по плану: элементы
// загружаются из базы и переоцениваются по текущим ценам кормов.
func buildPlanDetailResponse(ctx context.Context, plans *repository.PlanRepository, foods *repository.FoodRepository, plan models.MealPlan) (PlanDetailResponse, error) {
	draft, foodMap, err := loadPlannerPlan(ctx, plans, foods, plan)
	if err != nil {
		return PlanDetailResponse{}, err
	}

	response := toPlanResponse(plan)
	response.TotalCost = draft.TotalCost

	items := make([]PlanItemResponse, 0, len(draft.Items))
	for i, item := range draft.Items {
		food := foodMap[item.FoodID]
		items = append(items, PlanItemResponse{
			ID:              item.ID,
			FoodID:          item.FoodID,
			Brand:           food.Brand,
			FoodType:        food.FoodType,
			QuantityPerMeal: item.QuantityPerMeal,
			NumberOfMeals:   item.NumberOfMeals,
			CostPerUnit:     item.CostPerUnit,
			TotalQuantity:   item.TotalQuantity,
			TotalCost:       item.TotalCost,
			SortOrder:       i,
		})
	}

	return PlanDetailResponse{Plan: response, Items: items}, nil
}

// loadPlannerPlan восстанавливает редактируемый план из сохраненного
// состояния и переоценивает его по текущим ценам кормов пользователя.
func loadPlannerPlan(ctx context.Context, plans *repository.PlanRepository, foods *repository.FoodRepository, plan models.MealPlan) (*planner.Plan, map[uuid.UUID]models.Food, error) {
	stored, err := plans.ListItems(ctx, plan.ID)
	if err != nil {
		return nil, nil, err
	}

	foodIDs := make([]uuid.UUID, 0, len(stored))
	for _, item := range stored {
		foodIDs = append(foodIDs, item.FoodID)
	}

	foodMap, err := foods.ListByIDs(ctx, plan.UserID, foodIDs)
	if err != nil {
		return nil, nil, err
	}

	draft := toPlannerPlan(plan, stored)
	if err := draft.RepriceItems(plannerFoods(foodMap)); err != nil {
		return nil, nil, err
	}

	return draft, foodMap, nil
}

func toPlannerPlan(plan models.MealPlan, items []models.MealPlanItem) *planner.Plan {
	planID := plan.ID
	draft := &planner.Plan{
		ID:           &planID,
		Name:         plan.Name,
		StartDate:    plan.StartDate,
		EndDate:      plan.EndDate,
		DurationDays: plan.DurationDays,
		MealsPerDay:  plan.MealsPerDay,
		DogID:        plan.DogID,
		Notes:        plan.Notes,
		Items:        make([]planner.PlanItem, 0, len(items)),
		TotalCost:    plan.TotalCost,
	}

	for _, item := range items {
		draft.Items = append(draft.Items, planner.PlanItem{
			ID:              item.ID,
			FoodID:          item.FoodID,
			QuantityPerMeal: item.QuantityPerMeal,
			NumberOfMeals:   item.NumberOfMeals,
			TotalQuantity:   item.TotalQuantity,
			TotalCost:       item.TotalCost,
		})
	}

	return draft
}

// planModels сворачивает редактируемый план в строки для сохранения.
func planModels(userID uuid.UUID, draft *planner.Plan) (models.MealPlan, []models.MealPlanItem) {
	plan := models.MealPlan{
		UserID:       userID,
		Name:         draft.Name,
		StartDate:    draft.StartDate,
		EndDate:      draft.EndDate,
		DurationDays: draft.DurationDays,
		MealsPerDay:  draft.MealsPerDay,
		DogID:        draft.DogID,
		Notes:        draft.Notes,
		TotalCost:    draft.TotalCost,
	}

	if draft.ID != nil {
		plan.ID = *draft.ID
	}

	items := make([]models.MealPlanItem, 0, len(draft.Items))
	for idx, item := range draft.Items {
		items = append(items, models.MealPlanItem{
			FoodID:          item.FoodID,
			QuantityPerMeal: item.QuantityPerMeal,
			NumberOfMeals:   item.NumberOfMeals,
			TotalQuantity:   item.TotalQuantity,
			TotalCost:       item.TotalCost,
			SortOrder:       idx,
		})
	}

	return plan, items
}

func plannerFood(food models.Food) planner.Food {
	return planner.Food{
		ID:     food.ID,
		Cost:   food.Cost,
		Weight: food.Weight,
	}
}

func plannerFoods(foods map[uuid.UUID]models.Food) map[uuid.UUID]planner.Food {
	out := make(map[uuid.UUID]planner.Food, len(foods))
	for id, food := range foods {
		out[id] = plannerFood(food)
	}
	return out
}
