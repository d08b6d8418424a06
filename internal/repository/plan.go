package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/raw-feed-planner/internal/models"
)

type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository создает репозиторий планов кормления.
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create сохраняет новый план вместе с элементами.
func (r *PlanRepository) Create(ctx context.Context, plan models.MealPlan, items []models.MealPlanItem) (models.MealPlan, error) {
	var created models.MealPlan

	if err := validatePlanInput(plan, items); err != nil {
		return created, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return created, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO meal_plans (id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost, created_at, updated_at`,
		uuid.New(), plan.UserID, plan.Name, plan.StartDate, plan.EndDate, plan.DurationDays, plan.MealsPerDay, plan.DogID, plan.Notes, plan.TotalCost,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.StartDate, &created.EndDate, &created.DurationDays, &created.MealsPerDay, &created.DogID, &created.Notes, &created.TotalCost, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return created, err
	}

	if err := insertItems(ctx, tx, created.ID, items); err != nil {
		return created, err
	}

	if err := tx.Commit(ctx); err != nil {
		return created, err
	}

	return created, nil
}

// Update перезаписывает план и его элементы целиком.
func (r *PlanRepository) Update(ctx context.Context, plan models.MealPlan, items []models.MealPlanItem) (models.MealPlan, error) {
	var updated models.MealPlan

	if err := validatePlanInput(plan, items); err != nil {
		return updated, err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return updated, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`UPDATE meal_plans
		 SET name = $3,
		     start_date = $4,
		     end_date = $5,
		     duration_days = $6,
		     meals_per_day = $7,
		     dog_id = $8,
		     notes = $9,
		     total_cost = $10,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost, created_at, updated_at`,
		plan.ID, plan.UserID, plan.Name, plan.StartDate, plan.EndDate, plan.DurationDays, plan.MealsPerDay, plan.DogID, plan.Notes, plan.TotalCost,
	).Scan(&updated.ID, &updated.UserID, &updated.Name, &updated.StartDate, &updated.EndDate, &updated.DurationDays, &updated.MealsPerDay, &updated.DogID, &updated.Notes, &updated.TotalCost, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, ErrNotFound
		}
		return updated, err
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM meal_plan_items
		 WHERE plan_id = $1`,
		updated.ID,
	)
	if err != nil {
		return updated, err
	}

	if err := insertItems(ctx, tx, updated.ID, items); err != nil {
		return updated, err
	}

	if err := tx.Commit(ctx); err != nil {
		return updated, err
	}

	return updated, nil
}

// Delete удаляет план кормления вместе с элементами.
func (r *PlanRepository) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM meal_plans
		 WHERE id = $1 AND user_id = $2`,
		planID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID возвращает план пользователя по идентификатору.
func (r *PlanRepository) GetByID(ctx context.Context, userID, planID uuid.UUID) (models.MealPlan, error) {
	var plan models.MealPlan

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost, created_at, updated_at
		 FROM meal_plans
		 WHERE id = $1 AND user_id = $2`,
		planID, userID,
	).Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.StartDate, &plan.EndDate, &plan.DurationDays, &plan.MealsPerDay, &plan.DogID, &plan.Notes, &plan.TotalCost, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan, ErrNotFound
		}
		return plan, err
	}

	return plan, nil
}

// ListByUser возвращает планы пользователя.
func (r *PlanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost, created_at, updated_at
		 FROM meal_plans
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]models.MealPlan, 0)
	for rows.Next() {
		var plan models.MealPlan

		err := rows.Scan(&plan.ID, &plan.UserID, &plan.Name, &plan.StartDate, &plan.EndDate, &plan.DurationDays, &plan.MealsPerDay, &plan.DogID, &plan.Notes, &plan.TotalCost, &plan.CreatedAt, &plan.UpdatedAt)
		if err != nil {
			return nil, err
		}

		plans = append(plans, plan)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// ListItems возвращает элементы плана в сохраненном порядке.
func (r *PlanRepository) ListItems(ctx context.Context, planID uuid.UUID) ([]models.MealPlanItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, plan_id, food_id, quantity_per_meal, number_of_meals, total_quantity, total_cost, sort_order, created_at, updated_at
		 FROM meal_plan_items
		 WHERE plan_id = $1
		 ORDER BY sort_order, created_at`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.MealPlanItem, 0)
	for rows.Next() {
		var item models.MealPlanItem

		err := rows.Scan(&item.ID, &item.PlanID, &item.FoodID, &item.QuantityPerMeal, &item.NumberOfMeals, &item.TotalQuantity, &item.TotalCost, &item.SortOrder, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Duplicate создает полную копию плана с элементами.
func (r *PlanRepository) Duplicate(ctx context.Context, userID, planID uuid.UUID) (models.MealPlan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return models.MealPlan{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var original models.MealPlan
	err = tx.QueryRow(ctx,
		`SELECT id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost, created_at, updated_at
		 FROM meal_plans
		 WHERE id = $1 AND user_id = $2`,
		planID, userID,
	).Scan(&original.ID, &original.UserID, &original.Name, &original.StartDate, &original.EndDate, &original.DurationDays, &original.MealsPerDay, &original.DogID, &original.Notes, &original.TotalCost, &original.CreatedAt, &original.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MealPlan{}, ErrNotFound
		}
		return models.MealPlan{}, err
	}

	newName := buildCopyName(original.Name, 200)

	var copied models.MealPlan
	err = tx.QueryRow(ctx,
		`INSERT INTO meal_plans (id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, user_id, name, start_date, end_date, duration_days, meals_per_day, dog_id, notes, total_cost, created_at, updated_at`,
		uuid.New(), userID, newName, original.StartDate, original.EndDate, original.DurationDays, original.MealsPerDay, original.DogID, original.Notes, original.TotalCost,
	).Scan(&copied.ID, &copied.UserID, &copied.Name, &copied.StartDate, &copied.EndDate, &copied.DurationDays, &copied.MealsPerDay, &copied.DogID, &copied.Notes, &copied.TotalCost, &copied.CreatedAt, &copied.UpdatedAt)
	if err != nil {
		return models.MealPlan{}, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO meal_plan_items (id, plan_id, food_id, quantity_per_meal, number_of_meals, total_quantity, total_cost, sort_order)
		 SELECT gen_random_uuid(), $2, food_id, quantity_per_meal, number_of_meals, total_quantity, total_cost, sort_order
		 FROM meal_plan_items
		 WHERE plan_id = $1`,
		planID, copied.ID,
	)
	if err != nil {
		return models.MealPlan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return models.MealPlan{}, err
	}

	return copied, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, planID uuid.UUID, items []models.MealPlanItem) error {
	for idx, item := range items {
		_, err := tx.Exec(ctx,
			`INSERT INTO meal_plan_items (id, plan_id, food_id, quantity_per_meal, number_of_meals, total_quantity, total_cost, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), planID, item.FoodID, item.QuantityPerMeal, item.NumberOfMeals, item.TotalQuantity, item.TotalCost, idx,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func validatePlanInput(plan models.MealPlan, items []models.MealPlanItem) error {
	if plan.DurationDays <= 0 || plan.MealsPerDay <= 0 {
		return ErrInvalid
	}

	slots := plan.DurationDays * plan.MealsPerDay
	for _, item := range items {
		if !item.QuantityPerMeal.IsPositive() {
			return ErrInvalid
		}
		if item.NumberOfMeals <= 0 || item.NumberOfMeals > slots {
			return ErrInvalid
		}
	}

	return nil
}

func buildCopyName(name string, maxRunes int) string {
	copyName := fmt.Sprintf("Copy of %s", name)
	if len([]rune(copyName)) <= maxRunes {
		return copyName
	}

	runes := []rune(copyName)
	return string(runes[:maxRunes])
}
