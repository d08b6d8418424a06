package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/raw-feed-planner/internal/models"
)

type FoodRepository struct {
	db *pgxpool.Pool
}

// NewFoodRepository создает репозиторий кормов.
func NewFoodRepository(db *pgxpool.Pool) *FoodRepository {
	return &FoodRepository{db: db}
}

// Create добавляет корм в инвентарь пользователя.
func (r *FoodRepository) Create(ctx context.Context, food models.Food) (models.Food, error) {
	var created models.Food

	err := r.db.QueryRow(ctx,
		`INSERT INTO foods (id, user_id, brand, food_type, weight, measure_unit, cost, currency, protein, fat, fiber)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, user_id, brand, food_type, weight, measure_unit, cost, currency, protein, fat, fiber, created_at, updated_at`,
		uuid.New(), food.UserID, food.Brand, food.FoodType, food.Weight, food.MeasureUnit, food.Cost, food.Currency, food.Protein, food.Fat, food.Fiber,
	).Scan(&created.ID, &created.UserID, &created.Brand, &created.FoodType, &created.Weight, &created.MeasureUnit, &created.Cost, &created.Currency, &created.Protein, &created.Fat, &created.Fiber, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}

// Update обновляет корм пользователя.
func (r *FoodRepository) Update(ctx context.Context, food models.Food) (models.Food, error) {
	var updated models.Food

	err := r.db.QueryRow(ctx,
		`UPDATE foods
		 SET brand = $3,
		     food_type = $4,
		     weight = $5,
		     measure_unit = $6,
		     cost = $7,
		     currency = $8,
		     protein = $9,
		     fat = $10,
		     fiber = $11,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, brand, food_type, weight, measure_unit, cost, currency, protein, fat, fiber, created_at, updated_at`,
		food.ID, food.UserID, food.Brand, food.FoodType, food.Weight, food.MeasureUnit, food.Cost, food.Currency, food.Protein, food.Fat, food.Fiber,
	).Scan(&updated.ID, &updated.UserID, &updated.Brand, &updated.FoodType, &updated.Weight, &updated.MeasureUnit, &updated.Cost, &updated.Currency, &updated.Protein, &updated.Fat, &updated.Fiber, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}

// Delete удаляет корм; корм, занятый в планах, удалить нельзя.
func (r *FoodRepository) Delete(ctx context.Context, userID, foodID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM foods
		 WHERE id = $1 AND user_id = $2`,
		foodID, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrFoodUsed
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID возвращает корм пользователя по идентификатору.
func (r *FoodRepository) GetByID(ctx context.Context, userID, foodID uuid.UUID) (models.Food, error) {
	var food models.Food

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, brand, food_type, weight, measure_unit, cost, currency, protein, fat, fiber, created_at, updated_at
		 FROM foods
		 WHERE id = $1 AND user_id = $2`,
		foodID, userID,
	).Scan(&food.ID, &food.UserID, &food.Brand, &food.FoodType, &food.Weight, &food.MeasureUnit, &food.Cost, &food.Currency, &food.Protein, &food.Fat, &food.Fiber, &food.CreatedAt, &food.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return food, ErrNotFound
		}
		return food, err
	}

	return food, nil
}

// ListByUser возвращает инвентарь кормов пользователя.
func (r *FoodRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Food, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, brand, food_type, weight, measure_unit, cost, currency, protein, fat, fiber, created_at, updated_at
		 FROM foods
		 WHERE user_id = $1
		 ORDER BY brand, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	foods := make([]models.Food, 0)
	for rows.Next() {
		var food models.Food

		err := rows.Scan(&food.ID, &food.UserID, &food.Brand, &food.FoodType, &food.Weight, &food.MeasureUnit, &food.Cost, &food.Currency, &food.Protein, &food.Fat, &food.Fiber, &food.CreatedAt, &food.UpdatedAt)
		if err != nil {
			return nil, err
		}

		foods = append(foods, food)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return foods, nil
}

// ListByIDs возвращает корма пользователя по списку идентификаторов.
func (r *FoodRepository) ListByIDs(ctx context.Context, userID uuid.UUID, foodIDs []uuid.UUID) (map[uuid.UUID]models.Food, error) {
	foods := make(map[uuid.UUID]models.Food, len(foodIDs))
	if len(foodIDs) == 0 {
		return foods, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, brand, food_type, weight, measure_unit, cost, currency, protein, fat, fiber, created_at, updated_at
		 FROM foods
		 WHERE user_id = $1 AND id = ANY($2)`,
		userID, foodIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var food models.Food

		err := rows.Scan(&food.ID, &food.UserID, &food.Brand, &food.FoodType, &food.Weight, &food.MeasureUnit, &food.Cost, &food.Currency, &food.Protein, &food.Fat, &food.Fiber, &food.CreatedAt, &food.UpdatedAt)
		if err != nil {
			return nil, err
		}

		foods[food.ID] = food
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return foods, nil
}
