package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"example.com/raw-feed-planner/internal/models"
)

type StatsRepository struct {
	db *pgxpool.Pool
}

type OverviewStats struct {
	TotalPlans       int
	TotalDogs        int
	TotalFoods       int
	TotalPlannedCost decimal.Decimal
}

type FoodTypeCost struct {
	FoodType      models.FoodType
	TotalQuantity decimal.Decimal
	TotalCost     decimal.Decimal
}

// NewStatsRepository создает репозиторий статистики.
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview возвращает сводную статистику пользователя.
func (r *StatsRepository) Overview(ctx context.Context, userID uuid.UUID) (OverviewStats, error) {
	var stats OverviewStats

	err := r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM meal_plans WHERE user_id = $1),
		        (SELECT COUNT(*) FROM dogs WHERE user_id = $1),
		        (SELECT COUNT(*) FROM foods WHERE user_id = $1),
		        (SELECT COALESCE(SUM(total_cost), 0) FROM meal_plans WHERE user_id = $1)`,
		userID,
	).Scan(&stats.TotalPlans, &stats.TotalDogs, &stats.TotalFoods, &stats.TotalPlannedCost)
	if err != nil {
		return stats, err
	}

	return stats, nil
}

// CostByFoodType возвращает количество и стоимость по типам корма в плане.
func (r *StatsRepository) CostByFoodType(ctx context.Context, userID, planID uuid.UUID) ([]FoodTypeCost, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM meal_plans WHERE id = $1 AND user_id = $2
		 )`,
		planID, userID,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT f.food_type,
		        COALESCE(SUM(i.total_quantity), 0) AS total_quantity,
		        COALESCE(SUM(i.total_cost), 0) AS total_cost
		 FROM meal_plan_items i
		 JOIN foods f ON f.id = i.food_id
		 WHERE i.plan_id = $1
		 GROUP BY f.food_type
		 ORDER BY f.food_type`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	costs := make([]FoodTypeCost, 0)
	for rows.Next() {
		var row FoodTypeCost

		err := rows.Scan(&row.FoodType, &row.TotalQuantity, &row.TotalCost)
		if err != nil {
			return nil, err
		}

		costs = append(costs, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return costs, nil
}
