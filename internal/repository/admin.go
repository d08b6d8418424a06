package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

type AdminUser struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type DailyCount struct {
	Day   time.Time
	Count int
}

type UsageStats struct {
	Users      int
	Dogs       int
	Foods      int
	Plans      int
	PlansByDay []DailyCount
}

// NewAdminRepository создает репозиторий для админских запросов.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListUsers возвращает список пользователей с пагинацией.
func (r *AdminRepository) ListUsers(ctx context.Context, limit, offset int) ([]AdminUser, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, name, created_at, updated_at
		 FROM users
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]AdminUser, 0)
	for rows.Next() {
		var user AdminUser

		err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// CountUsers возвращает общее число пользователей.
func (r *AdminRepository) CountUsers(ctx context.Context) (int, error) {
	var total int

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users`,
	).Scan(&total)
	if err != nil {
		return 0, err
	}

	return total, nil
}

// UsageStats возвращает агрегированную статистику использования сервиса.
func (r *AdminRepository) UsageStats(ctx context.Context, days int) (UsageStats, error) {
	var stats UsageStats

	if days <= 0 {
		return stats, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM dogs),
		        (SELECT COUNT(*) FROM foods),
		        (SELECT COUNT(*) FROM meal_plans)`,
	).Scan(&stats.Users, &stats.Dogs, &stats.Foods, &stats.Plans)
	if err != nil {
		return stats, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT created_at::date AS day, COUNT(*)
		 FROM meal_plans
		 WHERE created_at >= CURRENT_DATE - $1::int
		 GROUP BY day
		 ORDER BY day DESC`,
		days,
	)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var day DailyCount

		err := rows.Scan(&day.Day, &day.Count)
		if err != nil {
			return stats, err
		}

		stats.PlansByDay = append(stats.PlansByDay, day)
	}

	if err := rows.Err(); err != nil {
		return stats, err
	}

	return stats, nil
}
