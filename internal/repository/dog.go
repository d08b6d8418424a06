package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/raw-feed-planner/internal/models"
)

type DogRepository struct {
	db *pgxpool.Pool
}

// NewDogRepository создает репозиторий профилей собак.
func NewDogRepository(db *pgxpool.Pool) *DogRepository {
	return &DogRepository{db: db}
}

// Create добавляет профиль собаки.
func (r *DogRepository) Create(ctx context.Context, dog models.Dog) (models.Dog, error) {
	var created models.Dog

	err := r.db.QueryRow(ctx,
		`INSERT INTO dogs (id, user_id, name, weight, weight_unit, age_years, activity_level, measure_unit, portion_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, user_id, name, weight, weight_unit, age_years, activity_level, measure_unit, portion_size, created_at, updated_at`,
		uuid.New(), dog.UserID, dog.Name, dog.Weight, dog.WeightUnit, dog.AgeYears, dog.ActivityLevel, dog.MeasureUnit, dog.PortionSize,
	).Scan(&created.ID, &created.UserID, &created.Name, &created.Weight, &created.WeightUnit, &created.AgeYears, &created.ActivityLevel, &created.MeasureUnit, &created.PortionSize, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return created, err
	}

	return created, nil
}

// Update обновляет профиль собаки.
func (r *DogRepository) Update(ctx context.Context, dog models.Dog) (models.Dog, error) {
	var updated models.Dog

	err := r.db.QueryRow(ctx,
		`UPDATE dogs
		 SET name = $3,
		     weight = $4,
		     weight_unit = $5,
		     age_years = $6,
		     activity_level = $7,
		     measure_unit = $8,
		     portion_size = $9,
		     updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, weight, weight_unit, age_years, activity_level, measure_unit, portion_size, created_at, updated_at`,
		dog.ID, dog.UserID, dog.Name, dog.Weight, dog.WeightUnit, dog.AgeYears, dog.ActivityLevel, dog.MeasureUnit, dog.PortionSize,
	).Scan(&updated.ID, &updated.UserID, &updated.Name, &updated.Weight, &updated.WeightUnit, &updated.AgeYears, &updated.ActivityLevel, &updated.MeasureUnit, &updated.PortionSize, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updated, ErrNotFound
		}
		return updated, err
	}

	return updated, nil
}

// Delete удаляет профиль собаки; ссылки планов на нее обнуляются на уровне БД.
func (r *DogRepository) Delete(ctx context.Context, userID, dogID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM dogs
		 WHERE id = $1 AND user_id = $2`,
		dogID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID возвращает профиль собаки пользователя.
func (r *DogRepository) GetByID(ctx context.Context, userID, dogID uuid.UUID) (models.Dog, error) {
	var dog models.Dog

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, weight, weight_unit, age_years, activity_level, measure_unit, portion_size, created_at, updated_at
		 FROM dogs
		 WHERE id = $1 AND user_id = $2`,
		dogID, userID,
	).Scan(&dog.ID, &dog.UserID, &dog.Name, &dog.Weight, &dog.WeightUnit, &dog.AgeYears, &dog.ActivityLevel, &dog.MeasureUnit, &dog.PortionSize, &dog.CreatedAt, &dog.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dog, ErrNotFound
		}
		return dog, err
	}

	return dog, nil
}

// ListByUser возвращает собак пользователя.
func (r *DogRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Dog, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, weight, weight_unit, age_years, activity_level, measure_unit, portion_size, created_at, updated_at
		 FROM dogs
		 WHERE user_id = $1
		 ORDER BY name, created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dogs := make([]models.Dog, 0)
	for rows.Next() {
		var dog models.Dog

		err := rows.Scan(&dog.ID, &dog.UserID, &dog.Name, &dog.Weight, &dog.WeightUnit, &dog.AgeYears, &dog.ActivityLevel, &dog.MeasureUnit, &dog.PortionSize, &dog.CreatedAt, &dog.UpdatedAt)
		if err != nil {
			return nil, err
		}

		dogs = append(dogs, dog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dogs, nil
}
