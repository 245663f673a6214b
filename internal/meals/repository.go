package meals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"dailydiet/internal/database"
)

// Repository handles all database operations for meals.
type Repository struct {
	db database.Service
}

// NewRepository creates a new meals repository.
func NewRepository(db database.Service) *Repository {
	return &Repository{db: db}
}

// Create inserts a new meal owned by the given session id.
func (r *Repository) Create(ctx context.Context, id uuid.UUID, name, description, date string, isOnDiet bool, userID string) error {
	query := `
		INSERT INTO meals (id, name, description, date, is_on_diet, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`

	if _, err := r.db.Exec(ctx, query, id, name, description, date, isOnDiet, userID); err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

// ListByOwner returns every meal whose user_id matches the caller's
// session id, oldest first.
func (r *Repository) ListByOwner(ctx context.Context, userID string) ([]Meal, error) {
	query := `
		SELECT id, name, description, date, is_on_diet, user_id, created_at, updated_at
		FROM meals
		WHERE user_id = $1
		ORDER BY date, created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meals: %w", err)
	}
	defer rows.Close()

	return scanMeals(rows)
}

// GetByID returns the meal with the given id regardless of owner, or
// nil if no row matches.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Meal, error) {
	query := `
		SELECT id, name, description, date, is_on_diet, user_id, created_at, updated_at
		FROM meals
		WHERE id = $1
	`

	return r.getOne(ctx, query, id)
}

// GetByIDForOwner returns the meal matching both id and the caller's
// session id, or nil if no row matches.
func (r *Repository) GetByIDForOwner(ctx context.Context, id uuid.UUID, userID string) (*Meal, error) {
	query := `
		SELECT id, name, description, date, is_on_diet, user_id, created_at, updated_at
		FROM meals
		WHERE id = $1 AND user_id = $2
	`

	return r.getOne(ctx, query, id, userID)
}

// Update rewrites name, description, date and is_on_diet on the row
// matched by id. Ownership is left untouched.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, description, date string, isOnDiet bool) error {
	query := `
		UPDATE meals
		SET name = $2, description = $3, date = $4, is_on_diet = $5, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.Exec(ctx, query, id, name, description, date, isOnDiet); err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}

	return nil
}

// SetOnDiet flips the on-diet flag on the row matched by id.
func (r *Repository) SetOnDiet(ctx context.Context, id uuid.UUID, isOnDiet bool) error {
	query := `UPDATE meals SET is_on_diet = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, isOnDiet); err != nil {
		return fmt.Errorf("failed to set on-diet flag: %w", err)
	}

	return nil
}

// Delete removes the row matched by id.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM meals WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	return nil
}

// Metrics aggregates the caller's diet log. The best on-diet sequence
// is computed over rows ordered by meal date.
func (r *Repository) Metrics(ctx context.Context, userID string) (*Metrics, error) {
	query := `
		SELECT is_on_diet
		FROM meals
		WHERE user_id = $1
		ORDER BY date, created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal metrics: %w", err)
	}
	defer rows.Close()

	var flags []bool
	for rows.Next() {
		var onDiet bool
		if err := rows.Scan(&onDiet); err != nil {
			return nil, fmt.Errorf("failed to scan meal metrics: %w", err)
		}
		flags = append(flags, onDiet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal metrics: %w", err)
	}

	return summarize(flags), nil
}

// summarize folds an ordered sequence of on-diet flags into a Metrics.
func summarize(flags []bool) *Metrics {
	m := &Metrics{TotalMeals: len(flags)}

	streak := 0
	for _, onDiet := range flags {
		if onDiet {
			m.MealsOnDiet++
			streak++
			if streak > m.BestOnDietSequence {
				m.BestOnDietSequence = streak
			}
		} else {
			m.MealsOffDiet++
			streak = 0
		}
	}

	return m
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (*Meal, error) {
	meal := &Meal{}
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&meal.ID,
		&meal.Name,
		&meal.Description,
		&meal.Date,
		&meal.IsOnDiet,
		&meal.UserID,
		&meal.CreatedAt,
		&meal.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return meal, nil
}

func scanMeals(rows *sql.Rows) ([]Meal, error) {
	meals := []Meal{}
	for rows.Next() {
		var meal Meal
		err := rows.Scan(
			&meal.ID,
			&meal.Name,
			&meal.Description,
			&meal.Date,
			&meal.IsOnDiet,
			&meal.UserID,
			&meal.CreatedAt,
			&meal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meals: %w", err)
	}

	return meals, nil
}
