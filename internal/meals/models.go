package meals

import (
	"time"

	"github.com/google/uuid"
)

// Meal is a single logged meal. UserID holds the session id of the
// caller who created it; nothing ever joins it back to the users table.
type Meal struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Date        string    `json:"date" db:"date"`
	IsOnDiet    bool      `json:"is_on_diet" db:"is_on_diet"`
	UserID      string    `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateMealRequest is the body for POST /meals.
// IsOnDiet is a pointer so that an explicit false still satisfies the
// required binding.
type CreateMealRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	IsOnDiet    *bool  `json:"is_on_diet" binding:"required"`
}

// UpdateMealRequest is the body for PUT /meals/:id. UserID is part of
// the documented schema and validated, but ownership is never rewritten
// on update.
type UpdateMealRequest struct {
	UserID      string `json:"user_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Date        string `json:"date" binding:"required"`
	IsOnDiet    *bool  `json:"is_on_diet" binding:"required"`
}

// SetOnDietRequest is the body for PATCH /meals/:id/is_on_diet.
type SetOnDietRequest struct {
	IsOnDiet *bool `json:"is_on_diet" binding:"required"`
}

// Metrics summarizes a caller's diet log.
type Metrics struct {
	TotalMeals         int `json:"total_meals"`
	MealsOnDiet        int `json:"meals_on_diet"`
	MealsOffDiet       int `json:"meals_off_diet"`
	BestOnDietSequence int `json:"best_on_diet_sequence"`
}

// dateLayouts are the accepted formats for the caller-supplied date.
// The value is stored as the caller sent it.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// validDate reports whether the string parses as a date/time value.
func validDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
