// Package catalogue provides access to foods, categories and stored meals.
package catalogue

import (
	"context"
	"errors"
	"time"

	"buffet/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateName is returned when a category name is already taken
	ErrDuplicateName = errors.New("category name already in use")
)

// Catalogue is the read capability the buffet and planner computations need.
// Implementations must be safe for concurrent reads.
type Catalogue interface {
	// FindByID returns nil, nil when no food has the given id.
	FindByID(ctx context.Context, id uint) (*models.Food, error)
	// FindByIDs returns the matching foods in the order of ids; unknown ids
	// are omitted.
	FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error)
	FindByCategoryName(ctx context.Context, name string) ([]models.Food, error)
	FindAllOrderedByCalories(ctx context.Context, ascending bool) ([]models.Food, error)
	// FindWithoutAllergen returns foods whose allergen text is unset or the
	// "no known allergen" sentinel.
	FindWithoutAllergen(ctx context.Context) ([]models.Food, error)
	// FindMealsInDateRange returns stored meals dated within [start, end],
	// foods resolved.
	FindMealsInDateRange(ctx context.Context, start, end time.Time) ([]models.Meal, error)
	// SaveMeal stores the meal, assigning an identifier when it is new.
	SaveMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error)
}

// orderByIDs arranges foods following ids. Ids repeated in the input yield
// repeated foods; ids without a food are skipped.
func orderByIDs(ids []uint, foods []models.Food) []models.Food {
	byID := make(map[uint]models.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	ordered := make([]models.Food, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}
