package catalogue

import (
	"context"

	"buffet/internal/models"
)

// FirstOfCategory returns at most n foods of the named category. An unknown
// or empty category yields no foods and no error.
func FirstOfCategory(ctx context.Context, c Catalogue, category string, n int) ([]models.Food, error) {
	if n <= 0 {
		return nil, nil
	}
	foods, err := c.FindByCategoryName(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(foods) > n {
		foods = foods[:n]
	}
	return foods, nil
}

// IDs returns the identifiers of foods, in order
func IDs(foods []models.Food) []uint {
	ids := make([]uint, 0, len(foods))
	for _, f := range foods {
		ids = append(ids, f.ID)
	}
	return ids
}
