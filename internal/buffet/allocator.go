package buffet

import (
	"context"
	"fmt"
	"strings"

	"buffet/internal/models"

	"go.uber.org/zap"
)

// Line is the allocation of one food in a buffet
type Line struct {
	FoodID     uint    `json:"id"`
	Name       string  `json:"nom"`
	Category   string  `json:"categorie"`
	QuantityKg float64 `json:"quantiteKg"`
	Calories   float64 `json:"calories"`
	Allergens  *string `json:"allergies"`
}

// Result is a computed buffet
type Result struct {
	Guests        int     `json:"nombreInvites"`
	Lines         []Line  `json:"aliments"`
	TotalCalories float64 `json:"caloriesTotales"`
	Allergens     string  `json:"allergiesPresentes"`
}

// Compute allocates quantities of the given foods for guests guests. Lines
// follow the order of foodIDs and unknown ids are skipped.
func (s *Service) Compute(ctx context.Context, guests int, foodIDs []uint) (*Result, error) {
	return s.compute(ctx, KindCustom, guests, foodIDs)
}

func (s *Service) compute(ctx context.Context, kind Kind, guests int, foodIDs []uint) (*Result, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}

	foods, err := s.catalogue.FindByIDs(ctx, foodIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve foods: %w", err)
	}
	if len(foods) == 0 {
		return nil, ErrEmptySelection
	}
	if dropped := len(foodIDs) - len(foods); dropped > 0 {
		s.logger.Debug("unknown foods ignored", zap.Int("dropped", dropped))
	}

	result := allocate(guests, foods)

	s.logger.Info("buffet computed",
		zap.String("kind", string(kind)),
		zap.Int("guests", guests),
		zap.Int("foods", len(result.Lines)),
		zap.Float64("total_calories", result.TotalCalories))
	if s.observer != nil {
		s.observer.ObserveBuffet(string(kind), guests, result.TotalCalories)
	}
	return result, nil
}

func allocate(guests int, foods []models.Food) *Result {
	quantity := Quantity(guests)
	result := &Result{
		Guests: guests,
		Lines:  make([]Line, 0, len(foods)),
	}

	var allergens models.AllergenSet
	for i := range foods {
		food := &foods[i]
		calories := food.CaloriesFor(quantity)
		allergens.Add(food)

		result.Lines = append(result.Lines, Line{
			FoodID:     food.ID,
			Name:       food.Name,
			Category:   food.CategoryName(),
			QuantityKg: quantity,
			Calories:   calories,
			Allergens:  food.Allergens,
		})
		result.TotalCalories += calories
	}

	result.Allergens = summarize(allergens.List())
	return result
}

func summarize(allergens []string) string {
	if len(allergens) == 0 {
		return models.NoAllergenDetected
	}
	return strings.Join(allergens, "; ")
}

// CaloriesPerGuest returns the total calories of r divided by its guests,
// or 0 when the result has no guests.
func CaloriesPerGuest(r *Result) float64 {
	if r == nil || r.Guests <= 0 {
		return 0
	}
	return r.TotalCalories / float64(r.Guests)
}
