package buffet

import (
	"context"
	"fmt"
	"math"

	"buffet/internal/catalogue"
	"buffet/internal/models"

	"go.uber.org/zap"
)

type pick struct {
	category string
	limit    int
}

type tier struct {
	name      string
	maxGuests int
	picks     []pick
}

// tiers are checked in order; the first whose maxGuests is not exceeded wins.
var tiers = []tier{
	{
		name:      "small",
		maxGuests: 10,
		picks: []pick{
			{models.CategoryMeat, 1},
			{models.CategoryVegetable, 2},
			{models.CategoryFruit, 1},
		},
	},
	{
		name:      "medium",
		maxGuests: 30,
		picks: []pick{
			{models.CategoryMeat, 2},
			{models.CategoryFish, 1},
			{models.CategoryVegetable, 2},
			{models.CategoryFruit, 1},
		},
	},
	{
		name:      "large",
		maxGuests: math.MaxInt,
		picks: []pick{
			{models.CategoryMeat, 2},
			{models.CategoryFish, 1},
			{models.CategoryVegetable, 3},
			{models.CategoryFruit, 1},
			{models.CategoryGrain, 1},
		},
	},
}

func tierFor(guests int) tier {
	for _, t := range tiers {
		if guests <= t.maxGuests {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

const (
	economicalSize      = 5
	balancedSize        = 6
	allergyAvoidingSize = 5
)

// RecommendFoods picks foods suited to the number of guests. Categories with
// fewer foods than their cap contribute what they have.
func (s *Service) RecommendFoods(ctx context.Context, guests int) ([]models.Food, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}

	t := tierFor(guests)
	var foods []models.Food
	for _, p := range t.picks {
		picked, err := catalogue.FirstOfCategory(ctx, s.catalogue, p.category, p.limit)
		if err != nil {
			return nil, fmt.Errorf("failed to pick %s: %w", p.category, err)
		}
		foods = append(foods, picked...)
	}

	s.logger.Debug("recommendation built",
		zap.String("tier", t.name),
		zap.Int("guests", guests),
		zap.Int("foods", len(foods)))
	return foods, nil
}

// Recommend returns the ids of the recommended foods
func (s *Service) Recommend(ctx context.Context, guests int) ([]uint, error) {
	foods, err := s.RecommendFoods(ctx, guests)
	if err != nil {
		return nil, err
	}
	return catalogue.IDs(foods), nil
}

// Economical computes a buffet of the least caloric foods
func (s *Service) Economical(ctx context.Context, guests int) (*Result, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	foods, err := s.catalogue.FindAllOrderedByCalories(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods by calories: %w", err)
	}
	return s.compute(ctx, KindEconomical, guests, firstIDs(foods, economicalSize))
}

// Balanced computes a buffet of foods without allergens
func (s *Service) Balanced(ctx context.Context, guests int) (*Result, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	foods, err := s.catalogue.FindWithoutAllergen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods without allergen: %w", err)
	}
	return s.compute(ctx, KindBalanced, guests, firstIDs(foods, balancedSize))
}

// AllergyAvoiding computes a buffet of foods without allergens. The allergen
// argument does not narrow the pool: every food carrying any allergen is
// already excluded.
func (s *Service) AllergyAvoiding(ctx context.Context, guests int, allergen string) (*Result, error) {
	if guests <= 0 {
		return nil, ErrInvalidGuestCount
	}
	foods, err := s.catalogue.FindWithoutAllergen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods without allergen: %w", err)
	}
	s.logger.Debug("allergy avoiding buffet", zap.String("allergen", allergen))
	return s.compute(ctx, KindAllergyAvoiding, guests, firstIDs(foods, allergyAvoidingSize))
}

func firstIDs(foods []models.Food, n int) []uint {
	if len(foods) > n {
		foods = foods[:n]
	}
	return catalogue.IDs(foods)
}
