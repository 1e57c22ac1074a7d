package planner

import (
	"context"
	"fmt"
	"time"

	"buffet/internal/catalogue"
	"buffet/internal/models"

	"go.uber.org/zap"
)

var descriptions = map[models.MealSlot]string{
	models.SlotBreakfast: "Petit déjeuner équilibré",
	models.SlotLunch:     "Déjeuner complet",
	models.SlotDinner:    "Dîner léger",
}

// rule is one category draw of a slot. Fallback is drawn from only when the
// primary category yields nothing.
type rule struct {
	category string
	fallback string
	limit    int
}

var slotRules = map[models.MealSlot][]rule{
	models.SlotBreakfast: {
		{category: models.CategoryGrain, limit: 1},
		{category: models.CategoryFruit, limit: 1},
		{category: models.CategoryDairy, limit: 1},
	},
	models.SlotLunch: {
		{category: models.CategoryMeat, fallback: models.CategoryFish, limit: 1},
		{category: models.CategoryVegetable, limit: 2},
		{category: models.CategoryGrain, limit: 1},
	},
	models.SlotDinner: {
		{category: models.CategoryVegetable, limit: 2},
		{category: models.CategoryFish, limit: 1},
	},
}

// GenerateWeek builds the 21 meals of the week containing date. Nothing is
// stored.
func (s *Service) GenerateWeek(ctx context.Context, date time.Time) (*WeekPlan, error) {
	monday := MostRecentMonday(date)
	dates := weekDates(monday)

	selections := make(map[models.MealSlot][]models.Food, len(models.MealSlots))
	for _, slot := range models.MealSlots {
		foods, err := s.selectFoods(ctx, slot)
		if err != nil {
			return nil, err
		}
		selections[slot] = foods
	}

	meals := make([]models.Meal, 0, len(dates)*len(models.MealSlots))
	for _, d := range dates {
		for _, slot := range models.MealSlots {
			meal := models.Meal{
				Name:        MealName(slot, d),
				Description: descriptions[slot],
				Date:        d,
				Slot:        slot,
				Attendees:   models.DefaultAttendees,
				Foods:       append([]models.Food(nil), selections[slot]...),
			}
			meal.SyncFoodIDs()
			meals = append(meals, meal)
		}
	}

	s.logger.Debug("week generated",
		zap.Time("monday", monday),
		zap.Int("meals", len(meals)))
	s.observe(SourceGenerated)
	return &WeekPlan{
		Monday: monday,
		Dates:  dates,
		Meals:  meals,
		Source: SourceGenerated,
	}, nil
}

func (s *Service) selectFoods(ctx context.Context, slot models.MealSlot) ([]models.Food, error) {
	foods := []models.Food{}
	for _, r := range slotRules[slot] {
		picked, err := catalogue.FirstOfCategory(ctx, s.catalogue, r.category, r.limit)
		if err != nil {
			return nil, fmt.Errorf("failed to select %s for %s: %w", r.category, slot, err)
		}
		if len(picked) == 0 && r.fallback != "" {
			picked, err = catalogue.FirstOfCategory(ctx, s.catalogue, r.fallback, r.limit)
			if err != nil {
				return nil, fmt.Errorf("failed to select %s for %s: %w", r.fallback, slot, err)
			}
		}
		foods = append(foods, picked...)
	}
	return foods, nil
}
