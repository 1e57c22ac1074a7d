package planner

import (
	"context"
	"time"

	"buffet/internal/models"
)

// PortionKgPerPerson is the mass of each food served per attendee and meal.
const PortionKgPerPerson = 0.1

// WeekStatistics aggregates the meals of a week
type WeekStatistics struct {
	Monday        time.Time `json:"lundi"`
	TotalCalories float64   `json:"caloriesTotales"`
	Allergens     []string  `json:"allergiesPresentes"`
	MealCount     int       `json:"nombreRepas"`
	Source        Source    `json:"source"`
}

// WeeklyStatistics aggregates calories and allergens over the week GetWeek
// returns for date.
func (s *Service) WeeklyStatistics(ctx context.Context, date time.Time) (*WeekStatistics, error) {
	week, err := s.GetWeek(ctx, date)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(week.Meals)
	stats.Monday = week.Monday
	stats.Source = week.Source
	return stats, nil
}

// Aggregate computes the statistics of meals
func Aggregate(meals []models.Meal) *WeekStatistics {
	stats := &WeekStatistics{MealCount: len(meals)}

	var allergens models.AllergenSet
	for i := range meals {
		quantity := float64(meals[i].Attendees) * PortionKgPerPerson
		for j := range meals[i].Foods {
			food := &meals[i].Foods[j]
			stats.TotalCalories += food.CaloriesFor(quantity)
			allergens.Add(food)
		}
	}
	stats.Allergens = allergens.List()
	return stats
}
