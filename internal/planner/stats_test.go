package planner

import (
	"context"
	"testing"
	"time"

	"buffet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	c := stockedCatalogue()
	meals := []models.Meal{
		{Attendees: 4, Foods: []models.Food{c.foods[0], c.foods[8]}},
		{Attendees: 10, Foods: []models.Food{c.foods[1], c.foods[7], c.foods[3]}},
		{Attendees: 2, Foods: []models.Food{c.foods[1]}},
	}

	stats := Aggregate(meals)

	// 165*0.4*10 + 0 + 250*1*10 + 130*1*10 + 41*1*10 + 250*0.2*10
	assert.InDelta(t, 660.0+2500+1300+410+500, stats.TotalCalories, 1e-9)
	assert.Equal(t, []string{"Lait", "Sulfites", "Gluten"}, stats.Allergens)
	assert.Equal(t, 3, stats.MealCount)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)
	assert.Zero(t, stats.TotalCalories)
	assert.Equal(t, []string{}, stats.Allergens)
	assert.Zero(t, stats.MealCount)
}

func TestWeeklyStatistics_GeneratedWeek(t *testing.T) {
	svc, _ := newTestService(stockedCatalogue())

	stats, err := svc.WeeklyStatistics(context.Background(), date(2024, time.March, 14))
	require.NoError(t, err)

	// per day at 0.4 kg each: breakfast 130+52+0, lunch 165+41+15+130, dinner 41+15+82
	perDay := (182.0 + 351 + 138) * 0.4 * 10
	assert.InDelta(t, perDay*7, stats.TotalCalories, 1e-6)
	assert.Equal(t, []string{"Gluten", "Lait", "Poisson"}, stats.Allergens)
	assert.Equal(t, 21, stats.MealCount)
	assert.Equal(t, date(2024, time.March, 11), stats.Monday)
	assert.Equal(t, SourceGenerated, stats.Source)
}

func TestWeeklyStatistics_StoredWeek(t *testing.T) {
	c := stockedCatalogue()
	svc, _ := newTestService(c)
	ctx := context.Background()

	_, err := svc.SaveMeal(ctx, &models.Meal{
		Date:      date(2024, time.March, 12),
		Slot:      models.SlotDinner,
		Attendees: 5,
		Foods:     []models.Food{c.foods[2]},
	})
	require.NoError(t, err)

	stats, err := svc.WeeklyStatistics(ctx, date(2024, time.March, 11))
	require.NoError(t, err)
	assert.InDelta(t, 82*0.5*10, stats.TotalCalories, 1e-9)
	assert.Equal(t, []string{"Poisson"}, stats.Allergens)
	assert.Equal(t, 1, stats.MealCount)
	assert.Equal(t, SourcePersisted, stats.Source)
}
