package planner

import (
	"context"
	"time"

	"buffet/internal/models"
)

type fakeCatalogue struct {
	foods  []models.Food
	meals  []models.Meal
	nextID uint
	err    error
}

func (f *fakeCatalogue) add(id uint, category string, kcal *float64, allergens *string) {
	food := models.Food{
		Name:            category,
		CaloriesPer100g: kcal,
		Allergens:       allergens,
		Category:        models.Category{Name: category},
	}
	food.ID = id
	f.foods = append(f.foods, food)
}

func (f *fakeCatalogue) FindByID(ctx context.Context, id uint) (*models.Food, error) {
	for _, food := range f.foods {
		if food.ID == id {
			food := food
			return &food, nil
		}
	}
	return nil, f.err
}

func (f *fakeCatalogue) FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Food
	for _, id := range ids {
		for _, food := range f.foods {
			if food.ID == id {
				out = append(out, food)
			}
		}
	}
	return out, nil
}

func (f *fakeCatalogue) FindByCategoryName(ctx context.Context, name string) ([]models.Food, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Food
	for _, food := range f.foods {
		if food.Category.Name == name {
			out = append(out, food)
		}
	}
	return out, nil
}

func (f *fakeCatalogue) FindAllOrderedByCalories(ctx context.Context, ascending bool) ([]models.Food, error) {
	return f.foods, f.err
}

func (f *fakeCatalogue) FindWithoutAllergen(ctx context.Context) ([]models.Food, error) {
	return nil, f.err
}

func (f *fakeCatalogue) FindMealsInDateRange(ctx context.Context, start, end time.Time) ([]models.Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Meal
	for _, m := range f.meals {
		if !m.Date.Before(start) && !m.Date.After(end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeCatalogue) SaveMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	meal.ID = f.nextID
	meal.SyncFoodIDs()
	f.meals = append(f.meals, *meal)
	return meal, nil
}

type fakeObserver struct {
	sources []string
}

func (o *fakeObserver) ObserveWeek(source string) {
	o.sources = append(o.sources, source)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
