package buffet

import (
	"context"
	"errors"
	"sort"
	"time"

	"buffet/internal/models"
)

// fakeCatalogue is an in-memory catalogue keyed by insertion order.
type fakeCatalogue struct {
	foods []models.Food
	err   error
	calls int
}

func (f *fakeCatalogue) add(id uint, name, category string, kcal *float64, allergens *string) {
	food := models.Food{
		Name:            name,
		CaloriesPer100g: kcal,
		Allergens:       allergens,
		Category:        models.Category{Name: category},
	}
	food.ID = id
	f.foods = append(f.foods, food)
}

func (f *fakeCatalogue) FindByID(ctx context.Context, id uint) (*models.Food, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, food := range f.foods {
		if food.ID == id {
			food := food
			return &food, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogue) FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Food
	for _, id := range ids {
		for _, food := range f.foods {
			if food.ID == id {
				out = append(out, food)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCatalogue) FindByCategoryName(ctx context.Context, name string) ([]models.Food, error) {
	f.calls++
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
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := append([]models.Food(nil), f.foods...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].CaloriesPer100g, out[j].CaloriesPer100g
		if a == nil || b == nil {
			return a != nil
		}
		if ascending {
			return *a < *b
		}
		return *a > *b
	})
	return out, nil
}

func (f *fakeCatalogue) FindWithoutAllergen(ctx context.Context) ([]models.Food, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Food
	for _, food := range f.foods {
		if !food.HasAllergen() {
			out = append(out, food)
		}
	}
	return out, nil
}

func (f *fakeCatalogue) FindMealsInDateRange(ctx context.Context, start, end time.Time) ([]models.Meal, error) {
	return nil, errors.New("not used")
}

func (f *fakeCatalogue) SaveMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	return nil, errors.New("not used")
}

type observed struct {
	kind     string
	guests   int
	calories float64
}

type fakeObserver struct {
	seen []observed
}

func (o *fakeObserver) ObserveBuffet(kind string, guests int, totalCalories float64) {
	o.seen = append(o.seen, observed{kind, guests, totalCalories})
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
