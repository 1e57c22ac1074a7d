package buffet

import (
	"context"
	"errors"
	"testing"

	"buffet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(c *fakeCatalogue) (*Service, *fakeObserver) {
	obs := &fakeObserver{}
	return NewService(c, obs, zap.NewNop()), obs
}

func TestQuantity(t *testing.T) {
	for _, g := range []int{1, 4, 10, 25, 31, 200} {
		assert.InDelta(t, 0.18*float64(g), Quantity(g), 1e-9, "guests=%d", g)
	}
}

func TestCompute_SingleChicken(t *testing.T) {
	c := &fakeCatalogue{}
	c.add(1, "Poulet", models.CategoryMeat, floatPtr(165), nil)
	svc, obs := newTestService(c)

	r, err := svc.Compute(context.Background(), 10, []uint{1})
	require.NoError(t, err)

	require.Len(t, r.Lines, 1)
	assert.Equal(t, 10, r.Guests)
	assert.InDelta(t, 1.8, r.Lines[0].QuantityKg, 1e-9)
	assert.InDelta(t, 2970.0, r.Lines[0].Calories, 1e-9)
	assert.Equal(t, "Viandes", r.Lines[0].Category)
	assert.InDelta(t, 2970.0, r.TotalCalories, 1e-9)
	assert.Equal(t, "Aucune allergie détectée", r.Allergens)

	require.Len(t, obs.seen, 1)
	assert.Equal(t, "custom", obs.seen[0].kind)
}

func TestCompute_LinesFollowInputOrderAndSkipUnknown(t *testing.T) {
	c := &fakeCatalogue{}
	c.add(1, "Poulet", models.CategoryMeat, floatPtr(165), nil)
	c.add(2, "Carotte", models.CategoryVegetable, floatPtr(41), strPtr(models.NoKnownAllergen))
	c.add(3, "Pain", models.CategoryGrain, nil, strPtr("Gluten"))
	svc, _ := newTestService(c)

	r, err := svc.Compute(context.Background(), 5, []uint{3, 42, 1, 2})
	require.NoError(t, err)

	var ids []uint
	var sum float64
	for _, l := range r.Lines {
		ids = append(ids, l.FoodID)
		sum += l.Calories
	}
	assert.Equal(t, []uint{3, 1, 2}, ids)
	assert.Equal(t, sum, r.TotalCalories)
	assert.Equal(t, 0.0, r.Lines[0].Calories, "food without density contributes nothing")
	assert.Equal(t, "Gluten", r.Allergens)
}

func TestCompute_AllergenSummaryDeduplicates(t *testing.T) {
	c := &fakeCatalogue{}
	c.add(1, "Pain", models.CategoryGrain, floatPtr(265), strPtr("Gluten"))
	c.add(2, "Yaourt", models.CategoryDairy, floatPtr(59), strPtr("Lait"))
	c.add(3, "Pâtes", models.CategoryGrain, floatPtr(131), strPtr("Gluten"))
	svc, _ := newTestService(c)

	r, err := svc.Compute(context.Background(), 3, []uint{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "Gluten; Lait", r.Allergens)
}

func TestCompute_Errors(t *testing.T) {
	c := &fakeCatalogue{}
	c.add(1, "Poulet", models.CategoryMeat, floatPtr(165), nil)
	svc, obs := newTestService(c)
	ctx := context.Background()

	_, err := svc.Compute(ctx, 0, []uint{1})
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = svc.Compute(ctx, -3, []uint{1})
	assert.ErrorIs(t, err, ErrInvalidGuestCount)

	_, err = svc.Compute(ctx, 10, []uint{7, 8})
	assert.ErrorIs(t, err, ErrEmptySelection)

	_, err = svc.Compute(ctx, 10, nil)
	assert.ErrorIs(t, err, ErrEmptySelection)

	boom := errors.New("database down")
	c.err = boom
	_, err = svc.Compute(ctx, 10, []uint{1})
	assert.ErrorIs(t, err, boom)

	assert.Empty(t, obs.seen)
}

func TestCaloriesPerGuest(t *testing.T) {
	assert.Equal(t, 297.0, CaloriesPerGuest(&Result{Guests: 10, TotalCalories: 2970}))
	assert.Equal(t, 0.0, CaloriesPerGuest(&Result{Guests: 0, TotalCalories: 2970}))
	assert.Equal(t, 0.0, CaloriesPerGuest(nil))
}
