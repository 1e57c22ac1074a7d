package seed

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"buffet/internal/catalogue"
	"buffet/internal/database"
	"buffet/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sample = `{
  "categories": [
    {"nom": "Viandes", "description": "Viandes rouges et blanches"},
    {"nom": "Légumes", "description": "Légumes frais"}
  ],
  "aliments": [
    {"nom": "Poulet", "description": "Blanc de poulet", "calories_per_100g": 165, "allergies": null, "image_url": "poulet.jpg", "categorie_nom": "Viandes"},
    {"nom": "Carotte", "calories_per_100g": 41, "allergies": "Aucune allergie connue", "categorie_nom": "Légumes"},
    {"nom": "Saumon", "calories_per_100g": 208, "allergies": "Poisson", "categorie_nom": "Poissons"},
    {"nom": "Salade", "categorie_nom": "Légumes"}
  ]
}`

func newStore(t *testing.T) *catalogue.Store {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:", false, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return catalogue.NewStore(db, zap.NewNop())
}

func TestImport(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	report, err := Import(ctx, store, strings.NewReader(sample), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, &Report{CategoriesCreated: 2, FoodsCreated: 3, FoodsSkipped: 1}, report)

	meats, err := store.FindByCategoryName(ctx, models.CategoryMeat)
	require.NoError(t, err)
	require.Len(t, meats, 1)
	assert.Equal(t, "Poulet", meats[0].Name)
	assert.Equal(t, 165.0, *meats[0].CaloriesPer100g)
	assert.Nil(t, meats[0].Allergens)
	assert.Equal(t, "poulet.jpg", meats[0].ImageURL)

	veg, err := store.FindByCategoryName(ctx, models.CategoryVegetable)
	require.NoError(t, err)
	require.Len(t, veg, 2)
	assert.Nil(t, veg[1].CaloriesPer100g)
}

func TestImport_ReusesExistingCategories(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := Import(ctx, store, strings.NewReader(sample), zap.NewNop())
	require.NoError(t, err)
	report, err := Import(ctx, store, strings.NewReader(sample), zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 0, report.CategoriesCreated)
	assert.Equal(t, 2, report.CategoriesReused)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestImport_InvalidJSON(t *testing.T) {
	_, err := Import(context.Background(), newStore(t), strings.NewReader("{"), zap.NewNop())
	assert.Error(t, err)
}

func TestImport_FailureWritesNothing(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	broken := `{
  "categories": [{"nom": "Viandes"}, {"nom": "Fruits"}],
  "aliments": [
    {"nom": "Poulet", "calories_per_100g": 165, "categorie_nom": "Viandes"},
    {"nom": "", "categorie_nom": "Fruits"}
  ]
}`
	_, err := Import(ctx, store, strings.NewReader(broken), zap.NewNop())
	require.Error(t, err)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
	foods, err := store.ListFoods(ctx)
	require.NoError(t, err)
	assert.Empty(t, foods)

	report, err := Import(ctx, store, strings.NewReader(sample), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, report.CategoriesCreated)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	report, err := Load(context.Background(), newStore(t), path, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, report.FoodsCreated)

	_, err = Load(context.Background(), newStore(t), filepath.Join(t.TempDir(), "missing.json"), zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_SampleDataFile(t *testing.T) {
	store := newStore(t)
	report, err := Load(context.Background(), store, "../../data/aliments.json", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 6, report.CategoriesCreated)
	assert.Zero(t, report.FoodsSkipped)
	assert.Greater(t, report.FoodsCreated, 0)
}
