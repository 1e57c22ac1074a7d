// Package seed imports categories and foods from a JSON file.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"buffet/internal/catalogue"
	"buffet/internal/models"

	"go.uber.org/zap"
)

// Store is the part of the catalogue store the import writes through
type Store interface {
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	CreateFood(ctx context.Context, food *models.Food) error
}

var _ Store = (*catalogue.Store)(nil)

// File is the layout of a seed file
type File struct {
	Categories []CategoryRecord `json:"categories"`
	Foods      []FoodRecord     `json:"aliments"`
}

// CategoryRecord is a category entry of a seed file
type CategoryRecord struct {
	Name        string `json:"nom"`
	Description string `json:"description"`
}

// FoodRecord is a food entry of a seed file
type FoodRecord struct {
	Name            string   `json:"nom"`
	Description     string   `json:"description"`
	CaloriesPer100g *float64 `json:"calories_per_100g"`
	Allergens       *string  `json:"allergies"`
	ImageURL        string   `json:"image_url"`
	CategoryName    string   `json:"categorie_nom"`
}

// Report counts what an import did
type Report struct {
	CategoriesCreated int `json:"categoriesCreees"`
	CategoriesReused  int `json:"categoriesExistantes"`
	FoodsCreated      int `json:"alimentsCrees"`
	FoodsSkipped      int `json:"alimentsIgnores"`
}

// Load imports the seed file at path
func Load(ctx context.Context, store *catalogue.Store, path string, logger *zap.Logger) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	report, err := Import(ctx, store, f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	return report, nil
}

// Import reads a seed document from r and writes it to store in a single
// transaction. Categories that already exist are reused; foods naming an
// unknown category are skipped. Nothing is written when the import fails.
func Import(ctx context.Context, store *catalogue.Store, r io.Reader, logger *zap.Logger) (*Report, error) {
	var file File
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}

	var report *Report
	err := store.Transaction(ctx, func(tx *catalogue.Store) error {
		var err error
		report, err = write(ctx, tx, &file, logger)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("seed data imported",
		zap.Int("categories_created", report.CategoriesCreated),
		zap.Int("categories_reused", report.CategoriesReused),
		zap.Int("foods_created", report.FoodsCreated),
		zap.Int("foods_skipped", report.FoodsSkipped))
	return report, nil
}

func write(ctx context.Context, store Store, file *File, logger *zap.Logger) (*Report, error) {
	report := &Report{}
	categories := make(map[string]uint, len(file.Categories))

	for _, rec := range file.Categories {
		if rec.Name == "" {
			return nil, errors.New("category without a name")
		}
		existing, err := store.FindCategoryByName(ctx, rec.Name)
		switch {
		case err == nil:
			categories[rec.Name] = existing.ID
			report.CategoriesReused++
			continue
		case !errors.Is(err, catalogue.ErrNotFound):
			return nil, err
		}

		category := &models.Category{Name: rec.Name, Description: rec.Description}
		if err := store.CreateCategory(ctx, category); err != nil {
			return nil, err
		}
		categories[rec.Name] = category.ID
		report.CategoriesCreated++
		logger.Debug("category imported", zap.String("name", rec.Name))
	}

	for _, rec := range file.Foods {
		if rec.Name == "" {
			return nil, fmt.Errorf("food without a name in category %q", rec.CategoryName)
		}
		categoryID, ok := categories[rec.CategoryName]
		if !ok {
			existing, err := store.FindCategoryByName(ctx, rec.CategoryName)
			if err != nil && !errors.Is(err, catalogue.ErrNotFound) {
				return nil, err
			}
			if existing == nil {
				logger.Warn("category not found for food, skipping",
					zap.String("food", rec.Name),
					zap.String("category", rec.CategoryName))
				report.FoodsSkipped++
				continue
			}
			categoryID = existing.ID
			categories[rec.CategoryName] = categoryID
		}

		food := &models.Food{
			Name:            rec.Name,
			Description:     rec.Description,
			CaloriesPer100g: rec.CaloriesPer100g,
			Allergens:       rec.Allergens,
			ImageURL:        rec.ImageURL,
			CategoryID:      categoryID,
		}
		if err := store.CreateFood(ctx, food); err != nil {
			return nil, err
		}
		report.FoodsCreated++
	}
	return report, nil
}
