package catalogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"buffet/internal/models"

	"github.com/jinzhu/gorm"
	"go.uber.org/zap"
)

// Store is the gorm-backed catalogue
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ Catalogue = (*Store)(nil)

// NewStore creates a new Store
func NewStore(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Transaction runs fn against a store bound to one database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db := s.db.Begin()
	if db.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", db.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			db.Rollback()
			panic(r)
		}
	}()

	if err := fn(&Store{db: db, logger: s.logger}); err != nil {
		if rbErr := db.Rollback().Error; rbErr != nil {
			s.logger.Warn("failed to roll back transaction", zap.Error(rbErr))
		}
		return err
	}
	if err := db.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) foods() *gorm.DB {
	return s.db.Preload("Category")
}

// writer saves a record without touching its associations.
func (s *Store) writer() *gorm.DB {
	return s.db.Set("gorm:save_associations", false)
}

// FindByID retrieves a food with its category
func (s *Store) FindByID(ctx context.Context, id uint) (*models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var food models.Food
	if err := s.foods().Where("id = ?", id).First(&food).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get food %d: %w", id, err)
	}
	return &food, nil
}

// FindByIDs retrieves foods in the order of ids
func (s *Store) FindByIDs(ctx context.Context, ids []uint) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Food{}, nil
	}
	var foods []models.Food
	if err := s.foods().Where("id IN (?)", ids).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to get foods by ids: %w", err)
	}
	return orderByIDs(ids, foods), nil
}

// FindByCategoryName retrieves the foods of a category, ordered by id
func (s *Store) FindByCategoryName(ctx context.Context, name string) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var foods []models.Food
	err := s.foods().
		Select("foods.*").
		Joins("JOIN categories ON categories.id = foods.category_id AND categories.deleted_at IS NULL").
		Where("categories.name = ?", name).
		Order("foods.id").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get foods of category %q: %w", name, err)
	}
	return foods, nil
}

// FindAllOrderedByCalories retrieves every food sorted by calorie density.
// Foods without a density come last in both directions.
func (s *Store) FindAllOrderedByCalories(ctx context.Context, ascending bool) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	var foods []models.Food
	err := s.foods().
		Order("calories_per_100g IS NULL").
		Order("calories_per_100g " + dir).
		Order("id").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list foods by calories: %w", err)
	}
	return foods, nil
}

// FindWithoutAllergen retrieves foods with no allergen, ordered by id
func (s *Store) FindWithoutAllergen(ctx context.Context) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var foods []models.Food
	err := s.foods().
		Where("allergens IS NULL OR allergens = ?", models.NoKnownAllergen).
		Order("id").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list foods without allergen: %w", err)
	}
	return foods, nil
}

// FindMealsInDateRange retrieves stored meals between start and end inclusive
func (s *Store) FindMealsInDateRange(ctx context.Context, start, end time.Time) ([]models.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var meals []models.Meal
	err := s.db.
		Where("meal_date BETWEEN ? AND ?", models.Day(start), models.Day(end)).
		Order("meal_date").
		Order("id").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	if err := s.resolveFoods(ctx, meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// FindMealsOfDay retrieves the stored meals of a single date
func (s *Store) FindMealsOfDay(ctx context.Context, date time.Time) ([]models.Meal, error) {
	return s.FindMealsInDateRange(ctx, date, date)
}

// SaveMeal inserts or updates a meal
func (s *Store) SaveMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	meal.SyncFoodIDs()
	meal.Date = models.Day(meal.Date)
	if meal.Attendees <= 0 {
		meal.Attendees = models.DefaultAttendees
	}

	if err := s.db.Save(meal).Error; err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}

	if len(meal.Foods) == 0 && len(meal.FoodIDs) > 0 {
		meals := []models.Meal{*meal}
		if err := s.resolveFoods(ctx, meals); err != nil {
			return nil, err
		}
		meal.Foods = meals[0].Foods
	}

	s.logger.Debug("meal saved",
		zap.Uint("id", meal.ID),
		zap.Time("date", meal.Date),
		zap.String("slot", string(meal.Slot)))
	return meal, nil
}

// resolveFoods loads the foods referenced by the meals with a single query.
func (s *Store) resolveFoods(ctx context.Context, meals []models.Meal) error {
	seen := make(map[uint]bool)
	var ids []uint
	for _, m := range meals {
		for _, id := range m.FoodIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	foods, err := s.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range meals {
		meals[i].Foods = orderByIDs(meals[i].FoodIDs, foods)
	}
	return nil
}

// Catalogue management

// ListFoods retrieves every food ordered by id
func (s *Store) ListFoods(ctx context.Context) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var foods []models.Food
	if err := s.foods().Order("id").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	return foods, nil
}

// CreateFood inserts a new food. The category must exist.
func (s *Store) CreateFood(ctx context.Context, food *models.Food) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	category, err := s.GetCategory(ctx, food.CategoryID)
	if err != nil {
		return err
	}
	food.ID = 0
	if err := s.writer().Create(food).Error; err != nil {
		return fmt.Errorf("failed to create food: %w", err)
	}
	food.Category = *category
	return nil
}

// UpdateFood replaces the editable fields of a food
func (s *Store) UpdateFood(ctx context.Context, id uint, changes models.Food) (*models.Food, error) {
	food, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if food == nil {
		return nil, ErrNotFound
	}
	if changes.CategoryID != 0 && changes.CategoryID != food.CategoryID {
		category, err := s.GetCategory(ctx, changes.CategoryID)
		if err != nil {
			return nil, err
		}
		food.CategoryID = category.ID
		food.Category = *category
	}

	food.Name = changes.Name
	food.Description = changes.Description
	food.CaloriesPer100g = changes.CaloriesPer100g
	food.Allergens = changes.Allergens
	food.ImageURL = changes.ImageURL

	if err := s.writer().Save(food).Error; err != nil {
		return nil, fmt.Errorf("failed to update food %d: %w", id, err)
	}
	return food, nil
}

// DeleteFood soft-deletes a food
func (s *Store) DeleteFood(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	res := s.db.Where("id = ?", id).Delete(&models.Food{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete food %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchFoodsByName finds foods whose name contains query, ignoring case
func (s *Store) SearchFoodsByName(ctx context.Context, query string) ([]models.Food, error) {
	return s.findFoodsLike(ctx, "name", query)
}

// FindByAllergen finds foods whose allergen text contains allergen, ignoring case
func (s *Store) FindByAllergen(ctx context.Context, allergen string) ([]models.Food, error) {
	return s.findFoodsLike(ctx, "allergens", allergen)
}

func (s *Store) findFoodsLike(ctx context.Context, column, query string) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var foods []models.Food
	pattern := "%" + strings.ToLower(query) + "%"
	if err := s.foods().Where("LOWER("+column+") LIKE ?", pattern).Order("id").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to search foods by %s: %w", column, err)
	}
	return foods, nil
}

// FindByCalorieRange finds foods whose density lies within [min, max]
func (s *Store) FindByCalorieRange(ctx context.Context, min, max float64) ([]models.Food, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var foods []models.Food
	err := s.foods().
		Where("calories_per_100g BETWEEN ? AND ?", min, max).
		Order("calories_per_100g").
		Order("id").
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list foods by calorie range: %w", err)
	}
	return foods, nil
}

// ListCategories retrieves every category ordered by id
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory retrieves a category by id
func (s *Store) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	return s.findCategory(ctx, "id = ?", id)
}

// FindCategoryByName retrieves a category by its exact name
func (s *Store) FindCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	return s.findCategory(ctx, "name = ?", name)
}

func (s *Store) findCategory(ctx context.Context, query string, arg interface{}) (*models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var category models.Category
	if err := s.db.Where(query, arg).First(&category).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// SearchCategories finds categories whose name contains query, ignoring case
func (s *Store) SearchCategories(ctx context.Context, query string) ([]models.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var categories []models.Category
	pattern := "%" + strings.ToLower(query) + "%"
	if err := s.db.Where("LOWER(name) LIKE ?", pattern).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to search categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a new category. Names are unique.
func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	category.ID = 0
	if err := s.checkCategoryName(category.Name, 0); err != nil {
		return err
	}
	if err := s.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category %q: %w", category.Name, err)
	}
	return nil
}

// UpdateCategory replaces the name and description of a category
func (s *Store) UpdateCategory(ctx context.Context, id uint, changes models.Category) (*models.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategoryName(changes.Name, id); err != nil {
		return nil, err
	}
	category.Name = changes.Name
	category.Description = changes.Description
	if err := s.db.Save(category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return category, nil
}

// checkCategoryName fails with ErrDuplicateName when a category other than id
// holds name. Soft-deleted rows count, the unique index still covers them.
func (s *Store) checkCategoryName(name string, id uint) error {
	var existing models.Category
	err := s.db.Unscoped().Where("name = ?", name).First(&existing).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check category name: %w", err)
	case existing.ID != id:
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}

// DeleteCategory permanently removes a category together with its foods
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	if _, err := s.GetCategory(ctx, id); err != nil {
		return err
	}
	return s.Transaction(ctx, func(tx *Store) error {
		res := tx.db.Unscoped().Where("category_id = ?", id).Delete(&models.Food{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete foods of category %d: %w", id, res.Error)
		}
		if err := tx.db.Unscoped().Where("id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return fmt.Errorf("failed to delete category %d: %w", id, err)
		}
		s.logger.Debug("category deleted", zap.Uint("id", id), zap.Int64("foods", res.RowsAffected))
		return nil
	})
}

// CategoryCount is the number of foods in a category
type CategoryCount struct {
	Name  string `json:"nom"`
	Count int    `json:"nombreAliments"`
}

// CountFoodsByCategory counts the foods of every category, empty ones included
func (s *Store) CountFoodsByCategory(ctx context.Context) ([]CategoryCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.Table("categories").
		Select("categories.name, COUNT(foods.id)").
		Joins("LEFT JOIN foods ON foods.category_id = categories.id AND foods.deleted_at IS NULL").
		Where("categories.deleted_at IS NULL").
		Group("categories.id, categories.name").
		Order("categories.id").
		Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to count foods by category: %w", err)
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
