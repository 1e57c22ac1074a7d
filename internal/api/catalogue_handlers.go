package api

import (
	"net/http"
	"strconv"

	"buffet/internal/catalogue"
	"buffet/internal/models"

	"github.com/gin-gonic/gin"
)

// FoodRequest is the editable part of a food
type FoodRequest struct {
	Name            string   `json:"nom" binding:"required"`
	Description     string   `json:"description"`
	CaloriesPer100g *float64 `json:"caloriesPer100g" binding:"omitempty,min=0"`
	Allergens       *string  `json:"allergies"`
	ImageURL        string   `json:"imageUrl"`
	CategoryID      uint     `json:"categorieId" binding:"required"`
}

func (r FoodRequest) food() models.Food {
	return models.Food{
		Name:            r.Name,
		Description:     r.Description,
		CaloriesPer100g: r.CaloriesPer100g,
		Allergens:       r.Allergens,
		ImageURL:        r.ImageURL,
		CategoryID:      r.CategoryID,
	}
}

// CategoryRequest is the editable part of a category
type CategoryRequest struct {
	Name        string `json:"nom" binding:"required"`
	Description string `json:"description"`
}

// CategoryWithFoods is a category and the foods that reference it
type CategoryWithFoods struct {
	models.Category
	Foods []models.Food `json:"aliments"`
}

func (s *Server) writeFoods(c *gin.Context, foods []models.Food, err error) {
	if err != nil {
		s.respondError(c, err)
		return
	}
	if foods == nil {
		foods = []models.Food{}
	}
	c.JSON(http.StatusOK, foods)
}

func (s *Server) handleListFoods(c *gin.Context) {
	foods, err := s.store.ListFoods(c.Request.Context())
	s.writeFoods(c, foods, err)
}

func (s *Server) handleGetFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := s.store.FindByID(c.Request.Context(), id)
	if err == nil && food == nil {
		err = catalogue.ErrNotFound
	}
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (s *Server) handleCreateFood(c *gin.Context) {
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	food := req.food()
	if err := s.store.CreateFood(c.Request.Context(), &food); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (s *Server) handleUpdateFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	food, err := s.store.UpdateFood(c.Request.Context(), id, req.food())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func (s *Server) handleDeleteFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.store.DeleteFood(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleFoodsByCategory(c *gin.Context) {
	foods, err := s.store.FindByCategoryName(c.Request.Context(), c.Param("name"))
	s.writeFoods(c, foods, err)
}

func (s *Server) handleSearchFoods(c *gin.Context) {
	query, ok := c.GetQuery("nom")
	if !ok {
		badRequest(c, "query parameter nom is required")
		return
	}
	foods, err := s.store.SearchFoodsByName(c.Request.Context(), query)
	s.writeFoods(c, foods, err)
}

func (s *Server) handleFoodsByCalories(c *gin.Context) {
	lo, errMin := strconv.ParseFloat(c.Query("minCalories"), 64)
	hi, errMax := strconv.ParseFloat(c.Query("maxCalories"), 64)
	if errMin != nil || errMax != nil {
		badRequest(c, "minCalories and maxCalories must be numbers")
		return
	}
	if lo > hi {
		badRequest(c, "minCalories must not exceed maxCalories")
		return
	}
	foods, err := s.store.FindByCalorieRange(c.Request.Context(), lo, hi)
	s.writeFoods(c, foods, err)
}

func (s *Server) handleFoodsByAllergen(c *gin.Context) {
	allergen, ok := c.GetQuery("allergie")
	if !ok {
		badRequest(c, "query parameter allergie is required")
		return
	}
	foods, err := s.store.FindByAllergen(c.Request.Context(), allergen)
	s.writeFoods(c, foods, err)
}

func (s *Server) handleFoodsWithoutAllergen(c *gin.Context) {
	foods, err := s.store.FindWithoutAllergen(c.Request.Context())
	s.writeFoods(c, foods, err)
}

func (s *Server) handleTopCaloric(c *gin.Context) {
	s.foodsByCalories(c, false)
}

func (s *Server) handleLeastCaloric(c *gin.Context) {
	s.foodsByCalories(c, true)
}

// foodsByCalories lists foods by density, truncated to the optional limit
// query parameter.
func (s *Server) foodsByCalories(c *gin.Context, ascending bool) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			badRequest(c, "limit must be a positive number")
			return
		}
		limit = n
	}

	foods, err := s.store.FindAllOrderedByCalories(c.Request.Context(), ascending)
	if limit > 0 && len(foods) > limit {
		foods = foods[:limit]
	}
	s.writeFoods(c, foods, err)
}

func (s *Server) handleListCategories(c *gin.Context) {
	categories, err := s.store.ListCategories(c.Request.Context())
	s.writeCategories(c, categories, err)
}

func (s *Server) writeCategories(c *gin.Context, categories []models.Category, err error) {
	if err != nil {
		s.respondError(c, err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) handleGetCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	category, err := s.store.GetCategory(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) handleCategoryByName(c *gin.Context) {
	category, err := s.store.FindCategoryByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	category := &models.Category{Name: req.Name, Description: req.Description}
	if err := s.store.CreateCategory(c.Request.Context(), category); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	category, err := s.store.UpdateCategory(c.Request.Context(), id, models.Category{Name: req.Name, Description: req.Description})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := s.store.DeleteCategory(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSearchCategories(c *gin.Context) {
	query, ok := c.GetQuery("nom")
	if !ok {
		badRequest(c, "query parameter nom is required")
		return
	}
	categories, err := s.store.SearchCategories(c.Request.Context(), query)
	s.writeCategories(c, categories, err)
}

func (s *Server) handleCategoryWithFoods(c *gin.Context) {
	ctx := c.Request.Context()
	category, err := s.store.FindCategoryByName(ctx, c.Param("name"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	withFoods, err := s.withFoods(c, *category)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withFoods)
}

func (s *Server) handleCategoriesWithFoods(c *gin.Context) {
	categories, err := s.store.ListCategories(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	out := make([]CategoryWithFoods, 0, len(categories))
	for _, category := range categories {
		withFoods, err := s.withFoods(c, category)
		if err != nil {
			s.respondError(c, err)
			return
		}
		out = append(out, withFoods)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) withFoods(c *gin.Context, category models.Category) (CategoryWithFoods, error) {
	foods, err := s.store.FindByCategoryName(c.Request.Context(), category.Name)
	if err != nil {
		return CategoryWithFoods{}, err
	}
	if foods == nil {
		foods = []models.Food{}
	}
	return CategoryWithFoods{Category: category, Foods: foods}, nil
}

func (s *Server) handleCategoryStatistics(c *gin.Context) {
	counts, err := s.store.CountFoodsByCategory(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	if counts == nil {
		counts = []catalogue.CategoryCount{}
	}
	c.JSON(http.StatusOK, counts)
}
