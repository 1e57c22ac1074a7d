// Package api exposes the buffet, planning and catalogue operations over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"buffet/internal/buffet"
	"buffet/internal/catalogue"
	"buffet/internal/models"
	"buffet/internal/monitoring"
	"buffet/internal/planner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store is the catalogue storage the management endpoints work on
type Store interface {
	FindByID(ctx context.Context, id uint) (*models.Food, error)
	FindByCategoryName(ctx context.Context, name string) ([]models.Food, error)
	FindAllOrderedByCalories(ctx context.Context, ascending bool) ([]models.Food, error)
	FindWithoutAllergen(ctx context.Context) ([]models.Food, error)
	ListFoods(ctx context.Context) ([]models.Food, error)
	CreateFood(ctx context.Context, food *models.Food) error
	UpdateFood(ctx context.Context, id uint, changes models.Food) (*models.Food, error)
	DeleteFood(ctx context.Context, id uint) error
	SearchFoodsByName(ctx context.Context, query string) ([]models.Food, error)
	FindByAllergen(ctx context.Context, allergen string) ([]models.Food, error)
	FindByCalorieRange(ctx context.Context, min, max float64) ([]models.Food, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*models.Category, error)
	SearchCategories(ctx context.Context, query string) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uint, changes models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
	CountFoodsByCategory(ctx context.Context) ([]catalogue.CategoryCount, error)
}

// Server represents the HTTP API of the buffet service
type Server struct {
	router  *gin.Engine
	store   Store
	buffets *buffet.Service
	planner *planner.Service
	metrics *monitoring.Collector
	hub     *Hub
	logger  *zap.Logger
}

// Option configures a Server
type Option func(*options)

type options struct {
	allowedOrigins []string
}

// WithAllowedOrigins restricts cross-origin requests to origins
func WithAllowedOrigins(origins []string) Option {
	return func(o *options) {
		o.allowedOrigins = origins
	}
}

// NewServer creates a new API server instance
func NewServer(store Store, buffets *buffet.Service, plans *planner.Service, metrics *monitoring.Collector, logger *zap.Logger, opts ...Option) *Server {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		corsPolicy(o.allowedOrigins),
		requestLogger(logger),
		requestMetrics(metrics),
	)

	s := &Server{
		router:  router,
		store:   store,
		buffets: buffets,
		planner: plans,
		metrics: metrics,
		hub:     NewHub(logger, o.allowedOrigins),
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/ws/meals", s.hub.ServeWS)

	api := s.router.Group("/api")

	b := api.Group("/buffet")
	{
		b.POST("/calculer", s.handleComputeBuffet)
		b.GET("/recommandations/:guests", s.handleRecommend)
		b.GET("/economique/:guests", s.handleEconomical)
		b.GET("/equilibre/:guests", s.handleBalanced)
		b.GET("/sans-allergie/:guests", s.handleAllergyAvoiding)
		b.POST("/statistiques", s.handleBuffetStatistics)
	}

	p := api.Group("/planning")
	{
		p.GET("/semaine", s.handleGetWeek)
		p.POST("/generer", s.handleGenerateWeek)
		p.GET("/statistiques", s.handleWeekStatistics)
		p.GET("/jour", s.handleMealsOfDay)
		p.POST("/repas", s.handleSaveMeal)
	}

	f := api.Group("/aliments")
	{
		f.GET("", s.handleListFoods)
		f.POST("", s.handleCreateFood)
		f.GET("/:id", s.handleGetFood)
		f.PUT("/:id", s.handleUpdateFood)
		f.DELETE("/:id", s.handleDeleteFood)
		f.GET("/categorie/:name", s.handleFoodsByCategory)
		f.GET("/recherche", s.handleSearchFoods)
		f.GET("/calories", s.handleFoodsByCalories)
		f.GET("/allergies", s.handleFoodsByAllergen)
		f.GET("/sans-allergie", s.handleFoodsWithoutAllergen)
		f.GET("/top-caloriques", s.handleTopCaloric)
		f.GET("/moins-caloriques", s.handleLeastCaloric)
	}

	c := api.Group("/categories")
	{
		c.GET("", s.handleListCategories)
		c.POST("", s.handleCreateCategory)
		c.GET("/:id", s.handleGetCategory)
		c.PUT("/:id", s.handleUpdateCategory)
		c.DELETE("/:id", s.handleDeleteCategory)
		c.GET("/nom/:name", s.handleCategoryByName)
		c.GET("/nom/:name/avec-aliments", s.handleCategoryWithFoods)
		c.GET("/recherche", s.handleSearchCategories)
		c.GET("/avec-aliments", s.handleCategoriesWithFoods)
		c.GET("/statistiques", s.handleCategoryStatistics)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Hub returns the hub saved meals are broadcast on
func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Buffet API is running",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"metrics": s.metrics.Status(),
	})
}
