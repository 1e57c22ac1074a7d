package api

import (
	"net/http"
	"time"

	"buffet/internal/models"

	"github.com/gin-gonic/gin"
)

// MealRequest is the body of a meal to save
type MealRequest struct {
	Name        string          `json:"nom"`
	Description string          `json:"description"`
	Date        string          `json:"dateRepas" binding:"required"`
	Slot        models.MealSlot `json:"typeRepas" binding:"required"`
	Attendees   int             `json:"nombrePersonnes" binding:"min=0"`
	FoodIDs     []uint          `json:"aliments"`
}

func (s *Server) handleGetWeek(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	week, err := s.planner.GetWeek(c.Request.Context(), date)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

func (s *Server) handleGenerateWeek(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	week, err := s.planner.GenerateWeek(c.Request.Context(), date)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

func (s *Server) handleWeekStatistics(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	stats, err := s.planner.WeeklyStatistics(c.Request.Context(), date)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleMealsOfDay(c *gin.Context) {
	date, ok := dateQuery(c)
	if !ok {
		return
	}

	meals, err := s.planner.MealsOfDay(c.Request.Context(), date)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (s *Server) handleSaveMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		badRequest(c, "dateRepas must use the YYYY-MM-DD format")
		return
	}

	meal := &models.Meal{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Slot:        req.Slot,
		Attendees:   req.Attendees,
		FoodIDs:     models.IDList(req.FoodIDs),
	}
	saved, err := s.planner.SaveMeal(c.Request.Context(), meal)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.hub.Broadcast(MealEvent{Type: "meal_saved", Meal: saved})
	c.JSON(http.StatusCreated, saved)
}
