package api

import (
	"net/http"

	"buffet/internal/buffet"

	"github.com/gin-gonic/gin"
)

// BuffetRequest asks for a buffet of the given foods
type BuffetRequest struct {
	Guests  int    `json:"invites" binding:"required,min=1"`
	FoodIDs []uint `json:"aliments" binding:"required,min=1"`
}

func (s *Server) handleComputeBuffet(c *gin.Context) {
	var req BuffetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := s.buffets.Compute(c.Request.Context(), req.Guests, req.FoodIDs)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRecommend(c *gin.Context) {
	guests, ok := guestsParam(c)
	if !ok {
		return
	}

	foods, err := s.buffets.RecommendFoods(c.Request.Context(), guests)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, foods)
}

func (s *Server) handleEconomical(c *gin.Context) {
	guests, ok := guestsParam(c)
	if !ok {
		return
	}
	s.writeBuffet(c)(s.buffets.Economical(c.Request.Context(), guests))
}

func (s *Server) handleBalanced(c *gin.Context) {
	guests, ok := guestsParam(c)
	if !ok {
		return
	}
	s.writeBuffet(c)(s.buffets.Balanced(c.Request.Context(), guests))
}

func (s *Server) handleAllergyAvoiding(c *gin.Context) {
	guests, ok := guestsParam(c)
	if !ok {
		return
	}
	allergen := c.Query("allergie")
	s.writeBuffet(c)(s.buffets.AllergyAvoiding(c.Request.Context(), guests, allergen))
}

func (s *Server) writeBuffet(c *gin.Context) func(*buffet.Result, error) {
	return func(result *buffet.Result, err error) {
		if err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) handleBuffetStatistics(c *gin.Context) {
	var result buffet.Result
	if err := c.ShouldBindJSON(&result); err != nil {
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"caloriesParPersonne": buffet.CaloriesPerGuest(&result),
		"caloriesTotales":     result.TotalCalories,
		"nombreInvites":       result.Guests,
		"allergiesPresentes":  result.Allergens,
	})
}
