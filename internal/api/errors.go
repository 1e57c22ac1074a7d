package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"buffet/internal/buffet"
	"buffet/internal/catalogue"
	"buffet/internal/planner"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// dateLayout is the format of date query parameters
const dateLayout = "2006-01-02"

// respondError writes err with the status its kind maps to
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, buffet.ErrInvalidGuestCount),
		errors.Is(err, buffet.ErrEmptySelection),
		errors.Is(err, planner.ErrInvalidSlot):
		status = http.StatusBadRequest
	case errors.Is(err, catalogue.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalogue.ErrDuplicateName):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func guestsParam(c *gin.Context) (int, bool) {
	guests, err := strconv.Atoi(c.Param("guests"))
	if err != nil {
		badRequest(c, "guest count must be a number")
		return 0, false
	}
	return guests, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// dateQuery reads the date query parameter, defaulting to today
func dateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		badRequest(c, "date must use the YYYY-MM-DD format")
		return time.Time{}, false
	}
	return date, true
}
