// Package planner fills weeks with breakfast, lunch and dinner and aggregates
// their nutritional statistics.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buffet/internal/catalogue"
	"buffet/internal/models"

	"go.uber.org/zap"
)

// ErrInvalidSlot is returned when a meal is saved with an unknown slot
var ErrInvalidSlot = errors.New("unknown meal slot")

// Source tells whether a week was read from storage or generated
type Source string

const (
	SourcePersisted Source = "persisted"
	SourceGenerated Source = "generated"
)

// Observer is notified of every week served
type Observer interface {
	ObserveWeek(source string)
}

// Service plans weeks from the catalogue
type Service struct {
	catalogue catalogue.Catalogue
	observer  Observer
	logger    *zap.Logger
}

// NewService creates a new Service. observer may be nil.
func NewService(c catalogue.Catalogue, observer Observer, logger *zap.Logger) *Service {
	return &Service{
		catalogue: c,
		observer:  observer,
		logger:    logger,
	}
}

// WeekPlan is the seven days from Monday to Sunday and their meals
type WeekPlan struct {
	Monday time.Time     `json:"lundi"`
	Dates  []time.Time   `json:"dates"`
	Meals  []models.Meal `json:"repas"`
	Source Source        `json:"source"`
}

// MostRecentMonday returns the Monday on or before t, at midnight UTC.
func MostRecentMonday(t time.Time) time.Time {
	day := models.Day(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func weekDates(monday time.Time) []time.Time {
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}

// MealName returns the generated name of the slot's meal on date, such as
// "Déjeuner du Monday".
func MealName(slot models.MealSlot, date time.Time) string {
	return fmt.Sprintf("%s du %s", slot.Label(), date.Weekday())
}

// GetWeek returns the stored meals of the week containing date when at least
// one exists, and a generated week otherwise.
func (s *Service) GetWeek(ctx context.Context, date time.Time) (*WeekPlan, error) {
	monday := MostRecentMonday(date)
	dates := weekDates(monday)

	stored, err := s.catalogue.FindMealsInDateRange(ctx, monday, dates[6])
	if err != nil {
		return nil, fmt.Errorf("failed to load stored week: %w", err)
	}
	if len(stored) == 0 {
		return s.GenerateWeek(ctx, date)
	}

	s.logger.Debug("serving stored week",
		zap.Time("monday", monday),
		zap.Int("meals", len(stored)))
	s.observe(SourcePersisted)
	return &WeekPlan{
		Monday: monday,
		Dates:  dates,
		Meals:  stored,
		Source: SourcePersisted,
	}, nil
}

// SaveMeal validates and stores a meal. A missing name is generated from the
// slot and date, and a non-positive attendee count falls back to the default.
func (s *Service) SaveMeal(ctx context.Context, meal *models.Meal) (*models.Meal, error) {
	if !meal.Slot.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSlot, meal.Slot)
	}
	meal.Date = models.Day(meal.Date)
	if meal.Name == "" {
		meal.Name = MealName(meal.Slot, meal.Date)
	}
	if meal.Attendees <= 0 {
		meal.Attendees = models.DefaultAttendees
	}

	saved, err := s.catalogue.SaveMeal(ctx, meal)
	if err != nil {
		return nil, fmt.Errorf("failed to save meal: %w", err)
	}
	s.logger.Info("meal saved",
		zap.Uint("id", saved.ID),
		zap.String("name", saved.Name),
		zap.Int("foods", len(saved.Foods)))
	return saved, nil
}

// MealsOfDay returns the stored meals of date
func (s *Service) MealsOfDay(ctx context.Context, date time.Time) ([]models.Meal, error) {
	day := models.Day(date)
	meals, err := s.catalogue.FindMealsInDateRange(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals of day: %w", err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return meals, nil
}

func (s *Service) observe(source Source) {
	if s.observer != nil {
		s.observer.ObserveWeek(string(source))
	}
}
