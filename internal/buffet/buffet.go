// Package buffet computes food quantities, calories and allergen summaries
// for one-off buffets.
package buffet

import (
	"errors"

	"buffet/internal/catalogue"

	"go.uber.org/zap"
)

var (
	// ErrInvalidGuestCount is returned when the guest count is not positive.
	ErrInvalidGuestCount = errors.New("guest count must be at least 1")
	// ErrEmptySelection is returned when none of the requested foods exist.
	ErrEmptySelection = errors.New("no food found for the given ids")
)

// Kind identifies how the foods of a buffet were chosen
type Kind string

const (
	KindCustom          Kind = "custom"
	KindEconomical      Kind = "economical"
	KindBalanced        Kind = "balanced"
	KindAllergyAvoiding Kind = "allergy_avoiding"
)

// Observer is notified of every computed buffet
type Observer interface {
	ObserveBuffet(kind string, guests int, totalCalories float64)
}

// Service computes buffets from the catalogue
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
