package buffet

const (
	// GramsPerGuest is the base amount of each food served per guest.
	GramsPerGuest = 150.0
	// VarietyFactor adds 20% per food to allow for variety.
	VarietyFactor = 1.2
)

// Quantity returns the kilograms of each food needed for guests guests.
// guests must be positive.
func Quantity(guests int) float64 {
	return (GramsPerGuest * float64(guests) * VarietyFactor) / 1000.0
}
