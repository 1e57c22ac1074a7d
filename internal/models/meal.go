package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/jinzhu/gorm"
)

// MealSlot is one of the three meals of a day
type MealSlot string

const (
	SlotBreakfast MealSlot = "PETIT_DEJEUNER"
	SlotLunch     MealSlot = "DEJEUNER"
	SlotDinner    MealSlot = "DINER"
)

// MealSlots lists the slots in the order they occur during a day.
var MealSlots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner}

// Label returns the display label used in generated meal names.
func (s MealSlot) Label() string {
	switch s {
	case SlotBreakfast:
		return "Petit déjeuner"
	case SlotLunch:
		return "Déjeuner"
	case SlotDinner:
		return "Dîner"
	default:
		return "Repas"
	}
}

// Valid reports whether s is a known slot
func (s MealSlot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner:
		return true
	}
	return false
}

// DefaultAttendees is the attendee count of a meal when none is given.
const DefaultAttendees = 4

// IDList is an ordered list of identifiers stored as a JSON array
type IDList []uint

// Value converts the list to a JSON string for storage
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]uint(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan converts the database value back to a list
func (l *IDList) Scan(value interface{}) error {
	if value == nil {
		*l = IDList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for IDList")
	}
}

// Meal is a planned meal. Foods are shared references into the catalogue:
// only their identifiers are stored, in order, and Foods is filled in when the
// meal is loaded or generated.
type Meal struct {
	gorm.Model
	Name        string    `gorm:"not null" json:"nom"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"column:meal_date;type:date;index;not null" json:"dateRepas"`
	Slot        MealSlot  `gorm:"not null" json:"typeRepas"`
	Attendees   int       `gorm:"default:4" json:"nombrePersonnes"`
	FoodIDs     IDList    `gorm:"type:text" json:"-"`
	Foods       []Food    `gorm:"-" json:"aliments"`
}

// TableName sets the table name for Meal
func (Meal) TableName() string {
	return "meals"
}

// SyncFoodIDs copies the identifiers of the loaded foods into FoodIDs when
// foods are present.
func (m *Meal) SyncFoodIDs() {
	if len(m.Foods) == 0 {
		return
	}
	ids := make(IDList, 0, len(m.Foods))
	for _, f := range m.Foods {
		ids = append(ids, f.ID)
	}
	m.FoodIDs = ids
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
