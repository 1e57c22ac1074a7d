package models

import (
	"github.com/jinzhu/gorm"
)

// Allergen sentinels shared by the catalogue and the computations.
const (
	// NoKnownAllergen marks a food whose allergens were checked and found absent.
	NoKnownAllergen = "Aucune allergie connue"
	// NoAllergenDetected is the summary used when no food carries an allergen.
	NoAllergenDetected = "Aucune allergie détectée"
)

// Category names the selection rules look up. They are a data contract with
// the catalogue and must match stored names verbatim.
const (
	CategoryMeat      = "Viandes"
	CategoryFish      = "Poissons"
	CategoryVegetable = "Légumes"
	CategoryFruit     = "Fruits"
	CategoryGrain     = "Céréales"
	CategoryDairy     = "Produits laitiers"
)

// Category is a named grouping of foods. It is lookup metadata only and does
// not track the foods that reference it.
type Category struct {
	gorm.Model
	Name        string `gorm:"unique_index;not null" json:"nom"`
	Description string `json:"description"`
}

// TableName sets the table name for Category
func (Category) TableName() string {
	return "categories"
}

// Food is a catalogue item
type Food struct {
	gorm.Model
	Name            string   `gorm:"not null" json:"nom"`
	Description     string   `json:"description"`
	CaloriesPer100g *float64 `gorm:"column:calories_per_100g" json:"caloriesPer100g"`
	Allergens       *string  `gorm:"type:text" json:"allergies"`
	ImageURL        string   `gorm:"column:image_url" json:"imageUrl"`
	CategoryID      uint     `gorm:"index" json:"categorieId"`
	Category        Category `gorm:"foreignkey:CategoryID" json:"categorie"`
}

// TableName sets the table name for Food
func (Food) TableName() string {
	return "foods"
}

// CategoryName returns the name of the preloaded category, or "" when the
// category was not loaded.
func (f *Food) CategoryName() string {
	return f.Category.Name
}

// HasAllergen reports whether the food carries allergen text other than the
// "no known allergen" sentinel.
func (f *Food) HasAllergen() bool {
	return f.Allergens != nil && *f.Allergens != NoKnownAllergen
}

// AllergenText returns the raw allergen text, "" when unset.
func (f *Food) AllergenText() string {
	if f.Allergens == nil {
		return ""
	}
	return *f.Allergens
}

// CaloriesFor returns the calories contained in quantityKg kilograms of the
// food. Densities are kcal per 100 g, hence the x10 scaling. A food without
// density contributes zero.
func (f *Food) CaloriesFor(quantityKg float64) float64 {
	if f.CaloriesPer100g == nil {
		return 0
	}
	return *f.CaloriesPer100g * quantityKg * 10
}
