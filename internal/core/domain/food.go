package domain

import "errors"

var ErrFoodNotFound = errors.New("food not found")

// Nutrition holds calories and macros, either per serving (on a catalog item)
// or as a computed total (on a log entry or aggregate).
type Nutrition struct {
	Calories float64 `json:"calories" bson:"calories"`
	ProteinG float64 `json:"protein_g" bson:"protein_g"`
	FatG     float64 `json:"fat_g" bson:"fat_g"`
	CarbsG   float64 `json:"carbs_g" bson:"carbs_g"`
}

// MulServings scales the nutrition by a serving count, componentwise.
func (n Nutrition) MulServings(servings int) Nutrition {
	f := float64(servings)
	return Nutrition{
		Calories: n.Calories * f,
		ProteinG: n.ProteinG * f,
		FatG:     n.FatG * f,
		CarbsG:   n.CarbsG * f,
	}
}

// Add returns the componentwise sum of two nutrition values.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		ProteinG: n.ProteinG + o.ProteinG,
		FatG:     n.FatG + o.FatG,
		CarbsG:   n.CarbsG + o.CarbsG,
	}
}

// FoodItem is a catalog entry mapping a food name to its nutrition facts.
// Names are stored lower-cased; classifier labels are normalized the same way
// before lookup. Catalog items are immutable within this service.
type FoodItem struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	NutritionPerServing Nutrition `json:"nutrition"`
}
