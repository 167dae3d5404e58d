package domain

// Nutriments carries per-100g macro values from a food database lookup.
// Fields are pointers because most products report only a subset.
type Nutriments struct {
	EnergyKcal100g    *float64 `json:"energy_kcal_100g,omitempty"`
	Proteins100g      *float64 `json:"proteins_100g,omitempty"`
	Carbohydrates100g *float64 `json:"carbohydrates_100g,omitempty"`
	Fat100g           *float64 `json:"fat_100g,omitempty"`
	Fiber100g         *float64 `json:"fiber_100g,omitempty"`
}

// FoodProduct is a food database search hit.
// @Description A food product with per-100g nutrition data.
type FoodProduct struct {
	ID              string     `json:"id" example:"3017620422003"`
	Name            string     `json:"name" example:"Peanut butter"`
	Brands          string     `json:"brands,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	Nutriments      Nutriments `json:"nutriments"`
	ServingSize     string     `json:"serving_size,omitempty" example:"15g"`
	NutriscoreGrade string     `json:"nutriscore_grade,omitempty" example:"b"`
}
