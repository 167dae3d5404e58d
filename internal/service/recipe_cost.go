package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/humngry/meal-tracker/internal/domain"
)

// ingredientPrice pairs an ingredient keyword with a rough USD price per
// typical recipe quantity. Lookup is first match, so broader keywords come
// before narrower ones deliberately.
type ingredientPrice struct {
	keyword string
	price   float64
}

var ingredientPrices = []ingredientPrice{
	// Proteins
	{"chicken", 3.50},
	{"chicken breast", 4.00},
	{"chicken thigh", 3.00},
	{"beef", 6.00},
	{"ground beef", 5.00},
	{"pork", 4.50},
	{"bacon", 6.00},
	{"salmon", 12.00},
	{"tuna", 8.00},
	{"shrimp", 10.00},
	{"eggs", 0.30},
	{"tofu", 2.50},

	// Dairy
	{"milk", 0.15},
	{"butter", 0.50},
	{"cheese", 4.00},
	{"cream", 0.30},
	{"yogurt", 0.60},
	{"cream cheese", 3.00},

	// Grains and pasta
	{"rice", 0.30},
	{"pasta", 0.40},
	{"bread", 0.30},
	{"flour", 0.20},
	{"oats", 0.25},
	{"quinoa", 1.00},

	// Vegetables
	{"onion", 0.50},
	{"garlic", 0.20},
	{"tomato", 0.75},
	{"bell pepper", 1.50},
	{"carrot", 0.30},
	{"celery", 0.40},
	{"potato", 0.40},
	{"broccoli", 1.50},
	{"spinach", 2.00},
	{"lettuce", 2.00},
	{"mushroom", 2.50},
	{"zucchini", 1.00},
	{"cucumber", 0.75},

	// Fruits
	{"apple", 0.75},
	{"banana", 0.25},
	{"lemon", 0.50},
	{"lime", 0.40},
	{"orange", 0.60},
	{"strawberry", 0.30},
	{"blueberry", 0.50},

	// Pantry
	{"olive oil", 0.30},
	{"vegetable oil", 0.15},
	{"sugar", 0.10},
	{"salt", 0.05},
	{"pepper", 0.10},
	{"soy sauce", 0.20},
	{"vinegar", 0.15},
	{"honey", 0.40},
	{"vanilla", 0.50},

	// Canned and packaged
	{"beans", 1.00},
	{"chickpeas", 1.00},
	{"coconut milk", 2.00},
	{"tomato sauce", 1.50},
	{"broth", 2.00},
	{"stock", 2.00},
}

func estimateIngredientCost(ingredient string) float64 {
	lower := strings.ToLower(ingredient)

	for _, entry := range ingredientPrices {
		if strings.Contains(lower, entry.keyword) {
			return entry.price
		}
	}

	if strings.Contains(lower, "spice") || strings.Contains(lower, "seasoning") {
		return 0.25
	}
	if strings.Contains(lower, "herb") {
		return 0.50
	}
	if strings.Contains(lower, "sauce") {
		return 1.50
	}
	return 1.00
}

// EstimateRecipeCost sums rough ingredient prices for a recipe.
func EstimateRecipeCost(ingredients []domain.Ingredient) float64 {
	total := 0.0
	for _, item := range ingredients {
		total += estimateIngredientCost(item.Ingredient)
	}
	return round2(total)
}

// EstimatePrepTime guesses minutes of preparation from ingredient count and
// cooking verbs in the instructions. Capped at three hours.
func EstimatePrepTime(ingredients []domain.Ingredient, instructions string) float64 {
	baseTime := 15.0
	baseTime += float64(len(ingredients)) * 2

	lower := strings.ToLower(instructions)
	additions := []struct {
		verb    string
		minutes float64
	}{
		{"marinate", 30},
		{"refrigerate", 30},
		{"bake", 25},
		{"roast", 30},
		{"slow cook", 120},
		{"simmer", 20},
		{"boil", 15},
		{"fry", 10},
		{"sauté", 10},
	}
	for _, a := range additions {
		if strings.Contains(lower, a.verb) {
			baseTime += a.minutes
		}
	}

	return math.Min(baseTime, 180)
}

// EstimateServings guesses a serving count from protein or starch quantities,
// falling back to ingredient count.
func EstimateServings(ingredients []domain.Ingredient) int {
	for _, item := range ingredients {
		measure := strings.ToLower(item.Measure)
		ingredient := strings.ToLower(item.Ingredient)

		if strings.Contains(ingredient, "chicken") || strings.Contains(ingredient, "beef") || strings.Contains(ingredient, "pork") {
			if strings.Contains(measure, "lb") || strings.Contains(measure, "pound") {
				pounds := leadingNumber(measure, 1)
				servings := int(math.Round(pounds * 2))
				if servings < 2 {
					servings = 2
				}
				return servings
			}
		}

		if strings.Contains(ingredient, "pasta") || strings.Contains(ingredient, "rice") {
			if strings.Contains(measure, "cup") {
				cups := leadingNumber(measure, 1)
				servings := int(math.Round(cups * 2))
				if servings < 2 {
					servings = 2
				}
				return servings
			}
		}
	}

	switch {
	case len(ingredients) < 5:
		return 2
	case len(ingredients) < 10:
		return 4
	default:
		return 6
	}
}

// leadingNumber parses the numeric prefix of a measure like "1.5 lbs".
func leadingNumber(s string, fallback float64) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.') {
		end++
	}
	if end == 0 {
		return fallback
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return fallback
	}
	return n
}

// ClassifyRecipeCost buckets a total cost into the $..$$$$ categories.
func ClassifyRecipeCost(totalCost float64) domain.CostCategory {
	switch {
	case totalCost < 10:
		return domain.CostCheap
	case totalCost < 20:
		return domain.CostModerate
	case totalCost < 35:
		return domain.CostExpensive
	default:
		return domain.CostPremium
	}
}

// GenerateRecipeCostInsight combines per-serving cost and prep time into a
// 0-10 value score with a one-line summary.
func GenerateRecipeCostInsight(totalCost float64, servings int, estimatedTime float64) domain.RecipeCostInsight {
	if servings < 1 {
		servings = 1
	}
	costPerServing := round2(totalCost / float64(servings))

	costScore := math.Max(0, 10-costPerServing*2)
	timeScore := math.Max(0, 10-estimatedTime/10)
	valueScore := int(math.Round((costScore + timeScore) / 2))

	var insight string
	switch {
	case valueScore >= 8:
		insight = "Excellent value! Budget-friendly and quick to make."
	case valueScore >= 6:
		insight = "Good value for the quality."
	case valueScore >= 4:
		insight = "Moderate cost, worth it for special occasions."
	default:
		insight = "Premium ingredients, plan ahead for budget."
	}

	if costPerServing < 3 {
		insight += " Very economical per serving!"
	} else if costPerServing > 8 {
		insight += " High-end meal, perfect for entertaining."
	}

	return domain.RecipeCostInsight{
		CostPerServing: costPerServing,
		CostCategory:   ClassifyRecipeCost(totalCost),
		ValueScore:     valueScore,
		Insight:        insight,
	}
}
