package service

import (
	"testing"

	"github.com/humngry/meal-tracker/internal/domain"
)

func TestEstimateRecipeCost(t *testing.T) {
	ingredients := []domain.Ingredient{
		{Ingredient: "Chicken Breast", Measure: "2 lbs"}, // matches "chicken" first
		{Ingredient: "Basmati Rice", Measure: "2 cups"},
		{Ingredient: "Garam Masala Spice Mix", Measure: "1 tbsp"},
		{Ingredient: "Dragon fruit", Measure: "1"}, // unknown, $1 default
	}

	got := EstimateRecipeCost(ingredients)
	want := 3.50 + 0.30 + 0.25 + 1.00
	if got != want {
		t.Errorf("EstimateRecipeCost() = %v, want %v", got, want)
	}
}

func TestEstimatePrepTime(t *testing.T) {
	tests := []struct {
		name         string
		ingredients  int
		instructions string
		want         float64
	}{
		{"base with no cooking verbs", 4, "Combine and serve.", 23},
		{"simmer adds twenty minutes", 4, "Simmer until thick.", 43},
		{"stacked verbs", 5, "Marinate overnight, then bake and simmer.", 100},
		{"capped at three hours", 10, "Marinate, refrigerate, bake, roast, slow cook, simmer, boil.", 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingredients := make([]domain.Ingredient, tt.ingredients)
			if got := EstimatePrepTime(ingredients, tt.instructions); got != tt.want {
				t.Errorf("EstimatePrepTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimateServings(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []domain.Ingredient
		want        int
	}{
		{
			"meat by the pound",
			[]domain.Ingredient{{Ingredient: "Beef chuck", Measure: "1.5 lbs"}},
			3,
		},
		{
			"rice by the cup",
			[]domain.Ingredient{{Ingredient: "Jasmine rice", Measure: "3 cups"}},
			6,
		},
		{
			"small meat quantity floors at two",
			[]domain.Ingredient{{Ingredient: "Chicken wings", Measure: "0.5 lb"}},
			2,
		},
		{
			"short ingredient list falls back",
			[]domain.Ingredient{{Ingredient: "Cheese"}, {Ingredient: "Crackers"}},
			2,
		},
		{
			"long ingredient list falls back",
			make([]domain.Ingredient, 11),
			6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateServings(tt.ingredients); got != tt.want {
				t.Errorf("EstimateServings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLeadingNumber(t *testing.T) {
	tests := []struct {
		in       string
		fallback float64
		want     float64
	}{
		{"1.5 lbs", 1, 1.5},
		{"3 cups", 1, 3},
		{"  2 lbs", 1, 2},
		{"a pinch", 1, 1},
		{"", 2, 2},
	}

	for _, tt := range tests {
		if got := leadingNumber(tt.in, tt.fallback); got != tt.want {
			t.Errorf("leadingNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassifyRecipeCost(t *testing.T) {
	tests := []struct {
		cost float64
		want domain.CostCategory
	}{
		{5, domain.CostCheap},
		{9.99, domain.CostCheap},
		{10, domain.CostModerate},
		{25, domain.CostExpensive},
		{35, domain.CostPremium},
	}

	for _, tt := range tests {
		if got := ClassifyRecipeCost(tt.cost); got != tt.want {
			t.Errorf("ClassifyRecipeCost(%v) = %v, want %v", tt.cost, got, tt.want)
		}
	}
}

func TestGenerateRecipeCostInsight(t *testing.T) {
	// $8 over 4 servings at 30 minutes: cost score 6, time score 7
	insight := GenerateRecipeCostInsight(8, 4, 30)

	if insight.CostPerServing != 2 {
		t.Errorf("CostPerServing = %v, want 2", insight.CostPerServing)
	}
	if insight.CostCategory != domain.CostCheap {
		t.Errorf("CostCategory = %v", insight.CostCategory)
	}
	if insight.ValueScore != 7 {
		t.Errorf("ValueScore = %d, want 7", insight.ValueScore)
	}
	if insight.Insight != "Good value for the quality. Very economical per serving!" {
		t.Errorf("Insight = %q", insight.Insight)
	}

	// Expensive and slow lands at the bottom of the scale
	insight = GenerateRecipeCostInsight(45, 4, 120)
	if insight.CostCategory != domain.CostPremium {
		t.Errorf("CostCategory = %v", insight.CostCategory)
	}
	if insight.ValueScore != 0 {
		t.Errorf("ValueScore = %d, want 0", insight.ValueScore)
	}
	if insight.Insight != "Premium ingredients, plan ahead for budget. High-end meal, perfect for entertaining." {
		t.Errorf("Insight = %q", insight.Insight)
	}

	// Zero servings guard
	insight = GenerateRecipeCostInsight(4, 0, 20)
	if insight.CostPerServing != 4 {
		t.Errorf("CostPerServing = %v, want 4", insight.CostPerServing)
	}
}
