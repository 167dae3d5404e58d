package domain

import "time"

// Ingredient is one recipe ingredient with its free-text measure.
type Ingredient struct {
	Ingredient string `json:"ingredient" example:"chicken breast"`
	Measure    string `json:"measure" example:"200g"`
}

// Recipe is the shape handed to the recommendation scorer. Recipes come from
// an external lookup service; the core never fetches them itself.
type Recipe struct {
	ID           string       `json:"id" example:"52940"`
	Name         string       `json:"name" example:"Brown Stew Chicken"`
	Category     string       `json:"category" example:"Chicken"`
	Area         string       `json:"area,omitempty" example:"Jamaican"`
	Instructions string       `json:"instructions,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	// Estimated cost in dollars to make one batch
	EstimatedCost *float64 `json:"estimated_cost,omitempty" example:"9.45"`
	// Estimated minutes to prepare
	EstimatedTime *float64 `json:"estimated_time,omitempty" example:"45"`
	Servings      *int     `json:"servings,omitempty" example:"4"`
	Thumbnail     string   `json:"thumbnail,omitempty"`
	SourceURL     string   `json:"source_url,omitempty"`
}

// RecipePreferences constrain recipe recommendation scoring.
type RecipePreferences struct {
	MaxCost         *float64 `json:"max_cost,omitempty" validate:"omitempty,min=0"`
	MaxTime         *float64 `json:"max_time,omitempty" validate:"omitempty,min=0"`
	TargetProtein   *float64 `json:"target_protein,omitempty" validate:"omitempty,min=0"`
	AvoidCategories []string `json:"avoid_categories,omitempty"`
}

// RecipeRecommendation scores one recipe against the user's history.
type RecipeRecommendation struct {
	Recipe Recipe `json:"recipe"`
	// 0-100
	Score         int      `json:"score" example:"78"`
	Reasons       []string `json:"reasons"`
	MatchesBudget bool     `json:"matches_budget"`
	MatchesTime   bool     `json:"matches_time"`
	MatchesMacros bool     `json:"matches_macros"`
}

// RecipeCostInsight summarizes what a recipe costs to make.
type RecipeCostInsight struct {
	CostPerServing float64      `json:"cost_per_serving" example:"2.36"`
	CostCategory   CostCategory `json:"cost_category" example:"$"`
	// 0-10, higher means cheaper and faster
	ValueScore int    `json:"value_score" example:"8"`
	Insight    string `json:"insight"`
}

// MealTimePrediction is a history-learned next-meal-time estimate.
// @Description Predicted next meal time with a confidence score.
type MealTimePrediction struct {
	PredictedTime time.Time `json:"predicted_time"`
	// 0.3-0.95, lower gap variance means higher confidence
	Confidence float64 `json:"confidence" example:"0.82"`
	Reason     string  `json:"reason"`
	// Estimated current hunger, 1-10
	HungerLevel int `json:"hunger_level" example:"6"`
}

// EfficientFood ranks a historical meal by nutrition delivered per dollar.
type EfficientFood struct {
	Food     string  `json:"food" example:"lentil soup"`
	Cost     float64 `json:"cost" example:"3.50"`
	Calories float64 `json:"calories" example:"420"`
	Protein  float64 `json:"protein" example:"22"`
	// (calories + protein*10) / cost
	Efficiency float64 `json:"efficiency" example:"182.9"`
}

// BudgetOptimization suggests the most cost-efficient historical foods.
type BudgetOptimization struct {
	DailyTarget       float64         `json:"daily_target" example:"20"`
	Recommended       []EfficientFood `json:"recommended"`
	ProjectedSpending float64         `json:"projected_spending" example:"73.50"`
	Savings           float64         `json:"savings" example:"66.50"`
}

// HabitTrend describes whether a habit is getting stronger.
type HabitTrend string

const (
	HabitImproving HabitTrend = "improving"
	HabitStable    HabitTrend = "stable"
	HabitDeclining HabitTrend = "declining"
)

// HabitPattern summarizes consistency for one tracked habit.
type HabitPattern struct {
	Habit         string     `json:"habit" example:"Home Cooking"`
	CurrentStreak int        `json:"current_streak" example:"5"`
	LongestStreak int        `json:"longest_streak" example:"9"`
	Consistency   int        `json:"consistency" example:"72"`
	Trend         HabitTrend `json:"trend" example:"improving"`
	Suggestion    string     `json:"suggestion"`
}

// GapSeverity tiers how far intake falls below target.
type GapSeverity string

const (
	GapLow    GapSeverity = "low"
	GapMedium GapSeverity = "medium"
	GapHigh   GapSeverity = "high"
)

// NutritionGap flags a nutrient running below target over the trailing week.
type NutritionGap struct {
	Nutrient    string      `json:"nutrient" example:"Protein"`
	Current     float64     `json:"current" example:"18"`
	Target      float64     `json:"target" example:"150"`
	Gap         float64     `json:"gap" example:"132"`
	Severity    GapSeverity `json:"severity" example:"high"`
	Suggestions []string    `json:"suggestions"`
}
