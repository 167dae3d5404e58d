package domain

// HungerStatus classifies how hungry the user probably is right now.
type HungerStatus string

const (
	HungerSatisfied     HungerStatus = "satisfied"
	HungerGettingHungry HungerStatus = "getting-hungry"
	HungerHungry        HungerStatus = "hungry"
	HungerVeryHungry    HungerStatus = "very-hungry"
)

// HungerScore is the current estimated hunger level.
// @Description Estimated hunger right now, derived from the last meal's prediction.
type HungerScore struct {
	// 0-10, higher is hungrier
	Score   int          `json:"score" example:"5"`
	Status  HungerStatus `json:"status" example:"getting-hungry"`
	Message string       `json:"message" example:"You might start feeling hungry soon"`
}

// FoodEffectiveness ranks how long a food keeps the user satisfied.
// @Description Per-food satiety statistics, ranked by effectiveness.
type FoodEffectiveness struct {
	FoodName string `json:"food_name" example:"oatmeal"`
	// Average hours until the next meal after eating this food
	AvgTimeBetweenMeals float64 `json:"avg_time_between_meals" example:"4.2"`
	AvgFullness         float64 `json:"avg_fullness" example:"4.0"`
	TimesEaten          int     `json:"times_eaten" example:"5"`
	// avg gap hours weighted by fullness relative to the neutral 3
	Effectiveness float64 `json:"effectiveness" example:"5.6"`
}

// HungerPattern is a recurring (weekday, hour) hunger bucket.
// @Description A recurring time-of-day/day-of-week hunger occurrence.
type HungerPattern struct {
	// Hour bucket in HH:00 format
	TimeOfDay string `json:"time_of_day" example:"14:00"`
	// 0=Sunday .. 6=Saturday
	DayOfWeek int     `json:"day_of_week" example:"1"`
	AvgHunger float64 `json:"avg_hunger" example:"4.5"`
	// How many logged meals fall in this bucket
	Frequency int `json:"frequency" example:"3"`
}

// InsightKind tags the flavor of a generated insight.
type InsightKind string

const (
	InsightPattern     InsightKind = "pattern"
	InsightWarning     InsightKind = "warning"
	InsightSuggestion  InsightKind = "suggestion"
	InsightAchievement InsightKind = "achievement"
)

// HungerInsight is a human-readable observation about eating patterns.
type HungerInsight struct {
	Kind    InsightKind `json:"kind" example:"achievement"`
	Title   string      `json:"title" example:"Champion Food Discovered"`
	Message string      `json:"message"`
}

// HungerHeatmap is a 7x24 matrix of average hungerBefore per weekday and
// hour, zero where no data. Row 0 is Sunday.
type HungerHeatmap [7][24]float64

// HungerAnalysisResponse bundles the hunger analyses for one user.
type HungerAnalysisResponse struct {
	Score         HungerScore         `json:"score"`
	Effectiveness []FoodEffectiveness `json:"effectiveness"`
	Patterns      []HungerPattern     `json:"patterns"`
	Insights      []HungerInsight     `json:"insights"`
	Heatmap       HungerHeatmap       `json:"heatmap"`
}
