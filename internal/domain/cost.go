package domain

// CostInsightKind tags the flavor of a spending insight.
type CostInsightKind string

const (
	CostInsightSpending    CostInsightKind = "spending"
	CostInsightSavings     CostInsightKind = "savings"
	CostInsightComparison  CostInsightKind = "comparison"
	CostInsightAchievement CostInsightKind = "achievement"
)

// CostInsight is a human-readable observation about food spending.
type CostInsight struct {
	Kind    CostInsightKind `json:"kind" example:"spending"`
	Title   string          `json:"title" example:"Monthly Food Budget"`
	Message string          `json:"message"`
	Amount  float64         `json:"amount" example:"182.50"`
}

// MonthlyCostBreakdown summarizes the current calendar month's spending.
// @Description Spending breakdown for the current calendar month.
type MonthlyCostBreakdown struct {
	Total float64 `json:"total" example:"182.50"`
	// Spend grouped by cost tier
	ByCategory map[CostCategory]float64 `json:"by_category"`
	// Spend grouped by meal tag
	ByTag      map[string]float64 `json:"by_tag"`
	AvgPerMeal float64            `json:"avg_per_meal" example:"6.08"`
	// Total divided by days in the month, not days elapsed
	AvgPerDay  float64 `json:"avg_per_day" example:"5.89"`
	HomeCooked float64 `json:"home_cooked" example:"95.00"`
	Takeout    float64 `json:"takeout" example:"87.50"`
}

// CostPerCalorie ranks foods by spend per calorie, cheapest first.
type CostPerCalorie struct {
	Food           string  `json:"food" example:"rice and beans"`
	CostPerCalorie float64 `json:"cost_per_calorie" example:"0.004"`
	TotalSpent     float64 `json:"total_spent" example:"12.00"`
	TotalCalories  float64 `json:"total_calories" example:"3000"`
	TimesEaten     int     `json:"times_eaten" example:"4"`
}

// BudgetStatus describes the current week's spending against a weekly budget.
// Weeks start on Sunday.
type BudgetStatus struct {
	Spent       float64 `json:"spent" example:"54.20"`
	Remaining   float64 `json:"remaining" example:"85.80"`
	PercentUsed float64 `json:"percent_used" example:"38.7"`
	// Spending is within 110% of the pro-rated budget so far
	OnTrack bool `json:"on_track" example:"true"`
	// Current daily average extrapolated to a full 7-day week
	ProjectedTotal float64 `json:"projected_total" example:"94.85"`
}

// CostAnalysisResponse bundles the cost analyses for one user.
type CostAnalysisResponse struct {
	Monthly        MonthlyCostBreakdown `json:"monthly"`
	CostPerCalorie []CostPerCalorie     `json:"cost_per_calorie"`
	Insights       []CostInsight        `json:"insights"`
}
