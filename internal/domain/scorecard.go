package domain

// Grade is a letter grade for nutrition-target adherence.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeD     Grade = "D"
	GradeF     Grade = "F"
)

// Trend compares today's raw total against yesterday's.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// NutritionScore grades one category (Calories, Protein, Fiber, Budget) for a day.
// @Description Per-category grade for a single day.
type NutritionScore struct {
	Category string  `json:"category" example:"Protein"`
	Current  float64 `json:"current" example:"132"`
	Target   float64 `json:"target" example:"150"`
	// 0-100, clamped; Budget inverts (spending less scores higher)
	Percentage int    `json:"percentage" example:"88"`
	Grade      Grade  `json:"grade" example:"A"`
	Color      string `json:"color" example:"#8BC34A"`
	Trend      Trend  `json:"trend" example:"up"`
	Message    string `json:"message" example:"Crushing your protein goals!"`
}

// Streak is a run of consecutive qualifying calendar days.
type Streak struct {
	Name  string `json:"name" example:"Home Cooking"`
	Count int    `json:"count" example:"4"`
}

// DailyScoreCard grades a day's nutrition against the user's targets.
// @Description Daily nutrition report card with grades, XP, streaks and achievements.
type DailyScoreCard struct {
	// Day being graded, YYYY-MM-DD in the user's timezone
	Date         string           `json:"date" example:"2024-01-15"`
	Scores       []NutritionScore `json:"scores"`
	OverallGrade Grade            `json:"overall_grade" example:"B"`
	// Mean of category percentages, 0-100
	OverallScore int      `json:"overall_score" example:"81"`
	XPEarned     int      `json:"xp_earned" example:"170"`
	Streaks      []Streak `json:"streaks"`
	Achievements []string `json:"achievements"`
}

// WeeklyScoreSummary aggregates the trailing 7 days of score cards.
type WeeklyScoreSummary struct {
	WeekAverage int `json:"week_average" example:"74"`
	BestDay     struct {
		Date  string `json:"date" example:"2024-01-13"`
		Score int    `json:"score" example:"92"`
	} `json:"best_day"`
	// Older-half average minus recent-half average; negative when the
	// recent days scored higher
	Improvement int `json:"improvement" example:"-4"`
	TotalXP     int `json:"total_xp" example:"520"`
}
