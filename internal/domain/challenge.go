package domain

import "time"

// ChallengeType is the time-box of a challenge window.
type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeMonthly ChallengeType = "monthly"
)

// ChallengeDifficulty is a rough effort indicator.
type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "easy"
	DifficultyMedium ChallengeDifficulty = "medium"
	DifficultyHard   ChallengeDifficulty = "hard"
)

// RuleKind selects the progress-counting strategy for a challenge. Each kind
// reads its parameters from ChallengeRule.
type RuleKind string

const (
	// Count distinct days with at least one entry carrying any of Rule.Tags.
	RuleDistinctDaysWithTag RuleKind = "distinct_days_with_tag"
	// Count distinct days whose summed Rule.Metric crosses Rule.Threshold
	// (at-least, or at-most when Rule.AtMost is set).
	RuleDistinctDaysMeetingDailyTotal RuleKind = "distinct_days_meeting_daily_total"
	// Count distinct values of Rule.Tags seen across entries.
	RuleDistinctTagValues RuleKind = "distinct_tag_values"
	// Count entries carrying any of Rule.Tags; TodayOnly restricts to the
	// current day.
	RuleCountMatchingRecords RuleKind = "count_matching_records"
	// Progress is tracked outside meal logs; always counts zero.
	RuleManual RuleKind = "manual"
)

// DailyMetric names an aggregatable per-day numeric field.
type DailyMetric string

const (
	MetricProtein DailyMetric = "protein"
	MetricFiber   DailyMetric = "fiber"
	MetricCost    DailyMetric = "cost"
)

// ChallengeRule holds the parameters for a counting strategy.
type ChallengeRule struct {
	Kind      RuleKind    `json:"kind"`
	Tags      []string    `json:"tags,omitempty"`
	Metric    DailyMetric `json:"metric,omitempty"`
	Threshold float64     `json:"threshold,omitempty"`
	AtMost    bool        `json:"at_most,omitempty"`
	TodayOnly bool        `json:"today_only,omitempty"`
}

// ChallengeGoal is what the user is counting toward.
type ChallengeGoal struct {
	Target      int    `json:"target" example:"7"`
	Unit        string `json:"unit" example:"days"`
	Description string `json:"description" example:"Days of home cooking"`
}

// Challenge is a time-boxed goal with a counting rule and an XP reward.
// Windows are derived from the current date on every call, never stored.
type Challenge struct {
	ID          string              `json:"id" example:"home-chef-week"`
	Title       string              `json:"title" example:"Home Chef Week"`
	Description string              `json:"description"`
	Type        ChallengeType       `json:"type" example:"weekly"`
	Difficulty  ChallengeDifficulty `json:"difficulty" example:"medium"`
	XPReward    int                 `json:"xp_reward" example:"500"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	Goal        ChallengeGoal       `json:"goal"`
	Rule        ChallengeRule       `json:"rule"`
	// Community numbers shown alongside the challenge
	Participants int `json:"participants" example:"1247"`
	TopScore     int `json:"top_score" example:"7"`
}

// ChallengeProgress is the user's progress against one challenge.
type ChallengeProgress struct {
	ChallengeID string `json:"challenge_id" example:"home-chef-week"`
	Current     int    `json:"current" example:"4"`
	Target      int    `json:"target" example:"7"`
	Percentage  int    `json:"percentage" example:"57"`
	Completed   bool   `json:"completed" example:"false"`
}

// ChallengeWithProgress merges a definition with the user's progress.
type ChallengeWithProgress struct {
	Challenge
	ChallengeProgress
}

// UserChallengeStats aggregates a user's challenge history.
type UserChallengeStats struct {
	TotalCompleted int `json:"total_completed" example:"12"`
	// Consecutive weeks with at least one completed weekly challenge
	CurrentStreak int      `json:"current_streak" example:"2"`
	LongestStreak int      `json:"longest_streak" example:"2"`
	TotalXPEarned int      `json:"total_xp_earned" example:"4800"`
	Achievements  []string `json:"achievements"`
}

// LeaderboardRow is one row of a challenge leaderboard.
type LeaderboardRow struct {
	Rank     int    `json:"rank" example:"1"`
	Username string `json:"username" example:"FoodieChef"`
	Score    int    `json:"score" example:"97"`
	IsYou    bool   `json:"is_you" example:"false"`
}
