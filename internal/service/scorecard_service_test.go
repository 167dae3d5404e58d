package service

import (
	"testing"
	"time"

	"github.com/humngry/meal-tracker/internal/domain"
)

func TestCalculateGrade(t *testing.T) {
	tests := []struct {
		percentage float64
		want       domain.Grade
	}{
		{100, domain.GradeAPlus},
		{95, domain.GradeAPlus},
		{94.9, domain.GradeA},
		{85, domain.GradeA},
		{80, domain.GradeB},
		{70, domain.GradeC},
		{60, domain.GradeD},
		{54.9, domain.GradeF},
		{0, domain.GradeF},
	}

	for _, tt := range tests {
		if got := calculateGrade(tt.percentage); got != tt.want {
			t.Errorf("calculateGrade(%v) = %v, want %v", tt.percentage, got, tt.want)
		}
	}
}

func TestCalculateTrend(t *testing.T) {
	tests := []struct {
		current, previous float64
		want              domain.Trend
	}{
		{100, 90, domain.TrendUp},
		{90, 100, domain.TrendDown},
		{100, 95, domain.TrendStable},
		{95, 100, domain.TrendStable},
		{100, 100, domain.TrendStable},
	}

	for _, tt := range tests {
		if got := calculateTrend(tt.current, tt.previous); got != tt.want {
			t.Errorf("calculateTrend(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestCalculateLevel(t *testing.T) {
	tests := []struct {
		name      string
		totalXP   int
		level     int
		currentXP int
		toNext    int
		title     string
	}{
		{"fresh start", 0, 1, 0, 500, "Beginner"},
		{"exactly one level", 500, 2, 0, 1000, "Novice Chef"},
		{"partway through level three", 1700, 3, 200, 1500, "Home Cook"},
		{"past the title ladder", 1_000_000, 63, 23500, 31500, "Legendary Cook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := calculateLevel(tt.totalXP)
			if info.Level != tt.level {
				t.Errorf("Level = %d, want %d", info.Level, tt.level)
			}
			if info.CurrentXP != tt.currentXP {
				t.Errorf("CurrentXP = %d, want %d", info.CurrentXP, tt.currentXP)
			}
			if info.XPToNextLevel != tt.toNext {
				t.Errorf("XPToNextLevel = %d, want %d", info.XPToNextLevel, tt.toNext)
			}
			if info.Title != tt.title {
				t.Errorf("Title = %q, want %q", info.Title, tt.title)
			}
		})
	}
}

func TestGenerateDailyScoreCard(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	targets := domain.NutritionTargets{Calories: 2000, Protein: 150, Fiber: 25, Budget: 20}

	entries := []domain.MealEntry{
		{
			What: "Big cook-up", Time: now.Add(-2 * time.Hour),
			Calories: floatPtr(2000), Protein: floatPtr(180), Fiber: floatPtr(25),
			Cost: floatPtr(10), Tags: domain.TagList{domain.TagHomeCooked},
		},
		{
			What: "Yesterday's dinner", Time: now.AddDate(0, 0, -1),
			Calories: floatPtr(1500), Protein: floatPtr(100), Fiber: floatPtr(20),
			Cost: floatPtr(5), Tags: domain.TagList{domain.TagHomeCooked},
		},
	}

	card := generateDailyScoreCard(entries, targets, now)

	if card.Date != "2024-03-10" {
		t.Errorf("Date = %q", card.Date)
	}
	if len(card.Scores) != 4 {
		t.Fatalf("got %d scores, want 4", len(card.Scores))
	}

	byCategory := make(map[string]domain.NutritionScore)
	for _, score := range card.Scores {
		byCategory[score.Category] = score
	}

	calories := byCategory["Calories"]
	if calories.Percentage != 100 || calories.Grade != domain.GradeAPlus {
		t.Errorf("Calories = %+v", calories)
	}
	if calories.Message != "Perfect energy balance!" {
		t.Errorf("Calories.Message = %q", calories.Message)
	}
	if calories.Trend != domain.TrendUp {
		t.Errorf("Calories.Trend = %v, want up", calories.Trend)
	}

	// 180g against a 150g target clamps at 100
	protein := byCategory["Protein"]
	if protein.Percentage != 100 || protein.Message != "Crushing your protein goals!" {
		t.Errorf("Protein = %+v", protein)
	}

	// Fiber rose by exactly the trend delta, which stays stable
	if byCategory["Fiber"].Trend != domain.TrendStable {
		t.Errorf("Fiber.Trend = %v, want stable", byCategory["Fiber"].Trend)
	}

	// Budget inverts: $10 of a $20 budget scores 50
	budget := byCategory["Budget"]
	if budget.Percentage != 50 || budget.Grade != domain.GradeF {
		t.Errorf("Budget = %+v", budget)
	}
	if budget.Message != "Saved $10.00 today!" {
		t.Errorf("Budget.Message = %q", budget.Message)
	}

	// (100+100+100+50)/4 rounds to 88
	if card.OverallScore != 88 || card.OverallGrade != domain.GradeA {
		t.Errorf("Overall = %d %v", card.OverallScore, card.OverallGrade)
	}
	// Three categories at 95+, budget below the XP floor
	if card.XPEarned != 150 {
		t.Errorf("XPEarned = %d, want 150", card.XPEarned)
	}

	wantAchievements := []string{"Protein Champion", "Budget Master", "Home Chef"}
	if len(card.Achievements) != len(wantAchievements) {
		t.Fatalf("Achievements = %v", card.Achievements)
	}
	for i, want := range wantAchievements {
		if card.Achievements[i] != want {
			t.Errorf("Achievements[%d] = %q, want %q", i, card.Achievements[i], want)
		}
	}

	wantStreaks := map[string]int{"Home Cooking": 2, "Daily Logging": 2}
	if len(card.Streaks) != 2 {
		t.Fatalf("Streaks = %v", card.Streaks)
	}
	for _, streak := range card.Streaks {
		if wantStreaks[streak.Name] != streak.Count {
			t.Errorf("Streak %q = %d, want %d", streak.Name, streak.Count, wantStreaks[streak.Name])
		}
	}
}

func TestCalculateStreaks(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)

	entries := []domain.MealEntry{
		{What: "Home dinner", Time: now.Add(-time.Hour), Tags: domain.TagList{domain.TagHomeCooked}},
		// One takeout meal breaks yesterday even though the other meal was home-cooked
		{What: "Home lunch", Time: now.AddDate(0, 0, -1), Tags: domain.TagList{domain.TagHomeCooked}},
		{What: "Pizza", Time: now.AddDate(0, 0, -1).Add(-5 * time.Hour), Tags: domain.TagList{domain.TagTakeout}},
		// Gap on day -2; this entry only counts for nothing
		{What: "Old meal", Time: now.AddDate(0, 0, -3), Tags: domain.TagList{domain.TagHomeCooked}},
	}

	streaks := calculateStreaks(entries, now)

	byName := make(map[string]int)
	for _, streak := range streaks {
		byName[streak.Name] = streak.Count
	}
	if byName["Home Cooking"] != 1 {
		t.Errorf("Home Cooking streak = %d, want 1", byName["Home Cooking"])
	}
	if byName["Daily Logging"] != 2 {
		t.Errorf("Daily Logging streak = %d, want 2", byName["Daily Logging"])
	}
}

func TestGetWeeklyScoreSummary(t *testing.T) {
	now := time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)
	// No budget target keeps three graded categories per day
	targets := domain.NutritionTargets{Calories: 2000, Protein: 150, Fiber: 25}

	entries := []domain.MealEntry{
		{
			What: "Perfect day", Time: now,
			Calories: floatPtr(2000), Protein: floatPtr(150), Fiber: floatPtr(25),
		},
		{
			What: "Half rations", Time: now.AddDate(0, 0, -2),
			Calories: floatPtr(1000), Protein: floatPtr(75), Fiber: floatPtr(12.5),
		},
	}

	summary := getWeeklyScoreSummary(entries, targets, now)

	// Day scores 100 and 50; the perfect day also earns the all-good bonus
	if summary.WeekAverage != 75 {
		t.Errorf("WeekAverage = %d, want 75", summary.WeekAverage)
	}
	if summary.BestDay.Date != "2024-03-10" || summary.BestDay.Score != 100 {
		t.Errorf("BestDay = %+v", summary.BestDay)
	}
	if summary.TotalXP != 250 {
		t.Errorf("TotalXP = %d, want 250", summary.TotalXP)
	}
	if summary.Improvement != -75 {
		t.Errorf("Improvement = %d, want -75", summary.Improvement)
	}
}
