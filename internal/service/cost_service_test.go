package service

import (
	"math"
	"testing"
	"time"

	"github.com/humngry/meal-tracker/internal/domain"
)

func TestGetMonthlyBreakdown(t *testing.T) {
	// Mid-January so the trailing window crosses a month boundary.
	now := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	entries := []domain.MealEntry{
		{
			What: "Home dinner", Time: time.Date(2024, 1, 10, 19, 0, 0, 0, time.UTC),
			Cost: floatPtr(8), CostCategory: domain.CostCheap,
			Tags: domain.TagList{domain.TagDinner, domain.TagHomeCooked},
		},
		{
			What: "Takeout lunch", Time: time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC),
			Cost: floatPtr(16), CostCategory: domain.CostModerate,
			Tags: domain.TagList{domain.TagLunch, domain.TagTakeout},
		},
		{
			// December entry must be excluded
			What: "Old meal", Time: time.Date(2023, 12, 30, 12, 0, 0, 0, time.UTC),
			Cost: floatPtr(100), CostCategory: domain.CostPremium,
		},
	}

	breakdown := getMonthlyBreakdown(entries, now)

	if breakdown.Total != 24 {
		t.Errorf("Total = %v, want 24", breakdown.Total)
	}
	if breakdown.ByCategory[domain.CostCheap] != 8 || breakdown.ByCategory[domain.CostModerate] != 16 {
		t.Errorf("ByCategory = %v", breakdown.ByCategory)
	}
	// All four tiers present even when empty
	if len(breakdown.ByCategory) != 4 {
		t.Errorf("ByCategory has %d keys, want 4", len(breakdown.ByCategory))
	}
	if breakdown.ByTag[domain.TagDinner] != 8 || breakdown.ByTag[domain.TagLunch] != 16 {
		t.Errorf("ByTag = %v", breakdown.ByTag)
	}
	if breakdown.HomeCooked != 8 || breakdown.Takeout != 16 {
		t.Errorf("HomeCooked/Takeout = %v/%v", breakdown.HomeCooked, breakdown.Takeout)
	}
	if breakdown.AvgPerMeal != 12 {
		t.Errorf("AvgPerMeal = %v, want 12", breakdown.AvgPerMeal)
	}
	// January has 31 days; divisor is days in month, not days elapsed
	if math.Abs(breakdown.AvgPerDay-24.0/31.0) > 1e-9 {
		t.Errorf("AvgPerDay = %v, want %v", breakdown.AvgPerDay, 24.0/31.0)
	}
}

func TestCalculateCostPerCalorie(t *testing.T) {
	now := time.Now()

	entries := []domain.MealEntry{
		{What: "Rice Bowl", Time: now, Cost: floatPtr(4), Calories: floatPtr(800)},
		{What: "rice bowl", Time: now, Cost: floatPtr(6), Calories: floatPtr(1200)},
		{What: "Steak", Time: now, Cost: floatPtr(30), Calories: floatPtr(600)},
		// Missing calories: excluded
		{What: "Mystery", Time: now, Cost: floatPtr(10)},
		// Zero cost: excluded
		{What: "Freebie", Time: now, Cost: floatPtr(0), Calories: floatPtr(500)},
	}

	results := calculateCostPerCalorie(entries)
	if len(results) != 2 {
		t.Fatalf("expected 2 ranked foods, got %d", len(results))
	}

	// Rice aggregates case-insensitively: $10 over 2000 kcal
	rice := results[0]
	if rice.Food != "rice bowl" {
		t.Errorf("cheapest food = %q, want rice bowl", rice.Food)
	}
	if math.Abs(rice.CostPerCalorie-0.005) > 1e-9 {
		t.Errorf("rice CostPerCalorie = %v, want 0.005", rice.CostPerCalorie)
	}
	if rice.TimesEaten != 2 || rice.TotalSpent != 10 || rice.TotalCalories != 2000 {
		t.Errorf("rice stats = %+v", rice)
	}

	if results[1].Food != "steak" {
		t.Errorf("most expensive food = %q, want steak", results[1].Food)
	}
}

func TestGenerateCostInsights_Bootstrap(t *testing.T) {
	now := time.Now()
	entries := []domain.MealEntry{
		{What: "a", Time: now, Cost: floatPtr(5)},
		{What: "b", Time: now, Cost: floatPtr(5)},
	}

	insights := generateCostInsights(entries, now)
	if len(insights) != 1 || insights[0].Title != "Start tracking costs" {
		t.Fatalf("expected bootstrap insight, got %+v", insights)
	}
}

func TestGenerateCostInsights_HomeCookingStreak(t *testing.T) {
	now := time.Date(2024, 1, 20, 18, 0, 0, 0, time.UTC)

	// Six recent home-cooked meals and one takeout this month.
	var entries []domain.MealEntry
	for i := 0; i < 6; i++ {
		entries = append(entries, domain.MealEntry{
			What: "Home meal", Time: now.Add(-time.Duration(i*5) * time.Hour),
			Cost: floatPtr(6), Tags: domain.TagList{domain.TagHomeCooked},
		})
	}
	entries = append(entries, domain.MealEntry{
		What: "Takeout", Time: now.Add(-40 * time.Hour),
		Cost: floatPtr(20), Tags: domain.TagList{domain.TagTakeout},
	})

	insights := generateCostInsights(entries, now)

	var streak *domain.CostInsight
	for i := range insights {
		if insights[i].Kind == domain.CostInsightSavings {
			streak = &insights[i]
		}
	}
	if streak == nil {
		t.Fatalf("missing savings insight in %+v", insights)
	}
	if streak.Title != "6-Day Home Cooking Streak!" {
		t.Errorf("Title = %q", streak.Title)
	}
	// 6 home-cooked of the last 7, one $20 takeout meal: 6 * 20 * 0.5
	if math.Abs(streak.Amount-60) > 1e-9 {
		t.Errorf("Amount = %v, want 60", streak.Amount)
	}
}

func TestCalculateBudgetStatus(t *testing.T) {
	// Wednesday Jan 17 2024; week starts Sunday Jan 14.
	now := time.Date(2024, 1, 17, 18, 0, 0, 0, time.UTC)

	entries := []domain.MealEntry{
		{What: "a", Time: time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), Cost: floatPtr(20)},
		{What: "b", Time: time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC), Cost: floatPtr(20)},
		// Before the week start: ignored
		{What: "c", Time: time.Date(2024, 1, 13, 12, 0, 0, 0, time.UTC), Cost: floatPtr(50)},
	}

	status := calculateBudgetStatus(entries, 140, now)

	if status.Spent != 40 {
		t.Errorf("Spent = %v, want 40", status.Spent)
	}
	if status.Remaining != 100 {
		t.Errorf("Remaining = %v, want 100", status.Remaining)
	}
	if math.Abs(status.PercentUsed-40.0/140.0*100) > 1e-9 {
		t.Errorf("PercentUsed = %v", status.PercentUsed)
	}
	// 4 days elapsed (Sun-Wed), expected 80, buffer 88: well on track
	if !status.OnTrack {
		t.Error("expected OnTrack")
	}
	if math.Abs(status.ProjectedTotal-70) > 1e-9 {
		t.Errorf("ProjectedTotal = %v, want 70", status.ProjectedTotal)
	}

	// Trip the buffer: spend far ahead of pace
	over := append(entries, domain.MealEntry{
		What: "feast", Time: now.Add(-time.Hour), Cost: floatPtr(60),
	})
	status = calculateBudgetStatus(over, 140, now)
	if status.OnTrack {
		t.Error("expected off track after the feast")
	}
}
