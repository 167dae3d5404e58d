package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MinCostEntriesForInsights gates spending insights until enough meals
	// carry a cost.
	MinCostEntriesForInsights = 5

	// budgetBuffer is the tolerance applied before a week counts as off
	// track (10% over the pro-rated budget).
	budgetBuffer = 1.1

	// homeCookedSavingsRate estimates savings per home-cooked meal as half
	// an average takeout meal.
	homeCookedSavingsRate = 0.5
)

// CostService analyzes food spending from meal entries.
type CostService interface {
	// Analyze computes the monthly breakdown, cost-per-calorie ranking and
	// spending insights for a user.
	Analyze(ctx context.Context, userID uuid.UUID) (*domain.CostAnalysisResponse, error)
	// BudgetStatus computes the current week's spending against a weekly budget.
	BudgetStatus(ctx context.Context, userID uuid.UUID, weeklyBudget float64) (*domain.BudgetStatus, error)
}

type costService struct {
	mealRepo repository.MealEntryRepository
	userRepo repository.UserRepository
}

// NewCostService creates a new CostService.
func NewCostService(mealRepo repository.MealEntryRepository, userRepo repository.UserRepository) CostService {
	return &costService{
		mealRepo: mealRepo,
		userRepo: userRepo,
	}
}

func (s *costService) Analyze(ctx context.Context, userID uuid.UUID) (*domain.CostAnalysisResponse, error) {
	tracer := otel.Tracer("meal-tracker-api/cost")
	ctx, span := tracer.Start(ctx, "CostService.Analyze",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.mealRepo.ListRecent(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(user.Location())
	span.SetAttributes(attribute.Int("entries.count", len(entries)))

	return &domain.CostAnalysisResponse{
		Monthly:        getMonthlyBreakdown(entries, now),
		CostPerCalorie: calculateCostPerCalorie(entries),
		Insights:       generateCostInsights(entries, now),
	}, nil
}

func (s *costService) BudgetStatus(ctx context.Context, userID uuid.UUID, weeklyBudget float64) (*domain.BudgetStatus, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.mealRepo.ListRecent(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	status := calculateBudgetStatus(entries, weeklyBudget, time.Now().In(user.Location()))
	return &status, nil
}

// calculateTotalSpent sums costs within the trailing window of days.
func calculateTotalSpent(entries []domain.MealEntry, days int, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -days)

	total := 0.0
	for _, entry := range entries {
		if entry.Time.After(cutoff) {
			total += entry.CostOrZero()
		}
	}
	return total
}

// getMonthlyBreakdown summarizes spending from the 1st of the current
// calendar month. avgPerDay divides by days in the month rather than days
// elapsed, understating the average early in the month; kept for parity with
// the established reporting.
func getMonthlyBreakdown(entries []domain.MealEntry, now time.Time) domain.MonthlyCostBreakdown {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	breakdown := domain.MonthlyCostBreakdown{
		ByCategory: map[domain.CostCategory]float64{
			domain.CostCheap:     0,
			domain.CostModerate:  0,
			domain.CostExpensive: 0,
			domain.CostPremium:   0,
		},
		ByTag: make(map[string]float64),
	}

	mealCount := 0
	for _, entry := range entries {
		if entry.Time.Before(monthStart) {
			continue
		}
		mealCount++

		cost := entry.CostOrZero()
		breakdown.Total += cost

		if entry.CostCategory != "" {
			breakdown.ByCategory[entry.CostCategory] += cost
		}

		for _, tag := range entry.Tags {
			breakdown.ByTag[tag] += cost
		}

		if entry.HasTag(domain.TagHomeCooked) {
			breakdown.HomeCooked += cost
		}
		if entry.HasTag(domain.TagTakeout) {
			breakdown.Takeout += cost
		}
	}

	if mealCount > 0 {
		breakdown.AvgPerMeal = breakdown.Total / float64(mealCount)
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	breakdown.AvgPerDay = breakdown.Total / float64(daysInMonth)

	return breakdown
}

// calculateCostPerCalorie ranks foods by spend per calorie, cheapest first.
// Entries missing either cost or calories are excluded entirely.
func calculateCostPerCalorie(entries []domain.MealEntry) []domain.CostPerCalorie {
	type foodStats struct {
		totalCost     float64
		totalCalories float64
		count         int
	}

	stats := make(map[string]*foodStats)

	for _, entry := range entries {
		if entry.Cost == nil || entry.Calories == nil || *entry.Cost == 0 || *entry.Calories == 0 {
			continue
		}

		food := strings.ToLower(entry.What)
		fs, ok := stats[food]
		if !ok {
			fs = &foodStats{}
			stats[food] = fs
		}
		fs.totalCost += *entry.Cost
		fs.totalCalories += *entry.Calories
		fs.count++
	}

	results := make([]domain.CostPerCalorie, 0, len(stats))
	for food, fs := range stats {
		results = append(results, domain.CostPerCalorie{
			Food:           food,
			CostPerCalorie: fs.totalCost / fs.totalCalories,
			TotalSpent:     fs.totalCost,
			TotalCalories:  fs.totalCalories,
			TimesEaten:     fs.count,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].CostPerCalorie != results[j].CostPerCalorie {
			return results[i].CostPerCalorie < results[j].CostPerCalorie
		}
		return results[i].Food < results[j].Food
	})

	return results
}

// generateCostInsights emits spending observations once at least five meals
// carry a cost.
func generateCostInsights(entries []domain.MealEntry, now time.Time) []domain.CostInsight {
	costBearing := 0
	for _, entry := range entries {
		if entry.Cost != nil && *entry.Cost > 0 {
			costBearing++
		}
	}

	if costBearing < MinCostEntriesForInsights {
		return []domain.CostInsight{{
			Kind:    domain.CostInsightSpending,
			Title:   "Start tracking costs",
			Message: "Add costs to your meals to unlock spending insights!",
		}}
	}

	var insights []domain.CostInsight

	monthly := getMonthlyBreakdown(entries, now)
	weeklyTotal := calculateTotalSpent(entries, 7, now)
	monthlyTotal := monthly.Total

	insights = append(insights, domain.CostInsight{
		Kind:    domain.CostInsightSpending,
		Title:   "Monthly Food Budget",
		Message: fmt.Sprintf("You've spent $%.2f on food this month", monthlyTotal),
		Amount:  monthlyTotal,
	})

	// Home cooking vs takeout, only meaningful when both exist
	if monthly.HomeCooked > 0 && monthly.Takeout > 0 && monthly.HomeCooked < monthly.Takeout {
		insights = append(insights, domain.CostInsight{
			Kind:    domain.CostInsightComparison,
			Title:   "Home Cooking Saves Money",
			Message: fmt.Sprintf("Takeout costs you $%.1fx more than home cooking", monthly.Takeout/monthly.HomeCooked),
			Amount:  monthly.Takeout - monthly.HomeCooked,
		})
	}

	costPerCal := calculateCostPerCalorie(entries)
	if len(costPerCal) >= 2 {
		best := costPerCal[0]
		worst := costPerCal[len(costPerCal)-1]

		if best.TimesEaten >= 3 {
			insights = append(insights, domain.CostInsight{
				Kind:    domain.CostInsightAchievement,
				Title:   "Best Value Meal",
				Message: fmt.Sprintf("%s is your most cost-effective choice at $%.3f per 100 calories", best.Food, best.CostPerCalorie*100),
				Amount:  best.TotalSpent,
			})
		}

		if worst.CostPerCalorie > best.CostPerCalorie*3 && worst.TimesEaten >= 2 {
			insights = append(insights, domain.CostInsight{
				Kind:    domain.CostInsightSpending,
				Title:   "Expensive Choice",
				Message: fmt.Sprintf("%s costs %.1fx more per calorie than %s", worst.Food, worst.CostPerCalorie/best.CostPerCalorie, best.Food),
				Amount:  worst.TotalSpent,
			})
		}
	}

	// Home-cooking streak over the last seven logged meals
	recent := sortedByTimeDesc(entries)
	last7 := recent
	if len(last7) > 7 {
		last7 = last7[:7]
	}
	homeCookedCount := 0
	for _, entry := range last7 {
		if entry.HasTag(domain.TagHomeCooked) {
			homeCookedCount++
		}
	}
	if homeCookedCount >= 5 {
		takeoutMeals := 0
		for _, entry := range entries {
			if entry.HasTag(domain.TagTakeout) {
				takeoutMeals++
			}
		}
		avgTakeoutCost := monthly.Takeout / safeCount(takeoutMeals)
		estimatedSavings := float64(homeCookedCount) * avgTakeoutCost * homeCookedSavingsRate

		insights = append(insights, domain.CostInsight{
			Kind:    domain.CostInsightSavings,
			Title:   fmt.Sprintf("%d-Day Home Cooking Streak!", homeCookedCount),
			Message: fmt.Sprintf("You've saved approximately $%.2f this week by cooking at home", estimatedSavings),
			Amount:  estimatedSavings,
		})
	}

	// Weekly pace projecting well past the monthly total
	weeklyProjection := (weeklyTotal / 7) * 30
	if monthlyTotal > 0 && weeklyProjection > monthlyTotal*1.2 {
		insights = append(insights, domain.CostInsight{
			Kind:    domain.CostInsightSpending,
			Title:   "Spending Increase",
			Message: fmt.Sprintf("Your current pace projects $%.2f/month - %.0f%% higher than usual", weeklyProjection, (weeklyProjection/monthlyTotal-1)*100),
			Amount:  weeklyProjection - monthlyTotal,
		})
	}

	return insights
}

// calculateBudgetStatus reports the week-to-date spend against a weekly
// budget. Weeks start on Sunday in the user's timezone.
func calculateBudgetStatus(entries []domain.MealEntry, weeklyBudget float64, now time.Time) domain.BudgetStatus {
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -int(now.Weekday()))

	spent := 0.0
	for _, entry := range entries {
		if !entry.Time.Before(weekStart) {
			spent += entry.CostOrZero()
		}
	}

	daysElapsed := float64(int(now.Weekday()) + 1)
	dailyBudget := weeklyBudget / 7
	expectedSpending := dailyBudget * daysElapsed

	percentUsed := 0.0
	if weeklyBudget > 0 {
		percentUsed = spent / weeklyBudget * 100
	}

	return domain.BudgetStatus{
		Spent:          spent,
		Remaining:      weeklyBudget - spent,
		PercentUsed:    percentUsed,
		OnTrack:        spent <= expectedSpending*budgetBuffer,
		ProjectedTotal: spent / daysElapsed * 7,
	}
}
