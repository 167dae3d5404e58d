package service

import (
	"context"
	"fmt"
	"math"
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
	// Gap learning window: gaps outside (minLearnedGap, maxLearnedGap)
	// hours are treated as outliers and skipped.
	minLearnedGapHours = 0.5
	maxLearnedGapHours = 12.0

	// maxLearnedMeals bounds how far back gap learning looks.
	maxLearnedMeals = 20

	// defaultLearnedGapHours is assumed when no usable gaps exist.
	defaultLearnedGapHours = 4.0

	// Confidence bounds for the learned prediction.
	minConfidence = 0.3
	maxConfidence = 0.95

	// highProteinGrams marks a meal as high protein for habit tracking.
	highProteinGrams = 20.0

	// Gap thresholds: smaller shortfalls are noise, not gaps.
	minProteinGap = 5.0
	minFiberGap   = 3.0
)

// RecommendService layers predictive analyses over the meal history.
type RecommendService interface {
	// PredictMealTime learns the user's eating rhythm and predicts the
	// next meal with a confidence score.
	PredictMealTime(ctx context.Context, userID uuid.UUID) (*domain.MealTimePrediction, error)
	// ScoreRecipes ranks candidate recipes against history and preferences.
	ScoreRecipes(ctx context.Context, userID uuid.UUID, recipes []domain.Recipe, prefs domain.RecipePreferences) ([]domain.RecipeRecommendation, error)
	// OptimizeBudget ranks historical meals by nutrition per dollar.
	OptimizeBudget(ctx context.Context, userID uuid.UUID, weeklyBudget float64) (*domain.BudgetOptimization, error)
	// Habits summarizes streaks and consistency for tracked habits.
	Habits(ctx context.Context, userID uuid.UUID) ([]domain.HabitPattern, error)
	// NutritionGaps flags nutrients running below target over the last week.
	NutritionGaps(ctx context.Context, userID uuid.UUID) ([]domain.NutritionGap, error)
}

type recommendService struct {
	mealRepo     repository.MealEntryRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
}

// NewRecommendService creates a new RecommendService.
func NewRecommendService(mealRepo repository.MealEntryRepository, userRepo repository.UserRepository, progressRepo repository.ProgressRepository) RecommendService {
	return &recommendService{
		mealRepo:     mealRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
	}
}

func (s *recommendService) PredictMealTime(ctx context.Context, userID uuid.UUID) (*domain.MealTimePrediction, error) {
	tracer := otel.Tracer("meal-tracker-api/recommend")
	ctx, span := tracer.Start(ctx, "RecommendService.PredictMealTime",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	prediction := predictMealTimeFromHistory(entries, now)
	span.SetAttributes(attribute.Float64("prediction.confidence", prediction.Confidence))
	return &prediction, nil
}

func (s *recommendService) ScoreRecipes(ctx context.Context, userID uuid.UUID, recipes []domain.Recipe, prefs domain.RecipePreferences) ([]domain.RecipeRecommendation, error) {
	entries, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return scoreRecipes(recipes, entries, prefs), nil
}

func (s *recommendService) OptimizeBudget(ctx context.Context, userID uuid.UUID, weeklyBudget float64) (*domain.BudgetOptimization, error) {
	entries, _, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := optimizeFoodBudget(entries, weeklyBudget)
	return &result, nil
}

func (s *recommendService) Habits(ctx context.Context, userID uuid.UUID) ([]domain.HabitPattern, error) {
	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analyzeHabits(entries, now.Location()), nil
}

func (s *recommendService) NutritionGaps(ctx context.Context, userID uuid.UUID) ([]domain.NutritionGap, error) {
	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	targets, err := s.progressRepo.GetTargets(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analyzeNutritionGaps(entries, *targets, now), nil
}

func (s *recommendService) load(ctx context.Context, userID uuid.UUID) ([]domain.MealEntry, time.Time, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, time.Time{}, err
	}
	entries, err := s.mealRepo.ListRecent(ctx, userID, 0)
	if err != nil {
		return nil, time.Time{}, err
	}
	return entries, time.Now().In(user.Location()), nil
}

// predictMealTimeFromHistory averages recent between-meal gaps, stretches the
// gap by the last meal's satiety, and scores confidence from gap variance.
func predictMealTimeFromHistory(entries []domain.MealEntry, now time.Time) domain.MealTimePrediction {
	if len(entries) == 0 {
		return domain.MealTimePrediction{
			PredictedTime: now.Add(4 * time.Hour),
			Confidence:    minConfidence,
			Reason:        "Default prediction (no data)",
			HungerLevel:   5,
		}
	}

	recent := sortedByTimeDesc(entries)
	lastMeal := recent[0]
	hoursSince := hoursBetween(lastMeal.Time, now)

	var gaps []float64
	for i := 0; i < len(recent)-1 && i < maxLearnedMeals; i++ {
		gap := hoursBetween(recent[i+1].Time, recent[i].Time)
		if gap > minLearnedGapHours && gap < maxLearnedGapHours {
			gaps = append(gaps, gap)
		}
	}

	avgGap := defaultLearnedGapHours
	if len(gaps) > 0 {
		sum := 0.0
		for _, gap := range gaps {
			sum += gap
		}
		avgGap = sum / float64(len(gaps))
	}

	proteinFactor := math.Min(lastMeal.ProteinOrZero()/30, 1)
	fiberFactor := math.Min(lastMeal.FiberOrZero()/10, 1)
	satietyMultiplier := 1 + proteinFactor*0.3 + fiberFactor*0.2

	predictedGap := avgGap * satietyMultiplier
	predictedTime := lastMeal.Time.Add(time.Duration(predictedGap * float64(time.Hour)))

	gapVariance := 10.0
	if len(gaps) > 1 {
		variance := 0.0
		for _, gap := range gaps {
			variance += (gap - avgGap) * (gap - avgGap)
		}
		gapVariance = variance / float64(len(gaps))
	}
	confidence := math.Max(minConfidence, math.Min(maxConfidence, 1-gapVariance/10))

	hungerLevel := int(math.Round(hoursSince / predictedGap * 10))
	if hungerLevel < 1 {
		hungerLevel = 1
	}
	if hungerLevel > 10 {
		hungerLevel = 10
	}

	return domain.MealTimePrediction{
		PredictedTime: predictedTime,
		Confidence:    confidence,
		Reason:        fmt.Sprintf("Based on your %d recent meals (avg %.1fh gap) + meal composition", len(gaps), avgGap),
		HungerLevel:   hungerLevel,
	}
}

// scoreRecipes assigns each recipe a 0-100 score from budget/time fit,
// category and ingredient familiarity, novelty and the avoid list.
func scoreRecipes(recipes []domain.Recipe, entries []domain.MealEntry, prefs domain.RecipePreferences) []domain.RecipeRecommendation {
	favoriteFoods := make(map[string]int)
	categoryPreference := make(map[string]int)
	for _, entry := range entries {
		favoriteFoods[strings.ToLower(entry.What)]++
		for _, tag := range entry.Tags {
			categoryPreference[tag]++
		}
	}

	recent := sortedByTimeDesc(entries)
	if len(recent) > 10 {
		recent = recent[:10]
	}
	recentFoods := make([]string, 0, len(recent))
	for _, entry := range recent {
		recentFoods = append(recentFoods, strings.ToLower(entry.What))
	}

	avoid := make(map[string]bool, len(prefs.AvoidCategories))
	for _, category := range prefs.AvoidCategories {
		avoid[category] = true
	}

	recommendations := make([]domain.RecipeRecommendation, 0, len(recipes))
	for _, recipe := range recipes {
		score := 50
		var reasons []string

		recipeCost := 0.0
		if recipe.EstimatedCost != nil {
			recipeCost = *recipe.EstimatedCost
		}
		matchesBudget := prefs.MaxCost == nil || recipeCost <= *prefs.MaxCost
		if matchesBudget {
			score += 15
			reasons = append(reasons, "Within budget")
		} else {
			score -= 20
		}

		recipeTime := 0.0
		if recipe.EstimatedTime != nil {
			recipeTime = *recipe.EstimatedTime
		}
		matchesTime := prefs.MaxTime == nil || recipeTime <= *prefs.MaxTime
		if matchesTime {
			score += 15
			reasons = append(reasons, "Quick to prepare")
		}

		// Recipe macro data is not available from the lookup services, so
		// the protein match stays a flat bonus.
		matchesMacros := true
		if prefs.TargetProtein != nil {
			score += 10
			reasons = append(reasons, "Good protein source")
		}

		if categoryCount := categoryPreference[recipe.Category]; categoryCount > 0 {
			bonus := categoryCount * 3
			if bonus > 20 {
				bonus = 20
			}
			score += bonus
			reasons = append(reasons, fmt.Sprintf("You often eat %s", recipe.Category))
		}

		familiarIngredients := 0
		for _, item := range recipe.Ingredients {
			ingredient := strings.ToLower(item.Ingredient)
			for food := range favoriteFoods {
				if strings.Contains(food, ingredient) || strings.Contains(ingredient, food) {
					familiarIngredients++
					break
				}
			}
		}
		if familiarIngredients > 0 {
			bonus := familiarIngredients * 3
			if bonus > 15 {
				bonus = 15
			}
			score += bonus
			reasons = append(reasons, "Uses ingredients you like")
		}

		recipeName := strings.ToLower(recipe.Name)
		novel := true
		for _, food := range recentFoods {
			if strings.Contains(recipeName, food) || strings.Contains(food, recipeName) {
				novel = false
				break
			}
		}
		if novel {
			score += 10
			reasons = append(reasons, "Adds variety")
		}

		if avoid[recipe.Category] {
			score -= 30
		}

		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}

		recommendations = append(recommendations, domain.RecipeRecommendation{
			Recipe:        recipe,
			Score:         score,
			Reasons:       reasons,
			MatchesBudget: matchesBudget,
			MatchesTime:   matchesTime,
			MatchesMacros: matchesMacros,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
	return recommendations
}

// optimizeFoodBudget ranks cost-bearing, calorie-bearing meals by nutrition
// per dollar and projects a weekly spend from the top three.
func optimizeFoodBudget(entries []domain.MealEntry, weeklyBudget float64) domain.BudgetOptimization {
	var ranked []domain.EfficientFood
	for _, entry := range entries {
		if entry.Cost == nil || *entry.Cost <= 0 || entry.Calories == nil || *entry.Calories == 0 {
			continue
		}
		ranked = append(ranked, domain.EfficientFood{
			Food:       entry.What,
			Cost:       *entry.Cost,
			Calories:   *entry.Calories,
			Protein:    entry.ProteinOrZero(),
			Efficiency: (*entry.Calories + entry.ProteinOrZero()*10) / *entry.Cost,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Efficiency > ranked[j].Efficiency
	})
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}
	avgCost := 0.0
	for _, food := range top {
		avgCost += food.Cost
	}
	avgCost /= safeCount(len(top))

	const mealsPerDay = 3
	projected := avgCost * mealsPerDay * 7

	return domain.BudgetOptimization{
		DailyTarget:       weeklyBudget / 7,
		Recommended:       ranked,
		ProjectedSpending: projected,
		Savings:           weeklyBudget - projected,
	}
}

// analyzeHabits reports streaks and consistency for home cooking, high
// protein meals and meal-time regularity.
func analyzeHabits(entries []domain.MealEntry, loc *time.Location) []domain.HabitPattern {
	recent := sortedByTimeDesc(entries)

	homeCooked := func(e domain.MealEntry) bool { return e.HasTag(domain.TagHomeCooked) }
	highProtein := func(e domain.MealEntry) bool { return e.ProteinOrZero() >= highProteinGrams }

	homeStreak := calculateHabitStreak(recent, homeCooked)
	homeSuggestion := "Try meal prepping to make home cooking easier"
	if homeStreak.current >= 5 {
		homeSuggestion = "Amazing! Keep the streak going!"
	}

	proteinStreak := calculateHabitStreak(recent, highProtein)

	patterns := []domain.HabitPattern{
		{
			Habit:         "Home Cooking",
			CurrentStreak: homeStreak.current,
			LongestStreak: homeStreak.longest,
			Consistency:   calculateConsistency(entries, homeCooked),
			Trend:         streakTrend(homeStreak),
			Suggestion:    homeSuggestion,
		},
		{
			Habit:         "High Protein Meals",
			CurrentStreak: proteinStreak.current,
			LongestStreak: proteinStreak.longest,
			Consistency:   calculateConsistency(entries, highProtein),
			Trend:         streakTrend(proteinStreak),
			Suggestion:    "Aim for 20g+ protein per meal for better satiety",
		},
	}

	timingConsistency := int(math.Max(0, 100-calculateMealTimingVariance(entries, loc)))
	timingPattern := domain.HabitPattern{
		Habit:       "Consistent Meal Times",
		Consistency: timingConsistency,
		Trend:       domain.HabitDeclining,
		Suggestion:  "Try eating at similar times daily for better hunger regulation",
	}
	if timingConsistency > 70 {
		timingPattern.Trend = domain.HabitStable
		timingPattern.Suggestion = "Great rhythm! Your body loves consistency"
	}

	return append(patterns, timingPattern)
}

type habitStreak struct {
	current int
	longest int
}

func streakTrend(s habitStreak) domain.HabitTrend {
	if float64(s.current) > float64(s.longest)*0.7 {
		return domain.HabitImproving
	}
	return domain.HabitStable
}

// calculateHabitStreak walks entries newest first. The current streak is the
// run of matches at the head; the longest is the best run anywhere.
func calculateHabitStreak(recent []domain.MealEntry, condition func(domain.MealEntry) bool) habitStreak {
	current := 0
	longest := 0
	run := 0
	headRun := true

	for _, entry := range recent {
		if condition(entry) {
			run++
			if headRun {
				current = run
			}
			if run > longest {
				longest = run
			}
		} else {
			headRun = false
			run = 0
		}
	}
	return habitStreak{current: current, longest: longest}
}

func calculateConsistency(entries []domain.MealEntry, condition func(domain.MealEntry) bool) int {
	matching := 0
	for _, entry := range entries {
		if condition(entry) {
			matching++
		}
	}
	return int(math.Round(float64(matching) / safeCount(len(entries)) * 100))
}

// calculateMealTimingVariance buckets meals into Breakfast/Lunch/Dinner/Other
// slots and averages the per-slot standard deviation of the hour of day.
// Lower is better.
func calculateMealTimingVariance(entries []domain.MealEntry, loc *time.Location) float64 {
	hoursBySlot := make(map[string][]float64)
	for _, entry := range entries {
		slot := "Other"
		for _, tag := range []string{domain.TagBreakfast, domain.TagLunch, domain.TagDinner} {
			if entry.HasTag(tag) {
				slot = tag
				break
			}
		}
		hoursBySlot[slot] = append(hoursBySlot[slot], float64(entry.Time.In(loc).Hour()))
	}

	totalDeviation := 0.0
	slots := 0
	for _, hours := range hoursBySlot {
		if len(hours) < 2 {
			continue
		}
		avg := 0.0
		for _, h := range hours {
			avg += h
		}
		avg /= float64(len(hours))

		variance := 0.0
		for _, h := range hours {
			variance += (h - avg) * (h - avg)
		}
		variance /= float64(len(hours))

		totalDeviation += math.Sqrt(variance)
		slots++
	}

	if slots == 0 {
		return 50
	}
	return totalDeviation / float64(slots)
}

// analyzeNutritionGaps compares the trailing week's per-meal averages against
// targets. Small shortfalls are ignored.
func analyzeNutritionGaps(entries []domain.MealEntry, targets domain.NutritionTargets, now time.Time) []domain.NutritionGap {
	cutoff := now.AddDate(0, 0, -7)

	var recent []domain.MealEntry
	for _, entry := range entries {
		if !entry.Time.Before(cutoff) {
			recent = append(recent, entry)
		}
	}

	avgProtein := 0.0
	avgFiber := 0.0
	for _, entry := range recent {
		avgProtein += entry.ProteinOrZero()
		avgFiber += entry.FiberOrZero()
	}
	avgProtein /= safeCount(len(recent))
	avgFiber /= safeCount(len(recent))

	var gaps []domain.NutritionGap

	if proteinGap := targets.Protein - avgProtein; proteinGap > minProteinGap {
		severity := domain.GapLow
		if proteinGap > 30 {
			severity = domain.GapHigh
		} else if proteinGap > 15 {
			severity = domain.GapMedium
		}
		gaps = append(gaps, domain.NutritionGap{
			Nutrient: "Protein",
			Current:  math.Round(avgProtein),
			Target:   targets.Protein,
			Gap:      math.Round(proteinGap),
			Severity: severity,
			Suggestions: []string{
				"Add chicken breast (+30g protein)",
				"Greek yogurt breakfast (+15g)",
				"Protein shake (+25g)",
				"Eggs for lunch (+12g per 2 eggs)",
			},
		})
	}

	if fiberGap := targets.Fiber - avgFiber; fiberGap > minFiberGap {
		severity := domain.GapLow
		if fiberGap > 15 {
			severity = domain.GapHigh
		} else if fiberGap > 8 {
			severity = domain.GapMedium
		}
		gaps = append(gaps, domain.NutritionGap{
			Nutrient: "Fiber",
			Current:  math.Round(avgFiber),
			Target:   targets.Fiber,
			Gap:      math.Round(fiberGap),
			Severity: severity,
			Suggestions: []string{
				"Add berries to breakfast (+4g)",
				"Switch to whole grain bread (+3g)",
				"Add beans to meals (+8g)",
				"Snack on vegetables (+5g)",
			},
		})
	}

	return gaps
}
