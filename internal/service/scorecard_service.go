package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// XPAllGoodBonus is awarded when every category grades A or better.
	XPAllGoodBonus = 100

	// trendDelta is the change in a raw daily total needed before the trend
	// leaves "stable".
	trendDelta = 5.0

	// maxHomeCookingStreak caps the home-cooking streak walk for display.
	maxHomeCookingStreak = 30

	// maxLoggingStreak bounds the day-by-day logging streak walk.
	maxLoggingStreak = 365

	// xpPerLevel is the XP curve slope. Level N requires N*xpPerLevel XP.
	xpPerLevel = 500
)

// levelTitles is the ladder of player titles. Levels past the end keep the
// last title.
var levelTitles = []string{
	"Beginner",
	"Novice Chef",
	"Home Cook",
	"Meal Planner",
	"Nutrition Aware",
	"Balanced Eater",
	"Health Conscious",
	"Meal Master",
	"Nutrition Pro",
	"Wellness Expert",
	"Food Scientist",
	"Culinary Artist",
	"Master Chef",
	"Nutrition Guru",
	"Legendary Cook",
}

// ScoreCardService grades daily nutrition against the user's targets.
type ScoreCardService interface {
	// Daily computes today's score card in the user's timezone.
	Daily(ctx context.Context, userID uuid.UUID) (*domain.DailyScoreCard, error)
	// Weekly aggregates score cards over the trailing seven days.
	Weekly(ctx context.Context, userID uuid.UUID) (*domain.WeeklyScoreSummary, error)
}

type scoreCardService struct {
	mealRepo     repository.MealEntryRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
}

// NewScoreCardService creates a new ScoreCardService.
func NewScoreCardService(mealRepo repository.MealEntryRepository, userRepo repository.UserRepository, progressRepo repository.ProgressRepository) ScoreCardService {
	return &scoreCardService{
		mealRepo:     mealRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
	}
}

func (s *scoreCardService) Daily(ctx context.Context, userID uuid.UUID) (*domain.DailyScoreCard, error) {
	tracer := otel.Tracer("meal-tracker-api/scorecard")
	ctx, span := tracer.Start(ctx, "ScoreCardService.Daily",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	targets, err := s.progressRepo.GetTargets(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.mealRepo.ListRecent(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	card := generateDailyScoreCard(entries, *targets, time.Now().In(user.Location()))
	span.SetAttributes(
		attribute.Int("scorecard.overall_score", card.OverallScore),
		attribute.Int("scorecard.xp_earned", card.XPEarned),
	)
	return &card, nil
}

func (s *scoreCardService) Weekly(ctx context.Context, userID uuid.UUID) (*domain.WeeklyScoreSummary, error) {
	tracer := otel.Tracer("meal-tracker-api/scorecard")
	ctx, span := tracer.Start(ctx, "ScoreCardService.Weekly",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	targets, err := s.progressRepo.GetTargets(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.mealRepo.ListRecent(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	summary := getWeeklyScoreSummary(entries, *targets, time.Now().In(user.Location()))
	return &summary, nil
}

// calculateGrade maps a 0-100 percentage onto a letter grade.
func calculateGrade(percentage float64) domain.Grade {
	switch {
	case percentage >= 95:
		return domain.GradeAPlus
	case percentage >= 85:
		return domain.GradeA
	case percentage >= 75:
		return domain.GradeB
	case percentage >= 65:
		return domain.GradeC
	case percentage >= 55:
		return domain.GradeD
	default:
		return domain.GradeF
	}
}

func gradeColor(grade domain.Grade) string {
	switch grade {
	case domain.GradeAPlus:
		return "#4CAF50"
	case domain.GradeA:
		return "#8BC34A"
	case domain.GradeB:
		return "#FFC107"
	case domain.GradeC:
		return "#FF9800"
	case domain.GradeD:
		return "#FF5722"
	case domain.GradeF:
		return "#F44336"
	default:
		return "#9E9E9E"
	}
}

func calculateTrend(current, previous float64) domain.Trend {
	diff := current - previous
	if diff > trendDelta {
		return domain.TrendUp
	}
	if diff < -trendDelta {
		return domain.TrendDown
	}
	return domain.TrendStable
}

type dayTotals struct {
	calories float64
	protein  float64
	fiber    float64
	cost     float64
}

func totalsForDay(entries []domain.MealEntry, day string, loc *time.Location) dayTotals {
	var totals dayTotals
	for _, entry := range entries {
		if dayKey(entry.Time, loc) != day {
			continue
		}
		totals.calories += entry.CaloriesOrZero()
		totals.protein += entry.ProteinOrZero()
		totals.fiber += entry.FiberOrZero()
		totals.cost += entry.CostOrZero()
	}
	return totals
}

// generateDailyScoreCard grades the calendar day of now against the targets.
// Trends compare raw totals against the previous day.
func generateDailyScoreCard(entries []domain.MealEntry, targets domain.NutritionTargets, now time.Time) domain.DailyScoreCard {
	loc := now.Location()
	today := dayKey(now, loc)
	yesterday := dayKey(now.AddDate(0, 0, -1), loc)

	var todayEntries []domain.MealEntry
	for _, entry := range entries {
		if dayKey(entry.Time, loc) == today {
			todayEntries = append(todayEntries, entry)
		}
	}

	totals := totalsForDay(entries, today, loc)
	prev := totalsForDay(entries, yesterday, loc)

	var scores []domain.NutritionScore

	caloriePct := math.Min(100, totals.calories/targets.Calories*100)
	calorieGrade := calculateGrade(caloriePct)
	calorieMessage := "Almost there!"
	switch {
	case caloriePct >= 95:
		calorieMessage = "Perfect energy balance!"
	case caloriePct >= 80:
		calorieMessage = "Good energy intake"
	case caloriePct < 70:
		calorieMessage = "Eat more to hit your goal"
	}
	scores = append(scores, domain.NutritionScore{
		Category:   "Calories",
		Current:    math.Round(totals.calories),
		Target:     targets.Calories,
		Percentage: int(math.Round(caloriePct)),
		Grade:      calorieGrade,
		Color:      gradeColor(calorieGrade),
		Trend:      calculateTrend(totals.calories, prev.calories),
		Message:    calorieMessage,
	})

	proteinPct := math.Min(100, totals.protein/targets.Protein*100)
	proteinGrade := calculateGrade(proteinPct)
	proteinMessage := fmt.Sprintf("Need %.0fg more", math.Round(targets.Protein-totals.protein))
	switch {
	case proteinPct >= 90:
		proteinMessage = "Crushing your protein goals!"
	case proteinPct >= 75:
		proteinMessage = "Good protein intake"
	}
	scores = append(scores, domain.NutritionScore{
		Category:   "Protein",
		Current:    math.Round(totals.protein),
		Target:     targets.Protein,
		Percentage: int(math.Round(proteinPct)),
		Grade:      proteinGrade,
		Color:      gradeColor(proteinGrade),
		Trend:      calculateTrend(totals.protein, prev.protein),
		Message:    proteinMessage,
	})

	fiberPct := math.Min(100, totals.fiber/targets.Fiber*100)
	fiberGrade := calculateGrade(fiberPct)
	fiberMessage := "Add more veggies and whole grains"
	switch {
	case fiberPct >= 90:
		fiberMessage = "Excellent fiber intake!"
	case fiberPct >= 75:
		fiberMessage = "Good digestive health"
	}
	scores = append(scores, domain.NutritionScore{
		Category:   "Fiber",
		Current:    math.Round(totals.fiber),
		Target:     targets.Fiber,
		Percentage: int(math.Round(fiberPct)),
		Grade:      fiberGrade,
		Color:      gradeColor(fiberGrade),
		Trend:      calculateTrend(totals.fiber, prev.fiber),
		Message:    fiberMessage,
	})

	if targets.Budget > 0 {
		budgetPct := math.Max(0, 100-totals.cost/targets.Budget*100)
		budgetGrade := calculateGrade(budgetPct)
		savings := math.Max(0, targets.Budget-totals.cost)
		budgetMessage := "On track!"
		if savings > 0 {
			budgetMessage = fmt.Sprintf("Saved $%.2f today!", savings)
		} else if totals.cost > targets.Budget {
			budgetMessage = fmt.Sprintf("Over budget by $%.2f", totals.cost-targets.Budget)
		}
		scores = append(scores, domain.NutritionScore{
			Category:   "Budget",
			Current:    round2(totals.cost),
			Target:     targets.Budget,
			Percentage: int(math.Round(budgetPct)),
			Grade:      budgetGrade,
			Color:      gradeColor(budgetGrade),
			Trend:      domain.TrendStable,
			Message:    budgetMessage,
		})
	}

	avgScore := 0.0
	for _, score := range scores {
		avgScore += float64(score.Percentage)
	}
	avgScore /= float64(len(scores))

	xpEarned := 0
	for _, score := range scores {
		switch {
		case score.Percentage >= 95:
			xpEarned += 50
		case score.Percentage >= 85:
			xpEarned += 35
		case score.Percentage >= 75:
			xpEarned += 20
		case score.Percentage >= 65:
			xpEarned += 10
		}
	}

	allGood := true
	for _, score := range scores {
		if score.Grade != domain.GradeA && score.Grade != domain.GradeAPlus {
			allGood = false
			break
		}
	}
	if allGood {
		xpEarned += XPAllGoodBonus
	}

	var achievements []string
	perfect := true
	for _, score := range scores {
		if score.Grade != domain.GradeAPlus {
			perfect = false
			break
		}
	}
	if perfect {
		achievements = append(achievements, "Perfect Day!")
	}
	if totals.protein >= targets.Protein*1.2 {
		achievements = append(achievements, "Protein Champion")
	}
	if targets.Budget > 0 && totals.cost < targets.Budget*0.8 {
		achievements = append(achievements, "Budget Master")
	}
	homeChef := len(todayEntries) > 0
	for _, entry := range todayEntries {
		if !entry.HasTag(domain.TagHomeCooked) {
			homeChef = false
			break
		}
	}
	if homeChef {
		achievements = append(achievements, "Home Chef")
	}

	return domain.DailyScoreCard{
		Date:         today,
		Scores:       scores,
		OverallGrade: calculateGrade(avgScore),
		OverallScore: int(math.Round(avgScore)),
		XPEarned:     xpEarned,
		Streaks:      calculateStreaks(entries, now),
		Achievements: achievements,
	}
}

// calculateStreaks walks calendar days backward for the home-cooking and
// daily-logging streaks.
func calculateStreaks(entries []domain.MealEntry, now time.Time) []domain.Streak {
	loc := now.Location()
	var streaks []domain.Streak

	// Every meal on a day must be home-cooked for the day to count.
	entriesByDay := make(map[string][]domain.MealEntry)
	for _, entry := range entries {
		day := dayKey(entry.Time, loc)
		entriesByDay[day] = append(entriesByDay[day], entry)
	}

	homeCookingStreak := 0
	seen := make(map[string]bool)
	for _, entry := range sortedByTimeDesc(entries) {
		day := dayKey(entry.Time, loc)
		if seen[day] {
			continue
		}
		seen[day] = true

		allHomeCooked := true
		for _, dayEntry := range entriesByDay[day] {
			if !dayEntry.HasTag(domain.TagHomeCooked) {
				allHomeCooked = false
				break
			}
		}
		if !allHomeCooked {
			break
		}
		homeCookingStreak++
		if homeCookingStreak >= maxHomeCookingStreak {
			break
		}
	}
	if homeCookingStreak > 0 {
		streaks = append(streaks, domain.Streak{Name: "Home Cooking", Count: homeCookingStreak})
	}

	loggingStreak := 0
	for i := 0; i < maxLoggingStreak; i++ {
		day := dayKey(now.AddDate(0, 0, -i), loc)
		if len(entriesByDay[day]) == 0 {
			break
		}
		loggingStreak++
	}
	if loggingStreak > 0 {
		streaks = append(streaks, domain.Streak{Name: "Daily Logging", Count: loggingStreak})
	}

	return streaks
}

// getWeeklyScoreSummary recomputes a score card for each of the trailing
// seven days that has entries, grading each day against the history known at
// that point.
func getWeeklyScoreSummary(entries []domain.MealEntry, targets domain.NutritionTargets, now time.Time) domain.WeeklyScoreSummary {
	loc := now.Location()

	var cards []domain.DailyScoreCard
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		key := dayKey(day, loc)

		hasEntries := false
		var truncated []domain.MealEntry
		for _, entry := range entries {
			if dayKey(entry.Time, loc) == key {
				hasEntries = true
			}
			if !entry.Time.After(day) {
				truncated = append(truncated, entry)
			}
		}
		if !hasEntries {
			continue
		}
		cards = append(cards, generateDailyScoreCard(truncated, targets, day))
	}

	summary := domain.WeeklyScoreSummary{}
	total := 0.0
	for _, card := range cards {
		total += float64(card.OverallScore)
		summary.TotalXP += card.XPEarned
		if card.OverallScore > summary.BestDay.Score {
			summary.BestDay.Date = card.Date
			summary.BestDay.Score = card.OverallScore
		}
	}
	summary.WeekAverage = int(math.Round(total / safeCount(len(cards))))

	// Recent half vs older half; cards run newest first.
	recentHalf := cards
	if len(recentHalf) > 3 {
		recentHalf = recentHalf[:3]
	}
	var olderHalf []domain.DailyScoreCard
	if len(cards) > 3 {
		olderHalf = cards[3:]
	}

	recentAvg, olderAvg := 0.0, 0.0
	for _, card := range recentHalf {
		recentAvg += float64(card.OverallScore)
	}
	recentAvg /= safeCount(len(recentHalf))
	for _, card := range olderHalf {
		olderAvg += float64(card.OverallScore)
	}
	olderAvg /= safeCount(len(olderHalf))
	summary.Improvement = int(math.Round(olderAvg - recentAvg))

	return summary
}

// calculateLevel places a cumulative XP total on the level curve.
func calculateLevel(totalXP int) domain.LevelInfo {
	level := 1
	xpRequired := xpPerLevel
	totalRequired := 0

	for totalXP >= totalRequired+xpRequired {
		totalRequired += xpRequired
		level++
		xpRequired = level * xpPerLevel
	}

	currentXP := totalXP - totalRequired

	titleIdx := level - 1
	if titleIdx >= len(levelTitles) {
		titleIdx = len(levelTitles) - 1
	}

	return domain.LevelInfo{
		Level:         level,
		CurrentXP:     currentXP,
		XPToNextLevel: xpRequired,
		Progress:      int(math.Round(float64(currentXP) / float64(xpRequired) * 100)),
		Title:         levelTitles[titleIdx],
	}
}
