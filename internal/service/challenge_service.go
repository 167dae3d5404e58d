package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// Recommended challenges sit between these progress bounds, skipping
	// both the nearly-done and the out-of-reach.
	recommendMinPercent = 20
	recommendMaxPercent = 90
	maxRecommended      = 3

	// maxStreakWalkDays bounds the completion-streak walk.
	maxStreakWalkDays = 365
)

// cuisineTags are the tag values counted by the distinct-cuisines rule.
var cuisineTags = []string{
	"Italian", "Mexican", "Asian", "Indian", "Mediterranean",
	"Japanese", "Thai", "Chinese", "French", "American",
}

// ChallengeService evaluates the active challenge catalog against a user's
// meal history.
type ChallengeService interface {
	// List returns every active challenge merged with the user's progress.
	List(ctx context.Context, userID uuid.UUID) ([]domain.ChallengeWithProgress, error)
	// Stats aggregates completion counts, the weekly streak and badges.
	Stats(ctx context.Context, userID uuid.UUID) (*domain.UserChallengeStats, error)
	// Recommended picks up to three in-progress challenges worth pursuing.
	Recommended(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error)
	// Complete claims a finished challenge's XP. Idempotent per challenge.
	Complete(ctx context.Context, userID uuid.UUID, challengeID string) (*domain.GameProgress, error)
	// Leaderboard returns the standings for one challenge.
	Leaderboard(ctx context.Context, userID uuid.UUID, challengeID string) ([]domain.LeaderboardRow, error)
}

type challengeService struct {
	mealRepo     repository.MealEntryRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
	leaderboard  LeaderboardProvider
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(mealRepo repository.MealEntryRepository, userRepo repository.UserRepository, progressRepo repository.ProgressRepository, leaderboard LeaderboardProvider) ChallengeService {
	return &challengeService{
		mealRepo:     mealRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		leaderboard:  leaderboard,
	}
}

func (s *challengeService) List(ctx context.Context, userID uuid.UUID) ([]domain.ChallengeWithProgress, error) {
	tracer := otel.Tracer("meal-tracker-api/challenge")
	ctx, span := tracer.Start(ctx, "ChallengeService.List",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	challenges := activeChallenges(now)
	result := make([]domain.ChallengeWithProgress, 0, len(challenges))
	for _, challenge := range challenges {
		result = append(result, domain.ChallengeWithProgress{
			Challenge:         challenge,
			ChallengeProgress: calculateChallengeProgress(challenge, entries, now),
		})
	}
	span.SetAttributes(attribute.Int("challenges.count", len(result)))
	return result, nil
}

func (s *challengeService) Stats(ctx context.Context, userID uuid.UUID) (*domain.UserChallengeStats, error) {
	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := calculateUserChallengeStats(entries, progress, now)
	return &stats, nil
}

func (s *challengeService) Recommended(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error) {
	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommendChallenges(entries, now), nil
}

func (s *challengeService) Complete(ctx context.Context, userID uuid.UUID, challengeID string) (*domain.GameProgress, error) {
	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	challenge, ok := findChallenge(activeChallenges(now), challengeID)
	if !ok {
		return nil, domain.ErrUnknownChallenge
	}

	if !calculateChallengeProgress(challenge, entries, now).Completed {
		return nil, domain.ErrChallengeIncomplete
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Claiming twice is a no-op, not an error.
	if !progress.HasCompleted(challengeID) {
		progress.TotalXP += challenge.XPReward
		progress.CompletedChallenges = append(progress.CompletedChallenges, challengeID)
		if err := s.progressRepo.SaveProgress(ctx, progress); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

func (s *challengeService) Leaderboard(ctx context.Context, userID uuid.UUID, challengeID string) ([]domain.LeaderboardRow, error) {
	entries, now, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	challenge, ok := findChallenge(activeChallenges(now), challengeID)
	if !ok {
		return nil, domain.ErrUnknownChallenge
	}

	progress := calculateChallengeProgress(challenge, entries, now)
	return s.leaderboard.Standings(ctx, challengeID, progress.Current)
}

func (s *challengeService) load(ctx context.Context, userID uuid.UUID) ([]domain.MealEntry, time.Time, error) {
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

func findChallenge(challenges []domain.Challenge, id string) (domain.Challenge, bool) {
	for _, challenge := range challenges {
		if challenge.ID == id {
			return challenge, true
		}
	}
	return domain.Challenge{}, false
}

// activeChallenges builds the catalog with windows anchored to now. Weekly
// windows run Sunday to Sunday, monthly windows span the calendar month.
func activeChallenges(now time.Time) []domain.Challenge {
	loc := now.Location()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)
	dayEnd := dayStart.AddDate(0, 0, 1)

	return []domain.Challenge{
		{
			ID:          "home-chef-week",
			Title:       "Home Chef Week",
			Description: "Cook all your meals at home for 7 days straight",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyMedium,
			XPReward:    500,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days of home cooking"},
			Rule: domain.ChallengeRule{
				Kind: domain.RuleDistinctDaysWithTag,
				Tags: []string{domain.TagHomeCooked},
			},
			Participants: 1247,
			TopScore:     7,
		},
		{
			ID:          "protein-power",
			Title:       "Protein Power",
			Description: "Hit your protein goal every day this week",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyMedium,
			XPReward:    400,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days hitting protein goal"},
			Rule: domain.ChallengeRule{
				Kind:      domain.RuleDistinctDaysMeetingDailyTotal,
				Metric:    domain.MetricProtein,
				Threshold: 150,
			},
			Participants: 892,
			TopScore:     7,
		},
		{
			ID:          "budget-warrior",
			Title:       "Budget Warrior",
			Description: "Stay under your daily budget for the whole week",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyHard,
			XPReward:    600,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days under budget"},
			Rule: domain.ChallengeRule{
				Kind:      domain.RuleDistinctDaysMeetingDailyTotal,
				Metric:    domain.MetricCost,
				Threshold: 20,
				AtMost:    true,
			},
			Participants: 543,
			TopScore:     7,
		},
		{
			ID:          "veggie-master",
			Title:       "Veggie Master",
			Description: "Include vegetables in every meal today",
			Type:        domain.ChallengeDaily,
			Difficulty:  domain.DifficultyEasy,
			XPReward:    100,
			StartDate:   dayStart,
			EndDate:     dayEnd,
			Goal:        domain.ChallengeGoal{Target: 3, Unit: "meals", Description: "Meals with vegetables"},
			Rule: domain.ChallengeRule{
				Kind:      domain.RuleCountMatchingRecords,
				Tags:      []string{domain.TagVegetarian, domain.TagVegan},
				TodayOnly: true,
			},
			Participants: 2341,
			TopScore:     3,
		},
		{
			ID:          "meal-prep-marathon",
			Title:       "Meal Prep Marathon",
			Description: "Prepare and log at least 5 meals this month",
			Type:        domain.ChallengeMonthly,
			Difficulty:  domain.DifficultyEasy,
			XPReward:    300,
			StartDate:   monthStart,
			EndDate:     monthEnd,
			Goal:        domain.ChallengeGoal{Target: 5, Unit: "meals", Description: "Meal prep sessions"},
			Rule: domain.ChallengeRule{
				Kind: domain.RuleCountMatchingRecords,
				Tags: []string{domain.TagMealPrep},
			},
			Participants: 1876,
			TopScore:     12,
		},
		{
			ID:          "breakfast-champion",
			Title:       "Breakfast Champion",
			Description: "Never skip breakfast for 7 days",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyEasy,
			XPReward:    300,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days with breakfast logged"},
			Rule: domain.ChallengeRule{
				Kind: domain.RuleDistinctDaysWithTag,
				Tags: []string{domain.TagBreakfast},
			},
			Participants: 1523,
			TopScore:     7,
		},
		{
			ID:          "international-cuisine",
			Title:       "Around the World",
			Description: "Try 5 different cuisines this month",
			Type:        domain.ChallengeMonthly,
			Difficulty:  domain.DifficultyMedium,
			XPReward:    500,
			StartDate:   monthStart,
			EndDate:     monthEnd,
			Goal:        domain.ChallengeGoal{Target: 5, Unit: "cuisines", Description: "Different cuisines tried"},
			Rule: domain.ChallengeRule{
				Kind: domain.RuleDistinctTagValues,
				Tags: cuisineTags,
			},
			Participants: 734,
			TopScore:     8,
		},
		{
			ID:          "hydration-hero",
			Title:       "Hydration Hero",
			Description: "Drink 8 glasses of water every day this week",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyEasy,
			XPReward:    250,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days well hydrated"},
			// Water intake is not captured in meal logs.
			Rule:         domain.ChallengeRule{Kind: domain.RuleManual},
			Participants: 2156,
			TopScore:     7,
		},
		{
			ID:          "leftover-zero",
			Title:       "Zero Waste Week",
			Description: "Use up all leftovers, no food waste",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyHard,
			XPReward:    550,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days with zero waste"},
			// Waste tracking is self-reported, not derivable from logs.
			Rule:         domain.ChallengeRule{Kind: domain.RuleManual},
			Participants: 421,
			TopScore:     7,
		},
		{
			ID:          "fiber-focus",
			Title:       "Fiber Focus",
			Description: "Get 25g+ of fiber every day this week",
			Type:        domain.ChallengeWeekly,
			Difficulty:  domain.DifficultyMedium,
			XPReward:    400,
			StartDate:   weekStart,
			EndDate:     weekEnd,
			Goal:        domain.ChallengeGoal{Target: 7, Unit: "days", Description: "Days hitting fiber goal"},
			Rule: domain.ChallengeRule{
				Kind:      domain.RuleDistinctDaysMeetingDailyTotal,
				Metric:    domain.MetricFiber,
				Threshold: 25,
			},
			Participants: 678,
			TopScore:     7,
		},
	}
}

func metricValue(entry domain.MealEntry, metric domain.DailyMetric) float64 {
	switch metric {
	case domain.MetricProtein:
		return entry.ProteinOrZero()
	case domain.MetricFiber:
		return entry.FiberOrZero()
	case domain.MetricCost:
		return entry.CostOrZero()
	default:
		return 0
	}
}

// calculateChallengeProgress counts a user's progress using the challenge's
// rule, over entries inside the challenge window.
func calculateChallengeProgress(challenge domain.Challenge, entries []domain.MealEntry, now time.Time) domain.ChallengeProgress {
	loc := now.Location()

	var relevant []domain.MealEntry
	for _, entry := range entries {
		if !entry.Time.Before(challenge.StartDate) && !entry.Time.After(challenge.EndDate) {
			relevant = append(relevant, entry)
		}
	}

	rule := challenge.Rule
	current := 0

	switch rule.Kind {
	case domain.RuleDistinctDaysWithTag:
		days := make(map[string]bool)
		for _, entry := range relevant {
			if entry.HasAnyTag(rule.Tags...) {
				days[dayKey(entry.Time, loc)] = true
			}
		}
		current = len(days)

	case domain.RuleDistinctDaysMeetingDailyTotal:
		dailyTotals := make(map[string]float64)
		for _, entry := range relevant {
			dailyTotals[dayKey(entry.Time, loc)] += metricValue(entry, rule.Metric)
		}
		for _, total := range dailyTotals {
			if rule.AtMost {
				if total <= rule.Threshold {
					current++
				}
			} else if total >= rule.Threshold {
				current++
			}
		}

	case domain.RuleDistinctTagValues:
		seen := make(map[string]bool)
		for _, entry := range relevant {
			for _, tag := range rule.Tags {
				if entry.HasTag(tag) {
					seen[tag] = true
				}
			}
		}
		current = len(seen)

	case domain.RuleCountMatchingRecords:
		today := dayKey(now, loc)
		for _, entry := range relevant {
			if rule.TodayOnly && dayKey(entry.Time, loc) != today {
				continue
			}
			if entry.HasAnyTag(rule.Tags...) {
				current++
			}
		}

	case domain.RuleManual:
		current = 0
	}

	percentage := 0
	if challenge.Goal.Target > 0 {
		percentage = int(math.Round(math.Min(100, float64(current)/float64(challenge.Goal.Target)*100)))
	}

	return domain.ChallengeProgress{
		ChallengeID: challenge.ID,
		Current:     current,
		Target:      challenge.Goal.Target,
		Percentage:  percentage,
		Completed:   current >= challenge.Goal.Target,
	}
}

// calculateUserChallengeStats aggregates completions, the weekly streak and
// badges. The streak walks back day by day, checking whether any challenge
// whose window started that week is completed, then converts to weeks.
func calculateUserChallengeStats(entries []domain.MealEntry, progress *domain.GameProgress, now time.Time) domain.UserChallengeStats {
	loc := now.Location()
	challenges := activeChallenges(now)

	currentlyCompleted := 0
	allCompleted := true
	for _, challenge := range challenges {
		p := calculateChallengeProgress(challenge, entries, now)
		if p.Completed {
			currentlyCompleted++
		} else {
			allCompleted = false
		}
	}

	unclaimed := 0
	for _, challenge := range challenges {
		if calculateChallengeProgress(challenge, entries, now).Completed && !progress.HasCompleted(challenge.ID) {
			unclaimed++
		}
	}
	totalCompleted := len(progress.CompletedChallenges) + unclaimed

	streakDays := 0
	for i := 0; i < maxStreakWalkDays; i++ {
		checkDate := now.AddDate(0, 0, -i)
		checkDayStart := time.Date(checkDate.Year(), checkDate.Month(), checkDate.Day(), 0, 0, 0, 0, loc)
		weekStart := checkDayStart.AddDate(0, 0, -int(checkDate.Weekday()))

		hasCompletion := false
		for _, challenge := range challenges {
			if !challenge.StartDate.Equal(weekStart) {
				continue
			}
			if calculateChallengeProgress(challenge, entries, now).Completed {
				hasCompletion = true
				break
			}
		}
		if !hasCompletion {
			break
		}
		streakDays++
	}

	var achievements []string
	if totalCompleted >= 50 {
		achievements = append(achievements, "Century Club")
	}
	if totalCompleted >= 25 {
		achievements = append(achievements, "Challenge Master")
	}
	if totalCompleted >= 10 {
		achievements = append(achievements, "Go-Getter")
	}
	if streakDays >= 4 {
		achievements = append(achievements, "On Fire")
	}
	if allCompleted {
		achievements = append(achievements, "Perfect Week")
	}

	weekStreak := streakDays / 4

	return domain.UserChallengeStats{
		TotalCompleted: totalCompleted,
		CurrentStreak:  weekStreak,
		LongestStreak:  weekStreak,
		TotalXPEarned:  progress.TotalXP,
		Achievements:   achievements,
	}
}

// recommendChallenges picks incomplete challenges in the progress sweet spot,
// most-advanced first.
func recommendChallenges(entries []domain.MealEntry, now time.Time) []domain.Challenge {
	type scored struct {
		challenge domain.Challenge
		progress  domain.ChallengeProgress
	}

	var candidates []scored
	for _, challenge := range activeChallenges(now) {
		p := calculateChallengeProgress(challenge, entries, now)
		if p.Completed || p.Percentage <= recommendMinPercent || p.Percentage >= recommendMaxPercent {
			continue
		}
		candidates = append(candidates, scored{challenge, p})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].progress.Percentage > candidates[j].progress.Percentage
	})

	if len(candidates) > maxRecommended {
		candidates = candidates[:maxRecommended]
	}

	result := make([]domain.Challenge, 0, len(candidates))
	for _, c := range candidates {
		result = append(result, c.challenge)
	}
	return result
}
