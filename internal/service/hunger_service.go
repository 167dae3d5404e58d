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
	// MinEntriesForInsights gates pattern insights until there is enough data.
	MinEntriesForInsights = 3

	// MinPatternFrequency is the minimum occurrences for a (weekday, hour)
	// bucket to count as a recurring pattern.
	MinPatternFrequency = 2

	// lowSatietyGapHours flags foods that stop working quickly.
	lowSatietyGapHours = 2.5
)

// HungerService analyzes hunger patterns from meal entries.
type HungerService interface {
	// Analyze computes the full hunger analysis bundle for a user.
	Analyze(ctx context.Context, userID uuid.UUID) (*domain.HungerAnalysisResponse, error)
	// Score computes only the current hunger score.
	Score(ctx context.Context, userID uuid.UUID) (*domain.HungerScore, error)
}

type hungerService struct {
	mealRepo repository.MealEntryRepository
	userRepo repository.UserRepository
}

// NewHungerService creates a new HungerService.
func NewHungerService(mealRepo repository.MealEntryRepository, userRepo repository.UserRepository) HungerService {
	return &hungerService{
		mealRepo: mealRepo,
		userRepo: userRepo,
	}
}

func (s *hungerService) Analyze(ctx context.Context, userID uuid.UUID) (*domain.HungerAnalysisResponse, error) {
	tracer := otel.Tracer("meal-tracker-api/hunger")
	ctx, span := tracer.Start(ctx, "HungerService.Analyze",
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

	return &domain.HungerAnalysisResponse{
		Score:         calculateCurrentHungerScore(entries, now),
		Effectiveness: analyzeFoodEffectiveness(entries),
		Patterns:      findHungerPatterns(entries, now.Location()),
		Insights:      generateHungerInsights(entries, now),
		Heatmap:       generateHungerHeatmap(entries, now.Location()),
	}, nil
}

func (s *hungerService) Score(ctx context.Context, userID uuid.UUID) (*domain.HungerScore, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.mealRepo.ListRecent(ctx, userID, 1)
	if err != nil {
		return nil, err
	}

	score := calculateCurrentHungerScore(entries, time.Now().In(user.Location()))
	return &score, nil
}

// calculateCurrentHungerScore estimates hunger right now. The most recent
// meal's prediction is trusted when present; otherwise elapsed time since the
// last meal drives tiered fallbacks.
func calculateCurrentHungerScore(entries []domain.MealEntry, now time.Time) domain.HungerScore {
	if len(entries) == 0 {
		return domain.HungerScore{
			Score:   5,
			Status:  domain.HungerGettingHungry,
			Message: "No meals logged yet",
		}
	}

	lastMeal := sortedByTimeDesc(entries)[0]
	hoursSince := hoursBetween(lastMeal.Time, now)

	if lastMeal.NextEatAt != nil {
		hoursUntilNext := hoursBetween(now, *lastMeal.NextEatAt)

		switch {
		case hoursUntilNext > 2:
			return domain.HungerScore{Score: 2, Status: domain.HungerSatisfied, Message: "You should be feeling satisfied"}
		case hoursUntilNext > 0:
			return domain.HungerScore{Score: 5, Status: domain.HungerGettingHungry, Message: "You might start feeling hungry soon"}
		case hoursUntilNext > -1:
			return domain.HungerScore{Score: 7, Status: domain.HungerHungry, Message: "Time to eat soon!"}
		default:
			return domain.HungerScore{Score: 9, Status: domain.HungerVeryHungry, Message: "You're probably quite hungry now"}
		}
	}

	// Fallback based on hours since last meal
	switch {
	case hoursSince < 2:
		return domain.HungerScore{Score: 2, Status: domain.HungerSatisfied, Message: "Recently ate"}
	case hoursSince < 4:
		return domain.HungerScore{Score: 5, Status: domain.HungerGettingHungry, Message: "Normal interval"}
	case hoursSince < 6:
		return domain.HungerScore{Score: 7, Status: domain.HungerHungry, Message: "Getting hungry"}
	default:
		return domain.HungerScore{Score: 9, Status: domain.HungerVeryHungry, Message: "Very hungry"}
	}
}

// analyzeFoodEffectiveness ranks foods by how long they keep the user
// satisfied. Each gap between consecutive meals is attributed to the earlier
// meal's food; effectiveness weights the average gap by fullness relative to
// the neutral 3.
func analyzeFoodEffectiveness(entries []domain.MealEntry) []domain.FoodEffectiveness {
	type foodStats struct {
		totalTimeBetween float64
		totalFullness    float64
		count            int
	}

	stats := make(map[string]*foodStats)

	sorted := sortedByTimeAsc(entries)
	for i := 0; i < len(sorted)-1; i++ {
		meal := sorted[i]
		next := sorted[i+1]
		foodName := strings.ToLower(meal.What)

		gap := hoursBetween(meal.Time, next.Time)

		fs, ok := stats[foodName]
		if !ok {
			fs = &foodStats{}
			stats[foodName] = fs
		}
		fs.totalTimeBetween += gap
		fs.totalFullness += float64(meal.FullnessOrDefault())
		fs.count++
	}

	results := make([]domain.FoodEffectiveness, 0, len(stats))
	for foodName, fs := range stats {
		avgTime := fs.totalTimeBetween / safeCount(fs.count)
		avgFullness := fs.totalFullness / safeCount(fs.count)

		results = append(results, domain.FoodEffectiveness{
			FoodName:            foodName,
			AvgTimeBetweenMeals: avgTime,
			AvgFullness:         avgFullness,
			TimesEaten:          fs.count,
			// 3 is the neutral fullness baseline
			Effectiveness: avgTime * (avgFullness / float64(domain.DefaultFullness)),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Effectiveness != results[j].Effectiveness {
			return results[i].Effectiveness > results[j].Effectiveness
		}
		return results[i].FoodName < results[j].FoodName
	})

	return results
}

// findHungerPatterns buckets entries with a recorded hungerBefore by local
// (weekday, hour) and keeps buckets that recur, hungriest first.
func findHungerPatterns(entries []domain.MealEntry, loc *time.Location) []domain.HungerPattern {
	type bucket struct {
		totalHunger int
		count       int
	}

	buckets := make(map[[2]int]*bucket)

	for _, entry := range entries {
		if entry.HungerBefore == nil {
			continue
		}

		local := entry.Time.In(loc)
		key := [2]int{int(local.Weekday()), local.Hour()}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.totalHunger += *entry.HungerBefore
		b.count++
	}

	results := make([]domain.HungerPattern, 0, len(buckets))
	for key, b := range buckets {
		if b.count < MinPatternFrequency {
			continue
		}
		results = append(results, domain.HungerPattern{
			TimeOfDay: fmt.Sprintf("%02d:00", key[1]),
			DayOfWeek: key[0],
			AvgHunger: float64(b.totalHunger) / safeCount(b.count),
			Frequency: b.count,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].AvgHunger != results[j].AvgHunger {
			return results[i].AvgHunger > results[j].AvgHunger
		}
		if results[i].DayOfWeek != results[j].DayOfWeek {
			return results[i].DayOfWeek < results[j].DayOfWeek
		}
		return results[i].TimeOfDay < results[j].TimeOfDay
	})

	return results
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// generateHungerInsights combines the other analyses into readable insights.
func generateHungerInsights(entries []domain.MealEntry, now time.Time) []domain.HungerInsight {
	if len(entries) < MinEntriesForInsights {
		return []domain.HungerInsight{{
			Kind:    domain.InsightSuggestion,
			Title:   "Start tracking hunger",
			Message: "Log a few more meals to unlock pattern insights!",
		}}
	}

	var insights []domain.HungerInsight

	// Champion and low-satiety foods, once they have been eaten enough to trust
	effectiveness := analyzeFoodEffectiveness(entries)
	if len(effectiveness) >= 2 {
		best := effectiveness[0]
		worst := effectiveness[len(effectiveness)-1]

		if best.TimesEaten >= 3 {
			insights = append(insights, domain.HungerInsight{
				Kind:    domain.InsightAchievement,
				Title:   "Champion Food Discovered",
				Message: fmt.Sprintf("%s keeps you satisfied for %.1f hours on average!", best.FoodName, best.AvgTimeBetweenMeals),
			})
		}

		if worst.TimesEaten >= 3 && worst.AvgTimeBetweenMeals < lowSatietyGapHours {
			insights = append(insights, domain.HungerInsight{
				Kind:    domain.InsightWarning,
				Title:   "Low Satiety Alert",
				Message: fmt.Sprintf("%s only keeps you full for %.1f hours. Consider adding protein or fiber.", worst.FoodName, worst.AvgTimeBetweenMeals),
			})
		}
	}

	patterns := findHungerPatterns(entries, now.Location())
	if len(patterns) > 0 {
		top := patterns[0]
		insights = append(insights, domain.HungerInsight{
			Kind:    domain.InsightPattern,
			Title:   "Recurring Hunger Pattern",
			Message: fmt.Sprintf("You're often hungry around %s on %ss", top.TimeOfDay, weekdayNames[top.DayOfWeek]),
		})
	}

	// Most recent prediction already more than half an hour overdue
	recent := sortedByTimeDesc(entries)
	if len(recent) >= 2 {
		lastMeal := recent[0]
		if lastMeal.NextEatAt != nil && now.After(*lastMeal.NextEatAt) {
			if hoursBetween(*lastMeal.NextEatAt, now) > 0.5 {
				insights = append(insights, domain.HungerInsight{
					Kind:    domain.InsightWarning,
					Title:   "Time to Eat?",
					Message: "Based on your last meal, you might be getting hungry soon!",
				})
			}
		}
	}

	return insights
}

// generateHungerHeatmap averages hungerBefore per local (weekday, hour),
// zero where no data. Row 0 is Sunday.
func generateHungerHeatmap(entries []domain.MealEntry, loc *time.Location) domain.HungerHeatmap {
	var heatmap domain.HungerHeatmap
	var counts [7][24]int

	for _, entry := range entries {
		if entry.HungerBefore == nil {
			continue
		}
		local := entry.Time.In(loc)
		day := int(local.Weekday())
		hour := local.Hour()
		heatmap[day][hour] += float64(*entry.HungerBefore)
		counts[day][hour]++
	}

	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			if counts[d][h] > 0 {
				heatmap[d][h] /= float64(counts[d][h])
			}
		}
	}

	return heatmap
}
