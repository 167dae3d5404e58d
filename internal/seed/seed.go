package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"gorm.io/gorm"
)

const seededDays = 40

// sampleMeal is a seedable meal template with per-portion macros and cost.
type sampleMeal struct {
	what         string
	calories     float64
	protein      float64
	carbs        float64
	fat          float64
	fiber        float64
	cost         float64
	costCategory domain.CostCategory
	tags         []string
}

var breakfasts = []sampleMeal{
	{"Oatmeal with berries", 320, 10, 55, 7, 8, 2.50, domain.CostCheap, []string{domain.TagBreakfast, domain.TagHomeCooked, domain.TagVegetarian}},
	{"Greek yogurt and granola", 280, 18, 32, 9, 4, 3.00, domain.CostCheap, []string{domain.TagBreakfast, domain.TagHomeCooked, domain.TagVegetarian}},
	{"Scrambled eggs on toast", 380, 22, 28, 18, 3, 2.80, domain.CostCheap, []string{domain.TagBreakfast, domain.TagHomeCooked}},
	{"Breakfast burrito", 520, 24, 48, 24, 6, 9.50, domain.CostModerate, []string{domain.TagBreakfast, domain.TagTakeout}},
}

var lunches = []sampleMeal{
	{"Chicken salad", 450, 38, 18, 24, 6, 4.20, domain.CostCheap, []string{domain.TagLunch, domain.TagHomeCooked}},
	{"Lentil soup with bread", 380, 18, 52, 9, 12, 3.10, domain.CostCheap, []string{domain.TagLunch, domain.TagHomeCooked, domain.TagVegan}},
	{"Meal prep chicken and rice", 540, 42, 58, 12, 4, 4.80, domain.CostCheap, []string{domain.TagLunch, domain.TagHomeCooked, domain.TagMealPrep}},
	{"Sushi bowl", 480, 26, 62, 12, 5, 14.00, domain.CostModerate, []string{domain.TagLunch, domain.TagTakeout}},
	{"Burger and fries", 850, 32, 72, 46, 5, 12.50, domain.CostModerate, []string{domain.TagLunch, domain.TagTakeout}},
}

var dinners = []sampleMeal{
	{"Salmon with roasted vegetables", 520, 40, 24, 28, 7, 8.90, domain.CostCheap, []string{domain.TagDinner, domain.TagHomeCooked}},
	{"Spaghetti bolognese", 640, 32, 68, 22, 6, 5.20, domain.CostCheap, []string{domain.TagDinner, domain.TagHomeCooked, "Italian"}},
	{"Vegetable stir fry with tofu", 420, 22, 42, 18, 9, 4.60, domain.CostCheap, []string{domain.TagDinner, domain.TagHomeCooked, domain.TagVegan, "Asian"}},
	{"Chicken tikka masala", 680, 38, 54, 32, 6, 16.50, domain.CostModerate, []string{domain.TagDinner, domain.TagTakeout, "Indian"}},
	{"Leftover chili", 480, 28, 44, 18, 11, 0.00, domain.CostCheap, []string{domain.TagDinner, domain.TagHomeCooked, domain.TagLeftovers}},
	{"Pizza night", 890, 34, 92, 40, 5, 22.00, domain.CostExpensive, []string{domain.TagDinner, domain.TagTakeout, "Italian"}},
}

// Run seeds the database with sample users and meal entries. Safe to call
// multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.MealEntry{}, &domain.NutritionTargets{}, &domain.GameProgress{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam", SleepStart: "22:00", SleepEnd: "07:00"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York", SleepStart: "23:00", SleepEnd: "06:30"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo", SleepStart: "00:00", SleepEnd: "08:00"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney", SleepStart: "22:30", SleepEnd: "06:00"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
		targets := domain.DefaultNutritionTargets(user.ID)
		if err := db.Where("user_id = ?", user.ID).FirstOrCreate(&targets).Error; err != nil {
			return fmt.Errorf("failed to create targets for %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedMealsForUser(db, user, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedMealsForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	// Idempotency check: skip users that already have seeded history.
	var count int64
	if err := db.Model(&domain.MealEntry{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count meals for %s: %w", user.ID, err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	xp := 0
	for i := seededDays; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)

		meals := []struct {
			meal sampleMeal
			hour int
		}{
			{breakfasts[rng.Intn(len(breakfasts))], 7 + rng.Intn(2)},
			{lunches[rng.Intn(len(lunches))], 12 + rng.Intn(2)},
			{dinners[rng.Intn(len(dinners))], 18 + rng.Intn(3)},
		}

		for _, m := range meals {
			// Occasionally skip a meal so streak and gap analyses have texture.
			if rng.Float32() < 0.08 {
				continue
			}

			eatenAt := time.Date(date.Year(), date.Month(), date.Day(), m.hour, rng.Intn(60), 0, 0, time.UTC)
			fullness := 3 + rng.Intn(3)
			hungerBefore := 2 + rng.Intn(3)
			rating := 3 + rng.Intn(3)

			entry := domain.MealEntry{
				UserID:       user.ID,
				What:         m.meal.what,
				Amount:       domain.PortionMedium,
				Time:         eatenAt,
				Fullness:     &fullness,
				Calories:     ptr(m.meal.calories),
				Protein:      ptr(m.meal.protein),
				Carbs:        ptr(m.meal.carbs),
				Fat:          ptr(m.meal.fat),
				Fiber:        ptr(m.meal.fiber),
				Tags:         m.meal.tags,
				Rating:       &rating,
				HungerBefore: &hungerBefore,
				Cost:         ptr(m.meal.cost),
				CostCategory: m.meal.costCategory,
			}

			if err := db.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create meal entry: %w", err)
			}
			xp += 10
		}
	}

	progress := domain.GameProgress{UserID: user.ID, TotalXP: xp}
	if err := db.Where("user_id = ?", user.ID).FirstOrCreate(&progress).Error; err != nil {
		return fmt.Errorf("failed to create progress for %s: %w", user.ID, err)
	}
	return nil
}

func ptr(f float64) *float64 {
	return &f
}
