package service

import (
	"context"
	"math/rand"

	"github.com/humngry/meal-tracker/internal/client"
	"github.com/humngry/meal-tracker/internal/domain"
)

// foodTips are the rotating reminders shown alongside lookups.
var foodTips = []string{
	"Set reminders to eat - your body needs fuel even when you're busy!",
	"Skipping meals can lead to overeating later - stay consistent!",
	"Your brain needs glucose to function - don't forget to eat!",
	"Regular meals help maintain energy levels throughout the day",
	"Eating protein with every meal helps you stay full longer!",
	"Don't forget to drink water throughout the day!",
	"Eating regularly can improve focus and productivity",
	"Try to eat a variety of colorful foods for different nutrients",
	"Healthy fats like nuts and avocados are great for satiety",
	"Fiber-rich foods slow digestion and keep you satisfied",
	"Eating at regular times helps regulate your hunger signals",
	"Listen to your body - eat when hungry, stop when satisfied",
	"Vegetables are low in calories but high in volume and nutrients",
	"Don't skip breakfast - it jumpstarts your metabolism",
	"Good sleep improves hunger hormone regulation",
	"Regular activity helps regulate appetite naturally",
	"Meal tracking helps you remember to eat throughout busy days",
	"Sometimes thirst is mistaken for hunger - hydrate first!",
	"Mindful eating helps you notice fullness cues better",
	"Aim for balance, not perfection, in your eating habits",
	"Small, regular meals are better than forgetting to eat all day",
}

// FoodService looks up foods in the external nutrition database.
type FoodService interface {
	Search(ctx context.Context, query string) ([]domain.FoodProduct, error)
	GetByBarcode(ctx context.Context, barcode string) (*domain.FoodProduct, error)
	// RandomTip returns one rotating food reminder.
	RandomTip() string
}

type foodService struct {
	openFoodFacts client.OpenFoodFactsClient
}

// NewFoodService creates a new FoodService.
func NewFoodService(openFoodFacts client.OpenFoodFactsClient) FoodService {
	return &foodService{openFoodFacts: openFoodFacts}
}

func (s *foodService) Search(ctx context.Context, query string) ([]domain.FoodProduct, error) {
	return s.openFoodFacts.Search(ctx, query)
}

func (s *foodService) GetByBarcode(ctx context.Context, barcode string) (*domain.FoodProduct, error) {
	return s.openFoodFacts.GetByBarcode(ctx, barcode)
}

func (s *foodService) RandomTip() string {
	return foodTips[rand.Intn(len(foodTips))]
}
