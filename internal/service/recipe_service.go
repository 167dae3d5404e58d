package service

import (
	"context"

	"github.com/humngry/meal-tracker/internal/client"
	"github.com/humngry/meal-tracker/internal/domain"
)

// RecipeService fetches recipes and enriches them with cost, time and
// serving estimates.
type RecipeService interface {
	Random(ctx context.Context, count int) ([]domain.Recipe, error)
	Search(ctx context.Context, query string) ([]domain.Recipe, error)
	ByCategory(ctx context.Context, category string) ([]domain.Recipe, error)
	Categories() []string
	// CostInsight summarizes the estimated cost of one recipe.
	CostInsight(recipe domain.Recipe) domain.RecipeCostInsight
}

type recipeService struct {
	mealDB client.MealDBClient
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(mealDB client.MealDBClient) RecipeService {
	return &recipeService{mealDB: mealDB}
}

func (s *recipeService) Random(ctx context.Context, count int) ([]domain.Recipe, error) {
	recipes, err := s.mealDB.Random(ctx, count)
	if err != nil {
		return nil, err
	}
	return enrichRecipes(recipes), nil
}

func (s *recipeService) Search(ctx context.Context, query string) ([]domain.Recipe, error) {
	recipes, err := s.mealDB.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return enrichRecipes(recipes), nil
}

func (s *recipeService) ByCategory(ctx context.Context, category string) ([]domain.Recipe, error) {
	// Category stubs carry no ingredients, so no estimates are possible.
	return s.mealDB.ByCategory(ctx, category)
}

func (s *recipeService) Categories() []string {
	return client.RecipeCategories
}

func (s *recipeService) CostInsight(recipe domain.Recipe) domain.RecipeCostInsight {
	cost := EstimateRecipeCost(recipe.Ingredients)
	servings := EstimateServings(recipe.Ingredients)
	prepTime := EstimatePrepTime(recipe.Ingredients, recipe.Instructions)
	if recipe.EstimatedCost != nil {
		cost = *recipe.EstimatedCost
	}
	if recipe.Servings != nil {
		servings = *recipe.Servings
	}
	if recipe.EstimatedTime != nil {
		prepTime = *recipe.EstimatedTime
	}
	return GenerateRecipeCostInsight(cost, servings, prepTime)
}

// enrichRecipes fills in the estimated cost, prep time and servings for
// recipes that have ingredient lists.
func enrichRecipes(recipes []domain.Recipe) []domain.Recipe {
	for i := range recipes {
		if len(recipes[i].Ingredients) == 0 {
			continue
		}
		cost := EstimateRecipeCost(recipes[i].Ingredients)
		prepTime := EstimatePrepTime(recipes[i].Ingredients, recipes[i].Instructions)
		servings := EstimateServings(recipes[i].Ingredients)
		recipes[i].EstimatedCost = &cost
		recipes[i].EstimatedTime = &prepTime
		recipes[i].Servings = &servings
	}
	return recipes
}
