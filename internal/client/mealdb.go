package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/humngry/meal-tracker/internal/domain"
)

const (
	defaultMealDBURL = "https://www.themealdb.com/api/json/v1/1"

	// maxCategoryRecipes caps results from the category filter endpoint,
	// which returns bare stubs without ingredients.
	maxCategoryRecipes = 6
)

// RecipeCategories are the catalog categories exposed for browsing.
var RecipeCategories = []string{
	"Breakfast",
	"Vegetarian",
	"Chicken",
	"Seafood",
	"Pasta",
	"Dessert",
	"Side",
	"Vegan",
}

// MealDBClient fetches recipes from TheMealDB.
type MealDBClient interface {
	// Random returns up to count random recipes.
	Random(ctx context.Context, count int) ([]domain.Recipe, error)
	// Search finds recipes by name.
	Search(ctx context.Context, query string) ([]domain.Recipe, error)
	// ByCategory lists recipe stubs for a category. Stubs carry no
	// ingredients or instructions.
	ByCategory(ctx context.Context, category string) ([]domain.Recipe, error)
}

type mealDBClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMealDBClient creates a client for TheMealDB API. An empty baseURL uses
// the public instance.
func NewMealDBClient(baseURL string) MealDBClient {
	if baseURL == "" {
		baseURL = defaultMealDBURL
	}
	return &mealDBClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// mealDBMeal mirrors TheMealDB's meal payload. Ingredients arrive as twenty
// numbered field pairs, so the raw JSON is kept for extraction.
type mealDBResponse struct {
	Meals []json.RawMessage `json:"meals"`
}

func (c *mealDBClient) Random(ctx context.Context, count int) ([]domain.Recipe, error) {
	if count <= 0 {
		count = 6
	}

	var recipes []domain.Recipe
	for i := 0; i < count; i++ {
		var payload mealDBResponse
		if err := c.getJSON(ctx, c.baseURL+"/random.php", &payload); err != nil {
			return nil, err
		}
		if len(payload.Meals) == 0 {
			continue
		}
		recipe, err := parseRecipe(payload.Meals[0])
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (c *mealDBClient) Search(ctx context.Context, query string) ([]domain.Recipe, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/search.php?s=%s", c.baseURL, url.QueryEscape(query))

	var payload mealDBResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(payload.Meals))
	for _, raw := range payload.Meals {
		recipe, err := parseRecipe(raw)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

func (c *mealDBClient) ByCategory(ctx context.Context, category string) ([]domain.Recipe, error) {
	endpoint := fmt.Sprintf("%s/filter.php?c=%s", c.baseURL, url.QueryEscape(category))

	var payload struct {
		Meals []struct {
			ID        string `json:"idMeal"`
			Name      string `json:"strMeal"`
			Thumbnail string `json:"strMealThumb"`
		} `json:"meals"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	meals := payload.Meals
	if len(meals) > maxCategoryRecipes {
		meals = meals[:maxCategoryRecipes]
	}

	recipes := make([]domain.Recipe, 0, len(meals))
	for _, meal := range meals {
		recipes = append(recipes, domain.Recipe{
			ID:        meal.ID,
			Name:      meal.Name,
			Category:  category,
			Thumbnail: meal.Thumbnail,
			SourceURL: fmt.Sprintf("https://www.themealdb.com/meal/%s", meal.ID),
		})
	}
	return recipes, nil
}

func parseRecipe(raw json.RawMessage) (domain.Recipe, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Recipe{}, fmt.Errorf("failed to decode mealdb recipe: %w", err)
	}

	str := func(key string) string {
		if v, ok := fields[key].(string); ok {
			return v
		}
		return ""
	}

	var ingredients []domain.Ingredient
	for i := 1; i <= 20; i++ {
		ingredient := strings.TrimSpace(str(fmt.Sprintf("strIngredient%d", i)))
		if ingredient == "" {
			continue
		}
		ingredients = append(ingredients, domain.Ingredient{
			Ingredient: ingredient,
			Measure:    strings.TrimSpace(str(fmt.Sprintf("strMeasure%d", i))),
		})
	}

	id := str("idMeal")
	sourceURL := str("strSource")
	if sourceURL == "" {
		sourceURL = fmt.Sprintf("https://www.themealdb.com/meal/%s", id)
	}

	return domain.Recipe{
		ID:           id,
		Name:         str("strMeal"),
		Category:     str("strCategory"),
		Area:         str("strArea"),
		Instructions: str("strInstructions"),
		Ingredients:  ingredients,
		Thumbnail:    str("strMealThumb"),
		SourceURL:    sourceURL,
	}, nil
}

func (c *mealDBClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mealdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mealdb returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode mealdb response: %w", err)
	}
	return nil
}
