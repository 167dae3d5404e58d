package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const curryJSON = `{
	"idMeal": "52772",
	"strMeal": "Chicken Curry",
	"strCategory": "Chicken",
	"strArea": "Indian",
	"strInstructions": "Simmer everything for 30 minutes.",
	"strMealThumb": "http://img/curry.jpg",
	"strSource": "",
	"strIngredient1": "Chicken breast",
	"strMeasure1": "2 lbs",
	"strIngredient2": "Coconut milk",
	"strMeasure2": "1 can",
	"strIngredient3": " ",
	"strMeasure3": "",
	"strIngredient4": null,
	"strMeasure4": null
}`

func TestMealDB_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.php" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("s"); got != "curry" {
			t.Errorf("expected query curry, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": [` + curryJSON + `]}`))
	}))
	defer server.Close()

	c := NewMealDBClient(server.URL)

	recipes, err := c.Search(context.Background(), "curry")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("Search() returned %d recipes, want 1", len(recipes))
	}

	recipe := recipes[0]
	if recipe.Name != "Chicken Curry" {
		t.Errorf("name = %s, want Chicken Curry", recipe.Name)
	}
	if recipe.Area != "Indian" {
		t.Errorf("area = %s, want Indian", recipe.Area)
	}
	// Blank and null ingredient slots are skipped.
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("ingredients = %d, want 2", len(recipe.Ingredients))
	}
	if recipe.Ingredients[0].Ingredient != "Chicken breast" || recipe.Ingredients[0].Measure != "2 lbs" {
		t.Errorf("first ingredient = %+v", recipe.Ingredients[0])
	}
	// Empty strSource falls back to the catalog page.
	if recipe.SourceURL != "https://www.themealdb.com/meal/52772" {
		t.Errorf("source URL = %s", recipe.SourceURL)
	}
}

func TestMealDB_Search_ShortQuery(t *testing.T) {
	c := NewMealDBClient("http://unused.invalid")

	recipes, err := c.Search(context.Background(), "c")
	if err != nil {
		t.Errorf("Search() error = %v", err)
	}
	if recipes != nil {
		t.Errorf("expected no results for short query, got %v", recipes)
	}
}

func TestMealDB_Random(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": [` + curryJSON + `]}`))
	}))
	defer server.Close()

	c := NewMealDBClient(server.URL)

	recipes, err := c.Random(context.Background(), 3)
	if err != nil {
		t.Fatalf("Random() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 upstream calls, got %d", calls)
	}
	if len(recipes) != 3 {
		t.Errorf("Random() returned %d recipes, want 3", len(recipes))
	}
}

func TestMealDB_ByCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("c"); got != "Seafood" {
			t.Errorf("expected category Seafood, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"meals": [
			{"idMeal": "1", "strMeal": "Grilled Salmon", "strMealThumb": "http://img/1.jpg"},
			{"idMeal": "2", "strMeal": "Fish Pie", "strMealThumb": "http://img/2.jpg"},
			{"idMeal": "3", "strMeal": "Kedgeree", "strMealThumb": "http://img/3.jpg"},
			{"idMeal": "4", "strMeal": "Fish Stew", "strMealThumb": "http://img/4.jpg"},
			{"idMeal": "5", "strMeal": "Sushi", "strMealThumb": "http://img/5.jpg"},
			{"idMeal": "6", "strMeal": "Paella", "strMealThumb": "http://img/6.jpg"},
			{"idMeal": "7", "strMeal": "Fish Soup", "strMealThumb": "http://img/7.jpg"}
		]}`))
	}))
	defer server.Close()

	c := NewMealDBClient(server.URL)

	recipes, err := c.ByCategory(context.Background(), "Seafood")
	if err != nil {
		t.Fatalf("ByCategory() error = %v", err)
	}
	if len(recipes) != maxCategoryRecipes {
		t.Fatalf("ByCategory() returned %d recipes, want %d", len(recipes), maxCategoryRecipes)
	}
	if recipes[0].Name != "Grilled Salmon" {
		t.Errorf("first recipe = %s, want Grilled Salmon", recipes[0].Name)
	}
	if recipes[0].Category != "Seafood" {
		t.Errorf("category = %s, want Seafood", recipes[0].Category)
	}
}
