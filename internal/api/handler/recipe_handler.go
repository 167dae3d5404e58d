package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/pkg/problem"
)

// RecipeHandler handles recipe discovery endpoints.
type RecipeHandler struct {
	service service.RecipeService
}

func NewRecipeHandler(service service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// RecipeWithCost pairs a recipe with its estimated cost summary.
// @Description Recipe plus a cost-per-serving estimate derived from its ingredients.
type RecipeWithCost struct {
	domain.Recipe
	CostInsight domain.RecipeCostInsight `json:"cost_insight"`
}

// RecipeCategoriesResponse is the response body for the category list.
type RecipeCategoriesResponse struct {
	Categories []string `json:"categories"`
}

// Search handles GET /v1/recipes/search
// @Summary Search recipes
// @Description Search TheMealDB by name. Each result carries estimated cost, prep time and servings.
// @Tags recipes
// @Produce json
// @Param q query string true "Recipe name to search for" example(chicken curry)
// @Success 200 {array} RecipeWithCost "Matching recipes"
// @Failure 400 {object} problem.Problem "Missing query"
// @Failure 502 {object} problem.Problem "Recipe database unavailable"
// @Router /recipes/search [get]
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		problem.BadRequest("q is required").Write(w)
		return
	}

	recipes, err := h.service.Search(r.Context(), query)
	if err != nil {
		problem.New(http.StatusBadGateway, "upstream-error", "Upstream Error", "Recipe database request failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.withCosts(recipes))
}

// Random handles GET /v1/recipes/random
// @Summary Get random recipes
// @Description Fetch random recipes from TheMealDB, cost estimates included.
// @Tags recipes
// @Produce json
// @Param count query integer false "Number of recipes (1-10)" default(1) minimum(1) maximum(10)
// @Success 200 {array} RecipeWithCost "Random recipes"
// @Failure 400 {object} problem.Problem "Invalid count"
// @Failure 502 {object} problem.Problem "Recipe database unavailable"
// @Router /recipes/random [get]
func (h *RecipeHandler) Random(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			problem.BadRequest("count must be between 1 and 10").Write(w)
			return
		}
		count = parsed
	}

	recipes, err := h.service.Random(r.Context(), count)
	if err != nil {
		problem.New(http.StatusBadGateway, "upstream-error", "Upstream Error", "Recipe database request failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.withCosts(recipes))
}

// ByCategory handles GET /v1/recipes/category/{category}
// @Summary List recipes in a category
// @Description Fetch recipes for one TheMealDB category.
// @Tags recipes
// @Produce json
// @Param category path string true "Category name" example(Vegetarian)
// @Success 200 {array} RecipeWithCost "Recipes in the category"
// @Failure 502 {object} problem.Problem "Recipe database unavailable"
// @Router /recipes/category/{category} [get]
func (h *RecipeHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	recipes, err := h.service.ByCategory(r.Context(), category)
	if err != nil {
		problem.New(http.StatusBadGateway, "upstream-error", "Upstream Error", "Recipe database request failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.withCosts(recipes))
}

// Categories handles GET /v1/recipes/categories
// @Summary List recipe categories
// @Description The fixed set of browsable recipe categories.
// @Tags recipes
// @Produce json
// @Success 200 {object} RecipeCategoriesResponse "Recipe categories"
// @Router /recipes/categories [get]
func (h *RecipeHandler) Categories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(RecipeCategoriesResponse{Categories: h.service.Categories()})
}

func (h *RecipeHandler) withCosts(recipes []domain.Recipe) []RecipeWithCost {
	result := make([]RecipeWithCost, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, RecipeWithCost{
			Recipe:      recipe,
			CostInsight: h.service.CostInsight(recipe),
		})
	}
	return result
}
