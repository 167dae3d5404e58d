package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/api/validation"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/pkg/problem"
)

// RecommendHandler handles recommendation endpoints.
type RecommendHandler struct {
	service service.RecommendService
}

func NewRecommendHandler(service service.RecommendService) *RecommendHandler {
	return &RecommendHandler{service: service}
}

// ScoreRecipesRequest is the request body for recipe scoring.
// @Description Candidate recipes plus scoring preferences.
type ScoreRecipesRequest struct {
	Recipes     []domain.Recipe          `json:"recipes" validate:"required,min=1"`
	Preferences domain.RecipePreferences `json:"preferences"`
}

// GetMealTiming handles GET /v1/users/{userId}/recommendations/meal-timing
// @Summary Predict the next meal time
// @Description Learn the user's eating rhythm from recent meals and predict when they'll be hungry next.
// @Tags recommendations
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.MealTimePrediction "Next meal prediction"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recommendations/meal-timing [get]
func (h *RecommendHandler) GetMealTiming(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.PredictMealTime(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to predict meal time").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// ScoreRecipes handles POST /v1/users/{userId}/recommendations/recipes
// @Summary Score candidate recipes
// @Description Rank recipes against the user's eating history and stated preferences. Scores run 0-100.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body ScoreRecipesRequest true "Recipes and preferences"
// @Success 200 {array} domain.RecipeRecommendation "Scored recipes, best first"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recommendations/recipes [post]
func (h *RecommendHandler) ScoreRecipes(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req ScoreRecipesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	result, err := h.service.ScoreRecipes(r.Context(), userID, req.Recipes, req.Preferences)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to score recipes").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetBudgetOptimization handles GET /v1/users/{userId}/recommendations/budget
// @Summary Optimize a weekly food budget
// @Description Rank historical meals by nutrition per dollar and project a week of the most efficient choices.
// @Tags recommendations
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param weekly_budget query number true "Weekly budget in dollars" minimum(0)
// @Success 200 {object} domain.BudgetOptimization "Budget optimization"
// @Failure 400 {object} problem.Problem "Invalid or missing weekly_budget"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recommendations/budget [get]
func (h *RecommendHandler) GetBudgetOptimization(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	budget, ok := parseBudgetParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.OptimizeBudget(r.Context(), userID, budget)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to optimize budget").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetHabits handles GET /v1/users/{userId}/recommendations/habits
// @Summary Analyze eating habits
// @Description Streaks, trends and suggestions for home cooking, protein intake and meal timing consistency.
// @Tags recommendations
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.HabitPattern "Habit patterns"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recommendations/habits [get]
func (h *RecommendHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.Habits(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to analyze habits").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetNutritionGaps handles GET /v1/users/{userId}/recommendations/gaps
// @Summary Find nutrition gaps
// @Description Nutrients that ran below target over the trailing week, with severity and food suggestions.
// @Tags recommendations
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.NutritionGap "Nutrition gaps"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/recommendations/gaps [get]
func (h *RecommendHandler) GetNutritionGaps(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.NutritionGaps(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to analyze nutrition gaps").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
