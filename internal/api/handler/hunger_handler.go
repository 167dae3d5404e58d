package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/pkg/problem"
)

// HungerHandler handles hunger analysis endpoints.
type HungerHandler struct {
	service service.HungerService
}

func NewHungerHandler(service service.HungerService) *HungerHandler {
	return &HungerHandler{service: service}
}

// GetScore handles GET /v1/users/{userId}/hunger/score
// @Summary Get current hunger score
// @Description Compute the 0-100 hunger score from the most recent meal's macros and elapsed time.
// @Tags hunger
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.HungerScore "Current hunger score"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/hunger/score [get]
func (h *HungerHandler) GetScore(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.Score(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute hunger score").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetInsights handles GET /v1/users/{userId}/hunger/insights
// @Summary Get hunger analysis
// @Description Full hunger analysis bundle: score, food effectiveness ranking, daily patterns, insights and the weekday-hour heatmap.
// @Tags hunger
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.HungerAnalysisResponse "Hunger analysis"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/hunger/insights [get]
func (h *HungerHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.Analyze(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to analyze hunger").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
