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

// ChallengeHandler handles challenge catalog and leaderboard endpoints.
type ChallengeHandler struct {
	service service.ChallengeService
}

func NewChallengeHandler(service service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{service: service}
}

// List handles GET /v1/users/{userId}/challenges
// @Summary List active challenges
// @Description Every active challenge merged with the user's progress toward its goal.
// @Tags challenges
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.ChallengeWithProgress "Challenges with progress"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/challenges [get]
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list challenges").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetStats handles GET /v1/users/{userId}/challenges/stats
// @Summary Get challenge stats
// @Description Completion counts, weekly streaks, badges and total XP earned from challenges.
// @Tags challenges
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.UserChallengeStats "Challenge stats"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/challenges/stats [get]
func (h *ChallengeHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute challenge stats").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetRecommended handles GET /v1/users/{userId}/challenges/recommended
// @Summary Get recommended challenges
// @Description Up to three in-progress challenges in the 20-90% completion sweet spot, closest to done first.
// @Tags challenges
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {array} domain.Challenge "Recommended challenges"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/challenges/recommended [get]
func (h *ChallengeHandler) GetRecommended(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.service.Recommended(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to recommend challenges").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetLeaderboard handles GET /v1/users/{userId}/challenges/{challengeId}/leaderboard
// @Summary Get a challenge leaderboard
// @Description Standings for one challenge. Other participants come from a simulated provider; the caller's row reflects their real progress.
// @Tags challenges
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param challengeId path string true "Challenge ID" example(home-chef-week)
// @Success 200 {array} domain.LeaderboardRow "Leaderboard standings"
// @Failure 400 {object} problem.Problem "Invalid user ID or unknown challenge"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/challenges/{challengeId}/leaderboard [get]
func (h *ChallengeHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	challengeID := chi.URLParam(r, "challengeId")

	result, err := h.service.Leaderboard(r.Context(), userID, challengeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrUnknownChallenge):
			problem.BadRequest("Unknown challenge").Write(w)
		default:
			problem.InternalError("Failed to get leaderboard").Write(w)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
