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

// ProgressHandler handles game progress and nutrition target endpoints.
type ProgressHandler struct {
	progressService  service.ProgressService
	challengeService service.ChallengeService
}

func NewProgressHandler(progressService service.ProgressService, challengeService service.ChallengeService) *ProgressHandler {
	return &ProgressHandler{
		progressService:  progressService,
		challengeService: challengeService,
	}
}

// Get handles GET /v1/users/{userId}/progress
// @Summary Get game progress
// @Description Total XP, completed challenges and the level derived from the XP curve.
// @Tags progress
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.GameProgressResponse "Game progress"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/progress [get]
func (h *ProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.progressService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get progress").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// CompleteChallenge handles POST /v1/users/{userId}/progress/challenges/{challengeId}/complete
// @Summary Claim a completed challenge
// @Description Award a finished challenge's XP. Claiming is idempotent; a challenge pays out once.
// @Tags progress
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param challengeId path string true "Challenge ID" example(home-chef-week)
// @Success 200 {object} domain.GameProgressResponse "Updated progress"
// @Failure 400 {object} problem.Problem "Invalid user ID or unknown challenge"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 409 {object} problem.Problem "Challenge goal not met"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/progress/challenges/{challengeId}/complete [post]
func (h *ProgressHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}
	challengeID := chi.URLParam(r, "challengeId")

	if _, err := h.challengeService.Complete(r.Context(), userID, challengeID); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			problem.NotFound("User not found").Write(w)
		case errors.Is(err, domain.ErrUnknownChallenge):
			problem.BadRequest("Unknown challenge").Write(w)
		case errors.Is(err, domain.ErrChallengeIncomplete):
			problem.Conflict("Challenge goal not met").Write(w)
		default:
			problem.InternalError("Failed to complete challenge").Write(w)
		}
		return
	}

	result, err := h.progressService.Get(r.Context(), userID)
	if err != nil {
		problem.InternalError("Failed to get progress").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetTargets handles GET /v1/users/{userId}/targets
// @Summary Get nutrition targets
// @Description Daily calorie, protein, fiber and budget targets. Defaults apply until edited.
// @Tags targets
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} domain.NutritionTargets "Nutrition targets"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/targets [get]
func (h *ProgressHandler) GetTargets(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	result, err := h.progressService.Targets(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to get targets").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// UpdateTargets handles PUT /v1/users/{userId}/targets
// @Summary Edit nutrition targets
// @Description Partial edit; only provided fields change. Setting budget to 0 disables budget grading.
// @Tags targets
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.UpdateTargetsRequest true "Target fields to change"
// @Success 200 {object} domain.NutritionTargets "Updated targets"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/targets [put]
func (h *ProgressHandler) UpdateTargets(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.UpdateTargetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	result, err := h.progressService.UpdateTargets(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to update targets").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
