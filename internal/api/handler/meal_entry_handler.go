package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/api/validation"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/pkg/problem"
)

type MealEntryHandler struct {
	service service.MealEntryService
}

func NewMealEntryHandler(service service.MealEntryService) *MealEntryHandler {
	return &MealEntryHandler{service: service}
}

// Create handles POST /v1/users/{userId}/meals
// @Summary Log a meal
// @Description Log a meal. The response carries the predicted next hunger time, and logging grants XP.
// @Tags meals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param request body domain.CreateMealEntryRequest true "Meal data"
// @Success 201 {object} domain.MealEntryResponse
// @Failure 400 {object} problem.Problem "Invalid request body or parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals [post]
func (h *MealEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	var req domain.CreateMealEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to log meal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry.ToResponse())
}

// List handles GET /v1/users/{userId}/meals
// @Summary List meals
// @Description Fetch paginated meal history. Filter by date range. Results sorted by time descending (newest first).
// @Tags meals
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param from query string false "Start of date range (RFC3339)" format(date-time) example(2024-01-01T00:00:00Z)
// @Param to query string false "End of date range (RFC3339)" format(date-time) example(2024-01-31T23:59:59Z)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.MealEntryListResponse "Meals with pagination"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/meals [get]
func (h *MealEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	filter, fieldErrors := parseListFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to list meals").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Get handles GET /v1/users/{userId}/meals/{mealId}
// @Summary Get a meal
// @Description Get one logged meal by its UUID.
// @Tags meals
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param mealId path string true "Meal UUID" format(uuid)
// @Success 200 {object} domain.MealEntryResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "Meal not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/meals/{mealId} [get]
func (h *MealEntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, mealID, ok := parseMealPath(w, r)
	if !ok {
		return
	}

	entry, err := h.service.Get(r.Context(), userID, mealID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Meal not found").Write(w)
			return
		}
		problem.InternalError("Failed to get meal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry.ToResponse())
}

// Update handles PATCH /v1/users/{userId}/meals/{mealId}
// @Summary Amend a meal
// @Description Update fields on a logged meal. The next-meal prediction is recomputed.
// @Tags meals
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid)
// @Param mealId path string true "Meal UUID" format(uuid)
// @Param request body domain.UpdateMealEntryRequest true "Fields to change"
// @Success 200 {object} domain.MealEntryResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "Meal not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/meals/{mealId} [patch]
func (h *MealEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, mealID, ok := parseMealPath(w, r)
	if !ok {
		return
	}

	var req domain.UpdateMealEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.Update(r.Context(), userID, mealID, &req)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Meal not found").Write(w)
			return
		}
		problem.InternalError("Failed to update meal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry.ToResponse())
}

// Delete handles DELETE /v1/users/{userId}/meals/{mealId}
// @Summary Delete a meal
// @Description Remove a logged meal.
// @Tags meals
// @Param userId path string true "User UUID" format(uuid)
// @Param mealId path string true "Meal UUID" format(uuid)
// @Success 204 "Meal deleted"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem "Meal not found"
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/meals/{mealId} [delete]
func (h *MealEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, mealID, ok := parseMealPath(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, mealID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Meal not found").Write(w)
			return
		}
		problem.InternalError("Failed to delete meal").Write(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseMealPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return uuid.Nil, uuid.Nil, false
	}
	mealID, err := uuid.Parse(chi.URLParam(r, "mealId"))
	if err != nil {
		problem.BadRequest("Invalid meal ID format").Write(w)
		return uuid.Nil, uuid.Nil, false
	}
	return userID, mealID, true
}

func parseListFilter(r *http.Request) (domain.MealEntryFilter, []problem.FieldError) {
	var filter domain.MealEntryFilter
	var fieldErrors []problem.FieldError

	// Parse 'from' parameter
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "from",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.From = &from
		}
	}

	// Parse 'to' parameter
	if toStr := r.URL.Query().Get("to"); toStr != "" {
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "to",
				Message: "must be a valid RFC3339 timestamp",
			})
		} else {
			filter.To = &to
		}
	}

	// Parse 'limit' parameter
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{
				Field:   "limit",
				Message: "must be a positive integer",
			})
		} else {
			filter.Limit = limit
		}
	}

	// Parse 'cursor' parameter
	filter.Cursor = r.URL.Query().Get("cursor")

	if len(fieldErrors) > 0 {
		return filter, fieldErrors
	}

	return filter, nil
}
