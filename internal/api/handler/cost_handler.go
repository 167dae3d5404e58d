package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/pkg/problem"
)

// CostHandler handles food spending analysis endpoints.
type CostHandler struct {
	service service.CostService
}

func NewCostHandler(service service.CostService) *CostHandler {
	return &CostHandler{service: service}
}

// CostBreakdownResponse is the response body for the spending breakdown.
// @Description Monthly spending breakdown plus the cost-per-calorie ranking.
type CostBreakdownResponse struct {
	Monthly        domain.MonthlyCostBreakdown `json:"monthly"`
	CostPerCalorie []domain.CostPerCalorie     `json:"cost_per_calorie"`
}

// CostInsightsResponse is the response body for spending insights.
type CostInsightsResponse struct {
	Insights []domain.CostInsight `json:"insights"`
}

// GetBreakdown handles GET /v1/users/{userId}/costs/breakdown
// @Summary Get spending breakdown
// @Description Current calendar month's spending by cost tier and tag, plus the cost-per-calorie ranking.
// @Tags costs
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} CostBreakdownResponse "Spending breakdown"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/costs/breakdown [get]
func (h *CostHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
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
		problem.InternalError("Failed to analyze costs").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CostBreakdownResponse{
		Monthly:        result.Monthly,
		CostPerCalorie: result.CostPerCalorie,
	})
}

// GetInsights handles GET /v1/users/{userId}/costs/insights
// @Summary Get spending insights
// @Description Human-readable observations about food spending: monthly totals, home vs takeout, best and worst value foods, streaks and projections.
// @Tags costs
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Success 200 {object} CostInsightsResponse "Spending insights"
// @Failure 400 {object} problem.Problem "Invalid user ID"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/costs/insights [get]
func (h *CostHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
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
		problem.InternalError("Failed to analyze costs").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CostInsightsResponse{Insights: result.Insights})
}

// GetBudget handles GET /v1/users/{userId}/costs/budget
// @Summary Get weekly budget status
// @Description Current week's spending (weeks start Sunday) against a weekly budget, with an end-of-week projection.
// @Tags costs
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param weekly_budget query number true "Weekly budget in dollars" minimum(0)
// @Success 200 {object} domain.BudgetStatus "Budget status"
// @Failure 400 {object} problem.Problem "Invalid or missing weekly_budget"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/costs/budget [get]
func (h *CostHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Write(w)
		return
	}

	budget, ok := parseBudgetParam(w, r)
	if !ok {
		return
	}

	result, err := h.service.BudgetStatus(r.Context(), userID, budget)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("User not found").Write(w)
			return
		}
		problem.InternalError("Failed to compute budget status").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// parseBudgetParam reads the required weekly_budget query parameter.
func parseBudgetParam(w http.ResponseWriter, r *http.Request) (float64, bool) {
	raw := r.URL.Query().Get("weekly_budget")
	if raw == "" {
		problem.BadRequest("weekly_budget is required").Write(w)
		return 0, false
	}
	budget, err := strconv.ParseFloat(raw, 64)
	if err != nil || budget <= 0 {
		problem.BadRequest("weekly_budget must be a positive number").Write(w)
		return 0, false
	}
	return budget, true
}
