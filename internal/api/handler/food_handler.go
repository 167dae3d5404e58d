package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/pkg/problem"
)

// FoodHandler handles food database proxy endpoints.
type FoodHandler struct {
	service service.FoodService
}

func NewFoodHandler(service service.FoodService) *FoodHandler {
	return &FoodHandler{service: service}
}

// FoodTipResponse is the response body for the food tip endpoint.
type FoodTipResponse struct {
	Tip string `json:"tip" example:"Protein keeps you full longer than carbs"`
}

// Search handles GET /v1/foods/search
// @Summary Search foods
// @Description Search the OpenFoodFacts database by name. Results are relevance-ranked, best match first.
// @Tags foods
// @Produce json
// @Param q query string true "Food name to search for" example(greek yogurt)
// @Success 200 {array} domain.FoodProduct "Matching products"
// @Failure 400 {object} problem.Problem "Missing query"
// @Failure 502 {object} problem.Problem "Food database unavailable"
// @Router /foods/search [get]
func (h *FoodHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		problem.BadRequest("q is required").Write(w)
		return
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		problem.New(http.StatusBadGateway, "upstream-error", "Upstream Error", "Food database request failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetByBarcode handles GET /v1/foods/{barcode}
// @Summary Look up a food by barcode
// @Description Fetch one product from OpenFoodFacts by its barcode.
// @Tags foods
// @Produce json
// @Param barcode path string true "Product barcode" example(3017624010701)
// @Success 200 {object} domain.FoodProduct "Product details"
// @Failure 404 {object} problem.Problem "Product not found"
// @Failure 502 {object} problem.Problem "Food database unavailable"
// @Router /foods/{barcode} [get]
func (h *FoodHandler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	result, err := h.service.GetByBarcode(r.Context(), barcode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			problem.NotFound("Product not found").Write(w)
			return
		}
		problem.New(http.StatusBadGateway, "upstream-error", "Upstream Error", "Food database request failed").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetTip handles GET /v1/foods/tip
// @Summary Get a food tip
// @Description One rotating reminder about eating well.
// @Tags foods
// @Produce json
// @Success 200 {object} FoodTipResponse "Food tip"
// @Router /foods/tip [get]
func (h *FoodHandler) GetTip(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FoodTipResponse{Tip: h.service.RandomTip()})
}
