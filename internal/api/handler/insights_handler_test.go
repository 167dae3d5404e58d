package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/llm"
)

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

func (m *MockInsightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func TestInsightsHandler_GetInsights(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		mockService    *MockInsightsService
		wantStatusCode int
	}{
		{
			name:   "successful generation",
			userID: userID.String(),
			mockService: &MockInsightsService{
				generateFunc: func(ctx context.Context, id uuid.UUID) (*domain.InsightsResponse, error) {
					return &domain.InsightsResponse{
						Insights: domain.LLMInsightsOutput{
							Summary:      "Solid week of home cooking.",
							Observations: []string{"Protein intake is consistent."},
							Guidance:     []string{"Add more fiber at breakfast."},
						},
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			mockService:    &MockInsightsService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown user",
			userID:         uuid.New().String(),
			mockService:    &MockInsightsService{},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:   "LLM not configured",
			userID: userID.String(),
			mockService: &MockInsightsService{
				generateFunc: func(ctx context.Context, id uuid.UUID) (*domain.InsightsResponse, error) {
					return nil, llm.ErrOpenAIUnavailable
				},
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:   "LLM request failure",
			userID: userID.String(),
			mockService: &MockInsightsService{
				generateFunc: func(ctx context.Context, id uuid.UUID) (*domain.InsightsResponse, error) {
					return nil, llm.ErrOpenAIRequest
				},
			},
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:   "malformed LLM response",
			userID: userID.String(),
			mockService: &MockInsightsService{
				generateFunc: func(ctx context.Context, id uuid.UUID) (*domain.InsightsResponse, error) {
					return nil, llm.ErrOpenAIResponse
				},
			},
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:   "unexpected error",
			userID: userID.String(),
			mockService: &MockInsightsService{
				generateFunc: func(ctx context.Context, id uuid.UUID) (*domain.InsightsResponse, error) {
					return nil, errors.New("database gone")
				},
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInsightsHandler(tt.mockService)

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID+"/insights", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", tt.userID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.GetInsights(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("GetInsights() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp domain.InsightsResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Insights.Summary == "" {
					t.Error("expected a non-empty summary")
				}
			}
		})
	}
}
