package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
)

func requestWithMealParams(method, target, body, userID, mealID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID)
	if mealID != "" {
		rctx.URLParams.Add("mealId", mealID)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMealEntryHandler_Create(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		body           string
		mockService    *MockMealEntryService
		wantStatusCode int
	}{
		{
			name:           "valid request",
			userID:         userID.String(),
			body:           `{"what": "Chicken salad", "amount": "large", "calories": 450}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "invalid JSON",
			userID:         userID.String(),
			body:           `{invalid}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing what",
			userID:         userID.String(),
			body:           `{"amount": "medium"}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid portion size",
			userID:         userID.String(),
			body:           `{"what": "Soup", "amount": "giant"}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "fullness out of range",
			userID:         userID.String(),
			body:           `{"what": "Soup", "fullness": 9}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			body:           `{"what": "Soup"}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			userID: uuid.New().String(),
			body:   `{"what": "Soup"}`,
			mockService: &MockMealEntryService{
				createFunc: func(ctx context.Context, userID uuid.UUID, req *domain.CreateMealEntryRequest) (*domain.MealEntry, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMealEntryHandler(tt.mockService)

			req := requestWithMealParams(http.MethodPost, "/v1/users/"+tt.userID+"/meals", tt.body, tt.userID, "")
			rec := httptest.NewRecorder()

			handler.Create(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Create() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				var resp domain.MealEntryResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.What != "Chicken salad" {
					t.Errorf("Create() what = %q, want %q", resp.What, "Chicken salad")
				}
			}
		})
	}
}

func TestMealEntryHandler_List(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		query          string
		mockService    *MockMealEntryService
		wantStatusCode int
	}{
		{
			name:   "returns entries",
			userID: userID.String(),
			mockService: &MockMealEntryService{
				listFunc: func(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error) {
					return &domain.MealEntryListResponse{
						Data: []domain.MealEntryResponse{
							{ID: uuid.New(), What: "Oatmeal", Time: time.Now()},
						},
						Pagination: domain.PaginationResponse{HasMore: false},
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:   "filter is passed through",
			userID: userID.String(),
			query:  "?from=2024-01-01T00:00:00Z&to=2024-02-01T00:00:00Z&limit=10",
			mockService: &MockMealEntryService{
				listFunc: func(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error) {
					if filter.From == nil || filter.To == nil {
						t.Error("expected from and to to be set")
					}
					if filter.Limit != 10 {
						t.Errorf("limit = %d, want 10", filter.Limit)
					}
					return &domain.MealEntryListResponse{Data: []domain.MealEntryResponse{}}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid from timestamp",
			userID:         userID.String(),
			query:          "?from=yesterday",
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "non-positive limit",
			userID:         userID.String(),
			query:          "?limit=0",
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			userID: uuid.New().String(),
			mockService: &MockMealEntryService{
				listFunc: func(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMealEntryHandler(tt.mockService)

			req := requestWithMealParams(http.MethodGet, "/v1/users/"+tt.userID+"/meals"+tt.query, "", tt.userID, "")
			rec := httptest.NewRecorder()

			handler.List(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("List() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestMealEntryHandler_Get(t *testing.T) {
	userID := uuid.New()
	mealID := uuid.New()
	entry := &domain.MealEntry{
		ID:     mealID,
		UserID: userID,
		What:   "Pasta",
		Amount: domain.PortionMedium,
		Time:   time.Now(),
	}

	tests := []struct {
		name           string
		userID         string
		mealID         string
		mockService    *MockMealEntryService
		wantStatusCode int
	}{
		{
			name:   "existing meal",
			userID: userID.String(),
			mealID: mealID.String(),
			mockService: &MockMealEntryService{
				getFunc: func(ctx context.Context, uid uuid.UUID, eid uuid.UUID) (*domain.MealEntry, error) {
					if uid == userID && eid == mealID {
						return entry, nil
					}
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "non-existing meal",
			userID:         userID.String(),
			mealID:         uuid.New().String(),
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid meal ID",
			userID:         userID.String(),
			mealID:         "not-a-uuid",
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMealEntryHandler(tt.mockService)

			req := requestWithMealParams(http.MethodGet, "/v1/users/"+tt.userID+"/meals/"+tt.mealID, "", tt.userID, tt.mealID)
			rec := httptest.NewRecorder()

			handler.Get(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Get() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestMealEntryHandler_Update(t *testing.T) {
	userID := uuid.New()
	mealID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    *MockMealEntryService
		wantStatusCode int
	}{
		{
			name: "valid partial update",
			body: `{"what": "Pasta with pesto", "rating": 5}`,
			mockService: &MockMealEntryService{
				updateFunc: func(ctx context.Context, uid uuid.UUID, eid uuid.UUID, req *domain.UpdateMealEntryRequest) (*domain.MealEntry, error) {
					return &domain.MealEntry{
						ID:     eid,
						UserID: uid,
						What:   *req.What,
						Amount: domain.PortionMedium,
						Time:   time.Now(),
						Rating: req.Rating,
					}, nil
				},
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "rating out of range",
			body:           `{"rating": 6}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "non-existing meal",
			body:           `{"what": "Pasta"}`,
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMealEntryHandler(tt.mockService)

			req := requestWithMealParams(http.MethodPatch, "/v1/users/"+userID.String()+"/meals/"+mealID.String(), tt.body, userID.String(), mealID.String())
			rec := httptest.NewRecorder()

			handler.Update(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Update() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}

func TestMealEntryHandler_Delete(t *testing.T) {
	userID := uuid.New()
	mealID := uuid.New()

	tests := []struct {
		name           string
		mealID         string
		mockService    *MockMealEntryService
		wantStatusCode int
	}{
		{
			name:   "existing meal",
			mealID: mealID.String(),
			mockService: &MockMealEntryService{
				deleteFunc: func(ctx context.Context, uid uuid.UUID, eid uuid.UUID) error {
					return nil
				},
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name:           "non-existing meal",
			mealID:         uuid.New().String(),
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid meal ID",
			mealID:         "not-a-uuid",
			mockService:    &MockMealEntryService{},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewMealEntryHandler(tt.mockService)

			req := requestWithMealParams(http.MethodDelete, "/v1/users/"+userID.String()+"/meals/"+tt.mealID, "", userID.String(), tt.mealID)
			rec := httptest.NewRecorder()

			handler.Delete(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Delete() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
		})
	}
}
