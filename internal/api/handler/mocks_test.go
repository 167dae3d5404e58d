package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
)

// MockMealEntryService is a mock implementation of MealEntryService
type MockMealEntryService struct {
	createFunc func(ctx context.Context, userID uuid.UUID, req *domain.CreateMealEntryRequest) (*domain.MealEntry, error)
	getFunc    func(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) (*domain.MealEntry, error)
	updateFunc func(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, req *domain.UpdateMealEntryRequest) (*domain.MealEntry, error)
	deleteFunc func(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error)
}

func (m *MockMealEntryService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealEntryRequest) (*domain.MealEntry, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, userID, req)
	}
	return &domain.MealEntry{
		ID:     uuid.New(),
		UserID: userID,
		What:   req.What,
		Amount: domain.PortionMedium,
		Time:   time.Now(),
	}, nil
}

func (m *MockMealEntryService) Get(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) (*domain.MealEntry, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, entryID)
	}
	return nil, domain.ErrNotFound
}

func (m *MockMealEntryService) Update(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, req *domain.UpdateMealEntryRequest) (*domain.MealEntry, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, userID, entryID, req)
	}
	return nil, domain.ErrNotFound
}

func (m *MockMealEntryService) Delete(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, entryID)
	}
	return domain.ErrNotFound
}

func (m *MockMealEntryService) List(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.MealEntryListResponse{Data: []domain.MealEntryResponse{}}, nil
}

// MockChallengeService is a mock implementation of ChallengeService
type MockChallengeService struct {
	listFunc        func(ctx context.Context, userID uuid.UUID) ([]domain.ChallengeWithProgress, error)
	statsFunc       func(ctx context.Context, userID uuid.UUID) (*domain.UserChallengeStats, error)
	recommendedFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error)
	completeFunc    func(ctx context.Context, userID uuid.UUID, challengeID string) (*domain.GameProgress, error)
	leaderboardFunc func(ctx context.Context, userID uuid.UUID, challengeID string) ([]domain.LeaderboardRow, error)
}

func (m *MockChallengeService) List(ctx context.Context, userID uuid.UUID) ([]domain.ChallengeWithProgress, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return []domain.ChallengeWithProgress{}, nil
}

func (m *MockChallengeService) Stats(ctx context.Context, userID uuid.UUID) (*domain.UserChallengeStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, userID)
	}
	return &domain.UserChallengeStats{Achievements: []string{}}, nil
}

func (m *MockChallengeService) Recommended(ctx context.Context, userID uuid.UUID) ([]domain.Challenge, error) {
	if m.recommendedFunc != nil {
		return m.recommendedFunc(ctx, userID)
	}
	return []domain.Challenge{}, nil
}

func (m *MockChallengeService) Complete(ctx context.Context, userID uuid.UUID, challengeID string) (*domain.GameProgress, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, userID, challengeID)
	}
	return &domain.GameProgress{UserID: userID}, nil
}

func (m *MockChallengeService) Leaderboard(ctx context.Context, userID uuid.UUID, challengeID string) ([]domain.LeaderboardRow, error) {
	if m.leaderboardFunc != nil {
		return m.leaderboardFunc(ctx, userID, challengeID)
	}
	return []domain.LeaderboardRow{}, nil
}
