package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
)

// MockMealEntryRepository is a mock implementation of MealEntryRepository
type MockMealEntryRepository struct {
	entries map[uuid.UUID]*domain.MealEntry
	err     error
}

func NewMockMealEntryRepository() *MockMealEntryRepository {
	return &MockMealEntryRepository{
		entries: make(map[uuid.UUID]*domain.MealEntry),
	}
}

func (m *MockMealEntryRepository) Create(ctx context.Context, entry *domain.MealEntry) error {
	if m.err != nil {
		return m.err
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockMealEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	entry, ok := m.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockMealEntryRepository) Update(ctx context.Context, entry *domain.MealEntry) error {
	if m.err != nil {
		return m.err
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockMealEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockMealEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) ([]domain.MealEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MealEntry
	for _, entry := range m.entries {
		if entry.UserID != userID {
			continue
		}
		if filter.From != nil && entry.Time.Before(*filter.From) {
			continue
		}
		if filter.To != nil && entry.Time.After(*filter.To) {
			continue
		}
		result = append(result, *entry)
	}
	sortNewestFirst(result)
	return result, nil
}

func (m *MockMealEntryRepository) ListByTimeRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MealEntry
	for _, entry := range m.entries {
		if entry.UserID == userID && !entry.Time.Before(from) && entry.Time.Before(to) {
			result = append(result, *entry)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

func (m *MockMealEntryRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MealEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.MealEntry
	for _, entry := range m.entries {
		if entry.UserID == userID {
			result = append(result, *entry)
		}
	}
	sortNewestFirst(result)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockMealEntryRepository) SetError(err error) {
	m.err = err
}

func sortNewestFirst(entries []domain.MealEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	progress map[uuid.UUID]*domain.GameProgress
	targets  map[uuid.UUID]*domain.NutritionTargets
	err      error
}

func NewMockProgressRepository() *MockProgressRepository {
	return &MockProgressRepository{
		progress: make(map[uuid.UUID]*domain.GameProgress),
		targets:  make(map[uuid.UUID]*domain.NutritionTargets),
	}
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.GameProgress, error) {
	if m.err != nil {
		return nil, m.err
	}
	progress, ok := m.progress[userID]
	if !ok {
		return &domain.GameProgress{UserID: userID}, nil
	}
	copied := *progress
	return &copied, nil
}

func (m *MockProgressRepository) SaveProgress(ctx context.Context, progress *domain.GameProgress) error {
	if m.err != nil {
		return m.err
	}
	copied := *progress
	m.progress[progress.UserID] = &copied
	return nil
}

func (m *MockProgressRepository) GetTargets(ctx context.Context, userID uuid.UUID) (*domain.NutritionTargets, error) {
	if m.err != nil {
		return nil, m.err
	}
	targets, ok := m.targets[userID]
	if !ok {
		defaults := domain.DefaultNutritionTargets(userID)
		return &defaults, nil
	}
	copied := *targets
	return &copied, nil
}

func (m *MockProgressRepository) SaveTargets(ctx context.Context, targets *domain.NutritionTargets) error {
	if m.err != nil {
		return m.err
	}
	copied := *targets
	m.targets[targets.UserID] = &copied
	return nil
}

func (m *MockProgressRepository) SetError(err error) {
	m.err = err
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}

func timePtr(t time.Time) *time.Time {
	return &t
}
