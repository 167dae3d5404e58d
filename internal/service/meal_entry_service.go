package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/repository"
	"github.com/humngry/meal-tracker/pkg/pagination"
)

type MealEntryService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealEntryRequest) (*domain.MealEntry, error)
	Get(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) (*domain.MealEntry, error)
	Update(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, req *domain.UpdateMealEntryRequest) (*domain.MealEntry, error)
	Delete(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error)
}

type mealEntryService struct {
	repo         repository.MealEntryRepository
	userRepo     repository.UserRepository
	progressRepo repository.ProgressRepository
}

func NewMealEntryService(repo repository.MealEntryRepository, userRepo repository.UserRepository, progressRepo repository.ProgressRepository) MealEntryService {
	return &mealEntryService{
		repo:         repo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
	}
}

// Create logs a meal, predicts when hunger will recur, and awards logging XP.
func (s *mealEntryService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateMealEntryRequest) (*domain.MealEntry, error) {
	// Load user to confirm existence and get their timezone and sleep window
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	eatenAt := time.Now().UTC()
	if req.Time != nil {
		eatenAt = req.Time.UTC()
	}

	amount := req.Amount
	if amount == "" {
		amount = domain.PortionMedium
	}

	entry := &domain.MealEntry{
		UserID:       userID,
		What:         req.What,
		Amount:       amount,
		Time:         eatenAt,
		Fullness:     req.Fullness,
		Calories:     req.Calories,
		Protein:      req.Protein,
		Carbs:        req.Carbs,
		Fat:          req.Fat,
		Fiber:        req.Fiber,
		Tags:         req.Tags,
		Mood:         req.Mood,
		Rating:       req.Rating,
		HungerBefore: req.HungerBefore,
		Cost:         req.Cost,
		CostCategory: req.CostCategory,
		Notes:        req.Notes,
	}

	nextEatAt := predictFor(entry, user)
	entry.NextEatAt = &nextEatAt

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress.TotalXP += XPPerMealLog
	if err := s.progressRepo.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *mealEntryService) Get(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) (*domain.MealEntry, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// Update amends a logged meal and refreshes its hunger prediction.
func (s *mealEntryService) Update(ctx context.Context, userID uuid.UUID, entryID uuid.UUID, req *domain.UpdateMealEntryRequest) (*domain.MealEntry, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	// Verify ownership
	if entry.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if req.What != nil {
		entry.What = *req.What
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Fullness != nil {
		entry.Fullness = req.Fullness
	}
	if req.Calories != nil {
		entry.Calories = req.Calories
	}
	if req.Protein != nil {
		entry.Protein = req.Protein
	}
	if req.Carbs != nil {
		entry.Carbs = req.Carbs
	}
	if req.Fat != nil {
		entry.Fat = req.Fat
	}
	if req.Fiber != nil {
		entry.Fiber = req.Fiber
	}
	if req.Tags != nil {
		entry.Tags = req.Tags
	}
	if req.Mood != nil {
		entry.Mood = req.Mood
	}
	if req.Rating != nil {
		entry.Rating = req.Rating
	}
	if req.HungerBefore != nil {
		entry.HungerBefore = req.HungerBefore
	}
	if req.Cost != nil {
		entry.Cost = req.Cost
	}
	if req.CostCategory != nil {
		entry.CostCategory = *req.CostCategory
	}
	if req.Notes != nil {
		entry.Notes = req.Notes
	}

	// Macros or fullness may have changed, so the prediction is stale.
	nextEatAt := predictFor(entry, user)
	entry.NextEatAt = &nextEatAt

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *mealEntryService) Delete(ctx context.Context, userID uuid.UUID, entryID uuid.UUID) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.UserID != userID {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, entryID)
}

func (s *mealEntryService) List(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) (*domain.MealEntryListResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	response := &domain.MealEntryListResponse{
		Data: make([]domain.MealEntryResponse, len(entries)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i, entry := range entries {
		response.Data[i] = entry.ToResponse()
	}

	if hasMore && len(entries) > 0 {
		last := entries[len(entries)-1]
		cursor := &pagination.Cursor{
			ID:   last.ID,
			Time: last.Time,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

// predictFor runs the hunger predictor for an entry in the owner's timezone.
func predictFor(entry *domain.MealEntry, user *domain.User) time.Time {
	return PredictNextMealTime(PredictionInput{
		Macros: MacroProfile{
			Calories: entry.CaloriesOrZero(),
			Protein:  entry.ProteinOrZero(),
			Carbs:    entry.CarbsOrZero(),
			Fat:      entry.FatOrZero(),
			Fiber:    entry.FiberOrZero(),
		},
		Amount:     entry.Amount,
		Fullness:   entry.FullnessOrDefault(),
		TimeOfDay:  entry.Time.In(user.Location()),
		SleepStart: user.SleepStart,
		SleepEnd:   user.SleepEnd,
	})
}
