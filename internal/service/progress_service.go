package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/repository"
)

// XPPerMealLog is awarded for every meal logged.
const XPPerMealLog = 10

// ProgressService owns the per-user gamification aggregate and the editable
// nutrition targets. All XP mutations flow through here so the stored total
// stays the single source of truth.
type ProgressService interface {
	// Get returns the aggregate together with the derived level.
	Get(ctx context.Context, userID uuid.UUID) (*domain.GameProgressResponse, error)
	// AddXP grants XP and persists the new total.
	AddXP(ctx context.Context, userID uuid.UUID, amount int) (*domain.GameProgressResponse, error)
	// Reset zeroes the aggregate.
	Reset(ctx context.Context, userID uuid.UUID) error
	// Targets returns the user's nutrition targets, defaults included.
	Targets(ctx context.Context, userID uuid.UUID) (*domain.NutritionTargets, error)
	// UpdateTargets applies a partial edit to the targets.
	UpdateTargets(ctx context.Context, userID uuid.UUID, req *domain.UpdateTargetsRequest) (*domain.NutritionTargets, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	userRepo     repository.UserRepository
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progressRepo repository.ProgressRepository, userRepo repository.UserRepository) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

func (s *progressService) Get(ctx context.Context, userID uuid.UUID) (*domain.GameProgressResponse, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProgressResponse(progress), nil
}

func (s *progressService) AddXP(ctx context.Context, userID uuid.UUID, amount int) (*domain.GameProgressResponse, error) {
	if amount < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	progress.TotalXP += amount
	if err := s.progressRepo.SaveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return toProgressResponse(progress), nil
}

func (s *progressService) Reset(ctx context.Context, userID uuid.UUID) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	progress := &domain.GameProgress{UserID: userID}
	return s.progressRepo.SaveProgress(ctx, progress)
}

func (s *progressService) Targets(ctx context.Context, userID uuid.UUID) (*domain.NutritionTargets, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetTargets(ctx, userID)
}

func (s *progressService) UpdateTargets(ctx context.Context, userID uuid.UUID, req *domain.UpdateTargetsRequest) (*domain.NutritionTargets, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	targets, err := s.progressRepo.GetTargets(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Calories != nil {
		targets.Calories = *req.Calories
	}
	if req.Protein != nil {
		targets.Protein = *req.Protein
	}
	if req.Fiber != nil {
		targets.Fiber = *req.Fiber
	}
	if req.Budget != nil {
		targets.Budget = *req.Budget
	}

	if err := s.progressRepo.SaveTargets(ctx, targets); err != nil {
		return nil, err
	}
	return targets, nil
}

func (s *progressService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	_, err := s.userRepo.GetByID(ctx, userID)
	return err
}

func toProgressResponse(progress *domain.GameProgress) *domain.GameProgressResponse {
	completed := progress.CompletedChallenges
	if completed == nil {
		completed = domain.TagList{}
	}
	return &domain.GameProgressResponse{
		TotalXP:             progress.TotalXP,
		CompletedChallenges: completed,
		LastUpdated:         progress.LastUpdated,
		Level:               calculateLevel(progress.TotalXP),
	}
}
