package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"gorm.io/gorm"
)

// ProgressRepository persists the per-user gamification aggregate and the
// editable nutrition targets.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID uuid.UUID) (*domain.GameProgress, error)
	SaveProgress(ctx context.Context, progress *domain.GameProgress) error
	GetTargets(ctx context.Context, userID uuid.UUID) (*domain.NutritionTargets, error)
	SaveTargets(ctx context.Context, targets *domain.NutritionTargets) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

// GetProgress returns the stored aggregate, or a zeroed one for users who
// have not earned XP yet.
func (r *progressRepository) GetProgress(ctx context.Context, userID uuid.UUID) (*domain.GameProgress, error) {
	var progress domain.GameProgress
	err := r.db.WithContext(ctx).First(&progress, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &domain.GameProgress{UserID: userID}, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) SaveProgress(ctx context.Context, progress *domain.GameProgress) error {
	return r.db.WithContext(ctx).Save(progress).Error
}

// GetTargets returns the stored targets, or the defaults for users who have
// not edited them.
func (r *progressRepository) GetTargets(ctx context.Context, userID uuid.UUID) (*domain.NutritionTargets, error) {
	var targets domain.NutritionTargets
	err := r.db.WithContext(ctx).First(&targets, "user_id = ?", userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			defaults := domain.DefaultNutritionTargets(userID)
			return &defaults, nil
		}
		return nil, err
	}
	return &targets, nil
}

func (r *progressRepository) SaveTargets(ctx context.Context, targets *domain.NutritionTargets) error {
	return r.db.WithContext(ctx).Save(targets).Error
}
