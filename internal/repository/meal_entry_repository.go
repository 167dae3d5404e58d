package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/pkg/pagination"
	"gorm.io/gorm"
)

type MealEntryRepository interface {
	Create(ctx context.Context, entry *domain.MealEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MealEntry, error)
	Update(ctx context.Context, entry *domain.MealEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) ([]domain.MealEntry, error)
	// ListByTimeRange returns all entries eaten within [from, to), newest first.
	ListByTimeRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealEntry, error)
	// ListRecent returns the newest entries up to limit (0 = no limit).
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MealEntry, error)
}

type mealEntryRepository struct {
	db *gorm.DB
}

func NewMealEntryRepository(db *gorm.DB) MealEntryRepository {
	return &mealEntryRepository{db: db}
}

func (r *mealEntryRepository) Create(ctx context.Context, entry *domain.MealEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *mealEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MealEntry, error) {
	var entry domain.MealEntry
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *mealEntryRepository) Update(ctx context.Context, entry *domain.MealEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *mealEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.MealEntry{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *mealEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.MealEntryFilter) ([]domain.MealEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time DESC")

	// Apply time filters
	if filter.From != nil {
		query = query.Where("time >= ?", filter.From)
	}
	if filter.To != nil {
		query = query.Where("time <= ?", filter.To)
	}

	// Apply cursor pagination
	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// For DESC order: get records with time < cursor.Time
			// or same time but id < cursor.ID
			query = query.Where(
				"(time < ?) OR (time = ? AND id < ?)",
				cursor.Time, cursor.Time, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.MealEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *mealEntryRepository) ListByTimeRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.MealEntry, error) {
	var entries []domain.MealEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("time >= ? AND time < ?", from, to).
		Order("time DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *mealEntryRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.MealEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []domain.MealEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
