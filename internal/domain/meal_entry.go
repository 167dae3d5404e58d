package domain

import (
	"time"

	"github.com/google/uuid"
)

// PortionSize represents how large a logged meal was.
// @Description Portion size: SMALL, MEDIUM or LARGE. Scales macro estimates by 0.7 / 1.0 / 1.3.
type PortionSize string

const (
	PortionSmall  PortionSize = "small"
	PortionMedium PortionSize = "medium"
	PortionLarge  PortionSize = "large"
)

// Multiplier returns the macro scaling factor for the portion size.
func (p PortionSize) Multiplier() float64 {
	switch p {
	case PortionSmall:
		return 0.7
	case PortionLarge:
		return 1.3
	default:
		return 1.0
	}
}

// CostCategory is a quick price-tier indicator for a meal.
// @Description Cost tier from $ (cheap) to $$$$ (expensive).
type CostCategory string

const (
	CostCheap     CostCategory = "$"
	CostModerate  CostCategory = "$$"
	CostExpensive CostCategory = "$$$"
	CostPremium   CostCategory = "$$$$"
)

// EstimatedCost returns a rough dollar estimate for a cost tier, used when an
// exact cost was not logged.
func (c CostCategory) EstimatedCost() float64 {
	switch c {
	case CostCheap:
		return 5
	case CostModerate:
		return 12
	case CostExpensive:
		return 25
	case CostPremium:
		return 50
	default:
		return 0
	}
}

// Well-known tags the analyzers key off. Tags are free text; these are the
// ones with behavioral meaning.
const (
	TagHomeCooked = "Home-cooked"
	TagTakeout    = "Takeout"
	TagBreakfast  = "Breakfast"
	TagLunch      = "Lunch"
	TagDinner     = "Dinner"
	TagVegetarian = "Vegetarian"
	TagVegan      = "Vegan"
	TagMealPrep   = "Meal Prep"
	TagLeftovers  = "Leftovers"
)

// DefaultFullness is the neutral self-reported satiety used when a meal was
// logged without one.
const DefaultFullness = 3

type MealEntry struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID    `gorm:"type:uuid;not null;index:idx_meal_entries_user_time" json:"user_id"`
	What         string       `gorm:"type:varchar(255);not null" json:"what"`
	Amount       PortionSize  `gorm:"type:varchar(10);not null;default:'medium'" json:"amount"`
	Time         time.Time    `gorm:"not null;index:idx_meal_entries_user_time,sort:desc" json:"time"`
	Fullness     *int         `gorm:"type:smallint" json:"fullness,omitempty"`
	NextEatAt    *time.Time   `json:"next_eat_at,omitempty"`
	Calories     *float64     `json:"calories,omitempty"`
	Protein      *float64     `json:"protein,omitempty"`
	Carbs        *float64     `json:"carbs,omitempty"`
	Fat          *float64     `json:"fat,omitempty"`
	Fiber        *float64     `json:"fiber,omitempty"`
	Tags         TagList      `gorm:"type:text" json:"tags,omitempty"`
	Mood         *string      `gorm:"type:varchar(16)" json:"mood,omitempty"`
	Rating       *int         `gorm:"type:smallint" json:"rating,omitempty"`
	HungerBefore *int         `gorm:"type:smallint" json:"hunger_before,omitempty"`
	Cost         *float64     `json:"cost,omitempty"`
	CostCategory CostCategory `gorm:"type:varchar(4)" json:"cost_category,omitempty"`
	Notes        *string      `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MealEntry) TableName() string {
	return "meal_entries"
}

// FullnessOrDefault returns the logged fullness, or the neutral 3 if absent.
func (m *MealEntry) FullnessOrDefault() int {
	if m.Fullness == nil {
		return DefaultFullness
	}
	return *m.Fullness
}

// HasTag reports whether the entry carries the given tag.
func (m *MealEntry) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the entry carries at least one of the given tags.
func (m *MealEntry) HasAnyTag(tags ...string) bool {
	for _, t := range tags {
		if m.HasTag(t) {
			return true
		}
	}
	return false
}

// CaloriesOrZero and friends default missing macros to zero for aggregation.
func (m *MealEntry) CaloriesOrZero() float64 { return deref(m.Calories) }
func (m *MealEntry) ProteinOrZero() float64  { return deref(m.Protein) }
func (m *MealEntry) CarbsOrZero() float64    { return deref(m.Carbs) }
func (m *MealEntry) FatOrZero() float64      { return deref(m.Fat) }
func (m *MealEntry) FiberOrZero() float64    { return deref(m.Fiber) }
func (m *MealEntry) CostOrZero() float64     { return deref(m.Cost) }

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// CreateMealEntryRequest is the request body for logging a meal.
// @Description Request payload for logging a meal. Macros are for the as-eaten portion.
type CreateMealEntryRequest struct {
	// Free-text food name
	What string `json:"what" validate:"required,max=255" example:"Chicken salad"`
	// Portion size
	Amount PortionSize `json:"amount" validate:"omitempty,oneof=small medium large" example:"medium" enums:"small,medium,large"`
	// Time of consumption (RFC3339); defaults to now
	Time *time.Time `json:"time,omitempty" example:"2024-01-15T12:30:00Z"`
	// Self-reported fullness right after eating, 1-5
	Fullness *int `json:"fullness,omitempty" validate:"omitempty,min=1,max=5" example:"4"`
	// Calories for the as-eaten portion
	Calories *float64 `json:"calories,omitempty" validate:"omitempty,min=0" example:"450"`
	Protein  *float64 `json:"protein,omitempty" validate:"omitempty,min=0" example:"32"`
	Carbs    *float64 `json:"carbs,omitempty" validate:"omitempty,min=0" example:"40"`
	Fat      *float64 `json:"fat,omitempty" validate:"omitempty,min=0" example:"18"`
	Fiber    *float64 `json:"fiber,omitempty" validate:"omitempty,min=0" example:"6"`
	// Free-text labels, e.g. Home-cooked, Breakfast, Vegetarian
	Tags []string `json:"tags,omitempty" validate:"omitempty,dive,max=64"`
	Mood *string  `json:"mood,omitempty" validate:"omitempty,max=16"`
	// Star rating 1-5
	Rating *int `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	// Hunger before eating, 1-5
	HungerBefore *int         `json:"hunger_before,omitempty" validate:"omitempty,min=1,max=5"`
	Cost         *float64     `json:"cost,omitempty" validate:"omitempty,min=0" example:"8.50"`
	CostCategory CostCategory `json:"cost_category,omitempty" validate:"omitempty,oneof=$ $$ $$$ $$$$" enums:"$,$$,$$$,$$$$"`
	Notes        *string      `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateMealEntryRequest is the request body for amending a logged meal.
// Only provided fields are changed.
type UpdateMealEntryRequest struct {
	What         *string       `json:"what,omitempty" validate:"omitempty,max=255"`
	Amount       *PortionSize  `json:"amount,omitempty" validate:"omitempty,oneof=small medium large"`
	Fullness     *int          `json:"fullness,omitempty" validate:"omitempty,min=1,max=5"`
	Calories     *float64      `json:"calories,omitempty" validate:"omitempty,min=0"`
	Protein      *float64      `json:"protein,omitempty" validate:"omitempty,min=0"`
	Carbs        *float64      `json:"carbs,omitempty" validate:"omitempty,min=0"`
	Fat          *float64      `json:"fat,omitempty" validate:"omitempty,min=0"`
	Fiber        *float64      `json:"fiber,omitempty" validate:"omitempty,min=0"`
	Tags         []string      `json:"tags,omitempty" validate:"omitempty,dive,max=64"`
	Mood         *string       `json:"mood,omitempty" validate:"omitempty,max=16"`
	Rating       *int          `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	HungerBefore *int          `json:"hunger_before,omitempty" validate:"omitempty,min=1,max=5"`
	Cost         *float64      `json:"cost,omitempty" validate:"omitempty,min=0"`
	CostCategory *CostCategory `json:"cost_category,omitempty" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	Notes        *string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// MealEntryResponse is the response body for meal entry endpoints.
// @Description A logged meal with its predicted next hunger time.
type MealEntryResponse struct {
	ID           uuid.UUID    `json:"id"`
	UserID       uuid.UUID    `json:"user_id"`
	What         string       `json:"what"`
	Amount       PortionSize  `json:"amount"`
	Time         time.Time    `json:"time"`
	Fullness     *int         `json:"fullness,omitempty"`
	NextEatAt    *time.Time   `json:"next_eat_at,omitempty"`
	Calories     *float64     `json:"calories,omitempty"`
	Protein      *float64     `json:"protein,omitempty"`
	Carbs        *float64     `json:"carbs,omitempty"`
	Fat          *float64     `json:"fat,omitempty"`
	Fiber        *float64     `json:"fiber,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	Mood         *string      `json:"mood,omitempty"`
	Rating       *int         `json:"rating,omitempty"`
	HungerBefore *int         `json:"hunger_before,omitempty"`
	Cost         *float64     `json:"cost,omitempty"`
	CostCategory CostCategory `json:"cost_category,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (m *MealEntry) ToResponse() MealEntryResponse {
	return MealEntryResponse{
		ID:           m.ID,
		UserID:       m.UserID,
		What:         m.What,
		Amount:       m.Amount,
		Time:         m.Time,
		Fullness:     m.Fullness,
		NextEatAt:    m.NextEatAt,
		Calories:     m.Calories,
		Protein:      m.Protein,
		Carbs:        m.Carbs,
		Fat:          m.Fat,
		Fiber:        m.Fiber,
		Tags:         m.Tags,
		Mood:         m.Mood,
		Rating:       m.Rating,
		HungerBefore: m.HungerBefore,
		Cost:         m.Cost,
		CostCategory: m.CostCategory,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
}

// MealEntryListResponse is the response body for listing meal entries.
// @Description Paginated list of meal entries, newest first.
type MealEntryListResponse struct {
	Data       []MealEntryResponse `json:"data"`
	Pagination PaginationResponse  `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more"`
}

// MealEntryFilter contains filter parameters for listing meal entries.
type MealEntryFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
