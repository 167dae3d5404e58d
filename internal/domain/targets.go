package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default nutrition targets applied until a user edits them.
const (
	DefaultCalorieTarget = 2000.0
	DefaultProteinTarget = 150.0
	DefaultFiberTarget   = 25.0
	DefaultBudgetTarget  = 20.0
)

// NutritionTargets holds a user's daily goals. Budget is a daily food budget
// in dollars; zero disables budget grading.
type NutritionTargets struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Calories  float64   `gorm:"not null;default:2000" json:"calories"`
	Protein   float64   `gorm:"not null;default:150" json:"protein"`
	Fiber     float64   `gorm:"not null;default:25" json:"fiber"`
	Budget    float64   `gorm:"not null;default:20" json:"budget"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NutritionTargets) TableName() string {
	return "nutrition_targets"
}

// DefaultNutritionTargets returns the targets a new user starts with.
func DefaultNutritionTargets(userID uuid.UUID) NutritionTargets {
	return NutritionTargets{
		UserID:   userID,
		Calories: DefaultCalorieTarget,
		Protein:  DefaultProteinTarget,
		Fiber:    DefaultFiberTarget,
		Budget:   DefaultBudgetTarget,
	}
}

// UpdateTargetsRequest is the request body for editing nutrition targets.
type UpdateTargetsRequest struct {
	Calories *float64 `json:"calories,omitempty" validate:"omitempty,min=1" example:"2000"`
	Protein  *float64 `json:"protein,omitempty" validate:"omitempty,min=1" example:"150"`
	Fiber    *float64 `json:"fiber,omitempty" validate:"omitempty,min=1" example:"25"`
	// Daily budget in dollars; 0 disables budget grading
	Budget *float64 `json:"budget,omitempty" validate:"omitempty,min=0" example:"20"`
}

// GameProgress is the single authoritative gamification aggregate for a user.
// TotalXP only grows, except on explicit reset. CompletedChallenges guards
// against awarding a challenge's XP twice.
type GameProgress struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TotalXP             int       `gorm:"not null;default:0" json:"total_xp"`
	CompletedChallenges TagList   `gorm:"type:text" json:"completed_challenges"`
	LastUpdated         time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

func (GameProgress) TableName() string {
	return "game_progress"
}

// HasCompleted reports whether the challenge id was already awarded.
func (g *GameProgress) HasCompleted(challengeID string) bool {
	for _, id := range g.CompletedChallenges {
		if id == challengeID {
			return true
		}
	}
	return false
}

// LevelInfo describes where a cumulative XP total sits on the level curve.
// @Description Level derived from total XP. Level N requires N*500 XP.
type LevelInfo struct {
	Level int `json:"level" example:"3"`
	// XP accumulated within the current level
	CurrentXP int `json:"current_xp" example:"250"`
	// XP needed to finish the current level
	XPToNextLevel int `json:"xp_to_next_level" example:"1500"`
	// Progress through the current level, 0-100
	Progress int    `json:"progress" example:"16"`
	Title    string `json:"title" example:"Home Cook"`
}

// GameProgressResponse combines the stored aggregate with the derived level.
type GameProgressResponse struct {
	TotalXP             int       `json:"total_xp"`
	CompletedChallenges []string  `json:"completed_challenges"`
	LastUpdated         time.Time `json:"last_updated"`
	Level               LevelInfo `json:"level"`
}
