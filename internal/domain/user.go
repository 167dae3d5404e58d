package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Timezone string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	// Sleep window in HH:MM; predictions never land inside it
	SleepStart string    `gorm:"type:varchar(5);not null;default:'22:00'" json:"sleep_start"`
	SleepEnd   string    `gorm:"type:varchar(5);not null;default:'07:00'" json:"sleep_end"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Location resolves the user's IANA timezone, falling back to UTC.
func (u *User) Location() *time.Location {
	if u.Timezone != "" {
		if loc, err := time.LoadLocation(u.Timezone); err == nil {
			return loc
		}
	}
	return time.UTC
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone string `json:"timezone" validate:"required,timezone"`
	// Optional sleep window override in HH:MM
	SleepStart *string `json:"sleep_start,omitempty" validate:"omitempty,len=5"`
	SleepEnd   *string `json:"sleep_end,omitempty" validate:"omitempty,len=5"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Timezone   string    `json:"timezone"`
	SleepStart string    `json:"sleep_start"`
	SleepEnd   string    `json:"sleep_end"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Timezone:   u.Timezone,
		SleepStart: u.SleepStart,
		SleepEnd:   u.SleepEnd,
		CreatedAt:  u.CreatedAt,
	}
}
