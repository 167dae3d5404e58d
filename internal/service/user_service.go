package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/repository"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	user := &domain.User{
		ID:         uuid.New(),
		Timezone:   req.Timezone,
		SleepStart: DefaultSleepStart,
		SleepEnd:   DefaultSleepEnd,
	}
	if req.SleepStart != nil && *req.SleepStart != "" {
		user.SleepStart = *req.SleepStart
	}
	if req.SleepEnd != nil && *req.SleepEnd != "" {
		user.SleepEnd = *req.SleepEnd
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}
