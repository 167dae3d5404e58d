package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/llm"
	"github.com/humngry/meal-tracker/internal/repository"
)

// InsightsService narrates the deterministic analyses through an LLM.
type InsightsService interface {
	// Generate runs the analyzers and has the LLM write a narrative over them.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

type insightsService struct {
	hungerService    HungerService
	costService      CostService
	scoreCardService ScoreCardService
	recommendService RecommendService
	llmClient        llm.InsightsLLM
	userRepo         repository.UserRepository
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(
	hungerService HungerService,
	costService CostService,
	scoreCardService ScoreCardService,
	recommendService RecommendService,
	llmClient llm.InsightsLLM,
	userRepo repository.UserRepository,
) InsightsService {
	return &insightsService{
		hungerService:    hungerService,
		costService:      costService,
		scoreCardService: scoreCardService,
		recommendService: recommendService,
		llmClient:        llmClient,
		userRepo:         userRepo,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	hunger, err := s.hungerService.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	cost, err := s.costService.Analyze(ctx, userID)
	if err != nil {
		return nil, err
	}

	scoreCard, err := s.scoreCardService.Daily(ctx, userID)
	if err != nil {
		return nil, err
	}

	habits, err := s.recommendService.Habits(ctx, userID)
	if err != nil {
		return nil, err
	}

	insightsCtx := &domain.InsightsContext{
		Hunger:    *hunger,
		Cost:      *cost,
		ScoreCard: *scoreCard,
		Habits:    habits,
	}

	llmOutput, err := s.llmClient.GenerateInsights(ctx, insightsCtx)
	if err != nil {
		return nil, err
	}

	return &domain.InsightsResponse{
		Insights: *llmOutput,
		Metrics:  *insightsCtx,
	}, nil
}
