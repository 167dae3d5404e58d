// Meal Tracker API
//
// REST API for meal logging, hunger prediction and nutrition gamification.
//
//	@title			Meal Tracker API
//	@version		1.0
//	@description	Log meals with macros and costs, predict the next hunger time, grade daily nutrition, and run challenges.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			meals
//	@tag.description	Meal logging endpoints
//
//	@tag.name			hunger
//	@tag.description	Hunger scoring and pattern analysis
//
//	@tag.name			costs
//	@tag.description	Food spending analysis
//
//	@tag.name			scorecard
//	@tag.description	Daily and weekly nutrition grading
//
//	@tag.name			progress
//	@tag.description	XP, levels and challenge completion
//
//	@tag.name			challenges
//	@tag.description	Challenge catalog, stats and leaderboards
//
//	@tag.name			recommendations
//	@tag.description	Meal timing, recipe and budget recommendations
//
//	@tag.name			insights
//	@tag.description	LLM-narrated insight summaries
//
//	@tag.name			foods
//	@tag.description	OpenFoodFacts proxy
//
//	@tag.name			recipes
//	@tag.description	TheMealDB proxy with cost estimates
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/humngry/meal-tracker/internal/api"
	"github.com/humngry/meal-tracker/internal/api/handler"
	"github.com/humngry/meal-tracker/internal/client"
	"github.com/humngry/meal-tracker/internal/config"
	"github.com/humngry/meal-tracker/internal/domain"
	"github.com/humngry/meal-tracker/internal/llm"
	"github.com/humngry/meal-tracker/internal/repository"
	"github.com/humngry/meal-tracker/internal/seed"
	"github.com/humngry/meal-tracker/internal/service"
	"github.com/humngry/meal-tracker/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize tracing (no-op when no OTLP endpoint is configured)
	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg, "meal-tracker-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.User{}, &domain.MealEntry{}, &domain.NutritionTargets{}, &domain.GameProgress{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	mealRepo := repository.NewMealEntryRepository(db)
	progressRepo := repository.NewProgressRepository(db)

	// Initialize external API clients
	openFoodFacts := client.NewOpenFoodFactsClient(cfg.OpenFoodFactsBaseURL)
	mealDB := client.NewMealDBClient(cfg.MealDBBaseURL)

	// Initialize services
	userService := service.NewUserService(userRepo)
	mealEntryService := service.NewMealEntryService(mealRepo, userRepo, progressRepo)
	hungerService := service.NewHungerService(mealRepo, userRepo)
	costService := service.NewCostService(mealRepo, userRepo)
	scoreCardService := service.NewScoreCardService(mealRepo, userRepo, progressRepo)
	progressService := service.NewProgressService(progressRepo, userRepo)
	challengeService := service.NewChallengeService(mealRepo, userRepo, progressRepo, service.NewMockLeaderboard())
	recommendService := service.NewRecommendService(mealRepo, userRepo, progressRepo)
	foodService := service.NewFoodService(openFoodFacts)
	recipeService := service.NewRecipeService(mealDB)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIMealInsightsModel)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}

	// Initialize insights service
	insightsService := service.NewInsightsService(hungerService, costService, scoreCardService, recommendService, openaiClient, userRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	mealEntryHandler := handler.NewMealEntryHandler(mealEntryService)
	hungerHandler := handler.NewHungerHandler(hungerService)
	costHandler := handler.NewCostHandler(costService)
	scoreCardHandler := handler.NewScoreCardHandler(scoreCardService)
	progressHandler := handler.NewProgressHandler(progressService, challengeService)
	challengeHandler := handler.NewChallengeHandler(challengeService)
	recommendHandler := handler.NewRecommendHandler(recommendService)
	insightsHandler := handler.NewInsightsHandler(insightsService)
	foodHandler := handler.NewFoodHandler(foodService)
	recipeHandler := handler.NewRecipeHandler(recipeService)

	// Setup router
	router := api.NewRouter(
		userHandler,
		mealEntryHandler,
		hungerHandler,
		costHandler,
		scoreCardHandler,
		progressHandler,
		challengeHandler,
		recommendHandler,
		insightsHandler,
		foodHandler,
		recipeHandler,
	)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
