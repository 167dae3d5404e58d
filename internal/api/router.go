package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	_ "github.com/humngry/meal-tracker/docs"
	"github.com/humngry/meal-tracker/internal/api/handler"
	"github.com/humngry/meal-tracker/internal/api/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	userHandler      *handler.UserHandler
	mealEntryHandler *handler.MealEntryHandler
	hungerHandler    *handler.HungerHandler
	costHandler      *handler.CostHandler
	scoreCardHandler *handler.ScoreCardHandler
	progressHandler  *handler.ProgressHandler
	challengeHandler *handler.ChallengeHandler
	recommendHandler *handler.RecommendHandler
	insightsHandler  *handler.InsightsHandler
	foodHandler      *handler.FoodHandler
	recipeHandler    *handler.RecipeHandler
}

func NewRouter(
	userHandler *handler.UserHandler,
	mealEntryHandler *handler.MealEntryHandler,
	hungerHandler *handler.HungerHandler,
	costHandler *handler.CostHandler,
	scoreCardHandler *handler.ScoreCardHandler,
	progressHandler *handler.ProgressHandler,
	challengeHandler *handler.ChallengeHandler,
	recommendHandler *handler.RecommendHandler,
	insightsHandler *handler.InsightsHandler,
	foodHandler *handler.FoodHandler,
	recipeHandler *handler.RecipeHandler,
) *Router {
	return &Router{
		userHandler:      userHandler,
		mealEntryHandler: mealEntryHandler,
		hungerHandler:    hungerHandler,
		costHandler:      costHandler,
		scoreCardHandler: scoreCardHandler,
		progressHandler:  progressHandler,
		challengeHandler: challengeHandler,
		recommendHandler: recommendHandler,
		insightsHandler:  insightsHandler,
		foodHandler:      foodHandler,
		recipeHandler:    recipeHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Tracing)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", rt.userHandler.Create)
			r.Get("/{userId}", rt.userHandler.GetByID)

			// Meals (nested under users)
			r.Route("/{userId}/meals", func(r chi.Router) {
				r.Post("/", rt.mealEntryHandler.Create)
				r.Get("/", rt.mealEntryHandler.List)
				r.Get("/{mealId}", rt.mealEntryHandler.Get)
				r.Patch("/{mealId}", rt.mealEntryHandler.Update)
				r.Delete("/{mealId}", rt.mealEntryHandler.Delete)
			})

			// Nutrition targets
			r.Route("/{userId}/targets", func(r chi.Router) {
				r.Get("/", rt.progressHandler.GetTargets)
				r.Put("/", rt.progressHandler.UpdateTargets)
			})

			// Hunger analysis
			r.Route("/{userId}/hunger", func(r chi.Router) {
				r.Get("/score", rt.hungerHandler.GetScore)
				r.Get("/insights", rt.hungerHandler.GetInsights)
			})

			// Spending analysis
			r.Route("/{userId}/costs", func(r chi.Router) {
				r.Get("/breakdown", rt.costHandler.GetBreakdown)
				r.Get("/insights", rt.costHandler.GetInsights)
				r.Get("/budget", rt.costHandler.GetBudget)
			})

			// Score cards
			r.Route("/{userId}/scorecard", func(r chi.Router) {
				r.Get("/", rt.scoreCardHandler.GetDaily)
				r.Get("/weekly", rt.scoreCardHandler.GetWeekly)
			})

			// Game progress
			r.Route("/{userId}/progress", func(r chi.Router) {
				r.Get("/", rt.progressHandler.Get)
				r.Post("/challenges/{challengeId}/complete", rt.progressHandler.CompleteChallenge)
			})

			// Challenges
			r.Route("/{userId}/challenges", func(r chi.Router) {
				r.Get("/", rt.challengeHandler.List)
				r.Get("/stats", rt.challengeHandler.GetStats)
				r.Get("/recommended", rt.challengeHandler.GetRecommended)
				r.Get("/{challengeId}/leaderboard", rt.challengeHandler.GetLeaderboard)
			})

			// Recommendations
			r.Route("/{userId}/recommendations", func(r chi.Router) {
				r.Get("/meal-timing", rt.recommendHandler.GetMealTiming)
				r.Post("/recipes", rt.recommendHandler.ScoreRecipes)
				r.Get("/budget", rt.recommendHandler.GetBudgetOptimization)
				r.Get("/habits", rt.recommendHandler.GetHabits)
				r.Get("/gaps", rt.recommendHandler.GetNutritionGaps)
			})

			// Narrated insights
			r.Get("/{userId}/insights", rt.insightsHandler.GetInsights)
		})

		// Food database proxy
		r.Route("/foods", func(r chi.Router) {
			r.Get("/search", rt.foodHandler.Search)
			r.Get("/tip", rt.foodHandler.GetTip)
			r.Get("/{barcode}", rt.foodHandler.GetByBarcode)
		})

		// Recipe discovery
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/search", rt.recipeHandler.Search)
			r.Get("/random", rt.recipeHandler.Random)
			r.Get("/categories", rt.recipeHandler.Categories)
			r.Get("/category/{category}", rt.recipeHandler.ByCategory)
		})
	})

	return r
}
