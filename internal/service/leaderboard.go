package service

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/humngry/meal-tracker/internal/domain"
)

// LeaderboardProvider supplies challenge standings. The production
// implementation would call a social backend; until one exists the mock
// below generates plausible data.
type LeaderboardProvider interface {
	// Standings returns ranked rows for a challenge, including a row for
	// the requesting user with their real score.
	Standings(ctx context.Context, challengeID string, yourScore int) ([]domain.LeaderboardRow, error)
}

// mockLeaderboard fabricates standings from a per-challenge seed, so the
// same challenge always shows the same board. Swap this out when a real
// social backend lands.
type mockLeaderboard struct{}

// NewMockLeaderboard creates the stand-in LeaderboardProvider.
func NewMockLeaderboard() LeaderboardProvider {
	return &mockLeaderboard{}
}

var leaderboardNames = []string{
	"FoodieChef", "HealthNut", "MealMaster", "CookingKing", "VeggieQueen",
	"ProteinPro", "BudgetBoss", "PrepGuru", "NutritionNerd", "FitnessFoodie",
}

func (m *mockLeaderboard) Standings(_ context.Context, challengeID string, yourScore int) ([]domain.LeaderboardRow, error) {
	h := fnv.New64a()
	h.Write([]byte(challengeID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	rows := make([]domain.LeaderboardRow, 0, len(leaderboardNames)+1)
	for _, name := range leaderboardNames {
		rows = append(rows, domain.LeaderboardRow{
			Username: name,
			Score:    rng.Intn(100) + 50,
		})
	}
	rows = append(rows, domain.LeaderboardRow{
		Username: "You",
		Score:    yourScore,
		IsYou:    true,
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}
