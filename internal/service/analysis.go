package service

import (
	"math"
	"sort"
	"time"

	"github.com/humngry/meal-tracker/internal/domain"
)

// Helpers shared by the analysis services. All work on plain entry slices so
// the analyses stay pure; callers pass "now" carrying the user's timezone and
// entry times are localized against it.

// sortedByTimeAsc returns a copy of entries ordered oldest first.
func sortedByTimeAsc(entries []domain.MealEntry) []domain.MealEntry {
	sorted := make([]domain.MealEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

// sortedByTimeDesc returns a copy of entries ordered newest first.
func sortedByTimeDesc(entries []domain.MealEntry) []domain.MealEntry {
	sorted := make([]domain.MealEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})
	return sorted
}

// dayKey buckets a time into its local calendar day.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// hoursBetween returns the signed gap from a to b in hours.
func hoursBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours()
}

// round2 rounds to two decimal places, matching the precision the analyses
// report money and hours at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// safeCount guards aggregate divisions against empty groups.
func safeCount(n int) float64 {
	if n < 1 {
		return 1
	}
	return float64(n)
}
