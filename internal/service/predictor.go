package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/humngry/meal-tracker/internal/domain"
)

const (
	// BaselineHours is the starting estimate for time until the next meal.
	BaselineHours = 3.5

	// MinHoursUntilNextMeal and MaxHoursUntilNextMeal clamp the adjusted
	// estimate before the sleep-window correction.
	MinHoursUntilNextMeal = 1.0
	MaxHoursUntilNextMeal = 8.0

	// Default sleep window used when a user has not configured one.
	DefaultSleepStart = "22:00"
	DefaultSleepEnd   = "07:00"

	// wakeBufferMinutes is added past the wake time so predictions never
	// land at the exact moment of waking.
	wakeBufferMinutes = 30
)

// MacroProfile holds the as-eaten macros feeding the prediction.
type MacroProfile struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
}

// PredictionInput bundles everything the predictor looks at.
type PredictionInput struct {
	Macros    MacroProfile
	Amount    domain.PortionSize
	Fullness  int // 1-5; values outside are treated as the neutral 3
	TimeOfDay time.Time
	// HH:MM local sleep window; empty strings fall back to defaults
	SleepStart string
	SleepEnd   string
}

// PredictNextMealTime estimates when hunger will recur after a meal. The
// estimate starts at 3.5 hours and is adjusted by calories, macros, portion
// size and self-reported fullness, clamped to [1h, 8h], then pushed out of
// the user's sleep window if it lands inside it. The function is total: all
// inputs are defaulted or clamped.
func PredictNextMealTime(in PredictionInput) time.Time {
	hours := BaselineHours

	// More calories keep you full longer; a tiny snack does not.
	switch {
	case in.Macros.Calories > 600:
		hours += 1.5
	case in.Macros.Calories > 400:
		hours += 1.0
	case in.Macros.Calories > 200:
		hours += 0.5
	case in.Macros.Calories < 100:
		hours -= 1.0
	}

	// Protein slows digestion
	if in.Macros.Protein > 25 {
		hours += 1.0
	} else if in.Macros.Protein > 15 {
		hours += 0.5
	}

	// Fiber also slows digestion
	if in.Macros.Fiber > 10 {
		hours += 0.5
	} else if in.Macros.Fiber > 5 {
		hours += 0.25
	}

	// Fat slows digestion significantly
	if in.Macros.Fat > 20 {
		hours += 1.0
	} else if in.Macros.Fat > 10 {
		hours += 0.5
	}

	// Simple carbs digest quickly
	if in.Macros.Carbs > 50 && in.Macros.Protein < 10 && in.Macros.Fat < 5 {
		hours -= 0.5
	}

	switch in.Amount {
	case domain.PortionSmall:
		hours -= 0.5
	case domain.PortionLarge:
		hours += 0.5
	}

	fullness := in.Fullness
	if fullness < 1 || fullness > 5 {
		fullness = domain.DefaultFullness
	}
	hours += float64(fullness-domain.DefaultFullness) * 0.5

	if hours < MinHoursUntilNextMeal {
		hours = MinHoursUntilNextMeal
	}
	if hours > MaxHoursUntilNextMeal {
		hours = MaxHoursUntilNextMeal
	}

	candidate := in.TimeOfDay.Add(time.Duration(hours * float64(time.Hour)))

	return adjustForSleepWindow(candidate, in.SleepStart, in.SleepEnd)
}

// adjustForSleepWindow pushes a prediction that lands during sleep to 30
// minutes past the wake time. The window spans midnight (e.g. 22:00 to
// 07:00): hours at or after sleepStart belong to the evening side and move
// to the next calendar day.
func adjustForSleepWindow(candidate time.Time, sleepStart, sleepEnd string) time.Time {
	startHour, _ := parseClock(sleepStart, 22, 0)
	endHour, endMinute := parseClock(sleepEnd, 7, 0)

	hour := candidate.Hour()
	inSleep := hour >= startHour || hour < endHour
	if !inSleep {
		return candidate
	}

	morning := candidate
	if hour >= startHour {
		morning = morning.AddDate(0, 0, 1)
	}
	return time.Date(morning.Year(), morning.Month(), morning.Day(),
		endHour, endMinute+wakeBufferMinutes, 0, 0, morning.Location())
}

// parseClock parses "HH:MM", falling back to the given defaults.
func parseClock(s string, defaultHour, defaultMinute int) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) == 0 || parts[0] == "" {
		return defaultHour, defaultMinute
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return defaultHour, defaultMinute
	}

	minute := 0
	if len(parts) == 2 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 0 && m < 60 {
			minute = m
		}
	}
	return hour, minute
}
