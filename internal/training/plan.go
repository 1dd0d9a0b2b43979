// Package training holds calendar and volume helpers built on top of logged
// sessions: plan rotation, tonnage, 1RM estimates and dashboard summaries.
package training

import (
	"fmt"
	"math"
	"time"

	"github.com/claude/ironlog/internal/models"
)

// CurrentPlan returns the plan for t's ISO week: odd weeks run Plan A,
// even weeks Plan B.
func CurrentPlan(t time.Time) models.PlanType {
	_, week := t.ISOWeek()
	if week%2 == 1 {
		return models.PlanA
	}
	return models.PlanB
}

// WeekStart returns Monday 00:00 of t's ISO week in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// NextWeekStart returns Monday 00:00 of the ISO week after t's.
func NextWeekStart(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// Volume returns the tonnage of sets: sum of reps × weight.
func Volume(sets []models.ExerciseSet) float64 {
	var total float64
	for _, s := range sets {
		total += float64(s.Reps) * s.WeightKg
	}
	return total
}

// SessionVolume returns the tonnage of every set in the session.
func SessionVolume(w models.WorkoutSession) float64 {
	var total float64
	for _, ex := range w.Exercises {
		total += Volume(ex.Sets)
	}
	return total
}

// EstimateOneRepMax uses the Epley formula, rounded to 0.1 kg. A single rep
// is its own maximum.
func EstimateOneRepMax(weightKg float64, reps int) float64 {
	if reps == 1 {
		return weightKg
	}
	return math.Round(weightKg*(1+float64(reps)/30)*10) / 10
}

// FormatDuration renders minutes as "45m", "1h" or "1h 30m".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
