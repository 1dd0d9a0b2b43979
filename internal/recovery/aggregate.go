package recovery

import (
	"slices"
	"time"

	"github.com/claude/ironlog/internal/models"
)

const (
	// DefaultRPE is assumed when no set of a muscle group has an RPE:
	// a moderate effort.
	DefaultRPE = 7.0

	// DefaultDaysSinceTraining is assumed when a muscle group has no earlier
	// session: the group counts as fully rested.
	DefaultDaysSinceTraining = 7
)

// GroupByMuscle partitions exercises by muscle group. Exercises keep their
// relative order within each group. An empty input yields an empty map.
func GroupByMuscle(exercises []models.CompletedExercise) map[models.MuscleGroup][]models.CompletedExercise {
	groups := make(map[models.MuscleGroup][]models.CompletedExercise)
	for _, ex := range exercises {
		groups[ex.MuscleGroup] = append(groups[ex.MuscleGroup], ex)
	}
	return groups
}

// SummarizeGroup returns the total set count and the mean of all recorded
// RPE values across the given exercises. The mean falls back to DefaultRPE
// when no set carries an RPE.
func SummarizeGroup(exercises []models.CompletedExercise) (totalSets int, meanRPE float64) {
	var sum float64
	var rated int
	for _, ex := range exercises {
		totalSets += len(ex.Sets)
		for _, s := range ex.Sets {
			if s.RPE != nil {
				sum += *s.RPE
				rated++
			}
		}
	}
	if rated == 0 {
		return totalSets, DefaultRPE
	}
	return totalSets, sum / float64(rated)
}

// FindLastTrained returns the date of the most recent session strictly
// before the reference instant that contains an exercise for group.
func FindLastTrained(group models.MuscleGroup, history []models.WorkoutSession, before time.Time) (time.Time, bool) {
	prior := sessionsBefore(history, before)
	for _, w := range prior {
		if w.HasMuscleGroup(group) {
			return w.Date, true
		}
	}
	return time.Time{}, false
}

// sessionsBefore returns a new slice of the sessions dated strictly before t,
// newest first. Sessions with equal dates keep their input order.
func sessionsBefore(history []models.WorkoutSession, t time.Time) []models.WorkoutSession {
	prior := make([]models.WorkoutSession, 0, len(history))
	for _, w := range history {
		if w.Date.Before(t) {
			prior = append(prior, w)
		}
	}
	sortNewestFirst(prior)
	return prior
}

func sortNewestFirst(sessions []models.WorkoutSession) {
	slices.SortStableFunc(sessions, func(a, b models.WorkoutSession) int {
		return b.Date.Compare(a.Date)
	})
}

// daysBetween counts whole 24-hour days from earlier to later, truncated
// toward zero.
func daysBetween(later, earlier time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}
