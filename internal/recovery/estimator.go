package recovery

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/claude/ironlog/internal/models"
)

// EstimateFromWorkout returns one estimate per muscle group trained in
// workout. priorHistory may be unsorted and may contain workout itself;
// only sessions strictly before workout.Date are considered.
// The result order is unspecified.
func EstimateFromWorkout(workout models.WorkoutSession, priorHistory []models.WorkoutSession, level models.ExperienceLevel) []models.RecoveryEstimate {
	groups := GroupByMuscle(workout.Exercises)
	estimates := make([]models.RecoveryEstimate, 0, len(groups))
	for group, exercises := range groups {
		estimates = append(estimates, estimate(group, exercises, workout, priorHistory, level))
	}
	return estimates
}

// CurrentStatus returns, for every muscle group in recentWorkouts, the
// estimate derived from the latest session that trained it. Estimates are
// sorted by RecommendedNextTraining, earliest first.
func CurrentStatus(recentWorkouts []models.WorkoutSession, level models.ExperienceLevel) []models.RecoveryEstimate {
	if len(recentWorkouts) == 0 {
		return []models.RecoveryEstimate{}
	}

	sorted := slices.Clone(recentWorkouts)
	sortNewestFirst(sorted)

	// First write wins: the newest session owns each group.
	owners := make(map[models.MuscleGroup]int)
	for i, w := range sorted {
		for _, ex := range w.Exercises {
			if _, ok := owners[ex.MuscleGroup]; !ok {
				owners[ex.MuscleGroup] = i
			}
		}
	}

	estimates := make([]models.RecoveryEstimate, 0, len(owners))
	for group, idx := range owners {
		owner := sorted[idx]
		exercises := GroupByMuscle(owner.Exercises)[group]
		estimates = append(estimates, estimate(group, exercises, owner, sorted, level))
	}

	slices.SortStableFunc(estimates, func(a, b models.RecoveryEstimate) int {
		if c := a.RecommendedNextTraining.Compare(b.RecommendedNextTraining); c != 0 {
			return c
		}
		// Map iteration is random; break ties so the output is reproducible.
		return cmp.Compare(a.MuscleGroup, b.MuscleGroup)
	})
	return estimates
}

func estimate(group models.MuscleGroup, exercises []models.CompletedExercise, workout models.WorkoutSession, history []models.WorkoutSession, level models.ExperienceLevel) models.RecoveryEstimate {
	totalSets, meanRPE := SummarizeGroup(exercises)

	days := DefaultDaysSinceTraining
	if last, ok := FindLastTrained(group, history, workout.Date); ok {
		days = daysBetween(workout.Date, last)
	}

	hours := CalculateRecoveryHours(Factors{
		ExperienceLevel:       level,
		MeanRPE:               meanRPE,
		TotalSets:             totalSets,
		OverallIntensity:      workout.OverallIntensity,
		SleepQuality:          workout.SleepQuality,
		DaysSinceLastTraining: days,
	})

	return models.RecoveryEstimate{
		MuscleGroup:             group,
		LastTrainedDate:         workout.Date,
		RecommendedNextTraining: workout.Date.Add(time.Duration(hours) * time.Hour),
		RecoveryHours:           hours,
		Factors:                 snapshot(meanRPE, totalSets, workout, days),
	}
}

func snapshot(meanRPE float64, totalSets int, workout models.WorkoutSession, days int) models.RecoveryFactorsSnapshot {
	s := models.RecoveryFactorsSnapshot{
		RPE:                   math.Round(meanRPE*10) / 10,
		TotalSets:             totalSets,
		Intensity:             string(models.IntensityModerate),
		DaysSinceLastTraining: days,
	}
	if workout.OverallIntensity != nil {
		s.Intensity = string(*workout.OverallIntensity)
	}
	if workout.SleepQuality != nil {
		s.SleepQuality = string(*workout.SleepQuality)
	}
	return s
}
