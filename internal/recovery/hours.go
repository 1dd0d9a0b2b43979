// Package recovery estimates when each muscle group is ready to be trained
// again. All functions are pure and safe for concurrent use.
package recovery

import "github.com/claude/ironlog/internal/models"

// Recovery duration bounds in hours.
const (
	MinRecoveryHours = 24
	MaxRecoveryHours = 168
)

// Factors are the per-muscle-group inputs to CalculateRecoveryHours.
// Nil OverallIntensity or SleepQuality means no adjustment.
type Factors struct {
	ExperienceLevel       models.ExperienceLevel
	MeanRPE               float64
	TotalSets             int
	OverallIntensity      *models.Intensity
	SleepQuality          *models.SleepQuality
	DaysSinceLastTraining int
}

// CalculateRecoveryHours applies the adjustment rules in a fixed order and
// clamps the sum to [MinRecoveryHours, MaxRecoveryHours]. Within each rule
// the thresholds are checked top-down and only the first match applies.
func CalculateRecoveryHours(f Factors) int {
	var hours int

	switch f.ExperienceLevel {
	case models.LevelBeginner:
		hours = 72
	case models.LevelIntermediate:
		hours = 48
	case models.LevelAdvanced:
		hours = 36
	}

	switch {
	case f.MeanRPE >= 9:
		hours += 24
	case f.MeanRPE >= 8:
		hours += 12
	case f.MeanRPE <= 5:
		hours -= 12
	}

	switch {
	case f.TotalSets >= 20:
		hours += 12
	case f.TotalSets >= 15:
		hours += 6
	case f.TotalSets <= 5:
		hours -= 6
	}

	if f.OverallIntensity != nil {
		switch *f.OverallIntensity {
		case models.IntensityVeryHard:
			hours += 24
		case models.IntensityHard:
			hours += 12
		case models.IntensityLight:
			hours -= 12
		}
	}

	if f.SleepQuality != nil {
		switch *f.SleepQuality {
		case models.SleepPoor:
			hours += 24
		case models.SleepExcellent:
			hours -= 12
		}
	}

	// Long gaps mean the group is already rested; short ones compound fatigue.
	switch {
	case f.DaysSinceLastTraining >= 7:
		hours -= 24
	case f.DaysSinceLastTraining <= 2:
		hours += 12
	}

	return max(MinRecoveryHours, min(MaxRecoveryHours, hours))
}
