package recovery

import (
	"testing"

	"github.com/claude/ironlog/internal/models"
)

func intensity(i models.Intensity) *models.Intensity   { return &i }
func sleep(s models.SleepQuality) *models.SleepQuality { return &s }

// baseline is an intermediate lifter with no adjustments triggered: 48h.
func baseline() Factors {
	return Factors{
		ExperienceLevel:       models.LevelIntermediate,
		MeanRPE:               7,
		TotalSets:             10,
		DaysSinceLastTraining: 4,
	}
}

// TestCalculateRecoveryHoursRules verifies each rule in isolation, including
// the exact threshold values where the if/else-if order matters.
func TestCalculateRecoveryHoursRules(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Factors)
		want   int
	}{
		{"baseline", func(f *Factors) {}, 48},
		{"beginner", func(f *Factors) { f.ExperienceLevel = models.LevelBeginner }, 72},
		{"advanced", func(f *Factors) { f.ExperienceLevel = models.LevelAdvanced }, 36},

		{"rpe 10", func(f *Factors) { f.MeanRPE = 10 }, 72},
		{"rpe exactly 9", func(f *Factors) { f.MeanRPE = 9 }, 72},
		{"rpe 8.9", func(f *Factors) { f.MeanRPE = 8.9 }, 60},
		{"rpe exactly 8", func(f *Factors) { f.MeanRPE = 8 }, 60},
		{"rpe 7.9", func(f *Factors) { f.MeanRPE = 7.9 }, 48},
		{"rpe 5.1", func(f *Factors) { f.MeanRPE = 5.1 }, 48},
		{"rpe exactly 5", func(f *Factors) { f.MeanRPE = 5 }, 36},
		{"rpe 1", func(f *Factors) { f.MeanRPE = 1 }, 36},

		{"sets 25", func(f *Factors) { f.TotalSets = 25 }, 60},
		{"sets exactly 20", func(f *Factors) { f.TotalSets = 20 }, 60},
		{"sets 19", func(f *Factors) { f.TotalSets = 19 }, 54},
		{"sets exactly 15", func(f *Factors) { f.TotalSets = 15 }, 54},
		{"sets 14", func(f *Factors) { f.TotalSets = 14 }, 48},
		{"sets 6", func(f *Factors) { f.TotalSets = 6 }, 48},
		{"sets exactly 5", func(f *Factors) { f.TotalSets = 5 }, 42},
		{"sets 1", func(f *Factors) { f.TotalSets = 1 }, 42},

		{"very hard", func(f *Factors) { f.OverallIntensity = intensity(models.IntensityVeryHard) }, 72},
		{"hard", func(f *Factors) { f.OverallIntensity = intensity(models.IntensityHard) }, 60},
		{"moderate", func(f *Factors) { f.OverallIntensity = intensity(models.IntensityModerate) }, 48},
		{"light", func(f *Factors) { f.OverallIntensity = intensity(models.IntensityLight) }, 36},

		{"poor sleep", func(f *Factors) { f.SleepQuality = sleep(models.SleepPoor) }, 72},
		{"good sleep", func(f *Factors) { f.SleepQuality = sleep(models.SleepGood) }, 48},
		{"excellent sleep", func(f *Factors) { f.SleepQuality = sleep(models.SleepExcellent) }, 36},

		{"days 0", func(f *Factors) { f.DaysSinceLastTraining = 0 }, 60},
		{"days exactly 2", func(f *Factors) { f.DaysSinceLastTraining = 2 }, 60},
		{"days 3", func(f *Factors) { f.DaysSinceLastTraining = 3 }, 48},
		{"days 6", func(f *Factors) { f.DaysSinceLastTraining = 6 }, 48},
		{"days exactly 7", func(f *Factors) { f.DaysSinceLastTraining = 7 }, 24},
		{"days 30", func(f *Factors) { f.DaysSinceLastTraining = 30 }, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := baseline()
			tt.modify(&f)
			if got := CalculateRecoveryHours(f); got != tt.want {
				t.Errorf("CalculateRecoveryHours(%+v) = %d, want %d", f, got, tt.want)
			}
		})
	}
}

// TestCalculateRecoveryHoursNoAdjustment verifies an advanced lifter with
// neutral inputs gets exactly the base value.
func TestCalculateRecoveryHoursNoAdjustment(t *testing.T) {
	got := CalculateRecoveryHours(Factors{
		ExperienceLevel:       models.LevelAdvanced,
		MeanRPE:               7,
		TotalSets:             10,
		DaysSinceLastTraining: 4,
	})
	if got != 36 {
		t.Errorf("got %d, want 36", got)
	}
}

// TestCalculateRecoveryHoursClamp verifies results never leave [24, 168]
// when the raw sum would.
func TestCalculateRecoveryHoursClamp(t *testing.T) {
	low := CalculateRecoveryHours(Factors{
		ExperienceLevel:       models.LevelAdvanced,
		MeanRPE:               3,
		TotalSets:             2,
		OverallIntensity:      intensity(models.IntensityLight),
		SleepQuality:          sleep(models.SleepExcellent),
		DaysSinceLastTraining: 10,
	})
	if low != 24 {
		t.Errorf("low clamp = %d, want 24", low)
	}

	high := CalculateRecoveryHours(Factors{
		ExperienceLevel:       models.LevelBeginner,
		MeanRPE:               10,
		TotalSets:             25,
		OverallIntensity:      intensity(models.IntensityVeryHard),
		SleepQuality:          sleep(models.SleepPoor),
		DaysSinceLastTraining: 1,
	})
	if high != 168 {
		t.Errorf("high clamp = %d, want 168", high)
	}
}

// TestCalculateRecoveryHoursProperties sweeps the input space and checks the
// bounds and monotonicity properties hold everywhere.
func TestCalculateRecoveryHoursProperties(t *testing.T) {
	levels := []models.ExperienceLevel{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced}
	intensities := []*models.Intensity{nil,
		intensity(models.IntensityLight), intensity(models.IntensityModerate),
		intensity(models.IntensityHard), intensity(models.IntensityVeryHard)}
	sleeps := []*models.SleepQuality{nil,
		sleep(models.SleepPoor), sleep(models.SleepGood), sleep(models.SleepExcellent)}

	for _, level := range levels {
		for _, sets := range []int{1, 5, 6, 14, 15, 19, 20, 40} {
			for _, days := range []int{0, 2, 3, 6, 7, 14} {
				for _, in := range intensities {
					for _, sl := range sleeps {
						f := Factors{
							ExperienceLevel:       level,
							TotalSets:             sets,
							OverallIntensity:      in,
							SleepQuality:          sl,
							DaysSinceLastTraining: days,
						}

						prev := -1
						for _, rpe := range []float64{1, 5, 6, 8, 9, 10} {
							f.MeanRPE = rpe
							got := CalculateRecoveryHours(f)
							if got < MinRecoveryHours || got > MaxRecoveryHours {
								t.Fatalf("CalculateRecoveryHours(%+v) = %d, outside bounds", f, got)
							}
							if got < prev {
								t.Fatalf("hours decreased from %d to %d when rpe rose to %v (%+v)", prev, got, rpe, f)
							}
							prev = got
						}
					}
				}

				f := Factors{ExperienceLevel: level, MeanRPE: 7, TotalSets: sets, DaysSinceLastTraining: days}
				absent := CalculateRecoveryHours(f)
				f.SleepQuality = sleep(models.SleepGood)
				good := CalculateRecoveryHours(f)
				f.SleepQuality = sleep(models.SleepPoor)
				poor := CalculateRecoveryHours(f)
				f.SleepQuality = sleep(models.SleepExcellent)
				excellent := CalculateRecoveryHours(f)
				if good != absent {
					t.Errorf("good sleep (%d) differs from absent (%d)", good, absent)
				}
				if poor < good || good < excellent {
					t.Errorf("sleep ordering broken: poor=%d good=%d excellent=%d", poor, good, excellent)
				}
			}
		}
	}
}
