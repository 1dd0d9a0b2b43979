package training

import (
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/go-cmp/cmp"
)

func date(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func rpe(v float64) *float64 { return &v }

func session(at time.Time, exercises ...models.CompletedExercise) models.WorkoutSession {
	return models.WorkoutSession{Date: at, PlanType: models.PlanA, Exercises: exercises}
}

func bench(sets ...models.ExerciseSet) models.CompletedExercise {
	return models.CompletedExercise{Name: "Bench Press", MuscleGroup: models.MuscleChest, Sets: sets}
}

// TestCurrentPlan verifies odd ISO weeks map to A and even weeks to B,
// including across the year boundary.
func TestCurrentPlan(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want models.PlanType
	}{
		{"week 1 of 2025", date(2025, 1, 1, 9), models.PlanA},
		{"week 2 of 2025", date(2025, 1, 6, 9), models.PlanB},
		{"monday belonging to 2025 week 1", date(2024, 12, 30, 9), models.PlanA},
		{"week 52 of 2024", date(2024, 12, 23, 9), models.PlanB},
		{"week 11 of 2025", date(2025, 3, 12, 9), models.PlanA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentPlan(tt.t); got != tt.want {
				t.Errorf("CurrentPlan(%v) = %s, want %s", tt.t, got, tt.want)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	want := date(2025, 3, 3, 0)
	for _, in := range []time.Time{date(2025, 3, 3, 0), date(2025, 3, 5, 15), date(2025, 3, 9, 23)} {
		if got := WeekStart(in); !got.Equal(want) {
			t.Errorf("WeekStart(%v) = %v, want %v", in, got, want)
		}
	}
	if got := NextWeekStart(date(2025, 3, 9, 23)); !got.Equal(date(2025, 3, 10, 0)) {
		t.Errorf("NextWeekStart = %v, want 2025-03-10", got)
	}
}

func TestVolumeAndOneRepMax(t *testing.T) {
	sets := []models.ExerciseSet{{Reps: 5, WeightKg: 100}, {Reps: 8, WeightKg: 80}, {Reps: 10, WeightKg: 0}}
	if got := Volume(sets); got != 1140 {
		t.Errorf("Volume = %v, want 1140", got)
	}
	if got := SessionVolume(session(date(2025, 1, 1, 0), bench(sets...), bench(sets[0]))); got != 1640 {
		t.Errorf("SessionVolume = %v, want 1640", got)
	}

	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{100, 1, 100},
		{100, 5, 116.7},
		{80, 10, 106.7},
		{60, 3, 66},
	}
	for _, tt := range tests {
		if got := EstimateOneRepMax(tt.weight, tt.reps); got != tt.want {
			t.Errorf("EstimateOneRepMax(%v, %d) = %v, want %v", tt.weight, tt.reps, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{0: "0m", 45: "45m", 60: "1h", 90: "1h 30m", 125: "2h 5m"}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

// TestStreak verifies a streak may end yesterday and breaks on a missed day.
func TestStreak(t *testing.T) {
	now := date(2025, 3, 10, 12)
	tests := []struct {
		name string
		days []time.Time
		want int
	}{
		{"none", nil, 0},
		{"today only", []time.Time{date(2025, 3, 10, 7)}, 1},
		{"ending today", []time.Time{date(2025, 3, 10, 7), date(2025, 3, 9, 7), date(2025, 3, 8, 7), date(2025, 3, 6, 7)}, 3},
		{"ending yesterday", []time.Time{date(2025, 3, 9, 7), date(2025, 3, 8, 20)}, 2},
		{"two sessions same day", []time.Time{date(2025, 3, 10, 7), date(2025, 3, 10, 18)}, 1},
		{"stale", []time.Time{date(2025, 3, 7, 7), date(2025, 3, 6, 7)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ws []models.WorkoutSession
			for _, d := range tt.days {
				ws = append(ws, session(d))
			}
			if got := Streak(ws, now); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestDashboardStats verifies week and month windows and that recovery
// estimates come from the engine.
func TestDashboardStats(t *testing.T) {
	now := date(2025, 3, 12, 18)
	workouts := []models.WorkoutSession{
		session(date(2025, 3, 11, 8), bench(models.ExerciseSet{Reps: 5, WeightKg: 100, RPE: rpe(8)})),
		session(date(2025, 3, 5, 8), bench(models.ExerciseSet{Reps: 10, WeightKg: 60})),
		session(date(2025, 2, 27, 8), bench(models.ExerciseSet{Reps: 10, WeightKg: 50})),
	}

	d := DashboardStats(workouts, now, models.LevelIntermediate)

	if d.WorkoutsThisWeek != 1 || d.TotalVolumeThisWeek != 500 {
		t.Errorf("week = %d / %v, want 1 / 500", d.WorkoutsThisWeek, d.TotalVolumeThisWeek)
	}
	if d.WorkoutsThisMonth != 2 || d.TotalVolumeThisMonth != 1100 {
		t.Errorf("month = %d / %v, want 2 / 1100", d.WorkoutsThisMonth, d.TotalVolumeThisMonth)
	}
	if d.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1", d.CurrentStreak)
	}
	if d.CurrentWeekPlan != models.PlanA {
		t.Errorf("plan = %s, want A", d.CurrentWeekPlan)
	}
	if len(d.NextRecommendedWorkouts) != 1 || d.NextRecommendedWorkouts[0].MuscleGroup != models.MuscleChest {
		t.Fatalf("recovery = %+v, want one chest estimate", d.NextRecommendedWorkouts)
	}
	// 48 +12 rpe -6 sets, 6 days since 3/5 = 54
	if h := d.NextRecommendedWorkouts[0].RecoveryHours; h != 54 {
		t.Errorf("chest recovery = %d, want 54", h)
	}
}

func TestExerciseProgress(t *testing.T) {
	workouts := []models.WorkoutSession{
		session(date(2025, 3, 11, 8), bench(
			models.ExerciseSet{Reps: 5, WeightKg: 100, RPE: rpe(8)},
			models.ExerciseSet{Reps: 5, WeightKg: 105, RPE: rpe(9)},
		)),
		session(date(2025, 3, 4, 8), models.CompletedExercise{
			Name: "bench press", MuscleGroup: models.MuscleChest,
			Sets: []models.ExerciseSet{{Reps: 8, WeightKg: 90}},
		}),
		session(date(2025, 3, 6, 8), models.CompletedExercise{
			Name: "Squat", MuscleGroup: models.MuscleLegs,
			Sets: []models.ExerciseSet{{Reps: 5, WeightKg: 140}},
		}),
	}

	got := ExerciseProgress(workouts, "Bench Press")
	want := Progress{
		ExerciseName: "Bench Press",
		MuscleGroup:  models.MuscleChest,
		History: []ProgressPoint{
			{Date: date(2025, 3, 4, 8), MaxWeightKg: 90, TotalVolume: 720},
			{Date: date(2025, 3, 11, 8), MaxWeightKg: 105, TotalVolume: 1025, AverageRPE: rpe(8.5)},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ExerciseProgress mismatch (-want +got):\n%s", diff)
	}

	if empty := ExerciseProgress(workouts, "Deadlift"); len(empty.History) != 0 {
		t.Errorf("unexpected history for deadlift: %+v", empty.History)
	}
}
