package models

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestMuscleGroupValid verifies every listed group is valid and has a label.
func TestMuscleGroupValid(t *testing.T) {
	if len(AllMuscleGroups) != 13 {
		t.Fatalf("AllMuscleGroups = %d entries, want 13", len(AllMuscleGroups))
	}
	for _, g := range AllMuscleGroups {
		if !g.Valid() {
			t.Errorf("%q.Valid() = false", g)
		}
		if g.Label() == "" {
			t.Errorf("%q.Label() is empty", g)
		}
	}
	if MuscleGroup("forearms").Valid() {
		t.Error("forearms should not be a valid muscle group")
	}
}

func TestMuscleGroupLabel(t *testing.T) {
	tests := map[MuscleGroup]string{
		MuscleQuads:            "Quadriceps",
		MuscleFullBody:         "Full Body",
		MuscleChest:            "Chest",
		MuscleGroup("unknown"): "unknown",
	}
	for g, want := range tests {
		if got := g.Label(); got != want {
			t.Errorf("%q.Label() = %q, want %q", g, got, want)
		}
	}
}

func TestPlanTypeNext(t *testing.T) {
	if PlanA.Next() != PlanB || PlanB.Next() != PlanA {
		t.Errorf("rotation broken: A→%s, B→%s", PlanA.Next(), PlanB.Next())
	}
	if PlanType("C").Valid() {
		t.Error("plan C should be invalid")
	}
}

func TestEnumValidity(t *testing.T) {
	if !IntensityVeryHard.Valid() || Intensity("extreme").Valid() {
		t.Error("intensity validity wrong")
	}
	if !SleepExcellent.Valid() || SleepQuality("bad").Valid() {
		t.Error("sleep quality validity wrong")
	}
	if !LevelAdvanced.Valid() || ExperienceLevel("elite").Valid() {
		t.Error("experience level validity wrong")
	}
}

// TestWorkoutJSONOmitsAbsentOptionals verifies nil optional tags do not appear
// on the wire, so clients can tell "not recorded" from a value.
func TestWorkoutJSONOmitsAbsentOptionals(t *testing.T) {
	w := WorkoutSession{
		PlanType: PlanA,
		Exercises: []CompletedExercise{{
			Name:        "Bench Press",
			MuscleGroup: MuscleChest,
			Sets:        []ExerciseSet{{SetNumber: 1, Reps: 8, WeightKg: 80}},
		}},
	}
	data, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{"overallIntensity", "sleepQuality", "duration", `"rpe"`} {
		if strings.Contains(s, key) {
			t.Errorf("JSON contains %s: %s", key, s)
		}
	}
	if !strings.Contains(s, `"exerciseName":"Bench Press"`) {
		t.Errorf("JSON missing exerciseName: %s", s)
	}
}

func TestHasMuscleGroup(t *testing.T) {
	w := WorkoutSession{Exercises: []CompletedExercise{{MuscleGroup: MuscleBack}}}
	if !w.HasMuscleGroup(MuscleBack) {
		t.Error("expected back")
	}
	if w.HasMuscleGroup(MuscleChest) {
		t.Error("unexpected chest")
	}
}
