package catalog

import (
	"testing"

	"github.com/claude/ironlog/internal/models"
)

// TestDefaultCatalog verifies the embedded presets parse and have the
// expected shape: a 42-entry library and six twelve-exercise days per plan.
func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if len(c.Exercises) != 42 {
		t.Errorf("library = %d exercises, want 42", len(c.Exercises))
	}
	for _, p := range []models.PlanType{models.PlanA, models.PlanB} {
		days := c.Days(p)
		if len(days) != 6 {
			t.Errorf("plan %s: %d days, want 6", p, len(days))
		}
		for _, d := range days {
			if len(d.Exercises) != 12 {
				t.Errorf("plan %s %s: %d exercises, want 12", p, d.Day, len(d.Exercises))
			}
		}
	}
	if days := c.Days(models.PlanA); len(days) > 0 && days[0].Day != "Monday" {
		t.Errorf("first day = %q, want Monday", days[0].Day)
	}
}

func TestPresetPlan(t *testing.T) {
	plan := Default().PresetPlan(models.PlanB)
	if plan.PlanType != models.PlanB {
		t.Errorf("plan type = %s", plan.PlanType)
	}
	if len(plan.Exercises) != 72 {
		t.Fatalf("exercises = %d, want 72", len(plan.Exercises))
	}
	first := plan.Exercises[0]
	if first.ID != "mon-b-0" || first.Name != "Machine Chest Press (neutral grip)" {
		t.Errorf("first exercise = %+v", first)
	}
	if first.TargetSets != 4 || first.TargetReps != "8-12" {
		t.Errorf("first targets = %d x %q", first.TargetSets, first.TargetReps)
	}
	if last := plan.Exercises[71]; last.ID != "sat-b-11" || last.MuscleGroup != models.MuscleCore {
		t.Errorf("last exercise = %+v", last)
	}
}

func TestExercisesFor(t *testing.T) {
	calves := Default().ExercisesFor(models.MuscleCalves)
	if len(calves) != 1 || calves[0].Name != "Calf Raises" {
		t.Errorf("calves = %+v", calves)
	}
	if full := Default().ExercisesFor(models.MuscleFullBody); len(full) != 0 {
		t.Errorf("full-body library entries = %d, want 0", len(full))
	}
}

// TestParseRejectsUnknownMuscleGroup verifies a bad tag fails the load
// instead of leaking into plans.
func TestParseRejectsUnknownMuscleGroup(t *testing.T) {
	data := []byte(`
exercises:
  - name: Wrist Curl
    muscle_group: forearms
    category: isolation
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unknown muscle group")
	}

	data = []byte(`
plans:
  - day: Monday
    focus: Test
    plan_type: C
    exercises: []
`)
	if _, err := Parse(data); err == nil {
		t.Fatal("expected error for unknown plan type")
	}
}
