// Package catalog provides the built-in exercise library and the preset
// six-day A/B split.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/claude/ironlog/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// Category distinguishes multi-joint from single-joint exercises.
type Category string

const (
	CategoryCompound  Category = "compound"
	CategoryIsolation Category = "isolation"
)

// PresetExercise is an entry in the exercise library.
type PresetExercise struct {
	Name        string             `json:"name" yaml:"name"`
	MuscleGroup models.MuscleGroup `json:"muscleGroup" yaml:"muscle_group"`
	Category    Category           `json:"category" yaml:"category"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
}

// DayPlan is one training day of a preset plan.
type DayPlan struct {
	Day       string                `json:"day" yaml:"day"`
	Focus     string                `json:"focus" yaml:"focus"`
	PlanType  models.PlanType       `json:"planType" yaml:"plan_type"`
	Exercises []models.PlanExercise `json:"exercises" yaml:"exercises"`
}

// Catalog is the parsed preset data.
type Catalog struct {
	Exercises []PresetExercise `yaml:"exercises"`
	Plans     []DayPlan        `yaml:"plans"`
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for _, ex := range c.Exercises {
		if !ex.MuscleGroup.Valid() {
			return nil, fmt.Errorf("exercise %q: unknown muscle group %q", ex.Name, ex.MuscleGroup)
		}
	}
	for _, d := range c.Plans {
		if !d.PlanType.Valid() {
			return nil, fmt.Errorf("%s plan: unknown plan type %q", d.Day, d.PlanType)
		}
		for _, ex := range d.Exercises {
			if !ex.MuscleGroup.Valid() {
				return nil, fmt.Errorf("%s %s: exercise %q: unknown muscle group %q", d.Day, d.PlanType, ex.Name, ex.MuscleGroup)
			}
		}
	}
	return c, nil
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Default returns the embedded catalog. It panics if the embedded data is
// malformed, which is a build defect rather than a runtime condition.
func Default() *Catalog {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(presetsYAML)
	})
	if loadErr != nil {
		panic(loadErr)
	}
	return loaded
}

// ExercisesFor returns the library exercises targeting g.
func (c *Catalog) ExercisesFor(g models.MuscleGroup) []PresetExercise {
	var out []PresetExercise
	for _, ex := range c.Exercises {
		if ex.MuscleGroup == g {
			out = append(out, ex)
		}
	}
	return out
}

// Days returns the day plans of the given plan type in weekday order.
func (c *Catalog) Days(p models.PlanType) []DayPlan {
	var out []DayPlan
	for _, d := range c.Plans {
		if d.PlanType == p {
			out = append(out, d)
		}
	}
	return out
}

// PresetPlan flattens every day of plan type p into a single plan. Exercise
// ids are "<day prefix>-<plan>-<index>", e.g. "mon-a-0".
func (c *Catalog) PresetPlan(p models.PlanType) models.WorkoutPlan {
	plan := models.WorkoutPlan{PlanType: p, Exercises: []models.PlanExercise{}}
	for _, d := range c.Days(p) {
		prefix := strings.ToLower(d.Day)
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		for i, ex := range d.Exercises {
			ex.ID = fmt.Sprintf("%s-%s-%d", prefix, strings.ToLower(string(p)), i)
			plan.Exercises = append(plan.Exercises, ex)
		}
	}
	return plan
}
