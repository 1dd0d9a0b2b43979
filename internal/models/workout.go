package models

import (
	"time"

	"github.com/google/uuid"
)

// MuscleGroup classifies which body region an exercise targets.
type MuscleGroup string

const (
	MuscleChest      MuscleGroup = "chest"
	MuscleBack       MuscleGroup = "back"
	MuscleShoulders  MuscleGroup = "shoulders"
	MuscleBiceps     MuscleGroup = "biceps"
	MuscleTriceps    MuscleGroup = "triceps"
	MuscleLegs       MuscleGroup = "legs"
	MuscleQuads      MuscleGroup = "quads"
	MuscleHamstrings MuscleGroup = "hamstrings"
	MuscleGlutes     MuscleGroup = "glutes"
	MuscleCalves     MuscleGroup = "calves"
	MuscleAbs        MuscleGroup = "abs"
	MuscleCore       MuscleGroup = "core"
	MuscleFullBody   MuscleGroup = "full-body"
)

// AllMuscleGroups lists every muscle group in display order.
var AllMuscleGroups = []MuscleGroup{
	MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps,
	MuscleLegs, MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves,
	MuscleAbs, MuscleCore, MuscleFullBody,
}

var muscleGroupLabels = map[MuscleGroup]string{
	MuscleChest:      "Chest",
	MuscleBack:       "Back",
	MuscleShoulders:  "Shoulders",
	MuscleBiceps:     "Biceps",
	MuscleTriceps:    "Triceps",
	MuscleLegs:       "Legs",
	MuscleQuads:      "Quadriceps",
	MuscleHamstrings: "Hamstrings",
	MuscleGlutes:     "Glutes",
	MuscleCalves:     "Calves",
	MuscleAbs:        "Abs",
	MuscleCore:       "Core",
	MuscleFullBody:   "Full Body",
}

// Valid reports whether g is one of the known muscle groups.
func (g MuscleGroup) Valid() bool {
	_, ok := muscleGroupLabels[g]
	return ok
}

// Label returns the human-readable name, or the raw tag for unknown groups.
func (g MuscleGroup) Label() string {
	if l, ok := muscleGroupLabels[g]; ok {
		return l
	}
	return string(g)
}

// PlanType identifies one of the two alternating weekly plans.
type PlanType string

const (
	PlanA PlanType = "A"
	PlanB PlanType = "B"
)

func (p PlanType) Valid() bool { return p == PlanA || p == PlanB }

// Next returns the plan that follows p in the weekly rotation.
func (p PlanType) Next() PlanType {
	if p == PlanA {
		return PlanB
	}
	return PlanA
}

// Intensity is the user's overall rating of a session.
type Intensity string

const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHard     Intensity = "hard"
	IntensityVeryHard Intensity = "very-hard"
)

func (i Intensity) Valid() bool {
	switch i {
	case IntensityLight, IntensityModerate, IntensityHard, IntensityVeryHard:
		return true
	}
	return false
}

// SleepQuality is the user's rating of the sleep before a session.
type SleepQuality string

const (
	SleepPoor      SleepQuality = "poor"
	SleepGood      SleepQuality = "good"
	SleepExcellent SleepQuality = "excellent"
)

func (s SleepQuality) Valid() bool {
	switch s {
	case SleepPoor, SleepGood, SleepExcellent:
		return true
	}
	return false
}

// ExperienceLevel is the user's training age bracket.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "beginner"
	LevelIntermediate ExperienceLevel = "intermediate"
	LevelAdvanced     ExperienceLevel = "advanced"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// ExerciseSet is a single performed set. RPE is nil when not recorded.
type ExerciseSet struct {
	SetNumber int      `json:"setNumber"`
	Reps      int      `json:"reps"`
	WeightKg  float64  `json:"weight"`
	RPE       *float64 `json:"rpe,omitempty"`
}

// CompletedExercise is one exercise within a logged session.
type CompletedExercise struct {
	ExerciseID  string        `json:"exerciseId,omitempty"`
	Name        string        `json:"exerciseName"`
	MuscleGroup MuscleGroup   `json:"muscleGroup"`
	Sets        []ExerciseSet `json:"sets"`
	Notes       string        `json:"notes,omitempty"`
}

// WorkoutSession is a logged training session.
type WorkoutSession struct {
	ID               uuid.UUID           `json:"id"`
	UserID           int                 `json:"userId"`
	PlanType         PlanType            `json:"planType"`
	Date             time.Time           `json:"date"`
	Exercises        []CompletedExercise `json:"exercises"`
	OverallIntensity *Intensity          `json:"overallIntensity,omitempty"`
	SleepQuality     *SleepQuality       `json:"sleepQuality,omitempty"`
	DurationMin      *int                `json:"duration,omitempty"`
	Notes            string              `json:"notes,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// HasMuscleGroup reports whether any exercise in the session targets g.
func (w WorkoutSession) HasMuscleGroup(g MuscleGroup) bool {
	for _, ex := range w.Exercises {
		if ex.MuscleGroup == g {
			return true
		}
	}
	return false
}
