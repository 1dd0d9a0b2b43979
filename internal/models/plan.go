package models

import "time"

// PlanExercise is a planned exercise with its targets. TargetReps is free text
// such as "8-12" or "30-60s".
type PlanExercise struct {
	ID          string      `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string      `json:"name" yaml:"name"`
	MuscleGroup MuscleGroup `json:"muscleGroup" yaml:"muscle_group"`
	TargetSets  int         `json:"targetSets,omitempty" yaml:"target_sets,omitempty"`
	TargetReps  string      `json:"targetReps,omitempty" yaml:"target_reps,omitempty"`
	Notes       string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// WorkoutPlan is a user's exercise template for one plan type.
type WorkoutPlan struct {
	UserID    int            `json:"userId"`
	PlanType  PlanType       `json:"planType"`
	Exercises []PlanExercise `json:"exercises"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// User is an account holder. PasswordHash is never serialized.
type User struct {
	ID              int             `json:"id"`
	Email           string          `json:"email"`
	Name            string          `json:"name,omitempty"`
	PasswordHash    string          `json:"-"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	CreatedAt       time.Time       `json:"createdAt"`
}
