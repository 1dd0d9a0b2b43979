package models

import (
	"fmt"
	"strings"
	"time"
)

// DateOnlyLayout is accepted wherever a full RFC 3339 timestamp is.
const DateOnlyLayout = "2006-01-02"

// ParseWorkoutDate parses an RFC 3339 timestamp, falling back to a bare date
// at UTC midnight.
func ParseWorkoutDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err2 := time.Parse(DateOnlyLayout, s)
	if err2 == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q: %w", s, err)
}

// FieldError is one failed check on an input field. Path uses dotted JSON
// names with indices, e.g. "exercises.0.sets.2.rpe".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationErrors collects every failed check on an input.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Path + ": " + e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationErrors) add(path, format string, args ...any) {
	*v = append(*v, FieldError{Path: path, Message: fmt.Sprintf(format, args...)})
}

// SetInput is a set as submitted by a client.
type SetInput struct {
	Reps   *int     `json:"reps"`
	Weight *float64 `json:"weight"`
	RPE    *float64 `json:"rpe,omitempty"`
}

// ExerciseInput is an exercise as submitted by a client.
type ExerciseInput struct {
	ExerciseID   string     `json:"exerciseId,omitempty"`
	ExerciseName string     `json:"exerciseName"`
	MuscleGroup  string     `json:"muscleGroup"`
	Sets         []SetInput `json:"sets"`
	Notes        string     `json:"notes,omitempty"`
}

// WorkoutInput is the body of a workout submission and the shape of an
// import file entry.
type WorkoutInput struct {
	PlanType         string          `json:"planType"`
	Date             string          `json:"date"`
	Exercises        []ExerciseInput `json:"exercises"`
	OverallIntensity *string         `json:"overallIntensity,omitempty"`
	SleepQuality     *string         `json:"sleepQuality,omitempty"`
	Duration         *int            `json:"duration,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// Session validates the input and converts it into a session owned by
// userID. Set numbers are assigned 1..n in submission order, and exercises
// without an ID get "<unix millis>-<index>" based on now.
func (in WorkoutInput) Session(userID int, now time.Time) (WorkoutSession, error) {
	var errs ValidationErrors
	w := WorkoutSession{UserID: userID, Notes: in.Notes, DurationMin: in.Duration}

	w.PlanType = PlanType(in.PlanType)
	if !w.PlanType.Valid() {
		errs.add("planType", "must be A or B")
	}

	if in.Date == "" {
		errs.add("date", "is required")
	} else if d, err := ParseWorkoutDate(in.Date); err != nil {
		errs.add("date", "must be an RFC 3339 timestamp or YYYY-MM-DD")
	} else {
		w.Date = d
	}

	if len(in.Exercises) == 0 {
		errs.add("exercises", "must contain at least 1 exercise")
	}
	for i, ex := range in.Exercises {
		w.Exercises = append(w.Exercises, ex.completed(fmt.Sprintf("exercises.%d", i), i, now, &errs))
	}

	if in.OverallIntensity != nil {
		v := Intensity(*in.OverallIntensity)
		if !v.Valid() {
			errs.add("overallIntensity", "must be one of light, moderate, hard, very-hard")
		}
		w.OverallIntensity = &v
	}
	if in.SleepQuality != nil {
		v := SleepQuality(*in.SleepQuality)
		if !v.Valid() {
			errs.add("sleepQuality", "must be one of poor, good, excellent")
		}
		w.SleepQuality = &v
	}
	if in.Duration != nil && *in.Duration < 0 {
		errs.add("duration", "must not be negative")
	}

	if len(errs) > 0 {
		return WorkoutSession{}, errs
	}
	return w, nil
}

func (ex ExerciseInput) completed(path string, index int, now time.Time, errs *ValidationErrors) CompletedExercise {
	out := CompletedExercise{
		ExerciseID:  ex.ExerciseID,
		Name:        strings.TrimSpace(ex.ExerciseName),
		MuscleGroup: MuscleGroup(ex.MuscleGroup),
		Notes:       ex.Notes,
	}
	if out.ExerciseID == "" {
		out.ExerciseID = fmt.Sprintf("%d-%d", now.UnixMilli(), index)
	}
	if out.Name == "" {
		errs.add(path+".exerciseName", "is required")
	}
	if !out.MuscleGroup.Valid() {
		errs.add(path+".muscleGroup", "unknown muscle group %q", ex.MuscleGroup)
	}
	if len(ex.Sets) == 0 {
		errs.add(path+".sets", "must contain at least 1 set")
	}

	for j, s := range ex.Sets {
		setPath := fmt.Sprintf("%s.sets.%d", path, j)
		set := ExerciseSet{SetNumber: j + 1, RPE: s.RPE}
		switch {
		case s.Reps == nil:
			errs.add(setPath+".reps", "is required")
		case *s.Reps < 1:
			errs.add(setPath+".reps", "must be at least 1")
		default:
			set.Reps = *s.Reps
		}
		switch {
		case s.Weight == nil:
			errs.add(setPath+".weight", "is required")
		case *s.Weight < 0:
			errs.add(setPath+".weight", "must not be negative")
		default:
			set.WeightKg = *s.Weight
		}
		if s.RPE != nil && (*s.RPE < 1 || *s.RPE > 10) {
			errs.add(setPath+".rpe", "must be between 1 and 10")
		}
		out.Sets = append(out.Sets, set)
	}
	return out
}

// ValidatePlan checks a plan submission.
func ValidatePlan(p WorkoutPlan) error {
	var errs ValidationErrors
	if !p.PlanType.Valid() {
		errs.add("planType", "must be A or B")
	}
	for i, ex := range p.Exercises {
		path := fmt.Sprintf("exercises.%d", i)
		if strings.TrimSpace(ex.Name) == "" {
			errs.add(path+".name", "is required")
		}
		if !ex.MuscleGroup.Valid() {
			errs.add(path+".muscleGroup", "unknown muscle group %q", ex.MuscleGroup)
		}
		if ex.TargetSets < 0 {
			errs.add(path+".targetSets", "must not be negative")
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
