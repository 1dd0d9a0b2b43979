package training

import (
	"slices"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/recovery"
)

// Dashboard summarizes recent training for the home screen.
type Dashboard struct {
	WorkoutsThisWeek        int                       `json:"workoutsThisWeek"`
	WorkoutsThisMonth       int                       `json:"workoutsThisMonth"`
	TotalVolumeThisWeek     float64                   `json:"totalVolumeThisWeek"`
	TotalVolumeThisMonth    float64                   `json:"totalVolumeThisMonth"`
	CurrentStreak           int                       `json:"currentStreak"`
	NextRecommendedWorkouts []models.RecoveryEstimate `json:"nextRecommendedWorkouts"`
	CurrentWeekPlan         models.PlanType           `json:"currentWeekPlan"`
}

// DashboardStats computes the dashboard at now from the given sessions.
// Sessions may be in any order; the recovery section uses all of them.
func DashboardStats(workouts []models.WorkoutSession, now time.Time, level models.ExperienceLevel) Dashboard {
	weekStart := WeekStart(now)
	y, m, _ := now.Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())

	d := Dashboard{
		CurrentStreak:           Streak(workouts, now),
		NextRecommendedWorkouts: recovery.CurrentStatus(workouts, level),
		CurrentWeekPlan:         CurrentPlan(now),
	}
	for _, w := range workouts {
		if w.Date.After(now) {
			continue
		}
		vol := SessionVolume(w)
		if !w.Date.Before(weekStart) {
			d.WorkoutsThisWeek++
			d.TotalVolumeThisWeek += vol
		}
		if !w.Date.Before(monthStart) {
			d.WorkoutsThisMonth++
			d.TotalVolumeThisMonth += vol
		}
	}
	return d
}

// Streak counts consecutive calendar days with at least one session, ending
// today or yesterday (in now's location). A gap of a full day resets it.
func Streak(workouts []models.WorkoutSession, now time.Time) int {
	days := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		days[dayKey(w.Date.In(now.Location()))] = true
	}

	day := now
	if !days[dayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func dayKey(t time.Time) string { return t.Format("2006-01-02") }

// ProgressPoint is one session's result for a single exercise.
type ProgressPoint struct {
	Date        time.Time `json:"date"`
	MaxWeightKg float64   `json:"maxWeight"`
	TotalVolume float64   `json:"totalVolume"`
	AverageRPE  *float64  `json:"averageRpe,omitempty"`
}

// Progress is the history of one exercise across sessions.
type Progress struct {
	ExerciseName string             `json:"exerciseName"`
	MuscleGroup  models.MuscleGroup `json:"muscleGroup"`
	History      []ProgressPoint    `json:"history"`
}

// ExerciseProgress collects per-session stats for the named exercise
// (case-insensitive), oldest first.
func ExerciseProgress(workouts []models.WorkoutSession, name string) Progress {
	p := Progress{ExerciseName: name, History: []ProgressPoint{}}
	for _, w := range workouts {
		var point *ProgressPoint
		var rpeSum float64
		var rated int
		for _, ex := range w.Exercises {
			if !strings.EqualFold(ex.Name, name) {
				continue
			}
			if p.MuscleGroup == "" {
				p.MuscleGroup = ex.MuscleGroup
			}
			if point == nil {
				point = &ProgressPoint{Date: w.Date}
			}
			for _, s := range ex.Sets {
				point.MaxWeightKg = max(point.MaxWeightKg, s.WeightKg)
				if s.RPE != nil {
					rpeSum += *s.RPE
					rated++
				}
			}
			point.TotalVolume += Volume(ex.Sets)
		}
		if point == nil {
			continue
		}
		if rated > 0 {
			avg := rpeSum / float64(rated)
			point.AverageRPE = &avg
		}
		p.History = append(p.History, *point)
	}
	slices.SortStableFunc(p.History, func(a, b ProgressPoint) int {
		return a.Date.Compare(b.Date)
	})
	return p
}
