package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironlog/internal/models"
)

// DataStats holds aggregate statistics about a user's logged training.
type DataStats struct {
	TotalWorkouts   int64             `json:"total_workouts"`
	TotalExercises  int64             `json:"total_exercises"`
	TotalSets       int64             `json:"total_sets"`
	TotalVolumeKg   float64           `json:"total_volume_kg"`
	EarliestWorkout *time.Time        `json:"earliest_workout"`
	LatestWorkout   *time.Time        `json:"latest_workout"`
	WorkoutsByPlan  []PlanTypeStat    `json:"workouts_by_plan"`
	ByMuscleGroup   []MuscleGroupStat `json:"by_muscle_group"`
}

// PlanTypeStat counts sessions logged under one plan.
type PlanTypeStat struct {
	PlanType models.PlanType `json:"plan_type"`
	Count    int64           `json:"count"`
}

// MuscleGroupStat holds set count and tonnage for one muscle group.
type MuscleGroupStat struct {
	MuscleGroup models.MuscleGroup `json:"muscle_group"`
	Sets        int64              `json:"sets"`
	VolumeKg    float64            `json:"volume_kg"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{WorkoutsByPlan: []PlanTypeStat{}, ByMuscleGroup: []MuscleGroupStat{}}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM workout_sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.EarliestWorkout, &stats.LatestWorkout)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT e.id), COUNT(s.set_number), COALESCE(SUM(s.weight_kg * s.reps), 0)
		 FROM completed_exercises e
		 JOIN workout_sessions w ON w.id = e.session_id
		 LEFT JOIN exercise_sets s ON s.exercise_row_id = e.id
		 WHERE w.user_id = $1`, userID,
	).Scan(&stats.TotalExercises, &stats.TotalSets, &stats.TotalVolumeKg)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	planRows, err := db.Pool.Query(ctx,
		`SELECT plan_type, COUNT(*)
		 FROM workout_sessions
		 WHERE user_id = $1
		 GROUP BY plan_type
		 ORDER BY plan_type`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by plan: %w", err)
	}
	defer planRows.Close()

	for planRows.Next() {
		var s PlanTypeStat
		var planType string
		if err := planRows.Scan(&planType, &s.Count); err != nil {
			return nil, fmt.Errorf("scanning plan stat: %w", err)
		}
		s.PlanType = models.PlanType(planType)
		stats.WorkoutsByPlan = append(stats.WorkoutsByPlan, s)
	}
	if err := planRows.Err(); err != nil {
		return nil, err
	}

	groups, err := db.muscleGroupStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.ByMuscleGroup = groups
	return stats, nil
}

func (db *DB) muscleGroupStats(ctx context.Context, userID int) ([]MuscleGroupStat, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT e.muscle_group, COUNT(s.set_number), COALESCE(SUM(s.weight_kg * s.reps), 0)
		 FROM completed_exercises e
		 JOIN workout_sessions w ON w.id = e.session_id
		 JOIN exercise_sets s ON s.exercise_row_id = e.id
		 WHERE w.user_id = $1
		 GROUP BY e.muscle_group
		 ORDER BY COUNT(s.set_number) DESC, e.muscle_group`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying muscle group stats: %w", err)
	}
	defer rows.Close()

	result := []MuscleGroupStat{}
	for rows.Next() {
		var s MuscleGroupStat
		var group string
		if err := rows.Scan(&group, &s.Sets, &s.VolumeKg); err != nil {
			return nil, fmt.Errorf("scanning muscle group stat: %w", err)
		}
		s.MuscleGroup = models.MuscleGroup(group)
		result = append(result, s)
	}
	return result, rows.Err()
}
