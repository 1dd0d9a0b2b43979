package storage

import (
	"context"
	"fmt"
	"time"
)

// TrainingSummaryPeriod holds strength volume for one time bucket.
type TrainingSummaryPeriod struct {
	Period            string   `json:"period"`
	Sessions          int      `json:"sessions"`
	WorkingSets       int      `json:"working_sets"`
	TotalReps         int      `json:"total_reps"`
	TonnageKg         float64  `json:"tonnage_kg"`
	AvgSetsPerSession float64  `json:"avg_sets_per_session"`
	AvgRPE            *float64 `json:"avg_rpe,omitempty"`
}

// GetTrainingSummary returns per-period volume between start and end, newest
// period first. bucket is "1 week" or "1 month".
func (db *DB) GetTrainingSummary(ctx context.Context, userID int, start, end time.Time, bucket string) ([]TrainingSummaryPeriod, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.date)::date AS period,
		        COUNT(DISTINCT w.id)::int,
		        COUNT(s.set_number)::int,
		        COALESCE(SUM(s.reps), 0)::int,
		        COALESCE(SUM(s.weight_kg * s.reps), 0),
		        AVG(s.rpe)
		 FROM workout_sessions w
		 JOIN completed_exercises e ON e.session_id = w.id
		 JOIN exercise_sets s ON s.exercise_row_id = e.id
		 WHERE w.user_id = $2 AND w.date >= $3 AND w.date < $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying training summary: %w", err)
	}
	defer rows.Close()

	result := []TrainingSummaryPeriod{}
	for rows.Next() {
		var periodTime time.Time
		var p TrainingSummaryPeriod
		if err := rows.Scan(&periodTime, &p.Sessions, &p.WorkingSets, &p.TotalReps, &p.TonnageKg, &p.AvgRPE); err != nil {
			return nil, fmt.Errorf("scanning training summary: %w", err)
		}
		p.Period = periodTime.Format("2006-01-02")
		if p.Sessions > 0 {
			p.AvgSetsPerSession = float64(p.WorkingSets) / float64(p.Sessions)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week", "week":
		return "week"
	default:
		return "month"
	}
}
