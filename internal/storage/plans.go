package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/ironlog/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetPlan returns the user's plan of the given type, or nil if none is saved.
func (db *DB) GetPlan(ctx context.Context, userID int, planType models.PlanType) (*models.WorkoutPlan, error) {
	plan := models.WorkoutPlan{UserID: userID, PlanType: planType}
	var raw []byte
	err := db.Pool.QueryRow(ctx,
		`SELECT exercises, updated_at FROM workout_plans WHERE user_id = $1 AND plan_type = $2`,
		userID, string(planType),
	).Scan(&raw, &plan.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan %s: %w", planType, err)
	}
	if err := json.Unmarshal(raw, &plan.Exercises); err != nil {
		return nil, fmt.Errorf("decoding plan %s exercises: %w", planType, err)
	}
	return &plan, nil
}

// UpsertPlan replaces the user's plan of plan.PlanType and sets UpdatedAt.
func (db *DB) UpsertPlan(ctx context.Context, plan *models.WorkoutPlan) error {
	exercises := plan.Exercises
	if exercises == nil {
		exercises = []models.PlanExercise{}
	}
	raw, err := json.Marshal(exercises)
	if err != nil {
		return fmt.Errorf("encoding plan exercises: %w", err)
	}
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO workout_plans (user_id, plan_type, exercises)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, plan_type) DO UPDATE
			SET exercises = EXCLUDED.exercises, updated_at = NOW()
		RETURNING updated_at`,
		plan.UserID, string(plan.PlanType), raw,
	).Scan(&plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting plan %s: %w", plan.PlanType, err)
	}
	return nil
}
