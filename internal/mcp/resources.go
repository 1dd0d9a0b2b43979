package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"github.com/claude/ironlog/internal/training"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) dashboard(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uid := UserIDFromContext(ctx)
	now := h.now()

	since := training.WeekStart(now)
	if monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()); monthStart.Before(since) {
		since = monthStart
	}
	workouts, err := h.ds.RecentWorkouts(ctx, uid, since)
	if err != nil {
		return nil, err
	}

	// Recovery needs the latest sessions even when the month just started.
	recent, err := h.ds.QueryWorkouts(ctx, uid, storage.WorkoutFilter{Limit: defaultWorkoutLimit})
	if err != nil {
		h.log.Warn("dashboard: recent workouts failed", "error", err)
	}

	seen := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		seen[w.ID.String()] = true
	}
	for _, w := range recent {
		if !seen[w.ID.String()] {
			workouts = append(workouts, w)
		}
	}

	return jsonResource(req.Params.URI, training.DashboardStats(workouts, now, h.levelFor(ctx, uid)))
}

func (h *handlers) exerciseCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	byGroup := make(map[models.MuscleGroup][]string)
	for _, ex := range h.catalog.Exercises {
		byGroup[ex.MuscleGroup] = append(byGroup[ex.MuscleGroup], ex.Name)
	}
	return jsonResource(req.Params.URI, map[string]any{
		"exercises":     h.catalog.Exercises,
		"byMuscleGroup": byGroup,
	})
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
