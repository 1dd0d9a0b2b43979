package mcp

import (
	"context"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	QueryWorkouts(ctx context.Context, userID int, f storage.WorkoutFilter) ([]models.WorkoutSession, error)
	RecentWorkouts(ctx context.Context, userID int, since time.Time) ([]models.WorkoutSession, error)
	GetPlan(ctx context.Context, userID int, planType models.PlanType) (*models.WorkoutPlan, error)
	GetTrainingSummary(ctx context.Context, userID int, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
