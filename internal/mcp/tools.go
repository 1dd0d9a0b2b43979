package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/recovery"
	"github.com/claude/ironlog/internal/storage"
	"github.com/claude/ironlog/internal/training"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultWorkoutLimit = 20
	progressLimit       = 500
	recoveryWindowDays  = 14
)

// defaultTimeRange returns start/end defaulting to the given number of days
// ending now.
func defaultTimeRange(startStr, endStr string, days int) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = models.ParseWorkoutDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = models.ParseWorkoutDate(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -days)
	}

	return start, end, nil
}

// --- Tool definitions ---

var toolGetRecoveryStatus = mcp.NewTool("get_recovery_status",
	mcp.WithDescription("Current recovery status per muscle group, derived from the most recent session that trained each group. Returns recovery hours, recommended next training time, readiness, and the factors behind each estimate."),
	mcp.WithNumber("days", mcp.Description("How many days of history to consider. Defaults to 14.")),
	mcp.WithString("muscle_group", mcp.Description("Only report this muscle group (e.g. chest, back, legs)")),
)

var toolEstimateRecovery = mcp.NewTool("estimate_recovery_hours",
	mcp.WithDescription("Evaluate the recovery model for hypothetical inputs without logging anything. Returns the clamped recovery hours (24-168)."),
	mcp.WithNumber("total_sets", mcp.Required(), mcp.Description("Total sets performed for the muscle group")),
	mcp.WithNumber("rpe", mcp.Description("Mean RPE across the sets (1-10). Defaults to 7."), mcp.Min(1), mcp.Max(10)),
	mcp.WithString("experience_level", mcp.Description("Defaults to the user's level."), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithString("intensity", mcp.Description("Overall session intensity"), mcp.Enum("light", "moderate", "hard", "very-hard")),
	mcp.WithString("sleep_quality", mcp.Description("Sleep quality before the session"), mcp.Enum("poor", "good", "excellent")),
	mcp.WithNumber("days_since_last_training", mcp.Description("Whole days since the group was last trained. Defaults to 7.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workout sessions, newest first, with exercises and sets."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("plan_type", mcp.Description("Only sessions of this plan"), mcp.Enum("A", "B")),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to 20.")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Session-by-session progression for one exercise: max weight, volume, average RPE, plus personal record and estimated 1RM."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (case-insensitive, e.g. 'bench press')")),
)

var toolGetCurrentPlan = mcp.NewTool("get_current_plan",
	mcp.WithDescription("The plan (A or B) active this ISO week and its exercises. Falls back to the built-in preset when the user has not saved one."),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Monthly/weekly aggregated strength training volume. Returns session counts, working sets, reps, tonnage, and average RPE per period."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 6 months ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("bucket", mcp.Description("Aggregation period. Defaults to '1 month'."), mcp.Enum("1 week", "1 month")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Totals for the user's training log: sessions, exercises, sets, volume, date range, and breakdowns by plan and muscle group."),
)

// --- Tool handlers ---

// levelFor returns the user's experience level, or intermediate when the user
// cannot be loaded.
func (h *handlers) levelFor(ctx context.Context, uid int) models.ExperienceLevel {
	u, err := h.ds.GetUser(ctx, uid)
	if err != nil {
		h.log.Warn("mcp: loading user failed, assuming intermediate", "user_id", uid, "error", err)
		return models.LevelIntermediate
	}
	if !u.ExperienceLevel.Valid() {
		return models.LevelIntermediate
	}
	return u.ExperienceLevel
}

func (h *handlers) getRecoveryStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)
	days := req.GetInt("days", recoveryWindowDays)
	if days <= 0 {
		return mcp.NewToolResultError("days must be positive"), nil
	}
	group := models.MuscleGroup(req.GetString("muscle_group", ""))
	if group != "" && !group.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown muscle group %q", group)), nil
	}

	now := h.now()
	workouts, err := h.ds.RecentWorkouts(ctx, uid, now.AddDate(0, 0, -days))
	if err != nil {
		h.log.Error("mcp get_recovery_status", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	statuses := recovery.StatusAt(recovery.CurrentStatus(workouts, h.levelFor(ctx, uid)), now)
	if group != "" {
		filtered := statuses[:0]
		for _, st := range statuses {
			if st.MuscleGroup == group {
				filtered = append(filtered, st)
			}
		}
		statuses = filtered
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"asOf":     now,
		"recovery": statuses,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) estimateRecovery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sets, err := req.RequireInt("total_sets")
	if err != nil {
		return mcp.NewToolResultError("total_sets parameter is required"), nil
	}
	if sets < 0 {
		return mcp.NewToolResultError("total_sets must not be negative"), nil
	}

	f := recovery.Factors{
		MeanRPE:               req.GetFloat("rpe", recovery.DefaultRPE),
		TotalSets:             sets,
		DaysSinceLastTraining: req.GetInt("days_since_last_training", recovery.DefaultDaysSinceTraining),
	}

	if lvl := req.GetString("experience_level", ""); lvl != "" {
		f.ExperienceLevel = models.ExperienceLevel(lvl)
		if !f.ExperienceLevel.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown experience level %q", lvl)), nil
		}
	} else {
		f.ExperienceLevel = h.levelFor(ctx, UserIDFromContext(ctx))
	}
	if v := req.GetString("intensity", ""); v != "" {
		i := models.Intensity(v)
		if !i.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown intensity %q", v)), nil
		}
		f.OverallIntensity = &i
	}
	if v := req.GetString("sleep_quality", ""); v != "" {
		q := models.SleepQuality(v)
		if !q.Valid() {
			return mcp.NewToolResultError(fmt.Sprintf("unknown sleep quality %q", v)), nil
		}
		f.SleepQuality = &q
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"recoveryHours":         recovery.CalculateRecoveryHours(f),
		"experienceLevel":       f.ExperienceLevel,
		"rpe":                   f.MeanRPE,
		"totalSets":             f.TotalSets,
		"daysSinceLastTraining": f.DaysSinceLastTraining,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), 30)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	f := storage.WorkoutFilter{
		Limit: req.GetInt("limit", defaultWorkoutLimit),
		Start: start,
		End:   end,
	}
	if p := req.GetString("plan_type", ""); p != "" {
		f.PlanType = models.PlanType(p)
		if !f.PlanType.Valid() {
			return mcp.NewToolResultError("plan_type must be A or B"), nil
		}
	}

	workouts, err := h.ds.QueryWorkouts(ctx, UserIDFromContext(ctx), f)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}

	workouts, err := h.ds.QueryWorkouts(ctx, UserIDFromContext(ctx), storage.WorkoutFilter{Limit: progressLimit})
	if err != nil {
		h.log.Error("mcp get_exercise_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(training.ExerciseProgress(workouts, name))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCurrentPlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := h.now()
	planType := training.CurrentPlan(now)

	plan, err := h.ds.GetPlan(ctx, UserIDFromContext(ctx), planType)
	if err != nil {
		h.log.Error("mcp get_current_plan", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	source := "saved"
	if plan == nil {
		preset := h.catalog.PresetPlan(planType)
		plan = &preset
		source = "preset"
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"planType":      planType,
		"weekStart":     training.WeekStart(now),
		"nextWeekStart": training.NextWeekStart(now),
		"nextPlanType":  planType.Next(),
		"source":        source,
		"plan":          plan,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	endStr := req.GetString("end", "")
	startStr := req.GetString("start", "")

	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = models.ParseWorkoutDate(endStr)
		if err != nil {
			return mcp.NewToolResultError("invalid end date: " + err.Error()), nil
		}
	} else {
		end = h.now()
	}

	if startStr != "" {
		start, err = models.ParseWorkoutDate(startStr)
		if err != nil {
			return mcp.NewToolResultError("invalid start date: " + err.Error()), nil
		}
	} else {
		start = end.AddDate(0, -6, 0)
	}

	bucket := req.GetString("bucket", "1 month")
	uid := UserIDFromContext(ctx)

	summary, err := h.ds.GetTrainingSummary(ctx, uid, start, end, bucket)
	if err != nil {
		h.log.Error("mcp get_training_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(summary)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
