package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/recovery"
	"github.com/claude/ironlog/internal/storage"
	"github.com/claude/ironlog/internal/training"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	maxWorkoutLimit = 500
	progressLimit   = 500
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.log.Warn("health check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	var in models.WorkoutInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	workout, err := in.Session(u.ID, s.now())
	if err != nil {
		writeValidation(w, err)
		return
	}

	if err := s.db.InsertWorkout(r.Context(), &workout); err != nil {
		s.internalError(w, "inserting workout", err)
		return
	}

	history, err := s.db.PreviousWorkouts(r.Context(), u.ID, workout.Date, s.opts.HistoryLimit)
	if err != nil {
		s.internalError(w, "loading workout history", err)
		return
	}

	estimates := recovery.EstimateFromWorkout(workout, history, levelOf(u))
	s.log.Info("workout logged",
		"workout_id", workout.ID,
		"exercises", len(workout.Exercises),
		"muscle_groups", len(estimates),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"workout":           workout,
		"recoveryEstimates": estimates,
	})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	f, err := parseWorkoutFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), u.ID, f)
	if err != nil {
		s.internalError(w, "querying workouts", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workouts": workouts})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	workoutID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}

	workout, err := s.db.GetWorkout(r.Context(), workoutID, u.ID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	if err != nil {
		s.internalError(w, "loading workout", err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleRecovery(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	now := s.now()
	workouts, err := s.db.RecentWorkouts(r.Context(), u.ID, now.Add(-s.opts.StatusWindow))
	if err != nil {
		s.internalError(w, "loading recent workouts", err)
		return
	}

	estimates := recovery.CurrentStatus(workouts, levelOf(u))
	writeJSON(w, http.StatusOK, map[string]any{
		"asOf":     now,
		"recovery": recovery.StatusAt(estimates, now),
	})
}

// dashboardResponse is the dashboard plus the user's saved A and B plans.
type dashboardResponse struct {
	training.Dashboard
	PlanA []models.PlanExercise `json:"planA"`
	PlanB []models.PlanExercise `json:"planB"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	now := s.now()
	since := training.WeekStart(now)
	if monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()); monthStart.Before(since) {
		since = monthStart
	}

	var (
		period, recent []models.WorkoutSession
		planA, planB   *models.WorkoutPlan
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		period, err = s.db.RecentWorkouts(ctx, u.ID, since)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.db.QueryWorkouts(ctx, u.ID, storage.WorkoutFilter{Limit: s.opts.HistoryLimit})
		return err
	})
	g.Go(func() (err error) {
		planA, err = s.db.GetPlan(ctx, u.ID, models.PlanA)
		return err
	})
	g.Go(func() (err error) {
		planB, err = s.db.GetPlan(ctx, u.ID, models.PlanB)
		return err
	})
	if err := g.Wait(); err != nil {
		s.internalError(w, "loading dashboard", err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Dashboard: training.DashboardStats(mergeSessions(period, recent), now, levelOf(u)),
		PlanA:     planExercises(planA),
		PlanB:     planExercises(planB),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("exercise")
	if name == "" {
		writeError(w, http.StatusBadRequest, "exercise parameter required")
		return
	}

	workouts, err := s.db.QueryWorkouts(r.Context(), u.ID, storage.WorkoutFilter{Limit: progressLimit})
	if err != nil {
		s.internalError(w, "loading workouts for progress", err)
		return
	}
	writeJSON(w, http.StatusOK, training.ExerciseProgress(workouts, name))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}
	stats, err := s.db.GetDataStats(r.Context(), u.ID)
	if err != nil {
		s.internalError(w, "loading stats", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleTrainingSummary(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}

	start, end, err := parseTimeRange(r, s.now(), 0, -6)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bucket := "1 month"
	if r.URL.Query().Get("bucket") == "1 week" || r.URL.Query().Get("agg") == "weekly" {
		bucket = "1 week"
	}

	summary, err := s.db.GetTrainingSummary(r.Context(), u.ID, start, end, bucket)
	if err != nil {
		s.internalError(w, "loading training summary", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	u, ok := mustUser(w, r)
	if !ok {
		return
	}
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	logs, err := s.db.QueryImportLogs(r.Context(), u.ID, limit)
	if err != nil {
		s.internalError(w, "loading import logs", err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidation reports input validation failures as a 400 with per-field details.
func writeValidation(w http.ResponseWriter, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Validation error",
			"details": verrs,
		})
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// levelOf returns the user's experience level, treating unset or unknown
// levels as intermediate.
func levelOf(u models.User) models.ExperienceLevel {
	if u.ExperienceLevel.Valid() {
		return u.ExperienceLevel
	}
	return models.LevelIntermediate
}

// mergeSessions unions two session lists, dropping duplicate IDs.
func mergeSessions(a, b []models.WorkoutSession) []models.WorkoutSession {
	seen := make(map[uuid.UUID]bool, len(a)+len(b))
	out := make([]models.WorkoutSession, 0, len(a)+len(b))
	for _, list := range [][]models.WorkoutSession{a, b} {
		for _, w := range list {
			if seen[w.ID] {
				continue
			}
			seen[w.ID] = true
			out = append(out, w)
		}
	}
	return out
}

func planExercises(p *models.WorkoutPlan) []models.PlanExercise {
	if p == nil || p.Exercises == nil {
		return []models.PlanExercise{}
	}
	return p.Exercises
}

func parseWorkoutFilter(r *http.Request) (storage.WorkoutFilter, error) {
	q := r.URL.Query()
	var f storage.WorkoutFilter

	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			return f, errors.New("limit must be a positive integer")
		}
		f.Limit = min(n, maxWorkoutLimit)
	}
	if p := q.Get("planType"); p != "" {
		f.PlanType = models.PlanType(p)
		if !f.PlanType.Valid() {
			return f, errors.New("planType must be A or B")
		}
	}
	if v := q.Get("startDate"); v != "" {
		t, err := models.ParseWorkoutDate(v)
		if err != nil {
			return f, err
		}
		f.Start = t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := models.ParseWorkoutDate(v)
		if err != nil {
			return f, err
		}
		f.End = t
	}
	return f, nil
}

// parseTimeRange reads start and end query parameters. A missing end means
// now; a missing start goes back by the given days and months from end. A
// date-only end covers that whole day.
func parseTimeRange(r *http.Request, now time.Time, days, months int) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	end = now
	if endStr != "" {
		end, err = models.ParseWorkoutDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if len(endStr) == len(models.DateOnlyLayout) {
			end = end.Add(24 * time.Hour)
		}
	}

	if startStr == "" {
		return end.AddDate(0, months, days), end, nil
	}
	start, err = models.ParseWorkoutDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
