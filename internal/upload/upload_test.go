package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/claude/ironlog/internal/importer"
	"github.com/claude/ironlog/internal/models"
)

// fakeServer accepts workouts with planType A or B and rejects the rest,
// mirroring the server's validation response.
func fakeServer(t *testing.T, received *[]models.WorkoutInput) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /api/v1/workouts", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in models.WorkoutInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.PlanType != "A" && in.PlanType != "B" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Validation error"}`))
			return
		}
		*received = append(*received, in)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"workout": models.WorkoutSession{PlanType: models.PlanType(in.PlanType)},
			"recoveryEstimates": []models.RecoveryEstimate{
				{MuscleGroup: models.MuscleChest, RecoveryHours: 48},
			},
		})
	})
	return httptest.NewServer(mux)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const workouts = `[
  {"planType": "A", "date": "2025-03-03", "exercises": [{"exerciseName": "Bench Press", "muscleGroup": "chest", "sets": [{"reps": 8, "weight": 80}]}]},
  {"planType": "Z", "date": "2025-03-04", "exercises": []}
]`

func TestSendWorkout(t *testing.T) {
	var received []models.WorkoutInput
	ts := fakeServer(t, &received)
	defer ts.Close()

	c := NewClient(ts.URL+"/", "k")
	resp, err := c.SendWorkout(context.Background(), models.WorkoutInput{PlanType: "B"})
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.RecoveryEstimates) != 1 || resp.Workout.PlanType != models.PlanB {
		t.Errorf("response = %+v", resp)
	}

	_, err = c.SendWorkout(context.Background(), models.WorkoutInput{PlanType: "Z"})
	var rejected *RejectedError
	if !errors.As(err, &rejected) || rejected.Status != http.StatusBadRequest {
		t.Errorf("error = %v, want RejectedError 400", err)
	}
}

// TestSendWorkoutRetries verifies 5xx responses are retried and 4xx are not.
func TestSendWorkoutRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"recoveryEstimates":[]}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "k")
	c.backoff = 0
	if _, err := c.SendWorkout(context.Background(), models.WorkoutInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}

	calls.Store(10)
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	c = NewClient(failing.URL, "k")
	c.backoff = 0
	if _, err := c.SendWorkout(context.Background(), models.WorkoutInput{}); err == nil {
		t.Error("expected error after retries")
	}
	if got := calls.Load(); got != 13 {
		t.Errorf("calls = %d, want 3 more attempts", got)
	}
}

func TestRun(t *testing.T) {
	var received []models.WorkoutInput
	ts := fakeServer(t, &received)
	defer ts.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "march.json"), []byte(workouts), 0o644); err != nil {
		t.Fatal(err)
	}
	state, err := importer.OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	u := New(NewClient(ts.URL, "k"), state, false, discardLogger())
	stats, err := u.Run(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesUploaded != 1 || stats.WorkoutsSent != 1 || stats.WorkoutsRejected != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if len(received) != 1 || received[0].Exercises[0].ExerciseName != "Bench Press" {
		t.Errorf("received = %+v", received)
	}

	stats, err = New(NewClient(ts.URL, "k"), state, false, discardLogger()).Run(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSkipped != 1 || len(received) != 1 {
		t.Errorf("rerun stats = %+v, received %d", stats, len(received))
	}
}

func TestRunDryRunSkipsServer(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "march.json"), []byte(workouts), 0o644); err != nil {
		t.Fatal(err)
	}

	// No server is listening; a dry run must not contact it.
	u := New(NewClient("http://127.0.0.1:1", "k"), nil, true, discardLogger())
	stats, err := u.Run(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if stats.WorkoutsSent != 1 || stats.WorkoutsRejected != 1 {
		t.Errorf("dry run stats = %+v, want 1 sent 1 rejected", stats)
	}
}
