package recovery

import (
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
)

func estimateReadyAt(t time.Time) models.RecoveryEstimate {
	return models.RecoveryEstimate{
		MuscleGroup:             models.MuscleChest,
		LastTrainedDate:         t.Add(-48 * time.Hour),
		RecommendedNextTraining: t,
		RecoveryHours:           48,
	}
}

// TestIsReadyToTrainBoundary verifies the boundary instant counts as ready.
func TestIsReadyToTrainBoundary(t *testing.T) {
	e := estimateReadyAt(day0)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"exactly at boundary", day0, true},
		{"one second after", day0.Add(time.Second), true},
		{"one second before", day0.Add(-time.Second), false},
		{"a day before", day0.Add(-24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReadyToTrain(e, tt.now); got != tt.want {
				t.Errorf("IsReadyToTrain at %v = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

// TestHoursUntilReady verifies whole hours are truncated and the result is
// never negative once the estimate has passed.
func TestHoursUntilReady(t *testing.T) {
	e := estimateReadyAt(day0)
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"48 hours before", day0.Add(-48 * time.Hour), 48},
		{"90 minutes before", day0.Add(-90 * time.Minute), 1},
		{"59 minutes before", day0.Add(-59 * time.Minute), 0},
		{"at boundary", day0, 0},
		{"long after", day0.AddDate(1, 0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HoursUntilReady(e, tt.now); got != tt.want {
				t.Errorf("HoursUntilReady at %v = %d, want %d", tt.now, got, tt.want)
			}
		})
	}
}

// TestReadinessNowDefaults verifies the wall-clock variants agree with the
// explicit ones for estimates far from the present.
func TestReadinessNowDefaults(t *testing.T) {
	past := estimateReadyAt(time.Now().Add(-time.Hour))
	if !IsReadyNow(past) || HoursUntilReadyNow(past) != 0 {
		t.Error("estimate in the past should be ready now")
	}
	future := estimateReadyAt(time.Now().Add(72*time.Hour + 30*time.Minute))
	if IsReadyNow(future) {
		t.Error("estimate three days out should not be ready")
	}
	if h := HoursUntilReadyNow(future); h != 72 {
		t.Errorf("HoursUntilReadyNow = %d, want 72", h)
	}
}

func TestStatusAt(t *testing.T) {
	estimates := []models.RecoveryEstimate{estimateReadyAt(day0), estimateReadyAt(day0.Add(10 * time.Hour))}
	got := StatusAt(estimates, day0.Add(time.Hour))
	if !got[0].Ready || got[0].HoursUntilReady != 0 {
		t.Errorf("first status = %+v, want ready", got[0])
	}
	if got[1].Ready || got[1].HoursUntilReady != 9 {
		t.Errorf("second status = %+v, want 9 hours remaining", got[1])
	}
}
