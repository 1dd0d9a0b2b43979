package recovery

import (
	"time"

	"github.com/claude/ironlog/internal/models"
)

// IsReadyToTrain reports whether now is at or after the recommended next
// training time.
func IsReadyToTrain(e models.RecoveryEstimate, now time.Time) bool {
	return !now.Before(e.RecommendedNextTraining)
}

// HoursUntilReady returns the whole hours remaining until e is ready,
// truncated toward zero. It is never negative.
func HoursUntilReady(e models.RecoveryEstimate, now time.Time) int {
	return max(0, int(e.RecommendedNextTraining.Sub(now)/time.Hour))
}

// IsReadyNow is IsReadyToTrain evaluated at the current time.
func IsReadyNow(e models.RecoveryEstimate) bool {
	return IsReadyToTrain(e, time.Now())
}

// HoursUntilReadyNow is HoursUntilReady evaluated at the current time.
func HoursUntilReadyNow(e models.RecoveryEstimate) int {
	return HoursUntilReady(e, time.Now())
}

// Status is an estimate paired with its readiness at a given instant.
type Status struct {
	models.RecoveryEstimate
	Ready           bool `json:"ready"`
	HoursUntilReady int  `json:"hoursUntilReady"`
}

// StatusAt annotates each estimate with its readiness at now.
func StatusAt(estimates []models.RecoveryEstimate, now time.Time) []Status {
	out := make([]Status, len(estimates))
	for i, e := range estimates {
		out[i] = Status{
			RecoveryEstimate: e,
			Ready:            IsReadyToTrain(e, now),
			HoursUntilReady:  HoursUntilReady(e, now),
		}
	}
	return out
}
