package models

import "time"

// RecoveryEstimate is the predicted readiness of one muscle group after a
// session. Factors carries the inputs that produced RecoveryHours.
type RecoveryEstimate struct {
	MuscleGroup             MuscleGroup             `json:"muscleGroup"`
	LastTrainedDate         time.Time               `json:"lastTrainedDate"`
	RecommendedNextTraining time.Time               `json:"recommendedNextTraining"`
	RecoveryHours           int                     `json:"recoveryHours"`
	Factors                 RecoveryFactorsSnapshot `json:"factors"`
}

// RecoveryFactorsSnapshot is the display copy of the factors behind an estimate.
type RecoveryFactorsSnapshot struct {
	RPE                   float64 `json:"rpe"`
	TotalSets             int     `json:"totalSets"`
	Intensity             string  `json:"intensity"`
	SleepQuality          string  `json:"sleepQuality,omitempty"`
	DaysSinceLastTraining int     `json:"daysSinceLastTraining"`
}
