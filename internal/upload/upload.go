package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/ironlog/internal/importer"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	WorkoutsSent     int
	WorkoutsRejected int
}

// Uploader walks a directory of workout files and POSTs each workout to a
// remote IronLog server. Files are recorded in the state DB only when every
// workout in them was delivered or rejected.
type Uploader struct {
	client *Client
	state  *importer.StateDB
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader. state may be nil to resend everything.
func New(client *Client, state *importer.StateDB, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{client: client, state: state, dryRun: dryRun, log: log}
}

// Run executes the upload pipeline over dir. A dry run validates workouts
// locally and never contacts the server.
func (u *Uploader) Run(ctx context.Context, dir string) (*Stats, error) {
	if !u.dryRun {
		if err := u.client.Ping(ctx); err != nil {
			return &u.stats, err
		}
	}

	files, err := importer.ScanDir(ctx, dir)
	if err != nil {
		return &u.stats, err
	}
	u.stats.FilesTotal = len(files)

	for _, f := range files {
		if u.state != nil {
			done, err := u.state.IsImported(f)
			if err != nil {
				return &u.stats, fmt.Errorf("checking state for %s: %w", f.RelPath, err)
			}
			if done {
				u.stats.FilesSkipped++
				continue
			}
		}

		sent, err := u.uploadFile(ctx, f)
		if err != nil {
			if ctx.Err() != nil {
				return &u.stats, ctx.Err()
			}
			u.log.Warn("upload failed", "file", f.RelPath, "error", err)
			u.stats.FilesErrored++
			continue
		}
		u.stats.FilesUploaded++

		if u.state != nil && !u.dryRun {
			if err := u.state.MarkImported(f, sent); err != nil {
				return &u.stats, fmt.Errorf("recording state for %s: %w", f.RelPath, err)
			}
		}
	}

	return &u.stats, nil
}

// uploadFile sends every workout in f and returns how many were accepted.
func (u *Uploader) uploadFile(ctx context.Context, f importer.File) (int, error) {
	inputs, err := importer.ReadWorkouts(f.Path)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i, in := range inputs {
		if u.dryRun {
			if _, err := in.Session(0, time.Now()); err != nil {
				u.log.Info("dry run: workout invalid", "file", f.RelPath, "index", i, "error", err)
				u.stats.WorkoutsRejected++
				continue
			}
			sent++
			u.stats.WorkoutsSent++
			continue
		}

		resp, err := u.client.SendWorkout(ctx, in)
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			u.log.Warn("workout rejected", "file", f.RelPath, "index", i, "status", rejected.Status, "body", rejected.Body)
			u.stats.WorkoutsRejected++
			continue
		}
		if err != nil {
			return sent, fmt.Errorf("workout %d: %w", i, err)
		}

		sent++
		u.stats.WorkoutsSent++
		u.log.Info("workout uploaded",
			"file", f.RelPath,
			"workout_id", resp.Workout.ID,
			"date", resp.Workout.Date.Format("2006-01-02"),
			"muscle_groups", len(resp.RecoveryEstimates),
		)
	}
	return sent, nil
}
