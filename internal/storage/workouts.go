package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	defaultWorkoutLimit = 50
	defaultHistoryLimit = 20
)

// WorkoutFilter narrows QueryWorkouts. Zero values leave a dimension open.
type WorkoutFilter struct {
	Limit    int
	PlanType models.PlanType
	Start    time.Time
	End      time.Time
}

const sessionColumns = `SELECT id, user_id, plan_type, date, overall_intensity, sleep_quality,
		 duration_min, notes, created_at, updated_at
		 FROM workout_sessions`

// InsertWorkout stores a session with its exercises and sets in one
// transaction. A nil ID is replaced with a fresh UUID; CreatedAt and
// UpdatedAt are filled from the database.
func (db *DB) InsertWorkout(ctx context.Context, w *models.WorkoutSession) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning workout transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	err = tx.QueryRow(ctx,
		`INSERT INTO workout_sessions (id, user_id, plan_type, date, overall_intensity, sleep_quality, duration_min, notes)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING created_at, updated_at`,
		w.ID, w.UserID, string(w.PlanType), w.Date,
		nullable(w.OverallIntensity), nullable(w.SleepQuality), w.DurationMin, w.Notes,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting workout session: %w", err)
	}

	for i, ex := range w.Exercises {
		var rowID int64
		err := tx.QueryRow(ctx,
			`INSERT INTO completed_exercises (session_id, position, exercise_id, name, muscle_group, notes)
			 VALUES ($1,$2,$3,$4,$5,$6)
			 RETURNING id`,
			w.ID, i, ex.ExerciseID, ex.Name, string(ex.MuscleGroup), ex.Notes,
		).Scan(&rowID)
		if err != nil {
			return fmt.Errorf("inserting exercise %q: %w", ex.Name, err)
		}
		if err := insertSets(ctx, tx, rowID, ex.Sets); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing workout: %w", err)
	}
	return nil
}

func insertSets(ctx context.Context, tx pgx.Tx, exerciseRowID int64, sets []models.ExerciseSet) error {
	if len(sets) == 0 {
		return nil
	}

	query := `INSERT INTO exercise_sets (exercise_row_id, set_number, reps, weight_kg, rpe) VALUES `
	args := make([]any, 0, len(sets)*5)
	valueStrings := make([]string, 0, len(sets))

	for i, s := range sets {
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, exerciseRowID, s.SetNumber, s.Reps, s.WeightKg, s.RPE)
	}

	if _, err := tx.Exec(ctx, query+strings.Join(valueStrings, ","), args...); err != nil {
		return fmt.Errorf("inserting sets: %w", err)
	}
	return nil
}

// QueryWorkouts returns a user's sessions newest first, limited by f.
func (db *DB) QueryWorkouts(ctx context.Context, userID int, f WorkoutFilter) ([]models.WorkoutSession, error) {
	query, args := buildWorkoutQuery(userID, f)
	return db.querySessions(ctx, query, args...)
}

func buildWorkoutQuery(userID int, f WorkoutFilter) (string, []any) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultWorkoutLimit
	}

	where := []string{"user_id = $1"}
	args := []any{userID}
	if f.PlanType != "" {
		args = append(args, string(f.PlanType))
		where = append(where, fmt.Sprintf("plan_type = $%d", len(args)))
	}
	if !f.Start.IsZero() {
		args = append(args, f.Start)
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	if !f.End.IsZero() {
		args = append(args, f.End)
		where = append(where, fmt.Sprintf("date <= $%d", len(args)))
	}
	args = append(args, limit)

	query := sessionColumns +
		"\n\t\t WHERE " + strings.Join(where, " AND ") +
		fmt.Sprintf("\n\t\t ORDER BY date DESC LIMIT $%d", len(args))
	return query, args
}

// PreviousWorkouts returns up to limit sessions dated strictly before the
// given time, newest first. A non-positive limit means 20.
func (db *DB) PreviousWorkouts(ctx context.Context, userID int, before time.Time, limit int) ([]models.WorkoutSession, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return db.querySessions(ctx,
		sessionColumns+`
		 WHERE user_id = $1 AND date < $2
		 ORDER BY date DESC
		 LIMIT $3`,
		userID, before, limit)
}

// RecentWorkouts returns every session dated at or after since, newest first.
func (db *DB) RecentWorkouts(ctx context.Context, userID int, since time.Time) ([]models.WorkoutSession, error) {
	return db.querySessions(ctx,
		sessionColumns+`
		 WHERE user_id = $1 AND date >= $2
		 ORDER BY date DESC`,
		userID, since)
}

// GetWorkout retrieves a single session with its exercises.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutSession, error) {
	row := db.Pool.QueryRow(ctx,
		sessionColumns+`
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	w, err := scanSession(row)
	if err != nil {
		return nil, notFound(err, "workout")
	}

	sessions := []models.WorkoutSession{w}
	if err := db.loadExercises(ctx, sessions); err != nil {
		return nil, err
	}
	return &sessions[0], nil
}

func (db *DB) querySessions(ctx context.Context, query string, args ...any) ([]models.WorkoutSession, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	result := []models.WorkoutSession{}
	for rows.Next() {
		w, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.loadExercises(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

func scanSession(row pgx.Row) (models.WorkoutSession, error) {
	var w models.WorkoutSession
	var planType string
	var intensity, sleep *string
	err := row.Scan(&w.ID, &w.UserID, &planType, &w.Date, &intensity, &sleep,
		&w.DurationMin, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return w, err
	}
	w.PlanType = models.PlanType(planType)
	w.OverallIntensity = fromNullable[models.Intensity](intensity)
	w.SleepQuality = fromNullable[models.SleepQuality](sleep)
	w.Exercises = []models.CompletedExercise{}
	return w, nil
}

// loadExercises fills in the exercises and sets of the given sessions with a
// single query.
func (db *DB) loadExercises(ctx context.Context, sessions []models.WorkoutSession) error {
	if len(sessions) == 0 {
		return nil
	}

	ids := make([]string, len(sessions))
	index := make(map[uuid.UUID]int, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID.String()
		index[s.ID] = i
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT e.session_id, e.id, e.exercise_id, e.name, e.muscle_group, e.notes,
		        s.set_number, s.reps, s.weight_kg, s.rpe
		 FROM completed_exercises e
		 LEFT JOIN exercise_sets s ON s.exercise_row_id = e.id
		 WHERE e.session_id = ANY($1::uuid[])
		 ORDER BY e.session_id, e.position, s.set_number`,
		ids)
	if err != nil {
		return fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	lastRow := make(map[uuid.UUID]int64, len(sessions))
	for rows.Next() {
		var (
			sessionID   uuid.UUID
			rowID       int64
			ex          models.CompletedExercise
			muscleGroup string
			setNumber   *int
			reps        *int
			weight      *float64
			rpe         *float64
		)
		if err := rows.Scan(&sessionID, &rowID, &ex.ExerciseID, &ex.Name, &muscleGroup, &ex.Notes,
			&setNumber, &reps, &weight, &rpe); err != nil {
			return fmt.Errorf("scanning exercise: %w", err)
		}

		i, ok := index[sessionID]
		if !ok {
			continue
		}
		s := &sessions[i]
		if prev, seen := lastRow[sessionID]; !seen || prev != rowID {
			ex.MuscleGroup = models.MuscleGroup(muscleGroup)
			ex.Sets = []models.ExerciseSet{}
			s.Exercises = append(s.Exercises, ex)
			lastRow[sessionID] = rowID
		}
		if setNumber == nil {
			continue
		}
		cur := &s.Exercises[len(s.Exercises)-1]
		cur.Sets = append(cur.Sets, models.ExerciseSet{
			SetNumber: *setNumber,
			Reps:      *reps,
			WeightKg:  *weight,
			RPE:       rpe,
		})
	}
	return rows.Err()
}
