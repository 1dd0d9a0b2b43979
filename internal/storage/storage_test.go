package storage

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestBuildWorkoutQuery(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    WorkoutFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "defaults",
			filter:    WorkoutFilter{},
			wantWhere: "WHERE user_id = $1\n",
			wantArgs:  []any{7, 50},
		},
		{
			name:      "plan and limit",
			filter:    WorkoutFilter{PlanType: models.PlanB, Limit: 5},
			wantWhere: "WHERE user_id = $1 AND plan_type = $2\n",
			wantArgs:  []any{7, "B", 5},
		},
		{
			name:      "date range",
			filter:    WorkoutFilter{Start: start, End: end},
			wantWhere: "WHERE user_id = $1 AND date >= $2 AND date <= $3\n",
			wantArgs:  []any{7, start, end, 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildWorkoutQuery(7, tt.filter)
			if !strings.Contains(query, tt.wantWhere) {
				t.Errorf("query missing %q:\n%s", tt.wantWhere, query)
			}
			wantLimit := fmt.Sprintf("ORDER BY date DESC LIMIT $%d", len(tt.wantArgs))
			if !strings.HasSuffix(query, wantLimit) {
				t.Errorf("query should end with %q:\n%s", wantLimit, query)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTruncInterval(t *testing.T) {
	tests := map[string]string{
		"1 week":  "week",
		"week":    "week",
		"1 month": "month",
		"":        "month",
		"1 year":  "month",
	}
	for in, want := range tests {
		if got := truncInterval(in); got != want {
			t.Errorf("truncInterval(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNullable(t *testing.T) {
	if nullable[models.Intensity](nil) != nil {
		t.Error("nullable(nil) should be nil")
	}
	hard := models.IntensityHard
	s := nullable(&hard)
	if s == nil || *s != "hard" {
		t.Fatalf("nullable(hard) = %v", s)
	}
	back := fromNullable[models.Intensity](s)
	if back == nil || *back != models.IntensityHard {
		t.Errorf("fromNullable = %v, want hard", back)
	}
	if fromNullable[models.SleepQuality](nil) != nil {
		t.Error("fromNullable(nil) should be nil")
	}
}

func TestErrorMapping(t *testing.T) {
	if err := notFound(pgx.ErrNoRows, "workout"); !errors.Is(err, ErrNotFound) {
		t.Errorf("notFound(ErrNoRows) = %v, want ErrNotFound", err)
	}
	boom := errors.New("boom")
	if err := notFound(boom, "workout"); errors.Is(err, ErrNotFound) || !errors.Is(err, boom) {
		t.Errorf("notFound(boom) = %v, want wrapped boom", err)
	}

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	if !isUniqueViolation(dup) {
		t.Error("23505 should be a unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) || isUniqueViolation(nil) {
		t.Error("only 23505 is a unique violation")
	}
}
