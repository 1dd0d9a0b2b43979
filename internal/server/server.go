package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Store is the persistence the HTTP handlers need. *storage.DB satisfies it.
type Store interface {
	Ping(ctx context.Context) error
	InsertWorkout(ctx context.Context, w *models.WorkoutSession) error
	QueryWorkouts(ctx context.Context, userID int, f storage.WorkoutFilter) ([]models.WorkoutSession, error)
	PreviousWorkouts(ctx context.Context, userID int, before time.Time, limit int) ([]models.WorkoutSession, error)
	RecentWorkouts(ctx context.Context, userID int, since time.Time) ([]models.WorkoutSession, error)
	GetWorkout(ctx context.Context, id uuid.UUID, userID int) (*models.WorkoutSession, error)
	GetPlan(ctx context.Context, userID int, planType models.PlanType) (*models.WorkoutPlan, error)
	UpsertPlan(ctx context.Context, plan *models.WorkoutPlan) error
	CreateUser(ctx context.Context, u *models.User) error
	GetDataStats(ctx context.Context, userID int) (*storage.DataStats, error)
	GetTrainingSummary(ctx context.Context, userID int, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error)
	QueryImportLogs(ctx context.Context, userID, limit int) ([]storage.ImportLog, error)
}

var _ Store = (*storage.DB)(nil)

// Options configures a Server.
type Options struct {
	APIKey string

	// DefaultUser is attached to every request by DevIdentity.
	DefaultUser models.User

	// HistoryLimit caps the prior sessions fed into recovery estimates.
	HistoryLimit int

	// StatusWindow is how far back the recovery endpoint looks.
	StatusWindow time.Duration
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      Store
	catalog *catalog.Catalog
	log     *slog.Logger
	opts    Options
	now     func() time.Time
	router  chi.Router
	mcp     http.Handler
}

// New creates a new Server with all routes configured.
func New(db Store, opts Options, log *slog.Logger) *Server {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 20
	}
	if opts.StatusWindow <= 0 {
		opts.StatusWindow = 14 * 24 * time.Hour
	}
	s := &Server{
		db:      db,
		catalog: catalog.Default(),
		log:     log,
		opts:    opts,
		now:     time.Now,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(DevIdentity(s.opts.DefaultUser))

		r.Post("/api/v1/auth/register", s.handleRegister)
		r.Get("/api/v1/me", s.handleMe)

		r.Get("/api/v1/workouts", s.handleQueryWorkouts)
		r.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
		r.Get("/api/v1/recovery", s.handleRecovery)
		r.Get("/api/v1/dashboard", s.handleDashboard)
		r.Get("/api/v1/progress", s.handleProgress)
		r.Get("/api/v1/stats", s.handleStats)
		r.Get("/api/v1/training/summary", s.handleTrainingSummary)
		r.Get("/api/v1/imports", s.handleImportLogs)

		r.Get("/api/v1/plans", s.handleGetPlan)
		r.Get("/api/v1/plans/current", s.handleCurrentPlan)
		r.Get("/api/v1/presets/exercises", s.handlePresetExercises)
		r.Get("/api/v1/presets/plans/{type}", s.handlePresetPlan)

		// Writes (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.opts.APIKey))
			r.Post("/api/v1/workouts", s.handleCreateWorkout)
			r.Post("/api/v1/plans", s.handleSavePlan)
		})

		r.Handle("/mcp", http.HandlerFunc(s.serveMCP))
	})
}

// SetMCP mounts an MCP transport at /mcp. Requests reach it with the
// request user attached, see UserFromRequest.
func (s *Server) SetMCP(h http.Handler) {
	s.mcp = h
}

func (s *Server) serveMCP(w http.ResponseWriter, r *http.Request) {
	if s.mcp == nil {
		writeError(w, http.StatusNotFound, "mcp not enabled")
		return
	}
	s.mcp.ServeHTTP(w, r)
}

// UserFromRequest returns the user attached to r by identity middleware.
func UserFromRequest(r *http.Request) (models.User, bool) {
	return userFromContext(r)
}
