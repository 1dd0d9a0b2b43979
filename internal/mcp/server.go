package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/ironlog/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userIDKey contextKey = iota

// UserIDFromContext extracts the user ID injected by the transport layer.
func UserIDFromContext(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

// WithUserID returns a context with the given user ID.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronLog strength training server. Query logged workouts, per-muscle-group recovery status, A/B plans, and training volume. All data is scoped to the authenticated user."),
	)

	h := newHandlers(ds, log)

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetRecoveryStatus, Handler: h.getRecoveryStatus},
		server.ServerTool{Tool: toolEstimateRecovery, Handler: h.estimateRecovery},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
		server.ServerTool{Tool: toolGetCurrentPlan, Handler: h.getCurrentPlan},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resDashboard, Handler: h.dashboard},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// NewHTTPHandler serves s over the streamable HTTP transport. userID resolves
// the caller from the incoming request; requests it cannot resolve run as the
// default user.
func NewHTTPHandler(s *server.MCPServer, userID func(*http.Request) (int, bool)) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if id, ok := userID(r); ok {
				return WithUserID(ctx, id)
			}
			return ctx
		}),
	)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds      DataSource
	catalog *catalog.Catalog
	log     *slog.Logger
	now     func() time.Time
}

func newHandlers(ds DataSource, log *slog.Logger) *handlers {
	return &handlers{ds: ds, catalog: catalog.Default(), log: log, now: time.Now}
}

// --- Resource definitions ---

var resDashboard = mcp.NewResource(
	"ironlog://dashboard",
	"Training Dashboard",
	mcp.WithResourceDescription("This week's and month's session counts and volume, the current streak, per-muscle recovery, and the active plan"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"ironlog://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Built-in exercise library with muscle groups and categories"),
	mcp.WithMIMEType("application/json"),
)
