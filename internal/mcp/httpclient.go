package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/claude/ironlog/internal/storage"
)

// maxRemoteWorkouts is the largest page the REST API serves.
const maxRemoteWorkouts = 500

// HTTPClient implements DataSource by calling the IronLog REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale).
// The server attributes every request to its own user, so userID
// arguments are ignored.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func timeParams(start, end time.Time) url.Values {
	v := url.Values{}
	v.Set("start", start.Format(time.RFC3339))
	v.Set("end", end.Format(time.RFC3339))
	return v
}

func (c *HTTPClient) GetUser(ctx context.Context, _ int) (*models.User, error) {
	body, err := c.get(ctx, "/api/v1/me", nil)
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := json.Unmarshal(body, &u); err != nil {
		return nil, fmt.Errorf("httpclient: decode user: %w", err)
	}
	return &u, nil
}

func (c *HTTPClient) QueryWorkouts(ctx context.Context, _ int, f storage.WorkoutFilter) ([]models.WorkoutSession, error) {
	params := url.Values{}
	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(min(f.Limit, maxRemoteWorkouts)))
	}
	if f.PlanType != "" {
		params.Set("planType", string(f.PlanType))
	}
	if !f.Start.IsZero() {
		params.Set("startDate", f.Start.Format(time.RFC3339))
	}
	if !f.End.IsZero() {
		params.Set("endDate", f.End.Format(time.RFC3339))
	}

	body, err := c.get(ctx, "/api/v1/workouts", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Workouts []models.WorkoutSession `json:"workouts"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode workouts: %w", err)
	}
	return resp.Workouts, nil
}

func (c *HTTPClient) RecentWorkouts(ctx context.Context, userID int, since time.Time) ([]models.WorkoutSession, error) {
	return c.QueryWorkouts(ctx, userID, storage.WorkoutFilter{Limit: maxRemoteWorkouts, Start: since})
}

func (c *HTTPClient) GetPlan(ctx context.Context, _ int, planType models.PlanType) (*models.WorkoutPlan, error) {
	params := url.Values{}
	params.Set("planType", string(planType))

	body, err := c.get(ctx, "/api/v1/plans", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Plan *models.WorkoutPlan `json:"plan"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("httpclient: decode plan: %w", err)
	}
	return resp.Plan, nil
}

func (c *HTTPClient) GetTrainingSummary(ctx context.Context, _ int, start, end time.Time, bucket string) ([]storage.TrainingSummaryPeriod, error) {
	params := timeParams(start, end)
	params.Set("bucket", bucket)

	body, err := c.get(ctx, "/api/v1/training/summary", params)
	if err != nil {
		return nil, err
	}

	var periods []storage.TrainingSummaryPeriod
	if err := json.Unmarshal(body, &periods); err != nil {
		return nil, fmt.Errorf("httpclient: decode training summary: %w", err)
	}
	return periods, nil
}

func (c *HTTPClient) GetDataStats(ctx context.Context, _ int) (*storage.DataStats, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return nil, err
	}

	var stats storage.DataStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return &stats, nil
}
