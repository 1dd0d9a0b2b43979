package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/claude/ironlog/internal/models"
)

// Client sends workouts to the IronLog server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	backoff    time.Duration
}

// NewClient creates a new HTTP client for the IronLog server. apiKey is sent
// as X-API-Key on writes.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		backoff: time.Second,
	}
}

// Response is the server's reply to a logged workout.
type Response struct {
	Workout           models.WorkoutSession     `json:"workout"`
	RecoveryEstimates []models.RecoveryEstimate `json:"recoveryEstimates"`
}

// RejectedError is returned when the server refuses a workout with a 4xx
// status. Resending the same body will not succeed.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("workout rejected (status %d): %s", e.Status, e.Body)
}

// Ping checks that the server is reachable and its database is up.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serverURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("pinging server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("health check failed (status %d): %s", resp.StatusCode, body)
	}
	return nil
}

// SendWorkout POSTs a workout to the server's workout endpoint.
// Retries up to 3 times with exponential backoff on transport errors and 5xx
// responses; a 4xx response returns a *RejectedError immediately.
func (c *Client) SendWorkout(ctx context.Context, in models.WorkoutInput) (*Response, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling workout: %w", err)
	}

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff << (attempt - 1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/api/v1/workouts", bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var out Response
			if err := json.Unmarshal(body, &out); err != nil {
				return nil, fmt.Errorf("decoding response: %w", err)
			}
			return &out, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, &RejectedError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
		}
		lastErr = fmt.Errorf("upload failed (status %d): %s", resp.StatusCode, body)
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
