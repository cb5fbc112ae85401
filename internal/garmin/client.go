package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const BaseURL = "https://apis.garmin.com/wellness-api/rest"

const dayFormat = "2006-01-02"

// Client is a wellness API client
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
	baseURL     string
}

// NewClient creates a new wellness API client
func NewClient(tokenSource oauth2.TokenSource) *Client {
	return &Client{
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
		baseURL:     BaseURL,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint.
// Intended for tests.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	return &Client{
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
		baseURL:     baseURL,
	}
}

// GetDailySummaries fetches daily wellness summaries for [start, end]
func (c *Client) GetDailySummaries(ctx context.Context, start, end time.Time) ([]DailySummary, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("start", start.Format(dayFormat))
	params.Set("end", end.Format(dayFormat))

	resp, err := c.get(ctx, "/wellness/dailies", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var summaries []DailySummary
	if err := json.NewDecoder(resp.Body).Decode(&summaries); err != nil {
		return nil, fmt.Errorf("decoding daily summaries: %w", err)
	}

	return summaries, nil
}

// GetWorkouts fetches workout summaries starting in [start, end]
func (c *Client) GetWorkouts(ctx context.Context, start, end time.Time) ([]WorkoutSummary, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("start", start.Format(dayFormat))
	params.Set("end", end.Format(dayFormat))

	resp, err := c.get(ctx, "/workouts", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var workouts []WorkoutSummary
	if err := json.NewDecoder(resp.Body).Decode(&workouts); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}

	return workouts, nil
}

// GetWorkoutSamples fetches the heart rate series for a workout
func (c *Client) GetWorkoutSamples(ctx context.Context, workoutID int64) (*HeartRateSeries, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/workouts/%d/hr", workoutID)
	resp, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var series HeartRateSeries
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return nil, fmt.Errorf("decoding heart rate series: %w", err)
	}

	return &series, nil
}

// RateLimitStatus returns the current rate limit status
func (c *Client) RateLimitStatus() (minuteRemaining, dailyRemaining int) {
	return c.rateLimiter.Status()
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Update rate limiter from response headers
	c.rateLimiter.UpdateFromHeaders(resp.Header)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return resp, nil
}
