// Package api is the HTTP client for the dashboard backend. All gamification
// state stays local; this client only reads activity and study-plan data.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout = 15 * time.Second

	// chapterFetchParallelism bounds concurrent per-plan progress fetches.
	chapterFetchParallelism = 4
)

// Client talks to the dashboard REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a Client for the given base URL. The token is sent as a Bearer
// credential when non-empty.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// ProductivitySummary fetches today's productive/neutral/distracting minutes.
func (c *Client) ProductivitySummary(ctx context.Context) (ProductivitySummary, error) {
	var summary ProductivitySummary
	err := c.get(ctx, "/productivity/summary", &summary)
	return summary, err
}

// StudyPlans fetches all study plans with their chapter and quiz state.
func (c *Client) StudyPlans(ctx context.Context) ([]StudyPlan, error) {
	var plans []StudyPlan
	err := c.get(ctx, "/study-plans", &plans)
	return plans, err
}

// PlanProgress fetches the chapter progress detail for one plan.
func (c *Client) PlanProgress(ctx context.Context, planID int64) (ChapterProgress, error) {
	var progress ChapterProgress
	err := c.get(ctx, fmt.Sprintf("/study-plans/%d/progress", planID), &progress)
	return progress, err
}

// AllPlanProgress fetches chapter progress for every given plan concurrently.
// Individual plan failures are skipped; the map contains the plans that
// succeeded.
func (c *Client) AllPlanProgress(ctx context.Context, planIDs []int64) (map[int64]ChapterProgress, error) {
	results := make(map[int64]ChapterProgress, len(planIDs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(chapterFetchParallelism)

	for _, id := range planIDs {
		id := id
		g.Go(func() error {
			progress, err := c.PlanProgress(ctx, id)
			if err != nil {
				// A single unreadable plan must not sink the whole pass.
				return nil
			}
			mu.Lock()
			results[id] = progress
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ActivityHistory fetches trailing activity minutes for the given number of
// days and returns a date→minutes map. Days with zero or missing minutes are
// omitted.
func (c *Client) ActivityHistory(ctx context.Context, days int) (map[string]int, error) {
	var entries []ActivityDay
	if err := c.get(ctx, fmt.Sprintf("/activity/history?days=%d", days), &entries); err != nil {
		return nil, err
	}

	history := make(map[string]int, len(entries))
	for _, e := range entries {
		if e.Date == "" || e.TotalActiveMinutes <= 0 {
			continue
		}
		history[e.Date] = e.TotalActiveMinutes
	}
	return history, nil
}
