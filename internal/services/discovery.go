// Discovery area client: tracked hashtags, schedulers, run history, run triggering.
//
// Scheduler CRUD lives under /api/management/*, hashtag tracking and manual runs
// under /api/analysis/trending/*. Run records are append-only from the client's
// perspective; triggering a run is an independent POST with no retry semantics.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// TrackedHashtags lists the hashtags under discovery tracking.
func (c *Client) TrackedHashtags(ctx context.Context) ([]models.TrackedHashtag, error) {
	var resp struct {
		Hashtags []models.TrackedHashtag `json:"hashtags"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/analysis/trending/hashtags", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Hashtags, nil
}

// TrackHashtag adds a hashtag to discovery tracking. The tag is normalized locally
// the same way the dashboard form does before submission.
func (c *Client) TrackHashtag(ctx context.Context, tag string) (*models.TrackedHashtag, error) {
	tag = shared.NormalizeHashtag(tag)
	if tag == "" {
		return nil, fmt.Errorf("%w: hashtag is required", shared.ErrInvalidInput)
	}

	body := map[string]string{"tag": tag}
	var created models.TrackedHashtag
	if err := c.doRequest(ctx, http.MethodPost, "/api/analysis/trending/hashtags", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UntrackHashtag removes a hashtag from discovery tracking.
func (c *Client) UntrackHashtag(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/analysis/trending/hashtags/%s", url.PathEscape(id))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// RunDiscovery triggers an ad-hoc manual discovery run. Progress is observed only
// via the progress stream; the POST returns immediately.
func (c *Client) RunDiscovery(ctx context.Context) error {
	return c.doRequest(ctx, http.MethodPost, "/api/analysis/trending/run", nil, nil)
}

// Schedulers lists the caller's scheduler definitions.
func (c *Client) Schedulers(ctx context.Context) ([]models.Scheduler, error) {
	var resp struct {
		Schedulers []models.Scheduler `json:"schedulers"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/management/schedulers", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Schedulers, nil
}

// Scheduler retrieves a single scheduler definition.
func (c *Client) Scheduler(ctx context.Context, id string) (*models.Scheduler, error) {
	var s models.Scheduler
	endpoint := fmt.Sprintf("/api/management/schedulers/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateScheduler creates a scheduler definition after local validation.
func (c *Client) CreateScheduler(ctx context.Context, in models.NewSchedulerInput) (*models.Scheduler, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	for i, tag := range in.Hashtags {
		in.Hashtags[i] = shared.NormalizeHashtag(tag)
	}

	var created models.Scheduler
	if err := c.doRequest(ctx, http.MethodPost, "/api/management/schedulers", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateScheduler replaces a scheduler definition. The response supersedes any local copy.
func (c *Client) UpdateScheduler(ctx context.Context, id string, in models.NewSchedulerInput) (*models.Scheduler, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var updated models.Scheduler
	endpoint := fmt.Sprintf("/api/management/schedulers/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPut, endpoint, in, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteScheduler removes a scheduler definition.
func (c *Client) DeleteScheduler(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/management/schedulers/%s", url.PathEscape(id))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// RunScheduler triggers a scheduler run immediately.
func (c *Client) RunScheduler(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("/api/management/schedulers/%s/run", url.PathEscape(id))
	return c.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

// SchedulerRuns lists a scheduler's run history, newest first.
func (c *Client) SchedulerRuns(ctx context.Context, id string, page, pageSize int) (*Paginated[models.SchedulerRun], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
	}

	endpoint := fmt.Sprintf("/api/management/schedulers/%s/runs", url.PathEscape(id))
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var resp Paginated[models.SchedulerRun]
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RunHistory lists run records across all schedulers, newest first.
func (c *Client) RunHistory(ctx context.Context, page, pageSize int) (*Paginated[models.SchedulerRun], error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	if pageSize > 0 {
		q.Set("page_size", fmt.Sprintf("%d", pageSize))
	}

	endpoint := "/api/management/runs"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var resp Paginated[models.SchedulerRun]
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
