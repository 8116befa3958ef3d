// Analysis area client: hook and format taxonomies and their AI class analyses.
//
// Paths under /api/analysis/*
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// ClassListOptions controls hook/format listing.
type ClassListOptions struct {
	Page     int
	PageSize int
	Sort     string // avg_views | avg_engagement | name
}

func (o ClassListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", fmt.Sprintf("%d", o.PageSize))
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// HookClasses lists the viral-hook taxonomy.
func (c *Client) HookClasses(ctx context.Context, opts ClassListOptions) (*Paginated[models.HookClass], error) {
	var resp Paginated[models.HookClass]
	if err := c.doRequest(ctx, http.MethodGet, "/api/analysis/hooks"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// HookClass retrieves a single hook class with its analysis, if generated.
func (c *Client) HookClass(ctx context.Context, id string) (*models.HookClass, error) {
	var class models.HookClass
	endpoint := fmt.Sprintf("/api/analysis/hooks/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// AnalyzeHookClass triggers backend AI analysis for a hook class.
//
// The response replaces the caller's local copy; there is no partial merge.
func (c *Client) AnalyzeHookClass(ctx context.Context, id string) (*models.HookClass, error) {
	var class models.HookClass
	endpoint := fmt.Sprintf("/api/analysis/hooks/%s/analyze", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// HookClassVideos lists the videos classified under a hook class.
func (c *Client) HookClassVideos(ctx context.Context, id string, opts ClassListOptions) (*Paginated[models.TrendingPost], error) {
	var resp Paginated[models.TrendingPost]
	endpoint := fmt.Sprintf("/api/analysis/hooks/%s/videos%s", url.PathEscape(id), opts.query())
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FormatClasses lists the format taxonomy.
func (c *Client) FormatClasses(ctx context.Context, opts ClassListOptions) (*Paginated[models.FormatClass], error) {
	var resp Paginated[models.FormatClass]
	if err := c.doRequest(ctx, http.MethodGet, "/api/analysis/formats"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FormatClass retrieves a single format class.
func (c *Client) FormatClass(ctx context.Context, id string) (*models.FormatClass, error) {
	var class models.FormatClass
	endpoint := fmt.Sprintf("/api/analysis/formats/%s", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}

// AnalyzeFormatClass triggers backend AI analysis for a format class.
func (c *Client) AnalyzeFormatClass(ctx context.Context, id string) (*models.FormatClass, error) {
	var class models.FormatClass
	endpoint := fmt.Sprintf("/api/analysis/formats/%s/analyze", url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &class); err != nil {
		return nil, err
	}
	return &class, nil
}
