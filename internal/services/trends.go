// Trends area client: trending posts and hashtags under /api/trends/*.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// TrendOptions filters trending listings.
type TrendOptions struct {
	Hashtag  string
	Platform string
	Page     int
	PageSize int
}

func (o TrendOptions) query() string {
	q := url.Values{}
	if o.Hashtag != "" {
		q.Set("hashtag", o.Hashtag)
	}
	if o.Platform != "" {
		q.Set("platform", o.Platform)
	}
	if o.Page > 0 {
		q.Set("page", fmt.Sprintf("%d", o.Page))
	}
	if o.PageSize > 0 {
		q.Set("page_size", fmt.Sprintf("%d", o.PageSize))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// TrendingPosts lists trending posts with optional hashtag/platform filters.
func (c *Client) TrendingPosts(ctx context.Context, opts TrendOptions) (*Paginated[models.TrendingPost], error) {
	var resp Paginated[models.TrendingPost]
	if err := c.doRequest(ctx, http.MethodGet, "/api/trends/posts"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TrendingHashtags lists hashtags ranked by recent momentum.
func (c *Client) TrendingHashtags(ctx context.Context, opts TrendOptions) ([]models.TrackedHashtag, error) {
	var resp struct {
		Hashtags []models.TrackedHashtag `json:"hashtags"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/trends/hashtags"+opts.query(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Hashtags, nil
}
