// Social area client: linked platform accounts and the OAuth connect flow.
//
// Token exchange happens server-side; the client only opens the provider's
// authorization URL and reports the callback code back to the backend.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// SocialAccounts lists the caller's linked social accounts.
func (c *Client) SocialAccounts(ctx context.Context) ([]models.SocialAccount, error) {
	var resp struct {
		Accounts []models.SocialAccount `json:"accounts"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/social/accounts", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Accounts, nil
}

// ConnectStart asks the backend to begin an OAuth link for platform, returning the
// provider-hosted authorization URL to open in a browser.
func (c *Client) ConnectStart(ctx context.Context, platform, redirectURI, state string) (string, error) {
	if platform == "" {
		return "", fmt.Errorf("%w: platform is required", shared.ErrMissingArgument)
	}

	body := map[string]string{
		"platform":     platform,
		"redirect_uri": redirectURI,
		"state":        state,
	}

	var resp struct {
		AuthorizeURL string `json:"authorize_url"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/api/social/connect", body, &resp); err != nil {
		return "", err
	}

	if resp.AuthorizeURL == "" {
		return "", fmt.Errorf("%w: backend returned no authorization URL", shared.ErrAPIRequest)
	}
	return resp.AuthorizeURL, nil
}

// ConnectComplete forwards the authorization code from the local callback to the
// backend, which performs the token exchange and returns the linked account.
func (c *Client) ConnectComplete(ctx context.Context, platform, code, state string) (*models.SocialAccount, error) {
	body := map[string]string{
		"platform": platform,
		"code":     code,
		"state":    state,
	}

	var account models.SocialAccount
	if err := c.doRequest(ctx, http.MethodPost, "/api/social/connect/complete", body, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Disconnect unlinks a social account.
func (c *Client) Disconnect(ctx context.Context, accountID string) error {
	endpoint := fmt.Sprintf("/api/social/accounts/%s", url.PathEscape(accountID))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}
