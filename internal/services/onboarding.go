// Onboarding area client under /api/onboarding/*.
package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blossomlabs/blossom-cli/internal/models"
)

// OnboardingStatus fetches the caller's onboarding checklist.
func (c *Client) OnboardingStatus(ctx context.Context) (*models.OnboardingStatus, error) {
	var status models.OnboardingStatus
	if err := c.doRequest(ctx, http.MethodGet, "/api/onboarding/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CompleteOnboardingStep marks one checklist step done and returns the updated status.
func (c *Client) CompleteOnboardingStep(ctx context.Context, step string) (*models.OnboardingStatus, error) {
	var status models.OnboardingStatus
	endpoint := fmt.Sprintf("/api/onboarding/steps/%s/complete", url.PathEscape(step))
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
