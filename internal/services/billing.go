// Billing area client under /api/billing/*.
//
// Checkout itself happens on the processor's hosted page; the client only fetches
// plans, opens the checkout URL, and proxies cancel/resume calls.
package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// Plans lists the available subscription plans.
func (c *Client) Plans(ctx context.Context) ([]models.Plan, error) {
	var resp struct {
		Plans []models.Plan `json:"plans"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/api/billing/plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// CurrentSubscription fetches the caller's billing state.
func (c *Client) CurrentSubscription(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.doRequest(ctx, http.MethodGet, "/api/billing/subscription", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CheckoutURL asks the backend for a processor-hosted checkout URL for the plan.
func (c *Client) CheckoutURL(ctx context.Context, planSlug string) (string, error) {
	if planSlug == "" {
		return "", fmt.Errorf("%w: plan slug is required", shared.ErrMissingArgument)
	}

	body := map[string]string{"plan": planSlug}
	var resp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := c.doRequest(ctx, http.MethodPost, "/api/billing/checkout", body, &resp); err != nil {
		return "", err
	}

	if resp.CheckoutURL == "" {
		return "", fmt.Errorf("%w: backend returned no checkout URL", shared.ErrAPIRequest)
	}
	return resp.CheckoutURL, nil
}

// CancelSubscription requests cancellation at period end and returns the new state.
func (c *Client) CancelSubscription(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.doRequest(ctx, http.MethodPost, "/api/billing/cancel", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ResumeSubscription reverses a pending cancellation and returns the new state.
func (c *Client) ResumeSubscription(ctx context.Context) (*models.Subscription, error) {
	var sub models.Subscription
	if err := c.doRequest(ctx, http.MethodPost, "/api/billing/resume", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}
