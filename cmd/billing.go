package main

import (
	"context"
	"fmt"

	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// BillingPlans lists the plans the backend offers.
func (r *Runner) BillingPlans(ctx context.Context, cmd *cli.Command) error {
	plans, err := r.client.Plans(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(plans, cmd.Bool("pretty"))
	}

	r.writePlain("Available plans:\n\n")
	for i, plan := range plans {
		r.writePlain("%d. %s (%s)\n", i+1, plan.Name, plan.Slug)
		r.writePlain("   %.2f %s / %s\n", float64(plan.PriceCents)/100, plan.Currency, plan.Interval)
		if plan.HashtagLimit > 0 {
			r.writePlain("   Up to %d tracked hashtags\n", plan.HashtagLimit)
		}
		for _, feature := range plan.Features {
			r.writePlain("   - %s\n", feature)
		}
		r.writePlain("\n")
	}

	return nil
}

// BillingSubscription shows the caller's current subscription.
func (r *Runner) BillingSubscription(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	sub, err := r.client.CurrentSubscription(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(sub, cmd.Bool("pretty"))
	}

	r.writePlain("Plan: %s\n", sub.PlanSlug)
	r.writePlain("Status: %s\n", sub.Status)
	if sub.RenewsAt != "" {
		r.writePlain("Renews: %s\n", sub.RenewsAt)
	}
	if sub.CanceledAt != "" {
		r.writePlain("Cancelled: %s\n", sub.CanceledAt)
	}
	return nil
}

// BillingCheckout opens the hosted checkout page for a plan.
//
// Payment happens entirely on the backend's checkout host; the CLI only opens
// the URL it hands back.
func (r *Runner) BillingCheckout(ctx context.Context, cmd *cli.Command) error {
	plan := cmd.StringArg("plan")
	if plan == "" {
		return fmt.Errorf("%w: plan slug is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	checkoutURL, err := r.client.CheckoutURL(ctx, plan)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("→ Opening checkout for %s...\n", plan)
	if err := shared.OpenBrowser(checkoutURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlain("Please open this URL in your browser:\n%s\n", checkoutURL)
	}

	return nil
}

// BillingCancel cancels the current subscription.
func (r *Runner) BillingCancel(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	sub, err := r.client.CancelSubscription(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("✓ Subscription cancelled\n")
	if sub.RenewsAt != "" {
		r.writePlain("Access continues until %s\n", sub.RenewsAt)
	}
	return nil
}

// BillingResume resumes a cancelled subscription.
func (r *Runner) BillingResume(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	sub, err := r.client.ResumeSubscription(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Subscription resumed (%s)\n", sub.Status)
}
