package main

import (
	"context"
	"fmt"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/urfave/cli/v3"
)

// OnboardingStatus shows the caller's onboarding checklist.
func (r *Runner) OnboardingStatus(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	status, err := r.client.OnboardingStatus(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	r.writeOnboarding(status)
	return nil
}

// OnboardingComplete marks a checklist step done.
func (r *Runner) OnboardingComplete(ctx context.Context, cmd *cli.Command) error {
	step := cmd.StringArg("step")
	if step == "" {
		return fmt.Errorf("%w: step name is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	status, err := r.client.CompleteOnboardingStep(ctx, step)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, cmd.Bool("pretty"))
	}

	r.writePlainln("✓ Completed step: %s", step)
	r.writePlain("\n")
	r.writeOnboarding(status)
	return nil
}

func (r *Runner) writeOnboarding(status *models.OnboardingStatus) {
	if status.Completed {
		r.writePlainln("Onboarding complete 🎉")
		return
	}

	r.writePlainHeader("Onboarding")
	pending := map[string]bool{}
	for _, step := range status.Pending {
		pending[step] = true
	}
	for _, step := range status.Steps {
		mark := "✓"
		if pending[step] {
			mark = " "
		}
		r.writePlain("[%s] %s\n", mark, step)
	}
	r.writePlain("\n%d step(s) remaining\n", len(status.Pending))
}
