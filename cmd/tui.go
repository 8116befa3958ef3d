package main

import (
	"context"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/session"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive dashboard.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	sess, err := r.requireSession()
	if err != nil {
		return err
	}

	// The same gates the web dashboard applies, checked up front so the TUI
	// never renders views the backend would reject.
	decision := session.CheckPath(sess, session.PathDashboard)
	if !decision.Allowed {
		switch decision.RedirectTo {
		case session.PathVerifyEmail:
			return fmt.Errorf("%w: verify your email before opening the dashboard", shared.ErrEmailUnverified)
		case session.PathChoosePlan:
			return fmt.Errorf("%w: pick a plan with 'blossom billing plans'", shared.ErrNoActivePlan)
		default:
			return fmt.Errorf("%w: run 'blossom auth login'", shared.ErrNotAuthenticated)
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/blossom-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	streamURL := r.client.ProgressStreamURL(r.config.API.ProgressPath)
	refreshEvery := time.Duration(r.config.Refresh.Interval) * time.Second

	// The stream subscriber holds a long-lived request on this context; cancel
	// it as soon as the program returns so the read goroutine unblocks even
	// when the TUI exits on a path that skips the model's own teardown.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := ui.NewModel(ctx, r.client, sess, streamURL, refreshEvery)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
