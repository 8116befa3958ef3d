package tasks

import (
	"context"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/charmbracelet/log"
)

// Poller invokes a refresh function on a fixed interval until its context is
// cancelled. The dashboard uses it to keep list views current between pushes.
type Poller struct {
	interval time.Duration
	refresh  func(ctx context.Context) error
	logger   *log.Logger
}

// NewPoller creates a Poller. A non-positive interval defaults to 30 seconds.
func NewPoller(interval time.Duration, refresh func(ctx context.Context) error, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Poller{
		interval: interval,
		refresh:  refresh,
		logger:   logger,
	}
}

// Interval returns the configured refresh interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run blocks, invoking the refresh function every interval until ctx is done.
// Refresh errors are logged and the loop continues; only cancellation stops it.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				p.logger.Warn("refresh failed", "error", err)
			}
		}
	}
}
