package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Dump fetches the full dashboard state across every endpoint in one pass.
//
// Failures are collected per endpoint instead of aborting, so a partially
// degraded backend still yields a usable snapshot.
func (r *Runner) Dump(ctx context.Context, cmd *cli.Command) error {
	pretty := cmd.Bool("pretty")
	save := cmd.Bool("save")

	if _, err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("dumping dashboard state")
	r.writePlain("Fetching dashboard state...\n\n")

	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("  %s\n", update.Message)
		}
	}()

	result, err := r.engine.Dump(ctx, progress)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("dump failed: %w", err)
	}

	dump := result.Data()

	r.writePlain("\n✓ Dump complete")
	if len(result.Errors) > 0 {
		r.writePlain(" (%d endpoints failed)", len(result.Errors))
	}
	r.writePlain("\n\n")

	if save {
		saveFile := "blossom_dump.json"
		data, err := shared.MarshalJSON(dump, true)
		if err != nil {
			return fmt.Errorf("failed to marshal dump: %w", err)
		}
		if err := os.WriteFile(saveFile, data, 0644); err != nil {
			r.logger.Warn("failed to save dump", "error", err)
		} else {
			r.logger.Info("dump saved", "file", saveFile)
			r.writePlain("✓ Dump saved to %s\n\n", saveFile)
		}
	}

	return r.writeJSON(dump, pretty)
}
