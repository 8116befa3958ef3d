package main

import (
	"context"
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/stream"
	"github.com/blossomlabs/blossom-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// DiscoveryHashtags lists the hashtags under discovery tracking.
func (r *Runner) DiscoveryHashtags(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	hashtags, err := r.client.TrackedHashtags(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(hashtags, cmd.Bool("pretty"))
	}

	r.writePlain("Tracking %d hashtags:\n\n", len(hashtags))
	for i, tag := range hashtags {
		status := "paused"
		if tag.Active {
			status = "active"
		}
		r.writePlain("%d. #%s (%s posts, %s)\n", i+1, tag.Tag, shared.FormatCount(tag.PostCount), status)
		r.writePlain("   ID: %s\n", tag.ID)
	}

	return nil
}

// DiscoveryTrack adds a hashtag to discovery tracking.
func (r *Runner) DiscoveryTrack(ctx context.Context, cmd *cli.Command) error {
	tag := shared.NormalizeHashtag(cmd.StringArg("tag"))
	if tag == "" {
		return fmt.Errorf("%w: hashtag is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	tracked, err := r.client.TrackHashtag(ctx, tag)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Info("hashtag tracked", "tag", tracked.Tag)
	return r.writePlain("✓ Now tracking #%s (id %s)\n", tracked.Tag, tracked.ID)
}

// DiscoveryUntrack removes a hashtag from discovery tracking.
func (r *Runner) DiscoveryUntrack(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: hashtag id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.client.UntrackHashtag(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Stopped tracking hashtag %s\n", id)
}

// DiscoveryRun triggers a manual discovery run. The backend sequences concurrent
// triggers; this command returns as soon as the run is accepted.
func (r *Runner) DiscoveryRun(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.client.RunDiscovery(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("✓ Discovery run started\n")
	r.writePlain("Use 'blossom discovery watch' to follow progress\n")
	return nil
}

// DiscoveryWatch streams live discovery progress to the terminal.
//
// One subscription per invocation. The watch ends when the stream closes, the
// timeout elapses, or the last active run reaches a terminal frame.
func (r *Runner) DiscoveryWatch(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	if timeout := cmd.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	streamURL := r.client.ProgressStreamURL(r.config.API.ProgressPath)
	subscriber := stream.NewSubscriber(streamURL, r.httpClient, r.logger)
	defer subscriber.Close()

	frames, err := subscriber.Open(ctx)
	if err != nil {
		r.logger.Warn("progress stream unavailable, polling run history instead", "error", err)
		return r.pollRuns(ctx)
	}

	r.writePlain("→ Watching discovery progress (ctrl+c to stop)...\n\n")

	tracker := stream.NewTracker()
	sawRun := false

	for {
		select {
		case <-ctx.Done():
			r.writePlain("\n✓ Watch stopped\n")
			return nil
		case frame, ok := <-frames:
			if !ok {
				r.writePlain("\n✓ Progress stream closed\n")
				return nil
			}

			effect := tracker.Apply(frame)
			r.writeFrame(frame, effect)

			if tracker.ActiveCount() > 0 {
				sawRun = true
			}
			if sawRun && tracker.ActiveCount() == 0 {
				r.writePlain("\n✓ All runs finished\n")
				return nil
			}
		}
	}
}

// pollRuns is the fallback when the live stream cannot be opened: re-fetch the
// newest run record on a fixed interval until the context ends.
func (r *Runner) pollRuns(ctx context.Context) error {
	r.writePlain("→ Polling run history (ctrl+c to stop)...\n\n")

	var lastID, lastStatus string
	refresh := func(ctx context.Context) error {
		page, err := r.client.RunHistory(ctx, 1, 1)
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			return nil
		}
		run := page.Items[0]
		if run.ID == lastID && run.Status == lastStatus {
			return nil
		}
		lastID, lastStatus = run.ID, run.Status
		r.writeRunRow(1, run)
		return nil
	}

	interval := time.Duration(r.config.Refresh.Interval) * time.Second
	poller := tasks.NewPoller(interval, refresh, r.logger)
	poller.Run(ctx)

	r.writePlain("\n✓ Watch stopped\n")
	return nil
}

// writeFrame prints a single progress frame as one terminal line.
func (r *Runner) writeFrame(frame *models.DiscoveryProgress, effect stream.Effect) {
	label := "manual"
	if frame.Type == models.RunTypeScheduler {
		label = fmt.Sprintf("scheduler %s", frame.SchedulerID)
	}

	switch frame.Phase {
	case models.PhaseCompleted:
		r.writePlain("[%s] ✓ completed (%d/%d hashtags)\n", label, frame.Done, frame.Total)
	case models.PhaseError:
		r.writePlain("[%s] ✗ error: %s\n", label, frame.Error)
	default:
		line := fmt.Sprintf("[%s] %s %d/%d", label, frame.Phase, frame.Done, frame.Total)
		if frame.CurrentHashtag != "" {
			line += fmt.Sprintf(" #%s", frame.CurrentHashtag)
		}
		if frame.Total > 0 {
			line += fmt.Sprintf(" (%d%%)", shared.Percent(frame.Done, frame.Total))
		}
		r.writePlain("%s\n", line)
	}

	if effect.Reload {
		r.logger.Debug("run finished, backend state refreshed on next fetch")
	}
}

// DiscoveryRuns shows run history across schedulers.
func (r *Runner) DiscoveryRuns(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	page, err := r.client.RunHistory(ctx, cmd.Int("page"), cmd.Int("page-size"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d runs (page %d/%d):\n\n", page.Total, page.Page, page.PageOf().TotalPages())
	for i, run := range page.Items {
		r.writeRunRow(i+1, run)
	}

	return nil
}

// SchedulersList lists discovery schedulers.
func (r *Runner) SchedulersList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	schedulers, err := r.client.Schedulers(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(schedulers, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d schedulers:\n\n", len(schedulers))
	for i, s := range schedulers {
		status := "paused"
		if s.Active {
			status = "active"
		}
		r.writePlain("%d. %s (%s, %s)\n", i+1, s.Name, s.Frequency, status)
		r.writePlain("   Hashtags: %v\n", s.Hashtags)
		if s.NextRunAt != "" {
			r.writePlain("   Next run: %s\n", s.NextRunAt)
		}
		r.writePlain("   ID: %s\n", s.ID)
		r.writePlain("\n")
	}

	return nil
}

// SchedulersShow displays a scheduler and its recent runs.
func (r *Runner) SchedulersShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scheduler id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	scheduler, err := r.client.Scheduler(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	runs, err := r.client.SchedulerRuns(ctx, id, 1, 10)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"scheduler": scheduler, "runs": runs}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Scheduler: %s", scheduler.Name))
	r.writePlain("Frequency: %s\n", scheduler.Frequency)
	r.writePlain("Hashtags: %v\n", scheduler.Hashtags)
	if scheduler.Active {
		r.writePlain("Status: active\n")
	} else {
		r.writePlain("Status: paused\n")
	}
	if scheduler.LastRunAt != "" {
		r.writePlain("Last run: %s\n", scheduler.LastRunAt)
	}
	if scheduler.NextRunAt != "" {
		r.writePlain("Next run: %s\n", scheduler.NextRunAt)
	}

	r.writePlainln("Recent runs:")
	for i, run := range runs.Items {
		r.writeRunRow(i+1, run)
	}

	return nil
}

// SchedulersCreate creates a discovery scheduler.
func (r *Runner) SchedulersCreate(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	in := schedulerInput(cmd)
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	scheduler, err := r.client.CreateScheduler(ctx, in)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Info("scheduler created", "id", scheduler.ID)
	return r.writePlain("✓ Scheduler %s created (id %s)\n", scheduler.Name, scheduler.ID)
}

// SchedulersUpdate updates a discovery scheduler.
func (r *Runner) SchedulersUpdate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scheduler id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	in := schedulerInput(cmd)
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	scheduler, err := r.client.UpdateScheduler(ctx, id, in)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Scheduler %s updated\n", scheduler.Name)
}

// SchedulersDelete deletes a discovery scheduler.
func (r *Runner) SchedulersDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scheduler id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.client.DeleteScheduler(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writePlain("✓ Scheduler %s deleted\n", id)
}

// SchedulersRun triggers a scheduler run immediately.
func (r *Runner) SchedulersRun(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: scheduler id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	if err := r.client.RunScheduler(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("✓ Run triggered for scheduler %s\n", id)
	r.writePlain("Use 'blossom discovery watch' to follow progress\n")
	return nil
}

func schedulerInput(cmd *cli.Command) models.NewSchedulerInput {
	hashtags := splitList(cmd.String("hashtags"))
	for i, tag := range hashtags {
		hashtags[i] = shared.NormalizeHashtag(tag)
	}
	return models.NewSchedulerInput{
		Name:        cmd.String("name"),
		Frequency:   cmd.String("frequency"),
		Hashtags:    hashtags,
		PostActions: splitList(cmd.String("post-actions")),
		Active:      cmd.Bool("active"),
	}
}

func (r *Runner) writeRunRow(n int, run models.SchedulerRun) {
	r.writePlain("%d. %s [%s]\n", n, run.ID, run.Status)
	if run.StartedAt != "" {
		r.writePlain("   Started: %s\n", run.StartedAt)
	}
	r.writePlain("   Posts found: %d\n", run.PostsFound)
	for _, tag := range run.Hashtags {
		if tag.Error != "" {
			r.writePlain("   #%s: %s (%s)\n", tag.Tag, tag.Status, tag.Error)
		} else {
			r.writePlain("   #%s: %d posts\n", tag.Tag, tag.PostsFound)
		}
	}
	r.writePlain("\n")
}
