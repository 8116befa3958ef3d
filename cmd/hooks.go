package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/repositories"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/blossomlabs/blossom-cli/internal/tasks"
	"github.com/urfave/cli/v3"
)

// HooksList lists hook classes with pagination.
func (r *Runner) HooksList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	opts := services.ClassListOptions{
		Page:     cmd.Int("page"),
		PageSize: cmd.Int("page-size"),
		Sort:     cmd.String("sort"),
	}

	r.logger.Info("listing hook classes", "page", opts.Page)

	page, err := r.client.HookClasses(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.cacheClasses("hook", page.Items)

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d hook classes (page %d/%d):\n\n", page.Total, page.Page, page.PageOf().TotalPages())
	for i, class := range page.Items {
		r.writeClassRow(i+1, class.Name, class.Technique, class.AvgViews, class.VideoCount, class.ID, class.Analysis != nil)
	}

	return nil
}

// HooksShow displays a single hook class with its analysis.
func (r *Runner) HooksShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: class id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	class, err := r.client.HookClass(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.cacheClasses("hook", []models.HookClass{*class})

	if cmd.Bool("json") {
		return r.writeJSON(class, cmd.Bool("pretty"))
	}

	return r.writeClassDetail("Hook Class", class.Name, class.Technique, class.AvgViews, class.AvgEngagement, class.VideoCount, class.Analysis)
}

// HooksAnalyze triggers AI analysis for a hook class and prints the refreshed class.
func (r *Runner) HooksAnalyze(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: class id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("triggering analysis", "class", id)

	class, err := r.client.AnalyzeHookClass(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.cacheClasses("hook", []models.HookClass{*class})

	if cmd.Bool("json") {
		return r.writeJSON(class, cmd.Bool("pretty"))
	}

	r.writePlain("✓ Analysis complete for %s\n\n", class.Name)
	return r.writeClassDetail("Hook Class", class.Name, class.Technique, class.AvgViews, class.AvgEngagement, class.VideoCount, class.Analysis)
}

// HooksExport bulk-exports hook class reports with a worker pool.
func (r *Runner) HooksExport(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	ids := splitList(cmd.String("ids"))
	if len(ids) == 0 {
		page, err := r.client.HookClasses(ctx, services.ClassListOptions{PageSize: 100})
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		for _, class := range page.Items {
			ids = append(ids, class.ID)
		}
	}

	if len(ids) == 0 {
		return r.writePlain("No hook classes to export\n")
	}

	opts := tasks.ExportOpts{
		Kind:       "hook",
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	}

	progress := make(chan tasks.ProgressUpdate, len(ids)*4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.ExportReports(ctx, progress, ids, opts)
	close(progress)
	<-done

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d/%d reports to %s", result.SuccessfulExports, result.TotalReports, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("⚠ %d reports failed; see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

// FormatsList lists format classes with pagination.
func (r *Runner) FormatsList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	opts := services.ClassListOptions{
		Page:     cmd.Int("page"),
		PageSize: cmd.Int("page-size"),
		Sort:     cmd.String("sort"),
	}

	page, err := r.client.FormatClasses(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d format classes (page %d/%d):\n\n", page.Total, page.Page, page.PageOf().TotalPages())
	for i, class := range page.Items {
		r.writeClassRow(i+1, class.Name, class.Technique, class.AvgViews, class.VideoCount, class.ID, class.Analysis != nil)
	}

	return nil
}

// FormatsShow displays a single format class.
func (r *Runner) FormatsShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: class id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	class, err := r.client.FormatClass(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(class, cmd.Bool("pretty"))
	}

	return r.writeClassDetail("Format Class", class.Name, class.Technique, class.AvgViews, class.AvgEngagement, class.VideoCount, class.Analysis)
}

// FormatsAnalyze triggers AI analysis for a format class.
func (r *Runner) FormatsAnalyze(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: class id is required", shared.ErrMissingArgument)
	}

	if _, err := r.requireSession(); err != nil {
		return err
	}

	class, err := r.client.AnalyzeFormatClass(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(class, cmd.Bool("pretty"))
	}

	r.writePlain("✓ Analysis complete for %s\n\n", class.Name)
	return r.writeClassDetail("Format Class", class.Name, class.Technique, class.AvgViews, class.AvgEngagement, class.VideoCount, class.Analysis)
}

// cacheClasses writes fetched classes to the local render cache, best effort.
// The cache is never authoritative; every successful fetch replaces it.
func (r *Runner) cacheClasses(kind string, classes []models.HookClass) {
	db, err := r.database()
	if err != nil {
		r.logger.Debug("cache unavailable", "error", err)
		return
	}

	adapter := repositories.NewClassCacheAdapter(repositories.NewClassRepository(db))
	for _, class := range classes {
		if err := adapter.CacheClass(kind, class); err != nil {
			r.logger.Debug("failed to cache class", "class", class.ID, "error", err)
		}
	}
}

func (r *Runner) writeClassRow(n int, name, technique string, avgViews float64, videoCount int, id string, analyzed bool) {
	r.writePlain("%d. %s\n", n, name)
	if technique != "" {
		r.writePlain("   Technique: %s\n", technique)
	}
	r.writePlain("   Videos: %d, Avg views: %s\n", videoCount, shared.FormatCount(int64(avgViews)))
	r.writePlain("   ID: %s\n", id)
	if analyzed {
		r.writePlain("   Analysis: ✓\n")
	}
	r.writePlain("\n")
}

func (r *Runner) writeClassDetail(kind, name, technique string, avgViews, avgEngagement float64, videoCount int, analysis *models.ClassAnalysis) error {
	r.writePlainHeader(fmt.Sprintf("%s: %s", kind, name))
	if technique != "" {
		r.writePlain("Technique: %s\n", technique)
	}
	r.writePlain("Videos: %d\n", videoCount)
	r.writePlain("Avg views: %s\n", shared.FormatCount(int64(avgViews)))
	r.writePlain("Avg engagement: %.2f%%\n", avgEngagement)

	if analysis == nil {
		r.writePlain("\nNo analysis yet. Run the analyze command to generate one.\n")
		return nil
	}

	r.writePlainln("Blueprint:")
	r.writePlain("%s\n", analysis.Blueprint)
	if len(analysis.Tactics) > 0 {
		r.writePlainln("Tactics:")
		for _, tactic := range analysis.Tactics {
			r.writePlain("  - %s\n", tactic)
		}
	}
	if len(analysis.WhenToUse) > 0 {
		r.writePlainln("When to use:")
		for _, when := range analysis.WhenToUse {
			r.writePlain("  - %s\n", when)
		}
	}
	return nil
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
