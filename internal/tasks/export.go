package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/formatter"
	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/services"
	"github.com/blossomlabs/blossom-cli/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for bulk class report exports.
type ExportOpts struct {
	Kind        string  // Class kind: hook (default) or format
	Format      string  // Export format: json, csv, markdown, txt
	OutputDir   string  // Base output directory (default: blossom_export_{epoch})
	NumWorkers  int     // Concurrent workers (default: 5)
	RateLimit   float64 // Requests per second (default: 5)
	ExampleSize int     // Example posts fetched per class (default: 20)
}

// ReportExportJob pairs a class ID with its fetched report.
type ReportExportJob struct {
	ClassID string
	Report  *models.ClassReport
}

// ReportExportResult records the outcome of exporting a single class report.
type ReportExportResult struct {
	ClassID   string
	ClassName string
	Success   bool
	Files     []string
	Error     error
}

// ExportReportsResult summarizes a bulk report export.
type ExportReportsResult struct {
	TotalReports      int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ReportExportResult
}

// ExportReports exports multiple class reports concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern to efficiently export multiple reports.
// It respects API rate limits, handles partial failures gracefully, and generates a
// manifest file summarizing the export results.
func (e *DashboardEngine) ExportReports(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts ExportOpts,
) (*ExportReportsResult, error) {
	if e.classes == nil {
		return nil, fmt.Errorf("%w: class client not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Kind == "" {
		opts.Kind = "hook"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("blossom_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.ExampleSize <= 0 {
		opts.ExampleSize = 20
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportReportsResult{
		TotalReports:    len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ReportExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ReportExportJob, len(ids))
	results := make(chan ReportExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		e.sendProgress(prog, fetchingClassesUpdate(1, len(ids)))
		for i, classID := range ids {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			report, err := e.fetchReport(ctx, classID, opts)
			if err != nil {
				results <- ReportExportResult{
					ClassID:   classID,
					ClassName: fmt.Sprintf("Unknown (%s)", classID),
					Success:   false,
					Error:     fmt.Errorf("failed to fetch class: %w", err),
				}
				continue
			}

			jobs <- ReportExportJob{
				ClassID: classID,
				Report:  report,
			}

			e.sendProgress(prog, exportingReportUpdate(i+1, len(ids), report.Name))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(
				completed,
				len(ids),
				res.ClassName,
				len(res.Files),
			))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(
				completed,
				len(ids),
				res.ClassName,
				res.Error,
			))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(result.manifest(opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// fetchReport retrieves one class and its example posts.
func (e *DashboardEngine) fetchReport(ctx context.Context, classID string, opts ExportOpts) (*models.ClassReport, error) {
	if opts.Kind == "format" {
		class, err := e.classes.FormatClass(ctx, classID)
		if err != nil {
			return nil, err
		}
		return models.ReportFromFormat(*class, nil), nil
	}

	class, err := e.classes.HookClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	// Example posts are best effort; a report without them is still useful
	var examples []models.TrendingPost
	videos, err := e.classes.HookClassVideos(ctx, classID, services.ClassListOptions{PageSize: opts.ExampleSize})
	if err == nil {
		examples = videos.Items
	}

	return models.ReportFromHook(*class, examples), nil
}

// exportWorker is a worker goroutine that exports reports from the jobs channel.
func (e *DashboardEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ReportExportJob,
	results chan<- ReportExportResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := e.exportSingleReport(job, opts)
		results <- res
	}
}

// exportSingleReport writes a single class report in the requested format.
func (e *DashboardEngine) exportSingleReport(j ReportExportJob, opts ExportOpts) ReportExportResult {
	result := ReportExportResult{
		ClassID:   j.ClassID,
		ClassName: j.Report.Name,
		Success:   false,
		Files:     []string{},
	}

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, j.Report.ID)
		csvRes, err := formatter.WriteCSVExport(j.Report, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.PostsFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, j.Report.ID)
		mdRes, err := formatter.WriteMarkdownExport(j.Report, outputDir)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_report.txt", j.Report.ID))
		written, err := formatter.WriteTextExport(j.Report, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", j.Report.ID))
		data, err := shared.MarshalJSON(j.Report, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}

// manifest converts the run result into the formatter's manifest shape.
func (r *ExportReportsResult) manifest(format string) *formatter.ExportManifest {
	m := &formatter.ExportManifest{
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		Format:          format,
		OutputDirectory: r.OutputDirectory,
		TotalReports:    r.TotalReports,
		Successful:      r.SuccessfulExports,
		Failed:          r.FailedExports,
		Entries:         make([]formatter.ManifestEntry, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		entry := formatter.ManifestEntry{
			ClassID: res.ClassID,
			Name:    res.ClassName,
			Success: res.Success,
			Files:   res.Files,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}

	return m
}
