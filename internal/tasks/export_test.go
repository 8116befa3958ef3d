package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blossomlabs/blossom-cli/internal/formatter"
	"github.com/blossomlabs/blossom-cli/internal/models"
)

func exportFixtures() *mockClassFetcher {
	return &mockClassFetcher{
		hooks: map[string]*models.HookClass{
			"hc_1": {
				ID:            "hc_1",
				Name:          "Question Hook",
				Technique:     "open_question",
				AvgViews:      1_200_000,
				AvgEngagement: 4.7,
				VideoCount:    42,
			},
			"hc_2": {
				ID:         "hc_2",
				Name:       "Bold Claim",
				Technique:  "bold_claim",
				VideoCount: 7,
			},
		},
		formats: map[string]*models.FormatClass{
			"fc_1": {
				ID:         "fc_1",
				Name:       "Talking Head",
				VideoCount: 12,
			},
		},
		videos: map[string][]models.TrendingPost{
			"hc_1": {
				{ID: "post1", Platform: "tiktok", Author: "creator_one", Views: 1_299_000},
			},
		},
	}
}

func readManifest(t *testing.T, path string) formatter.ExportManifest {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	var manifest formatter.ExportManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("manifest is not valid JSON: %v", err)
	}
	return manifest
}

func TestDashboardEngine_ExportReports(t *testing.T) {
	t.Run("JSON Export", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewDashboardEngine(exportFixtures(), nil)

		result, err := engine.ExportReports(context.Background(), nil, []string{"hc_1", "hc_2"}, ExportOpts{
			Format:    "json",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}

		if result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("expected 2 successes, got %+v", result)
		}
		for _, id := range []string{"hc_1", "hc_2"} {
			if _, err := os.Stat(filepath.Join(dir, id+".json")); err != nil {
				t.Errorf("expected %s.json to exist: %v", id, err)
			}
		}

		manifest := readManifest(t, result.ManifestPath)
		if manifest.TotalReports != 2 || manifest.Successful != 2 {
			t.Errorf("unexpected manifest: %+v", manifest)
		}
	})

	t.Run("CSV Export Includes Example Posts", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewDashboardEngine(exportFixtures(), nil)

		result, err := engine.ExportReports(context.Background(), nil, []string{"hc_1"}, ExportOpts{
			Format:    "csv",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Fatalf("expected success, got %+v", result.Results)
		}

		content, err := os.ReadFile(filepath.Join(dir, "hc_1_posts.csv"))
		if err != nil {
			t.Fatalf("failed to read posts CSV: %v", err)
		}
		if !strings.Contains(string(content), "creator_one") {
			t.Errorf("CSV missing example post row, got: %s", content)
		}
	})

	t.Run("Markdown Export", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewDashboardEngine(exportFixtures(), nil)

		result, err := engine.ExportReports(context.Background(), nil, []string{"hc_1"}, ExportOpts{
			Format:    "markdown",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Fatalf("expected success, got %+v", result.Results)
		}

		if _, err := os.Stat(filepath.Join(dir, "hc_1", "README.md")); err != nil {
			t.Errorf("expected per-class README: %v", err)
		}
	})

	t.Run("Format Classes", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewDashboardEngine(exportFixtures(), nil)

		result, err := engine.ExportReports(context.Background(), nil, []string{"fc_1"}, ExportOpts{
			Kind:      "format",
			Format:    "txt",
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Fatalf("expected success, got %+v", result.Results)
		}
		if _, err := os.Stat(filepath.Join(dir, "fc_1_report.txt")); err != nil {
			t.Errorf("expected text report: %v", err)
		}
	})

	t.Run("Missing Class Counts As Failure", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewDashboardEngine(exportFixtures(), nil)

		result, err := engine.ExportReports(context.Background(), nil, []string{"hc_1", "missing"}, ExportOpts{
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("expected one success and one failure, got %+v", result)
		}

		manifest := readManifest(t, result.ManifestPath)
		var failed *formatter.ManifestEntry
		for i := range manifest.Entries {
			if !manifest.Entries[i].Success {
				failed = &manifest.Entries[i]
			}
		}
		if failed == nil || failed.Error == "" {
			t.Errorf("expected failing manifest entry with error, got %+v", manifest.Entries)
		}
	})

	t.Run("Video Fetch Failure Still Exports", func(t *testing.T) {
		dir := t.TempDir()
		fetcher := exportFixtures()
		fetcher.videosErr = errors.New("videos unavailable")
		engine := NewDashboardEngine(fetcher, nil)

		result, err := engine.ExportReports(context.Background(), nil, []string{"hc_1"}, ExportOpts{
			OutputDir: dir,
		})
		if err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}
		if result.SuccessfulExports != 1 {
			t.Errorf("expected report without examples to still succeed, got %+v", result.Results)
		}
	})

	t.Run("Nil Class Client", func(t *testing.T) {
		engine := NewDashboardEngine(nil, nil)
		if _, err := engine.ExportReports(context.Background(), nil, []string{"hc_1"}, ExportOpts{}); err == nil {
			t.Error("expected error for nil class client")
		}
	})

	t.Run("Progress Updates Reported", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewDashboardEngine(exportFixtures(), nil)

		progress := make(chan ProgressUpdate, 64)
		if _, err := engine.ExportReports(context.Background(), progress, []string{"hc_1", "hc_2"}, ExportOpts{
			OutputDir: dir,
		}); err != nil {
			t.Fatalf("ExportReports failed: %v", err)
		}
		close(progress)

		sawExport := false
		for update := range progress {
			if update.Phase == ExportReport {
				sawExport = true
			}
		}
		if !sawExport {
			t.Error("expected at least one export-phase progress update")
		}
	})
}
