// package formatter provides functions to export class reports and trend data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/blossomlabs/blossom-cli/internal/models"
	"github.com/blossomlabs/blossom-cli/internal/shared"
)

// ExportToCSV converts a ClassReport's example posts to CSV format with columns:
// ID, Platform, Author, Hashtag, Views, Likes, Comments, Shares, PostedAt
func ExportToCSV(report *models.ClassReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Platform", "Author", "Hashtag", "Views", "Likes", "Comments", "Shares", "PostedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, post := range report.Examples {
		record := []string{
			post.ID,
			post.Platform,
			post.Author,
			post.Hashtag,
			strconv.FormatInt(post.Views, 10),
			strconv.FormatInt(post.Likes, 10),
			strconv.FormatInt(post.Comments, 10),
			strconv.FormatInt(post.Shares, 10),
			post.PostedAt,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ClassReport to Markdown format, including the
// analysis breakdown when present.
func ExportToMarkdown(report *models.ClassReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", report.Name))
	buf.WriteString(fmt.Sprintf("**Kind**: %s class\n", report.Kind))
	if report.Technique != "" {
		buf.WriteString(fmt.Sprintf("**Technique**: %s\n", report.Technique))
	}
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", report.VideoCount))
	buf.WriteString(fmt.Sprintf("**Avg views**: %s\n", shared.FormatCount(int64(report.AvgViews))))
	buf.WriteString(fmt.Sprintf("**Avg engagement**: %.1f%%\n\n", report.AvgEngagement))

	if a := report.Analysis; a != nil {
		buf.WriteString("## Analysis\n\n")
		if a.Blueprint != "" {
			buf.WriteString(fmt.Sprintf("%s\n\n", a.Blueprint))
		}
		if len(a.Tactics) > 0 {
			buf.WriteString("### Tactics\n\n")
			for _, tactic := range a.Tactics {
				buf.WriteString(fmt.Sprintf("- %s\n", tactic))
			}
			buf.WriteString("\n")
		}
		if len(a.WhenToUse) > 0 {
			buf.WriteString("### When to use\n\n")
			for _, use := range a.WhenToUse {
				buf.WriteString(fmt.Sprintf("- %s\n", use))
			}
			buf.WriteString("\n")
		}
	}

	if len(report.Examples) > 0 {
		buf.WriteString("## Example posts\n\n")
		for i, post := range report.Examples {
			buf.WriteString(fmt.Sprintf("%d. @%s on %s (#%s) [%s views]\n",
				i+1, post.Author, post.Platform, post.Hashtag, shared.FormatCount(post.Views)))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ClassReport to plain text format
func ExportToText(report *models.ClassReport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Class: %s (%s)\n", report.Name, report.Kind))
	if report.Technique != "" {
		buf.WriteString(fmt.Sprintf("Technique: %s\n", report.Technique))
	}
	buf.WriteString(fmt.Sprintf("Videos: %d\n", report.VideoCount))
	buf.WriteString(fmt.Sprintf("Avg views: %s\n\n", shared.FormatCount(int64(report.AvgViews))))

	for i, post := range report.Examples {
		buf.WriteString(fmt.Sprintf("%d. @%s - %s views\n", i+1, post.Author, shared.FormatCount(post.Views)))
	}

	return buf.Bytes(), nil
}

// TrendsToCSV converts a page of trending posts to CSV, one row per post.
func TrendsToCSV(posts []models.TrendingPost) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Platform", "Author", "Caption", "Hashtag", "Views", "Likes", "Comments", "Shares", "PostedAt", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, post := range posts {
		record := []string{
			post.ID,
			post.Platform,
			post.Author,
			post.Caption,
			post.Hashtag,
			strconv.FormatInt(post.Views, 10),
			strconv.FormatInt(post.Likes, 10),
			strconv.FormatInt(post.Comments, 10),
			strconv.FormatInt(post.Shares, 10),
			post.PostedAt,
			post.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of class metadata (without example posts)
func ToMetadataJSON(report *models.ClassReport) ([]byte, error) {
	meta := *report
	meta.Examples = nil
	return shared.MarshalJSON(meta, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	PostsFile    string
	MetadataFile string
}

// WriteCSVExport exports a class report to CSV format with accompanying metadata JSON file.
//
// Defaults to class ID as the base filename & creates {base}_posts.csv and {base}_metadata.json
func WriteCSVExport(report *models.ClassReport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = report.ID
	}

	csvData, err := ExportToCSV(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	postsFile := baseFilepath + "_posts.csv"
	if err := os.WriteFile(postsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		PostsFile:    postsFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory string
	Files     []string
}

// WriteMarkdownExport exports a class report to Markdown format in a dedicated directory.
//
// Directory name defaults to the class ID. Creates {dir}/README.md.
func WriteMarkdownExport(report *models.ClassReport, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = report.ID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(report)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{mdFile},
	}, nil
}

// WriteTextExport exports a class report to plain text format.
//
// Defaults to {class.ID}_report.txt as the filename.
func WriteTextExport(report *models.ClassReport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_report.txt", report.ID)
	}

	textData, err := ExportToText(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// ManifestEntry records the outcome of a single class export.
type ManifestEntry struct {
	ClassID string   `json:"class_id"`
	Name    string   `json:"name"`
	Success bool     `json:"success"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ExportManifest summarizes a bulk report export run.
type ExportManifest struct {
	GeneratedAt     string          `json:"generated_at"`
	Format          string          `json:"format"`
	OutputDirectory string          `json:"output_directory"`
	TotalReports    int             `json:"total_reports"`
	Successful      int             `json:"successful"`
	Failed          int             `json:"failed"`
	Entries         []ManifestEntry `json:"entries"`
}

// WriteExportManifest writes the manifest JSON summarizing a bulk export.
func WriteExportManifest(manifest *ExportManifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
