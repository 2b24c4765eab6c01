package reporting

import (
	"fmt"
	"os"
	"path/filepath"
)

// Output file names inside the output directory.
const (
	MarkdownFile = "DASHBOARD_REPORT.md"
	CSVFile      = "project_kpis.csv"
)

// WriteFiles writes the Markdown report and, when csvOut is set, the CSV
// table into dir. Returns the paths written.
func WriteFiles(dir string, r *Report, csvOut bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string

	mdPath := filepath.Join(dir, MarkdownFile)
	if err := os.WriteFile(mdPath, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", MarkdownFile, err)
	}
	written = append(written, mdPath)

	if csvOut {
		csvPath := filepath.Join(dir, CSVFile)
		if err := os.WriteFile(csvPath, []byte(RenderCSV(r)), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", CSVFile, err)
		}
		written = append(written, csvPath)
	}

	return written, nil
}
