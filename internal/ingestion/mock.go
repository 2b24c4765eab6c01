package ingestion

import (
	"fmt"
	"os"
	"path/filepath"

	"sqa-dashboard/internal/domain"
)

// MockProjects returns the five-project sample used for demos and tests.
func MockProjects() []domain.ProjectRecord {
	return []domain.ProjectRecord{
		{Name: "Project1", CSAT: 85, OnTimeDelivery: 95, BudgetVariance: 2},
		{Name: "Project2", CSAT: 78, OnTimeDelivery: 85, BudgetVariance: -3},
		{Name: "Project3", CSAT: 92, OnTimeDelivery: 90, BudgetVariance: 0},
		{Name: "Project4", CSAT: 88, OnTimeDelivery: 88, BudgetVariance: 1},
		{Name: "Project5", CSAT: 90, OnTimeDelivery: 92, BudgetVariance: -2},
	}
}

// MockDataset returns MockProjects as a Dataset.
func MockDataset() domain.Dataset {
	return domain.DatasetFromRecords(MockProjects())
}

// WriteMockFile writes the sample to path, as CSV or XLSX by extension.
// Parent directories are created.
func WriteMockFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir: %w", err)
		}
	}

	switch filepath.Ext(path) {
	case ".xlsx":
		return WriteXLSX(path, "", MockProjects())
	default:
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create mock csv: %w", err)
		}
		if err := WriteCSV(f, MockProjects()); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
