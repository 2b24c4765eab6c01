package reporting

import (
	"time"

	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/insights"
)

// Report is the complete output of one dashboard run.
type Report struct {
	// Metadata
	RunID       string
	GeneratedAt time.Time
	DataVersion string // base58 SHA-256 of the validated dataset
	Source      string

	DataSummary DataSummary
	DataQuality DataQualitySection // set by the pipeline

	// KPIs in display order: CSAT, on-time delivery, budget variance.
	KPIs   []KPIRow
	KPISet domain.KPISet

	Trends      []TrendRow
	TrendPolicy string

	Insights []insights.Insight

	Checklists []ChecklistRow
	Summary    checklist.Summary

	// Projects in input order.
	Projects []ProjectRow

	// Chart files relative to the output directory. Set by the writer.
	Charts []string
}

// DataSummary describes the validated input.
type DataSummary struct {
	Records     int
	Columns     []string
	FilledCells []FilledCellRow
}

// DataQualitySection holds the sufficiency checks of the input.
type DataQualitySection struct {
	Checks          []QualityCheckRow
	AllChecksPassed bool
	Warnings        []string
}

// QualityCheckRow is one sufficiency criterion.
type QualityCheckRow struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// FilledCellRow is one cell replaced by the default fill.
type FilledCellRow struct {
	Row    int // 1-based for display
	Column string
}

// KPIRow is one portfolio KPI.
type KPIRow struct {
	Label   string
	Value   float64
	Percent bool // rendered with a % suffix
}

// TrendRow is one column's trend.
type TrendRow struct {
	Column      string
	Direction   domain.Trend
	MeanDelta   float64
	Samples     int
	Description string
}

// ChecklistRow is one scored questionnaire.
type ChecklistRow struct {
	Title      string
	Answered   int
	Total      int
	Percentage float64
	Tier       string
}

// ProjectRow is one input project after validation.
type ProjectRow struct {
	Name           string
	CSAT           float64
	OnTimeDelivery float64
	BudgetVariance float64
	BudgetStatus   string
}

// Budget statuses.
const (
	BudgetOver  = "Over budget"
	BudgetUnder = "Under budget"
	BudgetOn    = "On budget"
)

// CautionCount returns the number of caution insights.
func (r *Report) CautionCount() int {
	n := 0
	for _, in := range r.Insights {
		if in.Severity == insights.SeverityCaution {
			n++
		}
	}
	return n
}
