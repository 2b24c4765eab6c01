package reporting

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/insights"
	"sqa-dashboard/internal/validation"
)

// Input collects the results of every pipeline stage.
type Input struct {
	Source      string
	Validated   *validation.Result
	KPIs        domain.KPISet
	Trends      []domain.TrendDescription
	TrendPolicy string
	Insights    []insights.Insight
	Checklists  []ChecklistInput
	Summary     checklist.Summary
}

// ChecklistInput is one scored questionnaire.
type ChecklistInput struct {
	Title  string
	Result domain.ComplianceResult
}

// Generator assembles reports from stage results.
type Generator struct {
	now   func() time.Time // Injectable clock for deterministic output
	newID func() string
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.NewString() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// WithIDGenerator sets the run ID source.
func (g *Generator) WithIDGenerator(newID func() string) *Generator {
	g.newID = newID
	return g
}

// Generate builds the report.
func (g *Generator) Generate(in Input) (*Report, error) {
	if in.Validated == nil {
		return nil, fmt.Errorf("generate report: %w", domain.ErrEmptyDataset)
	}
	ds := in.Validated.Dataset

	records, err := ds.Records()
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	projects := make([]ProjectRow, len(records))
	for i, r := range records {
		projects[i] = ProjectRow{
			Name:           r.Name,
			CSAT:           r.CSAT,
			OnTimeDelivery: r.OnTimeDelivery,
			BudgetVariance: r.BudgetVariance,
			BudgetStatus:   budgetStatus(r.BudgetVariance),
		}
	}

	filled := make([]FilledCellRow, len(in.Validated.FilledCells))
	for i, c := range in.Validated.FilledCells {
		filled[i] = FilledCellRow{Row: c.Row + 1, Column: c.Column}
	}

	trends := make([]TrendRow, len(in.Trends))
	for i, t := range in.Trends {
		trends[i] = TrendRow{
			Column:      t.Column,
			Direction:   t.Direction,
			MeanDelta:   t.MeanDelta,
			Samples:     t.Samples,
			Description: t.Text(),
		}
	}

	lists := make([]ChecklistRow, len(in.Checklists))
	for i, c := range in.Checklists {
		lists[i] = ChecklistRow{
			Title:      c.Title,
			Answered:   c.Result.Answered,
			Total:      c.Result.Total,
			Percentage: c.Result.Percentage,
			Tier:       c.Result.Tier,
		}
	}

	return &Report{
		RunID:       g.newID(),
		GeneratedAt: g.now(),
		DataVersion: DataVersion(ds),
		Source:      in.Source,
		DataSummary: DataSummary{
			Records:     ds.Len(),
			Columns:     append([]string(nil), ds.Columns...),
			FilledCells: filled,
		},
		KPIs:        kpiRows(in.KPIs),
		KPISet:      in.KPIs,
		Trends:      trends,
		TrendPolicy: in.TrendPolicy,
		Insights:    append([]insights.Insight(nil), in.Insights...),
		Checklists:  lists,
		Summary:     in.Summary,
		Projects:    projects,
	}, nil
}

func kpiRows(k domain.KPISet) []KPIRow {
	return []KPIRow{
		{Label: domain.LabelAverageCSAT, Value: k.AverageCSAT, Percent: true},
		{Label: domain.LabelOnTimeDeliveryRate, Value: k.AverageOnTimeDelivery, Percent: true},
		{Label: domain.LabelAverageBudgetVariance, Value: k.AverageBudgetVariance},
	}
}

func budgetStatus(v float64) string {
	switch {
	case v < 0:
		return BudgetOver
	case v > 0:
		return BudgetUnder
	default:
		return BudgetOn
	}
}
