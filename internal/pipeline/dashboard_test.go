package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sqa-dashboard/internal/charts"
	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/config"
	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/ingestion"
	"sqa-dashboard/internal/insights"
	"sqa-dashboard/internal/observability"
	"sqa-dashboard/internal/reporting"
	"sqa-dashboard/internal/storage/memory"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Output.Charts = false
	return cfg
}

// answers gives 4/5 on compliance and 2/5 on maturity.
func answers() *checklist.StaticCollector {
	return checklist.NewStaticCollector(map[string][]bool{
		"ISO 9001 Checklist": {true, true, true, true, false},
		"CMMI Checklist":     {true, false, true, false, false},
	})
}

func newTestDashboard(t *testing.T, source ingestion.Source, cfg *config.Config) *Dashboard {
	return NewDashboard(source, answers(), cfg).
		WithLogger(zaptest.NewLogger(t)).
		WithClock(func() time.Time { return fixedTime }).
		WithIDGenerator(func() string { return "run-1" })
}

func TestDashboard_Evaluate(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDashboard(t, ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, cfg)

	report, err := d.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.InDelta(t, 86.6, report.KPISet.AverageCSAT, 1e-9)
	assert.InDelta(t, 90.0, report.KPISet.AverageOnTimeDelivery, 1e-9)
	assert.InDelta(t, -0.4, report.KPISet.AverageBudgetVariance, 1e-9)

	kinds := make([]insights.Kind, len(report.Insights))
	for i, ins := range report.Insights {
		kinds[i] = ins.Kind
	}
	want := []insights.Kind{insights.KindCSAT, insights.KindOnTimeDelivery, insights.KindOverBudget, insights.KindUnderBudget}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("insight order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Project2", "Project5"}, report.Insights[2].Projects)
	assert.Equal(t, []string{"Project1", "Project4"}, report.Insights[3].Projects)

	require.Len(t, report.Checklists, 2)
	assert.Equal(t, 80.0, report.Checklists[0].Percentage)
	assert.Equal(t, "Mostly Compliant", report.Checklists[0].Tier)
	assert.Equal(t, 40.0, report.Checklists[1].Percentage)
	assert.Equal(t, "Level 2: Managed", report.Checklists[1].Tier)
	assert.Equal(t, map[string]string{
		checklist.LabelCompliance: "80.00% (Mostly Compliant)",
		checklist.LabelMaturity:   "40.00% (Level 2: Managed)",
	}, report.Summary.Map())

	assert.True(t, report.DataQuality.AllChecksPassed)

	_, err = os.Stat(cfg.Output.Dir)
	assert.True(t, os.IsNotExist(err), "Evaluate must not write files")
}

func TestDashboard_Run_WritesFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.MetricsFile = filepath.Join(t.TempDir(), "sqa.prom")
	m := observability.NewMetrics("")

	d := newTestDashboard(t, ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, cfg).
		WithMetrics(m).
		WithCharts(true)

	report, err := d.Run(context.Background())
	require.NoError(t, err)

	for _, f := range []string{reporting.MarkdownFile, reporting.CSVFile, charts.CSATFile, charts.OnTimeFile, charts.BudgetFile} {
		_, err := os.Stat(filepath.Join(cfg.Output.Dir, f))
		assert.NoError(t, err, f)
	}
	assert.Equal(t, []string{charts.CSATFile, charts.OnTimeFile, charts.BudgetFile}, report.Charts)

	md, err := os.ReadFile(filepath.Join(cfg.Output.Dir, reporting.MarkdownFile))
	require.NoError(t, err)
	assert.Contains(t, string(md), "| Average CSAT | 86.60% |")
	assert.Contains(t, string(md), "![csat_trend.png](csat_trend.png)")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.PipelineRunsTotal.WithLabelValues(observability.StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.RecordsLoaded))
	assert.Equal(t, 80.0, testutil.ToFloat64(m.ChecklistScore.WithLabelValues("ISO 9001 Checklist")))
	assert.Equal(t, float64(fixedTime.Unix()), testutil.ToFloat64(m.LastSuccessfulRun))

	prom, err := os.ReadFile(cfg.Output.MetricsFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(prom), "sqa_dashboard_pipeline_runs_total"))
}

func TestDashboard_FilledCellsAreCounted(t *testing.T) {
	ds := ingestion.MockDataset()
	ds.Rows[1][2] = domain.TextCell("N/A")
	m := observability.NewMetrics("")

	d := newTestDashboard(t, ingestion.DatasetSource{Dataset: ds}, testConfig(t)).WithMetrics(m)

	report, err := d.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CellsFilled.WithLabelValues(domain.ColumnOnTimeDelivery)))
	assert.InDelta(t, 73.0, report.KPISet.AverageOnTimeDelivery, 1e-9)
	assert.False(t, report.DataQuality.AllChecksPassed)
}

func TestDashboard_MissingColumns(t *testing.T) {
	ds := domain.Dataset{
		Columns: []string{domain.ColumnProject, domain.ColumnCSAT},
		Rows:    [][]domain.Cell{{domain.TextCell("A"), domain.TextCell("80")}},
	}
	m := observability.NewMetrics("")

	_, err := newTestDashboard(t, ingestion.DatasetSource{Dataset: ds}, testConfig(t)).WithMetrics(m).Run(context.Background())

	var mc *domain.MissingColumnsError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, []string{domain.ColumnOnTimeDelivery, domain.ColumnBudgetVariance}, mc.Columns)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PipelineRunsTotal.WithLabelValues(observability.StatusFailed)))
}

func TestDashboard_ProjectColumnAlwaysRequired(t *testing.T) {
	cfg := testConfig(t)
	cfg.Input.RequiredColumns = []string{domain.ColumnCSAT, domain.ColumnOnTimeDelivery, domain.ColumnBudgetVariance, "Team"}

	ds := ingestion.MockDataset()
	ds.Columns[0] = "Name"

	_, err := newTestDashboard(t, ingestion.DatasetSource{Dataset: ds}, cfg).Evaluate(context.Background())

	var mc *domain.MissingColumnsError
	require.ErrorAs(t, err, &mc)
	assert.Equal(t, []string{domain.ColumnProject, "Team"}, mc.Columns)
}

func TestDashboard_EmptyDataset(t *testing.T) {
	ds := domain.Dataset{Columns: append([]string(nil), domain.RequiredColumns...)}

	_, err := newTestDashboard(t, ingestion.DatasetSource{Dataset: ds}, testConfig(t)).Evaluate(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

type failingCollector struct{ err error }

func (f failingCollector) Collect(context.Context, string, []string) ([]bool, error) {
	return nil, f.err
}

func TestDashboard_CollectorError(t *testing.T) {
	boom := errors.New("input closed")
	d := NewDashboard(ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, failingCollector{err: boom}, testConfig(t))

	_, err := d.Evaluate(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_AnswerLengthMismatch(t *testing.T) {
	collector := checklist.NewStaticCollector(map[string][]bool{
		"ISO 9001 Checklist": {true},
	})
	d := NewDashboard(ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, collector, testConfig(t))

	_, err := d.Evaluate(context.Background())
	var lm *domain.LengthMismatchError
	assert.ErrorAs(t, err, &lm)
}

func TestDashboard_RequiresSourceAndCollector(t *testing.T) {
	_, err := NewDashboard(nil, answers(), nil).Evaluate(context.Background())
	assert.Error(t, err)

	_, err = NewDashboard(ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, nil, nil).Evaluate(context.Background())
	assert.Error(t, err)
}

func TestDashboard_StoreSource(t *testing.T) {
	ctx := context.Background()
	store := memory.NewProjectStore()
	require.NoError(t, LoadFixtures(ctx, store, fixedTime.UnixMilli()))

	d := newTestDashboard(t, ingestion.NewStoreSource(store, FixtureDataset), testConfig(t)).
		WithSourceName("memory:" + FixtureDataset)

	report, err := d.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory:fixtures", report.Source)
	assert.Equal(t, 5, report.DataSummary.Records)
	assert.InDelta(t, 86.6, report.KPISet.AverageCSAT, 1e-9)

	want, err := newTestDashboard(t, ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, testConfig(t)).Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.DataVersion, report.DataVersion, "store round trip must not change the data")
}

func TestDashboard_TrendTolerance(t *testing.T) {
	cfg := testConfig(t)
	cfg.Thresholds.TrendTolerance = 10

	report, err := newTestDashboard(t, ingestion.DatasetSource{Dataset: ingestion.MockDataset()}, cfg).Evaluate(context.Background())
	require.NoError(t, err)

	for _, tr := range report.Trends {
		assert.Equal(t, domain.TrendFlat, tr.Direction, tr.Column)
	}
	assert.Contains(t, report.TrendPolicy, "tolerance")
}
