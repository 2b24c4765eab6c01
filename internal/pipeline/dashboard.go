// Package pipeline sequences the dashboard stages: load, validate,
// aggregate, detect trends, generate insights, score checklists and
// write the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"sqa-dashboard/internal/charts"
	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/config"
	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/ingestion"
	"sqa-dashboard/internal/insights"
	"sqa-dashboard/internal/metrics"
	"sqa-dashboard/internal/observability"
	"sqa-dashboard/internal/reporting"
	"sqa-dashboard/internal/validation"
)

// Stage names used in logs and the stage-duration histogram.
const (
	StageLoad       = "load"
	StageValidate   = "validate"
	StageKPIs       = "kpis"
	StageTrends     = "trends"
	StageInsights   = "insights"
	StageChecklists = "checklists"
	StageReport     = "report"
	StageWrite      = "write"
)

// Dashboard runs one evaluation over a project source.
type Dashboard struct {
	source     ingestion.Source
	collector  checklist.Collector
	cfg        *config.Config
	sourceName string

	logger  *zap.Logger
	metrics *observability.Metrics
	clock   func() time.Time
	newID   func() string
	charts  bool
}

// NewDashboard creates a dashboard. A nil cfg uses config.Default().
func NewDashboard(source ingestion.Source, collector checklist.Collector, cfg *config.Config) *Dashboard {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Dashboard{
		source:     source,
		collector:  collector,
		cfg:        cfg,
		sourceName: cfg.Source.Kind,
		logger:     zap.NewNop(),
		clock:      func() time.Time { return time.Now().UTC() },
		charts:     cfg.Output.Charts,
	}
}

// WithLogger sets the logger.
func (d *Dashboard) WithLogger(logger *zap.Logger) *Dashboard {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// WithMetrics enables Prometheus recording.
func (d *Dashboard) WithMetrics(m *observability.Metrics) *Dashboard {
	d.metrics = m
	return d
}

// WithClock sets a custom clock function for deterministic output.
func (d *Dashboard) WithClock(clock func() time.Time) *Dashboard {
	d.clock = clock
	return d
}

// WithIDGenerator sets the run ID source.
func (d *Dashboard) WithIDGenerator(newID func() string) *Dashboard {
	d.newID = newID
	return d
}

// WithCharts overrides output.charts.
func (d *Dashboard) WithCharts(enabled bool) *Dashboard {
	d.charts = enabled
	return d
}

// WithSourceName sets the source label shown in the report.
func (d *Dashboard) WithSourceName(name string) *Dashboard {
	d.sourceName = name
	return d
}

// Run evaluates the source and writes the report files, charts and the
// metrics textfile into the configured output directory.
func (d *Dashboard) Run(ctx context.Context) (*reporting.Report, error) {
	report, err := d.evaluate(ctx)
	if err == nil {
		err = d.stage(StageWrite, func() error { return d.write(report) })
	}

	status := observability.StatusSuccess
	if err != nil {
		status = observability.StatusFailed
	}
	if d.metrics != nil {
		d.metrics.RecordRun(status, d.clock().Unix())
		if path := d.cfg.Output.MetricsFile; path != "" {
			if werr := d.metrics.WriteTextfile(path); werr != nil {
				d.logger.Warn("metrics textfile not written", zap.String("path", path), zap.Error(werr))
			}
		}
	}

	if err != nil {
		d.logger.Error("dashboard run failed", zap.Error(err))
		return nil, err
	}
	d.logger.Info("dashboard run complete",
		zap.String("run_id", report.RunID),
		zap.String("output_dir", d.cfg.Output.Dir),
	)
	return report, nil
}

// Evaluate runs every stage up to the report without writing files.
func (d *Dashboard) Evaluate(ctx context.Context) (*reporting.Report, error) {
	return d.evaluate(ctx)
}

func (d *Dashboard) evaluate(ctx context.Context) (*reporting.Report, error) {
	if d.source == nil {
		return nil, errors.New("dashboard: source is required")
	}
	if d.collector == nil {
		return nil, errors.New("dashboard: checklist collector is required")
	}

	var raw domain.Dataset
	err := d.stage(StageLoad, func() error {
		var err error
		raw, err = d.source.Load(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	d.logger.Info("dataset loaded", zap.Int("rows", raw.Len()), zap.Strings("columns", raw.Columns))
	if d.metrics != nil {
		d.metrics.RecordsLoaded.Add(float64(raw.Len()))
	}

	var validated *validation.Result
	err = d.stage(StageValidate, func() error {
		var err error
		validated, err = validation.Validate(raw, requiredColumns(d.cfg.Input.RequiredColumns))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	for _, c := range validated.FilledCells {
		d.logger.Debug("missing value filled",
			zap.Int("row", c.Row+1),
			zap.String("column", c.Column),
		)
		if d.metrics != nil {
			d.metrics.RecordFilled(c.Column)
		}
	}
	ds := validated.Dataset

	sufficiency, err := CheckSufficiency(validated)
	if err != nil {
		return nil, err
	}
	for _, w := range sufficiency.Warnings {
		d.logger.Warn("data quality", zap.String("warning", w))
	}

	var kpis domain.KPISet
	err = d.stage(StageKPIs, func() error {
		var err error
		kpis, err = metrics.CalculateKPIs(ds)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("calculate kpis: %w", err)
	}
	d.logger.Debug("kpis calculated",
		zap.Float64("avg_csat", kpis.AverageCSAT),
		zap.Float64("avg_on_time", kpis.AverageOnTimeDelivery),
		zap.Float64("avg_budget_variance", kpis.AverageBudgetVariance),
	)

	detector := metrics.NewTrendDetector(d.cfg.Thresholds.TrendTolerance)
	var trends []domain.TrendDescription
	err = d.stage(StageTrends, func() error {
		var err error
		trends, err = detector.DetectAll(ds, domain.NumericColumns...)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("detect trends: %w", err)
	}

	var found []insights.Insight
	err = d.stage(StageInsights, func() error {
		var err error
		found, err = insights.NewGenerator(d.cfg.Thresholds.InsightThresholds()).Evaluate(kpis, ds)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("generate insights: %w", err)
	}

	var lists []reporting.ChecklistInput
	var summary checklist.Summary
	err = d.stage(StageChecklists, func() error {
		var err error
		lists, summary, err = d.scoreChecklists(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	gen := reporting.NewGenerator().WithClock(d.clock)
	if d.newID != nil {
		gen = gen.WithIDGenerator(d.newID)
	}
	var report *reporting.Report
	err = d.stage(StageReport, func() error {
		var err error
		report, err = gen.Generate(reporting.Input{
			Source:      d.sourceName,
			Validated:   validated,
			KPIs:        kpis,
			Trends:      trends,
			TrendPolicy: detector.Policy(),
			Insights:    found,
			Checklists:  lists,
			Summary:     summary,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	report.DataQuality = convertToDataQuality(sufficiency)

	d.recordResults(report)
	return report, nil
}

// requiredColumns is the project columns followed by any extra configured
// ones. Every stage after validation reads the project columns.
func requiredColumns(configured []string) []string {
	cols := append([]string(nil), domain.RequiredColumns...)
	for _, c := range configured {
		if !slices.Contains(cols, c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// scoreChecklists collects and scores the compliance then the maturity
// checklist.
func (d *Dashboard) scoreChecklists(ctx context.Context) ([]reporting.ChecklistInput, checklist.Summary, error) {
	defs := []checklist.Definition{
		d.cfg.Checklists.Compliance.Definition(),
		d.cfg.Checklists.Maturity.Definition(),
	}

	out := make([]reporting.ChecklistInput, 0, len(defs))
	for _, def := range defs {
		responses, err := d.collector.Collect(ctx, def.Title, def.Items)
		if err != nil {
			return nil, checklist.Summary{}, fmt.Errorf("collect %s: %w", def.Title, err)
		}
		result, err := def.Score(responses)
		if err != nil {
			return nil, checklist.Summary{}, err
		}
		d.logger.Debug("checklist scored",
			zap.String("checklist", def.Title),
			zap.Int("answered", result.Answered),
			zap.Int("total", result.Total),
			zap.String("tier", result.Tier),
		)
		out = append(out, reporting.ChecklistInput{Title: def.Title, Result: result})
	}

	return out, checklist.Summarize(out[0].Result, out[1].Result), nil
}

func (d *Dashboard) write(report *reporting.Report) error {
	dir := d.cfg.Output.Dir

	if d.charts {
		records := make([]domain.ProjectRecord, len(report.Projects))
		for i, p := range report.Projects {
			records[i] = domain.ProjectRecord{
				Name:           p.Name,
				CSAT:           p.CSAT,
				OnTimeDelivery: p.OnTimeDelivery,
				BudgetVariance: p.BudgetVariance,
			}
		}
		files, err := charts.Render(dir, records)
		if err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
		report.Charts = files
	}

	paths, err := reporting.WriteFiles(dir, report, d.cfg.Output.CSV)
	if err != nil {
		return err
	}
	for _, c := range report.Charts {
		paths = append(paths, filepath.Join(dir, c))
	}
	d.logger.Info("report written", zap.Strings("files", paths))

	if d.metrics != nil {
		d.metrics.ReportsGenerated.Inc()
	}
	return nil
}

func (d *Dashboard) recordResults(r *reporting.Report) {
	if d.metrics == nil {
		return
	}
	for _, k := range r.KPIs {
		d.metrics.KPIValue.WithLabelValues(k.Label).Set(k.Value)
	}
	for _, ins := range r.Insights {
		d.metrics.InsightsGenerated.WithLabelValues(string(ins.Severity)).Inc()
	}
	for _, c := range r.Checklists {
		d.metrics.ChecklistScore.WithLabelValues(c.Title).Set(c.Percentage)
	}
}

// stage times fn and records the duration.
func (d *Dashboard) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	if d.metrics != nil {
		d.metrics.ObserveStage(name, elapsed.Seconds())
	}
	d.logger.Debug("stage finished",
		zap.String("stage", name),
		zap.Duration("elapsed", elapsed),
		zap.Bool("ok", err == nil),
	)
	return err
}
