// Package observability provides Prometheus metrics for dashboard runs.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "sqa_dashboard"

// Metrics holds the Prometheus collectors for one process. Each instance
// owns a private registry, so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	// Pipeline metrics
	PipelineRunsTotal *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	ReportsGenerated  prometheus.Counter

	// Data metrics
	RecordsLoaded prometheus.Counter
	CellsFilled   *prometheus.CounterVec
	RowsIngested  prometheus.Counter

	// Result metrics
	InsightsGenerated *prometheus.CounterVec
	ChecklistScore    *prometheus.GaugeVec
	KPIValue          *prometheus.GaugeVec

	// Health metrics
	LastSuccessfulRun prometheus.Gauge
}

// NewMetrics creates a Metrics instance with all collectors registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		PipelineRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total number of dashboard runs by status",
		}, []string{"status"}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"stage"}),
		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "reports_generated_total",
			Help:      "Total number of reports written to disk",
		}),

		RecordsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "records_loaded_total",
			Help:      "Total number of project rows loaded",
		}),
		CellsFilled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "cells_filled_total",
			Help:      "Total number of missing cells replaced by the default, by column",
		}, []string{"column"}),
		RowsIngested: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "rows_ingested_total",
			Help:      "Total number of project rows written to a store",
		}),

		InsightsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "insights",
			Name:      "generated_total",
			Help:      "Total number of insights by severity",
		}, []string{"severity"}),
		ChecklistScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "checklist",
			Name:      "score_percent",
			Help:      "Latest checklist score by checklist",
		}, []string{"checklist"}),
		KPIValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "kpi",
			Name:      "value",
			Help:      "Latest portfolio KPI value",
		}, []string{"kpi"}),

		LastSuccessfulRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "last_successful_run_timestamp",
			Help:      "Unix timestamp of last successful dashboard run",
		}),
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(status string, finishedUnix int64) {
	m.PipelineRunsTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		m.LastSuccessfulRun.Set(float64(finishedUnix))
	}
}

// ObserveStage records how long a pipeline stage took.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.StageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordFilled counts one default-filled cell.
func (m *Metrics) RecordFilled(column string) {
	m.CellsFilled.WithLabelValues(column).Inc()
}

// WriteTextfile writes all metrics in the text exposition format for the
// node-exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Run statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)
