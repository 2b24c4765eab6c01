package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/ingestion"
	"sqa-dashboard/internal/observability"
	"sqa-dashboard/internal/pipeline"
	"sqa-dashboard/internal/reporting"
	"sqa-dashboard/internal/ux"
)

// Answer sources for --answers-from.
const (
	answersConfig = "config"
	answersPrompt = "prompt"
	answersStdin  = "stdin"
)

var (
	reportSource   string
	reportInput    string
	reportDataset  string
	reportOutDir   string
	reportAnswers  string
	reportNoCharts bool
	reportPlain    bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the full dashboard and write the report",
	Long: `Loads projects from the selected source, validates them (missing numeric
values become 0), computes KPI averages and trends, generates insights,
scores both checklists and writes DASHBOARD_REPORT.md, project_kpis.csv
and the KPI charts to the output directory.

Sources:
  file        CSV or XLSX file (--input)
  manual      interactive entry
  postgres    stored dataset (--dataset)
  clickhouse  stored dataset (--dataset)
  memory      built-in sample projects

Checklist answers:
  config      answers from the config file (missing answers count as no)
  prompt      interactive yes/no form
  stdin       one y/n line per item`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSource, "source", "", "Project source: file, manual, postgres, clickhouse, memory")
	reportCmd.Flags().StringVarP(&reportInput, "input", "i", "", "Input file for the file source")
	reportCmd.Flags().StringVar(&reportDataset, "dataset", "", "Dataset name for store sources")
	reportCmd.Flags().StringVarP(&reportOutDir, "output-dir", "o", "", "Output directory")
	reportCmd.Flags().StringVar(&reportAnswers, "answers-from", answersConfig, "Checklist answers: config, prompt, stdin")
	reportCmd.Flags().BoolVar(&reportNoCharts, "no-charts", false, "Skip chart rendering")
	reportCmd.Flags().BoolVar(&reportPlain, "plain", false, "Print the plain-text panel instead of the styled summary")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	applyReportFlags(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, sourceName, closeSource, err := buildSource(ctx)
	if err != nil {
		return err
	}
	defer closeSource()

	collector, err := buildCollector(reportAnswers, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	dash := pipeline.NewDashboard(source, collector, cfg).
		WithLogger(logger).
		WithMetrics(observability.NewMetrics("")).
		WithSourceName(sourceName)
	if reportNoCharts {
		dash = dash.WithCharts(false)
	}

	report, err := dash.Run(ctx)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	return nil
}

func applyReportFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Kind = reportSource
	}
	if flags.Changed("input") {
		cfg.Input.Path = reportInput
	}
	if flags.Changed("dataset") {
		cfg.Source.Dataset = reportDataset
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = reportOutDir
	}
}

// buildSource returns the project source for cfg.Source.Kind, a label for
// the report, and a closer for any store connection.
func buildSource(ctx context.Context) (ingestion.Source, string, func(), error) {
	noop := func() {}

	switch kind := cfg.Source.Kind; kind {
	case "file":
		src, err := ingestion.NewFileSource(ingestion.FileOptions{
			Path:     cfg.Input.Path,
			Format:   ingestion.Format(cfg.Input.Format),
			Sheet:    cfg.Input.Sheet,
			Required: cfg.Input.RequiredColumns,
		})
		if err != nil {
			return nil, "", noop, err
		}
		return src, "file:" + cfg.Input.Path, noop, nil

	case "manual":
		return ux.NewManualEntry(nil), "manual", noop, nil

	case storeMemory:
		store, closeStore, err := openStore(ctx, storeMemory, false)
		if err != nil {
			return nil, "", noop, err
		}
		if err := pipeline.LoadFixtures(ctx, store, time.Now().UnixMilli()); err != nil {
			closeStore()
			return nil, "", noop, err
		}
		return ingestion.NewStoreSource(store, pipeline.FixtureDataset), "memory:" + pipeline.FixtureDataset, closeStore, nil

	case storePostgres, storeClickhouse:
		store, closeStore, err := openStore(ctx, kind, false)
		if err != nil {
			return nil, "", noop, err
		}
		return ingestion.NewStoreSource(store, cfg.Source.Dataset), kind + ":" + cfg.Source.Dataset, closeStore, nil

	default:
		return nil, "", noop, fmt.Errorf("unknown source %q", kind)
	}
}

func buildCollector(from string, in io.Reader, out io.Writer) (checklist.Collector, error) {
	switch from {
	case answersConfig:
		answers := cfg.Checklists.ConfiguredAnswers()
		if len(answers) == 0 {
			logger.Warn("no checklist answers configured; every item counts as no")
		}
		return checklist.NewStaticCollector(answers), nil
	case answersPrompt:
		return ux.NewFormCollector(nil), nil
	case answersStdin:
		return checklist.NewScriptedCollector(in, out), nil
	default:
		return nil, fmt.Errorf("unknown answers source %q (want config, prompt or stdin)", from)
	}
}

func printReport(w io.Writer, r *reporting.Report) {
	if reportPlain {
		fmt.Fprint(w, reporting.RenderPanel(r))
	} else {
		fmt.Fprintln(w, ux.RenderSummary(r))
	}
	logger.Debug("report printed", zap.String("run_id", r.RunID), zap.String("data_version", r.DataVersion))
}
