// Package config loads dashboard settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/insights"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all dashboard settings.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Source     SourceConfig     `yaml:"source"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Checklists ChecklistsConfig `yaml:"checklists"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// InputConfig describes the input file.
type InputConfig struct {
	Path            string   `yaml:"path"`
	Format          string   `yaml:"format" validate:"oneof=auto csv xlsx"`
	Sheet           string   `yaml:"sheet"`
	RequiredColumns []string `yaml:"required_columns" validate:"min=1,dive,required"` // must include the four project columns
}

// SourceConfig selects where project rows come from.
type SourceConfig struct {
	Kind          string `yaml:"kind" validate:"oneof=file manual postgres clickhouse memory"`
	PostgresDSN   string `yaml:"postgres_dsn" validate:"required_if=Kind postgres"`
	ClickhouseDSN string `yaml:"clickhouse_dsn" validate:"required_if=Kind clickhouse"`
	Dataset       string `yaml:"dataset" validate:"required"`
}

// ThresholdsConfig holds the insight and trend thresholds.
type ThresholdsConfig struct {
	CSAT           float64 `yaml:"csat" validate:"gte=0,lte=100"`
	OnTimeDelivery float64 `yaml:"on_time_delivery" validate:"gte=0,lte=100"`
	TrendTolerance float64 `yaml:"trend_tolerance" validate:"gte=0"`
}

// ChecklistsConfig holds both questionnaires.
type ChecklistsConfig struct {
	Compliance ChecklistConfig `yaml:"compliance"`
	Maturity   ChecklistConfig `yaml:"maturity"`
}

// ChecklistConfig is one questionnaire. Answers, when set, are used by
// non-interactive runs and must match Items in length.
type ChecklistConfig struct {
	Title   string       `yaml:"title" validate:"required"`
	Items   []string     `yaml:"items" validate:"min=1,dive,required"`
	Bands   []BandConfig `yaml:"bands" validate:"min=1,descending,dive"`
	Answers []bool       `yaml:"answers,omitempty"`
}

// BandConfig is one tier of a band table.
type BandConfig struct {
	LowerBound float64 `yaml:"lower_bound" validate:"gte=0,lte=100"`
	Label      string  `yaml:"label" validate:"required"`
}

// OutputConfig controls what a report run writes.
type OutputConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	Charts      bool   `yaml:"charts"`
	CSV         bool   `yaml:"csv"`
	MetricsFile string `yaml:"metrics_file"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:            "data/mock_data.csv",
			Format:          "auto",
			RequiredColumns: append([]string(nil), domain.RequiredColumns...),
		},
		Source: SourceConfig{
			Kind:    "file",
			Dataset: "default",
		},
		Thresholds: ThresholdsConfig{
			CSAT:           insights.DefaultThresholds().CSAT,
			OnTimeDelivery: insights.DefaultThresholds().OnTimeDelivery,
		},
		Checklists: ChecklistsConfig{
			Compliance: fromDefinition(checklist.ComplianceChecklist()),
			Maturity:   fromDefinition(checklist.MaturityChecklist()),
		},
		Output: OutputConfig{
			Dir:    "output",
			Charts: true,
			CSV:    true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults, applies SQADASH_* environment
// overrides and validates the result. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	strs := map[string]*string{
		"SQADASH_INPUT":          &c.Input.Path,
		"SQADASH_INPUT_FORMAT":   &c.Input.Format,
		"SQADASH_SOURCE":         &c.Source.Kind,
		"SQADASH_DATASET":        &c.Source.Dataset,
		"SQADASH_POSTGRES_DSN":   &c.Source.PostgresDSN,
		"SQADASH_CLICKHOUSE_DSN": &c.Source.ClickhouseDSN,
		"SQADASH_OUTPUT_DIR":     &c.Output.Dir,
		"SQADASH_METRICS_FILE":   &c.Output.MetricsFile,
		"SQADASH_LOG_LEVEL":      &c.Logging.Level,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	floats := map[string]*float64{
		"SQADASH_CSAT_THRESHOLD":    &c.Thresholds.CSAT,
		"SQADASH_ON_TIME_THRESHOLD": &c.Thresholds.OnTimeDelivery,
		"SQADASH_TREND_TOLERANCE":   &c.Thresholds.TrendTolerance,
	}
	for key, dst := range floats {
		if v := os.Getenv(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
			}
			*dst = f
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("descending", validateDescendingBands)
	return v
}

// validateDescendingBands requires strictly descending lower bounds.
func validateDescendingBands(fl validator.FieldLevel) bool {
	bands, ok := fl.Field().Interface().([]BandConfig)
	if !ok {
		return false
	}
	return toBands(bands).Validate() == nil
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, col := range domain.RequiredColumns {
		if !slices.Contains(c.Input.RequiredColumns, col) {
			return fmt.Errorf("%w: input.required_columns must include %q", ErrInvalidConfig, col)
		}
	}
	for _, cl := range []ChecklistConfig{c.Checklists.Compliance, c.Checklists.Maturity} {
		if len(cl.Answers) > 0 && len(cl.Answers) != len(cl.Items) {
			return fmt.Errorf("%w: checklist %q has %d items but %d answers",
				ErrInvalidConfig, cl.Title, len(cl.Items), len(cl.Answers))
		}
	}
	return nil
}

// Definition converts the checklist settings.
func (c ChecklistConfig) Definition() checklist.Definition {
	return checklist.Definition{
		Title: c.Title,
		Items: append([]string(nil), c.Items...),
		Bands: toBands(c.Bands),
	}
}

// InsightThresholds converts the threshold settings.
func (t ThresholdsConfig) InsightThresholds() insights.Thresholds {
	return insights.Thresholds{CSAT: t.CSAT, OnTimeDelivery: t.OnTimeDelivery}
}

// ConfiguredAnswers returns title -> answers for checklists that carry them.
func (c ChecklistsConfig) ConfiguredAnswers() map[string][]bool {
	out := make(map[string][]bool, 2)
	for _, cl := range []ChecklistConfig{c.Compliance, c.Maturity} {
		if len(cl.Answers) > 0 {
			out[cl.Title] = append([]bool(nil), cl.Answers...)
		}
	}
	return out
}

func toBands(in []BandConfig) checklist.Bands {
	out := make(checklist.Bands, len(in))
	for i, b := range in {
		out[i] = checklist.Band{LowerBound: b.LowerBound, Label: b.Label}
	}
	return out
}

func fromDefinition(d checklist.Definition) ChecklistConfig {
	bands := make([]BandConfig, len(d.Bands))
	for i, b := range d.Bands {
		bands[i] = BandConfig{LowerBound: b.LowerBound, Label: b.Label}
	}
	return ChecklistConfig{
		Title: d.Title,
		Items: d.Items,
		Bands: bands,
	}
}
