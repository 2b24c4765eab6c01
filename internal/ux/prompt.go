package ux

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"sqa-dashboard/internal/checklist"
	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/ingestion"
)

// ErrAborted is returned when the user quits a form.
var ErrAborted = errors.New("prompt aborted")

// MaxManualProjects caps the number of projects entered by hand.
const MaxManualProjects = 50

// FormRunner runs a built form. Tests replace it to avoid a terminal.
type FormRunner func(ctx context.Context, form *huh.Form) error

// RunForm runs form interactively.
func RunForm(ctx context.Context, form *huh.Form) error {
	return form.RunWithContext(ctx)
}

func runOrAbort(ctx context.Context, run FormRunner, form *huh.Form) error {
	if err := run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// FormCollector asks each checklist item as a yes/no confirm.
type FormCollector struct {
	run FormRunner
}

var _ checklist.Collector = (*FormCollector)(nil)

// NewFormCollector creates a collector. A nil runner uses RunForm.
func NewFormCollector(run FormRunner) *FormCollector {
	if run == nil {
		run = RunForm
	}
	return &FormCollector{run: run}
}

// Collect implements checklist.Collector.
func (c *FormCollector) Collect(ctx context.Context, title string, items []string) ([]bool, error) {
	responses := make([]bool, len(items))
	if len(items) == 0 {
		return responses, nil
	}

	fields := make([]huh.Field, 0, len(items)+1)
	fields = append(fields, huh.NewNote().Title(title))
	for i, item := range items {
		fields = append(fields, huh.NewConfirm().
			Title(item).
			Affirmative("Yes").
			Negative("No").
			Value(&responses[i]))
	}

	if err := runOrAbort(ctx, c.run, huh.NewForm(huh.NewGroup(fields...))); err != nil {
		return nil, fmt.Errorf("collect %s: %w", title, err)
	}
	return responses, nil
}

// ProjectEntry is one project typed in by hand. Numeric fields hold raw
// text; blank values count as missing and are default-filled later.
type ProjectEntry struct {
	Name           string
	CSAT           string
	OnTimeDelivery string
	BudgetVariance string
}

// ManualEntry prompts for project rows.
type ManualEntry struct {
	run FormRunner
}

var _ ingestion.Source = (*ManualEntry)(nil)

// NewManualEntry creates a manual source. A nil runner uses RunForm.
func NewManualEntry(run FormRunner) *ManualEntry {
	if run == nil {
		run = RunForm
	}
	return &ManualEntry{run: run}
}

// Load implements ingestion.Source.
func (m *ManualEntry) Load(ctx context.Context) (domain.Dataset, error) {
	var countText string
	countForm := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("How many projects?").
			Value(&countText).
			Validate(ValidateCount),
	))
	if err := runOrAbort(ctx, m.run, countForm); err != nil {
		return domain.Dataset{}, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(countText))
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("project count: %w", err)
	}

	entries := make([]ProjectEntry, count)
	for i := range entries {
		e := &entries[i]
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("Project %d name", i+1)).Value(&e.Name),
			huh.NewInput().Title(domain.ColumnCSAT).Value(&e.CSAT).Validate(ValidateNumber),
			huh.NewInput().Title(domain.ColumnOnTimeDelivery).Value(&e.OnTimeDelivery).Validate(ValidateNumber),
			huh.NewInput().Title(domain.ColumnBudgetVariance).Value(&e.BudgetVariance).Validate(ValidateNumber),
		))
		if err := runOrAbort(ctx, m.run, form); err != nil {
			return domain.Dataset{}, err
		}
	}

	return BuildDataset(entries)
}

// BuildDataset turns entries into a project table.
func BuildDataset(entries []ProjectEntry) (domain.Dataset, error) {
	if len(entries) == 0 {
		return domain.Dataset{}, domain.ErrEmptyDataset
	}
	ds := domain.Dataset{
		Columns: append([]string(nil), domain.RequiredColumns...),
		Rows:    make([][]domain.Cell, len(entries)),
	}
	for i, e := range entries {
		ds.Rows[i] = []domain.Cell{
			domain.TextCell(e.Name),
			domain.TextCell(e.CSAT),
			domain.TextCell(e.OnTimeDelivery),
			domain.TextCell(e.BudgetVariance),
		}
	}
	return ds, nil
}

// ValidateNumber accepts blank text or a decimal number.
func ValidateNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}

// ValidateCount accepts an integer in [1, MaxManualProjects].
func ValidateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%q is not a whole number", s)
	}
	if n < 1 || n > MaxManualProjects {
		return fmt.Errorf("enter between 1 and %d projects", MaxManualProjects)
	}
	return nil
}
