package checklist

import (
	"fmt"

	"sqa-dashboard/internal/domain"
)

const (
	LabelCompliance = "Compliance"
	LabelMaturity   = "Maturity Level"
)

// Entry is one line of the evaluation summary.
type Entry struct {
	Label string
	Value string
}

// Summary is the ordered checklist evaluation summary.
type Summary struct {
	Entries []Entry
}

// FormatResult renders a result as "80.00% (Mostly Compliant)".
func FormatResult(r domain.ComplianceResult) string {
	return fmt.Sprintf("%.2f%% (%s)", r.Percentage, r.Tier)
}

// Summarize builds the two-entry summary, compliance first.
func Summarize(compliance, maturity domain.ComplianceResult) Summary {
	return Summary{Entries: []Entry{
		{Label: LabelCompliance, Value: FormatResult(compliance)},
		{Label: LabelMaturity, Value: FormatResult(maturity)},
	}}
}

// Map returns the summary keyed by label.
func (s Summary) Map() map[string]string {
	m := make(map[string]string, len(s.Entries))
	for _, e := range s.Entries {
		m[e.Label] = e.Value
	}
	return m
}

// Lines returns "- Label: Value" lines in order.
func (s Summary) Lines() []string {
	lines := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		lines = append(lines, fmt.Sprintf("- %s: %s", e.Label, e.Value))
	}
	return lines
}
