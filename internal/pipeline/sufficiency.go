package pipeline

import (
	"fmt"
	"sort"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/reporting"
	"sqa-dashboard/internal/validation"
)

// MinTrendProjects is the smallest table with at least one successive
// difference per column.
const MinTrendProjects = 2

// SufficiencyCheck represents one data sufficiency criterion.
type SufficiencyCheck struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// SufficiencyResult contains every check. Failed checks are warnings;
// the run still completes.
type SufficiencyResult struct {
	Checks   []SufficiencyCheck
	AllPass  bool
	Warnings []string
}

// CheckSufficiency inspects a validated table:
//   - enough projects for a trend
//   - no default-filled numeric cells
//   - no duplicate project names
//   - no unnamed projects
func CheckSufficiency(v *validation.Result) (*SufficiencyResult, error) {
	names, err := v.Dataset.Strings(domain.ColumnProject)
	if err != nil {
		return nil, fmt.Errorf("check sufficiency: %w", err)
	}

	result := &SufficiencyResult{AllPass: true}
	add := func(c SufficiencyCheck, warnings ...string) {
		result.Checks = append(result.Checks, c)
		if !c.Pass {
			result.AllPass = false
			result.Warnings = append(result.Warnings, warnings...)
		}
	}

	n := v.Dataset.Len()
	add(SufficiencyCheck{
		Name:      "Projects for trend detection",
		Threshold: fmt.Sprintf(">= %d", MinTrendProjects),
		Actual:    fmt.Sprintf("%d", n),
		Pass:      n >= MinTrendProjects,
	}, "fewer than two projects: every trend is Flat")

	filled := len(v.FilledCells)
	add(SufficiencyCheck{
		Name:      "Default-filled cells",
		Threshold: "== 0",
		Actual:    fmt.Sprintf("%d", filled),
		Pass:      filled == 0,
	}, fmt.Sprintf("%d missing value(s) were replaced by %s and pull averages toward zero", filled, validation.DefaultFill))

	dups := duplicateNames(names)
	dupWarnings := make([]string, len(dups))
	for i, d := range dups {
		dupWarnings[i] = fmt.Sprintf("project name %q appears more than once", d)
	}
	add(SufficiencyCheck{
		Name:      "Duplicate project names",
		Threshold: "== 0",
		Actual:    fmt.Sprintf("%d", len(dups)),
		Pass:      len(dups) == 0,
	}, dupWarnings...)

	unnamed := 0
	for _, name := range names {
		if name == "" {
			unnamed++
		}
	}
	add(SufficiencyCheck{
		Name:      "Unnamed projects",
		Threshold: "== 0",
		Actual:    fmt.Sprintf("%d", unnamed),
		Pass:      unnamed == 0,
	}, fmt.Sprintf("%d project(s) have no name", unnamed))

	return result, nil
}

// duplicateNames returns names seen more than once, sorted. Empty names
// are counted by the unnamed check instead.
func duplicateNames(names []string) []string {
	seen := make(map[string]int, len(names))
	for _, n := range names {
		if n != "" {
			seen[n]++
		}
	}
	var dups []string
	for n, count := range seen {
		if count > 1 {
			dups = append(dups, n)
		}
	}
	sort.Strings(dups)
	return dups
}

func convertToDataQuality(r *SufficiencyResult) reporting.DataQualitySection {
	checks := make([]reporting.QualityCheckRow, len(r.Checks))
	for i, c := range r.Checks {
		checks[i] = reporting.QualityCheckRow{
			Name:      c.Name,
			Threshold: c.Threshold,
			Actual:    c.Actual,
			Pass:      c.Pass,
		}
	}
	return reporting.DataQualitySection{
		Checks:          checks,
		AllChecksPassed: r.AllPass,
		Warnings:        append([]string(nil), r.Warnings...),
	}
}
