// Package insights maps aggregated KPIs and per-project budget variance
// to fixed textual findings.
package insights

import (
	"fmt"
	"strings"

	"sqa-dashboard/internal/domain"
)

// Generator evaluates KPI thresholds and budget partitions.
type Generator struct {
	thresholds Thresholds
}

// NewGenerator creates a new insight generator.
func NewGenerator(thresholds Thresholds) *Generator {
	return &Generator{thresholds: thresholds}
}

// Thresholds returns the active cut-offs.
func (g *Generator) Thresholds() Thresholds {
	return g.thresholds
}

// Evaluate produces insights in fixed order: CSAT, on-time delivery,
// over-budget (if any), under-budget (if any). Rules are independent.
//
// Projects with BudgetVariance < 0 are over budget and those with > 0 are
// under budget. Zero variance belongs to neither partition.
func (g *Generator) Evaluate(kpis domain.KPISet, ds domain.Dataset) ([]Insight, error) {
	out := make([]Insight, 0, 4)
	out = append(out, g.evaluateCSAT(kpis), g.evaluateOnTime(kpis))

	over, under, err := partitionBudget(ds)
	if err != nil {
		return nil, err
	}

	if len(over) > 0 {
		out = append(out, Insight{
			Kind:      KindOverBudget,
			Severity:  SeverityCaution,
			Name:      "Over-budget projects",
			Threshold: "BudgetVariance < 0",
			Actual:    fmt.Sprintf("%d project(s)", len(over)),
			Message: fmt.Sprintf("The following projects are over budget: %s. Review cost management strategies for these projects.",
				strings.Join(over, ", ")),
			Projects: over,
		})
	}
	if len(under) > 0 {
		out = append(out, Insight{
			Kind:      KindUnderBudget,
			Severity:  SeverityPositive,
			Name:      "Within or under-budget projects",
			Threshold: "BudgetVariance > 0",
			Actual:    fmt.Sprintf("%d project(s)", len(under)),
			Message: fmt.Sprintf("The following projects are staying within or under budget: %s. Consider re-evaluating resource allocation to optimize usage.",
				strings.Join(under, ", ")),
			Projects: under,
		})
	}

	return out, nil
}

func (g *Generator) evaluateCSAT(kpis domain.KPISet) Insight {
	in := Insight{
		Kind:      KindCSAT,
		Name:      domain.LabelAverageCSAT,
		Threshold: fmt.Sprintf(">= %g", g.thresholds.CSAT),
		Actual:    fmt.Sprintf("%.2f%%", kpis.AverageCSAT),
	}
	if kpis.AverageCSAT < g.thresholds.CSAT {
		in.Severity = SeverityCaution
		in.Message = "Customer satisfaction is below the desired threshold. Focus on improving communication with clients and addressing their concerns effectively."
	} else {
		in.Severity = SeverityPositive
		in.Message = "Customer satisfaction is at an acceptable level. Continue maintaining high-quality delivery."
	}
	return in
}

func (g *Generator) evaluateOnTime(kpis domain.KPISet) Insight {
	in := Insight{
		Kind:      KindOnTimeDelivery,
		Name:      domain.LabelOnTimeDeliveryRate,
		Threshold: fmt.Sprintf(">= %g", g.thresholds.OnTimeDelivery),
		Actual:    fmt.Sprintf("%.2f%%", kpis.AverageOnTimeDelivery),
	}
	if kpis.AverageOnTimeDelivery < g.thresholds.OnTimeDelivery {
		in.Severity = SeverityCaution
		in.Message = fmt.Sprintf("On-time delivery rate is below %g%%. Consider optimizing project schedules and improving time management practices.",
			g.thresholds.OnTimeDelivery)
	} else {
		in.Severity = SeverityPositive
		in.Message = "On-time delivery rate is excellent. Maintain the current project scheduling strategies."
	}
	return in
}

// partitionBudget splits project names by the sign of BudgetVariance,
// preserving input order. Missing variance joins neither side.
func partitionBudget(ds domain.Dataset) (over, under []string, err error) {
	names, err := ds.Strings(domain.ColumnProject)
	if err != nil {
		return nil, nil, err
	}
	variance, err := ds.Float64Column(domain.ColumnBudgetVariance)
	if err != nil {
		return nil, nil, err
	}

	for i, v := range variance {
		switch {
		case v < 0:
			over = append(over, names[i])
		case v > 0:
			under = append(under, names[i])
		}
	}
	return over, under, nil
}

// Messages returns the message text of each insight, in order.
func Messages(insights []Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Message
	}
	return out
}

// Generate evaluates the default thresholds and returns the messages.
func Generate(kpis domain.KPISet, ds domain.Dataset) ([]string, error) {
	insights, err := NewGenerator(DefaultThresholds()).Evaluate(kpis, ds)
	if err != nil {
		return nil, err
	}
	return Messages(insights), nil
}
