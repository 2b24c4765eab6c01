package reporting

import (
	"fmt"
	"strings"
	"time"

	"sqa-dashboard/internal/insights"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# SQA Dashboard Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Data version: %s\n\n", r.RunID, r.DataVersion))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Source | %s |\n", r.Source))
	sb.WriteString(fmt.Sprintf("| Projects | %d |\n", r.DataSummary.Records))
	sb.WriteString(fmt.Sprintf("| Columns | %s |\n", strings.Join(r.DataSummary.Columns, ", ")))
	sb.WriteString(fmt.Sprintf("| Default-filled cells | %d |\n", len(r.DataSummary.FilledCells)))
	sb.WriteString("\n")

	if len(r.DataSummary.FilledCells) > 0 {
		sb.WriteString("### Default-Filled Cells\n\n")
		for _, c := range r.DataSummary.FilledCells {
			sb.WriteString(fmt.Sprintf("- row %d, %s\n", c.Row, c.Column))
		}
		sb.WriteString("\n")
	}

	if len(r.DataQuality.Checks) > 0 {
		sb.WriteString("## Data Quality\n\n")
		sb.WriteString("| Check | Threshold | Actual | Status |\n")
		sb.WriteString("|-------|-----------|--------|--------|\n")
		for _, c := range r.DataQuality.Checks {
			status := "PASS"
			if !c.Pass {
				status = "WARN"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.Name, c.Threshold, c.Actual, status))
		}
		sb.WriteString("\n")
		for _, w := range r.DataQuality.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
		if len(r.DataQuality.Warnings) > 0 {
			sb.WriteString("\n")
		}
	}

	// KPIs
	sb.WriteString("## Average KPI Values\n\n")
	sb.WriteString("| KPI | Value |\n")
	sb.WriteString("|-----|-------|\n")
	for _, k := range r.KPIs {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", k.Label, formatKPI(k)))
	}
	sb.WriteString("\n")

	// Trends
	sb.WriteString("## Trends\n\n")
	if len(r.Trends) > 0 {
		sb.WriteString("| Column | Direction | Mean Change | Samples |\n")
		sb.WriteString("|--------|-----------|-------------|---------|\n")
		for _, t := range r.Trends {
			sb.WriteString(fmt.Sprintf("| %s | %s | %.4f | %d |\n",
				t.Column, t.Direction, t.MeanDelta, t.Samples))
		}
		sb.WriteString("\n")
		for _, t := range r.Trends {
			sb.WriteString(fmt.Sprintf("- %s\n", t.Description))
		}
		sb.WriteString("\n")
		if r.TrendPolicy != "" {
			sb.WriteString(fmt.Sprintf("Flat policy: %s\n\n", r.TrendPolicy))
		}
	} else {
		sb.WriteString("No trends computed.\n\n")
	}

	// Insights
	sb.WriteString(insights.RenderMarkdown(r.Insights))

	// Checklists
	sb.WriteString("## ISO/CMMI Checklist Evaluation\n\n")
	if len(r.Checklists) > 0 {
		sb.WriteString("| Checklist | Yes | Items | Score | Tier |\n")
		sb.WriteString("|-----------|-----|-------|-------|------|\n")
		for _, c := range r.Checklists {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f%% | %s |\n",
				c.Title, c.Answered, c.Total, c.Percentage, c.Tier))
		}
		sb.WriteString("\n")
	}
	for _, line := range r.Summary.Lines() {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")

	// Projects
	sb.WriteString("## Projects\n\n")
	if len(r.Projects) > 0 {
		sb.WriteString("| Project | CSAT | On-Time Delivery | Budget Variance | Budget |\n")
		sb.WriteString("|---------|------|------------------|-----------------|--------|\n")
		for _, p := range r.Projects {
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %.2f | %.2f | %s |\n",
				p.Name, p.CSAT, p.OnTimeDelivery, p.BudgetVariance, p.BudgetStatus))
		}
	} else {
		sb.WriteString("No projects.\n")
	}
	sb.WriteString("\n")

	if len(r.Charts) > 0 {
		sb.WriteString("## Charts\n\n")
		for _, c := range r.Charts {
			sb.WriteString(fmt.Sprintf("![%s](%s)\n", c, c))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderPanel renders the plain-text "averages and insights" panel.
func RenderPanel(r *Report) string {
	var sb strings.Builder

	sb.WriteString("Average KPI Values:\n")
	for _, k := range r.KPIs {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", k.Label, formatKPI(k)))
	}
	sb.WriteString("\n")

	sb.WriteString("Insights:\n")
	for _, msg := range insights.Messages(r.Insights) {
		sb.WriteString(fmt.Sprintf("- %s\n", msg))
	}

	if len(r.Summary.Entries) > 0 {
		sb.WriteString("\nISO/CMMI Checklist Evaluation Summary:\n")
		for _, line := range r.Summary.Lines() {
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

func formatKPI(k KPIRow) string {
	if k.Percent {
		return fmt.Sprintf("%.2f%%", k.Value)
	}
	return fmt.Sprintf("%.2f", k.Value)
}
