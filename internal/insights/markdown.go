package insights

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders insights as a Markdown section.
func RenderMarkdown(insights []Insight) string {
	var sb strings.Builder

	sb.WriteString("## Insights\n\n")
	if len(insights) == 0 {
		sb.WriteString("No insights generated.\n\n")
		return sb.String()
	}

	sb.WriteString("| # | Rule | Threshold | Actual | Status |\n")
	sb.WriteString("|---|------|-----------|--------|--------|\n")
	for i, in := range insights {
		status := "OK"
		if in.Severity == SeverityCaution {
			status = "CAUTION"
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1, in.Name, in.Threshold, in.Actual, status))
	}
	sb.WriteString("\n")

	for _, in := range insights {
		sb.WriteString(fmt.Sprintf("- %s\n", in.Message))
	}
	sb.WriteString("\n")

	cautions := 0
	for _, in := range insights {
		if in.Severity == SeverityCaution {
			cautions++
		}
	}
	sb.WriteString(fmt.Sprintf("Cautions: %d/%d\n\n", cautions, len(insights)))

	return sb.String()
}
