package reporting

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// RenderCSV renders the project table plus portfolio averages as CSV.
// The averages row uses the project name "AVERAGE".
func RenderCSV(r *Report) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	_ = w.Write([]string{"project", "csat", "on_time_delivery", "budget_variance", "budget_status"})
	for _, p := range r.Projects {
		_ = w.Write([]string{
			p.Name,
			formatFloat(p.CSAT),
			formatFloat(p.OnTimeDelivery),
			formatFloat(p.BudgetVariance),
			p.BudgetStatus,
		})
	}
	_ = w.Write([]string{
		"AVERAGE",
		formatFloat(r.KPISet.AverageCSAT),
		formatFloat(r.KPISet.AverageOnTimeDelivery),
		formatFloat(r.KPISet.AverageBudgetVariance),
		"",
	})

	// Writes go to a strings.Builder and cannot fail.
	w.Flush()
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
