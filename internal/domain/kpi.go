package domain

// KPI display labels.
const (
	LabelAverageCSAT           = "Average CSAT"
	LabelOnTimeDeliveryRate    = "On-Time Delivery Rate"
	LabelAverageBudgetVariance = "Average Budget Variance"
)

// KPISet holds the aggregate means of the numeric columns.
// Defined only for a non-empty dataset.
type KPISet struct {
	AverageCSAT           float64
	AverageOnTimeDelivery float64
	AverageBudgetVariance float64

	// RecordCount is the number of rows aggregated.
	RecordCount int
}

// Trend is the direction of a column over dataset order.
type Trend string

const (
	TrendIncreasing Trend = "Increasing"
	TrendDecreasing Trend = "Decreasing"
	TrendFlat       Trend = "Flat"
)

// TrendDescription is the detector's output for one column.
type TrendDescription struct {
	Column    string
	Direction Trend
	MeanDelta float64 // mean of successive differences; 0 when fewer than two samples
	Samples   int     // number of successive differences averaged
}

// Text renders the trend as a sentence.
func (t TrendDescription) Text() string {
	switch t.Direction {
	case TrendIncreasing:
		return "The " + t.Column + " is generally increasing."
	case TrendDecreasing:
		return "The " + t.Column + " is generally decreasing."
	default:
		return "The " + t.Column + " shows no significant trend."
	}
}

// ComplianceResult is a scored checklist.
type ComplianceResult struct {
	Percentage float64 // 0..100
	Tier       string
	Answered   int // responses marked true
	Total      int // checklist items
}
