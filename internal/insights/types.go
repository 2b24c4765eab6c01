package insights

// Kind identifies which rule produced an insight.
type Kind string

const (
	KindCSAT           Kind = "csat"
	KindOnTimeDelivery Kind = "on_time_delivery"
	KindOverBudget     Kind = "over_budget"
	KindUnderBudget    Kind = "under_budget"
)

// Severity marks an insight as good news or a caution.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityCaution  Severity = "caution"
)

// Thresholds holds the KPI cut-offs. A KPI strictly below its threshold
// produces a cautionary insight.
type Thresholds struct {
	CSAT           float64
	OnTimeDelivery float64
}

// DefaultThresholds returns the standard cut-offs (CSAT 80, on-time 90).
func DefaultThresholds() Thresholds {
	return Thresholds{
		CSAT:           80,
		OnTimeDelivery: 90,
	}
}

// Insight is one generated finding.
type Insight struct {
	Kind      Kind
	Severity  Severity
	Name      string
	Threshold string
	Actual    string
	Message   string
	Projects  []string // budget partitions only, input order
}
