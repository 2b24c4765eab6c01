package checklist

import (
	"errors"
	"fmt"
)

// ErrNoBand is returned when a percentage falls below every band.
var ErrNoBand = errors.New("percentage below every band")

// ErrInvalidBands is returned for an empty or unordered band table.
var ErrInvalidBands = errors.New("invalid band table")

// Band is one step of a tier table: percentages >= LowerBound get Label.
type Band struct {
	LowerBound float64
	Label      string
}

// Bands is a tier table ordered by descending LowerBound.
type Bands []Band

// ComplianceBands is the four-tier ISO 9001 compliance table.
var ComplianceBands = Bands{
	{LowerBound: 100, Label: "Fully Compliant"},
	{LowerBound: 75, Label: "Mostly Compliant"},
	{LowerBound: 50, Label: "Partially Compliant"},
	{LowerBound: 0, Label: "Non-Compliant"},
}

// MaturityBands is the five-level CMMI maturity table.
var MaturityBands = Bands{
	{LowerBound: 100, Label: "Level 5: Optimizing"},
	{LowerBound: 75, Label: "Level 4: Quantitatively Managed"},
	{LowerBound: 50, Label: "Level 3: Defined"},
	{LowerBound: 25, Label: "Level 2: Managed"},
	{LowerBound: 0, Label: "Level 1: Initial"},
}

// Validate checks the table is non-empty with strictly descending bounds.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidBands)
	}
	for i := 1; i < len(b); i++ {
		if b[i].LowerBound >= b[i-1].LowerBound {
			return fmt.Errorf("%w: band %q (%g) is not below %q (%g)",
				ErrInvalidBands, b[i].Label, b[i].LowerBound, b[i-1].Label, b[i-1].LowerBound)
		}
	}
	return nil
}

// Classify returns the label of the first band whose lower bound the
// percentage reaches. Bounds are inclusive.
func (b Bands) Classify(pct float64) (string, error) {
	for _, band := range b {
		if pct >= band.LowerBound {
			return band.Label, nil
		}
	}
	return "", fmt.Errorf("%w: %.2f", ErrNoBand, pct)
}
