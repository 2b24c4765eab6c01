package metrics

import (
	"fmt"
	"math"
	"strconv"

	"sqa-dashboard/internal/domain"
)

// TrendDetector classifies the mean of successive differences of a column.
//
// With Tolerance == 0 the sign is compared exactly against zero, so
// floating-point noise near zero classifies as Increasing or Decreasing.
// A positive Tolerance classifies |mean| <= Tolerance as Flat.
type TrendDetector struct {
	Tolerance float64
}

// NewTrendDetector creates a detector. Negative tolerances are treated as 0.
func NewTrendDetector(tolerance float64) *TrendDetector {
	if tolerance < 0 || math.IsNaN(tolerance) {
		tolerance = 0
	}
	return &TrendDetector{Tolerance: tolerance}
}

// Policy describes the active flat-trend rule.
func (d *TrendDetector) Policy() string {
	if d.Tolerance == 0 {
		return "exact: mean delta == 0 is flat"
	}
	return fmt.Sprintf("tolerance: |mean delta| <= %g is flat", d.Tolerance)
}

// Detect computes the trend of one column in dataset order.
// Fewer than two values, or no usable differences, yield Flat. A
// difference that overflows to ±Inf is kept, so the mean follows its
// sign; overflows in both directions leave no defined mean and return a
// DataQualityError at the first infinite difference.
func (d *TrendDetector) Detect(ds domain.Dataset, column string) (domain.TrendDescription, error) {
	if !ds.HasColumn(column) {
		return domain.TrendDescription{}, &domain.UnknownColumnError{Column: column}
	}
	values, err := ds.Float64Column(column)
	if err != nil {
		return domain.TrendDescription{}, err
	}

	diffs := computeDiffs(values)
	mean, n := computeMean(diffs)
	if math.IsNaN(mean) {
		return domain.TrendDescription{}, undefinedTrend(column, diffs)
	}
	desc := domain.TrendDescription{
		Column:    column,
		MeanDelta: mean,
		Samples:   n,
		Direction: d.classify(mean, n),
	}
	return desc, nil
}

// DetectAll runs Detect over each column in order.
func (d *TrendDetector) DetectAll(ds domain.Dataset, columns ...string) ([]domain.TrendDescription, error) {
	out := make([]domain.TrendDescription, 0, len(columns))
	for _, col := range columns {
		desc, err := d.Detect(ds, col)
		if err != nil {
			return nil, fmt.Errorf("detect trend %s: %w", col, err)
		}
		out = append(out, desc)
	}
	return out, nil
}

func undefinedTrend(column string, diffs []float64) error {
	for i, v := range diffs {
		if math.IsInf(v, 0) {
			return &domain.DataQualityError{
				Column: column,
				Row:    i + 1,
				Value:  "difference " + strconv.FormatFloat(v, 'g', -1, 64),
			}
		}
	}
	return &domain.DataQualityError{Column: column, Row: 0, Value: "NaN"}
}

func (d *TrendDetector) classify(mean float64, samples int) domain.Trend {
	if samples == 0 {
		return domain.TrendFlat
	}
	switch {
	case mean > d.Tolerance:
		return domain.TrendIncreasing
	case mean < -d.Tolerance:
		return domain.TrendDecreasing
	default:
		return domain.TrendFlat
	}
}

// DetectTrend detects a column trend with the exact-zero policy.
func DetectTrend(ds domain.Dataset, column string) (domain.TrendDescription, error) {
	return NewTrendDetector(0).Detect(ds, column)
}
