// Package checklist scores yes/no questionnaires into a percentage and a
// tier label, and defines how responses are collected.
package checklist

import (
	"errors"
	"fmt"

	"sqa-dashboard/internal/domain"
)

// ErrEmptyChecklist is returned when scoring a checklist with no items.
var ErrEmptyChecklist = errors.New("checklist has no items")

// Score computes 100 * count(true) / len(items) and bands the result.
func Score(items []string, responses []bool, bands Bands) (domain.ComplianceResult, error) {
	if len(responses) != len(items) {
		return domain.ComplianceResult{}, &domain.LengthMismatchError{Items: len(items), Responses: len(responses)}
	}
	if len(items) == 0 {
		return domain.ComplianceResult{}, ErrEmptyChecklist
	}

	answered := 0
	for _, r := range responses {
		if r {
			answered++
		}
	}
	pct := 100 * float64(answered) / float64(len(items))

	tier, err := bands.Classify(pct)
	if err != nil {
		return domain.ComplianceResult{}, err
	}

	return domain.ComplianceResult{
		Percentage: pct,
		Tier:       tier,
		Answered:   answered,
		Total:      len(items),
	}, nil
}

// Score scores responses against this definition.
func (d Definition) Score(responses []bool) (domain.ComplianceResult, error) {
	res, err := Score(d.Items, responses, d.Bands)
	if err != nil {
		return domain.ComplianceResult{}, fmt.Errorf("score %s: %w", d.Title, err)
	}
	return res, nil
}
