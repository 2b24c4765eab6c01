package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Typed errors below match these with errors.Is.
var (
	// ErrSchema is returned when required columns are absent.
	ErrSchema = errors.New("schema error")

	// ErrDataQuality is returned when a numeric column holds text that is
	// not a finite number.
	ErrDataQuality = errors.New("data quality error")

	// ErrEmptyDataset is returned when aggregating over zero values.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrUnknownColumn is returned when a column is requested that the
	// dataset does not carry.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrLengthMismatch is returned when checklist responses do not pair
	// one-to-one with checklist items.
	ErrLengthMismatch = errors.New("length mismatch")
)

// MissingColumnsError lists every required column absent from a table.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrSchema
}

// MissingColumnError is returned by aggregation when one column is absent.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q in dataset", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrSchema
}

// DataQualityError reports a cell that cannot be read as a finite number.
type DataQualityError struct {
	Column string
	Row    int // zero-based data row
	Value  string
	Err    error
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("column %q row %d: %q is not a finite number", e.Column, e.Row+1, e.Value)
}

func (e *DataQualityError) Is(target error) bool {
	return target == ErrDataQuality
}

func (e *DataQualityError) Unwrap() error {
	return e.Err
}

// UnknownColumnError is returned for trend or column requests on absent columns.
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q not found in the dataset", e.Column)
}

func (e *UnknownColumnError) Is(target error) bool {
	return target == ErrUnknownColumn
}

// LengthMismatchError is returned when response and item counts differ.
type LengthMismatchError struct {
	Items     int
	Responses int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("checklist has %d items but %d responses", e.Items, e.Responses)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}
