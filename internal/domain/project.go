package domain

import (
	"math"
	"strconv"
	"strings"
)

// Column names of the project input table.
const (
	ColumnProject        = "Project"
	ColumnCSAT           = "CSAT"
	ColumnOnTimeDelivery = "OnTimeDelivery"
	ColumnBudgetVariance = "BudgetVariance"
)

// RequiredColumns lists the columns every input table must carry.
var RequiredColumns = []string{
	ColumnProject,
	ColumnCSAT,
	ColumnOnTimeDelivery,
	ColumnBudgetVariance,
}

// NumericColumns lists the KPI columns, in report order.
var NumericColumns = []string{
	ColumnCSAT,
	ColumnOnTimeDelivery,
	ColumnBudgetVariance,
}

// ProjectRecord is one row of the dashboard input.
type ProjectRecord struct {
	Name           string
	CSAT           float64
	OnTimeDelivery float64
	BudgetVariance float64
}

// missingMarkers are cell texts treated as absent values.
var missingMarkers = map[string]struct{}{
	"":     {},
	"#N/A": {},
	"N/A":  {},
	"n/a":  {},
	"NA":   {},
	"<NA>": {},
	"NULL": {},
	"null": {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"-nan": {},
	"None": {},
}

// IsMissingText reports whether raw cell text denotes a missing value.
func IsMissingText(raw string) bool {
	_, ok := missingMarkers[strings.TrimSpace(raw)]
	return ok
}

// Cell is a single table value. Raw text is kept as loaded; numeric
// interpretation happens only when a column is read as numbers.
type Cell struct {
	Raw     string
	Missing bool
}

// TextCell builds a cell from raw text, flagging missing markers.
func TextCell(raw string) Cell {
	raw = strings.TrimSpace(raw)
	return Cell{Raw: raw, Missing: IsMissingText(raw)}
}

// NumberCell builds a cell from a numeric value.
func NumberCell(v float64) Cell {
	if math.IsNaN(v) {
		return MissingCell()
	}
	return Cell{Raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// OptionalNumberCell builds a cell from a nullable numeric value.
func OptionalNumberCell(v *float64) Cell {
	if v == nil {
		return MissingCell()
	}
	return NumberCell(*v)
}

// MissingCell returns an absent value.
func MissingCell() Cell {
	return Cell{Missing: true}
}

// Dataset is an ordered table of project rows. Rows may be shorter than
// Columns; absent trailing cells read as missing.
type Dataset struct {
	Columns []string
	Rows    [][]Cell
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the header contains name.
func (d Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Cell returns the cell at (row, col), treating short rows as missing.
func (d Dataset) Cell(row, col int) Cell {
	if row < 0 || row >= len(d.Rows) || col < 0 {
		return MissingCell()
	}
	r := d.Rows[row]
	if col >= len(r) {
		return MissingCell()
	}
	return r[col]
}

// Clone returns a deep copy.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Columns: append([]string(nil), d.Columns...),
		Rows:    make([][]Cell, len(d.Rows)),
	}
	for i, r := range d.Rows {
		out.Rows[i] = append([]Cell(nil), r...)
	}
	return out
}

// Strings returns a column as text. Missing cells read as "".
func (d Dataset) Strings(name string) ([]string, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, &UnknownColumnError{Column: name}
	}
	out := make([]string, len(d.Rows))
	for i := range d.Rows {
		c := d.Cell(i, idx)
		if !c.Missing {
			out[i] = c.Raw
		}
	}
	return out, nil
}

// Float64Column parses a column as numbers in row order.
// Missing cells yield NaN. Text that is not a finite number fails with
// a DataQualityError naming the first offending row.
func (d Dataset) Float64Column(name string) ([]float64, error) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, &UnknownColumnError{Column: name}
	}
	out := make([]float64, len(d.Rows))
	for i := range d.Rows {
		c := d.Cell(i, idx)
		if c.Missing {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Raw), 64)
		if err != nil {
			return nil, &DataQualityError{Column: name, Row: i, Value: c.Raw, Err: err}
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, &DataQualityError{Column: name, Row: i, Value: c.Raw}
		}
		out[i] = v
	}
	return out, nil
}

// Records converts the table into project records.
func (d Dataset) Records() ([]ProjectRecord, error) {
	names, err := d.Strings(ColumnProject)
	if err != nil {
		return nil, err
	}
	csat, err := d.Float64Column(ColumnCSAT)
	if err != nil {
		return nil, err
	}
	onTime, err := d.Float64Column(ColumnOnTimeDelivery)
	if err != nil {
		return nil, err
	}
	budget, err := d.Float64Column(ColumnBudgetVariance)
	if err != nil {
		return nil, err
	}

	records := make([]ProjectRecord, len(d.Rows))
	for i := range records {
		records[i] = ProjectRecord{
			Name:           names[i],
			CSAT:           csat[i],
			OnTimeDelivery: onTime[i],
			BudgetVariance: budget[i],
		}
	}
	return records, nil
}

// DatasetFromRecords builds a table with the required columns.
func DatasetFromRecords(records []ProjectRecord) Dataset {
	ds := Dataset{
		Columns: append([]string(nil), RequiredColumns...),
		Rows:    make([][]Cell, len(records)),
	}
	for i, r := range records {
		ds.Rows[i] = []Cell{
			TextCell(r.Name),
			NumberCell(r.CSAT),
			NumberCell(r.OnTimeDelivery),
			NumberCell(r.BudgetVariance),
		}
	}
	return ds
}
