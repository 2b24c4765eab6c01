package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"sqa-dashboard/internal/domain"
	"sqa-dashboard/internal/validation"
)

// CSVLoader reads a comma-separated file with a header row.
type CSVLoader struct {
	Path     string
	Required []string
}

// Load implements Source.
func (l *CSVLoader) Load(ctx context.Context) (domain.Dataset, error) {
	f, err := os.Open(l.Path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	ds, err := ReadCSV(ctx, f)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read %s: %w", l.Path, err)
	}
	if l.Required != nil {
		if err := validation.CheckColumns(ds, l.Required); err != nil {
			return domain.Dataset{}, err
		}
	}
	return ds, nil
}

// ReadCSV parses CSV text into a Dataset. Ragged rows are allowed;
// short rows read as missing cells.
func ReadCSV(ctx context.Context, r io.Reader) (domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return domain.Dataset{}, err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("parse csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return tableFromRows(rows)
}

// WriteCSV writes records with the required header, formatting numbers
// with the shortest exact representation.
func WriteCSV(w io.Writer, records []domain.ProjectRecord) error {
	ds := domain.DatasetFromRecords(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := range ds.Rows {
		rec := make([]string, len(ds.Columns))
		for j := range ds.Columns {
			rec[j] = ds.Cell(i, j).Raw
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
