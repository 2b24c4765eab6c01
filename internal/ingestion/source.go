// Package ingestion loads project tables from files, stores and fixtures.
package ingestion

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sqa-dashboard/internal/domain"
)

// Source provides the raw project table for one dashboard run.
type Source interface {
	// Load returns the table as read. Cells are not filled or converted;
	// that is the validator's job.
	Load(ctx context.Context) (domain.Dataset, error)
}

// Format is an input file format.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for file extensions with no loader.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// FileOptions configures NewFileSource.
type FileOptions struct {
	Path     string
	Format   Format
	Sheet    string   // xlsx only; empty selects the first sheet
	Required []string // checked at load time; nil skips the check
}

// NewFileSource picks a loader for the file. FormatAuto (or empty)
// decides by extension.
func NewFileSource(opts FileOptions) (Source, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".csv", ".txt":
			format = FormatCSV
		case ".xlsx", ".xlsm":
			format = FormatXLSX
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Path)
		}
	}

	switch format {
	case FormatCSV:
		return &CSVLoader{Path: opts.Path, Required: opts.Required}, nil
	case FormatXLSX:
		return &XLSXLoader{Path: opts.Path, Sheet: opts.Sheet, Required: opts.Required}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DatasetSource serves an in-memory dataset. Each Load returns a copy.
type DatasetSource struct {
	Dataset domain.Dataset
}

// Load implements Source.
func (s DatasetSource) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	return s.Dataset.Clone(), nil
}

// tableFromRows turns a header row plus data rows into a Dataset. Fully
// blank rows are skipped, matching spreadsheet readers.
func tableFromRows(rows [][]string) (domain.Dataset, error) {
	if len(rows) == 0 {
		return domain.Dataset{}, fmt.Errorf("%w: no header row", domain.ErrSchema)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = strings.TrimSpace(h)
	}

	ds := domain.Dataset{Columns: header, Rows: make([][]domain.Cell, 0, len(rows)-1)}
	for _, raw := range rows[1:] {
		if blankRow(raw) {
			continue
		}
		row := make([]domain.Cell, len(raw))
		for i, v := range raw {
			row[i] = domain.TextCell(v)
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func blankRow(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
