package domain

import (
	"errors"
	"math"
	"testing"
)

func sampleDataset() Dataset {
	return Dataset{
		Columns: []string{ColumnProject, ColumnCSAT, ColumnOnTimeDelivery, ColumnBudgetVariance},
		Rows: [][]Cell{
			{TextCell("Project1"), TextCell("85"), TextCell("95"), TextCell("2")},
			{TextCell("Project2"), TextCell(""), TextCell("85"), TextCell("-3")},
			{TextCell("Project3"), TextCell("92")},
		},
	}
}

func TestIsMissingText(t *testing.T) {
	for _, raw := range []string{"", "  ", "NA", "NaN", "null", "None", "#N/A"} {
		if !IsMissingText(raw) {
			t.Errorf("expected %q to be missing", raw)
		}
	}
	for _, raw := range []string{"0", "abc", "-1.5"} {
		if IsMissingText(raw) {
			t.Errorf("expected %q to be present", raw)
		}
	}
}

func TestDataset_Float64Column(t *testing.T) {
	ds := sampleDataset()

	vals, err := ds.Float64Column(ColumnCSAT)
	if err != nil {
		t.Fatalf("Float64Column failed: %v", err)
	}
	if len(vals) != 3 {
		t.Fatalf("expected 3 values, got %d", len(vals))
	}
	if vals[0] != 85 {
		t.Errorf("expected 85, got %v", vals[0])
	}
	if !math.IsNaN(vals[1]) {
		t.Errorf("expected NaN for missing cell, got %v", vals[1])
	}

	// Short row reads as missing
	budget, err := ds.Float64Column(ColumnBudgetVariance)
	if err != nil {
		t.Fatalf("Float64Column failed: %v", err)
	}
	if !math.IsNaN(budget[2]) {
		t.Errorf("expected NaN for short row, got %v", budget[2])
	}
}

func TestDataset_Float64Column_UnknownColumn(t *testing.T) {
	ds := sampleDataset()

	_, err := ds.Float64Column("Velocity")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
	var uce *UnknownColumnError
	if !errors.As(err, &uce) || uce.Column != "Velocity" {
		t.Errorf("expected UnknownColumnError for Velocity, got %v", err)
	}
}

func TestDataset_Float64Column_NonNumeric(t *testing.T) {
	ds := sampleDataset()
	ds.Rows[0][1] = TextCell("excellent")

	_, err := ds.Float64Column(ColumnCSAT)
	if !errors.Is(err, ErrDataQuality) {
		t.Fatalf("expected ErrDataQuality, got %v", err)
	}
	var dqe *DataQualityError
	if !errors.As(err, &dqe) {
		t.Fatalf("expected DataQualityError, got %T", err)
	}
	if dqe.Row != 0 || dqe.Value != "excellent" {
		t.Errorf("unexpected error detail: %+v", dqe)
	}
}

func TestDataset_Float64Column_Infinite(t *testing.T) {
	ds := sampleDataset()
	ds.Rows[0][1] = TextCell("Inf")

	if _, err := ds.Float64Column(ColumnCSAT); !errors.Is(err, ErrDataQuality) {
		t.Fatalf("expected ErrDataQuality for Inf, got %v", err)
	}
}

func TestDataset_CloneIsIndependent(t *testing.T) {
	ds := sampleDataset()
	cp := ds.Clone()
	cp.Rows[0][1] = TextCell("10")
	cp.Columns[0] = "Renamed"

	if ds.Rows[0][1].Raw != "85" {
		t.Errorf("clone mutation leaked into source row: %q", ds.Rows[0][1].Raw)
	}
	if ds.Columns[0] != ColumnProject {
		t.Errorf("clone mutation leaked into source header: %q", ds.Columns[0])
	}
}

func TestDatasetFromRecords_RoundTrip(t *testing.T) {
	records := []ProjectRecord{
		{Name: "A", CSAT: 80.5, OnTimeDelivery: 90, BudgetVariance: -3},
		{Name: "B", CSAT: 70, OnTimeDelivery: 99.25, BudgetVariance: 2},
	}

	got, err := DatasetFromRecords(records).Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("expected %d records, got %d", len(records), len(got))
	}
	for i := range records {
		if got[i] != records[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestTrendDescription_Text(t *testing.T) {
	tests := []struct {
		dir  Trend
		want string
	}{
		{TrendIncreasing, "The CSAT is generally increasing."},
		{TrendDecreasing, "The CSAT is generally decreasing."},
		{TrendFlat, "The CSAT shows no significant trend."},
	}
	for _, tt := range tests {
		got := TrendDescription{Column: ColumnCSAT, Direction: tt.dir}.Text()
		if got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.dir, got, tt.want)
		}
	}
}
