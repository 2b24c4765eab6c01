// Package charts renders the per-project KPI charts as PNG files.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"sqa-dashboard/internal/domain"
)

// Chart file names inside the output directory.
const (
	CSATFile   = "csat_trend.png"
	OnTimeFile = "on_time_delivery.png"
	BudgetFile = "budget_variance.png"
)

// ErrNoProjects is returned when there is nothing to plot.
var ErrNoProjects = errors.New("no projects to chart")

var (
	lineColor   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	onTimeColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	underColor  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	overColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	zeroColor   = color.RGBA{A: 255}
)

// Size of every saved chart.
const (
	width  = 8 * vg.Inch
	height = 4 * vg.Inch
)

// Render writes the three charts into dir and returns their file names
// relative to dir, in display order.
func Render(dir string, records []domain.ProjectRecord) ([]string, error) {
	if len(records) == 0 {
		return nil, ErrNoProjects
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}

	builders := []struct {
		file  string
		build func([]domain.ProjectRecord) (*plot.Plot, error)
	}{
		{CSATFile, CSATChart},
		{OnTimeFile, OnTimeChart},
		{BudgetFile, BudgetChart},
	}

	files := make([]string, 0, len(builders))
	for _, b := range builders {
		p, err := b.build(records)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", b.file, err)
		}
		if err := p.Save(width, height, filepath.Join(dir, b.file)); err != nil {
			return nil, fmt.Errorf("save %s: %w", b.file, err)
		}
		files = append(files, b.file)
	}
	return files, nil
}

// CSATChart plots customer satisfaction as a line over projects.
func CSATChart(records []domain.ProjectRecord) (*plot.Plot, error) {
	p := newPlot("Customer Satisfaction Over Projects", "CSAT (%)")

	pts := make(plotter.XYs, len(records))
	for i, r := range records {
		pts[i].X = float64(i)
		pts[i].Y = r.CSAT
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	points.Color = lineColor
	points.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, points)
	p.NominalX(names(records)...)
	return p, nil
}

// OnTimeChart plots the on-time delivery rate as bars.
func OnTimeChart(records []domain.ProjectRecord) (*plot.Plot, error) {
	p := newPlot("On-Time Delivery Rate by Project", "On-Time Delivery (%)")

	values := make(plotter.Values, len(records))
	for i, r := range records {
		values[i] = r.OnTimeDelivery
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = onTimeColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(plotter.NewGrid(), bars)
	p.NominalX(names(records)...)
	return p, nil
}

// BudgetChart plots budget variance as bars, green at or above zero and
// red below, with a dashed reference line at zero.
func BudgetChart(records []domain.ProjectRecord) (*plot.Plot, error) {
	p := newPlot("Budget Variance by Project", "Budget Variance")

	under := make(plotter.Values, len(records))
	over := make(plotter.Values, len(records))
	for i, r := range records {
		if r.BudgetVariance < 0 {
			over[i] = r.BudgetVariance
		} else {
			under[i] = r.BudgetVariance
		}
	}

	underBars, err := plotter.NewBarChart(under, vg.Points(20))
	if err != nil {
		return nil, err
	}
	underBars.Color = underColor
	underBars.LineStyle.Width = vg.Length(0)

	overBars, err := plotter.NewBarChart(over, vg.Points(20))
	if err != nil {
		return nil, err
	}
	overBars.Color = overColor
	overBars.LineStyle.Width = vg.Length(0)

	zero := plotter.NewFunction(func(float64) float64 { return 0 })
	zero.Color = zeroColor
	zero.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(plotter.NewGrid(), underBars, overBars, zero)
	p.NominalX(names(records)...)
	return p, nil
}

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Project"
	p.Y.Label.Text = yLabel
	return p
}

func names(records []domain.ProjectRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
