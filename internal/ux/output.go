// Package ux provides terminal styling and interactive prompts for the
// dashboard CLI.
package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sqa-dashboard/internal/insights"
	"sqa-dashboard/internal/reporting"
)

// Dashboard palette.
var (
	ColorPrimary = lipgloss.Color("#1F77B4")
	ColorAccent  = lipgloss.Color("#5DADE2")
	ColorBorder  = lipgloss.Color("#2E86C1")
	ColorSuccess = lipgloss.Color("#2CA02C")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#D62728")
	ColorMuted   = lipgloss.Color("#7F8C8D")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style

	Box        lipgloss.Style
	WarningBox lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
	Subtitle: lipgloss.NewStyle().Foreground(ColorAccent),
	Bold:     lipgloss.NewStyle().Bold(true),
	Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
	Success:  lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:  lipgloss.NewStyle().Foreground(ColorWarning),
	Error:    lipgloss.NewStyle().Foreground(ColorError),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),
}

// Icon is a status marker.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconBullet  Icon = "•"
)

// Render returns the icon with its status color.
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	default:
		return string(i)
	}
}

// RenderSummary renders the averages-and-insights panel as styled boxes.
// The plain-text equivalent is reporting.RenderPanel.
func RenderSummary(r *reporting.Report) string {
	var sections []string

	sections = append(sections, Styles.Title.Render("SQA Dashboard"))

	kpiLines := []string{Styles.Subtitle.Render("Average KPI Values")}
	for _, k := range r.KPIs {
		value := fmt.Sprintf("%.2f", k.Value)
		if k.Percent {
			value += "%"
		}
		kpiLines = append(kpiLines, fmt.Sprintf("%s %s: %s", IconBullet, k.Label, Styles.Bold.Render(value)))
	}
	sections = append(sections, Styles.Box.Render(strings.Join(kpiLines, "\n")))

	if len(r.Insights) > 0 {
		box := Styles.Box
		if r.CautionCount() > 0 {
			box = Styles.WarningBox
		}
		lines := []string{Styles.Subtitle.Render("Insights")}
		for _, ins := range r.Insights {
			lines = append(lines, fmt.Sprintf("%s %s", severityIcon(ins.Severity).Render(), ins.Message))
		}
		sections = append(sections, box.Render(strings.Join(lines, "\n")))
	}

	if len(r.Summary.Entries) > 0 {
		lines := []string{Styles.Subtitle.Render("ISO/CMMI Checklist Evaluation Summary")}
		for _, e := range r.Summary.Entries {
			lines = append(lines, fmt.Sprintf("%s %s: %s", IconBullet, e.Label, e.Value))
		}
		sections = append(sections, Styles.Box.Render(strings.Join(lines, "\n")))
	}

	if len(r.DataSummary.FilledCells) > 0 {
		sections = append(sections, Styles.Muted.Render(
			fmt.Sprintf("%d missing value(s) were filled with defaults.", len(r.DataSummary.FilledCells))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func severityIcon(s insights.Severity) Icon {
	if s == insights.SeverityCaution {
		return IconWarning
	}
	return IconSuccess
}
