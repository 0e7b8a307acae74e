package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/greenops"
)

// Layout widths.
const (
	categoryLabelWidth = 16
	separatorWidth     = 60
	DefaultChartWidth  = 40
	minChartWidth      = 10
)

// Unit suffix shown after every tonne figure.
const tonnesPerYear = "tonnes CO2 per year"

// EducationText is the explanatory paragraph shown with every result.
const EducationText = `Your carbon footprint is a reflection of your daily activities and consumption
choices. By understanding the impact of your actions, you can make informed
decisions to reduce it. Small lifestyle changes such as driving less, using
energy-efficient appliances, eating less meat and recycling more can
significantly reduce your environmental impact.`

// Disclaimer returns the caveat shown alongside a result for country.
func Disclaimer(country string) string {
	return fmt.Sprintf("Your carbon footprint in %s may vary based on various factors "+
		"such as lifestyle, energy mix, and transportation choices.", country)
}

// FormatTonnes renders v with precision decimals and the tonnes suffix.
func FormatTonnes(v float64, precision int) string {
	return greenops.FormatFloat(v, precision) + " " + tonnesPerYear
}

func sectionHeader(title string) string {
	style := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	return style.Render(title) + "\n" + strings.Repeat("-", separatorWidth) + "\n"
}

// RenderBreakdown renders one line per category plus the total.
func RenderBreakdown(r footprint.Result, precision int) string {
	var sb strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	totalStyle := lipgloss.NewStyle().Foreground(ColorOK).Bold(true)

	sb.WriteString(sectionHeader("Carbon Emissions by Category"))
	for _, c := range footprint.Categories {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", categoryLabelWidth, c.String()+":")))
		sb.WriteString(valueStyle.Render(FormatTonnes(r.Value(c), precision)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", categoryLabelWidth, "Total:")))
	sb.WriteString(totalStyle.Render(FormatTonnes(r.Total, precision)))
	sb.WriteString("\n")

	return sb.String()
}

// RenderShareChart renders each category as a horizontal bar proportional
// to its share of the total, followed by the percentage to one decimal.
// A zero total renders empty bars at 0.0%.
func RenderShareChart(r footprint.Result, width int) string {
	if width < minChartWidth {
		width = minChartWidth
	}

	var sb strings.Builder
	sb.WriteString(sectionHeader("Emissions Breakdown"))

	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	for _, share := range r.Breakdown() {
		n := int(math.Round(share.Fraction * float64(width)))
		barStyle := lipgloss.NewStyle().Foreground(CategoryColor(share.Category))

		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", categoryLabelWidth, share.Name)))
		sb.WriteString(barStyle.Render(strings.Repeat(IconBar, n)))
		sb.WriteString(strings.Repeat(" ", width-n))
		sb.WriteString(fmt.Sprintf(" %6s\n", greenops.FormatPercent(share.Fraction, 1)))
	}

	return sb.String()
}

// RenderEquivalencies renders the real-world equivalencies, or nothing for
// an empty output.
func RenderEquivalencies(out greenops.EquivalencyOutput) string {
	if out.IsEmpty || len(out.Results) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(sectionHeader("What Does This Mean?"))

	valueStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	for _, res := range out.Results {
		sb.WriteString("  ~")
		sb.WriteString(valueStyle.Render(res.FormattedValue))
		sb.WriteString(" ")
		sb.WriteString(labelStyle.Render(res.Label))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderAverages renders the comparison of a footprint with the reference
// per-capita averages.
func RenderAverages(comparisons []greenops.AverageComparison, precision int) string {
	var sb strings.Builder
	sb.WriteString(sectionHeader("Global Averages"))

	for _, c := range comparisons {
		icon, color, word := IconArrowDown, ColorOK, "below"
		if c.Above() {
			icon, color, word = IconArrowUp, ColorWarning, "above"
		}
		diffStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

		sb.WriteString(fmt.Sprintf("  %-14s %s t  ", c.Label+":", greenops.FormatFloat(c.AverageTonnes, 1)))
		sb.WriteString(diffStyle.Render(fmt.Sprintf("%s %s t %s",
			icon, greenops.FormatFloat(math.Abs(c.Difference), precision), word)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// RenderResult renders the full result view for r.
func RenderResult(r footprint.Result, precision, width int) string {
	var sb strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	sb.WriteString(titleStyle.Render("Results for " + r.Country))
	sb.WriteString("\n\n")

	sb.WriteString(RenderBreakdown(r, precision))
	sb.WriteString("\n")

	warnStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	sb.WriteString(warnStyle.Render(Disclaimer(r.Country)))
	sb.WriteString("\n\n")

	chartWidth := DefaultChartWidth
	if width > 0 && width-categoryLabelWidth-10 < chartWidth {
		chartWidth = width - categoryLabelWidth - 10
	}
	sb.WriteString(RenderShareChart(r, chartWidth))
	sb.WriteString("\n")

	if eq, err := greenops.FromTonnes(r.Total); err == nil {
		if s := RenderEquivalencies(eq); s != "" {
			sb.WriteString(s)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(sectionHeader("Learn More About Carbon Emissions"))
	sb.WriteString(lipgloss.NewStyle().Foreground(ColorMuted).Render(EducationText))
	sb.WriteString("\n\n")
	sb.WriteString(RenderAverages(greenops.CompareToAverages(r.Total), precision))

	return sb.String()
}

// RenderLoadingIndicator renders the in-progress line.
func RenderLoadingIndicator() string {
	return lipgloss.NewStyle().Foreground(ColorSpinner).Bold(true).Render("Calculating...")
}
