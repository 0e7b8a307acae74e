package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonfocus/internal/footprint"
)

func indiaResult(t *testing.T) footprint.Result {
	t.Helper()
	r, err := footprint.Calculate(footprint.Input{
		Country:               "India",
		DailyDistanceKm:       10,
		MonthlyElectricityKWh: 200,
		WeeklyWasteKg:         5,
		MealsPerDay:           3,
	})
	require.NoError(t, err)
	return r
}

func TestDisclaimer(t *testing.T) {
	assert.True(t, strings.HasPrefix(Disclaimer("Japan"), "Your carbon footprint in Japan may vary"))
}

func TestFormatTonnes(t *testing.T) {
	assert.Equal(t, "3.87 tonnes CO2 per year", FormatTonnes(3.87375, 2))
	assert.Equal(t, "4 tonnes CO2 per year", FormatTonnes(4.1, 0))
}

func TestRenderBreakdown(t *testing.T) {
	out := RenderBreakdown(indiaResult(t), 2)

	assert.Contains(t, out, "Carbon Emissions by Category")
	assert.Contains(t, out, "Transportation:")
	assert.Contains(t, out, "0.51 tonnes CO2 per year")
	assert.Contains(t, out, "1.97 tonnes CO2 per year")
	assert.Contains(t, out, "1.37 tonnes CO2 per year")
	assert.Contains(t, out, "0.03 tonnes CO2 per year")
	assert.Contains(t, out, "3.87 tonnes CO2 per year")
}

func TestRenderShareChart(t *testing.T) {
	t.Run("percentages and bars", func(t *testing.T) {
		out := RenderShareChart(indiaResult(t), DefaultChartWidth)

		assert.Contains(t, out, "Emissions Breakdown")
		assert.Contains(t, out, "50.8%")
		assert.Contains(t, out, "13.2%")
		assert.Contains(t, out, strings.Repeat(IconBar, 20))
		assert.NotContains(t, out, strings.Repeat(IconBar, 21))
	})

	t.Run("zero total", func(t *testing.T) {
		out := RenderShareChart(footprint.Result{Country: "India"}, DefaultChartWidth)
		assert.NotContains(t, out, IconBar)
		assert.Equal(t, 4, strings.Count(out, "0.0%"))
	})

	t.Run("minimum width", func(t *testing.T) {
		r := footprint.Result{Transportation: 1, Total: 1}
		out := RenderShareChart(r, 1)
		assert.Contains(t, out, strings.Repeat(IconBar, minChartWidth))
	})
}

func TestRenderResult(t *testing.T) {
	out := RenderResult(indiaResult(t), 2, 0)

	assert.Contains(t, out, "Results for India")
	assert.Contains(t, out, "Your carbon footprint in India may vary")
	assert.Contains(t, out, "Learn More About Carbon Emissions")
	assert.Contains(t, out, "global:")
	assert.Contains(t, out, "4.7 t")
	assert.Contains(t, out, "16.6 t")
	assert.Contains(t, out, "1.9 t")
	assert.Contains(t, out, "20,176")
	assert.Contains(t, out, "tree seedlings")
}

func TestRenderResult_ZeroHasNoEquivalencies(t *testing.T) {
	out := RenderResult(footprint.Result{Country: "Sweden"}, 2, 80)
	assert.NotContains(t, out, "What Does This Mean?")
	assert.Contains(t, out, "0.00 tonnes CO2 per year")
}
