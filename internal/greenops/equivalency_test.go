package greenops

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "SmartphonesCharged", EquivalencySmartphonesCharged.String())
	assert.Equal(t, "TreeSeedlings", EquivalencyTreeSeedlings.String())
	assert.Equal(t, "EquivalencyType(3)", EquivalencyType(3).String())
	assert.Equal(t, "EquivalencyType(7)", EquivalencyType(7).String())
}

func TestCalculate_IndiaReference(t *testing.T) {
	out, err := FromTonnes(3.87375)
	require.NoError(t, err)
	require.False(t, out.IsEmpty)
	require.Len(t, out.Results, 3)

	assert.InDelta(t, 3873.75, out.InputKg, 1e-9)

	miles, ok := out.Find(EquivalencyMilesDriven)
	require.True(t, ok)
	assert.InDelta(t, 3873.75/EPAMilesDrivenFactor, miles.Value, 1e-9)
	assert.Equal(t, "20,176", miles.FormattedValue)

	phones, ok := out.Find(EquivalencySmartphonesCharged)
	require.True(t, ok)
	assert.Equal(t, "471,259", phones.FormattedValue)

	trees, ok := out.Find(EquivalencyTreeSeedlings)
	require.True(t, ok)
	assert.Equal(t, "65", trees.FormattedValue)
	assert.Contains(t, trees.Label, "tree seedlings")

	assert.Equal(t,
		"Equivalent to driving ~20,176 miles, charging ~471,259 smartphones, or growing ~65 tree seedlings for 10 years",
		out.DisplayText)
	assert.Equal(t, "(≈ 20,176 mi, 471,259 phones, 65 trees)", out.CompactText)

	for _, r := range out.Results {
		assert.Contains(t, []EquivalencyType{
			EquivalencyMilesDriven, EquivalencySmartphonesCharged, EquivalencyTreeSeedlings,
		}, r.Type)
	}
	_, ok = out.Find(EquivalencyType(3))
	assert.False(t, ok)
}

func TestCalculate_BelowThreshold(t *testing.T) {
	out, err := Calculate(CarbonInput{Value: 500, Unit: "g"})
	require.NoError(t, err)
	assert.True(t, out.IsEmpty)
	assert.InDelta(t, 0.5, out.InputKg, 1e-12)
	assert.Empty(t, out.Results)
	assert.Empty(t, out.DisplayText)
}

func TestCalculate_Errors(t *testing.T) {
	out, err := Calculate(CarbonInput{Value: 1, Unit: "furlongs"})
	require.ErrorIs(t, err, ErrInvalidUnit)
	assert.True(t, out.IsEmpty)

	_, err = Calculate(CarbonInput{Value: -3, Unit: "kg"})
	require.ErrorIs(t, err, ErrNegativeValue)
}

func TestCalculate_LargeValuesScale(t *testing.T) {
	out, err := FromTonnes(10_000)
	require.NoError(t, err)

	phones, ok := out.Find(EquivalencySmartphonesCharged)
	require.True(t, ok)
	assert.Equal(t, "~1.2 billion", phones.FormattedValue)

	miles, ok := out.Find(EquivalencyMilesDriven)
	require.True(t, ok)
	assert.Equal(t, "~52.1 million", miles.FormattedValue)
}

func TestEquivalencyOutput_JSON(t *testing.T) {
	out, err := FromTonnes(1)
	require.NoError(t, err)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"MilesDriven"`)
	assert.Contains(t, string(data), `"input_kg":1000`)
}

func TestCompareToAverages(t *testing.T) {
	got := CompareToAverages(3.87375)
	require.Len(t, got, 3)

	assert.Equal(t, "global", got[0].Label)
	assert.InDelta(t, 3.87375-4.7, got[0].Difference, 1e-12)
	assert.False(t, got[0].Above())

	assert.Equal(t, "United States", got[1].Label)
	assert.InDelta(t, 3.87375/16.6, got[1].Ratio, 1e-12)
	assert.False(t, got[1].Above())

	assert.Equal(t, "India", got[2].Label)
	assert.True(t, got[2].Above())
	assert.InDelta(t, 3.87375/1.9, got[2].Ratio, 1e-12)
}

func TestCompare_ZeroAverage(t *testing.T) {
	c := Compare(2, Average{Label: "nowhere"})
	assert.Zero(t, c.Ratio)
	assert.InDelta(t, 2.0, c.Difference, 1e-12)
	assert.True(t, c.Above())
}

func BenchmarkCalculate(b *testing.B) {
	input := CarbonInput{Value: 4.56145, Unit: "t"}
	for b.Loop() {
		_, _ = Calculate(input)
	}
}
