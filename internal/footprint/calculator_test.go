package footprint_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonfocus/internal/factors"
	"github.com/rshade/carbonfocus/internal/footprint"
)

const tolerance = 1e-9

func sampleInput(country string) footprint.Input {
	return footprint.Input{
		Country:               country,
		DailyDistanceKm:       10,
		MonthlyElectricityKWh: 200,
		WeeklyWasteKg:         5,
		MealsPerDay:           3,
	}
}

func TestCalculate_ReferenceScenarios(t *testing.T) {
	tests := []struct {
		name           string
		country        string
		transportation float64
		electricity    float64
		diet           float64
		waste          float64
		total          float64
	}{
		{
			name:           "India",
			country:        "India",
			transportation: 0.511,   // 0.14 * 3650 / 1000
			electricity:    1.968,   // 0.82 * 2400 / 1000
			diet:           1.36875, // 1.25 * 1095 / 1000
			waste:          0.026,   // 0.1 * 260 / 1000
			total:          3.87375,
		},
		{
			name:           "United States",
			country:        "United States",
			transportation: 1.4965,
			electricity:    1.08,
			diet:           1.93815,
			waste:          0.0468,
			total:          4.56145,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := footprint.Calculate(sampleInput(tt.country))
			require.NoError(t, err)

			assert.Equal(t, tt.country, got.Country)
			assert.InDelta(t, tt.transportation, got.Transportation, tolerance)
			assert.InDelta(t, tt.electricity, got.Electricity, tolerance)
			assert.InDelta(t, tt.diet, got.Diet, tolerance)
			assert.InDelta(t, tt.waste, got.Waste, tolerance)
			assert.InDelta(t, tt.total, got.Total, tolerance)

			assert.InDelta(t, 3650.0, got.Annualized.DistanceKm, tolerance)
			assert.InDelta(t, 2400.0, got.Annualized.ElectricityKWh, tolerance)
			assert.InDelta(t, 260.0, got.Annualized.WasteKg, tolerance)
			assert.InDelta(t, 1095.0, got.Annualized.Meals, tolerance)
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	in := sampleInput("Germany")

	first, err := footprint.Calculate(in)
	require.NoError(t, err)
	second, err := footprint.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, math.Float64bits(first.Total), math.Float64bits(second.Total))
}

func TestCalculate_AdditiveAndNonNegative(t *testing.T) {
	inputs := []footprint.Input{
		sampleInput("India"),
		{DailyDistanceKm: 100, MonthlyElectricityKWh: 1000, WeeklyWasteKg: 100, MealsPerDay: 10},
		{DailyDistanceKm: 0.5, MonthlyElectricityKWh: 33.3, WeeklyWasteKg: 0.1, MealsPerDay: 1},
		{DailyDistanceKm: 42, MonthlyElectricityKWh: 0, WeeklyWasteKg: 7.25, MealsPerDay: 0},
	}

	for _, country := range factors.Default().Countries() {
		for _, in := range inputs {
			in.Country = country
			got, err := footprint.Calculate(in)
			require.NoError(t, err, country)

			assert.GreaterOrEqual(t, got.Transportation, 0.0)
			assert.GreaterOrEqual(t, got.Electricity, 0.0)
			assert.GreaterOrEqual(t, got.Diet, 0.0)
			assert.GreaterOrEqual(t, got.Waste, 0.0)
			assert.GreaterOrEqual(t, got.Total, 0.0)

			// Exact sum, no hidden adjustment.
			sum := got.Transportation + got.Electricity + got.Diet + got.Waste
			assert.Equal(t, sum, got.Total, country)
		}
	}
}

func TestCalculate_ZeroInputsEveryCountry(t *testing.T) {
	for _, country := range factors.Default().Countries() {
		t.Run(country, func(t *testing.T) {
			got, err := footprint.Calculate(footprint.Input{Country: country})
			require.NoError(t, err)

			assert.Zero(t, got.Transportation)
			assert.Zero(t, got.Electricity)
			assert.Zero(t, got.Diet)
			assert.Zero(t, got.Waste)
			assert.Zero(t, got.Total)
		})
	}
}

func TestCalculate_Monotonic(t *testing.T) {
	base := sampleInput("Australia")
	baseline, err := footprint.Calculate(base)
	require.NoError(t, err)

	tests := []struct {
		name     string
		mutate   func(*footprint.Input)
		category footprint.Category
	}{
		{"distance", func(in *footprint.Input) { in.DailyDistanceKm += 5 }, footprint.CategoryTransportation},
		{"electricity", func(in *footprint.Input) { in.MonthlyElectricityKWh += 50 }, footprint.CategoryElectricity},
		{"waste", func(in *footprint.Input) { in.WeeklyWasteKg += 1.5 }, footprint.CategoryWaste},
		{"meals", func(in *footprint.Input) { in.MealsPerDay++ }, footprint.CategoryDiet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)

			got, calcErr := footprint.Calculate(in)
			require.NoError(t, calcErr)

			assert.GreaterOrEqual(t, got.Value(tt.category), baseline.Value(tt.category))
			for _, other := range footprint.Categories {
				if other != tt.category {
					assert.Equal(t, baseline.Value(other), got.Value(other), other.String())
				}
			}
		})
	}
}

func TestCalculate_UnknownCountry(t *testing.T) {
	got, err := footprint.Calculate(sampleInput("Atlantis"))

	require.Error(t, err)
	assert.ErrorIs(t, err, footprint.ErrUnknownCountry)
	assert.ErrorIs(t, err, factors.ErrUnknownCountry)
	assert.NotErrorIs(t, err, footprint.ErrInvalidInput)
	assert.Equal(t, footprint.Result{}, got)
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*footprint.Input)
		field  string
	}{
		{"negative distance", func(in *footprint.Input) { in.DailyDistanceKm = -1 }, footprint.FieldDistance},
		{"negative electricity", func(in *footprint.Input) { in.MonthlyElectricityKWh = -0.01 }, footprint.FieldElectricity},
		{"negative waste", func(in *footprint.Input) { in.WeeklyWasteKg = -5 }, footprint.FieldWaste},
		{"negative meals", func(in *footprint.Input) { in.MealsPerDay = -1 }, footprint.FieldMeals},
		{"too many meals", func(in *footprint.Input) { in.MealsPerDay = 11 }, footprint.FieldMeals},
		{"NaN distance", func(in *footprint.Input) { in.DailyDistanceKm = math.NaN() }, footprint.FieldDistance},
		{"infinite waste", func(in *footprint.Input) { in.WeeklyWasteKg = math.Inf(1) }, footprint.FieldWaste},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInput("India")
			tt.mutate(&in)

			got, err := footprint.Calculate(in)
			require.ErrorIs(t, err, footprint.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.field)
			assert.Equal(t, footprint.Result{}, got)
		})
	}
}

func TestCalculate_InvalidInputCheckedBeforeCountry(t *testing.T) {
	in := sampleInput("Atlantis")
	in.MealsPerDay = 20

	_, err := footprint.Calculate(in)
	assert.ErrorIs(t, err, footprint.ErrInvalidInput)
}

func TestCalculate_MealsBoundaries(t *testing.T) {
	for _, meals := range []int{footprint.MinMealsPerDay, footprint.MaxMealsPerDay} {
		in := sampleInput("India")
		in.MealsPerDay = meals
		_, err := footprint.Calculate(in)
		assert.NoError(t, err, meals)
	}
}

type stubLookup struct {
	entry factors.Entry
	err   error
	calls []string
}

func (s *stubLookup) Lookup(country string) (factors.Entry, error) {
	s.calls = append(s.calls, country)
	return s.entry, s.err
}

func TestCalculator_UsesLookup(t *testing.T) {
	stub := &stubLookup{entry: factors.Entry{Transportation: 1, Electricity: 1, Diet: 1, Waste: 1}}
	calc := footprint.New(stub)

	got, err := calc.Calculate(footprint.Input{
		Country:               "Testland",
		DailyDistanceKm:       1,
		MonthlyElectricityKWh: 1,
		WeeklyWasteKg:         1,
		MealsPerDay:           1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Testland"}, stub.calls)
	assert.InDelta(t, 0.365, got.Transportation, tolerance)
	assert.InDelta(t, 0.012, got.Electricity, tolerance)
	assert.InDelta(t, 0.365, got.Diet, tolerance)
	assert.InDelta(t, 0.052, got.Waste, tolerance)
	assert.InDelta(t, 0.794, got.Total, tolerance)
}

func TestCalculator_PropagatesLookupError(t *testing.T) {
	lookupErr := errors.New("table unavailable")
	calc := footprint.New(&stubLookup{err: lookupErr})

	_, err := calc.Calculate(footprint.Input{Country: "Anywhere"})
	assert.ErrorIs(t, err, lookupErr)
}

func TestCalculator_SkipsLookupOnInvalidInput(t *testing.T) {
	stub := &stubLookup{}
	calc := footprint.New(stub)

	_, err := calc.Calculate(footprint.Input{Country: "India", DailyDistanceKm: -3})
	require.ErrorIs(t, err, footprint.ErrInvalidInput)
	assert.Empty(t, stub.calls)
}
