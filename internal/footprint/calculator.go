package footprint

import (
	"errors"
	"fmt"
	"math"

	"github.com/rshade/carbonfocus/internal/factors"
)

// Period multipliers that convert raw inputs to yearly quantities.
const (
	DaysPerYear   = 365
	WeeksPerYear  = 52
	MonthsPerYear = 12

	// KgPerTonne converts kilograms to tonnes.
	KgPerTonne = 1000.0
)

// Meals per day range.
const (
	MinMealsPerDay = 0
	MaxMealsPerDay = 10
)

// Input field names used in validation errors and clamping reports.
const (
	FieldCountry     = "country"
	FieldDistance    = "daily_distance_km"
	FieldElectricity = "monthly_electricity_kwh"
	FieldWaste       = "weekly_waste_kg"
	FieldMeals       = "meals_per_day"
)

// ErrInvalidInput indicates a numeric input outside its valid range.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnknownCountry is factors.ErrUnknownCountry, re-exported so callers of
// this package do not need to import factors to classify errors.
var ErrUnknownCountry = factors.ErrUnknownCountry

// FactorLookup resolves a country to its emission factors.
type FactorLookup interface {
	Lookup(country string) (factors.Entry, error)
}

// Calculator computes footprints against a factor table.
type Calculator struct {
	factors FactorLookup
}

// New returns a Calculator backed by lookup.
func New(lookup FactorLookup) *Calculator {
	return &Calculator{factors: lookup}
}

// Calculate computes the footprint using the embedded factor table.
func Calculate(in Input) (Result, error) {
	return New(factors.Default()).Calculate(in)
}

// Validate checks the numeric fields of in.
// Negative or non-finite quantities and meals outside [0, 10] wrap ErrInvalidInput.
func (in Input) Validate() error {
	quantities := []struct {
		field string
		value float64
	}{
		{FieldDistance, in.DailyDistanceKm},
		{FieldElectricity, in.MonthlyElectricityKWh},
		{FieldWaste, in.WeeklyWasteKg},
	}
	for _, q := range quantities {
		if math.IsNaN(q.value) || math.IsInf(q.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, q.field)
		}
		if q.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidInput, q.field, q.value)
		}
	}

	if in.MealsPerDay < MinMealsPerDay || in.MealsPerDay > MaxMealsPerDay {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			ErrInvalidInput, FieldMeals, MinMealsPerDay, MaxMealsPerDay, in.MealsPerDay)
	}

	return nil
}

// Annualize converts the raw period-based inputs to yearly quantities.
func (in Input) Annualize() Annualized {
	return Annualized{
		DistanceKm:     in.DailyDistanceKm * DaysPerYear,
		ElectricityKWh: in.MonthlyElectricityKWh * MonthsPerYear,
		WasteKg:        in.WeeklyWasteKg * WeeksPerYear,
		Meals:          float64(in.MealsPerDay) * DaysPerYear,
	}
}

// Calculate returns the annual footprint for in.
//
// Errors wrap ErrInvalidInput or ErrUnknownCountry; no partial result is
// returned with an error. Values are not rounded.
func (c *Calculator) Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	entry, err := c.factors.Lookup(in.Country)
	if err != nil {
		return Result{}, fmt.Errorf("resolving emission factors: %w", err)
	}

	annual := in.Annualize()

	r := Result{
		Country:        in.Country,
		Transportation: entry.Transportation * annual.DistanceKm / KgPerTonne,
		Electricity:    entry.Electricity * annual.ElectricityKWh / KgPerTonne,
		Diet:           entry.Diet * annual.Meals / KgPerTonne,
		Waste:          entry.Waste * annual.WasteKg / KgPerTonne,
		Annualized:     annual,
	}
	r.Total = r.Transportation + r.Electricity + r.Diet + r.Waste

	return r, nil
}
