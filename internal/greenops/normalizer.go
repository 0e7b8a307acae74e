package greenops

import (
	"math"
	"strings"
)

// Recognized unit spellings, matched case-insensitively.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unitFactors = map[string]float64{
	"g":      GramsToKg,
	"gco2e":  GramsToKg,
	"kg":     KgToKg,
	"kgco2e": KgToKg,
	"t":      TonsToKg,
	"tco2e":  TonsToKg,
	"tonnes": TonsToKg,
	"lb":     PoundsToKg,
	"lbco2e": PoundsToKg,
}

// NormalizeToKg converts value in unit to kilograms.
//
// Recognized units: g, kg, t, tonnes, lb and their CO2e variants.
// Returns ErrCalculationOverflow for Inf/NaN input or an overflowing result,
// ErrNegativeValue for negative input, ErrInvalidUnit for unknown units.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactors[strings.ToLower(unit)]
	if !ok {
		return 0, ErrInvalidUnit
	}

	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// IsRecognizedUnit reports whether unit is accepted by NormalizeToKg.
func IsRecognizedUnit(unit string) bool {
	_, ok := unitFactors[strings.ToLower(unit)]
	return ok
}
