package greenops

import (
	"fmt"
	"math"
)

// Calculate normalizes input to kilograms and expresses it as miles driven,
// smartphones charged and tree seedlings grown.
//
// Inputs below MinEquivalencyThresholdKg produce an empty output with InputKg
// set and no error. Normalization failures return an empty output and the
// error from NormalizeToKg.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}

	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	specs := []struct {
		kind   EquivalencyType
		factor float64
		label  string
	}{
		{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
		{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
		{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
	}

	results := make([]EquivalencyResult, 0, len(specs))
	for _, s := range specs {
		v := kg / s.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           s.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          s.label,
		})
	}

	miles, phones, trees := results[0].FormattedValue, results[1].FormattedValue, results[2].FormattedValue

	return EquivalencyOutput{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf(
			"Equivalent to driving ~%s miles, charging ~%s smartphones, or growing ~%s tree seedlings for 10 years",
			miles, phones, trees),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones, %s trees)", miles, phones, trees),
	}, nil
}

// FromTonnes is Calculate for a footprint expressed in tonnes.
func FromTonnes(tonnes float64) (EquivalencyOutput, error) {
	return Calculate(CarbonInput{Value: tonnes, Unit: "t"})
}

// formatEquivalencyValue scales values past a million, otherwise rounds to
// a grouped integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
