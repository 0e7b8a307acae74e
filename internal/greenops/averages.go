package greenops

// Average is a reference annual per-capita footprint.
type Average struct {
	Label  string
	Tonnes float64
}

// ReferenceAverages are compared against in display order.
//
//nolint:gochecknoglobals // Read-only reference data.
var ReferenceAverages = []Average{
	{Label: "global", Tonnes: GlobalAverageTonnes},
	{Label: "United States", Tonnes: UnitedStatesAverageTonnes},
	{Label: "India", Tonnes: IndiaAverageTonnes},
}

// CompareToAverages compares totalTonnes against each of ReferenceAverages.
func CompareToAverages(totalTonnes float64) []AverageComparison {
	out := make([]AverageComparison, 0, len(ReferenceAverages))
	for _, avg := range ReferenceAverages {
		out = append(out, Compare(totalTonnes, avg))
	}
	return out
}

// Compare relates totalTonnes to a single average. A zero average yields a
// zero Ratio.
func Compare(totalTonnes float64, avg Average) AverageComparison {
	c := AverageComparison{
		Label:         avg.Label,
		AverageTonnes: avg.Tonnes,
		Difference:    totalTonnes - avg.Tonnes,
	}
	if avg.Tonnes > 0 {
		c.Ratio = totalTonnes / avg.Tonnes
	}
	return c
}
