// Package greenops turns a carbon footprint into figures people can relate to.
//
// It converts kg CO2e into real-world equivalencies such as "miles driven"
// or "tree seedlings grown" using EPA-published conversion factors, and
// compares annual footprints against reference per-capita averages.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencySmartphonesCharged converts CO2e to smartphone full charges.
	EquivalencySmartphonesCharged

	// EquivalencyTreeSeedlings converts CO2e to tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencySmartphonesCharged:
		return "SmartphonesCharged"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// MarshalText encodes the type by name so JSON output stays readable.
func (e EquivalencyType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// CarbonInput is an amount of carbon to express as equivalencies.
type CarbonInput struct {
	Value float64 `json:"value"`

	// Unit is one of g, kg, t, tonnes, lb, or a CO2e variant such as kgCO2e.
	Unit string `json:"unit"`
}

// EquivalencyResult is a single calculated equivalency.
type EquivalencyResult struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// EquivalencyOutput holds every equivalency for one input.
type EquivalencyOutput struct {
	// InputKg is the normalized input in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	// Results are in display order: miles, smartphones, seedlings.
	Results []EquivalencyResult `json:"results"`

	// DisplayText is the prose form used by the CLI and TUI.
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated form, e.g. "(≈ 20,176 mi, 471,259 phones, 65 trees)".
	CompactText string `json:"compact_text"`

	IsEmpty bool `json:"is_empty"`
}

// Find returns the result of type t, if present.
func (o EquivalencyOutput) Find(t EquivalencyType) (EquivalencyResult, bool) {
	for _, r := range o.Results {
		if r.Type == t {
			return r, true
		}
	}
	return EquivalencyResult{}, false
}

// AverageComparison relates an annual footprint to a reference average.
type AverageComparison struct {
	// Label names the population, e.g. "global".
	Label string `json:"label"`

	AverageTonnes float64 `json:"average_tonnes"`

	// Difference is footprint minus average; negative means below average.
	Difference float64 `json:"difference_tonnes"`

	// Ratio is footprint divided by average.
	Ratio float64 `json:"ratio"`
}

// Above reports whether the footprint exceeds the average.
func (c AverageComparison) Above() bool { return c.Difference > 0 }
