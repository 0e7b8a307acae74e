// Package footprint computes an estimated annual personal carbon footprint.
//
// Raw period-based lifestyle inputs are annualized, multiplied by the
// country's emission factors and converted to tonnes of CO2 per year.
// Calculation is pure: no I/O, no shared mutable state, no rounding.
package footprint

import "fmt"

// Category identifies one of the four emission sources.
type Category int

const (
	// CategoryTransportation covers daily commuting distance.
	CategoryTransportation Category = iota
	// CategoryElectricity covers household electricity consumption.
	CategoryElectricity
	// CategoryDiet covers meals eaten.
	CategoryDiet
	// CategoryWaste covers waste generated.
	CategoryWaste
)

// Categories lists every category in display order.
//
//nolint:gochecknoglobals // Fixed ordering shared by renderers.
var Categories = []Category{
	CategoryTransportation,
	CategoryElectricity,
	CategoryDiet,
	CategoryWaste,
}

// String returns the display name of the category.
func (c Category) String() string {
	switch c {
	case CategoryTransportation:
		return "Transportation"
	case CategoryElectricity:
		return "Electricity"
	case CategoryDiet:
		return "Diet"
	case CategoryWaste:
		return "Waste"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Input is one calculation request.
type Input struct {
	// Country must be a key of the emission factor table.
	Country string `json:"country"`

	// DailyDistanceKm is the daily commute distance in km.
	DailyDistanceKm float64 `json:"daily_distance_km"`

	// MonthlyElectricityKWh is monthly electricity consumption in kWh.
	MonthlyElectricityKWh float64 `json:"monthly_electricity_kwh"`

	// WeeklyWasteKg is waste generated per week in kg.
	WeeklyWasteKg float64 `json:"weekly_waste_kg"`

	// MealsPerDay is the number of meals eaten per day, 0 to 10.
	MealsPerDay int `json:"meals_per_day"`
}

// Annualized holds the yearly activity quantities derived from an Input.
type Annualized struct {
	DistanceKm     float64 `json:"distance_km"`
	ElectricityKWh float64 `json:"electricity_kwh"`
	WasteKg        float64 `json:"waste_kg"`
	Meals          float64 `json:"meals"`
}

// Result is the annual footprint in tonnes CO2 per year.
type Result struct {
	Country string `json:"country"`

	Transportation float64 `json:"transportation_emissions"`
	Electricity    float64 `json:"electricity_emissions"`
	Diet           float64 `json:"diet_emissions"`
	Waste          float64 `json:"waste_emissions"`

	// Total is Transportation + Electricity + Diet + Waste.
	Total float64 `json:"total_emissions"`

	Annualized Annualized `json:"annualized"`
}

// Share is one category's contribution to the total.
type Share struct {
	Category Category `json:"-"`
	Name     string   `json:"category"`
	Tonnes   float64  `json:"tonnes"`

	// Fraction is Tonnes / Total in [0, 1]. Zero when Total is zero.
	Fraction float64 `json:"fraction"`
}

// Value returns the emissions for a single category.
func (r Result) Value(c Category) float64 {
	switch c {
	case CategoryTransportation:
		return r.Transportation
	case CategoryElectricity:
		return r.Electricity
	case CategoryDiet:
		return r.Diet
	case CategoryWaste:
		return r.Waste
	default:
		return 0
	}
}

// Breakdown returns the four categories in display order with their share
// of the total.
func (r Result) Breakdown() []Share {
	shares := make([]Share, 0, len(Categories))
	for _, c := range Categories {
		v := r.Value(c)
		frac := 0.0
		if r.Total > 0 {
			frac = v / r.Total
		}
		shares = append(shares, Share{
			Category: c,
			Name:     c.String(),
			Tonnes:   v,
			Fraction: frac,
		})
	}
	return shares
}
