package footprint

// Range is an inclusive numeric interval with a default and adjustment step.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// Clamp limits v to [Min, Max].
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// InputBounds are the ranges offered to users by input surfaces.
type InputBounds struct {
	DistanceKm     Range `json:"daily_distance_km"`
	ElectricityKWh Range `json:"monthly_electricity_kwh"`
	WasteKg        Range `json:"weekly_waste_kg"`
	Meals          Range `json:"meals_per_day"`
}

// Bounds holds the input ranges used by the CLI, TUI and server.
//
//nolint:gochecknoglobals // Read-only presentation bounds.
var Bounds = InputBounds{
	DistanceKm:     Range{Min: 0, Max: 100, Default: 10, Step: 1},
	ElectricityKWh: Range{Min: 0, Max: 1000, Default: 200, Step: 10},
	WasteKg:        Range{Min: 0, Max: 100, Default: 5, Step: 1},
	Meals:          Range{Min: MinMealsPerDay, Max: MaxMealsPerDay, Default: 3, Step: 1},
}

// DefaultCountry is used when no country is configured.
const DefaultCountry = "India"

// DefaultInput returns an Input populated with the default value of every range.
func DefaultInput(country string) Input {
	if country == "" {
		country = DefaultCountry
	}
	return Input{
		Country:               country,
		DailyDistanceKm:       Bounds.DistanceKm.Default,
		MonthlyElectricityKWh: Bounds.ElectricityKWh.Default,
		WeeklyWasteKg:         Bounds.WasteKg.Default,
		MealsPerDay:           int(Bounds.Meals.Default),
	}
}

// Clamp returns a copy of in with every numeric field limited to b.
// The second return value lists the fields that were changed.
func (b InputBounds) Clamp(in Input) (Input, []string) {
	var clamped []string

	if v := b.DistanceKm.Clamp(in.DailyDistanceKm); v != in.DailyDistanceKm {
		in.DailyDistanceKm = v
		clamped = append(clamped, FieldDistance)
	}
	if v := b.ElectricityKWh.Clamp(in.MonthlyElectricityKWh); v != in.MonthlyElectricityKWh {
		in.MonthlyElectricityKWh = v
		clamped = append(clamped, FieldElectricity)
	}
	if v := b.WasteKg.Clamp(in.WeeklyWasteKg); v != in.WeeklyWasteKg {
		in.WeeklyWasteKg = v
		clamped = append(clamped, FieldWaste)
	}
	if v := int(b.Meals.Clamp(float64(in.MealsPerDay))); v != in.MealsPerDay {
		in.MealsPerDay = v
		clamped = append(clamped, FieldMeals)
	}

	return in, clamped
}
