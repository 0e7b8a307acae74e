package greenops

// EPA Formula Constants (2024 Edition)
// Source: https://www.epa.gov/energy/greenhouse-gas-equivalencies-calculator
//
// Each constant is the kg CO2e attributed to one unit of the activity:
//
//	equivalency = kg_CO2e / factor
const (
	// EPAMilesDrivenFactor is kg CO2e per mile for an average passenger vehicle.
	EPAMilesDrivenFactor = 0.192

	// EPASmartphoneChargeFactor is kg CO2e per smartphone full charge.
	EPASmartphoneChargeFactor = 0.00822

	// EPATreeSeedlingFactor is kg CO2e absorbed by one tree seedling grown for 10 years.
	EPATreeSeedlingFactor = 60.0
)

// Unit Conversion Constants for normalizing carbon values to kilograms.
const (
	GramsToKg  = 0.001
	KgToKg     = 1.0
	TonsToKg   = 1000.0
	PoundsToKg = 0.453592
)

// Reference per-capita footprints in tonnes CO2 per year.
const (
	// GlobalAverageTonnes is the average footprint per person worldwide.
	GlobalAverageTonnes = 4.7

	// UnitedStatesAverageTonnes is the average footprint per person in the United States.
	UnitedStatesAverageTonnes = 16.6

	// IndiaAverageTonnes is the average footprint per person in India.
	IndiaAverageTonnes = 1.9
)

// Display Threshold Constants control when equivalencies are shown.
const (
	// MinEquivalencyThresholdKg is the minimum kg CO2e for showing equivalencies.
	// Below it the equivalencies round to nothing useful.
	MinEquivalencyThresholdKg = 1.0

	// LargeNumberThreshold is where "~X.X million" formatting starts.
	LargeNumberThreshold = 1_000_000

	// BillionThreshold is where "~X.X billion" formatting starts.
	BillionThreshold = 1_000_000_000
)
