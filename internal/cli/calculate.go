package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/carbonfocus/internal/config"
	"github.com/rshade/carbonfocus/internal/factors"
	"github.com/rshade/carbonfocus/internal/footprint"
	"github.com/rshade/carbonfocus/internal/logging"
	"github.com/rshade/carbonfocus/internal/report"
	"github.com/rshade/carbonfocus/internal/tui"
)

// CalculateParams holds the parameters for the calculate command.
// Exported for testing.
type CalculateParams struct {
	Country        string
	DistanceKm     float64
	ElectricityKWh float64
	WasteKg        float64
	Meals          int

	Output      string
	Precision   int
	Interactive bool
}

// Flag names for the calculate command.
const (
	flagCountry     = "country"
	flagDistance    = "distance"
	flagElectricity = "electricity"
	flagWaste       = "waste"
	flagMeals       = "meals"
	flagOutput      = "output"
	flagPrecision   = "precision"
)

// errNotTerminal is returned by --interactive when stdout is not a terminal.
var errNotTerminal = errors.New("interactive mode requires a terminal")

// NewCalculateCmd creates the calculate command.
//
// Inputs not given as flags come from the defaults section of the configuration.
func NewCalculateCmd() *cobra.Command {
	var params CalculateParams

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate your annual carbon footprint",
		Long: `Calculate annual CO2 emissions for transportation, electricity, diet and waste.

Daily distance is multiplied by 365, monthly electricity by 12, weekly waste
by 52 and meals per day by 365, then by the country's emission factors.

Values above the supported range (distance 100 km, electricity 1000 kWh,
waste 100 kg) are clamped with a warning. Negative values and meals outside
0-10 are rejected.`,
		Example: `  # Defaults from configuration
  carbonfocus calculate

  # Explicit inputs
  carbonfocus calculate --country Japan --distance 12 --electricity 300 --waste 4 --meals 3

  # Full-precision JSON
  carbonfocus calculate --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved := resolveCalculateParams(cmd, params)
			return executeCalculate(cmd, resolved)
		},
	}

	cmd.Flags().StringVar(&params.Country, flagCountry, "", "country whose emission factors apply")
	cmd.Flags().Float64Var(&params.DistanceKm, flagDistance, 0, "daily commute distance in km")
	cmd.Flags().Float64Var(&params.ElectricityKWh, flagElectricity, 0, "monthly electricity consumption in kWh")
	cmd.Flags().Float64Var(&params.WasteKg, flagWaste, 0, "waste generated per week in kg")
	cmd.Flags().IntVar(&params.Meals, flagMeals, 0, "meals per day (0-10)")
	cmd.Flags().StringVar(&params.Output, flagOutput, "", "output format (table, json, ndjson)")
	cmd.Flags().IntVar(&params.Precision, flagPrecision, 0, "decimal places in table output (0-6)")
	cmd.Flags().BoolVarP(&params.Interactive, "interactive", "i", false, "adjust inputs in an interactive TUI")

	return cmd
}

// resolveCalculateParams fills every flag the user did not set from configuration.
func resolveCalculateParams(cmd *cobra.Command, params CalculateParams) CalculateParams {
	defaults := config.GetDefaults()
	flags := cmd.Flags()

	if !flags.Changed(flagCountry) {
		params.Country = defaults.Country
	}
	if !flags.Changed(flagDistance) {
		params.DistanceKm = defaults.DailyDistanceKm
	}
	if !flags.Changed(flagElectricity) {
		params.ElectricityKWh = defaults.MonthlyElectricityKWh
	}
	if !flags.Changed(flagWaste) {
		params.WasteKg = defaults.WeeklyWasteKg
	}
	if !flags.Changed(flagMeals) {
		params.Meals = defaults.MealsPerDay
	}
	if !flags.Changed(flagPrecision) {
		params.Precision = config.GetOutputPrecision()
	}
	params.Output = resolveOutputFormat(params.Output, flags.Changed(flagOutput))

	return params
}

// Input returns the footprint input described by params.
func (p CalculateParams) Input() footprint.Input {
	return footprint.Input{
		Country:               p.Country,
		DailyDistanceKm:       p.DistanceKm,
		MonthlyElectricityKWh: p.ElectricityKWh,
		WeeklyWasteKg:         p.WasteKg,
		MealsPerDay:           p.Meals,
	}
}

// executeCalculate validates, clamps and calculates, then renders the result.
func executeCalculate(cmd *cobra.Command, params CalculateParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := validateOutputFormat(params.Output); err != nil {
		return err
	}
	if params.Precision < config.MinPrecision || params.Precision > config.MaxPrecision {
		return fmt.Errorf("precision must be between %d and %d, got %d",
			config.MinPrecision, config.MaxPrecision, params.Precision)
	}

	in := params.Input()
	if err := in.Validate(); err != nil {
		return err
	}

	in, clamped := footprint.Bounds.Clamp(in)
	if len(clamped) > 0 {
		log.Warn().Ctx(ctx).Strs("fields", clamped).Msg("inputs above the supported range were clamped")
	}

	table := factors.Default()
	if params.Interactive {
		if !table.Has(in.Country) {
			return fmt.Errorf("%w: %q", footprint.ErrUnknownCountry, in.Country)
		}
		return executeInteractive(cmd, params, in, table)
	}

	res, err := footprint.New(table).Calculate(in)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "calculate").
		Str("country", res.Country).
		Float64("total_tonnes", res.Total).
		Msg("footprint calculated")

	return renderCalculation(cmd.OutOrStdout(), params, report.Build(in, res, report.WithClamped(clamped)))
}

// renderCalculation writes r in the requested format.
func renderCalculation(w io.Writer, params CalculateParams, r report.Report) error {
	switch params.Output {
	case config.FormatJSON:
		return writeJSON(w, r)
	case config.FormatNDJSON:
		return writeNDJSON(w, r)
	default:
		_, err := fmt.Fprintln(w, tui.RenderResult(r.Result, params.Precision, 0))
		return err
	}
}

// executeInteractive runs the calculator TUI and prints the last submitted
// result after it exits.
func executeInteractive(cmd *cobra.Command, params CalculateParams, in footprint.Input, table *factors.Table) error {
	if !isTerminal(os.Stdout) {
		return errNotTerminal
	}

	ctx := cmd.Context()
	calc := footprint.New(table)
	model := tui.NewCalculatorModel(ctx, table.Countries(), in, params.Precision,
		func(_ context.Context, input footprint.Input) (footprint.Result, error) {
			return calc.Calculate(input)
		})

	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running interactive calculator: %w", err)
	}

	m, ok := final.(*tui.CalculatorModel)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	res := m.Result()
	if res == nil {
		return nil
	}
	return renderCalculation(cmd.OutOrStdout(), params, report.Build(m.Input(), *res))
}
