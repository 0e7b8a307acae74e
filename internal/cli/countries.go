package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonfocus/internal/config"
	"github.com/rshade/carbonfocus/internal/factors"
)

const tabPadding = 2

// countriesOutput is the JSON shape of the countries command.
type countriesOutput struct {
	Countries     []string `json:"countries"`
	Count         int      `json:"count"`
	SchemaVersion string   `json:"schema_version"`
}

// factorsOutput is the JSON shape of the factors command.
type factorsOutput struct {
	Country string        `json:"country"`
	Factors factors.Entry `json:"factors"`
}

// NewCountriesCmd creates the countries command listing supported countries.
func NewCountriesCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries with emission factors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := resolveOutputFormat(output, cmd.Flags().Changed(flagOutput))
			if err := validateOutputFormat(format); err != nil {
				return err
			}

			table := factors.Default()
			out := countriesOutput{
				Countries:     table.Countries(),
				Count:         table.Len(),
				SchemaVersion: table.Version(),
			}

			switch format {
			case config.FormatJSON:
				return writeJSON(cmd.OutOrStdout(), out)
			case config.FormatNDJSON:
				return writeNDJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintln(w, "#\tCountry")
			fmt.Fprintln(w, "-\t-------")
			for i, c := range out.Countries {
				fmt.Fprintf(w, "%d\t%s\n", i+1, c)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "\n%d countries (dataset %s)\n", out.Count, out.SchemaVersion)
			return err
		},
	}

	cmd.Flags().StringVar(&output, flagOutput, "", "output format (table, json, ndjson)")
	return cmd
}

// NewFactorsCmd creates the factors command showing one country's emission factors.
func NewFactorsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "factors <country>",
		Short:   "Show the emission factors for a country",
		Example: `  carbonfocus factors "United Kingdom"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := resolveOutputFormat(output, cmd.Flags().Changed(flagOutput))
			if err := validateOutputFormat(format); err != nil {
				return err
			}

			entry, err := factors.Default().Lookup(args[0])
			if err != nil {
				return err
			}
			out := factorsOutput{Country: args[0], Factors: entry}

			switch format {
			case config.FormatJSON:
				return writeJSON(cmd.OutOrStdout(), out)
			case config.FormatNDJSON:
				return writeNDJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintf(w, "Emission factors for %s\n\n", out.Country)
			fmt.Fprintln(w, "Category\tFactor\tUnit")
			fmt.Fprintln(w, "--------\t------\t----")
			fmt.Fprintf(w, "Transportation\t%g\tkg CO2 per km\n", entry.Transportation)
			fmt.Fprintf(w, "Electricity\t%g\tkg CO2 per kWh\n", entry.Electricity)
			fmt.Fprintf(w, "Diet\t%g\tkg CO2 per meal\n", entry.Diet)
			fmt.Fprintf(w, "Waste\t%g\tkg CO2 per kg\n", entry.Waste)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&output, flagOutput, "", "output format (table, json, ndjson)")
	return cmd
}
