package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/carbonfocus/internal/config"
	"github.com/rshade/carbonfocus/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the carbonfocus CLI.
// It loads configuration (global, then project-local, then environment),
// wires up logging and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		projectDir string
	)

	cmd := &cobra.Command{
		Use:   "carbonfocus",
		Short: "Personal carbon footprint calculator",
		Long: `carbonfocus estimates your annual carbon footprint from everyday activity:
commuting distance, electricity use, waste and meals, using per-country
emission factors.`,
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			wd, _ := os.Getwd()
			resolved := config.ResolveProjectDir(cmd.Context(), projectDir, wd)
			config.SetResolvedProjectDir(resolved)
			config.SetGlobalConfig(config.NewWithProjectDir(cmd.Context(), resolved))

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&projectDir, "project-dir", "",
		"project configuration directory (default: nearest .carbonfocus/ above the working directory)")

	cmd.AddCommand(
		NewCalculateCmd(),
		NewCountriesCmd(),
		NewFactorsCmd(),
		newConfigCmd(),
		NewServeCmd(ver),
	)

	return cmd
}

const rootCmdExample = `  # Calculate with the default inputs for India
  carbonfocus calculate

  # Calculate for another country and lifestyle
  carbonfocus calculate --country "United States" --distance 25 --electricity 600 --meals 3

  # Machine-readable output
  carbonfocus calculate --country France --output json

  # Adjust inputs interactively
  carbonfocus calculate --interactive

  # List supported countries and inspect their factors
  carbonfocus countries
  carbonfocus factors Germany

  # Serve the HTTP API
  carbonfocus serve --addr :8080

  # Initialize and edit configuration
  carbonfocus config init
  carbonfocus config set defaults.country Japan`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
