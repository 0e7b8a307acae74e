package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonfocus/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the effective configuration",
		Long: `Validates the merged global and project configuration.

This includes:
- Output format and precision
- Default country against the emission factor dataset
- Default inputs against their allowed ranges
- Server address, shutdown timeout and rate limits`,
		Example: `  # Validate current configuration
  carbonfocus config validate

  # Validate and show detailed information
  carbonfocus config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	cmd.Printf("  Default country: %s\n", cfg.Defaults.Country)
	cmd.Printf("  Server address: %s\n", cfg.Server.Addr)
}
