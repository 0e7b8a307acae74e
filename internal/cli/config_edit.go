package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonfocus/internal/config"
)

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <key>",
		Short:   "Print one configuration value",
		Example: `  carbonfocus config get defaults.country`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
			return err
		},
	}
}

// NewConfigSetCmd creates the config set command. The value is validated
// before the global configuration file is rewritten.
func NewConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value in the global configuration file",
		Example: `  carbonfocus config set output.default_format json
  carbonfocus config set defaults.daily_distance_km 25`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.EnsureConfigDir(); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Debug().Ctx(cmd.Context()).Str("key", args[0]).Msg("configuration updated")
			cmd.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	}
}

// NewConfigListCmd creates the config list command.
func NewConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			for _, key := range config.Keys() {
				v, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", key, v)
			}
			return w.Flush()
		},
	}
}
