package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonfocus/internal/config"
)

// errConfigExists is returned by config init when the target file exists.
var errConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// Inside a project with a .carbonfocus/ directory (or with --project-dir) it writes
// project-local configuration; otherwise, or with --global, the global file.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

Inside a project (a .carbonfocus/ directory in the working directory or a
parent, or --project-dir), creates $PROJECT/.carbonfocus/config.yaml with a
.gitignore. Use --global to initialize ~/.carbonfocus/config.yaml instead.`,
		Example: `  # Create configuration
  carbonfocus config init

  # Create project-local configuration in the current directory
  carbonfocus config init --project-dir .

  # Overwrite existing configuration
  carbonfocus config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectDir := config.GetResolvedProjectDir(); projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "initialize global configuration even inside a project")

	return cmd
}

// checkWritable returns errConfigExists if path exists and force is unset.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return errConfigExists
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates projectDir/config.yaml and a .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to keep logs out of version control\n")
	}
	return nil
}

// initGlobalConfig creates the global configuration file.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	dir, err := config.GetConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", configPath)
	return nil
}
