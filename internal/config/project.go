package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rshade/carbonfocus/internal/logging"
)

// ProjectDirName is the name of a project-local configuration directory.
const ProjectDirName = ".carbonfocus"

// EnvProjectDir overrides project directory discovery.
const EnvProjectDir = "CARBONFOCUS_PROJECT_DIR"

// ResolveProjectDir determines the project-local .carbonfocus directory path.
// It checks (in order):
//  1. flagValue (--project-dir CLI flag)
//  2. CARBONFOCUS_PROJECT_DIR env var
//  3. a .carbonfocus directory in startDir or any parent, other than the
//     global configuration directory
//
// Returns an absolute path, or "" if none is found. Nothing is created.
func ResolveProjectDir(ctx context.Context, flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(ctx, flagValue)
	}

	if envDir := os.Getenv(EnvProjectDir); envDir != "" {
		return toAbsProjectDir(ctx, envDir)
	}

	if startDir == "" {
		return ""
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	globalDir, _ := GetConfigDir()
	for {
		candidate := filepath.Join(dir, ProjectDirName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.IsDir() && candidate != globalDir {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir creates a Config by loading global config then
// shallow-merging project-local config on top. If projectDir is empty,
// behaves identically to New().
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()

	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, "config.yaml")
	if _, err := os.Stat(overlayPath); err != nil {
		// Missing project config is not an error.
		return cfg
	}

	merged := New()
	if err := ShallowMergeYAML(merged, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return cfg
	}

	// Env overrides keep precedence over the project file.
	merged.ApplyEnvOverrides()
	return merged
}

// toAbsProjectDir converts dir to an absolute path ending in .carbonfocus.
func toAbsProjectDir(ctx context.Context, dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("dir", dir).
			Msg("failed to resolve absolute path for project directory")
		abs = dir
	}

	if filepath.Base(abs) == ProjectDirName {
		return abs
	}

	return filepath.Join(abs, ProjectDirName)
}

//nolint:gochecknoglobals // Resolved once per process by the root command.
var (
	resolvedProjectDir   string
	resolvedProjectDirMu sync.RWMutex
)

// SetResolvedProjectDir records the project directory chosen at startup.
func SetResolvedProjectDir(dir string) {
	resolvedProjectDirMu.Lock()
	defer resolvedProjectDirMu.Unlock()
	resolvedProjectDir = dir
}

// GetResolvedProjectDir returns the project directory chosen at startup, or "".
func GetResolvedProjectDir() string {
	resolvedProjectDirMu.RLock()
	defer resolvedProjectDirMu.RUnlock()
	return resolvedProjectDir
}
