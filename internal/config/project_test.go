package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonfocus/internal/config"
)

func TestResolveProjectDir_FlagOverride(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	flagDir := t.TempDir()
	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".carbonfocus"), got)
	assert.True(t, filepath.IsAbs(got), "returned path must be absolute")
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")

	assert.Equal(t, filepath.Join(flagDir, ".carbonfocus"), got)
}

func TestResolveProjectDir_EnvVarOverride(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")

	assert.Equal(t, filepath.Join(envDir, ".carbonfocus"), got)
}

func TestResolveProjectDir_NoDoubleAppend(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	dir := filepath.Join(t.TempDir(), ".carbonfocus")

	got := config.ResolveProjectDir(context.Background(), dir, "")
	assert.Equal(t, dir, got)
}

func TestResolveProjectDir_WalksUp(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	root := t.TempDir()
	projectDir := filepath.Join(root, ".carbonfocus")
	require.NoError(t, os.MkdirAll(projectDir, 0700))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))

	got := config.ResolveProjectDir(context.Background(), "", nested)
	assert.Equal(t, projectDir, got)
}

func TestResolveProjectDir_SkipsGlobalDir(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")

	root := t.TempDir()
	globalDir := filepath.Join(root, ".carbonfocus")
	require.NoError(t, os.MkdirAll(globalDir, 0700))
	t.Setenv(config.EnvHome, globalDir)

	nested := filepath.Join(root, "work")
	require.NoError(t, os.MkdirAll(nested, 0700))

	assert.NotEqual(t, globalDir, config.ResolveProjectDir(context.Background(), "", nested))
}

func TestResolveProjectDir_NoneFound(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	assert.Empty(t, config.ResolveProjectDir(context.Background(), "", ""))
}

func TestNewWithProjectDir(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvDefaultCountry, "")

	projectDir := filepath.Join(t.TempDir(), ".carbonfocus")
	require.NoError(t, os.MkdirAll(projectDir, 0700))

	t.Run("no overlay file", func(t *testing.T) {
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, "India", cfg.Defaults.Country)
	})

	t.Run("overlay applied", func(t *testing.T) {
		overlay := "defaults:\n  country: Chile\n  daily_distance_km: 25\n  meals_per_day: 3\n"
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(overlay), 0600))

		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, "Chile", cfg.Defaults.Country)
		assert.Equal(t, 25.0, cfg.Defaults.DailyDistanceKm)
	})

	t.Run("env beats overlay", func(t *testing.T) {
		t.Setenv(config.EnvDefaultCountry, "Peru")
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, "Peru", cfg.Defaults.Country)
	})

	t.Run("broken overlay falls back", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte("defaults: [\n"), 0600))
		cfg := config.NewWithProjectDir(context.Background(), projectDir)
		assert.Equal(t, "India", cfg.Defaults.Country)
	})

	t.Run("empty project dir", func(t *testing.T) {
		cfg := config.NewWithProjectDir(context.Background(), "")
		assert.Equal(t, config.Default().Output, cfg.Output)
	})
}
