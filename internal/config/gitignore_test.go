package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonfocus/internal/config"
)

func TestEnsureGitignore(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", config.ProjectDirName)

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(data))
	assert.Contains(t, string(data), "*.log")

	created, err = config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created, "second call leaves the file alone")
}

func TestEnsureGitignore_KeepsExisting(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	custom := "# mine\n*.tmp\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(custom), 0o644))

	created, err := config.EnsureGitignore(dir)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}
