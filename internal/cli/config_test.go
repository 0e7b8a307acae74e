package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbonfocus/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	home := isolateConfig(t)

	out, _, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "country: India")

	_, _, err = executeCmd(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use --force to overwrite")

	_, _, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	home := isolateConfig(t)
	project := t.TempDir()

	out, _, err := executeCmd(t, "--project-dir", project, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized at")
	assert.Contains(t, out, "Created .gitignore")

	projectDir := filepath.Join(project, config.ProjectDirName)
	assert.FileExists(t, filepath.Join(projectDir, "config.yaml"))
	assert.FileExists(t, filepath.Join(projectDir, ".gitignore"))
	assert.NoFileExists(t, filepath.Join(home, "config.yaml"))

	_, _, err = executeCmd(t, "--project-dir", project, "config", "init", "--global")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}

func TestConfig_SetGetList(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeCmd(t, "config", "set", "defaults.country", "Japan")
	require.NoError(t, err)
	assert.Contains(t, out, "Set defaults.country = Japan")

	out, _, err = executeCmd(t, "config", "get", "defaults.country")
	require.NoError(t, err)
	assert.Equal(t, "Japan", strings.TrimSpace(out))

	out, _, err = executeCmd(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "Japan")

	out, _, err = executeCmd(t, "calculate", "--output", "ndjson")
	require.NoError(t, err)
	assert.Contains(t, out, `"country":"Japan"`)
}

func TestConfig_SetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"config", "set", "nope.key", "1"}},
		{"unparsable value", []string{"config", "set", "output.precision", "many"}},
		{"invalid value", []string{"config", "set", "defaults.country", "Atlantis"}},
		{"invalid log format", []string{"config", "set", "logging.format", "xml"}},
		{"invalid log level", []string{"config", "set", "logging.level", "loud"}},
		{"invalid trusted proxy", []string{"config", "set", "server.trusted_proxies", "proxy.local"}},
		{"missing value", []string{"config", "set", "defaults.country"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolateConfig(t)

			_, _, err := executeCmd(t, tt.args...)
			require.Error(t, err)
			assert.NoFileExists(t, filepath.Join(home, "config.yaml"))
		})
	}
}

func TestConfigGet_UnknownKey(t *testing.T) {
	isolateConfig(t)

	_, _, err := executeCmd(t, "config", "get", "nope.key")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		isolateConfig(t)

		out, _, err := executeCmd(t, "config", "validate", "--verbose")
		require.NoError(t, err)
		assert.Contains(t, out, "Configuration is valid")
		assert.Contains(t, out, "Default country: India")
	})

	t.Run("invalid file", func(t *testing.T) {
		home := isolateConfig(t)
		content := "output:\n  default_format: xml\n  precision: 2\n"
		require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(content), 0600))

		_, _, err := executeCmd(t, "config", "validate")
		require.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "output.default_format")
	})
}

func TestRoot_Version(t *testing.T) {
	isolateConfig(t)

	out, _, err := executeCmd(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
