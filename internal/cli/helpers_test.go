package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rshade/carbonfocus/internal/cli"
	"github.com/rshade/carbonfocus/internal/config"
)

// isolateConfig points configuration at a temporary home and clears
// process-wide state after the test.
func isolateConfig(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvProjectDir, "")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv(config.EnvDefaultCountry, "")
	t.Setenv(config.EnvServerAddr, "")
	t.Setenv(config.EnvLogLevel, "error")

	config.ResetGlobalConfigForTest()
	config.SetResolvedProjectDir("")
	t.Cleanup(func() {
		config.ResetGlobalConfigForTest()
		config.SetResolvedProjectDir("")
	})
	return home
}

// executeCmd runs the root command with args and returns stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := cli.NewRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
