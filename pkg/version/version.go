// Package version reports build information injected at link time:
//
//	go build -ldflags "-X github.com/rshade/carbonfocus/pkg/version.version=v1.0.0 \
//	  -X github.com/rshade/carbonfocus/pkg/version.gitCommit=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

//nolint:gochecknoglobals // Set via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version, falling back to the module
// version recorded by the Go toolchain for `go install` builds.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string { return gitCommit }

// GetBuildDate returns the build timestamp.
func GetBuildDate() string { return buildDate }

// String returns a one-line summary for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", GetVersion(), gitCommit, buildDate, runtime.Version())
}
