package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitignoreContent keeps per-user files in a project .carbonfocus/ directory out of version control.
const gitignoreContent = `# carbonfocus project-local data (auto-generated)
# config.yaml is shared; logs are not.
*.log
logs/
`

// GitignoreContent returns the .gitignore written by EnsureGitignore.
func GitignoreContent() string {
	return gitignoreContent
}

// EnsureGitignore writes a .gitignore into dir unless one exists.
// It reports whether a file was created and never overwrites.
func EnsureGitignore(dir string) (bool, error) {
	path := filepath.Join(dir, ".gitignore")

	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking .gitignore at %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	//nolint:gosec // .gitignore must be world-readable (0644).
	if err := os.WriteFile(path, []byte(gitignoreContent), 0o644); err != nil {
		return false, fmt.Errorf("writing .gitignore at %s: %w", path, err)
	}
	return true, nil
}
