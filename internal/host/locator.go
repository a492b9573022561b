package host

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
)

// ExecLocator resolves executables through the OS command lookup with a
// glob fallback over the well-known install path.
type ExecLocator struct{}

// Locate implements Locator.
func (ExecLocator) Locate(executable, fallbackPattern string) (string, bool) {
	if resolved, err := exec.LookPath(executable); err == nil {
		return resolved, true
	}

	if fallbackPattern == "" {
		return "", false
	}

	matches, err := filepath.Glob(fallbackPattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}

	sort.Strings(matches)

	for _, match := range matches {
		if info, statErr := os.Stat(match); statErr == nil && !info.IsDir() {
			return match, true
		}
	}

	return "", false
}
