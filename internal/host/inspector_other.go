//go:build !windows

package host

import (
	"errors"
	"fmt"
	"runtime"
)

var errUnsupportedOS = errors.New("os not supported")

// RegistryInspector is only functional on Windows; on other platforms every
// inspection reports an unsupported-OS error so the prerequisite check fails
// fast instead of pretending.
type RegistryInspector struct{}

// OSBuildNumber implements Inspector.
func (RegistryInspector) OSBuildNumber() (int, error) {
	return 0, fmt.Errorf("%s: %w", runtime.GOOS, errUnsupportedOS)
}

// HasInstalledSoftware implements Inspector.
func (RegistryInspector) HasInstalledSoftware(_ []string) (bool, error) {
	return false, fmt.Errorf("%s: %w", runtime.GOOS, errUnsupportedOS)
}

// Architecture implements Inspector.
func (RegistryInspector) Architecture() Architecture {
	if runtime.GOARCH == "386" {
		return ArchX86
	}

	return ArchX64
}
