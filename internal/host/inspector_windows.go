//go:build windows

package host

import (
	"fmt"
	"path"
	"runtime"
	"strconv"

	"golang.org/x/sys/windows/registry"
)

// uninstallKeys are the registry locations listing installed software,
// including the 32-bit view on 64-bit hosts.
var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall`,
}

// RegistryInspector reads host facts from the Windows registry.
type RegistryInspector struct{}

// OSBuildNumber implements Inspector.
func (RegistryInspector) OSBuildNumber() (int, error) {
	k, err := registry.OpenKey(
		registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Windows NT\CurrentVersion`,
		registry.QUERY_VALUE,
	)
	if err != nil {
		return 0, fmt.Errorf("open version key: %w", err)
	}

	defer func() {
		_ = k.Close()
	}()

	value, _, err := k.GetStringValue("CurrentBuildNumber")
	if err != nil {
		return 0, fmt.Errorf("read build number: %w", err)
	}

	build, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse build number %q: %w", value, err)
	}

	return build, nil
}

// HasInstalledSoftware implements Inspector by scanning the Uninstall keys'
// DisplayName values against the provided glob patterns.
func (RegistryInspector) HasInstalledSoftware(patterns []string) (bool, error) {
	for _, keyPath := range uninstallKeys {
		found, err := scanUninstallKey(keyPath, patterns)
		if err != nil {
			return false, err
		}

		if found {
			return true, nil
		}
	}

	return false, nil
}

// Architecture implements Inspector.
func (RegistryInspector) Architecture() Architecture {
	if runtime.GOARCH == "386" {
		return ArchX86
	}

	return ArchX64
}

func scanUninstallKey(keyPath string, patterns []string) (bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.READ)
	if err != nil {
		if err == registry.ErrNotExist {
			return false, nil
		}

		return false, fmt.Errorf("open uninstall key: %w", err)
	}

	defer func() {
		_ = k.Close()
	}()

	subKeys, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return false, fmt.Errorf("list uninstall entries: %w", err)
	}

	for _, subKey := range subKeys {
		entry, openErr := registry.OpenKey(k, subKey, registry.QUERY_VALUE)
		if openErr != nil {
			continue
		}

		displayName, _, valueErr := entry.GetStringValue("DisplayName")

		_ = entry.Close()

		if valueErr != nil {
			continue
		}

		for _, pattern := range patterns {
			if matched, _ := path.Match(pattern, displayName); matched {
				return true, nil
			}
		}
	}

	return false, nil
}
