//go:build !windows

package host

import (
	"context"
	"fmt"
	"runtime"
)

// ProvisionedInstaller is only functional on Windows.
type ProvisionedInstaller struct{}

// ProvisionBundle implements Installer.
func (ProvisionedInstaller) ProvisionBundle(_ context.Context, _ string) error {
	return fmt.Errorf("%s: %w", runtime.GOOS, errUnsupportedOS)
}

// RunSilentInstaller implements Installer.
func (ProvisionedInstaller) RunSilentInstaller(_ context.Context, _ string) error {
	return fmt.Errorf("%s: %w", runtime.GOOS, errUnsupportedOS)
}
