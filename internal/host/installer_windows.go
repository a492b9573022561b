//go:build windows

package host

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// ProvisionedInstaller installs packages through the OS installer subsystem.
type ProvisionedInstaller struct{}

// ProvisionBundle implements Installer. The bundle is provisioned online so
// it applies to all users, and the license prompt is skipped.
func (ProvisionedInstaller) ProvisionBundle(ctx context.Context, bundlePath string) error {
	command := fmt.Sprintf(
		"Add-AppxProvisionedPackage -Online -PackagePath '%s' -SkipLicense | Out-Null",
		strings.ReplaceAll(bundlePath, "'", "''"),
	)

	cmd := exec.CommandContext(ctx, "powershell.exe",
		"-NoProfile", "-NonInteractive", "-Command", command)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("provision %s: %w: %s", bundlePath, err, strings.TrimSpace(string(output)))
	}

	return nil
}

// RunSilentInstaller implements Installer with no UI and no reboot.
func (ProvisionedInstaller) RunSilentInstaller(ctx context.Context, installerPath string) error {
	cmd := exec.CommandContext(ctx, installerPath, "/install", "/quiet", "/norestart")
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run installer %s: %w", installerPath, err)
	}

	return nil
}
