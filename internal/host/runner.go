package host

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// VersionFlag is the flag the managed tool answers its version to.
const VersionFlag = "--version"

// ExecRunner invokes the managed tool via os/exec.
type ExecRunner struct{}

// CaptureVersion implements Runner by capturing stdout directly.
func (ExecRunner) CaptureVersion(ctx context.Context, executablePath string) (string, error) {
	output, err := exec.CommandContext(ctx, executablePath, VersionFlag).Output()
	if err != nil {
		return "", fmt.Errorf("invoke %s %s: %w", executablePath, VersionFlag, err)
	}

	return strings.TrimSpace(string(output)), nil
}

// CaptureVersionViaShell implements Runner by redirecting the tool's output
// to a temporary file through the platform shell and reading it back.
func (ExecRunner) CaptureVersionViaShell(ctx context.Context, executablePath string) (string, error) {
	outputFile, err := os.CreateTemp("", "winget-keeper-version-")
	if err != nil {
		return "", err
	}

	outputFileName := outputFile.Name()

	if err = outputFile.Close(); err != nil {
		return "", err
	}

	defer func() {
		_ = os.Remove(outputFileName)
	}()

	// Quote manually: fmt's %q would escape Windows path separators.
	redirected := `"` + executablePath + `" ` + VersionFlag + ` > "` + outputFileName + `"`

	var cmd *exec.Cmd

	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		cmd = exec.CommandContext(ctx, "cmd.exe", "/C", redirected)
	} else {
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", redirected)
	}

	if err = cmd.Run(); err != nil {
		return "", fmt.Errorf("invoke %s via shell: %w", executablePath, err)
	}

	contents, err := os.ReadFile(outputFileName)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(contents)), nil
}
