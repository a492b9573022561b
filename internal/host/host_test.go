package host

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExecLocator_FallbackGlob resolves the executable through the wildcard
// install pattern when command lookup fails.
func TestExecLocator_FallbackGlob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	installDir := filepath.Join(dir, "Publisher.Tool_1.6.0_x64__abc123")
	require.NoError(t, os.MkdirAll(installDir, 0o755))

	exePath := filepath.Join(installDir, "tool.exe")
	require.NoError(t, os.WriteFile(exePath, []byte("binary"), 0o755))

	pattern := filepath.Join(dir, "Publisher.Tool_*", "tool.exe")

	resolved, found := ExecLocator{}.Locate("definitely-not-on-path-tool", pattern)
	require.True(t, found)
	require.Equal(t, exePath, resolved)
}

// TestExecLocator_NotFound reports a soft miss when neither lookup resolves.
func TestExecLocator_NotFound(t *testing.T) {
	t.Parallel()

	pattern := filepath.Join(t.TempDir(), "nothing-here_*", "tool.exe")

	_, found := ExecLocator{}.Locate("definitely-not-on-path-tool", pattern)
	require.False(t, found)
}

// TestExecRunner_CaptureVersion runs a stand-in tool and captures its output
// through both read paths.
func TestExecRunner_CaptureVersion(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("stand-in tool is a shell script")
	}

	dir := t.TempDir()
	script := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho v1.2.3\n"), 0o755))

	ctx := context.Background()

	direct, err := ExecRunner{}.CaptureVersion(ctx, script)
	require.NoError(t, err)
	require.Equal(t, "v1.2.3", direct)

	viaShell, err := ExecRunner{}.CaptureVersionViaShell(ctx, script)
	require.NoError(t, err)
	require.Equal(t, direct, viaShell)
}
