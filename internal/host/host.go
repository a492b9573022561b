package host

import "context"

// Architecture is the CPU architecture of the host, as used in
// redistributable download URLs.
type Architecture string

const (
	// ArchX64 is the 64-bit architecture suffix.
	ArchX64 Architecture = "x64"
	// ArchX86 is the 32-bit architecture suffix.
	ArchX86 Architecture = "x86"
)

// Inspector reads facts about the host the reconciler depends on.
type Inspector interface {
	// OSBuildNumber returns the build number of the running OS.
	OSBuildNumber() (int, error)
	// HasInstalledSoftware reports whether any installed-software record's
	// display name matches one of the provided glob patterns.
	HasInstalledSoftware(patterns []string) (bool, error)
	// Architecture returns the host CPU architecture.
	Architecture() Architecture
}

// Locator resolves the managed executable on the host.
type Locator interface {
	// Locate resolves the executable via command lookup, falling back to a
	// glob over the well-known install path. The boolean is false when
	// neither resolves; that is a soft condition, not an error.
	Locate(executable, fallbackPattern string) (string, bool)
}

// Runner invokes the managed executable to read its version.
type Runner interface {
	// CaptureVersion runs the tool with its version flag and captures stdout directly.
	CaptureVersion(ctx context.Context, executablePath string) (string, error)
	// CaptureVersionViaShell runs the tool through the platform shell with
	// output redirected to a file and reads the result back. This mirrors
	// the post-update verification path, which is kept distinct from the
	// direct capture on purpose.
	CaptureVersionViaShell(ctx context.Context, executablePath string) (string, error)
}

// Installer drives the OS-side install mechanisms.
type Installer interface {
	// ProvisionBundle installs a local bundle file for all users,
	// skipping interactive license prompts.
	ProvisionBundle(ctx context.Context, bundlePath string) error
	// RunSilentInstaller executes a redistributable installer with
	// no UI and no reboot.
	RunSilentInstaller(ctx context.Context, installerPath string) error
}
