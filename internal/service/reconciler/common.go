package reconciler

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"
)

var (
	errAlreadyRunning      = errors.New("the reconciler is already running")
	errHostUnsupported     = errors.New("os build is below the supported minimum")
	errToolNotRegistered   = errors.New("tool is not registered after install")
	errEmptyDownloadURL    = errors.New("download URL is empty")
	errBadHTTPStatus       = errors.New("unexpected http status")
	errVersionNotConfirmed = errors.New("installed version does not match the latest release")
)

const (
	// MarkerFilename marks that a reconciliation pass is running right now
	// to avoid parallel execution.
	MarkerFilename = "winget-keeper-update-marker.bin"

	// markerLifetime is the period after which a stale marker is ignored.
	markerLifetime = 30 * time.Second

	// stagingDirPermissions is the mode for the staging directory.
	stagingDirPermissions os.FileMode = 0o755

	// baseReconcilerExecutable is the name of this binary, used for stale
	// marker recovery.
	baseReconcilerExecutable = "winget-keeper"
)

// Status describes how a reconciliation pass concluded.
type Status string

const (
	// StatusUpToDate means the installed tool already satisfied the latest release.
	StatusUpToDate Status = "up-to-date"
	// StatusInstalled means the tool was absent and has been installed.
	StatusInstalled Status = "installed"
	// StatusUpdated means a stale tool has been brought to the latest release.
	StatusUpdated Status = "updated"
)

// Outcome is the result of a reconciliation pass.
type Outcome struct {
	// Status is the conclusion of the pass.
	Status Status
	// InstalledVersion is the tool version observed after the pass.
	InstalledVersion *goversion.Version
	// LatestVersion is the version the release feed advertised.
	LatestVersion *goversion.Version
	// ToolPath is the resolved executable path.
	ToolPath string
}

// IsUpToDate reports whether the installed version satisfies the latest one.
func IsUpToDate(installed, latest *goversion.Version) bool {
	return installed.GreaterThanOrEqual(latest)
}

// getExecutableExtension returns ".exe" on Windows and "" elsewhere.
func getExecutableExtension() string {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return ".exe"
	}

	return ""
}

func reconcilerExecutable() string {
	return baseReconcilerExecutable + getExecutableExtension()
}
