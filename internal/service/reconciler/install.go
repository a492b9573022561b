package reconciler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/winget-keeper/internal/logger"
)

// locateTool resolves the managed executable; a miss is a soft condition.
func (r *runner) locateTool() (string, bool) {
	return r.locator.Locate(r.cfg.ToolExecutable, r.cfg.FallbackPattern)
}

// installOrUpdate downloads the bundle behind the URL into the staging
// directory and provisions it. The downloaded file is removed on every exit
// path regardless of install success or failure.
func (r *runner) installOrUpdate(ctx context.Context, downloadURL string) error {
	if strings.TrimSpace(downloadURL) == "" {
		return errEmptyDownloadURL
	}

	bundlePath, err := r.downloadToStaging(ctx, downloadURL)
	if err != nil {
		return err
	}

	defer func() {
		_ = os.Remove(bundlePath)
	}()

	// The OS installer cannot service a package whose executable is running.
	if err = r.terminateToolProcesses(ctx); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Provisioning bundle", "path", bundlePath)

	return r.installer.ProvisionBundle(ctx, bundlePath)
}

// waitForRegistration polls path resolution while the OS finishes registering
// a freshly provisioned package. Package registration is asynchronous relative
// to the installer command returning, so a bounded poll is the only signal.
func (r *runner) waitForRegistration(ctx context.Context) (string, bool) {
	for attempt := 1; ; attempt++ {
		if toolPath, found := r.locateTool(); found {
			return toolPath, true
		}

		if attempt >= r.cfg.PollAttempts {
			return "", false
		}

		logger.DebugKV(ctx, "Tool not registered yet", "attempt", attempt)

		select {
		case <-ctx.Done():
			return "", false
		case <-time.After(r.cfg.PollInterval):
		}
	}
}

// terminateToolProcesses kills running instances of the managed tool before install.
func (r *runner) terminateToolProcesses(ctx context.Context) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()
	target := filepath.Base(r.cfg.ToolExecutable)

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != target {
			continue
		}

		var runningProcess *os.Process

		runningProcess, err = os.FindProcess(process.Pid())
		if err != nil {
			return err
		}

		if err = runningProcess.Kill(); err != nil {
			return err
		}

		logger.InfoKV(ctx, "Terminated running tool process", "pid", process.Pid())
	}

	return nil
}
