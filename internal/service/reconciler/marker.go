package reconciler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/winget-keeper/internal/logger"
)

// markerPath returns the single-instance marker location inside the staging directory.
func markerPath(stagingDirectory string) string {
	return filepath.Join(stagingDirectory, MarkerFilename)
}

// IsReconcilerRunningNow checks presence of a marker file and attempts recovery
// if it looks stale.
func IsReconcilerRunningNow(ctx context.Context, stagingDirectory string) bool {
	logger.Info(ctx, "Checking for the presence of an update marker")

	marker := markerPath(stagingDirectory)

	fileInfo, err := os.Stat(marker)
	if err == nil {
		if time.Since(fileInfo.ModTime()) <= markerLifetime {
			return true
		}

		logger.Info(ctx, "The update marker is too old, attempting cleanup")

		if err = terminateProcessByName(reconcilerExecutable()); err != nil {
			return true
		}

		if err = os.Remove(marker); err != nil {
			return true
		}

		return false
	}

	if errors.Is(err, os.ErrNotExist) {
		logger.Info(ctx, "Update marker not found, continuing")
		return false
	}

	logger.Infof(ctx, "Unable to read update marker: %v", err)

	return false
}

// createMarker writes the single-instance marker, creating the staging
// directory when needed.
func createMarker(stagingDirectory string) error {
	if err := os.MkdirAll(stagingDirectory, stagingDirPermissions); err != nil {
		return err
	}

	marker, err := os.Create(markerPath(stagingDirectory))
	if err != nil {
		return err
	}

	return marker.Close()
}

// removeMarker deletes the single-instance marker if present.
func removeMarker(stagingDirectory string) {
	marker := markerPath(stagingDirectory)
	if _, err := os.Stat(marker); err == nil {
		_ = os.Remove(marker)
	}
}

// terminateProcessByName tries to kill processes with the provided executable name.
func terminateProcessByName(processName string) error {
	processList, err := ps.Processes()
	if err != nil {
		return err
	}

	thisProcessID := os.Getpid()

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
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
	}

	return nil
}
