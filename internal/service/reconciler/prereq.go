package reconciler

import (
	"context"
	"fmt"
	"os"

	"github.com/oshokin/winget-keeper/internal/logger"
)

// checkHostSupport fails when the OS build number is below the configured
// minimum. There is no recovery; this is a hard prerequisite.
func (r *runner) checkHostSupport() error {
	build, err := r.inspector.OSBuildNumber()
	if err != nil {
		return fmt.Errorf("read os build number: %w", err)
	}

	if build < r.cfg.MinimumOSBuild {
		return fmt.Errorf("os build %d, minimum %d: %w", build, r.cfg.MinimumOSBuild, errHostUnsupported)
	}

	return nil
}

// ensureRuntimeDependency installs the runtime redistributable when no
// installed-software record matches one of the accepted name patterns.
// The downloaded installer never outlives the attempt.
func (r *runner) ensureRuntimeDependency(ctx context.Context) error {
	present, err := r.inspector.HasInstalledSoftware(r.cfg.RedistNamePatterns)
	if err != nil {
		return fmt.Errorf("inspect installed software: %w", err)
	}

	if present {
		logger.Info(ctx, "Runtime redistributable already present")
		return nil
	}

	downloadURL := fmt.Sprintf(r.cfg.RedistURLTemplate, r.inspector.Architecture())

	logger.InfoKV(ctx, "Installing runtime redistributable", "url", downloadURL)

	installerPath, err := r.downloadToStaging(ctx, downloadURL)
	if err != nil {
		return fmt.Errorf("download redistributable: %w", err)
	}

	defer func() {
		_ = os.Remove(installerPath)
	}()

	if err = r.installer.RunSilentInstaller(ctx, installerPath); err != nil {
		return fmt.Errorf("install redistributable: %w", err)
	}

	return nil
}
