package reconciler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/oshokin/winget-keeper/internal/config"
	"github.com/oshokin/winget-keeper/internal/host"
	"github.com/oshokin/winget-keeper/internal/logger"
	"github.com/oshokin/winget-keeper/internal/release"
)

// Options are inputs accepted by the reconciler entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
}

// runner holds the configuration and host collaborators for a single
// reconciliation pass. It is intentionally unexported—call Run(ctx, Options)
// from callers.
type runner struct {
	cfg        *config.Config  // Settings loaded from YAML.
	feed       *release.Client // Release feed client.
	inspector  host.Inspector  // Host facts: build number, installed software.
	locator    host.Locator    // Executable resolution.
	commands   host.Runner     // Version-flag invocation.
	installer  host.Installer  // OS install mechanisms.
	httpClient *http.Client    // Used for staged downloads.
}

// Run executes a reconciliation pass and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "winget-keeper")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	if IsReconcilerRunningNow(ctx, cfg.StagingDirectory) {
		return errAlreadyRunning
	}

	if err = createMarker(cfg.StagingDirectory); err != nil {
		return fmt.Errorf("create update marker: %w", err)
	}

	defer func() {
		removeMarker(cfg.StagingDirectory)
		logger.Info(ctx, "The reconciler has been stopped")
	}()

	r := newRunner(cfg)

	outcome, err := r.reconcile(ctx)
	if err != nil {
		logger.ErrorKV(ctx, "Reconciliation failed", "error", err)
		return err
	}

	logger.InfoKV(ctx, "Reconciliation completed",
		"status", string(outcome.Status),
		"installed", outcome.InstalledVersion.String(),
		"latest", outcome.LatestVersion.String(),
		"path", outcome.ToolPath)

	return nil
}

// newRunner wires the default host collaborators for the current platform.
func newRunner(cfg *config.Config) *runner {
	return &runner{
		cfg:        cfg,
		feed:       release.NewClient(cfg.FeedURL, cfg.BundleExtension, cfg.Timeout),
		inspector:  host.RegistryInspector{},
		locator:    host.ExecLocator{},
		commands:   host.ExecRunner{},
		installer:  host.ProvisionedInstaller{},
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// reconcile executes the workflow:
// 1) Host support and runtime dependency checks.
// 2) Resolve the tool's path; install the latest release when absent.
// 3) Read the installed version.
// 4) Fetch the latest release info.
// 5) Compare versions.
// 6) When stale: install, poll for registration, confirm the new version.
func (r *runner) reconcile(ctx context.Context) (*Outcome, error) {
	logger.Info(ctx, "Checking host support")

	if err := r.checkHostSupport(); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Ensuring the runtime redistributable is present")

	if err := r.ensureRuntimeDependency(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Resolving the tool's executable path")

	toolPath, freshInstall, err := r.ensureToolPresent(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "Reading the installed version")

	installed, err := r.readInstalledVersion(ctx, toolPath)
	if err != nil {
		return nil, fmt.Errorf("read installed version: %w", err)
	}

	logger.Info(ctx, "Fetching the latest release info")

	latest, err := r.feed.FetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}

	if IsUpToDate(installed, latest.Version) {
		status := StatusUpToDate
		if freshInstall {
			status = StatusInstalled
		}

		return &Outcome{
			Status:           status,
			InstalledVersion: installed,
			LatestVersion:    latest.Version,
			ToolPath:         toolPath,
		}, nil
	}

	logger.InfoKV(ctx, "Tool is stale, updating",
		"installed", installed.String(), "latest", latest.Version.String())

	if err = r.installOrUpdate(ctx, latest.BundleURL); err != nil {
		return nil, fmt.Errorf("install update: %w", err)
	}

	toolPath, found := r.waitForRegistration(ctx)
	if !found {
		return nil, errToolNotRegistered
	}

	confirmed, err := r.verifyAfterUpdate(ctx, toolPath, latest.Version)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Status:           StatusUpdated,
		InstalledVersion: confirmed,
		LatestVersion:    latest.Version,
		ToolPath:         toolPath,
	}, nil
}

// ensureToolPresent resolves the tool's path, installing the latest release
// first when the tool is absent. The boolean reports whether an install happened.
func (r *runner) ensureToolPresent(ctx context.Context) (string, bool, error) {
	toolPath, found := r.locateTool()
	if found {
		return toolPath, false, nil
	}

	logger.Info(ctx, "Tool not found, installing the latest release")

	latest, err := r.feed.FetchLatest(ctx)
	if err != nil {
		return "", false, fmt.Errorf("fetch latest release: %w", err)
	}

	if err = r.installOrUpdate(ctx, latest.BundleURL); err != nil {
		return "", false, fmt.Errorf("install tool: %w", err)
	}

	toolPath, found = r.waitForRegistration(ctx)
	if !found {
		return "", false, errToolNotRegistered
	}

	return toolPath, true, nil
}
