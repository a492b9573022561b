package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings driving a reconciliation pass.
type Config struct {
	// FeedURL is the release feed endpoint listing published tool versions.
	FeedURL string `yaml:"feed_url"`
	// BundleExtension is the installer package suffix used to pick a release asset.
	BundleExtension string `yaml:"bundle_extension"`
	// StagingDirectory is the scratch folder for transient installer downloads.
	// It is passed explicitly to every operation that touches the filesystem.
	StagingDirectory string `yaml:"staging_dir"`
	// ToolExecutable is the name of the managed executable.
	ToolExecutable string `yaml:"tool_executable"`
	// FallbackPattern is a glob matching the well-known install path of the tool,
	// used when command lookup fails. The wildcard covers the package identity segment.
	FallbackPattern string `yaml:"fallback_pattern"`
	// MinimumOSBuild is the lowest supported OS build number.
	MinimumOSBuild int `yaml:"minimum_os_build"`
	// RedistURLTemplate is the download URL for the runtime redistributable,
	// with a %s placeholder for the CPU architecture.
	RedistURLTemplate string `yaml:"redist_url_template"`
	// RedistNamePatterns are the accepted display names of the redistributable,
	// one per supported release line.
	RedistNamePatterns []string `yaml:"redist_name_patterns"`
	// Timeout bounds every network operation.
	Timeout time.Duration `yaml:"timeout"`
	// PollAttempts is how many times path resolution is retried after an install,
	// while the OS registers the freshly provisioned package.
	PollAttempts int `yaml:"poll_attempts"`
	// PollInterval is the delay between registration polls.
	PollInterval time.Duration `yaml:"poll_interval"`
}

const (
	// DefaultConfigFilename is the default filename for reconciler settings.
	DefaultConfigFilename = "winget-keeper-settings.yaml"

	// DefaultFeedURL points at the release feed of the managed tool.
	DefaultFeedURL = "https://api.github.com/repos/microsoft/winget-cli/releases/latest"

	// DefaultBundleExtension is the installer bundle suffix of the managed tool.
	DefaultBundleExtension = ".msixbundle"

	// DefaultToolExecutable is the managed executable name.
	DefaultToolExecutable = "winget.exe"

	// DefaultFallbackPattern resolves the tool inside the per-package install
	// folder when it is not on PATH. The wildcard is the package identity segment.
	DefaultFallbackPattern = `C:\Program Files\WindowsApps\Microsoft.DesktopAppInstaller_*_*__8wekyb3d8bbwe\winget.exe`

	// DefaultMinimumOSBuild is the first OS build shipping the provisioned-package installer APIs.
	DefaultMinimumOSBuild = 16299

	// DefaultRedistURLTemplate is where the runtime redistributable is downloaded from.
	DefaultRedistURLTemplate = "https://aka.ms/vs/17/release/vc_redist.%s.exe"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Minute

	// DefaultPollAttempts is the default number of post-install registration polls.
	DefaultPollAttempts = 10

	// DefaultPollInterval is the default delay between registration polls.
	DefaultPollInterval = time.Second

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errBadBundleExtension is returned when the bundle extension has no leading dot.
	errBadBundleExtension = errors.New("bundle extension must start with a dot")
)

// DefaultRedistNamePatterns returns accepted redistributable display names,
// covering the two major release lines shipping the same runtime.
func DefaultRedistNamePatterns() []string {
	return []string{
		"Microsoft Visual C++ 2015-2019 Redistributable*",
		"Microsoft Visual C++ 2015-2022 Redistributable*",
	}
}

// Default produces a configuration with all fields set to their defaults.
func Default() *Config {
	return &Config{
		FeedURL:            DefaultFeedURL,
		BundleExtension:    DefaultBundleExtension,
		StagingDirectory:   filepath.Join(os.TempDir(), "winget-keeper-prerequisites"),
		ToolExecutable:     DefaultToolExecutable,
		FallbackPattern:    DefaultFallbackPattern,
		MinimumOSBuild:     DefaultMinimumOSBuild,
		RedistURLTemplate:  DefaultRedistURLTemplate,
		RedistNamePatterns: DefaultRedistNamePatterns(),
		Timeout:            DefaultTimeout,
		PollAttempts:       DefaultPollAttempts,
		PollInterval:       DefaultPollInterval,
	}
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and
// fills omitted ones with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.FeedURL == "" {
		cfg.FeedURL = DefaultFeedURL
	}

	if _, err := url.ParseRequestURI(cfg.FeedURL); err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}

	if cfg.BundleExtension == "" {
		cfg.BundleExtension = DefaultBundleExtension
	}

	if !strings.HasPrefix(cfg.BundleExtension, ".") {
		return errBadBundleExtension
	}

	if cfg.StagingDirectory == "" {
		cfg.StagingDirectory = filepath.Join(os.TempDir(), "winget-keeper-prerequisites")
	}

	if cfg.ToolExecutable == "" {
		cfg.ToolExecutable = DefaultToolExecutable
	}

	if cfg.FallbackPattern == "" {
		cfg.FallbackPattern = DefaultFallbackPattern
	}

	if cfg.MinimumOSBuild <= 0 {
		cfg.MinimumOSBuild = DefaultMinimumOSBuild
	}

	if cfg.RedistURLTemplate == "" {
		cfg.RedistURLTemplate = DefaultRedistURLTemplate
	}

	if len(cfg.RedistNamePatterns) == 0 {
		cfg.RedistNamePatterns = DefaultRedistNamePatterns()
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.PollAttempts <= 0 {
		cfg.PollAttempts = DefaultPollAttempts
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return nil
}
