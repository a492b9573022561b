package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks required fields, defaulting, and format validations.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil configuration.
	err := Validate(nil)
	require.Error(t, err)

	// Empty settings fall back to defaults.
	cfg := new(Config)

	err = Validate(cfg)
	require.NoError(t, err)
	require.Equal(t, DefaultFeedURL, cfg.FeedURL)
	require.Equal(t, DefaultBundleExtension, cfg.BundleExtension)
	require.Equal(t, DefaultMinimumOSBuild, cfg.MinimumOSBuild)
	require.NotEmpty(t, cfg.StagingDirectory)
	require.Positive(t, cfg.PollAttempts)

	// Bad feed URL.
	cfg = &Config{FeedURL: "not a url"}

	err = Validate(cfg)
	require.Error(t, err)

	// Extension without a leading dot.
	cfg = &Config{BundleExtension: "msixbundle"}

	err = Validate(cfg)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := Default()
	cfg.FeedURL = "https://updates.local/releases/latest"
	cfg.StagingDirectory = filepath.Join(dir, "staging")

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.FeedURL, loaded.FeedURL)
	require.Equal(t, cfg.StagingDirectory, loaded.StagingDirectory)
	require.Equal(t, cfg.RedistNamePatterns, loaded.RedistNamePatterns)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
