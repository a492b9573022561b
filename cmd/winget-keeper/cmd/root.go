package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/winget-keeper/internal/config"
	"github.com/oshokin/winget-keeper/internal/logger"
	"github.com/oshokin/winget-keeper/internal/service/reconciler"
	"github.com/oshokin/winget-keeper/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel selects the minimum severity to print.
	logLevel string

	// rootCmd represents the base command ensuring the tool is present and current.
	rootCmd = &cobra.Command{
		Use:   "winget-keeper",
		Short: "Ensure the package manager is installed at the latest version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			options := &reconciler.Options{
				ConfigPath: configPath,
			}

			return reconciler.Run(ctx, options)
		},
	}

	// initCmd seeds a settings file with defaults for later editing.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with default values",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return config.Save(configPath, config.Default())
		},
	}
)

// Execute runs the winget-keeper CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c",
		config.DefaultConfigFilename, "path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l",
		"info", "minimum log level (debug, info, warn, error, fatal)")

	rootCmd.AddCommand(initCmd)
}
