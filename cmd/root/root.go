// Package root contains the root command for the application
package root

import (
	"trip-audit/internal/config"
	"trip-audit/internal/container"
	"trip-audit/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands. It is replaced with the
	// fully configured logger in PersistentPreRun.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	appContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "trip-audit",
		Short: "Sort ride-trip receipt screenshots and log them to an audit ledger.",
		Long: `trip-audit OCRs ride-trip receipt screenshots, pairs the top and bottom
halves of each trip, archives the images by date, and appends each new trip
to a deduplicated audit ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to trip-audit!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}

			appContainer, err = container.NewContainer(cfg)
			if err != nil {
				Log.Fatalf("Error initializing application: %v", err)
			}
			Log = appContainer.GetLogger()
		},
	}
)

// GetContainer returns the initialized dependency container.
func GetContainer() *container.Container {
	return appContainer
}
