// Package process handles the batch pipeline command
package process

import (
	"trip-audit/cmd/root"
	"trip-audit/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Process the intake directory",
	Long: `Recognize every screenshot in the intake directory, pair the top and
bottom halves of each trip, archive matched pairs by date, and append new
trips to the ledger. Unmatched images are reported and left in intake.`,
	Run: processFunc,
}

func processFunc(cmd *cobra.Command, args []string) {
	appContainer := root.GetContainer()
	if appContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	summary, err := appContainer.GetProcessor().Run()
	if err != nil {
		root.Log.WithError(err).Fatal("Batch run failed")
	}

	root.Log.Info("Run summary",
		logging.Field{Key: logging.FieldRunID, Value: summary.RunID},
		logging.Field{Key: "scanned", Value: summary.Scanned},
		logging.Field{Key: "matched_pairs", Value: summary.MatchedPairs},
		logging.Field{Key: "unmatched", Value: summary.Unmatched},
		logging.Field{Key: "new_entries", Value: summary.Added},
		logging.Field{Key: "duplicates_skipped", Value: summary.Duplicates},
		logging.Field{Key: "recognition_errors", Value: summary.Errored},
		logging.Field{Key: "file_errors", Value: summary.FileErrors})
}
