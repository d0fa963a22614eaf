// Package export handles ledger format conversion commands
package export

import (
	"trip-audit/cmd/root"
	"trip-audit/internal/ledger"
	"trip-audit/internal/logging"

	"github.com/spf13/cobra"
)

var outputPath string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to another format",
	Long: `Copy every row of the configured ledger into a new ledger file. The
output format follows the output file's extension (.xlsx or .csv), so this
converts between the workbook and plain-text representations.`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output ledger file (.xlsx or .csv)")
	_ = Cmd.MarkFlagRequired("output")
}

func exportFunc(cmd *cobra.Command, args []string) {
	appContainer := root.GetContainer()
	if appContainer == nil {
		root.Log.Fatal("Container not initialized")
	}

	source := appContainer.GetLedgerStore()
	rows, err := source.Load()
	if err != nil {
		root.Log.WithError(err).Fatal("Failed to read ledger")
	}

	dest, err := ledger.NewStore(outputPath)
	if err != nil {
		root.Log.Fatalf("Invalid output path: %v", err)
	}
	if err := dest.Append(rows); err != nil {
		root.Log.WithError(err).Fatal("Failed to write exported ledger")
	}

	root.Log.Info("Ledger exported",
		logging.Field{Key: logging.FieldLedger, Value: source.Path()},
		logging.Field{Key: logging.FieldDestination, Value: outputPath},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
}
