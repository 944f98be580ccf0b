// Package cli wires the command-line surface: the validate command that
// runs a pipeline over an input file and writes the report artifacts, plus
// version. All real work lives in core, source, schema, and report; this
// package only parses arguments and connects the pieces.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "exceldiag",
	Short: "Validate tabular data and produce annotated diagnostics",
	Long: `exceldiag ingests spreadsheet rows into typed records, validates every
field and record against the declared rules, and writes an annotated
workbook, a failed-rows CSV, and a JSON summary of the diagnostics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the loaded configuration.
func Execute(c *config.Config) error {
	cfg = c
	return rootCmd.Execute()
}
