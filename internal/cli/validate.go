package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/core"
	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/logging"
	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/report"
	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/schema"
	"github.com/M-JOXx/ExcelDiagnosticsHelper/internal/source"
)

var validateFlags struct {
	manifest   string
	out        string
	failed     string
	summary    string
	headerRows int
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an order sheet and write annotated diagnostics",
	Long: `validate streams the rows of an .xlsx or .csv order sheet through the
validation pipeline and reports every cell and row problem found. The
original layout is reproduced in an annotated workbook with problem cells
highlighted and commented; invalid rows are also written to a CSV for quick
triage, and the counters to a JSON summary.

The run never aborts on bad data: every diagnostic ends up in the report.
A non-zero exit means the input could not be read at all.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFlags.manifest, "manifest", "m", "", "YAML run manifest (flags override its values)")
	validateCmd.Flags().StringVarP(&validateFlags.out, "out", "o", "", "annotated workbook output path (default: <input>-annotated.xlsx)")
	validateCmd.Flags().StringVar(&validateFlags.failed, "failed", "", "failed-rows CSV output path (default: <input>-failed.csv)")
	validateCmd.Flags().StringVar(&validateFlags.summary, "summary", "", "JSON summary output path (omitted unless set)")
	validateCmd.Flags().IntVar(&validateFlags.headerRows, "header-rows", -1, "header rows to skip (default from config)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	input, headerRows, outputs, err := resolveRun(args)
	if err != nil {
		return err
	}

	if err := checkFileSize(input); err != nil {
		return err
	}

	src, err := openSource(input)
	if err != nil {
		return friendly(err)
	}

	pipe, err := core.NewPipeline(schema.OrderDef(), src,
		core.WithRowValidators(schema.OrderRules()...),
		core.WithHeaderRows[schema.Order](headerRows),
	)
	if err != nil {
		// Schema ambiguity is fatal before any row is touched.
		src.Close()
		return friendly(err)
	}

	ctx := logging.WithRunID(cmd.Context(), pipe.Summary().RunID().String())
	log := logging.FromContext(ctx)
	log.Info("validating", "input", input, "header_rows", headerRows)

	summary, err := pipe.Run()
	if err != nil {
		return friendly(err)
	}

	log.Info("validation complete",
		"rows", summary.TotalRows(),
		"valid", summary.ValidRows(),
		"invalid", summary.InvalidRows(),
		"cell_errors", summary.CellErrorCount(),
		"row_errors", summary.RowErrorCount(),
		"warnings", summary.CellWarningCount()+summary.RowWarningCount(),
	)

	data := summary.Report()
	opts := report.Options{
		ErrorFill:      cfg.Report.ErrorFill,
		WarningFill:    cfg.Report.WarningFill,
		CommentAuthor:  cfg.Report.CommentAuthor,
		HeaderRow:      headerRows, // field names land on the last header row
		MaxColumnWidth: cfg.Report.MaxColumnWidth,
	}

	if err := report.WriteWorkbook(outputs.workbook, data, opts); err != nil {
		return err
	}
	log.Info("annotated workbook written", "path", outputs.workbook)

	n, err := report.WriteFailedRows(outputs.failed, data)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Info("failed rows written", "path", outputs.failed, "rows", n)
	}

	if outputs.summary != "" {
		if err := report.WriteJSON(outputs.summary, data); err != nil {
			return err
		}
		log.Info("summary written", "path", outputs.summary)
	}

	return nil
}

type outputPaths struct {
	workbook string
	failed   string
	summary  string
}

// resolveRun merges the manifest (if any) with command-line flags; flags
// win, and output paths fall back to names derived from the input.
func resolveRun(args []string) (input string, headerRows int, outputs outputPaths, err error) {
	headerRows = cfg.Source.HeaderRows

	if validateFlags.manifest != "" {
		m, mErr := loadManifest(validateFlags.manifest)
		if mErr != nil {
			err = mErr
			return
		}
		input = m.Input
		if m.HeaderRows != nil {
			headerRows = *m.HeaderRows
		}
		outputs.workbook = m.Output.Workbook
		outputs.failed = m.Output.FailedRows
		outputs.summary = m.Output.Summary
	}

	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		err = errors.New("no input file: pass a path or a manifest with 'input'")
		return
	}

	if validateFlags.headerRows >= 0 {
		headerRows = validateFlags.headerRows
	}
	if validateFlags.out != "" {
		outputs.workbook = validateFlags.out
	}
	if validateFlags.failed != "" {
		outputs.failed = validateFlags.failed
	}
	if validateFlags.summary != "" {
		outputs.summary = validateFlags.summary
	}

	base := strings.TrimSuffix(input, filepath.Ext(input))
	if outputs.workbook == "" {
		outputs.workbook = base + "-annotated.xlsx"
	}
	if outputs.failed == "" {
		outputs.failed = base + "-failed.csv"
	}
	return
}

func checkFileSize(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if info.Size() > cfg.Source.MaxFileSize {
		return fmt.Errorf("%s is %d bytes, over the %d byte limit", path, info.Size(), cfg.Source.MaxFileSize)
	}
	return nil
}

// openSource picks the row source by file extension.
func openSource(path string) (core.RowSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return source.OpenXLSX(path)
	case ".csv":
		return source.OpenCSV(path)
	default:
		return nil, fmt.Errorf("%s is not a valid input: expect .xlsx or .csv", path)
	}
}

// friendly wraps known technical errors with the mapped user message while
// keeping the original for logs.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	if core.IsUserFacing(err) {
		return fmt.Errorf("%s (%w)", core.FormatUserError(err), err)
	}
	return err
}
