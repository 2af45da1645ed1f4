// =============================================================================
// PaymentMaker - Process Command
// =============================================================================
//
// This file defines the 'process' command, the main command that turns one
// trip report into the invoice/act workbook.
//
// COMMAND USAGE:
//   paymentmaker process --file report.xlsx [flags]
//
// FLAGS:
//   --file       : Path to the trip report to process (required)
//   --number     : Document number printed in the titles
//   --date       : Document date (DD.MM.YYYY, default today)
//   --customer   : Customer name overriding the configured default
//   --details    : Customer requisites overriding the configured default
//   --template   : Existing workbook to fill instead of generating from scratch
//   --output     : Output file name (overrides the configured name format)
//   --no-archive : Leave the input report in place after processing
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Ingest the report (load, validate structure, extract service lines)
//   3. Print per-row warnings
//   4. Build the invoice data
//   5. Generate (or fill) the invoice/act workbook
//   6. Archive the input report
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"paymentmaker/internal/config"
	"paymentmaker/internal/docwriter"
	"paymentmaker/internal/models"
	"paymentmaker/internal/processor"
	"paymentmaker/internal/ruwords"
	"paymentmaker/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// inputFile is the path to the trip report to process.
var inputFile string

// docNumber is the document number printed in the invoice and act titles.
var docNumber string

// docDate is the document date as DD.MM.YYYY; empty means today.
var docDate string

// customerName overrides the configured default customer name.
var customerName string

// customerDetails overrides the configured default customer requisites.
var customerDetails string

// templateFile, when set, is an existing workbook to fill instead of
// generating the documents from scratch.
var templateFile string

// outputName overrides the configured output file name format.
var outputName string

// noArchive leaves the input report in place after processing.
var noArchive bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Generate an invoice and act from a trip report",
	Long: `The process command reads a trip report (XLSX workbook or tab-separated
text), extracts one service line per trip and renders the invoice and the
completed-work act into a single output workbook.

Row-level problems (an unparseable date, a missing amount) degrade to
warnings and defaults; the run only fails when the file itself is unreadable
or required columns are missing.

On successful processing:
  - The generated workbook is placed in the output directory
  - The original report is moved to the archive directory (unless --no-archive)

On error:
  - The original report remains in place and nothing is written`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess()
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(
		&inputFile,
		"file",
		"",
		"Path to the trip report to process",
	)
	processCmd.MarkFlagRequired("file")

	processCmd.Flags().StringVar(
		&docNumber,
		"number",
		"1",
		"Document number printed in the invoice and act titles",
	)

	processCmd.Flags().StringVar(
		&docDate,
		"date",
		"",
		"Document date as DD.MM.YYYY (default today)",
	)

	processCmd.Flags().StringVar(
		&customerName,
		"customer",
		"",
		"Customer name overriding the configured default",
	)

	processCmd.Flags().StringVar(
		&customerDetails,
		"details",
		"",
		"Customer requisites overriding the configured default",
	)

	processCmd.Flags().StringVar(
		&templateFile,
		"template",
		"",
		"Existing workbook to fill instead of generating from scratch",
	)

	processCmd.Flags().StringVar(
		&outputName,
		"output",
		"",
		"Output file name (overrides the configured name format)",
	)

	processCmd.Flags().BoolVar(
		&noArchive,
		"no-archive",
		false,
		"Leave the input report in place after processing",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the document pipeline for one report.
func runProcess() error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	fmt.Println("=== PaymentMaker ===")
	fmt.Println("Loading configuration...")

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	date := time.Now()
	if docDate != "" {
		date, err = time.Parse("02.01.2006", docDate)
		if err != nil {
			return fmt.Errorf("invalid --date value %q, expected DD.MM.YYYY", docDate)
		}
	}

	// =========================================================================
	// STEP 2: INGEST THE REPORT
	// =========================================================================

	fmt.Printf("Processing %s...\n", inputFile)

	proc := processor.NewWithLogger(newCLILogger())
	result := proc.ProcessFile(inputFile)

	for _, warning := range result.Warnings {
		fmt.Printf("  ! %s\n", warning)
	}

	if !result.Success {
		for _, e := range result.Errors {
			fmt.Printf("  ✗ %s\n", e)
		}
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Printf("  ✓ %s\n", result.Message)

	// =========================================================================
	// STEP 3: BUILD THE INVOICE DATA
	// =========================================================================

	inv := models.InvoiceData{
		Number:          docNumber,
		Date:            date,
		Customer:        customerName,
		CustomerDetails: customerDetails,
		Services:        result.Data,
	}

	// =========================================================================
	// STEP 4: GENERATE THE DOCUMENTS
	// =========================================================================

	fm := utils.NewFileManager(cfg.Output.Dir, cfg.Output.ArchiveDir)
	fm.ArchiveOnSuccess = !noArchive

	if err := fm.EnsureDirectories(); err != nil {
		return err
	}

	fileName := outputName
	if fileName == "" {
		fileName = utils.BuildOutputName(cfg.Output.FileNameFormat, docNumber)
	}
	outputPath := fm.OutputPath(fileName)

	writer := docwriter.NewWriter(cfg.Company, cfg.Customer)

	if templateFile != "" {
		err = writer.FillTemplate(templateFile, inv, outputPath)
	} else {
		err = writer.Generate(inv, outputPath)
	}
	if err != nil {
		return fmt.Errorf("failed to generate documents: %w", err)
	}

	// =========================================================================
	// STEP 5: ARCHIVE THE INPUT REPORT
	// =========================================================================

	archivePath, err := fm.ArchiveInputFile(inputFile)
	if err != nil {
		// The documents are already written; a failed archival is worth a
		// notice but not a failed run.
		fmt.Printf("  ! failed to archive input file: %v\n", err)
		archivePath = inputFile
	}

	// =========================================================================
	// STEP 6: PRINT SUMMARY
	// =========================================================================

	total := inv.TotalAmount()
	elapsed := time.Since(startTime)

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Services:      %d\n", inv.ServicesCount())
	fmt.Printf("Total:         %s руб.\n", ruwords.FormatMoney(total))
	fmt.Printf("Output:        %s\n", outputPath)
	fmt.Printf("Input moved:   %s\n", archivePath)
	fmt.Printf("Time elapsed:  %s\n", elapsed)

	return nil
}

// =============================================================================
// LOGGING
// =============================================================================

// cliLogger routes processor logging through the command's plain stdout
// style; debug output only appears with --verbose.
type cliLogger struct{}

func newCLILogger() *cliLogger {
	return &cliLogger{}
}

func (l *cliLogger) Debug(msg string, args ...interface{}) {
	if verbose {
		fmt.Printf("  [debug] "+msg+"\n", args...)
	}
}

func (l *cliLogger) Info(msg string, args ...interface{}) {
	if verbose {
		fmt.Printf("  [info] "+msg+"\n", args...)
	}
}

func (l *cliLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("  [warn] "+msg+"\n", args...)
}

func (l *cliLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("  [error] "+msg+"\n", args...)
}
