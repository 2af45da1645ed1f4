// =============================================================================
// PaymentMaker - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'process', 'version') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (paymentmaker)
//   ├── processCmd (paymentmaker process)
//   └── versionCmd (paymentmaker version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"paymentmaker/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables verbose logging when set to true.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "paymentmaker",

	Short: "PaymentMaker - Generate invoices and acts from transport trip reports",

	Long: `PaymentMaker is a CLI tool that turns loosely formatted transport trip
reports (XLSX or tab-separated) into ready-to-print payment documents: an
invoice ("Счет") and a completed-work act ("Акт") in one workbook.

Key Features:
  - Reads XLSX and tab-separated reports, with CP1251 fallback
  - Tolerant field extraction: a bad cell degrades to a warning, not a failure
  - Destination routes resolved from free-text unload addresses
  - Exact decimal money handling with an amount-in-words totals line
  - Automatic archival of processed reports

Example Usage:
  paymentmaker process --file report.xlsx --number 12
  paymentmaker process --file report.xlsx --customer 'ООО "Ромашка"'
  paymentmaker process --file report.xlsx --config ./my.yaml`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
