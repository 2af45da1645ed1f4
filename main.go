// =============================================================================
// PaymentMaker - Main Entry Point
// =============================================================================
//
// This is the main entry point for the PaymentMaker CLI application. It turns
// a spreadsheet of transport trips into a payment workbook holding an invoice
// sheet and a matching completion act sheet.
//
// USAGE:
//   paymentmaker process --file trips.xlsx   - Process a trip report
//   paymentmaker version                     - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"paymentmaker/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
