// =============================================================================
// PaymentMaker - Structural Validator
// =============================================================================
//
// This module verifies that a loaded trip report carries every column the
// processing pipeline depends on. Reports come from different people and the
// labels drift ("Дата рейса", "Сумма за рейсы, руб."), so a required column
// that is not present under its exact label is searched for with a
// case-insensitive substring match against the actual headers and renamed on
// the first hit.
//
// Validation is all-or-nothing: if any required column is still missing after
// fuzzy matching, the whole file is rejected with an error listing every
// missing column. No partial row extraction is attempted.
//
// =============================================================================

package validation

import (
	"strings"

	"paymentmaker/internal/loader"
)

// RequiredColumns lists the column labels the row processor reads. The order
// is only used for stable error messages.
var RequiredColumns = []string{
	"Дата",
	"Водитель",
	"Авто",
	"Адрес выгрузки",
	"Сумма за рейсы",
}

// ValidateStructure checks the table for the required columns, renaming
// fuzzy matches to their canonical labels in place.
//
// RETURNS:
//   - The labels of required columns that could not be found, in
//     RequiredColumns order. An empty slice means the table is valid.
func ValidateStructure(table *loader.Table) []string {
	var missing []string

	for _, required := range RequiredColumns {
		if table.HasColumn(required) {
			continue
		}

		if actual, ok := findFuzzyMatch(table.Headers, required); ok {
			table.RenameColumn(actual, required)
			continue
		}

		missing = append(missing, required)
	}

	return missing
}

// findFuzzyMatch returns the first actual header containing the required
// label, ignoring case.
func findFuzzyMatch(headers []string, required string) (string, bool) {
	needle := strings.ToLower(required)
	for _, header := range headers {
		if strings.Contains(strings.ToLower(header), needle) {
			return header, true
		}
	}
	return "", false
}
