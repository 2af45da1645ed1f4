// =============================================================================
// PaymentMaker - Table Loader Module
// =============================================================================
//
// This module is the only I/O dependency of the processing core. It reads a
// trip report into a uniform table of header -> value rows, trying multiple
// tabular formats in a fixed order:
//
//   1. XLSX workbook (excelize), first sheet
//   2. Tab-separated text, trying the encodings UTF-8, CP1251, Latin-1 and
//      ISO-8859-1 in order, stopping at the first one that parses
//
// The first successful attempt wins; failures fall through silently to the
// next attempt. When nothing works the loader returns an error and the batch
// is aborted by the caller with no partial data.
//
// =============================================================================

package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// =============================================================================
// TABLE STRUCTURE
// =============================================================================

// Table represents the loaded report, independent of the source format.
type Table struct {
	// Headers contains the column headers in source order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	// Using maps allows for easy field access by name.
	Rows []map[string]string

	// SourceFile is the path to the source file.
	SourceFile string

	// RowCount is the total number of data rows (excluding headers).
	RowCount int

	// ColumnCount is the number of columns.
	ColumnCount int
}

// HasColumn reports whether a header with the exact label exists.
func (t *Table) HasColumn(label string) bool {
	for _, h := range t.Headers {
		if h == label {
			return true
		}
	}
	return false
}

// RenameColumn renames a header and re-keys every row accordingly. Used by
// the structural validator when a required column is found under a fuzzy
// label.
func (t *Table) RenameColumn(from, to string) {
	for i, h := range t.Headers {
		if h == from {
			t.Headers[i] = to
		}
	}
	for _, row := range t.Rows {
		if v, ok := row[from]; ok {
			delete(row, from)
			row[to] = v
		}
	}
}

// =============================================================================
// LOADER FUNCTIONS
// =============================================================================

// tsvEncodings is the ordered list of encodings tried for the tab-separated
// fallback. UTF-8 goes through a validity check first, so that CP1251
// reports do not slip through mangled.
var tsvEncodings = []string{"UTF-8", "CP1251", "Latin-1", "ISO-8859-1"}

// Load reads a trip report from disk.
//
// PARAMETERS:
//   - filePath: The path to the report (XLSX workbook or tab-separated text).
//
// RETURNS:
//   - A pointer to the Table containing the parsed data.
//   - An error when the file cannot be read in any supported format.
func Load(filePath string) (*Table, error) {
	table, xlsxErr := loadXLSX(filePath)
	if xlsxErr == nil {
		return table, nil
	}

	table, tsvErr := loadTSV(filePath)
	if tsvErr == nil {
		return table, nil
	}

	return nil, fmt.Errorf("file is not readable in any supported format (xlsx: %v; tsv: %v)", xlsxErr, tsvErr)
}

// loadXLSX reads the first sheet of an XLSX workbook.
func loadXLSX(filePath string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return buildTable(rows, filePath)
}

// loadTSV reads a tab-separated text file, trying each supported encoding in
// order and stopping at the first one that parses without error.
func loadTSV(filePath string) (*Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var lastErr error
	for _, enc := range tsvEncodings {
		decoded, err := decodeBytes(data, enc)
		if err != nil {
			lastErr = err
			continue
		}

		rows, err := parseTSV(decoded)
		if err != nil {
			lastErr = err
			continue
		}

		return buildTable(rows, filePath)
	}

	return nil, fmt.Errorf("no supported encoding parsed the file: %w", lastErr)
}

// decodeBytes converts raw file bytes into UTF-8 text for one encoding
// attempt.
func decodeBytes(data []byte, encodingName string) ([]byte, error) {
	switch encodingName {
	case "UTF-8":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("file is not valid UTF-8")
		}
		return data, nil
	case "CP1251":
		return transformBytes(data, charmap.Windows1251.NewDecoder())
	case "Latin-1", "ISO-8859-1":
		return transformBytes(data, charmap.ISO8859_1.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encodingName)
	}
}

func transformBytes(data []byte, decoder *encoding.Decoder) ([]byte, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
	if err != nil {
		return nil, fmt.Errorf("decoding failed: %w", err)
	}
	return out, nil
}

// parseTSV parses decoded text as tab-separated values.
func parseTSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = '\t'

	// Allow variable field counts and relaxed quoting; trip reports are
	// hand-maintained and rarely follow strict CSV rules.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// =============================================================================
// TABLE ASSEMBLY
// =============================================================================

// buildTable converts raw rows into a Table, taking the first row as headers
// and skipping empty data rows.
func buildTable(allRows [][]string, sourceFile string) (*Table, error) {
	if len(allRows) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	headers := cleanHeaders(allRows[0])

	dataRows := make([]map[string]string, 0, len(allRows)-1)
	for _, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = strings.TrimSpace(row[i])
			} else {
				rowMap[header] = ""
			}
		}
		dataRows = append(dataRows, rowMap)
	}

	return &Table{
		Headers:     headers,
		Rows:        dataRows,
		SourceFile:  sourceFile,
		RowCount:    len(dataRows),
		ColumnCount: len(headers),
	}, nil
}

// cleanHeaders trims header values and substitutes a placeholder for empty
// ones so that every column stays addressable.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}
	return cleaned
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
