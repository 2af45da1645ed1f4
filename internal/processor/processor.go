// =============================================================================
// PaymentMaker - Row Processor
// =============================================================================
//
// This module orchestrates the ingestion of one trip report: load the table,
// validate its structure, then turn every row into a TransportService by
// composing the field extractors. The pipeline is a synchronous single-pass
// batch transform with two failure levels:
//
//   - Fatal: the file is unreadable in any supported format, or required
//     columns are missing after fuzzy matching. The batch aborts and no
//     partial data is returned.
//   - Recoverable: a field that fails to parse is defaulted with a warning;
//     a panic while building one row drops just that row, also with a
//     warning. The batch always continues.
//
// The processor never returns an error across its boundary; every outcome
// is carried on the ProcessingResult.
//
// A DataProcessor accumulates the error and warning lists of one run and
// resets them at the start of every ProcessFile call, so an instance may be
// reused sequentially without leaking warnings between runs.
//
// =============================================================================

package processor

import (
	"fmt"
	"strings"
	"time"

	"paymentmaker/internal/loader"
	"paymentmaker/internal/models"
	"paymentmaker/internal/validation"
)

// =============================================================================
// LOGGER
// =============================================================================

// Logger is the logging interface used by the processing core.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// defaultLogger writes to stdout. Debug output is only emitted when verbose
// mode is enabled.
type defaultLogger struct {
	Verbose bool
}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[DEBUG] "+msg+"\n", args...)
	}
}

func (l *defaultLogger) Info(msg string, args ...interface{}) {
	fmt.Printf("[INFO] "+msg+"\n", args...)
}

func (l *defaultLogger) Warn(msg string, args ...interface{}) {
	fmt.Printf("[WARN] "+msg+"\n", args...)
}

func (l *defaultLogger) Error(msg string, args ...interface{}) {
	fmt.Printf("[ERROR] "+msg+"\n", args...)
}

// =============================================================================
// DATA PROCESSOR
// =============================================================================

// DataProcessor ingests trip reports. Not safe for concurrent use; create
// one instance per goroutine or call ProcessFile sequentially.
type DataProcessor struct {
	errors   []string
	warnings []string
	logger   Logger

	// now supplies the current time for date fallbacks; replaced in tests.
	now func() time.Time
}

// New creates a DataProcessor with the default stdout logger.
func New() *DataProcessor {
	return NewWithLogger(&defaultLogger{})
}

// NewWithLogger creates a DataProcessor with a custom logger.
func NewWithLogger(logger Logger) *DataProcessor {
	return &DataProcessor{
		logger: logger,
		now:    time.Now,
	}
}

// warnf records a row-level warning tagged with the 1-based row number.
func (p *DataProcessor) warnf(rowIndex int, format string, args ...interface{}) {
	p.warnings = append(p.warnings, fmt.Sprintf("Строка %d: %s", rowIndex+1, fmt.Sprintf(format, args...)))
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// ProcessFile ingests one trip report.
//
// PARAMETERS:
//   - filePath: The path to the report (XLSX workbook or tab-separated text).
//
// RETURNS:
//   - A ProcessingResult carrying the extracted services, or the fatal
//     errors when the batch aborted. Never an error: all failure is
//     communicated via the result value.
func (p *DataProcessor) ProcessFile(filePath string) models.ProcessingResult {
	// Reset per-run accumulators; a reused instance must not leak warnings
	// from a previous run.
	p.errors = nil
	p.warnings = nil

	p.logger.Info("Processing file: %s", filePath)

	// =========================================================================
	// STEP 1: LOAD
	// =========================================================================

	table, err := loader.Load(filePath)
	if err != nil {
		p.logger.Error("Load failed: %v", err)
		p.errors = append(p.errors, "Не удалось загрузить файл ни в одном из поддерживаемых форматов")
		return models.ProcessingResult{
			Success: false,
			Message: "Не удалось загрузить файл",
			Errors:  p.errors,
		}
	}

	p.logger.Debug("Loaded %d row(s) from %s", table.RowCount, filePath)

	// =========================================================================
	// STEP 2: VALIDATE STRUCTURE
	// =========================================================================

	if missing := validation.ValidateStructure(table); len(missing) > 0 {
		p.errors = append(p.errors, "Отсутствуют необходимые колонки: "+strings.Join(missing, ", "))
		return models.ProcessingResult{
			Success: false,
			Message: "Неверная структура файла",
			Errors:  p.errors,
		}
	}

	// =========================================================================
	// STEP 3: PROCESS ROWS
	// =========================================================================

	services := p.processRows(table)

	return models.ProcessingResult{
		Success:  true,
		Message:  fmt.Sprintf("Обработано %d записей", len(services)),
		Data:     services,
		Warnings: p.warnings,
	}
}

// processRows walks the table and collects one service per usable row.
func (p *DataProcessor) processRows(table *loader.Table) []models.TransportService {
	services := make([]models.TransportService, 0, len(table.Rows))

	for index, row := range table.Rows {
		service, err := p.processRow(row, index)
		if err != nil {
			p.warnings = append(p.warnings, fmt.Sprintf("Ошибка в строке %d: %v", index+1, err))
			continue
		}
		if service != nil {
			services = append(services, *service)
		}
	}

	return services
}

// processRow builds one TransportService from a row. The extractors are
// warning-tolerant and always yield a value; an unexpected panic is
// recovered here and reported as the row's error, dropping just this row.
func (p *DataProcessor) processRow(row map[string]string, index int) (service *models.TransportService, err error) {
	defer func() {
		if r := recover(); r != nil {
			service = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	date := p.parseDate(row["Дата"], index)
	if date.IsZero() {
		return nil, nil
	}

	driverName := p.extractDriverName(row["Водитель"], index)
	carNumber := p.extractCarNumber(row["Авто"], index)
	route := p.extractRoute(row["Адрес выгрузки"], index)
	amount := p.parseAmount(row["Сумма за рейсы"], index)

	s := models.NewTransportService(date, driverName, carNumber, route, amount)
	return &s, nil
}
