// =============================================================================
// PaymentMaker - Field Extractors
// =============================================================================
//
// Heuristic extraction of the individual service fields out of loosely
// structured report cells. Every extractor is warning-tolerant: a value that
// cannot be parsed is replaced with an explicit default or sentinel and a
// warning tagged with the 1-based row number is recorded. Extractors never
// fail a row on their own.
//
// =============================================================================

package processor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"paymentmaker/internal/models"
)

// dateFormats is the ordered list of accepted date layouts. The first one
// that parses wins.
var dateFormats = []string{
	"02.01.2006",
	"2006-01-02",
	"02/01/2006",
}

// carNumberPattern matches the operator's van ("Газель А123ВС"). The brand
// literal is fixed on purpose: the operator runs a single vehicle type, and
// anything written differently is treated as not specified.
var carNumberPattern = regexp.MustCompile(`Газель\s+([А-Я0-9]+)`)

// amountCleaner normalizes a numeric cell: comma decimal separators become
// periods, regular and non-breaking spaces (thousands separators) are
// stripped.
var amountCleaner = strings.NewReplacer(",", ".", " ", "", "\u00a0", "")

// =============================================================================
// DATE
// =============================================================================

// parseDate normalizes a date cell. Missing or unparseable dates fall back
// to the current date with a warning; a bad date never rejects the row.
func (p *DataProcessor) parseDate(raw string, rowIndex int) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.warnf(rowIndex, "пустая дата")
		return p.now()
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t
		}
	}

	// Workbook cells may surface a date as its raw Excel serial number when
	// the cell carries no date style. Treat a plausible serial as a
	// structured date and pass it through.
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t
		}
	}

	p.warnf(rowIndex, "не удалось распознать дату '%s'", raw)
	return p.now()
}

// =============================================================================
// AMOUNT
// =============================================================================

// parseAmount normalizes a free-form numeric cell into an exact decimal.
// Blank or unparseable cells yield 0.00 with a warning; this extractor never
// raises past its boundary.
func (p *DataProcessor) parseAmount(raw string, rowIndex int) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.warnf(rowIndex, "сумма не указана")
		return decimal.Zero
	}

	amount, err := decimal.NewFromString(amountCleaner.Replace(raw))
	if err != nil {
		p.warnf(rowIndex, "не удалось преобразовать сумму: %v", err)
		return decimal.Zero
	}

	return amount
}

// =============================================================================
// DRIVER
// =============================================================================

// extractDriverName pulls the driver name out of a "Фамилия И.О., Газель ..."
// style cell: the text before the first comma. A cell without a comma is
// used whole, with a warning that the heuristic degraded.
func (p *DataProcessor) extractDriverName(raw string, rowIndex int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.warnf(rowIndex, "водитель не указан")
		return models.NotSpecified
	}

	if name, _, ok := strings.Cut(raw, ","); ok {
		return strings.TrimSpace(name)
	}

	p.warnf(rowIndex, "не удалось извлечь имя водителя")
	return raw
}

// =============================================================================
// VEHICLE
// =============================================================================

// extractCarNumber pulls the plate fragment following the brand word.
func (p *DataProcessor) extractCarNumber(raw string, rowIndex int) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		p.warnf(rowIndex, "автомобиль не указан")
		return models.NotSpecified
	}

	if m := carNumberPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}

	p.warnf(rowIndex, "не удалось извлечь номер автомобиля")
	return models.NotSpecified
}

// =============================================================================
// ROUTE
// =============================================================================

// extractRoute resolves the unload-address cell into a route that always
// starts with the origin city and carries up to three destinations. An
// address that resolves to nothing yields the unknown-point fallback with a
// warning.
func (p *DataProcessor) extractRoute(raw string, rowIndex int) []string {
	if strings.TrimSpace(raw) == "" {
		p.warnf(rowIndex, "адрес не указан")
		return []string{OriginCity, UnknownPoint}
	}

	destinations := ResolveDestinations(raw)
	if len(destinations) == 0 {
		p.warnf(rowIndex, "не удалось извлечь маршрут")
		return []string{OriginCity, UnknownPoint}
	}

	if len(destinations) > maxDestinations {
		destinations = destinations[:maxDestinations]
	}

	return append([]string{OriginCity}, destinations...)
}
