// =============================================================================
// PaymentMaker - Shared Models
// =============================================================================
//
// This package contains the entity layer shared across multiple modules to
// avoid import cycles. Types defined here are used by:
//   - processor
//   - docwriter
//   - cmd
//
// All monetary values are exact decimals (shopspring/decimal). Binary floats
// are only produced at the very edge, when writing cell values into XLSX.
//
// =============================================================================

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// NotSpecified is the sentinel substituted when a driver or vehicle cannot
// be extracted from a row.
const NotSpecified = "НЕ УКАЗАН"

// DefaultUnit is the unit of measure for a service line.
const DefaultUnit = "шт."

// russianMonths is the fixed genitive month-name table used for the
// "D <month> YYYY" document date rendering.
var russianMonths = [12]string{
	"января", "февраля", "марта", "апреля",
	"мая", "июня", "июля", "августа",
	"сентября", "октября", "ноября", "декабря",
}

// =============================================================================
// TRANSPORT SERVICE
// =============================================================================

// TransportService represents a single transport trip, i.e. one line item of
// the invoice and the act.
type TransportService struct {
	// Date is the trip date. Defaulted to "now" by the processor when the
	// source cell is missing or unparseable.
	Date time.Time

	// DriverName is the driver as written in the report, or NotSpecified.
	DriverName string

	// CarNumber is the extracted vehicle plate fragment, or NotSpecified.
	CarNumber string

	// Route is the ordered list of city names the trip passes through.
	// Route[0] is always the origin city.
	Route []string

	// Quantity is the number of units billed. Always 1 at ingestion time.
	Quantity int

	// Unit is the unit of measure, DefaultUnit unless edited.
	Unit string

	// Price and Amount are exact decimal monetary values. The processor
	// sets Price == Amount; they only diverge through later editing.
	Price  decimal.Decimal
	Amount decimal.Decimal

	// DescriptionOverride, when non-empty, replaces the computed
	// description. An editing UI may set it without touching the fields
	// the description was derived from; the edit wins.
	DescriptionOverride string
}

// NewTransportService builds a service line with the ingestion-time defaults
// (quantity 1, default unit).
func NewTransportService(date time.Time, driver, car string, route []string, amount decimal.Decimal) TransportService {
	return TransportService{
		Date:       date,
		DriverName: driver,
		CarNumber:  car,
		Route:      route,
		Quantity:   1,
		Unit:       DefaultUnit,
		Price:      amount,
		Amount:     amount,
	}
}

// Description returns the text that appears in the "services" column of the
// generated documents. The override, when set, is returned verbatim.
func (s TransportService) Description() string {
	if s.DescriptionOverride != "" {
		return s.DescriptionOverride
	}
	return fmt.Sprintf("Транспортные услуги %s водит. %s, а/м Газель %s, маршрут %s",
		s.Date.Format("02.01.2006"),
		s.DriverName,
		s.CarNumber,
		strings.Join(s.Route, " - "),
	)
}

// =============================================================================
// INVOICE AND ACT DATA
// =============================================================================

// InvoiceData holds everything needed to render the invoice sheet.
type InvoiceData struct {
	// Number is the document number as printed in the title.
	Number string

	// Date is the document date.
	Date time.Time

	// Customer is the customer display name. When empty, the renderer falls
	// back to the configured customer details.
	Customer string

	// CustomerDetails is an optional free-form requisites string.
	CustomerDetails string

	// Services is the ordered list of line items.
	Services []TransportService
}

// TotalAmount returns the exact sum of all line amounts.
func (d InvoiceData) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, s := range d.Services {
		total = total.Add(s.Amount)
	}
	return total
}

// ServicesCount returns the number of line items.
func (d InvoiceData) ServicesCount() int {
	return len(d.Services)
}

// DateStr renders the document date as "D <month-name> YYYY" in Russian.
func (d InvoiceData) DateStr() string {
	return fmt.Sprintf("%d %s %d", d.Date.Day(), russianMonths[d.Date.Month()-1], d.Date.Year())
}

// ActData holds everything needed to render the act sheet. It is structurally
// identical to InvoiceData but kept as a distinct type: the two documents have
// separate identities even when built from the same data.
type ActData struct {
	Number          string
	Date            time.Time
	Customer        string
	CustomerDetails string
	Services        []TransportService
}

// ActFromInvoice derives the act for an invoice. The act always mirrors the
// invoice's number, date and line items.
func ActFromInvoice(inv InvoiceData) ActData {
	return ActData{
		Number:          inv.Number,
		Date:            inv.Date,
		Customer:        inv.Customer,
		CustomerDetails: inv.CustomerDetails,
		Services:        inv.Services,
	}
}

// TotalAmount returns the exact sum of all line amounts.
func (d ActData) TotalAmount() decimal.Decimal {
	return InvoiceData{Services: d.Services}.TotalAmount()
}

// ServicesCount returns the number of line items.
func (d ActData) ServicesCount() int {
	return len(d.Services)
}

// DateStr renders the document date as "D <month-name> YYYY" in Russian.
func (d ActData) DateStr() string {
	return InvoiceData{Date: d.Date}.DateStr()
}

// =============================================================================
// COMPANY DETAILS
// =============================================================================

// CompanyDetails holds the static registration and bank facts for one
// organization (the contractor or the customer).
type CompanyDetails struct {
	Name           string `yaml:"name"`
	INN            string `yaml:"inn"`
	Address        string `yaml:"address"`
	Phone          string `yaml:"phone"`
	BankName       string `yaml:"bank_name"`
	BankBIK        string `yaml:"bank_bik"`
	BankAccount    string `yaml:"bank_account"`
	CompanyAccount string `yaml:"company_account"`
}

// FullDetails returns the one-line requisites string used in the documents.
func (c CompanyDetails) FullDetails() string {
	return fmt.Sprintf("%s, ИНН %s, %s %s", c.Name, c.INN, c.Address, c.Phone)
}

// BankDetails returns the one-line bank requisites string.
func (c CompanyDetails) BankDetails() string {
	return fmt.Sprintf("р/с %s, в банке %s, БИК %s, к/с %s",
		c.CompanyAccount, c.BankName, c.BankBIK, c.BankAccount)
}

// =============================================================================
// PROCESSING RESULT
// =============================================================================

// ProcessingResult is the outcome of one file ingestion. The processor never
// returns errors across its boundary; everything is carried here.
type ProcessingResult struct {
	// Success is false when a fatal error aborted the batch.
	Success bool

	// Message is a short human-readable summary.
	Message string

	// Data contains the extracted service lines. Nil when Success is false.
	Data []TransportService

	// Errors contains fatal error strings (file unreadable, columns missing).
	Errors []string

	// Warnings contains non-fatal per-row notes, tagged with the 1-based
	// row number ("Строка N: ...").
	Warnings []string
}
