// =============================================================================
// PaymentMaker - Document Writer
// =============================================================================
//
// This module renders the invoice ("Счет") and the completed-work act ("Акт")
// into one XLSX workbook, always as a pair on two sheets. The act is derived
// from the invoice data and mirrors its number, date and line items.
//
// Two entry points:
//
//   - Generate builds both sheets from scratch on a new workbook.
//   - FillTemplate opens an existing workbook that already carries the two
//     sheets (typically a previous output used as a letterhead) and rewrites
//     the data regions in place.
//
// Monetary values stay exact decimals everywhere upstream; the conversion to
// binary float happens only here, when a value is written into a cell, with
// the "#,##0.00" number format controlling the rendering.
//
// =============================================================================

package docwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"paymentmaker/internal/models"
	"paymentmaker/internal/ruwords"
)

// Sheet names of the generated workbook. FillTemplate requires both to be
// present in the template.
const (
	InvoiceSheet = "Счет"
	ActSheet     = "Акт"
)

// invoiceWarning is the standard payment disclaimer printed across the top of
// the invoice.
const invoiceWarning = "Внимание! Оплата данного счета означает согласие с условиями поставки товара. " +
	"Уведомление об оплате обязательно, в противном случае не гарантируется наличие " +
	"товара на складе. Товар отпускается по факту прихода денег на р/с Поставщика, " +
	"самовывозом, при наличии доверенности и паспорта."

// actConclusion is the closing paragraph of the act.
const actConclusion = "Вышеперечисленные услуги выполнены полностью и в срок. " +
	"Заказчик претензий по объему, качеству и срокам оказания услуг не имеет."

const signatureLine = "_______________"

// Table geometry. The invoice carries the bank requisites block above its
// table, so its rows start lower than the act's.
const (
	invoiceTableHeaderRow = 16
	invoiceFirstDataRow   = 17
	actTableHeaderRow     = 10
	actFirstDataRow       = 11
)

// =============================================================================
// WRITER
// =============================================================================

// Writer renders invoice/act workbooks for one contractor and one default
// customer. Safe for concurrent use; all state lives in the workbook being
// written.
type Writer struct {
	company  models.CompanyDetails
	customer models.CompanyDetails
}

// NewWriter creates a Writer.
//
// PARAMETERS:
//   - company: The contractor whose requisites head every document.
//   - customer: The default customer, used when the invoice data does not
//     name one.
func NewWriter(company, customer models.CompanyDetails) *Writer {
	return &Writer{company: company, customer: customer}
}

// Generate renders the invoice and the derived act into a new workbook at
// outputPath. Parent directories are created as needed.
func (w *Writer) Generate(inv models.InvoiceData, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InvoiceSheet); err != nil {
		return fmt.Errorf("failed to prepare invoice sheet: %w", err)
	}
	if _, err := f.NewSheet(ActSheet); err != nil {
		return fmt.Errorf("failed to create act sheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("failed to compile styles: %w", err)
	}

	if err := w.writeInvoice(f, styles, inv); err != nil {
		return fmt.Errorf("failed to write invoice sheet: %w", err)
	}
	if err := w.writeAct(f, styles, models.ActFromInvoice(inv)); err != nil {
		return fmt.Errorf("failed to write act sheet: %w", err)
	}

	return saveWorkbook(f, outputPath)
}

// FillTemplate opens an existing workbook and rewrites the data regions of
// its invoice and act sheets with the given data, preserving everything else
// (letterhead cells, logos, manual tweaks). The template must contain both
// sheets.
func (w *Writer) FillTemplate(templatePath string, inv models.InvoiceData, outputPath string) error {
	f, err := excelize.OpenFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(InvoiceSheet); idx < 0 {
		return fmt.Errorf("template has no %q sheet", InvoiceSheet)
	}
	if idx, _ := f.GetSheetIndex(ActSheet); idx < 0 {
		return fmt.Errorf("template has no %q sheet", ActSheet)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return fmt.Errorf("failed to compile styles: %w", err)
	}

	act := models.ActFromInvoice(inv)

	s := &sheetWriter{file: f, sheet: InvoiceSheet}
	s.set("A10", fmt.Sprintf("Счет на оплату № %s от %s", inv.Number, inv.DateStr()), styles.thickBottom)
	if inv.Customer != "" {
		s.set("C14", inv.Customer, styles.smallWrap)
	}
	writeServicesTable(s, styles, inv.Services, invoiceFirstDataRow)
	writeInvoiceTotals(s, styles, inv, invoiceFirstDataRow+len(inv.Services))
	if s.err != nil {
		return fmt.Errorf("failed to fill invoice sheet: %w", s.err)
	}

	s = &sheetWriter{file: f, sheet: ActSheet}
	s.set("A1", fmt.Sprintf("Акт № %s от %s", act.Number, act.DateStr()), styles.thickBottom)
	if act.Customer != "" {
		s.set("C6", act.Customer, styles.smallWrap)
	}
	s.set("C8", fmt.Sprintf("По счету № %s от %s", act.Number, act.DateStr()), styles.normal)
	writeServicesTable(s, styles, act.Services, actFirstDataRow)
	writeActTotals(s, styles, act, actFirstDataRow+len(act.Services))
	if s.err != nil {
		return fmt.Errorf("failed to fill act sheet: %w", s.err)
	}

	return saveWorkbook(f, outputPath)
}

// =============================================================================
// INVOICE SHEET
// =============================================================================

func (w *Writer) writeInvoice(f *excelize.File, styles *styleSet, inv models.InvoiceData) error {
	s := &sheetWriter{file: f, sheet: InvoiceSheet}

	setupPage(s)

	// Payment disclaimer across the top.
	s.merge("A1", "F2")
	s.set("A1", invoiceWarning, styles.smallWrap)
	s.rowHeight(1, 20)
	s.rowHeight(2, 20)

	// Bank requisites grid, rows 3 to 8.
	s.merge("A3", "D4")
	s.set("A3", w.company.BankName, styles.normal)
	s.set("E3", "БИК", styles.normal)
	s.set("F3", w.company.BankBIK, styles.normal)
	s.merge("E4", "E5")
	s.set("E4", "Сч. №", styles.normal)
	s.merge("F4", "F5")
	s.set("F4", w.company.BankAccount, styles.small)
	s.merge("A5", "D5")
	s.set("A5", "Банк получателя", styles.normal)
	s.set("A6", fmt.Sprintf("ИНН %s", w.company.INN), styles.normal)
	s.merge("C6", "D6")
	s.set("C6", "КПП", styles.normal)
	s.merge("E6", "E8")
	s.set("E6", "Сч. №", styles.normal)
	s.merge("F6", "F8")
	s.set("F6", w.company.CompanyAccount, styles.small)
	s.merge("A7", "D7")
	s.set("A7", w.company.Name, styles.normal)
	s.merge("A8", "D8")
	s.set("A8", "Получатель", styles.normal)
	s.styleRange("A3", "F8", styles.thinBordered)

	// Title with a thick separator underneath.
	s.merge("A10", "F10")
	s.set("A10", fmt.Sprintf("Счет на оплату № %s от %s", inv.Number, inv.DateStr()), styles.thickBottom)
	s.styleRange("A10", "F10", styles.thickBottom)

	// Parties.
	s.merge("A12", "B12")
	s.set("A12", "Поставщик:", styles.normal)
	s.merge("C12", "F12")
	s.set("C12", w.company.FullDetails(), styles.smallWrap)
	s.rowHeight(12, 25)

	customer := inv.Customer
	if customer == "" {
		customer = w.customer.FullDetails()
	}
	s.merge("A14", "B14")
	s.set("A14", "Покупатель:", styles.normal)
	s.merge("C14", "F14")
	s.set("C14", customer, styles.smallWrap)
	s.rowHeight(14, 30)

	writeTableHeader(s, styles, invoiceTableHeaderRow, "Товары (работы, услуги)")
	writeServicesTable(s, styles, inv.Services, invoiceFirstDataRow)

	totalsRow := invoiceFirstDataRow + len(inv.Services)
	writeInvoiceTotals(s, styles, inv, totalsRow)

	// Signatures.
	sigRow := totalsRow + 8
	s.set(cell("A", sigRow), "Руководитель", styles.bold)
	s.merge(cell("C", sigRow), cell("D", sigRow))
	s.set(cell("C", sigRow), signatureLine, styles.bold)
	s.set(cell("E", sigRow), "Бухгалтер", styles.bold)
	s.set(cell("F", sigRow), signatureLine, styles.bold)

	s.printArea(invoiceFirstDataRow + len(inv.Services) + 10)

	return s.err
}

// writeInvoiceTotals renders the invoice totals block starting at row.
func writeInvoiceTotals(s *sheetWriter, styles *styleSet, inv models.InvoiceData, row int) {
	total := inv.TotalAmount()

	s.merge(cell("A", row), cell("E", row))
	s.set(cell("A", row), "Итого:", styles.boldRight)
	s.set(cell("F", row), total.InexactFloat64(), styles.boldMoney)

	s.merge(cell("A", row+1), cell("E", row+1))
	s.set(cell("A", row+1), "Без налога (НДС)", styles.boldRight)
	s.set(cell("F", row+1), "-", styles.boldBordered)

	s.merge(cell("A", row+2), cell("F", row+2))
	s.set(cell("A", row+2),
		fmt.Sprintf("Всего наименований %d, на сумму %s руб.", inv.ServicesCount(), ruwords.FormatMoney(total)),
		styles.bold)

	s.merge(cell("A", row+3), cell("F", row+3))
	s.set(cell("A", row+3), ruwords.AmountInWords(total), styles.bold)
}

// =============================================================================
// ACT SHEET
// =============================================================================

func (w *Writer) writeAct(f *excelize.File, styles *styleSet, act models.ActData) error {
	s := &sheetWriter{file: f, sheet: ActSheet}

	setupPage(s)

	// Title with a thick separator underneath.
	s.merge("A1", "F1")
	s.set("A1", fmt.Sprintf("Акт № %s от %s", act.Number, act.DateStr()), styles.thickBottom)
	s.styleRange("A1", "F1", styles.thickBottom)

	// Executor.
	s.merge("A3", "B3")
	s.set("A3", "Исполнитель:", styles.normal)
	s.merge("C3", "F3")
	s.set("C3", w.company.FullDetails(), styles.smallWrap)
	s.rowHeight(3, 35)
	s.merge("C4", "F4")
	s.set("C4", w.company.BankDetails(), styles.smallWrap)
	s.rowHeight(4, 35)

	// Customer.
	customer := act.Customer
	if customer == "" {
		customer = w.customer.FullDetails()
	}
	customerDetails := act.CustomerDetails
	if customerDetails == "" {
		customerDetails = w.customer.BankDetails()
	}
	s.merge("A6", "B6")
	s.set("A6", "Заказчик:", styles.normal)
	s.merge("C6", "F6")
	s.set("C6", customer, styles.smallWrap)
	s.rowHeight(6, 35)
	s.merge("C7", "F7")
	s.set("C7", customerDetails, styles.smallWrap)
	s.rowHeight(7, 25)

	// Basis.
	s.merge("A8", "B8")
	s.set("A8", "Основание:", styles.normal)
	s.merge("C8", "F8")
	s.set("C8", fmt.Sprintf("По счету № %s от %s", act.Number, act.DateStr()), styles.normal)

	writeTableHeader(s, styles, actTableHeaderRow, "Наименование работ, услуг")
	writeServicesTable(s, styles, act.Services, actFirstDataRow)

	totalsRow := actFirstDataRow + len(act.Services)
	writeActTotals(s, styles, act, totalsRow)

	// Conclusion paragraph.
	conclusionRow := totalsRow + 10
	s.merge(cell("A", conclusionRow), cell("F", conclusionRow))
	s.set(cell("A", conclusionRow), actConclusion, styles.wrap)
	s.rowHeight(conclusionRow, 28)

	// Signatures.
	sigRow := conclusionRow + 2
	s.set(cell("A", sigRow), "ИСПОЛНИТЕЛЬ", styles.bold)
	s.set(cell("E", sigRow), "ЗАКАЗЧИК", styles.bold)
	s.set(cell("A", sigRow+1), w.company.Name, styles.bold)
	s.set(cell("E", sigRow+1), w.customer.Name, styles.bold)
	s.set(cell("A", sigRow+3), "Руководитель", styles.bold)
	s.merge(cell("C", sigRow+3), cell("D", sigRow+3))
	s.set(cell("C", sigRow+3), signatureLine, styles.bold)

	s.printArea(actFirstDataRow + len(act.Services) + 15)

	return s.err
}

// writeActTotals renders the act totals block starting at row. Unlike the
// invoice block it leaves an empty row before the summary lines.
func writeActTotals(s *sheetWriter, styles *styleSet, act models.ActData, row int) {
	total := act.TotalAmount()

	s.merge(cell("A", row), cell("E", row))
	s.set(cell("A", row), "Итого:", styles.boldRight)
	s.set(cell("F", row), total.InexactFloat64(), styles.boldMoney)

	s.merge(cell("A", row+1), cell("E", row+1))
	s.set(cell("A", row+1), "Без налога (НДС)", styles.boldRight)
	s.set(cell("F", row+1), "-", styles.boldBordered)

	s.merge(cell("A", row+3), cell("F", row+3))
	s.set(cell("A", row+3),
		fmt.Sprintf("Всего оказано услуг %d, на сумму %s руб.", act.ServicesCount(), ruwords.FormatMoney(total)),
		styles.bold)

	s.merge(cell("A", row+4), cell("F", row+4))
	s.set(cell("A", row+4), ruwords.AmountInWords(total), styles.bold)
}

// =============================================================================
// SHARED SECTIONS
// =============================================================================

// writeTableHeader renders the six-column table header at the given row.
// Only the description column title differs between the two documents.
func writeTableHeader(s *sheetWriter, styles *styleSet, row int, descriptionTitle string) {
	headers := []string{"№", descriptionTitle, "Кол-во", "Ед.", "Цена", "Сумма"}
	columns := []string{"A", "B", "C", "D", "E", "F"}

	for i, header := range headers {
		s.set(cell(columns[i], row), header, styles.header)
	}
}

// writeServicesTable renders one row per service line starting at startRow.
func writeServicesTable(s *sheetWriter, styles *styleSet, services []models.TransportService, startRow int) {
	for i, service := range services {
		row := startRow + i

		s.set(cell("A", row), i+1, styles.normalCentered)
		s.set(cell("B", row), service.Description(), styles.smallWrapBordered)
		s.rowHeight(row, 30)
		s.set(cell("C", row), service.Quantity, styles.normalCentered)
		s.set(cell("D", row), service.Unit, styles.normalCentered)
		s.set(cell("E", row), service.Price.InexactFloat64(), styles.money)
		s.set(cell("F", row), service.Amount.InexactFloat64(), styles.money)
	}
}

// setupPage applies the shared page geometry: narrow index column, wide
// description column, A4 portrait scaled to one page.
func setupPage(s *sheetWriter) {
	s.colWidth("A", 3)
	s.colWidth("B", 55)
	s.colWidth("C", 8)
	s.colWidth("D", 6)
	s.colWidth("E", 15)
	s.colWidth("F", 20)

	if s.err != nil {
		return
	}

	portrait := "portrait"
	a4 := 9
	one := 1
	fit := true

	if err := s.file.SetPageLayout(s.sheet, &excelize.PageLayoutOptions{
		Orientation: &portrait,
		Size:        &a4,
		FitToWidth:  &one,
		FitToHeight: &one,
	}); err != nil {
		s.err = err
		return
	}

	if err := s.file.SetSheetProps(s.sheet, &excelize.SheetPropsOptions{
		FitToPage: &fit,
	}); err != nil {
		s.err = err
		return
	}

	left, right := 0.2, 0.2
	top, bottom := 0.3, 0.3
	header, footer := 0.2, 0.2

	if err := s.file.SetPageMargins(s.sheet, &excelize.PageLayoutMarginsOptions{
		Left:   &left,
		Right:  &right,
		Top:    &top,
		Bottom: &bottom,
		Header: &header,
		Footer: &footer,
	}); err != nil {
		s.err = err
	}
}

// =============================================================================
// LOW-LEVEL HELPERS
// =============================================================================

// sheetWriter wraps the verbose excelize cell API for one sheet and remembers
// the first error, so the layout code above stays linear.
type sheetWriter struct {
	file  *excelize.File
	sheet string
	err   error
}

func (s *sheetWriter) set(ref string, value interface{}, styleID int) {
	if s.err != nil {
		return
	}
	if err := s.file.SetCellValue(s.sheet, ref, value); err != nil {
		s.err = err
		return
	}
	s.err = s.file.SetCellStyle(s.sheet, ref, ref, styleID)
}

func (s *sheetWriter) merge(from, to string) {
	if s.err != nil {
		return
	}
	s.err = s.file.MergeCell(s.sheet, from, to)
}

// styleRange applies one style to every cell of a rectangular range.
func (s *sheetWriter) styleRange(from, to string, styleID int) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetCellStyle(s.sheet, from, to, styleID)
}

func (s *sheetWriter) rowHeight(row int, height float64) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetRowHeight(s.sheet, row, height)
}

func (s *sheetWriter) colWidth(col string, width float64) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetColWidth(s.sheet, col, col, width)
}

// printArea restricts printing to columns A..F down to lastRow.
func (s *sheetWriter) printArea(lastRow int) {
	if s.err != nil {
		return
	}
	s.err = s.file.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: fmt.Sprintf("'%s'!$A$1:$F$%d", s.sheet, lastRow),
		Scope:    s.sheet,
	})
}

// cell builds an A1-style reference from a column letter and a row number.
func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// saveWorkbook writes the workbook, creating parent directories as needed.
func saveWorkbook(f *excelize.File, outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
