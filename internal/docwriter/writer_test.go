package docwriter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"paymentmaker/internal/models"
	"paymentmaker/internal/ruwords"
)

var (
	testCompany = models.CompanyDetails{
		Name:           "ИП Иванов",
		INN:            "123456789012",
		Address:        "г. Дмитров, ул. Советская, д. 1",
		Phone:          "т: 8-900-123-45-67",
		BankName:       "ПАО БАНК",
		BankBIK:        "044525225",
		BankAccount:    "30101810400000000225",
		CompanyAccount: "40802810900000012345",
	}

	testCustomer = models.CompanyDetails{
		Name:           "ООО \"Ромашка\"",
		INN:            "1234567890",
		Address:        "г. Москва, ул. Цветочная, д. 7",
		BankName:       "АО КЛИЕНТ БАНК",
		BankBIK:        "044525000",
		BankAccount:    "30101810400000000000",
		CompanyAccount: "40702810900000054321",
	}
)

func testInvoice() models.InvoiceData {
	service := models.NewTransportService(
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"Иванов И.И.",
		"А123ВС",
		[]string{"Дмитров", "Волоколамск"},
		decimal.RequireFromString("1500.00"),
	)
	other := service
	other.Amount = decimal.RequireFromString("250.50")
	other.Price = other.Amount

	return models.InvoiceData{
		Number:   "12",
		Date:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Services: []models.TransportService{service, other},
	}
}

func TestGenerate(t *testing.T) {
	inv := testInvoice()
	outPath := filepath.Join(t.TempDir(), "docs", "invoice_12.xlsx")

	w := NewWriter(testCompany, testCustomer)
	require.NoError(t, w.Generate(inv, outPath))

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{InvoiceSheet, ActSheet}, f.GetSheetList())

	// Invoice sheet.
	title, err := f.GetCellValue(InvoiceSheet, "A10")
	require.NoError(t, err)
	assert.Equal(t, "Счет на оплату № 12 от 15 марта 2024", title)

	supplier, err := f.GetCellValue(InvoiceSheet, "C12")
	require.NoError(t, err)
	assert.Equal(t, testCompany.FullDetails(), supplier)

	// No customer named on the invoice: the configured default appears.
	customer, err := f.GetCellValue(InvoiceSheet, "C14")
	require.NoError(t, err)
	assert.Equal(t, testCustomer.FullDetails(), customer)

	desc, err := f.GetCellValue(InvoiceSheet, "B17")
	require.NoError(t, err)
	assert.Contains(t, desc, "Транспортные услуги 15.03.2024")

	// Totals block: two services, so it starts at row 19.
	words, err := f.GetCellValue(InvoiceSheet, "A22")
	require.NoError(t, err)
	assert.Equal(t, ruwords.AmountInWords(inv.TotalAmount()), words)

	summary, err := f.GetCellValue(InvoiceSheet, "A21")
	require.NoError(t, err)
	assert.Equal(t, "Всего наименований 2, на сумму 1,750.50 руб.", summary)

	// Act sheet.
	actTitle, err := f.GetCellValue(ActSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Акт № 12 от 15 марта 2024", actTitle)

	basis, err := f.GetCellValue(ActSheet, "C8")
	require.NoError(t, err)
	assert.Equal(t, "По счету № 12 от 15 марта 2024", basis)

	executorBank, err := f.GetCellValue(ActSheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, testCompany.BankDetails(), executorBank)
}

func TestGenerateUsesNamedCustomer(t *testing.T) {
	inv := testInvoice()
	inv.Customer = "ООО \"Пион\""
	outPath := filepath.Join(t.TempDir(), "invoice.xlsx")

	w := NewWriter(testCompany, testCustomer)
	require.NoError(t, w.Generate(inv, outPath))

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	customer, err := f.GetCellValue(InvoiceSheet, "C14")
	require.NoError(t, err)
	assert.Equal(t, "ООО \"Пион\"", customer)

	actCustomer, err := f.GetCellValue(ActSheet, "C6")
	require.NoError(t, err)
	assert.Equal(t, "ООО \"Пион\"", actCustomer)
}

func TestFillTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "template.xlsx")
	outPath := filepath.Join(dir, "filled.xlsx")

	w := NewWriter(testCompany, testCustomer)
	require.NoError(t, w.Generate(testInvoice(), templatePath))

	updated := testInvoice()
	updated.Number = "13"
	updated.Date = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, w.FillTemplate(templatePath, updated, outPath))

	f, err := excelize.OpenFile(outPath)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(InvoiceSheet, "A10")
	require.NoError(t, err)
	assert.Equal(t, "Счет на оплату № 13 от 1 апреля 2024", title)

	basis, err := f.GetCellValue(ActSheet, "C8")
	require.NoError(t, err)
	assert.Equal(t, "По счету № 13 от 1 апреля 2024", basis)
}

func TestFillTemplateRejectsForeignWorkbook(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "plain.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SaveAs(templatePath))
	require.NoError(t, f.Close())

	w := NewWriter(testCompany, testCustomer)
	err := w.FillTemplate(templatePath, testInvoice(), filepath.Join(dir, "out.xlsx"))
	assert.Error(t, err)
}
