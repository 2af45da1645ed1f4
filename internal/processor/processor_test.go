package processor

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeReportFixture builds a small trip report workbook in dir and returns
// its path.
func writeReportFixture(t *testing.T, dir string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(dir, "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

var reportHeaders = []interface{}{"Дата", "Водитель", "Авто", "Адрес выгрузки", "Сумма за рейсы"}

func TestProcessFile(t *testing.T) {
	path := writeReportFixture(t, t.TempDir(), [][]interface{}{
		reportHeaders,
		{"15.03.2024", "Иванов И.И., Газель А123ВС", "Газель А123ВС", "го Волоколамск", "1500"},
		{"16.03.2024", "Петров П.П., Газель В456ЕК", "Газель В456ЕК", "серг посад", "2 300,50"},
	})

	p := newTestProcessor()
	result := p.ProcessFile(path)

	require.True(t, result.Success)
	assert.Equal(t, "Обработано 2 записей", result.Message)
	require.Len(t, result.Data, 2)
	assert.Empty(t, result.Warnings)

	first := result.Data[0]
	assert.Equal(t, "Иванов И.И.", first.DriverName)
	assert.Equal(t, "А123ВС", first.CarNumber)
	assert.Equal(t, []string{OriginCity, "Волоколамск"}, first.Route)
	assert.Equal(t, 1, first.Quantity)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("1500")))
	assert.True(t, first.Price.Equal(first.Amount))

	second := result.Data[1]
	assert.Equal(t, []string{OriginCity, "Сергиев Посад"}, second.Route)
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("2300.50")))
}

func TestProcessFileKeepsRowsWithBadCells(t *testing.T) {
	path := writeReportFixture(t, t.TempDir(), [][]interface{}{
		reportHeaders,
		{"15.03.2024", "Иванов И.И., Газель А123ВС", "Газель А123ВС", "го Волоколамск", "1500"},
		{"16.03.2024", "Петров П.П., Газель В456ЕК", "Газель В456ЕК", "серг посад", ""},
	})

	p := newTestProcessor()
	result := p.ProcessFile(path)

	// A missing amount degrades to 0.00 with a warning; the row stays.
	require.True(t, result.Success)
	require.Len(t, result.Data, 2)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "Строка 2: сумма не указана", result.Warnings[0])
	assert.True(t, result.Data[1].Amount.IsZero())
}

func TestProcessFileRejectsMissingColumns(t *testing.T) {
	path := writeReportFixture(t, t.TempDir(), [][]interface{}{
		{"Дата", "Водитель", "Авто", "Адрес выгрузки"},
		{"15.03.2024", "Иванов И.И., Газель А123ВС", "Газель А123ВС", "го Волоколамск"},
	})

	p := newTestProcessor()
	result := p.ProcessFile(path)

	require.False(t, result.Success)
	assert.Equal(t, "Неверная структура файла", result.Message)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Отсутствуют необходимые колонки: Сумма за рейсы", result.Errors[0])
	assert.Nil(t, result.Data)
}

func TestProcessFileRejectsUnreadableFile(t *testing.T) {
	p := newTestProcessor()
	result := p.ProcessFile(filepath.Join(t.TempDir(), "missing.xlsx"))

	require.False(t, result.Success)
	assert.Equal(t, "Не удалось загрузить файл", result.Message)
	require.NotEmpty(t, result.Errors)
}

func TestProcessFileFuzzyColumnLabels(t *testing.T) {
	path := writeReportFixture(t, t.TempDir(), [][]interface{}{
		{"Дата рейса", "Водитель", "Авто", "Адрес выгрузки (пункты)", "Сумма за рейсы, руб."},
		{"15.03.2024", "Иванов И.И., Газель А123ВС", "Газель А123ВС", "го Волоколамск", "1500"},
	})

	p := newTestProcessor()
	result := p.ProcessFile(path)

	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.True(t, result.Data[0].Amount.Equal(decimal.RequireFromString("1500")))
}

func TestProcessFileResetsStateBetweenRuns(t *testing.T) {
	dir := t.TempDir()
	withWarning := writeReportFixture(t, dir, [][]interface{}{
		reportHeaders,
		{"15.03.2024", "Иванов И.И., Газель А123ВС", "Газель А123ВС", "го Волоколамск", ""},
	})

	p := newTestProcessor()
	first := p.ProcessFile(withWarning)
	require.Len(t, first.Warnings, 1)

	clean := writeReportFixture(t, t.TempDir(), [][]interface{}{
		reportHeaders,
		{"15.03.2024", "Иванов И.И., Газель А123ВС", "Газель А123ВС", "го Волоколамск", "1500"},
	})

	second := p.ProcessFile(clean)
	assert.Empty(t, second.Warnings)
}
