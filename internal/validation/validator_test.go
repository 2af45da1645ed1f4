package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymentmaker/internal/loader"
)

func makeTable(headers []string) *loader.Table {
	row := make(map[string]string, len(headers))
	for _, h := range headers {
		row[h] = "x"
	}
	return &loader.Table{
		Headers: headers,
		Rows:    []map[string]string{row},
	}
}

func TestValidateStructureExactHeaders(t *testing.T) {
	table := makeTable([]string{"Дата", "Водитель", "Авто", "Адрес выгрузки", "Сумма за рейсы"})
	assert.Empty(t, ValidateStructure(table))
}

func TestValidateStructureFuzzyHeadersAreRenamed(t *testing.T) {
	table := makeTable([]string{
		"Дата рейса",
		"Водитель",
		"Авто",
		"Адрес выгрузки (пункты)",
		"Сумма за рейсы, руб.",
	})

	missing := ValidateStructure(table)
	require.Empty(t, missing)

	// Fuzzy matches are renamed to the canonical labels, rows included.
	for _, label := range RequiredColumns {
		assert.True(t, table.HasColumn(label), "column %q", label)
	}
	assert.Equal(t, "x", table.Rows[0]["Дата"])
}

func TestValidateStructureCaseInsensitive(t *testing.T) {
	table := makeTable([]string{"ДАТА", "ВОДИТЕЛЬ", "АВТО", "АДРЕС ВЫГРУЗКИ", "СУММА ЗА РЕЙСЫ"})
	assert.Empty(t, ValidateStructure(table))
}

func TestValidateStructureReportsAllMissingColumns(t *testing.T) {
	table := makeTable([]string{"Дата", "Водитель"})

	missing := ValidateStructure(table)
	assert.Equal(t, []string{"Авто", "Адрес выгрузки", "Сумма за рейсы"}, missing)
}
