package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Дата", "Сумма"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"15.03.2024", "1500"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Дата", "Сумма"}, table.Headers)
	require.Equal(t, 1, table.RowCount)
	assert.Equal(t, "15.03.2024", table.Rows[0]["Дата"])
	assert.Equal(t, "1500", table.Rows[0]["Сумма"])
	assert.Equal(t, path, table.SourceFile)
}

func TestLoadTSVUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	content := "Дата\tВодитель\n15.03.2024\tИванов\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Дата", "Водитель"}, table.Headers)
	require.Equal(t, 1, table.RowCount)
	assert.Equal(t, "Иванов", table.Rows[0]["Водитель"])
}

func TestLoadTSVCP1251(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	content := "Дата\tВодитель\n15.03.2024\tИванов\n"
	encoded, err := charmap.Windows1251.NewEncoder().Bytes([]byte(content))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, encoded, 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Дата", "Водитель"}, table.Headers)
	require.Equal(t, 1, table.RowCount)
	assert.Equal(t, "Иванов", table.Rows[0]["Водитель"])
}

func TestLoadPadsShortRowsAndNamesBlankHeaders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	content := "Дата\t\tСумма\n15.03.2024\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Дата", "Column_2", "Сумма"}, table.Headers)
	require.Equal(t, 1, table.RowCount)
	assert.Equal(t, "15.03.2024", table.Rows[0]["Дата"])
	assert.Equal(t, "", table.Rows[0]["Сумма"])
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestRenameColumn(t *testing.T) {
	table := &Table{
		Headers: []string{"Дата рейса", "Сумма"},
		Rows: []map[string]string{
			{"Дата рейса": "15.03.2024", "Сумма": "1500"},
		},
	}

	table.RenameColumn("Дата рейса", "Дата")

	assert.True(t, table.HasColumn("Дата"))
	assert.False(t, table.HasColumn("Дата рейса"))
	assert.Equal(t, "15.03.2024", table.Rows[0]["Дата"])
}
