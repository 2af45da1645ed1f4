package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOutputName(t *testing.T) {
	name := BuildOutputName("invoice_{number}_{date}.xlsx", "12")

	assert.True(t, strings.HasPrefix(name, "invoice_12_"))
	assert.True(t, strings.HasSuffix(name, ".xlsx"))
	assert.NotContains(t, name, "{")
}

func TestBuildOutputNameAppendsExtension(t *testing.T) {
	name := BuildOutputName("invoice_{number}", "7")
	assert.Equal(t, "invoice_7.xlsx", name)
}

func TestBuildOutputNameUUIDIsUnique(t *testing.T) {
	a := BuildOutputName("{uuid}.xlsx", "1")
	b := BuildOutputName("{uuid}.xlsx", "1")
	assert.NotEqual(t, a, b)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "out"), filepath.Join(dir, "archive"))

	require.NoError(t, fm.EnsureDirectories())

	assert.DirExists(t, fm.OutputDir)
	assert.DirExists(t, fm.ArchiveDir)
}

func TestArchiveInputFile(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "out"), filepath.Join(dir, "archive"))

	inputPath := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(inputPath, []byte("data"), 0o644))

	archivePath, err := fm.ArchiveInputFile(inputPath)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(fm.ArchiveDir, "report.xlsx"), archivePath)
	assert.FileExists(t, archivePath)
	assert.NoFileExists(t, inputPath)
}

func TestArchiveInputFileDisabled(t *testing.T) {
	dir := t.TempDir()
	fm := NewFileManager(filepath.Join(dir, "out"), filepath.Join(dir, "archive"))
	fm.ArchiveOnSuccess = false

	inputPath := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(inputPath, []byte("data"), 0o644))

	archivePath, err := fm.ArchiveInputFile(inputPath)
	require.NoError(t, err)

	assert.Equal(t, inputPath, archivePath)
	assert.FileExists(t, inputPath)
}
