package parser

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibecheck/ingest/internal/apperr"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestReadExport_PlainTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.txt")
	require.NoError(t, os.WriteFile(path, []byte("[2026/02/01, 14:30:00] A: hi"), 0o644))

	content, err := ReadExport(path)
	require.NoError(t, err)
	assert.Equal(t, "[2026/02/01, 14:30:00] A: hi", content)
}

func TestReadExport_MissingFileIsFatal(t *testing.T) {
	_, err := ReadExport(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)

	var inputErr *apperr.InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestReadExport_ZipPrefersChatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, path, map[string]string{
		"notes.txt": "not the chat",
		"_chat.txt": "[2026/02/01, 14:30:00] A: from the chat",
	})

	content, err := ReadExport(path)
	require.NoError(t, err)
	assert.Equal(t, "[2026/02/01, 14:30:00] A: from the chat", content)
}

func TestReadExport_ZipFallsBackToAnyTxt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, path, map[string]string{
		"transcript.txt": "fallback content",
		"photo.jpg":      "binary",
	})

	content, err := ReadExport(path)
	require.NoError(t, err)
	assert.Equal(t, "fallback content", content)
}

func TestReadExport_ZipWithoutTextFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.zip")
	writeZip(t, path, map[string]string{"photo.jpg": "binary"})

	_, err := ReadExport(path)
	require.Error(t, err)

	var inputErr *apperr.InputError
	assert.ErrorAs(t, err, &inputErr)
}
