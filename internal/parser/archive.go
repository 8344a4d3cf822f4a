package parser

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vibecheck/ingest/internal/apperr"
)

// ReadExport loads chat export text from a path. Zip archives are
// searched for the chat .txt file (WhatsApp names it "_chat.txt"); an
// archive without one is a fatal input error.
func ReadExport(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readZipExport(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.NewInputWrap("unreadable export file", err)
	}
	return string(data), nil
}

func readZipExport(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", apperr.NewInputWrap("unreadable export archive", err)
	}
	defer zr.Close()

	entry := findChatFile(zr.File)
	if entry == nil {
		return "", apperr.NewInput("no chat .txt file found in archive")
	}

	f, err := entry.Open()
	if err != nil {
		return "", apperr.NewInputWrap("unreadable chat file in archive", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", apperr.NewInputWrap("unreadable chat file in archive", err)
	}
	return string(data), nil
}

// findChatFile prefers a .txt entry whose name mentions "chat", falling
// back to any .txt entry.
func findChatFile(files []*zip.File) *zip.File {
	var fallback *zip.File
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if !strings.HasSuffix(name, ".txt") {
			continue
		}
		if strings.Contains(name, "chat") {
			return f
		}
		if fallback == nil {
			fallback = f
		}
	}
	return fallback
}
