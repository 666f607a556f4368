package filesystem

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

// Transfer handles importing and exporting vocabulary files
type Transfer struct{}

// NewTransfer creates a new vocabulary transfer
func NewTransfer() *Transfer {
	return &Transfer{}
}

// ReadFile loads import candidates from a JSON or CSV file
func (t *Transfer) ReadFile(path string) ([]vocabulary.Entry, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file type %q", vocabulary.ErrImport, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open import file: %v", vocabulary.ErrImport, err)
	}
	defer file.Close()

	entries, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vocabulary.ErrImport, err)
	}

	return entries, nil
}

// WriteFile exports entries to path. A path without extension gets ".json";
// any extension other than ".csv" is written as JSON.
func (t *Transfer) WriteFile(path string, entries []vocabulary.Entry) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".json"
	}

	format, ok := FormatFromPath(path)
	if !ok {
		format = FormatJSON
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, entries); err != nil {
		return "", fmt.Errorf("%w: %v", vocabulary.ErrExport, err)
	}

	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("%w: %v", vocabulary.ErrExport, err)
	}

	return path, nil
}
