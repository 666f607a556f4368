package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

// DefaultPath is the vocabulary file used when none is configured
const DefaultPath = "vocab.json"

type vocabularyRepository struct {
	path string
	log  *zap.Logger
}

// NewVocabularyRepository creates a repository storing the vocabulary as a
// JSON array in a single file
func NewVocabularyRepository(path string, log *zap.Logger) vocabulary.Repository {
	if path == "" {
		path = DefaultPath
	}
	return &vocabularyRepository{path: path, log: log}
}

// Load reads the vocabulary file. A missing file is a first run and yields
// an empty vocabulary.
func (r *vocabularyRepository) Load(_ context.Context) ([]vocabulary.Entry, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.log.Info("vocabulary file not found, starting empty", zap.String("path", r.path))
		return []vocabulary.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", vocabulary.ErrStorageRead, r.path, err)
	}

	entries, err := decodeStored(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", vocabulary.ErrStorageRead, r.path, err)
	}

	return entries, nil
}

// Save overwrites the vocabulary file with entries
func (r *vocabularyRepository) Save(_ context.Context, entries []vocabulary.Entry) error {
	var buf bytes.Buffer
	if err := Encode(&buf, FormatJSON, entries); err != nil {
		return fmt.Errorf("%w: %v", vocabulary.ErrStorageWrite, err)
	}

	if err := writeFileAtomic(r.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %s: %v", vocabulary.ErrStorageWrite, r.path, err)
	}

	r.log.Debug("vocabulary saved", zap.String("path", r.path), zap.Int("entries", len(entries)))
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, so readers never see a partially written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
