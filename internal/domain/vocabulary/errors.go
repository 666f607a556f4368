package vocabulary

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a required entry field is empty.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateTerm is returned when an edit would rename an entry onto
	// a term that another entry already uses.
	ErrDuplicateTerm = fmt.Errorf("%w: term already exists", ErrValidation)

	// ErrNotFound is returned when no entry has the requested term.
	ErrNotFound = errors.New("entry not found")

	// ErrStorageRead is returned when stored vocabulary is malformed or unreadable.
	ErrStorageRead = errors.New("failed to read vocabulary storage")

	// ErrStorageWrite is returned when the vocabulary could not be persisted.
	ErrStorageWrite = errors.New("failed to write vocabulary storage")

	// ErrImport is returned when an import file cannot be read or parsed.
	ErrImport = errors.New("import failed")

	// ErrExport is returned when an export cannot be written.
	ErrExport = errors.New("export failed")
)
