//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go

package vocabulary

import "context"

// Repository defines the contract for vocabulary persistence.
// Implementations store the whole collection at once.
type Repository interface {
	// Load retrieves every stored entry in insertion order. It returns an
	// empty slice when nothing has been stored yet and an error wrapping
	// ErrStorageRead when the stored data cannot be decoded.
	Load(ctx context.Context) ([]Entry, error)

	// Save replaces the stored collection with entries. Failures wrap
	// ErrStorageWrite.
	Save(ctx context.Context, entries []Entry) error
}
