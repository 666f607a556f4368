package usecases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

// Transfer reads and writes vocabulary import/export files
type Transfer interface {
	// ReadFile decodes candidate entries from a JSON or CSV file
	ReadFile(path string) ([]vocabulary.Entry, error)
	// WriteFile encodes entries to path and returns the path actually written
	WriteFile(path string, entries []vocabulary.Entry) (string, error)
}

// VocabularyUseCase owns the in-memory vocabulary. Entries keep insertion
// order and every successful mutation is saved through the repository.
type VocabularyUseCase struct {
	mu       sync.Mutex
	repo     vocabulary.Repository
	transfer Transfer
	entries  []vocabulary.Entry
	// loadErr is set while the stored vocabulary could not be read; it
	// blocks mutations so the unreadable data is never overwritten.
	loadErr error
	log     *zap.Logger
}

// NewVocabularyUseCase creates a new vocabulary use case
func NewVocabularyUseCase(repo vocabulary.Repository, transfer Transfer, log *zap.Logger) *VocabularyUseCase {
	return &VocabularyUseCase{
		repo:     repo,
		transfer: transfer,
		entries:  []vocabulary.Entry{},
		log:      log,
	}
}

// Load replaces the in-memory vocabulary with the stored one
func (uc *VocabularyUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	entries, err := uc.repo.Load(ctx)
	if err != nil {
		uc.entries = []vocabulary.Entry{}
		uc.loadErr = err
		uc.log.Error("failed to load vocabulary", zap.Error(err))
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}

	uc.entries = dedupe(entries)
	uc.loadErr = nil
	uc.log.Info("vocabulary loaded", zap.Int("entries", len(uc.entries)), zap.Int("dropped", len(entries)-len(uc.entries)))

	return nil
}

// Entries returns a snapshot of all entries in insertion order
func (uc *VocabularyUseCase) Entries() []vocabulary.Entry {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.snapshot()
}

// Len returns the number of stored entries
func (uc *VocabularyUseCase) Len() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return len(uc.entries)
}

// Find looks an entry up by its exact term
func (uc *VocabularyUseCase) Find(term string) (vocabulary.Entry, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if i := uc.indexOf(term); i >= 0 {
		return uc.entries[i], true
	}
	return vocabulary.Entry{}, false
}

// List returns the entries of category sorted by term. An empty category
// lists everything. The stored order is left untouched.
func (uc *VocabularyUseCase) List(category vocabulary.Category) []vocabulary.Entry {
	entries := FilterByCategory(uc.Entries(), category)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Term < entries[j].Term
	})
	return entries
}

// Categories returns the distinct non-empty categories in use, sorted
func (uc *VocabularyUseCase) Categories() []vocabulary.Category {
	seen := make(map[vocabulary.Category]bool)
	var categories []vocabulary.Category
	for _, e := range uc.Entries() {
		if e.Category == "" || seen[e.Category] {
			continue
		}
		seen[e.Category] = true
		categories = append(categories, e.Category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
	return categories
}

// Search looks query up as a term or as one of the meanings
func (uc *VocabularyUseCase) Search(query string) []string {
	return vocabulary.Search(uc.Entries(), query)
}

// Add stores entry. An entry with the same term is replaced in place, in
// which case updated is true.
func (uc *VocabularyUseCase) Add(ctx context.Context, entry vocabulary.Entry) (updated bool, err error) {
	entry = entry.Clean()
	if err := entry.Validate(); err != nil {
		return false, err
	}

	err = uc.mutate(ctx, func(entries []vocabulary.Entry) ([]vocabulary.Entry, error) {
		for i := range entries {
			if entries[i].Term == entry.Term {
				entries[i] = entry
				updated = true
				return entries, nil
			}
		}
		return append(entries, entry), nil
	})
	if err != nil {
		return false, err
	}

	uc.log.Info("entry saved", zap.String("term", entry.Term), zap.Bool("updated", updated))
	return updated, nil
}

// Update replaces every field of the entry stored under oldTerm
func (uc *VocabularyUseCase) Update(ctx context.Context, oldTerm string, entry vocabulary.Entry) error {
	oldTerm = strings.TrimSpace(oldTerm)
	entry = entry.Clean()
	if err := entry.Validate(); err != nil {
		return err
	}

	err := uc.mutate(ctx, func(entries []vocabulary.Entry) ([]vocabulary.Entry, error) {
		idx := -1
		for i := range entries {
			switch entries[i].Term {
			case oldTerm:
				idx = i
			case entry.Term:
				return nil, fmt.Errorf("%w: %q", vocabulary.ErrDuplicateTerm, entry.Term)
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", vocabulary.ErrNotFound, oldTerm)
		}
		entries[idx] = entry
		return entries, nil
	})
	if err != nil {
		return err
	}

	uc.log.Info("entry updated", zap.String("old_term", oldTerm), zap.String("term", entry.Term))
	return nil
}

// Remove deletes every entry whose term is listed and reports how many
// were removed. Unknown terms are ignored.
func (uc *VocabularyUseCase) Remove(ctx context.Context, terms []string) (int, error) {
	drop := make(map[string]bool, len(terms))
	for _, t := range terms {
		drop[t] = true
	}

	removed := 0
	err := uc.mutate(ctx, func(entries []vocabulary.Entry) ([]vocabulary.Entry, error) {
		kept := entries[:0]
		for _, e := range entries {
			if drop[e.Term] {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}

	uc.log.Info("entries removed", zap.Int("removed", removed))
	return removed, nil
}

// ImportBatch adds the candidates whose term is not stored yet and returns
// how many were added. Invalid candidates are skipped; existing terms are
// never updated.
func (uc *VocabularyUseCase) ImportBatch(ctx context.Context, candidates []vocabulary.Entry) (int, error) {
	added := 0
	err := uc.mutate(ctx, func(entries []vocabulary.Entry) ([]vocabulary.Entry, error) {
		known := make(map[string]bool, len(entries))
		for _, e := range entries {
			known[e.Term] = true
		}

		for _, c := range candidates {
			c = c.Clean()
			if c.Validate() != nil || known[c.Term] {
				continue
			}
			known[c.Term] = true
			entries = append(entries, c)
			added++
		}
		if added == 0 {
			return nil, errNoChange
		}
		return entries, nil
	})
	if err != nil && !errors.Is(err, errNoChange) {
		return 0, err
	}

	uc.log.Info("vocabulary imported", zap.Int("candidates", len(candidates)), zap.Int("added", added))
	return added, nil
}

// ImportFile reads path and imports its entries
func (uc *VocabularyUseCase) ImportFile(ctx context.Context, path string) (int, error) {
	candidates, err := uc.transfer.ReadFile(path)
	if err != nil {
		uc.log.Warn("failed to read import file", zap.String("path", path), zap.Error(err))
		return 0, err
	}

	return uc.ImportBatch(ctx, candidates)
}

// ExportFile writes the whole vocabulary to path and returns the written path
func (uc *VocabularyUseCase) ExportFile(path string) (string, error) {
	written, err := uc.transfer.WriteFile(path, uc.Entries())
	if err != nil {
		uc.log.Warn("failed to export vocabulary", zap.String("path", path), zap.Error(err))
		return "", err
	}

	uc.log.Info("vocabulary exported", zap.String("path", written))
	return written, nil
}

var errNoChange = errors.New("no change")

// mutate applies fn to a copy of the entries and saves the result. The
// in-memory state only changes once the save succeeded.
func (uc *VocabularyUseCase) mutate(ctx context.Context, fn func([]vocabulary.Entry) ([]vocabulary.Entry, error)) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.loadErr != nil {
		return fmt.Errorf("vocabulary is read-only until it can be loaded: %w", uc.loadErr)
	}

	next, err := fn(uc.snapshot())
	if err != nil {
		return err
	}

	if err := uc.repo.Save(ctx, next); err != nil {
		uc.log.Error("failed to save vocabulary", zap.Error(err))
		return fmt.Errorf("failed to save vocabulary: %w", err)
	}

	uc.entries = next
	return nil
}

func (uc *VocabularyUseCase) snapshot() []vocabulary.Entry {
	return append([]vocabulary.Entry{}, uc.entries...)
}

func (uc *VocabularyUseCase) indexOf(term string) int {
	for i, e := range uc.entries {
		if e.Term == term {
			return i
		}
	}
	return -1
}

// dedupe cleans loaded entries and keeps the first entry of each term
func dedupe(entries []vocabulary.Entry) []vocabulary.Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]vocabulary.Entry, 0, len(entries))
	for _, e := range entries {
		e = e.Clean()
		if seen[e.Term] {
			continue
		}
		seen[e.Term] = true
		out = append(out, e)
	}
	return out
}

// FilterByCategory returns a new slice with the entries of category, or a
// copy of all entries when category is empty
func FilterByCategory(entries []vocabulary.Entry, category vocabulary.Category) []vocabulary.Entry {
	filtered := make([]vocabulary.Entry, 0, len(entries))
	for _, e := range entries {
		if category == "" || e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
