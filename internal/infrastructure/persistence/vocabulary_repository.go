package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/vocabulary"
)

type vocabularyRow struct {
	Term     string `db:"term"`
	Meaning  string `db:"meaning"`
	Category string `db:"category"`
	Position int    `db:"position"`
}

type vocabularyRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *sqlx.DB, log *zap.Logger) vocabulary.Repository {
	return &vocabularyRepository{db: db, log: log}
}

// Load retrieves all entries in insertion order
func (r *vocabularyRepository) Load(ctx context.Context) ([]vocabulary.Entry, error) {
	query := `
		SELECT term, meaning, category, position
		FROM vocabulary
		ORDER BY position
	`

	var rows []vocabularyRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("%w: failed to query vocabulary: %v", vocabulary.ErrStorageRead, err)
	}

	entries := make([]vocabulary.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, vocabulary.Entry{
			Term:     row.Term,
			Meaning:  row.Meaning,
			Category: vocabulary.Category(row.Category),
		}.Clean())
	}

	return entries, nil
}

// Save replaces the stored vocabulary in a single transaction
func (r *vocabularyRepository) Save(ctx context.Context, entries []vocabulary.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", vocabulary.ErrStorageWrite, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocabulary`); err != nil {
		return fmt.Errorf("%w: failed to clear vocabulary: %v", vocabulary.ErrStorageWrite, err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO vocabulary (term, meaning, category, position)
		VALUES (:term, :meaning, :category, :position)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare statement: %v", vocabulary.ErrStorageWrite, err)
	}
	defer stmt.Close()

	for i, e := range entries {
		row := vocabularyRow{
			Term:     e.Term,
			Meaning:  e.Meaning,
			Category: string(e.Category),
			Position: i,
		}
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return fmt.Errorf("%w: failed to save word %s: %v", vocabulary.ErrStorageWrite, e.Term, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %v", vocabulary.ErrStorageWrite, err)
	}

	r.log.Debug("vocabulary saved", zap.Int("entries", len(entries)))
	return nil
}
