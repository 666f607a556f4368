package persistence

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one writer at a time
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sqlx.DB) error {
	// Vocabulary table; position keeps insertion order
	vocabularyTable := `
	CREATE TABLE IF NOT EXISTS vocabulary (
		term TEXT PRIMARY KEY,
		meaning TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);`

	_, err := db.Exec(vocabularyTable)
	if err != nil {
		return fmt.Errorf("failed to create vocabulary table: %w", err)
	}

	return nil
}
