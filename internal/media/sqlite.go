package media

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS file_ids (
	locator TEXT PRIMARY KEY,
	file_id TEXT NOT NULL
);`

type SQLiteStore struct {
	*sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Mapping, error) {
	rows, err := s.QueryContext(ctx, `SELECT locator, file_id FROM file_ids`)
	if err != nil {
		return nil, fmt.Errorf("query file ids: %w", err)
	}
	defer rows.Close()

	m := Mapping{}
	for rows.Next() {
		var locator, fileID string
		if err := rows.Scan(&locator, &fileID); err != nil {
			return nil, err
		}
		m[locator] = fileID
	}
	return m, rows.Err()
}

// Save upserts every entry of m in one transaction. Existing rows that
// are not in m are kept.
func (s *SQLiteStore) Save(ctx context.Context, m Mapping) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO file_ids (locator, file_id) VALUES (?, ?)
		ON CONFLICT(locator) DO UPDATE SET file_id = excluded.file_id`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for locator, fileID := range m {
		if _, err := stmt.ExecContext(ctx, locator, fileID); err != nil {
			return fmt.Errorf("save %s: %w", locator, err)
		}
	}
	return tx.Commit()
}
