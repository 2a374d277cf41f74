// Package store keeps the corpus library in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tuidrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a named corpus does not exist.
var ErrNotFound = errors.New("corpus not found")

// Store wraps SQLite access for stored corpora.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS corpora (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			source_path TEXT NOT NULL,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS corpus_lines (
			corpus_id INTEGER NOT NULL,
			line_no INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (corpus_id, line_no)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportCorpus stores lines under name, replacing any corpus with that name.
func (s *Store) ImportCorpus(ctx context.Context, name, sourcePath string, lines []string) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM corpus_lines WHERE corpus_id IN (SELECT id FROM corpora WHERE name = ?)`, name); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM corpora WHERE name = ?`, name); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO corpora (name, source_path, imported_at) VALUES (?, ?, ?)`,
		name, sourcePath, time.Now().Format(time.RFC3339Nano))
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO corpus_lines (corpus_id, line_no, text) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, line := range lines {
		if _, err = stmt.ExecContext(ctx, id, i, line); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// CorpusLines returns the lines of a named corpus in their original order.
func (s *Store) CorpusLines(ctx context.Context, name string) ([]string, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM corpora WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT text FROM corpus_lines WHERE corpus_id = ? ORDER BY line_no ASC`, id)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ListCorpora returns every stored corpus ordered by name.
func (s *Store) ListCorpora(ctx context.Context) ([]model.CorpusInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT c.id, c.name, c.source_path, c.imported_at, COUNT(l.line_no)
		FROM corpora c
		LEFT JOIN corpus_lines l ON l.corpus_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CorpusInfo
	for rows.Next() {
		var info model.CorpusInfo
		var importedAt string
		if err := rows.Scan(&info.ID, &info.Name, &info.SourcePath, &importedAt, &info.Lines); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteCorpus removes a named corpus and its lines.
func (s *Store) DeleteCorpus(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM corpus_lines WHERE corpus_id IN (SELECT id FROM corpora WHERE name = ?)`, name); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM corpora WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
