// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific record type,
// handling CRUD operations, soft deletes, and sequence generation.
package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers keep records in the order they were first imported, which is the order
// albums.json and artists.json are written back in.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	_, err = tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// docStore implements the shared CRUD statements for document tables.
//
// columns are the indexed columns besides slug; values must return them in the same order.
type docStore[T models.Model] struct {
	db      *sql.DB
	table   string
	entity  string
	columns []string
	values  func(T) []any
	decode  func([]byte) (T, error)
}

func (s *docStore[T]) create(record T) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(s.db, s.table)
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	doc, err := shared.MarshalJSON(record, false)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	cols := append([]string{"id", "sequence", "slug"}, s.columns...)
	cols = append(cols, "document", "created_at", "updated_at")
	args := append([]any{shared.GenerateID(), sequence, record.Key()}, s.values(record)...)
	args = append(args, string(doc), now, now)

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(cols, ", "), placeholders(len(cols)))

	if _, err := s.db.Exec(query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %q", shared.ErrDuplicateSlug, s.entity, record.Key())
		}
		return fmt.Errorf("failed to insert %s: %w", s.entity, err)
	}
	return nil
}

func (s *docStore[T]) get(slug string) (T, error) {
	var (
		zero T
		doc  string
	)

	query := fmt.Sprintf("SELECT document FROM %s WHERE slug = ? AND deleted_at IS NULL", s.table)
	err := s.db.QueryRow(query, slug).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s %q", shared.ErrNotFound, s.entity, slug)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to scan %s: %w", s.entity, err)
	}
	return s.decode([]byte(doc))
}

func (s *docStore[T]) update(record T) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	doc, err := shared.MarshalJSON(record, false)
	if err != nil {
		return err
	}

	sets := make([]string, 0, len(s.columns)+2)
	for _, c := range s.columns {
		sets = append(sets, c+" = ?")
	}
	sets = append(sets, "document = ?", "updated_at = ?")

	args := append(s.values(record), string(doc), time.Now().UTC(), record.Key())
	query := fmt.Sprintf("UPDATE %s SET %s WHERE slug = ? AND deleted_at IS NULL", s.table, strings.Join(sets, ", "))

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", s.entity, err)
	}
	return requireRow(result, s.entity, record.Key())
}

// upsert inserts record, or overwrites and restores the row that already owns its slug.
func (s *docStore[T]) upsert(record T) error {
	err := s.update(record)
	if err == nil || !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	var deleted bool
	query := fmt.Sprintf("SELECT deleted_at IS NOT NULL FROM %s WHERE slug = ?", s.table)
	err = s.db.QueryRow(query, record.Key()).Scan(&deleted)
	if errors.Is(err, sql.ErrNoRows) {
		return s.create(record)
	}
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", s.entity, err)
	}

	query = fmt.Sprintf("UPDATE %s SET deleted_at = NULL WHERE slug = ?", s.table)
	if _, err := s.db.Exec(query, record.Key()); err != nil {
		return fmt.Errorf("failed to restore %s: %w", s.entity, err)
	}
	return s.update(record)
}

func (s *docStore[T]) delete(slug string) error {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = ? WHERE slug = ? AND deleted_at IS NULL", s.table)
	result, err := s.db.Exec(query, time.Now().UTC(), slug)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.entity, err)
	}
	return requireRow(result, s.entity, slug)
}

func (s *docStore[T]) list(where string, args ...any) ([]T, error) {
	query := fmt.Sprintf("SELECT document FROM %s WHERE deleted_at IS NULL", s.table)
	if where != "" {
		query += " AND " + where
	}
	query += " ORDER BY sequence ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", s.entity, err)
		}
		record, err := s.decode([]byte(doc))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return records, nil
}

func (s *docStore[T]) slugs() ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT slug FROM %s WHERE deleted_at IS NULL ORDER BY sequence ASC", s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		slugs = append(slugs, slug)
	}
	return slugs, rows.Err()
}

func decodeJSON[T any](entity string) func([]byte) (*T, error) {
	return func(data []byte) (*T, error) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("%w: %s document: %v", shared.ErrMalformedData, entity, err)
		}
		return &v, nil
	}
}

func requireRow(result sql.Result, entity, slug string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s not found or already deleted: %s", shared.ErrNotFound, entity, slug)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
