package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/smrx/internal/models"
	"github.com/desertthunder/smrx/internal/shared"
)

// TimelineRepository stores label events. Entries have no natural key, so the table is
// replaced wholesale on import.
type TimelineRepository struct {
	db *sql.DB
}

// NewTimelineRepository creates a new TimelineRepository with the given database connection
func NewTimelineRepository(db *sql.DB) *TimelineRepository {
	return &TimelineRepository{db: db}
}

// Append adds an entry after all existing ones
func (r *TimelineRepository) Append(entry models.TimelineEntry) error {
	if entry.Title == "" {
		return fmt.Errorf("%w: timeline entry title is required", shared.ErrInvalidInput)
	}

	sequence, err := NextSequence(r.db, "timeline")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	typ := entry.Type
	if typ == "" {
		typ = "news"
	}

	categories, err := encodeLabels(entry.Categories)
	if err != nil {
		return err
	}
	tags, err := encodeLabels(entry.Tags)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO timeline (id, sequence, date, title, type, excerpt, categories, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.Exec(query, shared.GenerateID(), sequence, entry.Date, entry.Title, typ, entry.Excerpt, categories, tags, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert timeline entry: %w", err)
	}
	return nil
}

// Replace deletes every entry and appends entries in order
func (r *TimelineRepository) Replace(entries []models.TimelineEntry) error {
	if _, err := r.db.Exec("DELETE FROM timeline"); err != nil {
		return fmt.Errorf("failed to clear timeline: %w", err)
	}
	for _, e := range entries {
		if err := r.Append(e); err != nil {
			return err
		}
	}
	return nil
}

// List returns all entries in insertion order
func (r *TimelineRepository) List() ([]models.TimelineEntry, error) {
	rows, err := r.db.Query("SELECT date, title, type, excerpt, categories, tags FROM timeline ORDER BY sequence ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query timeline: %w", err)
	}
	defer rows.Close()

	var entries []models.TimelineEntry
	for rows.Next() {
		var e models.TimelineEntry
		var categories, tags string
		if err := rows.Scan(&e.Date, &e.Title, &e.Type, &e.Excerpt, &categories, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan timeline entry: %w", err)
		}
		if e.Categories, err = decodeLabels(categories); err != nil {
			return nil, err
		}
		if e.Tags, err = decodeLabels(tags); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return entries, nil
}

func encodeLabels(labels []string) (string, error) {
	if len(labels) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(labels)
	if err != nil {
		return "", fmt.Errorf("failed to encode labels: %w", err)
	}
	return string(data), nil
}

// decodeLabels returns nil for an empty array so entries round-trip through JSON unchanged.
func decodeLabels(s string) ([]string, error) {
	var labels []string
	if err := json.Unmarshal([]byte(s), &labels); err != nil {
		return nil, fmt.Errorf("%w: timeline labels: %v", shared.ErrMalformedData, err)
	}
	if len(labels) == 0 {
		return nil, nil
	}
	return labels, nil
}
