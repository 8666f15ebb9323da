// Package audit persists registry events to the audit_logs table and
// provides query access to the activity history.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Entry represents a single audit trail row.
type Entry struct {
	ID         string         `json:"id"`
	EventType  string         `json:"event_type"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Filter controls which audit entries to return. Zero-value fields are
// ignored; Limit is clamped to [1, maxPageSize].
type Filter struct {
	EventType  string // device.created, hub.installed, ...
	EntityType string // device, hub, dwelling
	EntityID   string
	Limit      int
	Offset     int
}

// where assembles the WHERE clause and its bind arguments from the set
// filter fields. Every value goes through a ? placeholder.
func (f Filter) where() (clause string, args []any) {
	pairs := []struct {
		col string
		val string
	}{
		{"event_type", f.EventType},
		{"entity_type", f.EntityType},
		{"entity_id", f.EntityID},
	}
	var conds []string
	for _, p := range pairs {
		if p.val != "" {
			conds = append(conds, p.col+" = ?")
			args = append(args, p.val)
		}
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// ListResult contains the paginated audit results.
type ListResult struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// Repository defines the interface for audit trail operations.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores audit entries in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new audit trail repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new audit entry, generating the ID and CreatedAt when
// they are empty.
func (r *SQLiteRepository) Create(ctx context.Context, entry *Entry) error {
	if entry.ID == "" {
		entry.ID = "aud-" + uuid.NewString()[:8]
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	var details any
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshalling audit details: %w", err)
		}
		details = string(b)
	}

	var entityID any
	if entry.EntityID != "" {
		entityID = entry.EntityID
	}

	const insert = `INSERT INTO audit_logs (id, event_type, entity_type, entity_id, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, insert,
		entry.ID, entry.EventType, entry.EntityType, entityID, details,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// List returns audit entries matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultPageSize
	case filter.Limit > maxPageSize:
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	where, args := filter.where()

	// The WHERE clause contains ? placeholders only; user input never
	// reaches the SQL string.
	var total int
	countQuery := "SELECT COUNT(*) FROM audit_logs " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting audit entries: %w", err)
	}

	query := "SELECT id, event_type, entity_type, entity_id, details, created_at FROM audit_logs " +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit entries: %w", err)
	}

	return &ListResult{
		Entries: entries,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var entityID, detailsJSON sql.NullString
	var createdAt string

	err := rows.Scan(&entry.ID, &entry.EventType, &entry.EntityType,
		&entityID, &detailsJSON, &createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("scanning audit entry: %w", err)
	}

	entry.EntityID = entityID.String
	if detailsJSON.String != "" {
		var details map[string]any
		if json.Unmarshal([]byte(detailsJSON.String), &details) == nil {
			entry.Details = details
		}
	}

	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parsing audit timestamp %q: %w", createdAt, err)
	}
	return entry, nil
}
