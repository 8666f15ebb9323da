package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/calverly/hearth-core/internal/events"
)

// openTestDB creates an in-memory database with the audit schema.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE audit_logs (
			id          TEXT PRIMARY KEY,
			event_type  TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id   TEXT,
			details     TEXT,
			created_at  TEXT NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("creating audit_logs table: %v", err)
	}
	return db
}

func TestSQLiteRepository_Create(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	t.Run("generates id and timestamp", func(t *testing.T) {
		entry := &Entry{
			EventType:  "device.created",
			EntityType: "device",
			EntityID:   "dev-1",
			Details:    map[string]any{"name": "Living Room Light"},
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if entry.ID == "" {
			t.Error("Create() did not generate an ID")
		}
		if entry.CreatedAt.IsZero() {
			t.Error("Create() did not set CreatedAt")
		}
	})

	t.Run("nullable entity id", func(t *testing.T) {
		entry := &Entry{
			EventType:  "hub.created",
			EntityType: "hub",
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	})
}

func TestSQLiteRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	seed := []Entry{
		{EventType: "device.created", EntityType: "device", EntityID: "dev-1", CreatedAt: base},
		{EventType: "device.paired", EntityType: "device", EntityID: "dev-1", CreatedAt: base.Add(time.Second)},
		{EventType: "hub.created", EntityType: "hub", EntityID: "hub-1", CreatedAt: base.Add(2 * time.Second)},
		{EventType: "device.created", EntityType: "device", EntityID: "dev-2", CreatedAt: base.Add(3 * time.Second)},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("seeding entry %d: %v", i, err)
		}
	}

	t.Run("no filter returns all, newest first", func(t *testing.T) {
		res, err := repo.List(ctx, Filter{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Total != 4 || len(res.Entries) != 4 {
			t.Fatalf("Total = %d, len = %d, want 4/4", res.Total, len(res.Entries))
		}
		if res.Entries[0].EntityID != "dev-2" {
			t.Errorf("newest entry = %q, want dev-2", res.Entries[0].EntityID)
		}
	})

	t.Run("filter by event type", func(t *testing.T) {
		res, err := repo.List(ctx, Filter{EventType: "device.created"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Total != 2 {
			t.Errorf("Total = %d, want 2", res.Total)
		}
	})

	t.Run("filter by entity", func(t *testing.T) {
		res, err := repo.List(ctx, Filter{EntityType: "device", EntityID: "dev-1"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Total != 2 {
			t.Errorf("Total = %d, want 2", res.Total)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := repo.List(ctx, Filter{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Total != 4 {
			t.Errorf("Total = %d, want 4", res.Total)
		}
		if len(res.Entries) != 2 {
			t.Errorf("page length = %d, want 2", len(res.Entries))
		}
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		res, err := repo.List(ctx, Filter{EventType: "device.unlocked"})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if res.Entries == nil || len(res.Entries) != 0 {
			t.Errorf("Entries = %v, want empty non-nil slice", res.Entries)
		}
	})
}

func TestRecorder_Publish(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteRepository(openTestDB(t))
	rec := NewRecorder(repo)

	ev := events.New(events.DevicePaired, events.EntityDevice, "dev-9", map[string]any{
		"hub_id": "hub-1",
	})
	rec.Publish(ctx, ev)

	res, err := repo.List(ctx, Filter{EntityID: "dev-9"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("Total = %d, want 1", res.Total)
	}
	entry := res.Entries[0]
	if entry.EventType != string(events.DevicePaired) {
		t.Errorf("EventType = %q, want device.paired", entry.EventType)
	}
	if entry.Details["hub_id"] != "hub-1" {
		t.Errorf("Details = %v", entry.Details)
	}
}
