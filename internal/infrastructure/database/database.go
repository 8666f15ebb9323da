package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	dirPermissions  = 0750
	filePermissions = 0600

	connectTimeout  = 5 * time.Second
	connMaxIdleTime = 30 * time.Minute
)

// DB wraps sql.DB with migrations, a health check and SQLite-appropriate
// pool settings.
type DB struct {
	*sql.DB
	path string
}

// Config mirrors the database section of config.yaml.
type Config struct {
	// Path is the SQLite file path, or ":memory:" for a database that
	// lives only as long as the process.
	Path string

	// WALMode enables write-ahead logging. Ignored in memory.
	WALMode bool

	// BusyTimeout is how long to wait for a locked database, in seconds.
	BusyTimeout int
}

// InMemory reports whether the configuration targets an in-memory database.
func (c Config) InMemory() bool {
	return c.Path == ":memory:" || strings.HasPrefix(c.Path, "file::memory:")
}

func (c Config) connString() string {
	base := "file:" + c.Path
	if c.InMemory() {
		base = "file::memory:"
	}
	s := fmt.Sprintf("%s?_busy_timeout=%d&_foreign_keys=on", base, c.BusyTimeout*1000)
	if c.WALMode && !c.InMemory() {
		s += "&_journal_mode=WAL&_synchronous=NORMAL"
	}
	return s
}

// Open connects to the configured database and verifies it with a ping.
// For file-backed databases the parent directory is created as needed and
// the file is tightened to 0600; in-memory databases skip both.
func Open(cfg Config) (*DB, error) {
	if !cfg.InMemory() {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), dirPermissions); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite3", cfg.connString())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite has one writer; a single pooled connection also keeps an
	// in-memory database alive for the process lifetime.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	db := &DB{DB: sqlDB, path: cfg.Path}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	if !cfg.InMemory() {
		// On first run the file may not exist until the first write.
		_ = os.Chmod(cfg.Path, filePermissions)
	}

	return db, nil
}

// Close closes the underlying connection. Safe on a zero-value DB.
func (db *DB) Close() error {
	if db.DB == nil {
		return nil
	}
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the configured database path.
func (db *DB) Path() string {
	return db.path
}

// HealthCheck runs a trivial query to confirm the database is reachable.
func (db *DB) HealthCheck(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// BeginTx starts a transaction with the given options.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	return tx, nil
}
