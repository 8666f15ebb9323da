// Package database opens and migrates the SQLite store behind the audit
// trail.
//
// Entity state lives in the registry; the database only keeps history. The
// default deployment therefore runs in memory, and pointing database.path
// at a file is all it takes to keep the audit trail across restarts.
// Migrations are embedded in the binary (see the root migrations package)
// and applied with Migrate:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// File-backed databases get 0600 permissions and WAL mode when configured.
package database
