// Package migrations compiles the SQL migration files into the hearthd
// binary so schema upgrades need no files on disk. Importing the package
// for side effects is enough; database.Migrate picks the files up from
// the registered filesystem.
package migrations

import (
	"embed"

	"github.com/calverly/hearth-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
