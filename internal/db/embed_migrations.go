package db

import "embed"

// MigrationFS embeds SQL migration files from internal/db/migrations.
// Used by the migrate runner (cmd/migrate and server startup) to apply
// migrations; running it repeatedly is a no-op once the schema is current.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
