package database

import (
	"context"
	_ "embed"
	"fmt"
)

// Schema is embedded so the binary can bootstrap a fresh database
// regardless of working directory.
//
//go:embed schema.sql
var schema string

// Migrate applies the schema. Every statement is IF NOT EXISTS guarded, so
// running it against an existing database is a no-op.
func Migrate(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
