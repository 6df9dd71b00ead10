// Package storage opens the client's local SQLite state file and brings its
// schema up to date with the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/docdesk/internal/client/migrations"
	"github.com/dmitrijs2005/docdesk/internal/filex"

	_ "modernc.org/sqlite"
)

// RunMigrations applies every pending migration. It is safe to call on an
// already migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the state file at dsn and migrates it.
// The directory of a plain file path is created first.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	if isFilePath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One writer is all a single-user state file needs, and it keeps
	// ":memory:" databases from splitting across connections.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}

	return db, nil
}

// isFilePath is false for in-memory databases and "file:" URIs, which
// SQLite resolves itself.
func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
