// Package storage owns database connections and schema creation for the
// portfolio models.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/projects"
)

// Open connects to the configured database. Supported drivers are "sqlite3"
// (DSN is a file path or ":memory:" variant) and "postgres" (DSN is a
// postgres:// URL).
func Open(driver, dsn string) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db := bun.NewDB(sqldb, sqlitedialect.New())
		// Shared-cache in-memory databases require a single connection.
		if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
			db.SetMaxOpenConns(1)
		}
		return db, nil
	case "postgres", "postgresql", "pg":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
		return bun.NewDB(sqldb, pgdialect.New()), nil
	}
	return nil, fmt.Errorf("storage: unsupported driver %q", driver)
}

// Migrate creates the portfolio tables when they do not exist. Block rows
// cascade with their project.
func Migrate(ctx context.Context, db *bun.DB) error {
	if db == nil {
		return fmt.Errorf("storage: database is required")
	}

	models := []any{
		(*assets.Asset)(nil),
		(*projects.Project)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table %T: %w", model, err)
		}
	}

	if _, err := db.NewCreateTable().
		Model((*blocks.Row)(nil)).
		IfNotExists().
		ForeignKey(`("project_id") REFERENCES "projects" ("id") ON DELETE CASCADE`).
		ForeignKey(`("asset_id") REFERENCES "assets" ("id")`).
		Exec(ctx); err != nil {
		return fmt.Errorf("storage: create table blocks.Row: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		"CREATE INDEX IF NOT EXISTS idx_project_blocks_project_position ON project_blocks(project_id, position)"); err != nil {
		return fmt.Errorf("storage: create block position index: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		"CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status)"); err != nil {
		return fmt.Errorf("storage: create project status index: %w", err)
	}
	return nil
}
