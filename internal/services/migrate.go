package services

import (
	"context"
	"database/sql"

	"foodshare/internal/migrations"

	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for tests
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded schema migrations
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
