package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foodshare/internal/config"
	"foodshare/internal/utils"

	_ "github.com/go-sql-driver/mysql"
)

// DBTX subset of database/sql shared by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Database connection pool
type Database struct {
	DB *sql.DB
}

// NewDatabase opens the MySQL pool and checks connectivity
func NewDatabase(cfg *config.Config) (*Database, error) {
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	utils.GetLogger().Info("database connected",
		"host", cfg.Database.Host,
		"database", cfg.Database.Database,
		"maxOpenConns", cfg.Database.MaxOpenConns)
	return &Database{DB: db}, nil
}

// NewDatabaseFromDB wraps an existing pool
func NewDatabaseFromDB(db *sql.DB) *Database {
	return &Database{DB: db}
}

// Close closes the pool
func (d *Database) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// Ping checks connectivity
func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

// WithTx runs fn inside a transaction. It commits when fn returns nil and
// rolls back on error or panic; panics are rethrown.
func (d *Database) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
