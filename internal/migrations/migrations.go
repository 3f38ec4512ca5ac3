// Package migrations embeds the goose SQL migrations.
package migrations

import "embed"

// Migrations goose migration files
//
//go:embed *.sql
var Migrations embed.FS
