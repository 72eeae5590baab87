// Package migrations embeds the SQL schema shared by the Postgres and SQLite backends.
package migrations

import "embed"

// FS holds the numbered up/down migration files.
//
//go:embed *.sql
var FS embed.FS
