// Package migrations embeds the SQL migration files for the content store.
package migrations

import "embed"

// FS contains the migration files.
//
//go:embed *.sql
var FS embed.FS
