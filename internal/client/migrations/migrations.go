// Package migrations embeds the SQL migrations applied to the local
// settings database on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
