// Package migrations embeds the SQLite schema for durable client storage.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
