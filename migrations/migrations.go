// Package migrations embeds the record store's SQL schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
