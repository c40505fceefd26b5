// Package migrations embeds the goose migrations for the local client
// database (session metadata and listing cache).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
