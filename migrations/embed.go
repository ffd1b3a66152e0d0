// Package migrations embeds the SQL schema migrations applied at startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Files returns the embedded migration filesystem.
func Files() embed.FS { return FS }
