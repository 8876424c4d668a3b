// Package migrations embeds the match_stats schema. The SQL is portable
// between postgres and sqlite.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
