// Package migrations embeds the versioned SQL migrations so the migrate
// command works without the source tree.
package migrations

import "embed"

// FS holds every *.sql file in this directory
//
//go:embed *.sql
var FS embed.FS
