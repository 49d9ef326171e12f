package migrations

import "embed"

// Files holds the forward-only schema migrations applied at startup.
//
//go:embed *.sql
var Files embed.FS
