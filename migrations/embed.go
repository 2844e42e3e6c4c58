package migrations

import "embed"

// Files stores forward-only SQL migrations for the SQLite backend.
//
//go:embed *.sql
var Files embed.FS
