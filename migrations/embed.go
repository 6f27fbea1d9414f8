package migrations

import "embed"

// Files holds the schema scripts run against every fresh session store.
//
//go:embed *.sql
var Files embed.FS
