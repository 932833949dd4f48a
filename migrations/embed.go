// Package migrations holds the database schema for the Travel Buddy backend
// as versioned SQL files, compiled into the binary.
package migrations

import "embed"

// FS contains every *.sql migration. The server bootstrap and the repo test
// suite both feed it to a goose provider, so no migrations directory needs to
// exist on disk at runtime.
//
//go:embed *.sql
var FS embed.FS
