// Package migrations provides embedded SQL migration files.
package migrations

import (
	_ "embed"
)

//go:embed sql/001_initial.sql
var InitialSQL string

//go:embed sql/002_sessions_last_seen.sql
var SessionsLastSeenSQL string

// All returns the migrations in apply order. The slice index is the schema
// version the migration upgrades from.
func All() []string {
	return []string{InitialSQL, SessionsLastSeenSQL}
}
