// Package schemas provides embedded SQL schema files.
package schemas

import "embed"

// Migrations contains the MySQL migrations of the dictionary source database.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// SQLiteKV creates the key-value table of the local store.
//
//go:embed sqlite/kv_entries.sql
var SQLiteKV string
