// Package db holds the schema migrations, embedded so the binary can install them.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
