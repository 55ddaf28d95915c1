package migrations

import "embed"

// Migrations holds the credential schema, applied with golang-migrate.
//
//go:embed *.sql
var Migrations embed.FS
