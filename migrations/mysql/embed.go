// Package mysql embeds SQL migration files for the MySQL catalog schema.
package mysql

import "embed"

// CatalogFS contains the catalog schema migrations. The adapter applies
// them in lexical order when opening the connection.
//
//go:embed catalog/*.sql
var CatalogFS embed.FS

// CatalogDir is the directory within CatalogFS where migrations live.
const CatalogDir = "catalog"
