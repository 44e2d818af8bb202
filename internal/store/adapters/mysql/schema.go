package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	migrations "github.com/dropDatabas3/mercadito/migrations/mysql"
)

// ensureSchema aplica las migraciones embebidas en orden lexicográfico,
// sentencia por sentencia. database/sql no acepta multi-statement sin
// multiStatements=true en el DSN, así que separamos por ';' acá y no
// pedimos nada extra al DSN.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	entries, err := fs.ReadDir(migrations.CatalogFS, migrations.CatalogDir)
	if err != nil {
		return fmt.Errorf("mysql: read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		raw, err := fs.ReadFile(migrations.CatalogFS, migrations.CatalogDir+"/"+entry.Name())
		if err != nil {
			return fmt.Errorf("mysql: read migration %s: %w", entry.Name(), err)
		}
		for _, stmt := range strings.Split(string(raw), ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || isCommentOnly(stmt) {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("mysql: ensure schema (%s): %w", entry.Name(), err)
			}
		}
	}
	return nil
}

func isCommentOnly(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		return false
	}
	return true
}
