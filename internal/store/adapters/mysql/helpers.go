// Package mysql: utilidades compartidas por los repositorios.
package mysql

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// parseID convierte un id de dominio (string) a la clave BIGINT.
// Un id no numérico no puede existir en este backend.
func parseID(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// formatID convierte la clave BIGINT al id de dominio.
func formatID(n int64) string {
	return strconv.FormatInt(n, 10)
}

// isDuplicate reporta si el error es una violación de clave única
// (errno 1062, ER_DUP_ENTRY).
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// ─────────────────────────────────────────────────────────────────────────────
// Conversión de tipos NULL
// ─────────────────────────────────────────────────────────────────────────────

// nullIfZeroTime retorna NULL para el time.Time cero.
func nullIfZeroTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// timeOrZero convierte sql.NullTime al time.Time de dominio.
func timeOrZero(nt sql.NullTime) time.Time {
	if !nt.Valid {
		return time.Time{}
	}
	return nt.Time
}

// ─────────────────────────────────────────────────────────────────────────────
// image_urls se guarda como JSON (columna JSON, NULL si no hay imágenes)
// ─────────────────────────────────────────────────────────────────────────────

func encodeImageURLs(urls []string) (any, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func decodeImageURLs(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		return nil
	}
	return urls
}
