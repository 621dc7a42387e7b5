package postgres

import (
	"database/sql"
	"strings"
)

// nullableString maps blank text to NULL.
func nullableString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
