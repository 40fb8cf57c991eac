package postgres

import (
	"database/sql"
	"time"
)

// NullTime converts an optional time into a value the SQL drivers accept.
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
