package postgres

import (
	"context"
	"database/sql"
)

// Queryer is the read/write surface repositories depend on. The context
// variants are mandatory so request cancellation reaches the database.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
