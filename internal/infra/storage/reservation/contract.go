package reservation

import (
	"context"
	"database/sql"
)

// DBExecutor is the subset of *sql.DB the repository needs. The active
// transaction, when present in the context, takes precedence over it.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
