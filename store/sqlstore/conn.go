package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// debugConn logs every statement with its duration.
type debugConn struct {
	ExecQuerier
	log zerolog.Logger
}

// ExecContext logs and executes a statement.
func (c debugConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := c.ExecQuerier.ExecContext(ctx, query, args...)
	c.trace(query, args, start, err)
	return res, err
}

// QueryRowContext logs and executes a single-row query. Errors surface on
// Scan and are not logged here.
func (c debugConn) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := c.ExecQuerier.QueryRowContext(ctx, query, args...)
	c.trace(query, args, start, row.Err())
	return row
}

func (c debugConn) trace(query string, args []any, start time.Time, err error) {
	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Warn().Err(err)
	}
	// Content arguments are binary; only the row address is logged.
	var row []string
	for _, a := range args {
		if s, ok := a.(string); ok {
			row = append(row, s)
		}
	}
	ev.Strs("row", row).Str("query", query).Dur("took", time.Since(start)).Msg("sqlstore")
}
