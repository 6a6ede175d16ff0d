package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

// querier is the subset of *pgxpool.Pool the repositories use.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// errNoRows is reported when a single-row query matched nothing.
var errNoRows = pgx.ErrNoRows

// queryJSON runs a SQL that returns a single json value and unmarshals it
// into dst.
func queryJSON(ctx context.Context, db querier, dst interface{}, sql string, args ...interface{}) error {
	var raw []byte
	if err := db.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return errNoRows
	}
	return json.Unmarshal(raw, dst)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
