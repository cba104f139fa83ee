/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pg

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/storagemodels"
)

const uniqueViolation = "23505"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
// Passing a pgx.Tx makes the caller's transaction the commit boundary.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresExecutor implements datastore.Executor with INSERT for single rows
// and COPY for bulk loads.
type PostgresExecutor struct {
	db     DBTX
	schema string
}

// Option configures a PostgresExecutor.
type Option func(*PostgresExecutor)

// WithSchema qualifies every entity table with schema.
func WithSchema(schema string) Option {
	return func(e *PostgresExecutor) {
		e.schema = schema
	}
}

// New constructs an executor over db.
func New(db DBTX, opts ...Option) *PostgresExecutor {
	e := &PostgresExecutor{db: db}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *PostgresExecutor) table(entity string) pgx.Identifier {
	if e.schema == "" {
		return pgx.Identifier{entity}
	}
	return pgx.Identifier{e.schema, entity}
}

// insertSQL renders a parameterized INSERT for the row's columns.
func (e *PostgresExecutor) insertSQL(row storagemodels.Row) string {
	cols := make([]string, len(row.Columns))
	params := make([]string, len(row.Columns))
	for i, c := range row.Columns {
		cols[i] = pgx.Identifier{c}.Sanitize()
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.table(row.Entity).Sanitize(), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// ExecuteInsert writes one row.
func (e *PostgresExecutor) ExecuteInsert(ctx context.Context, row storagemodels.Row) error {
	if len(row.Columns) == 0 {
		return errors.NewValidationError("columns", "row has no columns")
	}
	if _, err := e.db.Exec(ctx, e.insertSQL(row), row.Values...); err != nil {
		return mapError(row, err)
	}
	return nil
}

// ExecuteBulkInsert copies rows with a single COPY statement. All rows must
// target the same entity with the same column list.
func (e *PostgresExecutor) ExecuteBulkInsert(ctx context.Context, rows []storagemodels.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	first := rows[0]
	values := make([][]any, len(rows))
	for i, row := range rows {
		if row.Entity != first.Entity || !sameColumns(row.Columns, first.Columns) {
			return 0, errors.NewValidationError("rows",
				fmt.Sprintf("row %d does not match the shape of %s", i, first.Entity))
		}
		values[i] = row.Values
	}

	n, err := e.db.CopyFrom(ctx, e.table(first.Entity), first.Columns, pgx.CopyFromRows(values))
	if err != nil {
		return 0, mapError(first, err)
	}
	return n, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mapError(row storagemodels.Row, err error) error {
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		key := pgErr.Detail
		if key == "" {
			key = pgErr.ConstraintName
		}
		return fmt.Errorf("%w: %w", errors.NewAlreadyExistsError(row.Entity, key), err)
	}
	return err
}
