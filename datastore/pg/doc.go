/*
Package pg implements datastore.Executor for PostgreSQL using pgx.

Single rows are written with a parameterized INSERT, bulk batches with one COPY:

	exec := pg.New(pool, pg.WithSchema("app"))
	err := exec.ExecuteInsert(ctx, row)
	n, err := exec.ExecuteBulkInsert(ctx, rows)

Identifiers are quoted with pgx.Identifier. Unique violations (SQLSTATE 23505)
are reported as errors.AlreadyExistsError. Pass a pgx.Tx instead of a pool to
run a whole commit inside the caller's transaction.
*/
package pg
