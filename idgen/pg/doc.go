/*
Package pg provides a PostgreSQL implementation of idgen.Generator on pgx/v5.

A reservation is one statement, so it is atomic with or without a surrounding
transaction:

	INSERT INTO entity_counters AS c (entity_key, last_value) VALUES ($1, $2)
	ON CONFLICT (entity_key) DO UPDATE SET last_value = c.last_value + EXCLUDED.last_value
	RETURNING last_value

Passing a pgx.Tx ties the reservation to the caller's transaction; passing the
pool reserves independently of it, which keeps the counter row lock short.
Schema returns the expected DDL for provisioning.
*/
package pg
