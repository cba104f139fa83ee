/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pg

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
)

// DefaultTable is the counter table used when none is configured.
const DefaultTable = "entity_counters"

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresGenerator implements idgen.Generator with one counter row per entity key.
type PostgresGenerator struct {
	db    DBTX
	table pgx.Identifier
	query string
}

// New constructs a generator over db. table may be schema qualified ("ids.counters").
func New(db DBTX, table string) *PostgresGenerator {
	if table == "" {
		table = DefaultTable
	}
	ident := pgx.Identifier(strings.Split(table, "."))
	return &PostgresGenerator{
		db:    db,
		table: ident,
		query: fmt.Sprintf(
			`INSERT INTO %s AS c (entity_key, last_value) VALUES ($1, $2)
ON CONFLICT (entity_key) DO UPDATE SET last_value = c.last_value + EXCLUDED.last_value
RETURNING last_value`, ident.Sanitize()),
	}
}

// Schema returns the DDL of the counter table expected by the generator.
func (g *PostgresGenerator) Schema() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    entity_key TEXT PRIMARY KEY,
    last_value BIGINT NOT NULL
)`, g.table.Sanitize())
}

// Reserve advances the counter of entityKey by count in a single upsert statement
// and returns the first key of the reserved block. The row lock taken by the upsert
// serializes concurrent reservations.
func (g *PostgresGenerator) Reserve(ctx context.Context, entityKey string, count int64) (int64, error) {
	proceed, err := idgen.CheckCount(entityKey, count)
	if err != nil || !proceed {
		return 0, err
	}

	var last int64
	if err := g.db.QueryRow(ctx, g.query, entityKey, count).Scan(&last); err != nil {
		return 0, errors.NewGenerationError(entityKey, count, fmt.Errorf("counter upsert: %w", err))
	}
	return idgen.BlockFromLast(last, count).Start, nil
}
