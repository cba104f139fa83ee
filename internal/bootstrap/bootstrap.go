/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package bootstrap builds id generators and executors from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/suparena/entitymapper/config"
	"github.com/suparena/entitymapper/datastore"
	storeddb "github.com/suparena/entitymapper/datastore/ddb"
	storemock "github.com/suparena/entitymapper/datastore/mock"
	storepg "github.com/suparena/entitymapper/datastore/pg"
	"github.com/suparena/entitymapper/idgen"
	idddb "github.com/suparena/entitymapper/idgen/ddb"
	idmock "github.com/suparena/entitymapper/idgen/mock"
	idpg "github.com/suparena/entitymapper/idgen/pg"
	idredis "github.com/suparena/entitymapper/idgen/redis"
)

// Components are the collaborators of an entitymapper session.
type Components struct {
	Generator idgen.Generator
	Executor  datastore.Executor

	closers []func()
}

// Close releases pools and clients in reverse order of creation.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// connectors open shared clients lazily so the id store and the executor
// reuse one DynamoDB client or one pgx pool.
type connectors struct {
	cfg    *config.Config
	c      *Components
	ddb    *sdk.Client
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func (k *connectors) dynamo() (*sdk.Client, error) {
	if k.ddb != nil {
		return k.ddb, nil
	}
	client, err := storeddb.NewDynamoDBClient(k.cfg.AWS.AccessKey, k.cfg.AWS.SecretKey, k.cfg.AWS.Region, k.cfg.Storage.Table)
	if err != nil {
		return nil, err
	}
	k.ddb = client
	return client, nil
}

func (k *connectors) postgres(ctx context.Context) (*pgxpool.Pool, error) {
	if k.pool != nil {
		return k.pool, nil
	}

	poolConfig, err := pgxpool.ParseConfig(k.cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(k.cfg.Postgres.MaxConns)
	poolConfig.MinConns = int32(k.cfg.Postgres.MinConns)
	poolConfig.MaxConnLifetime = k.cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	k.logger.Info("connected to database", "max_conns", poolConfig.MaxConns)
	k.c.closers = append(k.c.closers, pool.Close)
	k.pool = pool
	return pool, nil
}

// Build creates the generator and executor selected by cfg. The caller must
// Close the result.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Components{}
	k := &connectors{cfg: cfg, c: c, logger: logger}

	gen, err := buildGenerator(ctx, k)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("id store %s: %w", cfg.IDStore.Backend, err)
	}
	exec, err := buildExecutor(ctx, k)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("storage %s: %w", cfg.Storage.Backend, err)
	}

	c.Generator = gen
	c.Executor = exec
	logger.Debug("components ready",
		"id_store", cfg.IDStore.Backend,
		"storage", cfg.Storage.Backend)
	return c, nil
}

func buildGenerator(ctx context.Context, k *connectors) (idgen.Generator, error) {
	cfg := k.cfg.IDStore
	switch cfg.Backend {
	case config.BackendMemory:
		return idmock.New(), nil
	case config.BackendDynamoDB:
		client, err := k.dynamo()
		if err != nil {
			return nil, err
		}
		return idddb.New(client, cfg.Table, idddb.WithAttributes(cfg.KeyAttribute, cfg.ValueAttribute)), nil
	case config.BackendPostgres:
		pool, err := k.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return idpg.New(pool, cfg.Table), nil
	case config.BackendRedis:
		gen, client := idredis.NewRedisGenerator(idredis.Options{
			Address:  k.cfg.Redis.Address,
			Password: k.cfg.Redis.Password,
			DB:       k.cfg.Redis.DB,
		}, cfg.Prefix)
		k.c.closers = append(k.c.closers, func() {
			if err := client.Close(); err != nil {
				k.logger.Warn("failed to close redis client", "error", err)
			}
		})
		return gen, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func buildExecutor(ctx context.Context, k *connectors) (datastore.Executor, error) {
	cfg := k.cfg.Storage
	switch cfg.Backend {
	case config.BackendMemory:
		return storemock.New(), nil
	case config.BackendDynamoDB:
		client, err := k.dynamo()
		if err != nil {
			return nil, err
		}
		opts := []storeddb.Option{storeddb.WithConditionAttribute(cfg.ConditionAttribute)}
		for entity, indexMap := range cfg.IndexMaps {
			opts = append(opts, storeddb.WithIndexMap(entity, indexMap))
		}
		return storeddb.New(client, cfg.Table, opts...), nil
	case config.BackendPostgres:
		pool, err := k.postgres(ctx)
		if err != nil {
			return nil, err
		}
		return storepg.New(pool, storepg.WithSchema(cfg.Schema)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
