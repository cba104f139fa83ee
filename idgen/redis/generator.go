/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redis

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/entitymapper/errors"
	"github.com/suparena/entitymapper/idgen"
)

// DefaultKeyPrefix prefixes every counter key.
const DefaultKeyPrefix = "entitymapper:ids:"

// Options configures the Redis connection.
type Options struct {
	// Redis server address.
	Address string
	// Password required when connecting to the Redis server.
	Password string
	// DB to connect to.
	DB int
	// TLS config.
	TLSConfig *tls.Config
}

// DefaultOptions.
func DefaultOptions() Options {
	return Options{
		Address: "localhost:6379",
	}
}

// Incrementer is the subset of the Redis client used by the generator.
type Incrementer interface {
	IncrBy(ctx context.Context, key string, value int64) *redis.IntCmd
}

// RedisGenerator implements idgen.Generator with INCRBY on one key per entity key.
type RedisGenerator struct {
	client Incrementer
	prefix string
}

// New constructs a generator over an existing client.
func New(client Incrementer, prefix string) *RedisGenerator {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisGenerator{client: client, prefix: prefix}
}

// NewRedisGenerator opens a client with options. The caller owns closing the returned client.
func NewRedisGenerator(options Options, prefix string) (*RedisGenerator, *redis.Client) {
	client := redis.NewClient(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB,
	})
	return New(client, prefix), client
}

// Reserve increments the counter of entityKey by count and returns the first key of the block.
func (g *RedisGenerator) Reserve(ctx context.Context, entityKey string, count int64) (int64, error) {
	proceed, err := idgen.CheckCount(entityKey, count)
	if err != nil || !proceed {
		return 0, err
	}

	last, err := g.client.IncrBy(ctx, g.prefix+entityKey, count).Result()
	if err != nil {
		return 0, errors.NewGenerationError(entityKey, count, fmt.Errorf("INCRBY failed: %w", err))
	}
	return idgen.BlockFromLast(last, count).Start, nil
}
