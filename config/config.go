/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"strings"
	"time"
)

// Backend names accepted by IDStore.Backend and Storage.Backend.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds the configuration of binaries built on entitymapper.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	IDStore  IDStoreConfig  `yaml:"idStore"`
	Storage  StorageConfig  `yaml:"storage"`
	AWS      AWSConfig      `yaml:"aws"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`
	// Format is text or json. Default: text
	Format string `yaml:"format"`
}

// IDStoreConfig selects where key counters live.
type IDStoreConfig struct {
	// Backend is memory, dynamodb, postgres or redis. Default: memory
	Backend string `yaml:"backend"`
	// Table is the DynamoDB or PostgreSQL counter table.
	// Default: "entity_counters"
	Table string `yaml:"table"`
	// KeyAttribute and ValueAttribute name the DynamoDB counter attributes.
	KeyAttribute   string `yaml:"keyAttribute"`
	ValueAttribute string `yaml:"valueAttribute"`
	// Prefix is prepended to Redis counter keys. Default: "entitymapper:ids:"
	Prefix string `yaml:"prefix"`
}

// StorageConfig selects the executor rows are written to.
type StorageConfig struct {
	// Backend is memory, dynamodb or postgres. Default: memory
	Backend string `yaml:"backend"`
	// Table is the DynamoDB table holding every entity.
	Table string `yaml:"table"`
	// Schema qualifies PostgreSQL entity tables.
	Schema string `yaml:"schema"`
	// ConditionAttribute makes DynamoDB puts fail when an item with the same
	// attribute already exists.
	ConditionAttribute string `yaml:"conditionAttribute"`
	// IndexMaps holds DynamoDB key templates per entity, e.g. PK: "PERSON#{Id}".
	IndexMaps map[string]map[string]string `yaml:"indexMaps"`
}

// AWSConfig holds static credentials. Empty keys fall back to the default chain.
type AWSConfig struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
}

// PostgresConfig configures the pgx pool.
type PostgresConfig struct {
	URL             string        `yaml:"url"`
	MaxConns        int           `yaml:"maxConns"`
	MinConns        int           `yaml:"minConns"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime"`
}

// RedisConfig configures the go-redis client.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DefaultConfig returns a configuration that runs fully in memory.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		IDStore: IDStoreConfig{
			Backend:        BackendMemory,
			Table:          "entity_counters",
			KeyAttribute:   "EntityKey",
			ValueAttribute: "LastValue",
			Prefix:         "entitymapper:ids:",
		},
		Storage: StorageConfig{Backend: BackendMemory},
		AWS:     AWSConfig{Region: "us-east-1"},
		Postgres: PostgresConfig{
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
		},
		Redis: RedisConfig{Address: "localhost:6379"},
	}
}

// validate fills unset values with defaults, clamps pool sizes and rejects
// settings that cannot work together.
func (c *Config) validate() error {
	def := DefaultConfig()

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}

	c.IDStore.Backend = strings.ToLower(c.IDStore.Backend)
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.IDStore.Backend == "" {
		c.IDStore.Backend = BackendMemory
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}
	if c.IDStore.Table == "" {
		c.IDStore.Table = def.IDStore.Table
	}
	if c.IDStore.KeyAttribute == "" {
		c.IDStore.KeyAttribute = def.IDStore.KeyAttribute
	}
	if c.IDStore.ValueAttribute == "" {
		c.IDStore.ValueAttribute = def.IDStore.ValueAttribute
	}
	if c.IDStore.Prefix == "" {
		c.IDStore.Prefix = def.IDStore.Prefix
	}

	if c.Postgres.MaxConns < 1 {
		c.Postgres.MaxConns = 1
	}
	if c.Postgres.MinConns < 0 {
		c.Postgres.MinConns = 0
	}
	if c.Postgres.MinConns > c.Postgres.MaxConns {
		c.Postgres.MinConns = c.Postgres.MaxConns
	}

	var errs []string
	switch c.IDStore.Backend {
	case BackendMemory, BackendRedis:
	case BackendDynamoDB:
		if c.AWS.Region == "" {
			errs = append(errs, "aws.region is required for the dynamodb id store")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, "postgres.url is required for the postgres id store")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown idStore.backend %q", c.IDStore.Backend))
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.Storage.Table == "" {
			errs = append(errs, "storage.table is required for the dynamodb backend")
		}
		if c.AWS.Region == "" {
			errs = append(errs, "aws.region is required for the dynamodb backend")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, "postgres.url is required for the postgres backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown storage.backend %q", c.Storage.Backend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
