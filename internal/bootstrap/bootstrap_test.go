/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/suparena/entitymapper/config"
	storeddb "github.com/suparena/entitymapper/datastore/ddb"
	storemock "github.com/suparena/entitymapper/datastore/mock"
	idddb "github.com/suparena/entitymapper/idgen/ddb"
	idmock "github.com/suparena/entitymapper/idgen/mock"
	idredis "github.com/suparena/entitymapper/idgen/redis"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestBuildMemory(t *testing.T) {
	cfg := config.DefaultConfig()
	c, err := Build(context.Background(), &cfg, quiet)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer c.Close()

	if _, ok := c.Generator.(*idmock.Generator); !ok {
		t.Errorf("Expected in-memory generator, got %T", c.Generator)
	}
	if _, ok := c.Executor.(*storemock.DataStore); !ok {
		t.Errorf("Expected in-memory executor, got %T", c.Executor)
	}

	start, err := c.Generator.Reserve(context.Background(), "people", 3)
	if err != nil || start != 1 {
		t.Errorf("Expected block starting at 1, got %d (%v)", start, err)
	}
}

func TestBuildDynamoDB(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.IDStore.Backend = config.BackendDynamoDB
	cfg.Storage.Backend = config.BackendDynamoDB
	cfg.Storage.Table = "app-table"
	cfg.Storage.IndexMaps = map[string]map[string]string{"people": {"PK": "PERSON#{Id}"}}
	cfg.AWS = config.AWSConfig{Region: "eu-central-1", AccessKey: "test", SecretKey: "test"}

	c, err := Build(context.Background(), &cfg, quiet)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer c.Close()

	if _, ok := c.Generator.(*idddb.DynamodbGenerator); !ok {
		t.Errorf("Expected DynamoDB generator, got %T", c.Generator)
	}
	if _, ok := c.Executor.(*storeddb.DynamodbExecutor); !ok {
		t.Errorf("Expected DynamoDB executor, got %T", c.Executor)
	}
}

func TestBuildRedis(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.IDStore.Backend = config.BackendRedis

	c, err := Build(context.Background(), &cfg, quiet)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if _, ok := c.Generator.(*idredis.RedisGenerator); !ok {
		t.Errorf("Expected Redis generator, got %T", c.Generator)
	}
	if len(c.closers) != 1 {
		t.Errorf("Expected the redis client to be closed on Close, got %d closers", len(c.closers))
	}
	c.Close()
	if c.closers != nil {
		t.Error("Close should drop the closers")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "unknown id store",
			mutate:  func(c *config.Config) { c.IDStore.Backend = "etcd" },
			wantErr: "id store etcd",
		},
		{
			name:    "unknown storage",
			mutate:  func(c *config.Config) { c.Storage.Backend = "redis" },
			wantErr: "storage redis",
		},
		{
			name: "bad postgres url",
			mutate: func(c *config.Config) {
				c.Storage.Backend = config.BackendPostgres
				c.Postgres.URL = "postgres://%zz"
			},
			wantErr: "failed to parse database URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(&cfg)
			_, err := Build(context.Background(), &cfg, quiet)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
