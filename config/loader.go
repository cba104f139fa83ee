/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ENTITYMAPPER_"

// Load builds the configuration from defaults, the YAML file at path (optional),
// a .env file in the working directory (optional) and environment overrides,
// in increasing order of precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config load: .env: %w", err)
		}
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config load: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return nil, fmt.Errorf("config load %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad loads configuration and panics on error.
// Use this only in main() where early termination is desired.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

// decode parses YAML over cfg, rejecting unknown keys.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return err
	}
	return nil
}

type lookupFunc func(string) (string, bool)

// applyEnv overrides cfg with environment variables. The AWS variables keep
// the names used by existing deployments.
func applyEnv(cfg *Config, lookup lookupFunc) error {
	strs := map[string]*string{
		EnvPrefix + "LOG_LEVEL":       &cfg.Logging.Level,
		EnvPrefix + "LOG_FORMAT":      &cfg.Logging.Format,
		EnvPrefix + "IDSTORE_BACKEND": &cfg.IDStore.Backend,
		EnvPrefix + "IDSTORE_TABLE":   &cfg.IDStore.Table,
		EnvPrefix + "IDSTORE_PREFIX":  &cfg.IDStore.Prefix,
		EnvPrefix + "STORAGE_BACKEND": &cfg.Storage.Backend,
		EnvPrefix + "STORAGE_SCHEMA":  &cfg.Storage.Schema,
		EnvPrefix + "DATABASE_URL":    &cfg.Postgres.URL,
		EnvPrefix + "REDIS_ADDRESS":   &cfg.Redis.Address,
		EnvPrefix + "REDIS_PASSWORD":  &cfg.Redis.Password,

		"AWS_ACCESS_KEY": &cfg.AWS.AccessKey,
		"AWS_SECRET_KEY": &cfg.AWS.SecretKey,
		"AWS_REGION":     &cfg.AWS.Region,
		"AWS_DDB_TABLE":  &cfg.Storage.Table,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		EnvPrefix + "REDIS_DB":           &cfg.Redis.DB,
		EnvPrefix + "DATABASE_MAX_CONNS": &cfg.Postgres.MaxConns,
		EnvPrefix + "DATABASE_MIN_CONNS": &cfg.Postgres.MinConns,
	}
	for name, dst := range ints {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, v, err)
		}
		*dst = n
	}
	return nil
}
