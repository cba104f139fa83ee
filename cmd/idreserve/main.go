/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command idreserve reserves a block of surrogate keys from the configured id
// store and prints the range. It is used to provision keys for data loaded
// outside entitymapper.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/suparena/entitymapper"
	"github.com/suparena/entitymapper/config"
	"github.com/suparena/entitymapper/internal/bootstrap"
	"github.com/suparena/entitymapper/internal/logging"
	"github.com/suparena/entitymapper/storagemodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configPath  = flag.String("config", "", "Path to a YAML configuration file")
	entity      = flag.String("entity", "", "Entity key whose counter is advanced")
	count       = flag.Int64("count", 1, "Number of keys to reserve")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := entitymapper.GetVersionInfo()
		fmt.Printf("EntityMapper idreserve version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *entity == "" || *count < 1 {
		fmt.Fprintln(os.Stderr, "usage: idreserve -entity <name> [-count n] [-config file]")
		os.Exit(2)
	}

	cfg := config.MustLoad(*configPath)
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger := logging.WithFields("entity", *entity, "count", *count)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("reservation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	components, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer components.Close()

	start, err := components.Generator.Reserve(ctx, *entity, *count)
	if err != nil {
		return err
	}
	block := storagemodels.KeyBlock{Start: start, Count: *count}

	logger.Info("keys reserved",
		"id_store", cfg.IDStore.Backend,
		"start", block.Start,
		"end", block.End()-1)
	fmt.Printf("%s %d %d\n", *entity, block.Start, block.End()-1)
	return nil
}
