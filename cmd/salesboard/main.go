package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	corecfg "github.com/aevon-lab/salesboard/internal/core/config"
	"github.com/aevon-lab/salesboard/internal/core/storage"
	"github.com/aevon-lab/salesboard/internal/core/storage/columnar"
	"github.com/aevon-lab/salesboard/internal/core/storage/csvfile"
	"github.com/aevon-lab/salesboard/internal/core/storage/sqlstore"
	"github.com/aevon-lab/salesboard/internal/geo"
	"github.com/aevon-lab/salesboard/internal/migrations"
	"github.com/aevon-lab/salesboard/internal/projection"
	"github.com/aevon-lab/salesboard/internal/server"
	"github.com/aevon-lab/salesboard/internal/store"
)

func main() {
	configPath := flag.String("config", "salesboard.yaml", "Path to configuration file")
	flag.Parse()

	_ = godotenv.Load()

	// 0. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 1. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)
	slog.Info("Loaded config", "config", cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Open the record source
	src, db, err := openSource(cfg)
	if err != nil {
		slog.Error("Failed to open record source", "type", cfg.Source.Type, "error", err)
		os.Exit(1)
	}
	if closer, ok := src.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// 3. Load the record store once; it is read-only from here on
	st, err := store.Load(ctx, src, cfg.Source.ExcludedRegions)
	if err != nil {
		slog.Error("Failed to load sales records", "error", err)
		os.Exit(1)
	}

	// 4. Initialize boundary lookup (optional)
	var resolver geo.BoundaryResolver
	if cfg.Geo.Enabled {
		aliases, err := geo.LoadAliases(cfg.Geo.AliasesFile)
		if err != nil {
			slog.Error("Failed to load region aliases", "error", err)
			os.Exit(1)
		}
		resolver = geo.NewHTTPResolver(cfg.Geo.URL, cfg.Geo.FeatureKey, cfg.Geo.Timeout, aliases)
		slog.Info("Boundary lookup enabled", "url", cfg.Geo.URL, "feature_key", cfg.Geo.FeatureKey, "aliases", len(aliases))
	} else {
		slog.Info("Boundary lookup disabled by config")
	}

	// 5. Initialize Projection (query API)
	formatter := projection.NewFormatter(cfg.Report.LanguageTag(), cfg.Report.CurrencySymbol, cfg.Report.EmptyPlaceholder)
	projectionSvc := projection.NewService(st, projection.Options{
		TopCategories: cfg.Report.TopCategories,
		Percentile:    cfg.Report.Percentile,
		MaxPageSize:   cfg.Report.MaxPageSize,
	}, formatter, resolver)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), cfg.Server.Mode, st, db)
	projectionSvc.RegisterRoutes(srv.Engine)

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openSource builds the configured record source. For SQL sources it also
// runs migrations and returns the adapter as the health checker.
func openSource(cfg *corecfg.Config) (storage.RecordSource, server.HealthChecker, error) {
	if cfg.Source.IsSQL() {
		return openSQLSource(cfg)
	}

	switch cfg.Source.Type {
	case corecfg.SourceParquet:
		return columnar.NewSource(cfg.Source.Path, cfg.Source.Columns), nil, nil
	case corecfg.SourceCSV:
		return csvfile.NewSource(cfg.Source.Path, cfg.Source.Columns, cfg.Source.DelimiterRune()), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source type %q", cfg.Source.Type)
	}
}

func openSQLSource(cfg *corecfg.Config) (storage.RecordSource, server.HealthChecker, error) {
	db, err := sqlstore.Open(cfg.Source.Type, cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunMigrations(db, cfg.Source.Type, cfg.Database.AutoMigrate); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	adapter, err := sqlstore.NewAdapterFromDB(db, cfg.Source.Type)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return adapter, adapter, nil
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
