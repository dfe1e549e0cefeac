package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/utafrali/CatalogGo/internal/config"
	"github.com/utafrali/CatalogGo/internal/event"
	"github.com/utafrali/CatalogGo/internal/repository/postgres"
	esengine "github.com/utafrali/CatalogGo/internal/search/elasticsearch"
	"github.com/utafrali/CatalogGo/internal/service"
	"github.com/utafrali/CatalogGo/pkg/database"
	"github.com/utafrali/CatalogGo/pkg/logger"
)

func main() {
	indexName := flag.String("index", esengine.DefaultIndexName, "target Elasticsearch index")
	recreate := flag.Bool("recreate", false, "drop and recreate the index before indexing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("catalog-indexer", cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, &database.PostgresConfig{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		DBName:   cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSLMode,
	}, log)
	if err != nil {
		log.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	engine, err := esengine.New(cfg.ElasticsearchURL, *indexName, log)
	if err != nil {
		log.Error("failed to create elasticsearch engine", slog.String("error", err.Error()))
		os.Exit(1)
	}

	catalog := service.NewCatalogService(
		postgres.NewProductRepository(pool),
		postgres.NewBrandRepository(pool),
		postgres.NewCategoryRepository(pool),
		postgres.NewUnitRepository(pool),
		engine,
		event.NewProducer(nil, log),
		log,
	)
	catalog.SetBatchSizes(cfg.ReindexBatchSize, cfg.BulkBatchSize)

	fmt.Printf("Indexing products into %q (recreate=%v)...\n", *indexName, *recreate)

	result, err := catalog.Reindex(ctx, *recreate)
	if err != nil {
		log.Error("reindex failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Done: %d of %d products indexed in %d bulk requests.\n",
		result.Indexed, result.Total, result.Flushes)
	if result.Failed > 0 {
		fmt.Printf("%d documents failed:\n", result.Failed)
		for _, itemErr := range result.Errors {
			fmt.Printf("  %s\n", itemErr)
		}
		os.Exit(1)
	}
}
