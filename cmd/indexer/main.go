// Command indexer copies the remote catalog into the search_snapshots table the
// API builds its search index from. Run it on a schedule (cron, k8s CronJob).
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"sofadeal/config"
	"sofadeal/internal/indexer"
	"sofadeal/internal/pkg/catalogapi"
	"sofadeal/internal/pkg/database"
	"sofadeal/internal/pkg/logger"
	"sofadeal/internal/repository/searchrepo"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, using the process environment")
	}

	var timeout time.Duration
	var logLevel string
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "abort the sync after this long")
	flag.StringVar(&logLevel, "log-level", os.Getenv("LOG_LEVEL"), "debug, info, warn or error")
	flag.Parse()

	logg := logger.NewLogger(logLevel)
	dbCfg := config.LoadDatabaseConfig()
	catCfg := config.LoadCatalogConfig()

	db, err := database.NewPostgresDB(dbCfg.URL, dbCfg.Timeout, database.PoolConfig{MaxOpenConns: 4, MaxIdleConns: 2})
	if err != nil {
		logg.Fatal("Failed to connect to the database.", err)
	}
	defer db.Close()

	client, err := catalogapi.NewClient(catalogapi.ClientConfig{
		BaseURL: catCfg.URL,
		Token:   catCfg.Token,
		Timeout: catCfg.Timeout,
		Strict:  catCfg.Strict,
	}, logg)
	if err != nil {
		logg.Fatal("Invalid catalog API configuration.", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	store := searchrepo.NewSnapshotRepository(db, dbCfg.Timeout, logg)
	if _, err := indexer.New(client, store, logg).Sync(ctx); err != nil {
		logg.Error("Catalog sync failed.", err)
		os.Exit(1)
	}
}
