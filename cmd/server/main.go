package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"trip-allocation-service/internal/adapters/cache"
	"trip-allocation-service/internal/adapters/repositories"
	"trip-allocation-service/internal/api"
	"trip-allocation-service/internal/config"
	"trip-allocation-service/internal/platform/db"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis or SQL cache) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	obs.SetLevel(cfg.LogLevel)
	obs.Infof("msg=%q %s", "starting trip allocation service", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.OpenDialect(cfg.Dialect, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// SQLite is the local setup: create the schema and load demo orders on startup.
	if cfg.Dialect == db.SQLite {
		if err := initAndSeed(ctx, conn, cfg); err != nil {
			log.Fatal(err)
		}
	}

	allocCache, closeCache, err := newCache(ctx, conn, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	repo := repositories.NewSQLOrderRepository(conn, cfg.Dialect)
	router := api.NewRouter(repo, allocCache, api.Defaults{
		VehicleCapacityKg:  cfg.DefaultCapacityKg,
		LookbackDays:       cfg.OrderLookbackDays,
		FetchLimit:         cfg.OrderFetchLimit,
		MaxParallelBatches: cfg.MaxParallelBatches,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			obs.Errorf("op=server.Shutdown err=%q", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// newCache picks Redis when REDIS_ADDR is set and falls back to the
// allocation_cache table otherwise.
func newCache(ctx context.Context, conn *sql.DB, cfg config.Config) (ports.AllocationCache, func(), error) {
	if cfg.RedisAddr == "" {
		c := cache.NewSQLAllocationCache(conn, cfg.Dialect, cfg.CacheTTL)
		if n, err := c.Purge(ctx); err != nil {
			obs.Warnf("op=cache.Purge err=%q", err)
		} else if n > 0 {
			obs.Infof("op=cache.Purge removed=%d", n)
		}
		return c, func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, fmt.Errorf("new cache: %w", err)
	}
	return cache.NewRedisAllocationCache(client, cfg.CacheTTL), func() { client.Close() }, nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, cfg config.Config) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(ctx, conn, cfg.Dialect, cfg.SeedPath, time.Now()); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
