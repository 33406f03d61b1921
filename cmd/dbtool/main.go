package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"trip-allocation-service/internal/adapters/cache"
	"trip-allocation-service/internal/adapters/repositories"
	"trip-allocation-service/internal/config"
	"trip-allocation-service/internal/platform/db"
)

// dbtool prepares a database for the service: schema, seed orders and
// expired cache cleanup.
func main() {
	seed := flag.Bool("seed", true, "load orders from SEED_PATH after creating the schema")
	purge := flag.Bool("purge-cache", false, "delete expired allocation_cache rows")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.OpenDialect(cfg.Dialect, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()
	seedPath := config.Get("SEED_PATH", cfg.SeedPath)
	if err := initAndSeed(ctx, conn, cfg.Dialect, seedPath, *seed); err != nil {
		log.Fatal(err)
	}

	if *purge {
		n, err := cache.NewSQLAllocationCache(conn, cfg.Dialect, cfg.CacheTTL).Purge(ctx)
		if err != nil {
			log.Fatalf("purge failed: %v", err)
		}
		log.Printf("Purged %d expired cache rows.", n)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, dialect db.Dialect, seedPath string, seed bool) error {
	log.Printf("Initializing database schema driver=%s...", dialect)
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if !seed {
		return nil
	}

	log.Printf("Seeding database from %s...", seedPath)
	if err := repositories.SeedFromJSON(ctx, conn, dialect, seedPath, time.Now()); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")

	return nil
}
