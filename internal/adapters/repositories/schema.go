package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"trip-allocation-service/internal/platform/db"
)

// Coordinates, pincode and weight are nullable: rows imported from upstream
// systems may be incomplete, and the engine reports them as malformed.
const createOrdersQuery = `
CREATE TABLE IF NOT EXISTS orders (
	order_id BIGINT PRIMARY KEY,
	latitude DOUBLE PRECISION,
	longitude DOUBLE PRECISION,
	pincode TEXT,
	total_weight_kg DOUBLE PRECISION,
	created_at BIGINT NOT NULL
);
`

const createOrdersIndexQuery = `
CREATE INDEX IF NOT EXISTS idx_orders_created_at
ON orders(created_at);
`

const createAllocationCacheQuery = `
CREATE TABLE IF NOT EXISTS allocation_cache (
	cache_key TEXT PRIMARY KEY,
	payload TEXT NOT NULL,
	expires_at BIGINT NOT NULL
);
`

// Create the orders and allocation_cache tables if they do not exist.
func InitSchema(ctx context.Context, conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	statements := []string{
		createOrdersQuery,
		createOrdersIndexQuery,
		createAllocationCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// One row of the seed file.
type OrderSeed struct {
	OrderID       int64     `json:"order_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Pincode       string    `json:"pincode"`
	TotalWeightKg float64   `json:"total_weight_kg"`
	CreatedAt     time.Time `json:"created_at"`
}

// Upsert orders from a JSON file. Seeds without created_at are stamped with now.
func SeedFromJSON(ctx context.Context, conn *sql.DB, dialect db.Dialect, jsonPath string, now time.Time) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var data []OrderSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed orders: parse json: %w", err)
	}

	return InsertOrders(ctx, conn, dialect, data, now)
}

// Upsert the given orders in a single transaction.
func InsertOrders(ctx context.Context, conn *sql.DB, dialect db.Dialect, seeds []OrderSeed, now time.Time) error {
	if conn == nil {
		return errors.New("seed orders: DB is nil")
	}

	for i, s := range seeds {
		if s.OrderID <= 0 {
			return fmt.Errorf("seed orders: invalid order_id at index %d: %d", i+1, s.OrderID)
		}
		if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
			return fmt.Errorf("seed orders: order_id=%d: coordinates out of range", s.OrderID)
		}
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed orders: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, dialect.Rebind(`
	INSERT INTO orders (
		order_id,
		latitude,
		longitude,
		pincode,
		total_weight_kg,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (order_id) DO UPDATE
	SET latitude = excluded.latitude,
		longitude = excluded.longitude,
		pincode = excluded.pincode,
		total_weight_kg = excluded.total_weight_kg,
		created_at = excluded.created_at;
	`))
	if err != nil {
		return fmt.Errorf("seed orders: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range seeds {
		created := s.CreatedAt
		if created.IsZero() {
			created = now
		}
		if _, err := stmt.ExecContext(ctx, s.OrderID, s.Latitude, s.Longitude, s.Pincode, s.TotalWeightKg, created.Unix()); err != nil {
			return fmt.Errorf("seed orders: insert order_id=%d: %w", s.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed orders: commit tx: %w", err)
	}

	return nil
}
