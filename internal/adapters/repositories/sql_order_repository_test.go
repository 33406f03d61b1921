package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-allocation-service/internal/platform/db"
	"trip-allocation-service/internal/ports"
)

var base = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func seedOrders(t *testing.T, conn *sql.DB) {
	t.Helper()

	seeds := []OrderSeed{
		{OrderID: 1, Latitude: 17.40, Longitude: 78.45, Pincode: "500001", TotalWeightKg: 12.5, CreatedAt: base.Add(-72 * time.Hour)},
		{OrderID: 2, Latitude: 17.41, Longitude: 78.46, Pincode: "500002", TotalWeightKg: 3, CreatedAt: base.Add(-2 * time.Hour)},
		{OrderID: 3, Latitude: 17.42, Longitude: 78.47, Pincode: "500003", TotalWeightKg: 7, CreatedAt: base.Add(-1 * time.Hour)},
	}
	require.NoError(t, InsertOrders(context.Background(), conn, db.SQLite, seeds, base))
}

func TestListOrdersNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	seedOrders(t, conn)

	repo := NewSQLOrderRepository(conn, db.SQLite)
	got, err := repo.ListOrders(context.Background(), ports.OrderQuery{})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(3), *got[0].OrderID)
	assert.Equal(t, int64(2), *got[1].OrderID)
	assert.Equal(t, int64(1), *got[2].OrderID)

	assert.Equal(t, 17.40, *got[2].Latitude)
	assert.Equal(t, "500001", *got[2].Pincode)
	assert.Equal(t, 12.5, *got[2].TotalWeightKg)
}

func TestListOrdersSinceAndLimit(t *testing.T) {
	conn := openTestDB(t)
	seedOrders(t, conn)
	repo := NewSQLOrderRepository(conn, db.SQLite)

	recent, err := repo.ListOrders(context.Background(), ports.OrderQuery{Since: base.Add(-24 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	limited, err := repo.ListOrders(context.Background(), ports.OrderQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, int64(3), *limited[0].OrderID)
}

func TestListOrdersSurfacesNullColumns(t *testing.T) {
	conn := openTestDB(t)

	_, err := conn.Exec(`INSERT INTO orders (order_id, latitude, longitude, pincode, total_weight_kg, created_at)
		VALUES (9, NULL, 78.5, NULL, 4, ?)`, base.Unix())
	require.NoError(t, err)

	got, err := NewSQLOrderRepository(conn, db.SQLite).ListOrders(context.Background(), ports.OrderQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Nil(t, rec.Latitude)
	assert.Nil(t, rec.Pincode)
	require.NotNil(t, rec.Longitude)
	assert.Equal(t, 78.5, *rec.Longitude)

	fields := rec.Check(0)
	require.Len(t, fields, 2)
	assert.Equal(t, "latitude", fields[0].Field)
	assert.Equal(t, "pincode", fields[1].Field)
}

func TestSeedFromJSONUpserts(t *testing.T) {
	conn := openTestDB(t)

	path := filepath.Join(t.TempDir(), "orders.json")
	payload := `[
		{"order_id": 5, "latitude": 17.4, "longitude": 78.4, "pincode": "500005", "total_weight_kg": 2},
		{"order_id": 6, "latitude": 17.5, "longitude": 78.5, "pincode": "500006", "total_weight_kg": 9, "created_at": "2026-03-01T08:00:00Z"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	require.NoError(t, SeedFromJSON(context.Background(), conn, db.SQLite, path, base))
	// Seeding twice must not duplicate rows.
	require.NoError(t, SeedFromJSON(context.Background(), conn, db.SQLite, path, base))

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM orders").Scan(&n))
	assert.Equal(t, 2, n)

	var created int64
	require.NoError(t, conn.QueryRow("SELECT created_at FROM orders WHERE order_id = 5").Scan(&created))
	assert.Equal(t, base.Unix(), created)
}

func TestInsertOrdersRejectsBadSeeds(t *testing.T) {
	conn := openTestDB(t)

	err := InsertOrders(context.Background(), conn, db.SQLite, []OrderSeed{{OrderID: 0}}, base)
	assert.ErrorContains(t, err, "invalid order_id")

	err = InsertOrders(context.Background(), conn, db.SQLite, []OrderSeed{{OrderID: 1, Latitude: 91}}, base)
	assert.ErrorContains(t, err, "coordinates out of range")
}
