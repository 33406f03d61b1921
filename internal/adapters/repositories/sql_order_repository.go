package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/platform/db"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/ports"
)

// SQL-backed implementation of the OrderRepository port. Works against
// SQLite and Postgres; the dialect only changes placeholder syntax.
type SQLOrderRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLOrderRepository(conn *sql.DB, dialect db.Dialect) *SQLOrderRepository {
	return &SQLOrderRepository{DB: conn, Dialect: dialect}
}

var _ ports.OrderRepository = (*SQLOrderRepository)(nil)

// Return orders created since q.Since, newest first.
func (r *SQLOrderRepository) ListOrders(ctx context.Context, q ports.OrderQuery) (_ []domain.OrderRecord, err error) {
	defer obs.Time(ctx, "orders.repo.ListOrders")(&err)

	if r.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	var (
		query strings.Builder
		args  []any
	)
	query.WriteString(`
	SELECT
		order_id,
		latitude,
		longitude,
		pincode,
		total_weight_kg
	FROM orders`)

	if !q.Since.IsZero() {
		query.WriteString("\n\tWHERE created_at >= ?")
		args = append(args, q.Since.Unix())
	}
	query.WriteString("\n\tORDER BY created_at DESC, order_id")
	if q.Limit > 0 {
		query.WriteString("\n\tLIMIT ?")
		args = append(args, q.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, r.Dialect.Rebind(query.String()), args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	records := make([]domain.OrderRecord, 0, 64)
	for rows.Next() {
		var (
			id       int64
			lat, lon sql.NullFloat64
			pincode  sql.NullString
			weight   sql.NullFloat64
		)
		if err := rows.Scan(&id, &lat, &lon, &pincode, &weight); err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}

		rec := domain.OrderRecord{OrderID: &id}
		if lat.Valid {
			rec.Latitude = &lat.Float64
		}
		if lon.Valid {
			rec.Longitude = &lon.Float64
		}
		if pincode.Valid {
			rec.Pincode = &pincode.String
		}
		if weight.Valid {
			rec.TotalWeightKg = &weight.Float64
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return records, nil
}
