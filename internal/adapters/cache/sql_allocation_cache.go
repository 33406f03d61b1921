package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-allocation-service/internal/domain"
	"trip-allocation-service/internal/platform/db"
	"trip-allocation-service/internal/platform/obs"
	"trip-allocation-service/internal/ports"
)

// SQLAllocationCache persists allocation results in the allocation_cache
// table. Used when no Redis server is configured.
type SQLAllocationCache struct {
	DB      *sql.DB
	Dialect db.Dialect
	TTL     time.Duration
	Now     func() time.Time

	stats counters
}

var _ ports.AllocationCache = (*SQLAllocationCache)(nil)

func NewSQLAllocationCache(conn *sql.DB, dialect db.Dialect, ttl time.Duration) *SQLAllocationCache {
	return &SQLAllocationCache{DB: conn, Dialect: dialect, TTL: ttl, Now: time.Now}
}

// Fetch a cached result. Expired rows count as misses.
func (s *SQLAllocationCache) Get(ctx context.Context, key string) (_ *domain.AllocationResult, _ bool, err error) {
	defer obs.Time(ctx, "allocation.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("allocation cache: db is nil")
	}

	q := s.Dialect.Rebind(`
	SELECT payload
	FROM allocation_cache
	WHERE cache_key = ?
		AND expires_at > ?;
	`)

	var payload string
	err = s.DB.QueryRowContext(ctx, q, key, s.Now().Unix()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		s.stats.misses.Inc()
		return nil, false, nil
	}
	if err != nil {
		s.stats.errors.Inc()
		return nil, false, fmt.Errorf("get allocation cache: query allocation_cache table: %w", err)
	}

	res, err := decodeResult([]byte(payload))
	if err != nil {
		s.stats.errors.Inc()
		return nil, false, fmt.Errorf("get allocation cache key=%q: %w", key, err)
	}

	s.stats.hits.Inc()
	return res, true, nil
}

// Store a result, replacing any previous entry for key.
func (s *SQLAllocationCache) Put(ctx context.Context, key string, res *domain.AllocationResult) (err error) {
	defer obs.Time(ctx, "allocation.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("allocation cache: db is nil")
	}

	b, err := encodeResult(res)
	if err != nil {
		s.stats.errors.Inc()
		return err
	}

	q := s.Dialect.Rebind(`
	INSERT INTO allocation_cache (cache_key, payload, expires_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = excluded.payload,
		expires_at = excluded.expires_at;
	`)

	expires := s.Now().Add(s.TTL).Unix()
	if _, err := s.DB.ExecContext(ctx, q, key, string(b), expires); err != nil {
		s.stats.errors.Inc()
		return fmt.Errorf("insert allocation cache key=%q: %w", key, err)
	}

	return nil
}

// Delete expired rows. Returns how many were removed.
func (s *SQLAllocationCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("allocation cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, s.Dialect.Rebind(`DELETE FROM allocation_cache WHERE expires_at <= ?;`), s.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purge allocation cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge allocation cache: rows affected: %w", err)
	}
	return n, nil
}

func (s *SQLAllocationCache) Stats() ports.CacheStats { return s.stats.snapshot() }
