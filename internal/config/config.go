package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"trip-allocation-service/internal/platform/db"
	"trip-allocation-service/internal/platform/obs"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Runtime settings for the server and the db tool.
type Config struct {
	Port        string
	Dialect     db.Dialect
	DBPath      string
	DatabaseURL string
	SeedPath    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	DefaultCapacityKg  float64
	OrderFetchLimit    int
	OrderLookbackDays  int
	MaxParallelBatches int

	LogLevel obs.Level
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		obs.Infof("msg=%q", "no .env file found, using environment variables")
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	var errs []error

	dialect, err := db.ParseDialect(Get("DB_DRIVER", string(db.SQLite)))
	if err != nil {
		errs = append(errs, err)
	}

	level, err := obs.ParseLevel(Get("LOG_LEVEL", "info"))
	if err != nil {
		errs = append(errs, err)
	}

	cfg := Config{
		Port:          Get("PORT", "8080"),
		Dialect:       dialect,
		DBPath:        Get("DB_PATH", "data/app.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		SeedPath:      Get("SEED_PATH", "data/seeds/orders.json"),
		RedisAddr:     Get("REDIS_ADDR", ""),
		RedisPassword: Get("REDIS_PASSWORD", ""),
		LogLevel:      level,
	}

	cfg.RedisDB = getInt("REDIS_DB", 0, &errs)
	cfg.CacheTTL = getDuration("CACHE_TTL", 10*time.Minute, &errs)
	cfg.DefaultCapacityKg = getFloat("DEFAULT_VEHICLE_CAPACITY_KG", 100, &errs)
	cfg.OrderFetchLimit = getInt("ORDER_FETCH_LIMIT", 1000, &errs)
	cfg.OrderLookbackDays = getInt("ORDER_LOOKBACK_DAYS", 60, &errs)
	cfg.MaxParallelBatches = getInt("MAX_PARALLEL_BATCHES", 4, &errs)

	if len(errs) == 0 {
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// DSN returns the connection string for the configured dialect.
func (c Config) DSN() string {
	if c.Dialect == db.Postgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c Config) Validate() error {
	var errs []error

	if c.Dialect == db.Postgres && c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required when DB_DRIVER=pgx"))
	}
	if !(c.DefaultCapacityKg > 0) || math.IsInf(c.DefaultCapacityKg, 0) {
		errs = append(errs, fmt.Errorf("DEFAULT_VEHICLE_CAPACITY_KG must be a finite number > 0, got %v", c.DefaultCapacityKg))
	}
	if c.OrderFetchLimit < 1 {
		errs = append(errs, fmt.Errorf("ORDER_FETCH_LIMIT must be >= 1, got %d", c.OrderFetchLimit))
	}
	if c.OrderLookbackDays < 1 {
		errs = append(errs, fmt.Errorf("ORDER_LOOKBACK_DAYS must be >= 1, got %d", c.OrderLookbackDays))
	}
	if c.MaxParallelBatches < 1 {
		errs = append(errs, fmt.Errorf("MAX_PARALLEL_BATCHES must be >= 1, got %d", c.MaxParallelBatches))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL))
	}

	return errors.Join(errs...)
}

// String renders the config for startup logs with secrets masked.
func (c Config) String() string {
	return fmt.Sprintf(
		"port=%s db_driver=%s dsn=%s redis_addr=%q redis_password=%s cache_ttl=%s default_capacity_kg=%.2f fetch_limit=%d lookback_days=%d max_parallel_batches=%d log_level=%s",
		c.Port, c.Dialect, maskDSN(c.DSN()), c.RedisAddr, mask(c.RedisPassword), c.CacheTTL,
		c.DefaultCapacityKg, c.OrderFetchLimit, c.OrderLookbackDays, c.MaxParallelBatches, c.LogLevel,
	)
}

func mask(s string) string {
	if s == "" {
		return `""`
	}
	return "****"
}

// Hides the password part of user:password@host URLs.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	scheme := strings.Index(dsn, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return dsn
	}
	creds := dsn[scheme+3 : at]
	if colon := strings.Index(creds, ":"); colon >= 0 {
		creds = creds[:colon] + ":****"
	}
	return dsn[:scheme+3] + creds + dsn[at:]
}

func getInt(key string, fallback int, errs *[]error) int {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64, errs *[]error) float64 {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a number", key, raw))
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, raw))
		return fallback
	}
	return v
}
