package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog/log"

	appconfig "github.com/Almas2004/led/internal/config"
)

const (
	defaultAttempts = 5
	defaultBackoff  = 500 * time.Millisecond
	maxBackoff      = 5 * time.Second
	pingTimeout     = 5 * time.Second
)

// sleep is replaced in tests.
var sleep = time.Sleep

// retryPolicy is the startup retry loop read from DatabaseConfig. Zero
// values fall back to the defaults.
type retryPolicy struct {
	attempts int
	backoff  time.Duration
}

func policyFor(cfg *appconfig.DatabaseConfig) retryPolicy {
	p := retryPolicy{attempts: cfg.ConnectAttempts, backoff: cfg.ConnectBackoff}
	if p.attempts < 1 {
		p.attempts = defaultAttempts
	}
	if p.backoff <= 0 {
		p.backoff = defaultBackoff
	}
	return p
}

// delay returns backoff * 2^(attempt-1), capped at maxBackoff.
func (p retryPolicy) delay(attempt int) time.Duration {
	d := p.backoff
	for i := 1; i < attempt && d < maxBackoff; i++ {
		d *= 2
	}
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

// Connect opens the pooled PostgreSQL handle and pings it, retrying per
// cfg.ConnectAttempts and cfg.ConnectBackoff while the database starts up.
func Connect(cfg *appconfig.DatabaseConfig) (*sqlx.DB, error) {
	if cfg == nil {
		return nil, errors.New("nil database config")
	}

	dsn := DSN(cfg)
	policy := policyFor(cfg)

	var lastErr error
	for attempt := 1; attempt <= policy.attempts; attempt++ {
		var db *sqlx.DB
		if db, lastErr = open(dsn, cfg); lastErr == nil {
			return db, nil
		}
		if attempt == policy.attempts {
			break
		}
		wait := policy.delay(attempt)
		log.Warn().Err(lastErr).Int("attempt", attempt).Dur("retry_in", wait).Msg("Database not ready")
		sleep(wait)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", policy.attempts, lastErr)
}

func open(dsn string, cfg *appconfig.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	applyPool(db, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// DSN builds the connection string. DATABASE_URL wins when set.
func DSN(cfg *appconfig.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)
}

func applyPool(db *sqlx.DB, cfg *appconfig.DatabaseConfig) {
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	if maxIdle <= 0 {
		maxIdle = 5
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
}
