package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"frylyle/internal/common/config"
)

// PostgresDriver keeps device state in a session_kv table so a fleet of
// storefront instances can share it.
type PostgresDriver struct {
	pool *pgxpool.Pool
}

func NewPostgresDriver(ctx context.Context, cfg config.Database) (*PostgresDriver, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode, cfg.MaxConns)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgx ping: %w", err)
	}
	d := &PostgresDriver{pool: pool}
	if err := d.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return d, nil
}

func (d *PostgresDriver) ensureSchema(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS session_kv (
			device_id  TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (device_id, key)
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure session_kv schema: %w", err)
	}
	return nil
}

func (d *PostgresDriver) Get(ctx context.Context, device, key string) (string, error) {
	var v string
	err := d.pool.QueryRow(ctx,
		`SELECT value FROM session_kv WHERE device_id = $1 AND key = $2`,
		device, key,
	).Scan(&v)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("session_kv select: %w", err)
	}
	return v, nil
}

func (d *PostgresDriver) Set(ctx context.Context, device, key, value string) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO session_kv (device_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (device_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, device, key, value)
	if err != nil {
		return fmt.Errorf("session_kv upsert: %w", err)
	}
	return nil
}

func (d *PostgresDriver) Delete(ctx context.Context, device, key string) error {
	_, err := d.pool.Exec(ctx,
		`DELETE FROM session_kv WHERE device_id = $1 AND key = $2`,
		device, key,
	)
	if err != nil {
		return fmt.Errorf("session_kv delete: %w", err)
	}
	return nil
}

func (d *PostgresDriver) Close() { d.pool.Close() }
