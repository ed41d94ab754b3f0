// Package postgres implementa los puertos de almacenamiento sobre
// PostgreSQL vía pgx, para despliegues con servidor compartido.
package postgres

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jfcasta/rutastock-api/pkg/config"
)

// NewPool crea un pool de conexiones PostgreSQL usando la configuración de
// la app y asegura el esquema.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Registrar codec para NUMERIC -> shopspring/decimal en todas las
	// conexiones del pool.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	if err := ensureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS catalog_items (
			name TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			bulk_capacity NUMERIC NOT NULL,
			bulk_unit_label TEXT NOT NULL,
			input_unit_label TEXT NOT NULL,
			sub_unit_label TEXT NOT NULL,
			conversion_factor NUMERIC NOT NULL,
			seq BIGSERIAL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS movements (
			id TEXT PRIMARY KEY,
			date DATE NOT NULL,
			vehicle_id TEXT NOT NULL,
			origin TEXT NOT NULL DEFAULT '',
			destination TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL,
			item_name TEXT NOT NULL,
			bulk_qty BIGINT NOT NULL,
			sub_qty NUMERIC NOT NULL,
			seq BIGSERIAL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, q := range queries {
		if _, err := pool.Exec(ctx, q); err != nil {
			return fmt.Errorf("init esquema: %w", err)
		}
	}
	return nil
}
