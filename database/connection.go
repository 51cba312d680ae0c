package database

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lizet96/citas-backend/config"
)

//go:embed schema.sql
var schema string

// ConnectDB crea el pool de conexiones y verifica que la base de datos responda
func ConnectDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsear DATABASE_URL: %w", err)
	}
	poolConfig.MaxConns = cfg.DBMaxConns
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30
	// Simple Protocol para funcionar detrás de poolers tipo pgbouncer
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool de conexiones: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var version string
	if err := pool.QueryRow(pingCtx, "SELECT version()").Scan(&version); err != nil {
		pool.Close()
		return nil, fmt.Errorf("probar la conexión: %w", err)
	}

	log.Println("✅ Conectado exitosamente a la base de datos:", version)
	return pool, nil
}

// CloseDB cierra el pool de conexiones
func CloseDB(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		log.Println("Pool de conexiones cerrado")
	}
}

// AsegurarEsquema crea la tabla citas si todavía no existe
func AsegurarEsquema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return &StoreError{Op: "asegurar esquema", Err: err}
	}
	return nil
}

// TruncarCitas borra todas las citas y reinicia los IDs. Solo para mantenimiento.
func TruncarCitas(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE TABLE citas RESTART IDENTITY"); err != nil {
		return &StoreError{Op: "truncar citas", Err: err}
	}
	return nil
}
