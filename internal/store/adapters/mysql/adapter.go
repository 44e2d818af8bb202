// Package mysql implementa los repositorios del catálogo sobre MySQL.
// Usa database/sql con github.com/go-sql-driver/mysql.
//
// Los ids de dominio son strings; acá se mapean a BIGINT AUTO_INCREMENT
// (forma decimal). Las membresías producto-categoría viven en la tabla
// de unión product_categories, así que los nombres de categoría leídos
// vía JOIN siempre son los autoritativos: no existen copias embebidas
// que reescribir.
//
// Requisitos:
//   - MySQL 8.0+
//   - DSN con parseTime=true para que DATETIME se escanee a time.Time
//     Ejemplo: user:password@tcp(localhost:3306)/mercadito?parseTime=true
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

// Config configura la conexión MySQL.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open abre la conexión, ajusta el pool, verifica conectividad y
// aplica las migraciones embebidas (todas idempotentes, CREATE TABLE
// IF NOT EXISTS).
func Open(ctx context.Context, cfg Config) (*Conn, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}

	// Pool de conexiones
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(10)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		db.SetMaxIdleConns(2)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	} else {
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql: ping failed: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Conn{db: db}, nil
}

// Conn representa una conexión activa a MySQL con sus repositorios.
type Conn struct {
	db *sql.DB
}

func (c *Conn) Name() string { return "mysql" }

func (c *Conn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Conn) Close() error {
	return c.db.Close()
}

// Stats expone las estadísticas del pool para el collector de métricas.
func (c *Conn) Stats() sql.DBStats {
	return c.db.Stats()
}

func (c *Conn) Categories() repository.CategoryRepository {
	return &categoryRepo{db: c.db}
}

func (c *Conn) Products() repository.ProductRepository {
	return &productRepo{db: c.db}
}

func (c *Conn) Sellers() repository.SellerRepository {
	return &sellerRepo{db: c.db}
}

type categoryRepo struct{ db *sql.DB }
type productRepo struct{ db *sql.DB }
type sellerRepo struct{ db *sql.DB }
