// Package mongo implementa los repositorios del catálogo sobre MongoDB.
// Usa el driver oficial go.mongodb.org/mongo-driver.
//
// Los ids de dominio son strings; acá se mapean a ObjectID (forma hex).
// El producto embebe el vendedor resuelto y las copias desnormalizadas
// {id, nombre} de sus categorías; la categoría guarda el arreglo de
// referencias inversas product_ids. Ninguna de esas copias la mantiene
// el almacenamiento: de eso se encarga internal/denorm.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dropDatabas3/mercadito/internal/domain/repository"
)

// Config configura la conexión MongoDB.
type Config struct {
	URI      string
	Database string

	// ConnectTimeout limita Connect+Ping. Default: 10s.
	ConnectTimeout time.Duration
}

// Open conecta el cliente, verifica conectividad y retorna la conexión.
func Open(ctx context.Context, cfg Config) (*Conn, error) {
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping failed: %w", err)
	}

	return &Conn{client: client, db: client.Database(cfg.Database)}, nil
}

// Conn representa una conexión activa a MongoDB con sus repositorios.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
}

func (c *Conn) Name() string { return "mongo" }

func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

// Close desconecta el cliente. Usa su propio timeout porque se llama
// durante el shutdown, cuando el contexto del proceso ya puede estar
// cancelado.
func (c *Conn) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *Conn) Categories() repository.CategoryRepository {
	return &categoryRepo{col: c.db.Collection("categories")}
}

func (c *Conn) Products() repository.ProductRepository {
	return &productRepo{col: c.db.Collection("products")}
}

func (c *Conn) Sellers() repository.SellerRepository {
	return &sellerRepo{col: c.db.Collection("sellers")}
}

type categoryRepo struct{ col *mongo.Collection }
type productRepo struct{ col *mongo.Collection }
type sellerRepo struct{ col *mongo.Collection }
