// seed borra y resiembra los fixtures del catálogo en todos los
// backends configurados. Lo mismo que hace el servicio al arrancar con
// seed.on_start, pero como binario suelto para resetear datos sin
// levantar el server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/observability/logger"
	"github.com/dropDatabas3/mercadito/internal/seed"
	"github.com/dropDatabas3/mercadito/internal/store"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/mongo"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/mysql"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH)")
		flagTimeout    = flag.Duration("timeout", 30*time.Second, "tiempo máximo para la resiembra completa")
	)
	flag.Parse()

	// .env (opcional) - prioridad .env.dev > .env
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.dev")

	cfg, err := loadConfig(*flagConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "mercadito-seed"})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout)
	defer cancel()

	dal, err := store.Open(ctx, store.Config{
		MySQL: mysql.Config{
			DSN:             cfg.Storage.MySQL.DSN,
			MaxOpenConns:    cfg.Storage.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQLConnMaxLifetime(),
			ConnMaxIdleTime: cfg.MySQLConnMaxIdleTime(),
		},
		Mongo: mongo.Config{
			URI:            cfg.Storage.Mongo.URI,
			Database:       cfg.Storage.Mongo.Database,
			ConnectTimeout: cfg.MongoConnectTimeout(),
		},
	})
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer func() { _ = dal.Close() }()

	if err := seed.New(dal).Run(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	fmt.Println()
	fmt.Println("Seed listo ✅")
	fmt.Println("--------------------------------------------------")
	for _, name := range dal.Backends() {
		b, err := dal.ForBackend(name)
		if err != nil {
			continue
		}
		sellers, _ := b.Sellers().List(ctx)
		categories, _ := b.Categories().List(ctx)
		products, _ := b.Products().List(ctx)
		fmt.Printf("%-8s sellers=%d categories=%d products=%d\n",
			name, len(sellers), len(categories), len(products))
	}
	fmt.Println("--------------------------------------------------")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("configs/config.yaml"); err == nil {
			path = "configs/config.yaml"
		} else {
			return config.FromEnv()
		}
	}
	return config.Load(path)
}
