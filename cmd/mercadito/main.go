// mercadito es el servicio HTTP del catálogo: categorías, productos y
// vendedores sobre MongoDB y MySQL en paralelo, con el backend elegido
// por request.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/mercadito/internal/app"
	"github.com/dropDatabas3/mercadito/internal/config"
	httpserver "github.com/dropDatabas3/mercadito/internal/http"
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
		flagConfigPath = flag.String("config", "", "ruta a config.yaml (fallback: $CONFIG_PATH o configs/config.yaml)")
		flagEnvOnly    = flag.Bool("env", false, "usar SOLO env (y .env si existe)")
		flagEnvFile    = flag.String("env-file", ".env", "ruta a .env (si existe, se carga)")
	)
	flag.Parse()

	if *flagEnvFile != "" && fileExists(*flagEnvFile) {
		if err := godotenv.Load(*flagEnvFile); err == nil {
			fmt.Printf("dotenv: cargado %s\n", *flagEnvFile)
		}
	}

	cfg, err := loadConfig(*flagConfigPath, *flagEnvOnly)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Service})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	ctx := context.Background()

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
	defer func() {
		if cerr := dal.Close(); cerr != nil {
			log.Warn("store close", logger.Err(cerr))
		}
	}()

	if cfg.Seed.OnStart {
		if err := seed.New(dal).Run(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	// El collector de pool necesita la conexión concreta, no la interfaz.
	var mysqlStats func() sql.DBStats
	if b, err := dal.ForBackend("mysql"); err == nil {
		if conn, ok := b.(*mysql.Conn); ok {
			mysqlStats = conn.Stats
		}
	}

	application, err := app.New(cfg, app.Deps{DAL: dal, MySQLStats: mysqlStats})
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	log.Info("mercadito up",
		logger.String("addr", cfg.Server.Addr),
		logger.Any("backends", dal.Backends()),
		logger.Any("metrics", cfg.Metrics.Enabled),
		logger.Any("seed", cfg.Seed.OnStart),
	)

	return httpserver.NewServer(cfg.Server.Addr, application.Handler).Run(cfg.ShutdownTimeout())
}

// loadConfig resuelve el modo de configuración: env puro, o YAML con
// overrides de entorno. Sin -config ni $CONFIG_PATH busca el archivo
// por convención y cae a env puro si no existe.
func loadConfig(path string, envOnly bool) (*config.Config, error) {
	if envOnly {
		return config.FromEnv()
	}
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if fileExists("configs/config.yaml") {
			path = "configs/config.yaml"
		} else {
			return config.FromEnv()
		}
	}
	return config.Load(path)
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
