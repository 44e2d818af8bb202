// migrate aplica el esquema del catálogo sobre MySQL y termina. El
// server lo hace solo al arrancar; este binario existe para preparar la
// base sin levantar el servicio ni tocar MongoDB.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/mercadito/internal/config"
	"github.com/dropDatabas3/mercadito/internal/store/adapters/mysql"
	migrations "github.com/dropDatabas3/mercadito/migrations/mysql"
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
		flagTimeout    = flag.Duration("timeout", 30*time.Second, "tiempo máximo para aplicar el esquema")
	)
	flag.Parse()

	_ = godotenv.Load(".env")

	cfg, err := loadConfig(*flagConfigPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout)
	defer cancel()

	// Open aplica las migraciones embebidas antes de retornar.
	conn, err := mysql.Open(ctx, mysql.Config{
		DSN:             cfg.Storage.MySQL.DSN,
		MaxOpenConns:    cfg.Storage.MySQL.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.MySQL.MaxIdleConns,
		ConnMaxLifetime: cfg.MySQLConnMaxLifetime(),
		ConnMaxIdleTime: cfg.MySQLConnMaxIdleTime(),
	})
	if err != nil {
		return fmt.Errorf("mysql: %w", err)
	}
	defer func() { _ = conn.Close() }()

	entries, err := fs.ReadDir(migrations.CatalogFS, migrations.CatalogDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	for _, e := range entries {
		fmt.Printf("applied %s\n", e.Name())
	}
	fmt.Println("schema listo ✅")
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
