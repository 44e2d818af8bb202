package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("escribiendo yaml temporal: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	// YAML mínimo: todo lo no declarado conserva el default.
	path := writeYAML(t, "app:\n  env: prod\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.App.Env != "prod" {
		t.Fatalf("App.Env = %q, esperaba prod", c.App.Env)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("Server.Addr = %q, esperaba default :8080", c.Server.Addr)
	}
	if !c.Seed.OnStart {
		t.Fatal("Seed.OnStart debería defaultear a true")
	}
	if got := c.MongoConnectTimeout(); got != 10*time.Second {
		t.Fatalf("MongoConnectTimeout = %v, esperaba 10s", got)
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeYAML(t, `
server:
  addr: ":9090"
  cors_allowed_origins: ["https://tienda.example.com"]
storage:
  mysql:
    dsn: "app:secret@tcp(db:3306)/catalogo?parseTime=true"
  mongo:
    database: catalogo
seed:
  on_start: false
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Server.Addr != ":9090" {
		t.Fatalf("Server.Addr = %q", c.Server.Addr)
	}
	if len(c.Server.CORSAllowedOrigins) != 1 {
		t.Fatalf("CORSAllowedOrigins = %v", c.Server.CORSAllowedOrigins)
	}
	if c.Storage.Mongo.Database != "catalogo" {
		t.Fatalf("Mongo.Database = %q", c.Storage.Mongo.Database)
	}
	// on_start: false explícito pisa el default true.
	if c.Seed.OnStart {
		t.Fatal("Seed.OnStart debería ser false")
	}
	// El URI de mongo no fue declarado: default.
	if c.Storage.Mongo.URI != "mongodb://localhost:27017" {
		t.Fatalf("Mongo.URI = %q", c.Storage.Mongo.URI)
	}
}

func TestEnvOverridesBeatYAML(t *testing.T) {
	path := writeYAML(t, "server:\n  addr: \":9090\"\n")

	t.Setenv("MERCADITO_ADDR", ":7070")
	t.Setenv("MONGO_DB", "cat_test")
	t.Setenv("SEED_ON_START", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if c.Server.Addr != ":7070" {
		t.Fatalf("Server.Addr = %q, el env debería ganar", c.Server.Addr)
	}
	if c.Storage.Mongo.Database != "cat_test" {
		t.Fatalf("Mongo.Database = %q", c.Storage.Mongo.Database)
	}
	if c.Seed.OnStart {
		t.Fatal("SEED_ON_START=false debería deshabilitar el seeding")
	}
	if len(c.Server.CORSAllowedOrigins) != 2 {
		t.Fatalf("CORSAllowedOrigins = %v", c.Server.CORSAllowedOrigins)
	}
}

func TestFromEnvWithoutFile(t *testing.T) {
	t.Setenv("MYSQL_DSN", "app:pw@tcp(mysql:3306)/m?parseTime=true")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.Storage.MySQL.DSN != "app:pw@tcp(mysql:3306)/m?parseTime=true" {
		t.Fatalf("MySQL.DSN = %q", c.Storage.MySQL.DSN)
	}
	if c.Server.Addr != ":8080" {
		t.Fatalf("Server.Addr = %q", c.Server.Addr)
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	path := writeYAML(t, "server:\n  shutdown_timeout: \"un rato\"\n")

	if _, err := Load(path); err == nil {
		t.Fatal("esperaba error por duración inválida")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("esperaba error por archivo inexistente")
	}
}
