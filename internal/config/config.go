// Package config carga la configuración del servicio desde YAML y
// permite pisarla con variables de entorno. El orden es: defaults,
// archivo, entorno.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | prod
		Env     string `yaml:"env"`
		Service string `yaml:"service_name"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
		ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Storage struct {
		MySQL struct {
			DSN             string `yaml:"dsn"`
			MaxOpenConns    int    `yaml:"max_open_conns"`
			MaxIdleConns    int    `yaml:"max_idle_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
			ConnMaxIdleTime string `yaml:"conn_max_idle_time"`
		} `yaml:"mysql"`
		Mongo struct {
			URI            string `yaml:"uri"`
			Database       string `yaml:"database"`
			ConnectTimeout string `yaml:"connect_timeout"`
		} `yaml:"mongo"`
	} `yaml:"storage"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`

	Seed struct {
		// OnStart resiembra ambos backends antes de servir. Default true:
		// el servicio es demostrativo y arranca siempre con los fixtures.
		OnStart bool `yaml:"on_start"`
	} `yaml:"seed"`
}

// Default retorna la configuración base de desarrollo. Load y FromEnv
// parten de acá, así el YAML y el entorno solo pisan lo que declaran.
func Default() *Config {
	var c Config
	c.App.Env = "dev"
	c.App.Service = "mercadito"
	c.Server.Addr = ":8080"
	c.Server.ShutdownTimeout = "10s"
	c.Log.Level = "info"
	c.Storage.MySQL.DSN = "root:password@tcp(localhost:3306)/mercadito?parseTime=true"
	c.Storage.MySQL.MaxOpenConns = 10
	c.Storage.MySQL.MaxIdleConns = 2
	c.Storage.MySQL.ConnMaxLifetime = "30m"
	c.Storage.MySQL.ConnMaxIdleTime = "5m"
	c.Storage.Mongo.URI = "mongodb://localhost:27017"
	c.Storage.Mongo.Database = "mercadito"
	c.Storage.Mongo.ConnectTimeout = "10s"
	c.Metrics.Enabled = true
	c.Seed.OnStart = true
	return &c
}

// Load lee el YAML indicado sobre los defaults y aplica los overrides
// de entorno.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	c.applyEnvOverrides()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromEnv arma la configuración sin archivo: defaults + entorno.
func FromEnv() (*Config, error) {
	c := Default()
	c.applyEnvOverrides()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// ─────────────────────────── Duraciones ───────────────────────────
//
// Las duraciones se guardan como string YAML ("30s", "5m") y se
// validan en Load; estos getters re-parsean ya sabiendo que son válidas.

func (c *Config) ShutdownTimeout() time.Duration {
	return parseDur(c.Server.ShutdownTimeout, 10*time.Second)
}

func (c *Config) MySQLConnMaxLifetime() time.Duration {
	return parseDur(c.Storage.MySQL.ConnMaxLifetime, 30*time.Minute)
}

func (c *Config) MySQLConnMaxIdleTime() time.Duration {
	return parseDur(c.Storage.MySQL.ConnMaxIdleTime, 5*time.Minute)
}

func (c *Config) MongoConnectTimeout() time.Duration {
	return parseDur(c.Storage.Mongo.ConnectTimeout, 10*time.Second)
}

func parseDur(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
		return d
	}
	return fallback
}

// ─────────────────────────── Helpers env ───────────────────────────

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides pisa la configuración con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("MERCADITO_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}
	if v, ok := getEnvStr("SHUTDOWN_TIMEOUT"); ok {
		c.Server.ShutdownTimeout = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}

	if v, ok := getEnvStr("MYSQL_DSN"); ok {
		c.Storage.MySQL.DSN = v
	}
	if v, ok := getEnvInt("MYSQL_MAX_OPEN_CONNS"); ok {
		c.Storage.MySQL.MaxOpenConns = v
	}
	if v, ok := getEnvInt("MYSQL_MAX_IDLE_CONNS"); ok {
		c.Storage.MySQL.MaxIdleConns = v
	}
	if v, ok := getEnvStr("MONGO_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGO_DB"); ok {
		c.Storage.Mongo.Database = v
	}

	if v, ok := getEnvBool("METRICS_ENABLED"); ok {
		c.Metrics.Enabled = v
	}
	if v, ok := getEnvBool("SEED_ON_START"); ok {
		c.Seed.OnStart = v
	}
}

// validate chequea lo que no puede fallar en runtime: direcciones y
// duraciones con forma inválida se rechazan al arrancar.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("config: server.addr vacío")
	}
	for name, s := range map[string]string{
		"server.shutdown_timeout":          c.Server.ShutdownTimeout,
		"storage.mysql.conn_max_lifetime":  c.Storage.MySQL.ConnMaxLifetime,
		"storage.mysql.conn_max_idle_time": c.Storage.MySQL.ConnMaxIdleTime,
		"storage.mongo.connect_timeout":    c.Storage.Mongo.ConnectTimeout,
	} {
		if s == "" {
			continue
		}
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}
