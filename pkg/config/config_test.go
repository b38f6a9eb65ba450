package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("CURRENCY_SYMBOL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendPostgres {
		t.Fatalf("backend = %q", cfg.Store.Backend)
	}
	if cfg.Display.CurrencySymbol != "₹" {
		t.Fatalf("currency symbol = %q", cfg.Display.CurrencySymbol)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Fatalf("read timeout = %v", cfg.Server.ReadTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_BACKEND", "MEMORY")
	t.Setenv("RATE_LIMIT_WRITES", "5")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Store.Backend != BackendMemory {
		t.Fatalf("unexpected config: %+v", cfg.Server)
	}
	if cfg.Server.WriteRateLimit != 5 || cfg.JWT.Expiration != 2*time.Hour {
		t.Fatalf("unexpected limits: %+v %+v", cfg.Server, cfg.JWT)
	}
}

func TestLoadRejectsNonNumeric(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SERVER_READ_TIMEOUT") {
		t.Fatalf("expected SERVER_READ_TIMEOUT error, got %v", err)
	}
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", WriteRateLimit: 60},
		Store:    StoreConfig{Backend: BackendMemory},
		Database: DatabaseConfig{Host: "localhost"},
		Mongo:    MongoConfig{Database: "finance-tracker"},
		JWT:      JWTConfig{Expiration: time.Hour},
		AMQP:     AMQPConfig{Exchange: "finance-tracker"},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid memory", func(c *Config) {}, ""},
		{"valid postgres", func(c *Config) { c.Store.Backend = BackendPostgres }, ""},
		{"bad port", func(c *Config) { c.Server.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Server.Port = "70000" }, "between 1 and 65535"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, "invalid store backend"},
		{"mongo without uri", func(c *Config) { c.Store.Backend = BackendMongo }, "MONGODB_URI is required"},
		{"mongo bad scheme", func(c *Config) {
			c.Store.Backend = BackendMongo
			c.Mongo.URI = "http://localhost"
		}, "scheme must be mongodb"},
		{"mongo ok", func(c *Config) {
			c.Store.Backend = BackendMongo
			c.Mongo.URI = "mongodb://localhost:27017"
		}, ""},
		{"sqlite without path", func(c *Config) { c.Store.Backend = BackendSQLite }, "SQLITE_DB_PATH"},
		{"amqp bad scheme", func(c *Config) { c.AMQP.URL = "http://broker" }, "must be 'amqp' or 'amqps'"},
		{"short jwt secret", func(c *Config) { c.JWT.SecretKey = "short" }, "at least 16 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = "x"
	cfg.Store.Backend = "redis"
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Count(err.Error(), "\n- ") != 2 {
		t.Fatalf("expected two problems, got %q", err.Error())
	}
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p@ss", DBName: "ft", SSLMode: "disable"}
	if got := c.DSN(); got != "postgres://u:p%40ss@db:5432/ft?sslmode=disable" {
		t.Fatalf("DSN = %q", got)
	}
	c.URL = "postgres://override"
	if c.DSN() != "postgres://override" {
		t.Fatalf("DATABASE_URL not preferred")
	}
}
