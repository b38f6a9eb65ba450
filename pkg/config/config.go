package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	SQLite   SQLiteConfig
	JWT      JWTConfig
	AMQP     AMQPConfig
	Display  DisplayConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	CORSOrigins     string
	WriteRateLimit  int
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Backend  string
	SeedDemo bool
}

type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// DSN prefers DATABASE_URL and falls back to the discrete settings.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type SQLiteConfig struct {
	Path string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

// Enabled reports whether write routes require a bearer token.
func (c JWTConfig) Enabled() bool {
	return c.SecretKey != ""
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type DisplayConfig struct {
	CurrencySymbol string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, err := getEnvInt("SERVER_READ_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvInt("SERVER_WRITE_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	jwtExp, err := getEnvInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("RATE_LIMIT_WRITES", 60)
	if err != nil {
		return nil, err
	}
	maxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     time.Duration(readTimeout) * time.Second,
			WriteTimeout:    time.Duration(writeTimeout) * time.Second,
			CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
			WriteRateLimit:  rateLimit,
			ShutdownTimeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Backend:  strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
			SeedDemo: getEnv("SEED_DEMO_DATA", "false") == "true",
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "finance_tracker"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: int32(maxConns),
		},
		Mongo: MongoConfig{
			URI:            getEnv("MONGODB_URI", ""),
			Database:       getEnv("MONGODB_DATABASE", "finance-tracker"),
			ConnectTimeout: 10 * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_DB_PATH", "./data/finance.db"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", ""),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "finance-tracker"),
		},
		Display: DisplayConfig{
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Server.WriteRateLimit < 0 {
		problems = append(problems, "RATE_LIMIT_WRITES cannot be negative")
	}

	switch c.Store.Backend {
	case BackendPostgres:
		if c.Database.URL == "" && c.Database.Host == "" {
			problems = append(problems, "either DATABASE_URL or DB_HOST is required for the postgres backend")
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			problems = append(problems, "MONGODB_URI is required for the mongo backend")
		} else if u, err := url.Parse(c.Mongo.URI); err != nil || (u.Scheme != "mongodb" && u.Scheme != "mongodb+srv") {
			problems = append(problems, fmt.Sprintf("invalid MONGODB_URI '%s': scheme must be mongodb or mongodb+srv", c.Mongo.URI))
		}
		if c.Mongo.Database == "" {
			problems = append(problems, "MONGODB_DATABASE cannot be empty")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			problems = append(problems, "SQLITE_DB_PATH is required for the sqlite backend")
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid store backend '%s': must be one of %v",
			c.Store.Backend, []string{BackendPostgres, BackendMongo, BackendSQLite, BackendMemory}))
	}

	if c.AMQP.URL != "" {
		if u, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQP.URL, err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
		if c.AMQP.Exchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.JWT.Enabled() && len(c.JWT.SecretKey) < 16 {
		problems = append(problems, "JWT_SECRET_KEY must be at least 16 characters")
	}
	if c.JWT.Expiration <= 0 {
		problems = append(problems, "JWT_EXPIRATION_HOURS must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': must be a number", key, value)
	}
	return i, nil
}
