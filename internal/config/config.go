package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"

	DefaultStateKey = "razAppData"
)

var (
	ErrUnknownBackend = errors.New("unknown store backend")
)

type PostgresConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Table    string `yaml:"table"`
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Name)
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Config struct {
	Port             string         `yaml:"port"`
	StoreBackend     string         `yaml:"store_backend"`
	StateKey         string         `yaml:"state_key"`
	StateFile        string         `yaml:"state_file"`
	SQLitePath       string         `yaml:"sqlite_path"`
	RateLimit        int            `yaml:"rate_limit"`
	RolloverInterval time.Duration  `yaml:"rollover_interval"`
	Postgres         PostgresConfig `yaml:"postgres"`
	Redis            RedisConfig    `yaml:"redis"`

	// UseRedis enables the Redis-backed rate limiter even when the state
	// lives elsewhere.
	UseRedis bool `yaml:"use_redis"`
}

func Default() Config {
	return Config{
		Port:             "8080",
		StoreBackend:     BackendFile,
		StateKey:         DefaultStateKey,
		StateFile:        "data/state.json",
		SQLitePath:       "data/state.sqlite",
		RateLimit:        100,
		RolloverInterval: time.Minute,
		Postgres: PostgresConfig{
			Driver: "pgx",
			Host:   "localhost",
			Port:   "5432",
			Table:  "app_state",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
	}
}

// Load layers defaults, the optional YAML file at path and the environment
// (a local .env file is read first when present).
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[CONFIG] Ignoring unreadable .env: %v", err)
	}

	if path == "" {
		path = os.Getenv("RAZ_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.StoreBackend, "STORE_BACKEND")
	setString(&c.StateKey, "STATE_KEY")
	setString(&c.StateFile, "STATE_FILE")
	setString(&c.SQLitePath, "SQLITE_PATH")

	setString(&c.Postgres.Driver, "DB_DRIVER")
	setString(&c.Postgres.Host, "DB_HOST")
	setString(&c.Postgres.Port, "DB_PORT")
	setString(&c.Postgres.User, "DB_USER")
	setString(&c.Postgres.Password, "DB_PASSWORD")
	setString(&c.Postgres.Name, "DB_NAME")
	setString(&c.Postgres.Table, "DB_TABLE")

	setString(&c.Redis.Host, "REDIS_HOST")
	setString(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.RateLimit, "RATE_LIMIT"); err != nil {
		return err
	}
	if v := os.Getenv("USE_REDIS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid USE_REDIS %q: %w", v, err)
		}
		c.UseRedis = b
	}
	if v := os.Getenv("ROLLOVER_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ROLLOVER_CHECK_INTERVAL %q: %w", v, err)
		}
		c.RolloverInterval = d
	}
	return nil
}

func (c Config) Validate() error {
	switch c.StoreBackend {
	case BackendFile, BackendSQLite, BackendPostgres, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.StoreBackend)
	}
	if strings.TrimSpace(c.StateKey) == "" {
		return errors.New("state key cannot be empty")
	}
	return nil
}

// NeedsRedis reports whether a Redis client has to be opened.
func (c Config) NeedsRedis() bool {
	return c.StoreBackend == BackendRedis || c.UseRedis
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}
