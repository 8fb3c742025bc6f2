// Package config loads service configuration from YAML, .env and the environment.
package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/stevemurr/recruit-store/store"
)

// Config is the main application configuration struct.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RateLimit is API requests per second per client IP, 0 for none.
	RateLimit float64 `mapstructure:"rate_limit"`
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type StoreConfig struct {
	Backend    string        `mapstructure:"backend"`
	DataDir    string        `mapstructure:"data_dir"`
	Namespace  string        `mapstructure:"namespace"`
	QuotaBytes int           `mapstructure:"quota_bytes"`
	OpTimeout  time.Duration `mapstructure:"op_timeout"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings. An empty File logs to stderr only.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type SchemaConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SeedConfig struct {
	File string `mapstructure:"file"`
}

// StoreParams converts the configuration into backing store parameters.
func (c *Config) StoreParams() store.Config {
	return store.Config{
		Backend:     c.Store.Backend,
		DataDir:     c.Store.DataDir,
		Namespace:   c.Store.Namespace,
		QuotaBytes:  c.Store.QuotaBytes,
		OpTimeout:   c.Store.OpTimeout,
		PostgresDSN: c.Postgres.DSN(),
		Redis: store.RedisOptions{
			Addr:     c.Redis.Address,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		},
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if !slices.Contains(store.Backends, c.Store.Backend) {
		return fmt.Errorf("store.backend %q is not one of %v", c.Store.Backend, store.Backends)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Store.QuotaBytes < 0 {
		return fmt.Errorf("store.quota_bytes must not be negative")
	}
	switch c.Store.Backend {
	case "json", "sqlite":
		if c.Store.DataDir == "" {
			return fmt.Errorf("store.data_dir is required for the %s backend", c.Store.Backend)
		}
	case "postgres":
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("postgres.host and postgres.database are required for the postgres backend")
		}
	case "redis":
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required for the redis backend")
		}
	}
	return nil
}
