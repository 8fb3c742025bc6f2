package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ATS_STORE_BACKEND.
const EnvPrefix = "ATS"

var defaults = map[string]any{
	"server.host":            "0.0.0.0",
	"server.port":            8080,
	"server.allowed_origins": []string{"*"},
	"server.rate_limit":      0,
	"store.backend":          "json",
	"store.data_dir":         "./data",
	"store.namespace":        "ats:",
	"store.quota_bytes":      0,
	"store.op_timeout":       "3s",
	"postgres.host":          "",
	"postgres.port":          5432,
	"postgres.database":      "",
	"postgres.user":          "",
	"postgres.password":      "",
	"postgres.sslmode":       "disable",
	"redis.address":          "",
	"redis.password":         "",
	"redis.db":               0,
	"logging.level":          "info",
	"logging.format":         "console",
	"logging.file":           "",
	"schema.enabled":         true,
	"seed.file":              "",
}

// Load reads configuration. With an empty path it looks for config.yaml in
// "." and "./configs" and carries on with defaults if none is found.
// A .env file in the working directory is loaded first; environment
// variables override file values. The result is not validated, so callers
// can apply their own overrides first and then call Validate.
func Load(path string) (*Config, error) {
	loadEnvFile(".env")

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	_ = godotenv.Load(path)
}
