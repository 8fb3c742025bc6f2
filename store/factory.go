package store

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config selects and parameterizes a backend.
type Config struct {
	Backend     string
	DataDir     string
	Namespace   string
	QuotaBytes  int
	OpTimeout   time.Duration
	PostgresDSN string
	Redis       RedisOptions
}

// Backends lists the names accepted by New.
var Backends = []string{"json", "sqlite", "postgres", "redis", "memory"}

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"json"     - one JSON file per collection in DataDir (default)
//	"sqlite"   - SQLite database at DataDir/recruit.db
//	"postgres" - PostgreSQL reachable via PostgresDSN
//	"redis"    - Redis at Redis.Addr, keys prefixed by Namespace
//	"memory"   - in-memory (ephemeral, for testing), capped by QuotaBytes
func New(cfg Config) (Store, error) {
	switch cfg.Backend {
	case "json", "":
		return NewJSONFileStore(cfg.DataDir)
	case "sqlite":
		return NewSqliteStore(filepath.Join(cfg.DataDir, "recruit.db"))
	case "postgres":
		return NewPostgresStore(cfg.PostgresDSN)
	case "redis":
		return DialRedis(cfg.Redis, cfg.Namespace, cfg.OpTimeout)
	case "memory":
		if cfg.QuotaBytes > 0 {
			return NewMemoryStoreWithQuota(cfg.QuotaBytes), nil
		}
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: %v)", cfg.Backend, Backends)
	}
}
