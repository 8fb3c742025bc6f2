package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
	"github.com/umputun/go-flags"
	"go.uber.org/zap"

	"github.com/stevemurr/recruit-store/config"
	"github.com/stevemurr/recruit-store/handler"
	"github.com/stevemurr/recruit-store/logger"
	"github.com/stevemurr/recruit-store/recruit"
	"github.com/stevemurr/recruit-store/store"
)

type options struct {
	Config   string `short:"c" long:"config" env:"ATS_CONFIG" description:"path to config.yaml"`
	Backend  string `short:"b" long:"backend" env:"ATS_BACKEND" description:"override store backend (json, sqlite, postgres, redis, memory)"`
	Seed     string `long:"seed" env:"ATS_SEED" description:"YAML fixtures loaded into empty collections"`
	Attempts int    `long:"connect-attempts" default:"5" description:"store connection attempts"`
	Dbg      bool   `long:"dbg" env:"ATS_DEBUG" description:"debug mode"`
}

var revision = "unknown"

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(parseExitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "recruit-store: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if opts.Dbg {
		level = "debug"
	}
	log, err := logger.NewWithFile(level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting recruit-store", zap.String("revision", revision), zap.String("backend", cfg.Store.Backend))

	st, err := openStore(ctx, cfg.StoreParams(), opts.Attempts, log)
	if err != nil {
		return err
	}
	defer func() {
		if c, ok := st.(io.Closer); ok {
			if err := c.Close(); err != nil {
				log.Warn("close store", zap.Error(err))
			}
		}
	}()

	reg, err := recruit.NewRegistry(st, recruit.WithValidation(cfg.Schema.Enabled))
	if err != nil {
		return fmt.Errorf("build registry: %w", err)
	}

	if cfg.Seed.File != "" {
		if err := seed(reg, cfg.Seed.File, log); err != nil {
			return err
		}
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           corsMiddleware(handler.New(reg, log, handler.WithRateLimit(cfg.Server.RateLimit)), cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr), zap.Strings("origins", cfg.Server.AllowedOrigins))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// parseExitCode maps a flag parsing error to the process exit code;
// a help request is not a failure.
func parseExitCode(err error) int {
	var ferr *flags.Error
	if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
		return 0
	}
	return 2
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Backend != "" {
		cfg.Store.Backend = opts.Backend
	}
	if opts.Seed != "" {
		cfg.Seed.File = opts.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStore connects the configured backend, retrying with backoff,
// and wraps it with metrics.
func openStore(ctx context.Context, params store.Config, attempts int, log *zap.Logger) (store.Store, error) {
	if attempts < 1 {
		attempts = 1
	}
	rptr := repeater.New(&strategy.Backoff{Repeats: attempts, Duration: 500 * time.Millisecond, Factor: 2, Jitter: true})

	var st store.Store
	err := rptr.Do(ctx, func() error {
		s, err := store.New(params)
		if err != nil {
			log.Warn("store connection failed", zap.String("backend", params.Backend), zap.Error(err))
			return err
		}
		st = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", params.Backend, err)
	}
	return store.Instrument(st, params.Backend), nil
}

func seed(reg *recruit.Registry, path string, log *zap.Logger) error {
	fixtures, err := recruit.LoadFixtures(path)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	added, err := reg.Seed(fixtures)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	for kind, n := range added {
		if n > 0 {
			log.Info("seeded collection", zap.String("kind", string(kind)), zap.Int("records", n))
		}
	}
	return nil
}

// corsMiddleware wraps an http.Handler with CORS headers.
func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowAll := len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowAll {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else if origin != "" {
			for _, o := range allowedOrigins {
				if strings.TrimSpace(o) == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Credentials", "true")
					break
				}
			}
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
