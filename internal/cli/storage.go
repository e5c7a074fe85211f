package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/mindbuffer/internal/config"
	"github.com/aretw0/mindbuffer/pkg/adapters/memory"
	"github.com/aretw0/mindbuffer/pkg/adapters/redis"
	"github.com/aretw0/mindbuffer/pkg/adapters/sqlite"
	"github.com/aretw0/mindbuffer/pkg/persistence/middleware"
	"github.com/aretw0/mindbuffer/pkg/ports"
)

// Storage is an opened backend.
type Storage struct {
	Store   ports.KVStore
	Locker  ports.DistributedLocker // nil unless the backend is shared
	Closers []io.Closer
}

// OpenStorage opens the configured backend and wraps it with the configured
// middleware: redaction outermost, then encryption.
func OpenStorage(ctx context.Context, cfg config.Storage, logger *slog.Logger) (*Storage, error) {
	s := &Storage{}

	switch cfg.Backend {
	case config.BackendMemory, "":
		s.Store = memory.NewStore()
	case config.BackendRedis:
		st := redis.New(cfg.RedisAddr, "", cfg.RedisDB)
		if err := st.Client().Ping(ctx).Err(); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		s.Store = st
		s.Locker = redis.NewLocker(st.Client(), redis.DefaultPrefix)
		s.Closers = append(s.Closers, st)
	case config.BackendSQLite:
		st, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := st.Ping(ctx); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("sqlite health check failed: %w", err)
		}
		s.Store = st
		s.Closers = append(s.Closers, st)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	logger.Debug("storage opened", "backend", cfg.Backend)

	key, err := cfg.Key()
	if err != nil {
		s.Close()
		return nil, err
	}
	var mws []middleware.Middleware
	if cfg.RedactSecrets {
		mws = append(mws, middleware.NewPIIMiddleware(middleware.SecretPatterns))
	}
	if key != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key}))
	}
	s.Store = middleware.Chain(s.Store, mws...)
	return s, nil
}

// Close releases the backend.
func (s *Storage) Close() {
	for _, c := range s.Closers {
		_ = c.Close()
	}
}
